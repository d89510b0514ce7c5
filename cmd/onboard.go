package cmd

import (
	"log"
	"os"

	"github.com/atria-network/atria-agent/cmds/onboard"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var onboardEnvs = map[string]string{
	"email":            "EMAIL",
	"org":              "ORG",
	"role":             "ROLE",
	"agency-url":       "AGENCY_URL",
	"pool-name":        "POOL_NAME",
	"genesis-path":     "GENESIS_PATH",
	"seed":             "SEED",
	"institution-name": "INSTITUTION_NAME",
}

// onboardCmd represents the onboard subcommand
var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Command for onboarding a user or an org wallet",
	Long: `
Command for onboarding a wallet. Exactly one of --email and --org is given;
an org wallet also gets its registry defaults seeded, the Trustee role seeds
the shared ones.

Example
	atria-agent onboard \
		--org Faber \
		--agency-url http://localhost:8000 \
		--pool-name atria-pool
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(onboardEnvs, cmd.Name())
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		onbCmd.Agency = agencyImpl
		try.To(onbCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To(openStores())
			defer closeStores()
			try.To1(onbCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var onbCmd = onboard.Cmd{}

func init() {
	defer err2.Catch(func(err error) {
		log.Println(err)
	})

	flags := onboardCmd.Flags()
	flags.StringVar(&onbCmd.Email, "email", "", flagInfo("email of the user to onboard", onboardCmd.Name(), onboardEnvs["email"]))
	flags.StringVar(&onbCmd.Org, "org", "", flagInfo("name of the org to onboard", onboardCmd.Name(), onboardEnvs["org"]))
	flags.StringVar(&onbCmd.Role, "role", "", flagInfo("org ledger role, e.g. Trustee", onboardCmd.Name(), onboardEnvs["role"]))
	flags.StringVar(&onbCmd.AgencyURL, "agency-url", "http://localhost:8000", flagInfo("agency mailbox base address", onboardCmd.Name(), onboardEnvs["agency-url"]))
	flags.StringVar(&onbCmd.PoolName, "pool-name", "", flagInfo("ledger pool name", onboardCmd.Name(), onboardEnvs["pool-name"]))
	flags.StringVar(&onbCmd.GenesisPath, "genesis-path", "", flagInfo("path to pool genesis transactions", onboardCmd.Name(), onboardEnvs["genesis-path"]))
	flags.StringVar(&onbCmd.Seed, "seed", "", flagInfo("enterprise seed for the institution DID", onboardCmd.Name(), onboardEnvs["seed"]))
	flags.StringVar(&onbCmd.InstitutionName, "institution-name", "", flagInfo("institution display name", onboardCmd.Name(), onboardEnvs["institution-name"]))

	rootCmd.AddCommand(onboardCmd)
}
