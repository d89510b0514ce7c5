package cmd

import (
	"log"
	"os"
	"time"

	"github.com/atria-network/atria-agent/cmds/agency"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var startEnvs = map[string]string{
	"agency-url":    "AGENCY_URL",
	"pool-name":     "POOL_NAME",
	"genesis-path":  "GENESIS_PATH",
	"poll-interval": "POLL_INTERVAL",
	"op-timeout":    "OP_TIMEOUT",
}

// startCmd represents the start subcommand
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Command for starting the agent service",
	Long: `
Start command for the agent service. The service keeps a scheduler polling
the agency mailbox for every tracked wallet until it is stopped with SIGINT
or SIGTERM.

Example
	atria-agent start \
		--agency-url http://localhost:8000 \
		--pool-name atria-pool \
		--genesis-path /var/lib/atria/genesis.txn
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(startEnvs, cmd.Name())
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		serveCmd.Agency = agencyImpl
		serveCmd.DataPath = rootFlags.dataPath
		serveCmd.EnclaveKey = rootFlags.enclaveKey
		try.To(serveCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To1(serveCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var serveCmd = agency.Cmd{}

func init() {
	defer err2.Catch(func(err error) {
		log.Println(err)
	})

	flags := startCmd.Flags()
	flags.StringVar(&serveCmd.AgencyURL, "agency-url", "http://localhost:8000", flagInfo("agency mailbox base address", startCmd.Name(), startEnvs["agency-url"]))
	flags.StringVar(&serveCmd.PoolName, "pool-name", "", flagInfo("ledger pool name", startCmd.Name(), startEnvs["pool-name"]))
	flags.StringVar(&serveCmd.GenesisPath, "genesis-path", "", flagInfo("path to pool genesis transactions", startCmd.Name(), startEnvs["genesis-path"]))
	flags.DurationVar(&serveCmd.PollInterval, "poll-interval", time.Minute, flagInfo("duration between mailbox polls", startCmd.Name(), startEnvs["poll-interval"]))
	flags.DurationVar(&serveCmd.OpTimeout, "op-timeout", 0, flagInfo("deadline for single agency operations", startCmd.Name(), startEnvs["op-timeout"]))

	rootCmd.AddCommand(startCmd)
}
