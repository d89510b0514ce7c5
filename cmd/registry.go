package cmd

import (
	"log"
	"os"

	"github.com/atria-network/atria-agent/cmds/registry"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var registryEnvs = map[string]string{
	"wallet-name": "WALLET_NAME",
}

// registryCmd represents the registry parent command
var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Parent command for schemas, cred defs and proof templates",
	Long: `
Parent command for managing credential schemas, credential definitions and
proof request templates.

This command requires a subcommand so command itself does nothing.
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(registryEnvs, cmd.Name())
	},
	Run: func(cmd *cobra.Command, args []string) {
		SubCmdNeeded(cmd)
	},
}

var regSchemaEnvs = map[string]string{
	"name":    "SCHEMA_NAME",
	"version": "SCHEMA_VERSION",
	"attrs":   "SCHEMA_ATTRS",
}

var regSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Command for writing a schema to the ledger",
	Long: `
Writes a new credential schema to the ledger.

Example
	atria-agent registry schema \
		--wallet-name o_faber \
		--name Transcript \
		--version 1.2.3 \
		--attrs first_name --attrs last_name --attrs degree
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(regSchemaEnvs, "registry")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		schemaCmd.Agency = agencyImpl
		schemaCmd.WalletName = regWallet
		try.To(schemaCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To(openStores())
			defer closeStores()
			try.To1(schemaCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var regCredDefEnvs = map[string]string{
	"schema": "SCHEMA",
	"tag":    "TAG",
}

var regCredDefCmd = &cobra.Command{
	Use:   "creddef",
	Short: "Command for writing a cred def to the ledger",
	Long: `
Writes a credential definition against a stored schema. --schema takes the
schema's ledger id or its registered name.
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(regCredDefEnvs, "registry")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		credDefCmd.Agency = agencyImpl
		credDefCmd.WalletName = regWallet
		try.To(credDefCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To(openStores())
			defer closeStores()
			try.To1(credDefCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var regTemplateEnvs = map[string]string{
	"name":        "TEMPLATE_NAME",
	"description": "TEMPLATE_DESCRIPTION",
	"attrs":       "TEMPLATE_ATTRS",
	"predicates":  "TEMPLATE_PREDICATES",
}

var regTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Command for storing a proof request template",
	Long: `
Stores a named proof request template. Templates are local records only, no
ledger write happens.

Example
	atria-agent registry template \
		--name "Proof of Education" \
		--attrs '[{"name":"first_name"},{"name":"degree"}]'
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(regTemplateEnvs, "registry")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		try.To(templateCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To(openStores())
			defer closeStores()
			try.To1(templateCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var regBootstrapEnvs = map[string]string{
	"role": "ROLE",
}

var regBootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Command for seeding the registry defaults",
	Long: `
Seeds the role-based registry defaults for an org wallet. The Trustee role
publishes the shared schemas and the standard proof templates.
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(regBootstrapEnvs, "registry")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		bootstrapCmd.Agency = agencyImpl
		bootstrapCmd.WalletName = regWallet
		try.To(bootstrapCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To(openStores())
			defer closeStores()
			try.To1(bootstrapCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var (
	regWallet string

	schemaCmd    = registry.SchemaCmd{}
	credDefCmd   = registry.CredDefCmd{}
	templateCmd  = registry.TemplateCmd{}
	bootstrapCmd = registry.BootstrapCmd{}
)

func init() {
	defer err2.Catch(func(err error) {
		log.Println(err)
	})

	flags := registryCmd.PersistentFlags()
	flags.StringVar(&regWallet, "wallet-name", "", flagInfo("wallet name", registryCmd.Name(), registryEnvs["wallet-name"]))

	s := regSchemaCmd.Flags()
	s.StringVar(&schemaCmd.Name, "name", "", flagInfo("schema name", registryCmd.Name(), regSchemaEnvs["name"]))
	s.StringVar(&schemaCmd.Version, "version", "", flagInfo("schema version", registryCmd.Name(), regSchemaEnvs["version"]))
	s.StringArrayVar(&schemaCmd.Attrs, "attrs", nil, flagInfo("schema attribute, repeat per attribute", registryCmd.Name(), regSchemaEnvs["attrs"]))

	cd := regCredDefCmd.Flags()
	cd.StringVar(&credDefCmd.Schema, "schema", "", flagInfo("schema ledger id or name", registryCmd.Name(), regCredDefEnvs["schema"]))
	cd.StringVar(&credDefCmd.Tag, "tag", "", flagInfo("cred def tag", registryCmd.Name(), regCredDefEnvs["tag"]))

	t := regTemplateCmd.Flags()
	t.StringVar(&templateCmd.Name, "name", "", flagInfo("template name", registryCmd.Name(), regTemplateEnvs["name"]))
	t.StringVar(&templateCmd.Description, "description", "", flagInfo("template description", registryCmd.Name(), regTemplateEnvs["description"]))
	t.StringVar(&templateCmd.Attrs, "attrs", "", flagInfo("requested attrs as JSON array", registryCmd.Name(), regTemplateEnvs["attrs"]))
	t.StringVar(&templateCmd.Predicates, "predicates", "", flagInfo("requested predicates as JSON array", registryCmd.Name(), regTemplateEnvs["predicates"]))

	b := regBootstrapCmd.Flags()
	b.StringVar(&bootstrapCmd.Role, "role", "", flagInfo("org ledger role, e.g. Trustee", registryCmd.Name(), regBootstrapEnvs["role"]))

	rootCmd.AddCommand(registryCmd)
	registryCmd.AddCommand(regSchemaCmd)
	registryCmd.AddCommand(regCredDefCmd)
	registryCmd.AddCommand(regTemplateCmd)
	registryCmd.AddCommand(regBootstrapCmd)
}
