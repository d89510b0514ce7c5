package cmd

import (
	"log"
	"os"

	"github.com/atria-network/atria-agent/cmds/connection"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var connectionEnvs = map[string]string{
	"wallet-name": "WALLET_NAME",
}

// connectionCmd represents the connection parent command
var connectionCmd = &cobra.Command{
	Use:   "connection",
	Short: "Parent command for pairwise connections",
	Long: `
Parent command for creating, accepting and polling pairwise connections.

This command requires a subcommand so command itself does nothing.
Every subcommand requires the --wallet-name flag.
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(connectionEnvs, cmd.Name())
	},
	Run: func(cmd *cobra.Command, args []string) {
		SubCmdNeeded(cmd)
	},
}

var connInviteEnvs = map[string]string{
	"partner": "PARTNER",
}

var connInviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Command for creating a connection invitation",
	Long: `
Creates an invitation for a partner and prints it. When the partner is
onboarded on this same agent, a matching pending record is written for them
too.

Example
	atria-agent connection invite \
		--wallet-name o_faber \
		--partner alice@example.com
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(connInviteEnvs, "connection")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		inviteCmd.Agency = agencyImpl
		inviteCmd.WalletName = connWallet
		try.To(inviteCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To(openStores())
			defer closeStores()
			try.To1(inviteCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var connAcceptEnvs = map[string]string{
	"partner":       "PARTNER",
	"invitation":    "INVITATION",
	"connection-id": "CONNECTION_ID",
}

var connAcceptCmd = &cobra.Command{
	Use:   "accept",
	Short: "Command for accepting a connection invitation",
	Long: `
Accepts an invitation, either given inline as JSON or loaded from the
pending record named by --connection-id.
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(connAcceptEnvs, "connection")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		acceptCmd.Agency = agencyImpl
		acceptCmd.WalletName = connWallet
		try.To(acceptCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To(openStores())
			defer closeStores()
			try.To1(acceptCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var connPollEnvs = map[string]string{
	"connection-id": "CONNECTION_ID",
}

var connPollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Command for polling pending connections",
	Long: `
Polls the wallet's pending connections against the agency, or just the one
named by --connection-id.
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(connPollEnvs, "connection")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		connPoll.Agency = agencyImpl
		connPoll.WalletName = connWallet
		try.To(connPoll.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To(openStores())
			defer closeStores()
			try.To1(connPoll.Exec(os.Stdout))
		}
		return nil
	},
}

var (
	connWallet string

	inviteCmd = connection.InviteCmd{}
	acceptCmd = connection.AcceptCmd{}
	connPoll  = connection.PollCmd{}
)

func init() {
	defer err2.Catch(func(err error) {
		log.Println(err)
	})

	flags := connectionCmd.PersistentFlags()
	flags.StringVar(&connWallet, "wallet-name", "", flagInfo("wallet name", connectionCmd.Name(), connectionEnvs["wallet-name"]))

	i := connInviteCmd.Flags()
	i.StringVar(&inviteCmd.Partner, "partner", "", flagInfo("partner name the invitation is for", connectionCmd.Name(), connInviteEnvs["partner"]))

	a := connAcceptCmd.Flags()
	a.StringVar(&acceptCmd.Partner, "partner", "", flagInfo("inviter's name", connectionCmd.Name(), connAcceptEnvs["partner"]))
	a.StringVar(&acceptCmd.Invitation, "invitation", "", flagInfo("invitation JSON", connectionCmd.Name(), connAcceptEnvs["invitation"]))
	a.StringVar(&acceptCmd.ConnectionID, "connection-id", "", flagInfo("pending connection record id", connectionCmd.Name(), connAcceptEnvs["connection-id"]))

	p := connPollCmd.Flags()
	p.StringVar(&connPoll.ConnectionID, "connection-id", "", flagInfo("connection record id", connectionCmd.Name(), connPollEnvs["connection-id"]))

	rootCmd.AddCommand(connectionCmd)
	connectionCmd.AddCommand(connInviteCmd)
	connectionCmd.AddCommand(connAcceptCmd)
	connectionCmd.AddCommand(connPollCmd)
}
