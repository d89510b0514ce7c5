package cmd

import (
	"log"
	"os"

	"github.com/atria-network/atria-agent/cmds/conversation"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var conversationEnvs = map[string]string{
	"wallet-name": "WALLET_NAME",
}

// conversationCmd represents the conversation parent command
var conversationCmd = &cobra.Command{
	Use:   "conversation",
	Short: "Parent command for credential and proof exchanges",
	Long: `
Parent command for driving credential and proof exchanges over existing
connections.

This command requires a subcommand so command itself does nothing.
Every subcommand requires the --wallet-name flag.
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(conversationEnvs, cmd.Name())
	},
	Run: func(cmd *cobra.Command, args []string) {
		SubCmdNeeded(cmd)
	},
}

var convOfferEnvs = map[string]string{
	"connection-id": "CONNECTION_ID",
	"cred-def-id":   "CRED_DEF_ID",
	"name":          "NAME",
	"values":        "VALUES",
}

var convOfferCmd = &cobra.Command{
	Use:   "offer",
	Short: "Command for offering a credential",
	Long: `
Offers a credential over a connection. --values is a JSON object of
attribute values; attributes the cred def template names but values omit go
out with the template defaults.

Example
	atria-agent conversation offer \
		--wallet-name o_faber \
		--connection-id 5d6c3e6b... \
		--cred-def-id 2hoqvcwupRTUNkXn6ArYzs:3:CL:12:Transcript-o_faber \
		--values '{"first_name":"Alice","degree":"Bachelor"}'
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(convOfferEnvs, "conversation")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		offerCmd.Agency = agencyImpl
		offerCmd.WalletName = convWallet
		try.To(offerCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To(openStores())
			defer closeStores()
			try.To1(offerCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var convRequestEnvs = map[string]string{
	"conversation-id": "CONVERSATION_ID",
}

var convRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Command for requesting an offered credential",
	Long: `
Answers an ingested credential offer by sending the credential request.
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(convRequestEnvs, "conversation")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		requestCmd.Agency = agencyImpl
		requestCmd.WalletName = convWallet
		try.To(requestCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To(openStores())
			defer closeStores()
			try.To1(requestCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var convProofReqEnvs = map[string]string{
	"connection-id": "CONNECTION_ID",
	"name":          "NAME",
	"template":      "TEMPLATE",
	"attrs":         "ATTRS",
	"predicates":    "PREDICATES",
}

var convProofReqCmd = &cobra.Command{
	Use:   "proof-request",
	Short: "Command for sending a proof request",
	Long: `
Sends a proof request over a connection, either from a stored template or
from inline attr/predicate JSON.

Example
	atria-agent conversation proof-request \
		--wallet-name o_acme \
		--connection-id 5d6c3e6b... \
		--template "Proof of Education"
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(convProofReqEnvs, "conversation")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		proofReqCmd.Agency = agencyImpl
		proofReqCmd.WalletName = convWallet
		try.To(proofReqCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To(openStores())
			defer closeStores()
			try.To1(proofReqCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var convClaimsEnvs = map[string]string{
	"conversation-id": "CONVERSATION_ID",
	"selections":      "SELECTIONS",
}

var convClaimsCmd = &cobra.Command{
	Use:   "claims",
	Short: "Command for selecting claims and sending the proof",
	Long: `
Selects claims for an ingested proof request and sends the proof.
--selections maps attribute referents to a candidate credential index or to
a self-attested value.

Example
	atria-agent conversation claims \
		--wallet-name i_alice_example_com \
		--conversation-id 8f0e2c1a... \
		--selections '{"attr_referent_1":"0","attr_referent_2":"self attested"}'
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(convClaimsEnvs, "conversation")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		claimsCmd.Agency = agencyImpl
		claimsCmd.WalletName = convWallet
		try.To(claimsCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To(openStores())
			defer closeStores()
			try.To1(claimsCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var convPollEnvs = map[string]string{
	"conversation-id": "CONVERSATION_ID",
	"connection-id":   "CONNECTION_ID",
}

var convPollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Command for polling conversations",
	Long: `
Advances one conversation, or everything pending on a connection.
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(convPollEnvs, "conversation")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		convPoll.Agency = agencyImpl
		convPoll.WalletName = convWallet
		try.To(convPoll.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To(openStores())
			defer closeStores()
			try.To1(convPoll.Exec(os.Stdout))
		}
		return nil
	},
}

var convIngestEnvs = map[string]string{
	"connection-id": "CONNECTION_ID",
}

var convIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Command for ingesting waiting inbound messages",
	Long: `
Pulls the connection's waiting credential offers and proof requests into
pending conversation records. Safe to re-run; seen messages are skipped.
	`,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(convIngestEnvs, "conversation")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		ingestCmd.Agency = agencyImpl
		ingestCmd.WalletName = convWallet
		try.To(ingestCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To(openStores())
			defer closeStores()
			try.To1(ingestCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var (
	convWallet string

	offerCmd    = conversation.OfferCmd{}
	requestCmd  = conversation.RequestCmd{}
	proofReqCmd = conversation.ProofRequestCmd{}
	claimsCmd   = conversation.ClaimsCmd{}
	convPoll    = conversation.PollCmd{}
	ingestCmd   = conversation.IngestCmd{}
)

func init() {
	defer err2.Catch(func(err error) {
		log.Println(err)
	})

	flags := conversationCmd.PersistentFlags()
	flags.StringVar(&convWallet, "wallet-name", "", flagInfo("wallet name", conversationCmd.Name(), conversationEnvs["wallet-name"]))

	o := convOfferCmd.Flags()
	o.StringVar(&offerCmd.ConnectionID, "connection-id", "", flagInfo("connection record id", conversationCmd.Name(), convOfferEnvs["connection-id"]))
	o.StringVar(&offerCmd.CredDefID, "cred-def-id", "", flagInfo("cred def ledger id", conversationCmd.Name(), convOfferEnvs["cred-def-id"]))
	o.StringVar(&offerCmd.Name, "name", "", flagInfo("credential display name", conversationCmd.Name(), convOfferEnvs["name"]))
	o.StringVar(&offerCmd.Values, "values", "", flagInfo("attribute values as JSON object", conversationCmd.Name(), convOfferEnvs["values"]))

	r := convRequestCmd.Flags()
	r.StringVar(&requestCmd.ConversationID, "conversation-id", "", flagInfo("conversation record id", conversationCmd.Name(), convRequestEnvs["conversation-id"]))

	pr := convProofReqCmd.Flags()
	pr.StringVar(&proofReqCmd.ConnectionID, "connection-id", "", flagInfo("connection record id", conversationCmd.Name(), convProofReqEnvs["connection-id"]))
	pr.StringVar(&proofReqCmd.Name, "name", "", flagInfo("proof request name", conversationCmd.Name(), convProofReqEnvs["name"]))
	pr.StringVar(&proofReqCmd.Template, "template", "", flagInfo("stored proof request template name", conversationCmd.Name(), convProofReqEnvs["template"]))
	pr.StringVar(&proofReqCmd.Attrs, "attrs", "", flagInfo("requested attrs as JSON array", conversationCmd.Name(), convProofReqEnvs["attrs"]))
	pr.StringVar(&proofReqCmd.Predicates, "predicates", "", flagInfo("requested predicates as JSON array", conversationCmd.Name(), convProofReqEnvs["predicates"]))

	cl := convClaimsCmd.Flags()
	cl.StringVar(&claimsCmd.ConversationID, "conversation-id", "", flagInfo("conversation record id", conversationCmd.Name(), convClaimsEnvs["conversation-id"]))
	cl.StringVar(&claimsCmd.Selections, "selections", "", flagInfo("claim selections as JSON object", conversationCmd.Name(), convClaimsEnvs["selections"]))

	p := convPollCmd.Flags()
	p.StringVar(&convPoll.ConversationID, "conversation-id", "", flagInfo("conversation record id", conversationCmd.Name(), convPollEnvs["conversation-id"]))
	p.StringVar(&convPoll.ConnectionID, "connection-id", "", flagInfo("connection record id", conversationCmd.Name(), convPollEnvs["connection-id"]))

	in := convIngestCmd.Flags()
	in.StringVar(&ingestCmd.ConnectionID, "connection-id", "", flagInfo("connection record id", conversationCmd.Name(), convIngestEnvs["connection-id"]))

	rootCmd.AddCommand(conversationCmd)
	conversationCmd.AddCommand(convOfferCmd)
	conversationCmd.AddCommand(convRequestCmd)
	conversationCmd.AddCommand(convProofReqCmd)
	conversationCmd.AddCommand(convClaimsCmd)
	conversationCmd.AddCommand(convPollCmd)
	conversationCmd.AddCommand(convIngestCmd)
}
