// Package conversation has the CLI commands for driving credential and
// proof exchanges over existing connections.
package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/atria-network/atria-agent/agent/conversation"
	"github.com/atria-network/atria-agent/agent/registry"
	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/utils"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/atria-network/atria-agent/cmds"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Cmd is shared by all conversation commands.
type Cmd struct {
	cmds.Cmd
	Agency vcx.Agency
}

func (c Cmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.Agency == nil {
		return errors.New("agency implementation missing")
	}
	return nil
}

func (c Cmd) session(f func(ctx context.Context, sess vcx.Session) error) (err error) {
	defer err2.Handle(&err)

	ctx, cancel := cmds.Ctx()
	defer cancel()

	sess := try.To1(cmds.OpenSession(ctx, c.Agency, c.WalletName))
	defer func() {
		if cerr := sess.Close(ctx); cerr != nil {
			glog.Warningln("close session:", cerr)
		}
	}()
	return f(ctx, sess)
}

// connectionFor resolves the connection record a conversation runs over. An
// Active record wins; a Sent one still serves when nothing better exists.
func connectionFor(convRep *storage.ConversationRep) (_ *storage.ConnectionRep, err error) {
	defer err2.Handle(&err)

	reps := try.To1(storage.ConnectionReps(func(r *storage.ConnectionRep) bool {
		return r.WalletName == convRep.WalletName && r.PartnerName == convRep.PartnerName
	}))
	var fallback *storage.ConnectionRep
	for _, r := range reps {
		if r.Status == storage.StatusActive {
			return r, nil
		}
		fallback = r
	}
	if fallback == nil {
		return nil, fmt.Errorf("connection for %s/%s: %w",
			convRep.WalletName, convRep.PartnerName, vcx.ErrNotFound)
	}
	return fallback, nil
}

func getConnection(id string) (_ *storage.ConnectionRep, err error) {
	defer err2.Handle(&err)

	rep, found := try.To2(storage.GetConnectionRep(id))
	if !found {
		return nil, fmt.Errorf("connection %s: %w", id, vcx.ErrNotFound)
	}
	return rep, nil
}

func getConversation(id string) (_ *storage.ConversationRep, err error) {
	defer err2.Handle(&err)

	rep, found := try.To2(storage.GetConversationRep(id))
	if !found {
		return nil, fmt.Errorf("conversation %s: %w", id, vcx.ErrNotFound)
	}
	return rep, nil
}

// IDResult carries the id of the conversation a command created or touched.
type IDResult struct {
	ConversationID string
}

func (r IDResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// OfferCmd sends a credential offer over a connection. Values is a JSON
// object of attribute values; attributes the cred def template names but
// Values omits go out with the template's defaults.
type OfferCmd struct {
	Cmd
	ConnectionID string
	CredDefID    string
	Name         string
	Values       string
}

func (c OfferCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.ConnectionID == "" {
		return errors.New("connection id cannot be empty")
	}
	if c.CredDefID == "" {
		return errors.New("cred def id cannot be empty")
	}
	if c.Values != "" && !json.Valid([]byte(c.Values)) {
		return errors.New("values must be a JSON object")
	}
	return nil
}

func (c OfferCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "offer")

	connRep := try.To1(getConnection(c.ConnectionID))
	credDef, found := try.To2(storage.GetCredDefRep(c.CredDefID))
	if !found {
		return nil, fmt.Errorf("cred def %s: %w", c.CredDefID, vcx.ErrNotFound)
	}

	attrs := make(map[string]string, len(credDef.Template))
	for k, v := range credDef.Template {
		attrs[k] = v
	}
	if c.Values != "" {
		given := make(map[string]string)
		try.To(json.Unmarshal([]byte(c.Values), &given))
		for k, v := range given {
			attrs[k] = v
		}
	}
	name := c.Name
	if name == "" {
		name = credDef.Name
	}

	var id string
	try.To(c.session(func(ctx context.Context, sess vcx.Session) (err error) {
		defer err2.Handle(&err)
		id = try.To1(conversation.OfferCredential(
			ctx, sess, connRep, utils.UUID(), attrs, credDef, name))
		return nil
	}))

	cmds.Fprintln(w, "Credential offered:", id)
	return IDResult{ConversationID: id}, nil
}

// RequestCmd answers an ingested credential offer.
type RequestCmd struct {
	Cmd
	ConversationID string
}

func (c RequestCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.ConversationID == "" {
		return errors.New("conversation id cannot be empty")
	}
	return nil
}

func (c RequestCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "request")

	convRep := try.To1(getConversation(c.ConversationID))
	connRep := try.To1(connectionFor(convRep))

	try.To(c.session(func(ctx context.Context, sess vcx.Session) (err error) {
		defer err2.Handle(&err)
		return conversation.RequestCredential(ctx, sess, connRep, convRep)
	}))

	cmds.Fprintln(w, "Credential requested:", convRep.ID)
	return IDResult{ConversationID: convRep.ID}, nil
}

// ProofRequestCmd sends a proof request over a connection, either from a
// stored template or from inline attr/predicate JSON.
type ProofRequestCmd struct {
	Cmd
	ConnectionID string
	Name         string
	Template     string
	Attrs        string
	Predicates   string
}

func (c ProofRequestCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.ConnectionID == "" {
		return errors.New("connection id cannot be empty")
	}
	if c.Template == "" && c.Attrs == "" {
		return errors.New("template name or attrs are needed")
	}
	if c.Template != "" && c.Attrs != "" {
		return errors.New("template and inline attrs are exclusive")
	}
	return nil
}

func (c ProofRequestCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "proof request")

	connRep := try.To1(getConnection(c.ConnectionID))

	var (
		attrs      []vcx.ProofAttr
		predicates []vcx.ProofPredicate
	)
	name := c.Name
	if c.Template != "" {
		attrs, predicates = try.To2(registry.ProofReqTemplate(c.Template))
		if name == "" {
			name = c.Template
		}
	} else {
		try.To(json.Unmarshal([]byte(c.Attrs), &attrs))
		if c.Predicates != "" {
			try.To(json.Unmarshal([]byte(c.Predicates), &predicates))
		}
	}

	var id string
	try.To(c.session(func(ctx context.Context, sess vcx.Session) (err error) {
		defer err2.Handle(&err)
		id = try.To1(conversation.SendProofRequest(
			ctx, sess, connRep, name, attrs, predicates))
		return nil
	}))

	cmds.Fprintln(w, "Proof requested:", id)
	return IDResult{ConversationID: id}, nil
}

// ClaimsCmd selects claims for an ingested proof request and sends the
// proof. Selections is a JSON object mapping attribute referents to either a
// candidate credential index or a self-attested value.
type ClaimsCmd struct {
	Cmd
	ConversationID string
	Selections     string
}

func (c ClaimsCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.ConversationID == "" {
		return errors.New("conversation id cannot be empty")
	}
	if c.Selections == "" {
		return errors.New("selections cannot be empty")
	}
	if !json.Valid([]byte(c.Selections)) {
		return errors.New("selections must be a JSON object")
	}
	return nil
}

func (c ClaimsCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "claims")

	convRep := try.To1(getConversation(c.ConversationID))
	connRep := try.To1(connectionFor(convRep))

	selections := make(map[string]string)
	try.To(json.Unmarshal([]byte(c.Selections), &selections))

	try.To(c.session(func(ctx context.Context, sess vcx.Session) (err error) {
		defer err2.Handle(&err)
		return conversation.SelectClaimsAndSendProof(ctx, sess, connRep, convRep, selections)
	}))

	cmds.Fprintln(w, "Proof sent:", convRep.ID)
	return IDResult{ConversationID: convRep.ID}, nil
}

// PollCmd advances one conversation, or everything pending on a connection.
type PollCmd struct {
	Cmd
	ConversationID string
	ConnectionID   string
}

type PollResult struct {
	Polled int
}

func (r PollResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c PollCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.ConversationID == "" && c.ConnectionID == "" {
		return errors.New("conversation or connection id is needed")
	}
	return nil
}

func (c PollCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "poll conversations")

	result := PollResult{}
	try.To(c.session(func(ctx context.Context, sess vcx.Session) (err error) {
		defer err2.Handle(&err)

		if c.ConversationID != "" {
			convRep := try.To1(getConversation(c.ConversationID))
			connRep := try.To1(connectionFor(convRep))
			result.Polled = try.To1(conversation.Poll(ctx, sess, connRep, convRep))
			return nil
		}

		connRep := try.To1(getConnection(c.ConnectionID))
		result.Polled = try.To1(conversation.PollAll(ctx, sess, connRep))
		return nil
	}))

	cmds.Fprintln(w, "Polled conversations:", result.Polled)
	return result, nil
}

// IngestCmd pulls the connection's waiting offers and proof requests into
// Pending conversation records. Re-running it is safe; already-seen messages
// are skipped.
type IngestCmd struct {
	Cmd
	ConnectionID string
}

type IngestResult struct {
	Ingested int
}

func (r IngestResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c IngestCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.ConnectionID == "" {
		return errors.New("connection id cannot be empty")
	}
	return nil
}

func (c IngestCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "ingest")

	connRep := try.To1(getConnection(c.ConnectionID))

	result := IngestResult{}
	try.To(c.session(func(ctx context.Context, sess vcx.Session) (err error) {
		defer err2.Handle(&err)
		result.Ingested = try.To1(conversation.IngestInbound(ctx, sess, connRep))
		return nil
	}))

	cmds.Fprintln(w, "Ingested messages:", result.Ingested)
	return result, nil
}
