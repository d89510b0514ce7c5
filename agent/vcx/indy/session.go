package indy

import (
	"context"
	"encoding/json"

	"github.com/atria-network/atria-agent/agent/async"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/anoncreds"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/findy-network/findy-wrapper-go/ledger"
	"github.com/findy-network/findy-wrapper-go/wallet"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// session is one initialized agent runtime. It owns a wallet handle for its
// lifetime; the pool handle is shared process wide.
type session struct {
	cfg    vcx.Config
	wallet int
	pool   int
	box    *mailbox
}

var _ vcx.Session = (*session)(nil)

func (s *session) Close(ctx context.Context) (err error) {
	defer wrapErr(&err, "close session")

	_, err = async.Await(ctx, wallet.Close(s.wallet))
	return err
}

// rootDID is the DID issuer side operations sign with.
func (s *session) rootDID() string {
	if s.cfg.InstitutionDID != "" {
		return s.cfg.InstitutionDID
	}
	return s.cfg.AgentDID
}

// CreateSchema writes a new schema to the ledger and returns its ledger ID
// together with the schema data for local bookkeeping.
func (s *session) CreateSchema(ctx context.Context, name, version string, attrs []string) (_ vcx.LedgerRecord, err error) {
	defer wrapErr(&err, "create schema")
	defer err2.Handle(&err)

	attrsJSON := try.To1(json.Marshal(attrs))
	r := try.To1(async.Await(ctx, anoncreds.IssuerCreateSchema(
		s.rootDID(), name, version, string(attrsJSON))))
	id, schema := r.Str1(), r.Str2()

	try.To(ledger.WriteSchema(s.pool, s.wallet, s.rootDID(), schema))

	glog.V(1).Infoln("schema written to ledger:", id)
	return vcx.LedgerRecord{ID: id, Data: []byte(schema)}, nil
}

// CreateCredDef reads the schema back from the ledger, creates a credential
// definition for it in the wallet, and publishes the definition.
func (s *session) CreateCredDef(ctx context.Context, schemaID, tag string) (_ vcx.LedgerRecord, err error) {
	defer wrapErr(&err, "create cred def")
	defer err2.Handle(&err)

	_, schema, rerr := ledger.ReadSchema(s.pool, s.rootDID(), schemaID)
	try.To(rerr)

	r := try.To1(async.Await(ctx, anoncreds.IssuerCreateAndStoreCredentialDef(
		s.wallet, s.rootDID(), schema, tag, findy.NullString, findy.NullString)))
	id, credDef := r.Str1(), r.Str2()

	try.To(ledger.WriteCredDef(s.pool, s.wallet, s.rootDID(), credDef))

	glog.V(1).Infoln("cred def written to ledger:", id)
	return vcx.LedgerRecord{ID: id, Data: []byte(credDef)}, nil
}

// CredentialOffers lists credential offers waiting in the mailbox for the
// connection's pairwise DID.
func (s *session) CredentialOffers(ctx context.Context, c vcx.Connection) (_ []vcx.InboundMessage, err error) {
	defer wrapErr(&err, "get credential offers")

	return s.inbound(ctx, c, msgTypeCredOffer)
}

// PresentationRequests lists proof requests waiting in the mailbox for the
// connection's pairwise DID.
func (s *session) PresentationRequests(ctx context.Context, c vcx.Connection) (_ []vcx.InboundMessage, err error) {
	defer wrapErr(&err, "get presentation requests")

	return s.inbound(ctx, c, msgTypeProofRequest)
}

func (s *session) inbound(ctx context.Context, c vcx.Connection, msgType string) (msgs []vcx.InboundMessage, err error) {
	defer err2.Handle(&err)

	conn := ownConn(c)
	raw := try.To1(s.box.Fetch(ctx, conn.data.MyDID, msgType))
	msgs = make([]vcx.InboundMessage, 0, len(raw))
	for _, m := range raw {
		msgs = append(msgs, vcx.InboundMessage{
			MsgRefID: m.RefID,
			Payload:  m.Payload,
		})
	}
	return msgs, nil
}

// schemasJSON resolves schema IDs from the ledger into the map form libindy
// wants for proof operations.
func (s *session) schemasJSON(ids map[string]struct{}) (_ string, err error) {
	defer err2.Handle(&err, "get schemas")

	schemas := make(map[string]map[string]interface{}, len(ids))
	for id := range ids {
		_, schema, rerr := ledger.ReadSchema(s.pool, s.rootDID(), id)
		try.To(rerr)
		obj := map[string]interface{}{}
		dto.FromJSONStr(schema, &obj)
		schemas[id] = obj
	}
	return dto.ToJSON(schemas), nil
}

// credDefsJSON resolves cred def IDs the same way.
func (s *session) credDefsJSON(ids map[string]struct{}) (_ string, err error) {
	defer err2.Handle(&err, "get cred defs")

	credDefs := make(map[string]map[string]interface{}, len(ids))
	for id := range ids {
		_, credDef, rerr := ledger.ReadCredDef(s.pool, s.rootDID(), id)
		try.To(rerr)
		obj := map[string]interface{}{}
		dto.FromJSONStr(credDef, &obj)
		credDefs[id] = obj
	}
	return dto.ToJSON(credDefs), nil
}

// ownConn asserts the connection came from this implementation.
func ownConn(c vcx.Connection) *connection {
	conn, ok := c.(*connection)
	if !ok {
		panic("connection is from another agency implementation")
	}
	return conn
}

func marshalState(v interface{}) []byte {
	return []byte(dto.ToJSON(v))
}
