package indy

import (
	"context"
	"crypto/rand"
	"encoding/json"

	"github.com/atria-network/atria-agent/agent/async"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/findy-network/findy-wrapper-go/did"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/findy-network/findy-wrapper-go/pairwise"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/mr-tron/base58"
)

// invitation is the out-of-band blob an inviter hands to the invitee.
type invitation struct {
	ID              string   `json:"@id"`
	Label           string   `json:"label"`
	RecipientKeys   []string `json:"recipientKeys"`
	ServiceEndpoint string   `json:"serviceEndpoint"`
	DID             string   `json:"did"`
}

// connResponse is the invitee's answer carried through the agency mailbox.
type connResponse struct {
	Label  string `json:"label"`
	DID    string `json:"did"`
	Verkey string `json:"verkey"`
}

// connData is the serializable state of a pairwise connection.
type connData struct {
	Label       string          `json:"label"`
	MyDID       string          `json:"my_did"`
	MyVerkey    string          `json:"my_verkey"`
	TheirDID    string          `json:"their_did,omitempty"`
	TheirVerkey string          `json:"their_verkey,omitempty"`
	Thread      string          `json:"thread_id"`
	Inviter     bool            `json:"inviter"`
	State       vcx.State       `json:"state"`
	Invite      json.RawMessage `json:"invite,omitempty"`
}

type connection struct {
	s    *session
	data connData
}

var _ vcx.Connection = (*connection)(nil)

// newThreadID returns an indy style nonce, base58 over random bytes.
func newThreadID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return base58.Encode(b[:])
}

// CreateConnection makes the inviter side protocol object: a fresh pairwise
// DID and an invitation that carries it.
func (s *session) CreateConnection(ctx context.Context, label string) (_ vcx.Connection, err error) {
	defer wrapErr(&err, "create connection")
	defer err2.Handle(&err)

	r := try.To1(async.Await(ctx, did.CreateAndStore(s.wallet, did.Did{})))
	myDID, myVerkey := r.Str1(), r.Str2()

	thread := newThreadID()
	inv := invitation{
		ID:              thread,
		Label:           label,
		RecipientKeys:   []string{myVerkey},
		ServiceEndpoint: s.cfg.AgencyURL,
		DID:             myDID,
	}

	return &connection{
		s: s,
		data: connData{
			Label:    label,
			MyDID:    myDID,
			MyVerkey: myVerkey,
			Thread:   thread,
			Inviter:  true,
			State:    vcx.StateInitialized,
			Invite:   []byte(dto.ToJSON(inv)),
		},
	}, nil
}

// ConnectionFromInvite makes the invitee side protocol object from a
// received invitation.
func (s *session) ConnectionFromInvite(ctx context.Context, label string, invite []byte) (_ vcx.Connection, err error) {
	defer wrapErr(&err, "connection from invite")
	defer err2.Handle(&err)

	var inv invitation
	try.To(json.Unmarshal(invite, &inv))

	r := try.To1(async.Await(ctx, did.CreateAndStore(s.wallet, did.Did{})))
	myDID, myVerkey := r.Str1(), r.Str2()

	theirVerkey := ""
	if len(inv.RecipientKeys) > 0 {
		theirVerkey = inv.RecipientKeys[0]
	}

	return &connection{
		s: s,
		data: connData{
			Label:       label,
			MyDID:       myDID,
			MyVerkey:    myVerkey,
			TheirDID:    inv.DID,
			TheirVerkey: theirVerkey,
			Thread:      inv.ID,
			State:       vcx.StateInitialized,
			Invite:      invite,
		},
	}, nil
}

func (s *session) DeserializeConnection(_ context.Context, data []byte) (_ vcx.Connection, err error) {
	defer wrapErr(&err, "deserialize connection")
	defer err2.Handle(&err)

	c := &connection{s: s}
	try.To(json.Unmarshal(data, &c.data))
	return c, nil
}

// Connect starts the exchange. The inviter has nothing to send over the
// mailbox, the invitation travels out of band; the invitee answers the
// invitation and completes its side of the pairwise immediately.
func (c *connection) Connect(ctx context.Context) (err error) {
	defer wrapErr(&err, "connect")
	defer err2.Handle(&err)

	if c.data.Inviter {
		c.data.State = vcx.StateOfferSent
		return nil
	}

	resp := connResponse{
		Label:  c.data.Label,
		DID:    c.data.MyDID,
		Verkey: c.data.MyVerkey,
	}
	try.To(c.s.box.Post(ctx, boxMsg{
		Type:    msgTypeConnResponse,
		FromDID: c.data.MyDID,
		ToDID:   c.data.TheirDID,
		Thread:  c.data.Thread,
		Payload: []byte(dto.ToJSON(resp)),
	}))

	try.To(c.storePairwise(ctx))
	c.data.State = vcx.StateAccepted
	return nil
}

// UpdateState polls the mailbox for the invitee's answer. Idempotent once
// the connection is complete.
func (c *connection) UpdateState(ctx context.Context) (_ vcx.State, err error) {
	defer wrapErr(&err, "connection update state")
	defer err2.Handle(&err)

	if c.data.State == vcx.StateAccepted || !c.data.Inviter {
		return c.data.State, nil
	}

	msg, found := try.To2(c.s.box.TakeThread(
		ctx, c.data.MyDID, msgTypeConnResponse, c.data.Thread))
	if !found {
		return c.data.State, nil
	}

	var resp connResponse
	try.To(json.Unmarshal(msg.Payload, &resp))
	c.data.TheirDID = resp.DID
	c.data.TheirVerkey = resp.Verkey

	try.To(c.storePairwise(ctx))
	c.data.State = vcx.StateAccepted
	glog.V(2).Infoln("connection complete:", c.data.MyDID, "<->", c.data.TheirDID)
	return c.data.State, nil
}

// storePairwise saves the counterpart's DID document and binds the two DIDs
// in the wallet.
func (c *connection) storePairwise(ctx context.Context) (err error) {
	defer err2.Handle(&err, "store pairwise")

	idJSON := dto.ToJSON(did.Did{
		Did:    c.data.TheirDID,
		VerKey: c.data.TheirVerkey,
	})
	try.To1(async.Await(ctx, did.StoreTheir(c.s.wallet, idJSON)))

	try.To1(async.Await(ctx, pairwise.Create(
		c.s.wallet, c.data.TheirDID, c.data.MyDID, c.data.Label)))
	return nil
}

func (c *connection) InviteDetails(_ context.Context) (_ []byte, err error) {
	defer wrapErr(&err, "invite details")

	if len(c.data.Invite) == 0 {
		return nil, vcx.ErrNotFound
	}
	return c.data.Invite, nil
}

func (c *connection) Serialize() ([]byte, error) {
	return marshalState(c.data), nil
}
