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
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// duplicate master secret, reused as is
const masterSecretDuplicateError = 404

// offerPayload is the credential offer as it travels through the mailbox.
// Thread rides inside the payload so the holder can answer on it.
type offerPayload struct {
	Name      string            `json:"name"`
	CredDefID string            `json:"cred_def_id"`
	Thread    string            `json:"thread_id"`
	Values    map[string]string `json:"values"`
	Offer     json.RawMessage   `json:"offer"`
}

// codedValues builds the raw+encoded attribute map libindy wants when the
// credential is created.
func codedValues(attrs map[string]string) string {
	rMap := make(map[string]anoncreds.CredDefAttr, len(attrs))
	for name, value := range attrs {
		a := anoncreds.CredDefAttr{}
		a.SetRawAries(value)
		rMap[name] = a
	}
	return dto.ToJSON(rMap)
}

// issuerCredData is the serializable state of the issuer side.
type issuerCredData struct {
	Tag       string            `json:"tag"`
	Name      string            `json:"name"`
	CredDefID string            `json:"cred_def_id"`
	Attrs     map[string]string `json:"attrs"`
	Values    string            `json:"values"`
	Offer     string            `json:"offer,omitempty"`
	CredReq   string            `json:"cred_req,omitempty"`
	Thread    string            `json:"thread_id"`
	MyDID     string            `json:"my_did,omitempty"`
	TheirDID  string            `json:"their_did,omitempty"`
	CredSent  bool              `json:"cred_sent"`
	State     vcx.State         `json:"state"`
}

type issuerCredential struct {
	s    *session
	data issuerCredData
}

var _ vcx.IssuerCredential = (*issuerCredential)(nil)

// CreateIssuerCredential prepares an offer for the attribute values against
// an existing credential definition.
func (s *session) CreateIssuerCredential(_ context.Context, tag string, attrs map[string]string,
	credDefData []byte, name string) (_ vcx.IssuerCredential, err error) {

	defer wrapErr(&err, "create issuer credential")
	defer err2.Handle(&err)

	var credDef struct {
		ID string `json:"id"`
	}
	try.To(json.Unmarshal(credDefData, &credDef))
	if credDef.ID == "" {
		return nil, vcx.ErrNotFound
	}

	return &issuerCredential{
		s: s,
		data: issuerCredData{
			Tag:       tag,
			Name:      name,
			CredDefID: credDef.ID,
			Attrs:     attrs,
			Values:    codedValues(attrs),
			Thread:    newThreadID(),
			State:     vcx.StateInitialized,
		},
	}, nil
}

func (s *session) DeserializeIssuerCredential(_ context.Context, data []byte) (_ vcx.IssuerCredential, err error) {
	defer wrapErr(&err, "deserialize issuer credential")
	defer err2.Handle(&err)

	ic := &issuerCredential{s: s}
	try.To(json.Unmarshal(data, &ic.data))
	return ic, nil
}

// SendOffer builds the anoncreds offer in the wallet and delivers it through
// the holder's mailbox.
func (ic *issuerCredential) SendOffer(ctx context.Context, c vcx.Connection) (err error) {
	defer wrapErr(&err, "send offer")
	defer err2.Handle(&err)

	conn := ownConn(c)
	ic.data.MyDID = conn.data.MyDID
	ic.data.TheirDID = conn.data.TheirDID

	r := try.To1(async.Await(ctx, anoncreds.IssuerCreateCredentialOffer(
		ic.s.wallet, ic.data.CredDefID)))
	offer := r.Str1()
	ic.data.Offer = offer

	payload := offerPayload{
		Name:      ic.data.Name,
		CredDefID: ic.data.CredDefID,
		Thread:    ic.data.Thread,
		Values:    ic.data.Attrs,
		Offer:     []byte(offer),
	}
	try.To(ic.s.box.Post(ctx, boxMsg{
		Type:    msgTypeCredOffer,
		FromDID: conn.data.MyDID,
		ToDID:   conn.data.TheirDID,
		Thread:  ic.data.Thread,
		Payload: []byte(dto.ToJSON(payload)),
	}))

	ic.data.State = vcx.StateOfferSent
	return nil
}

// UpdateState advances on the holder's answers: the credential request after
// the offer, the ack after the credential.
func (ic *issuerCredential) UpdateState(ctx context.Context) (_ vcx.State, err error) {
	defer wrapErr(&err, "issuer credential update state")
	defer err2.Handle(&err)

	myDID := ic.data.MyDID

	switch {
	case ic.data.State == vcx.StateOfferSent && !ic.data.CredSent:
		msg, found := try.To2(ic.s.box.TakeThread(
			ctx, myDID, msgTypeCredRequest, ic.data.Thread))
		if found {
			ic.data.CredReq = string(msg.Payload)
			ic.data.State = vcx.StateRequestReceived
		}
	case ic.data.CredSent && ic.data.State != vcx.StateAccepted:
		_, found := try.To2(ic.s.box.TakeThread(
			ctx, myDID, msgTypeCredACK, ic.data.Thread))
		if found {
			ic.data.State = vcx.StateAccepted
			glog.V(2).Infoln("credential accepted, thread", ic.data.Thread)
		}
	}
	return ic.data.State, nil
}

// SendCredential answers a received credential request with the signed
// credential.
func (ic *issuerCredential) SendCredential(ctx context.Context, c vcx.Connection) (err error) {
	defer wrapErr(&err, "send credential")
	defer err2.Handle(&err)

	if ic.data.CredReq == "" {
		return vcx.ErrNotFound
	}

	conn := ownConn(c)
	r := try.To1(async.Await(ctx, anoncreds.IssuerCreateCredential(
		ic.s.wallet, ic.data.Offer, ic.data.CredReq, ic.data.Values,
		findy.NullString, findy.NullHandle)))
	cred := r.Str1()

	try.To(ic.s.box.Post(ctx, boxMsg{
		Type:    msgTypeCredential,
		FromDID: conn.data.MyDID,
		ToDID:   conn.data.TheirDID,
		Thread:  ic.data.Thread,
		Payload: []byte(cred),
	}))

	ic.data.CredSent = true
	return nil
}

func (ic *issuerCredential) Serialize() ([]byte, error) {
	return marshalState(ic.data), nil
}

// holderCredData is the serializable state of the holder side.
type holderCredData struct {
	Name        string    `json:"name"`
	CredDefID   string    `json:"cred_def_id"`
	CredDef     string    `json:"cred_def,omitempty"`
	Offer       string    `json:"offer"`
	CredReqMeta string    `json:"cred_req_meta,omitempty"`
	Thread      string    `json:"thread_id"`
	MyDID       string    `json:"my_did,omitempty"`
	TheirDID    string    `json:"their_did,omitempty"`
	State       vcx.State `json:"state"`
}

type holderCredential struct {
	s    *session
	data holderCredData
}

var _ vcx.Credential = (*holderCredential)(nil)

// CredentialFromOffer makes the holder side protocol object from a mailbox
// offer payload.
func (s *session) CredentialFromOffer(_ context.Context, offer []byte) (_ vcx.Credential, err error) {
	defer wrapErr(&err, "credential from offer")
	defer err2.Handle(&err)

	var payload offerPayload
	try.To(json.Unmarshal(offer, &payload))

	return &holderCredential{
		s: s,
		data: holderCredData{
			Name:      payload.Name,
			CredDefID: payload.CredDefID,
			Offer:     string(payload.Offer),
			Thread:    payload.Thread,
			State:     vcx.StateRequestReceived,
		},
	}, nil
}

func (s *session) DeserializeCredential(_ context.Context, data []byte) (_ vcx.Credential, err error) {
	defer wrapErr(&err, "deserialize credential")
	defer err2.Handle(&err)

	hc := &holderCredential{s: s}
	try.To(json.Unmarshal(data, &hc.data))
	return hc, nil
}

// ensureMasterSecret creates the wallet's master secret on first use. The
// secret ID is the wallet name; a duplicate means it is already there.
func (s *session) ensureMasterSecret(ctx context.Context) (id string, err error) {
	id = s.cfg.WalletName
	r, rerr := async.Await(ctx, anoncreds.ProverCreateMasterSecret(s.wallet, id))
	if rerr != nil && r.ErrCode() != masterSecretDuplicateError {
		return "", rerr
	}
	return id, nil
}

// SendRequest builds and sends the credential request for the offer.
func (hc *holderCredential) SendRequest(ctx context.Context, c vcx.Connection) (err error) {
	defer wrapErr(&err, "send credential request")
	defer err2.Handle(&err)

	conn := ownConn(c)

	_, credDef, rerr := ledger.ReadCredDef(
		hc.s.pool, hc.s.rootDID(), hc.data.CredDefID)
	try.To(rerr)
	hc.data.CredDef = credDef

	masterSecID := try.To1(hc.s.ensureMasterSecret(ctx))

	r := try.To1(async.Await(ctx, anoncreds.ProverCreateCredentialReq(
		hc.s.wallet, conn.data.MyDID, hc.data.Offer, credDef, masterSecID)))
	credReq, credReqMeta := r.Str1(), r.Str2()
	hc.data.CredReqMeta = credReqMeta
	hc.data.MyDID = conn.data.MyDID
	hc.data.TheirDID = conn.data.TheirDID

	try.To(hc.s.box.Post(ctx, boxMsg{
		Type:    msgTypeCredRequest,
		FromDID: conn.data.MyDID,
		ToDID:   conn.data.TheirDID,
		Thread:  hc.data.Thread,
		Payload: []byte(credReq),
	}))

	hc.data.State = vcx.StateOfferSent
	return nil
}

// UpdateState waits for the issued credential, stores it to the wallet, and
// acknowledges it.
func (hc *holderCredential) UpdateState(ctx context.Context) (_ vcx.State, err error) {
	defer wrapErr(&err, "holder credential update state")
	defer err2.Handle(&err)

	if hc.data.State != vcx.StateOfferSent {
		return hc.data.State, nil
	}

	myDID := hc.data.MyDID
	msg, found := try.To2(hc.s.box.TakeThread(
		ctx, myDID, msgTypeCredential, hc.data.Thread))
	if !found {
		return hc.data.State, nil
	}

	try.To1(async.Await(ctx, anoncreds.ProverStoreCredential(
		hc.s.wallet, findy.NullString, hc.data.CredReqMeta,
		string(msg.Payload), hc.data.CredDef, findy.NullString)))

	try.To(hc.s.box.Post(ctx, boxMsg{
		Type:    msgTypeCredACK,
		FromDID: myDID,
		ToDID:   hc.data.TheirDID,
		Thread:  hc.data.Thread,
		Payload: []byte("{}"),
	}))

	hc.data.State = vcx.StateAccepted
	glog.V(2).Infoln("credential stored, thread", hc.data.Thread)
	return hc.data.State, nil
}

func (hc *holderCredential) Serialize() ([]byte, error) {
	return marshalState(hc.data), nil
}
