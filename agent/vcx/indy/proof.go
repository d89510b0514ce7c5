package indy

import (
	"context"
	"encoding/json"
	"strconv"

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

const fetchMax = 10

// proofReqPayload is the proof request as it travels through the mailbox.
type proofReqPayload struct {
	Name     string          `json:"name"`
	Thread   string          `json:"thread_id"`
	ProofReq json.RawMessage `json:"proof_req"`
}

// credSearchItem matches libindy's credential search result item.
type credSearchItem struct {
	CredInfo vcx.CredentialInfo `json:"cred_info"`
}

// proofReqData is the serializable state of the verifier side.
type proofReqData struct {
	SourceID string    `json:"source_id"`
	Name     string    `json:"name"`
	ProofReq string    `json:"proof_req"`
	Proof    string    `json:"proof,omitempty"`
	Thread   string    `json:"thread_id"`
	MyDID    string    `json:"my_did,omitempty"`
	TheirDID string    `json:"their_did,omitempty"`
	State    vcx.State `json:"state"`
}

type proofRequest struct {
	s    *session
	data proofReqData
}

var _ vcx.ProofRequest = (*proofRequest)(nil)

// CreateProofRequest builds the anoncreds proof request for the wanted
// attributes and predicates.
func (s *session) CreateProofRequest(_ context.Context, sourceID, name string,
	attrs []vcx.ProofAttr, predicates []vcx.ProofPredicate) (_ vcx.ProofRequest, err error) {

	defer wrapErr(&err, "create proof request")

	reqAttrs := make(map[string]anoncreds.AttrInfo, len(attrs))
	for i, attr := range attrs {
		id := "attr_referent_" + strconv.Itoa(i+1)
		reqAttrs[id] = anoncreds.AttrInfo{
			Name:         attr.Name,
			Restrictions: filters(attr.Restrictions),
		}
	}
	reqPredicates := make(map[string]anoncreds.PredicateInfo, len(predicates))
	for i, pred := range predicates {
		id := "predicate_referent_" + strconv.Itoa(i+1)
		reqPredicates[id] = anoncreds.PredicateInfo{
			Name:   pred.Name,
			PType:  pred.PType,
			PValue: pred.PValue,
		}
	}

	thread := newThreadID()
	proofReq := anoncreds.ProofRequest{
		Name:                name,
		Version:             "0.1",
		Nonce:               thread,
		RequestedAttributes: reqAttrs,
		RequestedPredicates: reqPredicates,
	}

	return &proofRequest{
		s: s,
		data: proofReqData{
			SourceID: sourceID,
			Name:     name,
			ProofReq: dto.ToJSON(proofReq),
			Thread:   thread,
			State:    vcx.StateInitialized,
		},
	}, nil
}

func filters(restr []vcx.Filter) []anoncreds.Filter {
	out := make([]anoncreds.Filter, 0, len(restr))
	for _, r := range restr {
		out = append(out, anoncreds.Filter{
			IssuerDID: r.IssuerDID,
			SchemaID:  r.SchemaID,
			CredDefID: r.CredDefID,
		})
	}
	return out
}

func (s *session) DeserializeProofRequest(_ context.Context, data []byte) (_ vcx.ProofRequest, err error) {
	defer wrapErr(&err, "deserialize proof request")
	defer err2.Handle(&err)

	pr := &proofRequest{s: s}
	try.To(json.Unmarshal(data, &pr.data))
	return pr, nil
}

// Request delivers the proof request to the prover's mailbox.
func (pr *proofRequest) Request(ctx context.Context, c vcx.Connection) (err error) {
	defer wrapErr(&err, "send proof request")
	defer err2.Handle(&err)

	conn := ownConn(c)
	pr.data.MyDID = conn.data.MyDID
	pr.data.TheirDID = conn.data.TheirDID

	payload := proofReqPayload{
		Name:     pr.data.Name,
		Thread:   pr.data.Thread,
		ProofReq: []byte(pr.data.ProofReq),
	}
	try.To(pr.s.box.Post(ctx, boxMsg{
		Type:    msgTypeProofRequest,
		FromDID: conn.data.MyDID,
		ToDID:   conn.data.TheirDID,
		Thread:  pr.data.Thread,
		Payload: []byte(dto.ToJSON(payload)),
	}))

	pr.data.State = vcx.StateOfferSent
	return nil
}

// UpdateState polls for the prover's presentation.
func (pr *proofRequest) UpdateState(ctx context.Context) (_ vcx.State, err error) {
	defer wrapErr(&err, "proof request update state")
	defer err2.Handle(&err)

	if pr.data.State != vcx.StateOfferSent {
		return pr.data.State, nil
	}

	msg, found := try.To2(pr.s.box.TakeThread(
		ctx, pr.data.MyDID, msgTypeProof, pr.data.Thread))
	if !found {
		return pr.data.State, nil
	}

	pr.data.Proof = string(msg.Payload)
	pr.data.State = vcx.StateAccepted
	glog.V(2).Infoln("presentation received, thread", pr.data.Thread)
	return pr.data.State, nil
}

// Proof verifies the received presentation cryptographically against the
// ledger. Schemas and cred defs are resolved from the proof's identifiers.
func (pr *proofRequest) Proof(ctx context.Context, _ vcx.Connection) (_ vcx.ProofState, err error) {
	defer wrapErr(&err, "verify proof")
	defer err2.Handle(&err)

	if pr.data.Proof == "" {
		return vcx.ProofUndefined, vcx.ErrNotFound
	}

	var proof anoncreds.Proof
	dto.FromJSONStr(pr.data.Proof, &proof)

	schemaIDs := make(map[string]struct{}, len(proof.Identifiers))
	credDefIDs := make(map[string]struct{}, len(proof.Identifiers))
	for _, id := range proof.Identifiers {
		schemaIDs[id.SchemaID] = struct{}{}
		credDefIDs[id.CredDefID] = struct{}{}
	}
	schemasJSON := try.To1(pr.s.schemasJSON(schemaIDs))
	credDefsJSON := try.To1(pr.s.credDefsJSON(credDefIDs))

	r := try.To1(async.Await(ctx, anoncreds.VerifierVerifyProof(
		pr.data.ProofReq, pr.data.Proof, schemasJSON, credDefsJSON, "{}", "{}")))
	if r.Yes() {
		return vcx.ProofVerified, nil
	}
	return vcx.ProofInvalid, nil
}

func (pr *proofRequest) Serialize() ([]byte, error) {
	return marshalState(pr.data), nil
}

// disclosedData is the serializable state of the prover side.
type disclosedData struct {
	Name     string    `json:"name"`
	ProofReq string    `json:"proof_req"`
	Proof    string    `json:"proof,omitempty"`
	Thread   string    `json:"thread_id"`
	MyDID    string    `json:"my_did,omitempty"`
	TheirDID string    `json:"their_did,omitempty"`
	State    vcx.State `json:"state"`
}

type disclosedProof struct {
	s    *session
	data disclosedData
}

var _ vcx.DisclosedProof = (*disclosedProof)(nil)

// ProofFromRequest makes the prover side protocol object from a mailbox
// proof request payload.
func (s *session) ProofFromRequest(_ context.Context, request []byte) (_ vcx.DisclosedProof, err error) {
	defer wrapErr(&err, "proof from request")
	defer err2.Handle(&err)

	var payload proofReqPayload
	try.To(json.Unmarshal(request, &payload))

	return &disclosedProof{
		s: s,
		data: disclosedData{
			Name:     payload.Name,
			ProofReq: string(payload.ProofReq),
			Thread:   payload.Thread,
			State:    vcx.StateRequestReceived,
		},
	}, nil
}

func (s *session) DeserializeProof(_ context.Context, data []byte) (_ vcx.DisclosedProof, err error) {
	defer wrapErr(&err, "deserialize proof")
	defer err2.Handle(&err)

	dp := &disclosedProof{s: s}
	try.To(json.Unmarshal(data, &dp.data))
	return dp, nil
}

// Credentials searches the wallet for credentials that can answer each
// requested attribute.
func (dp *disclosedProof) Credentials(ctx context.Context) (_ *vcx.CredentialsForProof, err error) {
	defer wrapErr(&err, "credentials for proof")
	defer err2.Handle(&err)

	var proofReq anoncreds.ProofRequest
	dto.FromJSONStr(dp.data.ProofReq, &proofReq)

	r := try.To1(async.Await(ctx, anoncreds.ProverSearchCredentialsForProofReq(
		dp.s.wallet, dp.data.ProofReq, findy.NullString)))
	searchHandle := r.Handle()
	defer func() {
		// close runs even when the context already expired
		r := <-anoncreds.ProverCloseCredentialsSearchForProofReq(searchHandle)
		if r.Err() != nil {
			glog.Errorln("close credential search:", r.Err())
		}
	}()

	result := &vcx.CredentialsForProof{
		Attrs: make(map[string][]vcx.CredentialInfo, len(proofReq.RequestedAttributes)),
	}
	for attrRef := range proofReq.RequestedAttributes {
		infos := try.To1(fetchCredentials(ctx, searchHandle, attrRef))
		result.Attrs[attrRef] = infos
	}
	return result, nil
}

// fetchCredentials drains the search for one referent.
func fetchCredentials(ctx context.Context, searchHandle int, referent string) (infos []vcx.CredentialInfo, err error) {
	defer err2.Handle(&err)

	infos = make([]vcx.CredentialInfo, 0, fetchMax)
	for {
		r := try.To1(async.Await(ctx, anoncreds.ProverFetchCredentialsForProofReq(
			searchHandle, referent, fetchMax)))

		items := make([]credSearchItem, 0, fetchMax)
		dto.FromJSONStr(r.Str1(), &items)
		for _, item := range items {
			infos = append(infos, item.CredInfo)
		}
		if len(items) < fetchMax {
			return infos, nil
		}
	}
}

// Generate builds the proof from the caller's credential selection and
// self-attested values.
func (dp *disclosedProof) Generate(ctx context.Context,
	selected map[string]vcx.CredentialInfo, selfAttested map[string]string) (err error) {

	defer wrapErr(&err, "generate proof")
	defer err2.Handle(&err)

	var proofReq anoncreds.ProofRequest
	dto.FromJSONStr(dp.data.ProofReq, &proofReq)

	reqCred := anoncreds.RequestedCredentials{
		SelfAttestedAttributes: make(map[string]string, len(selfAttested)),
		RequestedAttributes:    make(map[string]anoncreds.RequestedAttrObject, len(selected)),
		RequestedPredicates:    make(map[string]anoncreds.RequestedPredObject),
	}
	for referent, value := range selfAttested {
		reqCred.SelfAttestedAttributes[referent] = value
	}

	schemaIDs := make(map[string]struct{}, len(selected))
	credDefIDs := make(map[string]struct{}, len(selected))
	for referent, info := range selected {
		reqCred.RequestedAttributes[referent] = anoncreds.RequestedAttrObject{
			CredID:    info.Referent,
			Revealed:  true,
			Timestamp: nil,
		}
		schemaIDs[info.SchemaID] = struct{}{}
		credDefIDs[info.CredDefID] = struct{}{}
	}

	// predicates are answered with the first matching credential
	if len(proofReq.RequestedPredicates) > 0 {
		r := try.To1(async.Await(ctx, anoncreds.ProverSearchCredentialsForProofReq(
			dp.s.wallet, dp.data.ProofReq, findy.NullString)))
		searchHandle := r.Handle()
		defer func() {
			r := <-anoncreds.ProverCloseCredentialsSearchForProofReq(searchHandle)
			if r.Err() != nil {
				glog.Errorln("close credential search:", r.Err())
			}
		}()

		for predRef := range proofReq.RequestedPredicates {
			infos := try.To1(fetchCredentials(ctx, searchHandle, predRef))
			if len(infos) == 0 {
				continue
			}
			reqCred.RequestedPredicates[predRef] = anoncreds.RequestedPredObject{
				CredID:    infos[0].Referent,
				Timestamp: nil,
			}
			schemaIDs[infos[0].SchemaID] = struct{}{}
			credDefIDs[infos[0].CredDefID] = struct{}{}
		}

	}

	schemasJSON := try.To1(dp.s.schemasJSON(schemaIDs))
	credDefsJSON := try.To1(dp.s.credDefsJSON(credDefIDs))
	masterSecID := try.To1(dp.s.ensureMasterSecret(ctx))

	r := try.To1(async.Await(ctx, anoncreds.ProverCreateProof(
		dp.s.wallet, dp.data.ProofReq, dto.ToJSON(reqCred),
		masterSecID, schemasJSON, credDefsJSON, "{}")))
	dp.data.Proof = r.Str1()
	return nil
}

// Send delivers the generated presentation to the verifier's mailbox.
func (dp *disclosedProof) Send(ctx context.Context, c vcx.Connection) (err error) {
	defer wrapErr(&err, "send proof")
	defer err2.Handle(&err)

	if dp.data.Proof == "" {
		return vcx.ErrNotFound
	}

	conn := ownConn(c)
	dp.data.MyDID = conn.data.MyDID
	dp.data.TheirDID = conn.data.TheirDID

	try.To(dp.s.box.Post(ctx, boxMsg{
		Type:    msgTypeProof,
		FromDID: conn.data.MyDID,
		ToDID:   conn.data.TheirDID,
		Thread:  dp.data.Thread,
		Payload: []byte(dp.data.Proof),
	}))

	dp.data.State = vcx.StateAccepted
	return nil
}

func (dp *disclosedProof) Serialize() ([]byte, error) {
	return marshalState(dp.data), nil
}
