/*
Package conversation drives credential and proof exchanges. Every exchange is
one Conversation record keyed by wallet and partner; inbound messages are
deduplicated on their agency reference id so repeated polling is idempotent.

The caller owns the agency session: a one-shot command opens a session for a
single operation, the background poller shares one session over a whole batch.
*/
package conversation

import (
	"context"
	"strconv"

	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/utils"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// OfferCredential starts issuance: an offer for the attribute values against
// the cred def goes out over the connection and a CredentialOffer
// conversation in Sent is persisted.
func OfferCredential(ctx context.Context, sess vcx.Session, connRep *storage.ConnectionRep,
	tag string, attrs map[string]string, credDef *storage.CredDefRep, name string) (id string, err error) {

	defer err2.Handle(&err, "offer credential")

	conn := try.To1(sess.DeserializeConnection(ctx, connRep.ConnData))
	ic := try.To1(sess.CreateIssuerCredential(ctx, tag, attrs, credDef.Data, name))
	try.To(ic.SendOffer(ctx, conn))
	data := try.To1(ic.Serialize())

	rep := &storage.ConversationRep{
		ID:          utils.UUID(),
		WalletName:  connRep.WalletName,
		PartnerName: connRep.PartnerName,
		Kind:        storage.KindCredentialOffer,
		MessageID:   storage.NoMessageID,
		Status:      storage.StatusSent,
		ConvData:    data,
	}
	try.To(storage.AddConversationRep(rep))

	glog.V(2).Infof("credential offer sent: %s -> %s", connRep.WalletName, connRep.PartnerName)
	return rep.ID, nil
}

// RequestCredential answers an ingested offer: the conversation's blob still
// holds the raw offer payload, which becomes a holder credential object, and
// the record moves to CredentialRequest in Sent.
func RequestCredential(ctx context.Context, sess vcx.Session, connRep *storage.ConnectionRep,
	convRep *storage.ConversationRep) (err error) {

	defer err2.Handle(&err, "request credential")

	conn := try.To1(sess.DeserializeConnection(ctx, connRep.ConnData))
	cred := try.To1(sess.CredentialFromOffer(ctx, convRep.ConvData))
	try.To(cred.SendRequest(ctx, conn))
	data := try.To1(cred.Serialize())

	convRep.Kind = storage.KindCredentialRequest
	convRep.Status = storage.StatusSent
	convRep.ConvData = data
	try.To(storage.UpdateConversationRep(convRep))

	glog.V(2).Infof("credential requested, conversation %s", convRep.ID)
	return nil
}

// SendProofRequest starts a proof exchange from the verifier side.
func SendProofRequest(ctx context.Context, sess vcx.Session, connRep *storage.ConnectionRep,
	name string, attrs []vcx.ProofAttr, predicates []vcx.ProofPredicate) (id string, err error) {

	defer err2.Handle(&err, "send proof request")

	conn := try.To1(sess.DeserializeConnection(ctx, connRep.ConnData))
	pr := try.To1(sess.CreateProofRequest(ctx, utils.UUID(), name, attrs, predicates))
	try.To(pr.Request(ctx, conn))
	data := try.To1(pr.Serialize())

	rep := &storage.ConversationRep{
		ID:          utils.UUID(),
		WalletName:  connRep.WalletName,
		PartnerName: connRep.PartnerName,
		Kind:        storage.KindProofRequest,
		MessageID:   storage.NoMessageID,
		Status:      storage.StatusSent,
		ConvData:    data,
	}
	try.To(storage.AddConversationRep(rep))

	glog.V(2).Infof("proof request sent: %s -> %s", connRep.WalletName, connRep.PartnerName)
	return rep.ID, nil
}

// SelectClaimsAndSendProof builds and sends the proof for an ingested proof
// request. Each selection value that parses as an index into the candidate
// credentials of its attribute picks that credential; any other value is a
// self-attested claim and leaves the credential selection entirely.
func SelectClaimsAndSendProof(ctx context.Context, sess vcx.Session, connRep *storage.ConnectionRep,
	convRep *storage.ConversationRep, selections map[string]string) (err error) {

	defer err2.Handle(&err, "send proof")

	conn := try.To1(sess.DeserializeConnection(ctx, connRep.ConnData))
	dp := try.To1(sess.ProofFromRequest(ctx, convRep.ConvData))
	creds := try.To1(dp.Credentials(ctx))

	selected := make(map[string]vcx.CredentialInfo)
	selfAttested := make(map[string]string)
	for referent, value := range selections {
		candidates := creds.Attrs[referent]
		if idx, cerr := strconv.Atoi(value); cerr == nil && idx >= 0 && idx < len(candidates) {
			selected[referent] = candidates[idx]
			continue
		}
		selfAttested[referent] = value
	}

	try.To(dp.Generate(ctx, selected, selfAttested))
	try.To(dp.Send(ctx, conn))
	data := try.To1(dp.Serialize())

	convRep.Kind = storage.KindProofOffer
	convRep.Status = storage.StatusAccepted
	convRep.ConvData = data
	try.To(storage.UpdateConversationRep(convRep))

	glog.V(2).Infof("proof sent, conversation %s (%d credentialed, %d self-attested)",
		convRep.ID, len(selected), len(selfAttested))
	return nil
}

// Poll advances one conversation against the agency. Every arm persists the
// refreshed protocol state and status even when nothing moved, keeping the
// local mirror fresh. Returns 1 when the conversation was handled.
func Poll(ctx context.Context, sess vcx.Session, connRep *storage.ConnectionRep,
	convRep *storage.ConversationRep) (count int, err error) {

	defer err2.Handle(&err, "poll conversation")

	// only Sent conversations are in flight: Pending waits for an explicit
	// user action and Accepted is terminal
	if convRep.Status != storage.StatusSent {
		return 0, nil
	}

	switch convRep.Kind {
	case storage.KindCredentialOffer:
		try.To(pollOffer(ctx, sess, connRep, convRep))
	case storage.KindCredentialRequest:
		try.To(pollHolderCredential(ctx, sess, convRep))
	case storage.KindIssueCredential:
		try.To(pollIssuedCredential(ctx, sess, convRep))
	case storage.KindProofRequest:
		try.To(pollProofRequest(ctx, sess, connRep, convRep))
	case storage.KindProofOffer:
		// holder side proof is terminal once sent
		return 0, nil
	default:
		glog.Errorf("conversation %s has unknown kind %d, skipping", convRep.ID, convRep.Kind)
		return 0, nil
	}
	return 1, nil
}

// pollOffer is the issuer waiting on the holder: a received request triggers
// the credential send and moves the kind forward.
func pollOffer(ctx context.Context, sess vcx.Session, connRep *storage.ConnectionRep,
	convRep *storage.ConversationRep) (err error) {

	defer err2.Handle(&err)

	ic := try.To1(sess.DeserializeIssuerCredential(ctx, convRep.ConvData))
	state := try.To1(ic.UpdateState(ctx))

	switch state {
	case vcx.StateRequestReceived:
		conn := try.To1(sess.DeserializeConnection(ctx, connRep.ConnData))
		try.To(ic.SendCredential(ctx, conn))
		convRep.Kind = storage.KindIssueCredential
		glog.V(2).Infof("credential issued, conversation %s", convRep.ID)
	case vcx.StateAccepted:
		convRep.Status = storage.StatusAccepted
	}

	convRep.ConvData = try.To1(ic.Serialize())
	return storage.UpdateConversationRep(convRep)
}

func pollHolderCredential(ctx context.Context, sess vcx.Session, convRep *storage.ConversationRep) (err error) {
	defer err2.Handle(&err)

	cred := try.To1(sess.DeserializeCredential(ctx, convRep.ConvData))
	state := try.To1(cred.UpdateState(ctx))
	if state == vcx.StateAccepted {
		convRep.Status = storage.StatusAccepted
	}

	convRep.ConvData = try.To1(cred.Serialize())
	return storage.UpdateConversationRep(convRep)
}

func pollIssuedCredential(ctx context.Context, sess vcx.Session, convRep *storage.ConversationRep) (err error) {
	defer err2.Handle(&err)

	ic := try.To1(sess.DeserializeIssuerCredential(ctx, convRep.ConvData))
	state := try.To1(ic.UpdateState(ctx))
	if state == vcx.StateAccepted {
		convRep.Status = storage.StatusAccepted
	}

	convRep.ConvData = try.To1(ic.Serialize())
	return storage.UpdateConversationRep(convRep)
}

// pollProofRequest is the verifier waiting on the prover: acceptance fetches
// the proof and derives the verification result.
func pollProofRequest(ctx context.Context, sess vcx.Session, connRep *storage.ConnectionRep,
	convRep *storage.ConversationRep) (err error) {

	defer err2.Handle(&err)

	pr := try.To1(sess.DeserializeProofRequest(ctx, convRep.ConvData))
	state := try.To1(pr.UpdateState(ctx))

	if state == vcx.StateAccepted {
		conn := try.To1(sess.DeserializeConnection(ctx, connRep.ConnData))
		proofState := try.To1(pr.Proof(ctx, conn))

		convRep.Status = storage.StatusAccepted
		if proofState == vcx.ProofVerified {
			convRep.Result = storage.ProofVerified
		} else {
			convRep.Result = storage.ProofNotVerified
		}
		glog.V(2).Infof("proof conversation %s: %s", convRep.ID, convRep.Result)
	}

	convRep.ConvData = try.To1(pr.Serialize())
	return storage.UpdateConversationRep(convRep)
}

// PollAll polls every Sent conversation of the connection over one shared
// session. A failing conversation is logged and skipped, never aborts the
// batch.
func PollAll(ctx context.Context, sess vcx.Session, connRep *storage.ConnectionRep) (count int, err error) {
	defer err2.Handle(&err, "poll conversations")

	reps := try.To1(storage.PendingPollConversations(connRep.WalletName, connRep.PartnerName))
	for _, rep := range reps {
		n, perr := Poll(ctx, sess, connRep, rep)
		if perr != nil {
			glog.Warningf("poll conversation %s: %v", rep.ID, perr)
			continue
		}
		count += n
	}
	return count, nil
}

// IngestInbound pulls waiting credential offers and proof requests for an
// inbound connection into Pending conversation records. The agency message
// reference is the dedup key: a message already ingested for the wallet is
// never inserted twice, so arbitrary re-polling is safe.
func IngestInbound(ctx context.Context, sess vcx.Session, connRep *storage.ConnectionRep) (count int, err error) {
	defer err2.Handle(&err, "ingest inbound")

	if connRep.Dir != storage.Inbound {
		return 0, nil
	}

	conn := try.To1(sess.DeserializeConnection(ctx, connRep.ConnData))

	offers := try.To1(sess.CredentialOffers(ctx, conn))
	count += try.To1(ingest(connRep, offers, storage.KindCredentialOffer))

	requests := try.To1(sess.PresentationRequests(ctx, conn))
	count += try.To1(ingest(connRep, requests, storage.KindProofRequest))

	return count, nil
}

func ingest(connRep *storage.ConnectionRep, msgs []vcx.InboundMessage, kind storage.Kind) (count int, err error) {
	defer err2.Handle(&err)

	for _, msg := range msgs {
		have := try.To1(storage.HaveConversationForMessage(connRep.WalletName, msg.MsgRefID))
		if have {
			glog.V(4).Infoln("message already ingested:", msg.MsgRefID)
			continue
		}
		try.To(storage.AddConversationRep(&storage.ConversationRep{
			ID:          utils.UUID(),
			WalletName:  connRep.WalletName,
			PartnerName: connRep.PartnerName,
			Kind:        kind,
			MessageID:   msg.MsgRefID,
			Status:      storage.StatusPending,
			ConvData:    msg.Payload,
		}))
		count++
	}
	return count, nil
}
