package conversation

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/utils"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/atria-network/atria-agent/agent/vcx/mocks"
	"github.com/golang/mock/gomock"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/stretchr/testify/require"
)

const dbPath = "conversation_test.bolt"

func TestMain(m *testing.M) {
	setUp()
	code := m.Run()
	tearDown()
	os.Exit(code)
}

func setUp() {
	defer err2.Catch(func(err error) {
		fmt.Println("error on setup", err)
	})

	try.To(flag.Set("logtostderr", "true"))

	try.To(storage.Open(dbPath))
}

func tearDown() {
	try.To(storage.Close())

	os.Remove(dbPath)
	os.Remove(dbPath + "_backup")
}

func connRepFor(wallet, partner string, dir storage.Direction) *storage.ConnectionRep {
	return &storage.ConnectionRep{
		ID:          utils.UUID(),
		WalletName:  wallet,
		PartnerName: partner,
		Dir:         dir,
		ConnData:    []byte(`{"connection":"data"}`),
		Status:      storage.StatusActive,
	}
}

func TestOfferCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	connRep := connRepFor("o_faber_offer", "alice@example.com", storage.Outbound)
	credDef := &storage.CredDefRep{
		LedgerID: "cd:1", Name: "Transcript", Data: []byte(`{"cred_def":1}`),
	}
	attrs := map[string]string{"name": "Alice", "degree": "Bachelor"}

	conn := mocks.NewMockConnection(ctrl)
	ic := mocks.NewMockIssuerCredential(ctrl)
	ic.EXPECT().SendOffer(gomock.Any(), conn).Return(nil)
	ic.EXPECT().Serialize().Return([]byte(`{"state":2}`), nil)

	sess := mocks.NewMockSession(ctrl)
	sess.EXPECT().DeserializeConnection(gomock.Any(), connRep.ConnData).Return(conn, nil)
	sess.EXPECT().CreateIssuerCredential(gomock.Any(), "tag-1", attrs, credDef.Data, "Transcript").
		Return(ic, nil)

	id, err := OfferCredential(context.Background(), sess, connRep, "tag-1", attrs, credDef, "Transcript")
	require.NoError(t, err)

	rep, found, err := storage.GetConversationRep(id)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, storage.KindCredentialOffer, rep.Kind)
	require.Equal(t, storage.StatusSent, rep.Status)
	require.Equal(t, storage.NoMessageID, rep.MessageID)
	require.Equal(t, []byte(`{"state":2}`), rep.ConvData)
}

func TestIssuerPollFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	connRep := connRepFor("o_faber_issue", "alice@example.com", storage.Outbound)
	convRep := &storage.ConversationRep{
		ID:         utils.UUID(),
		WalletName: connRep.WalletName,
		Kind:       storage.KindCredentialOffer,
		MessageID:  storage.NoMessageID,
		Status:     storage.StatusSent,
		ConvData:   []byte(`{"offer":1}`),
	}
	require.NoError(t, storage.AddConversationRep(convRep))

	sess := mocks.NewMockSession(ctrl)
	conn := mocks.NewMockConnection(ctrl)

	// the holder requested, so the credential goes out
	ic := mocks.NewMockIssuerCredential(ctrl)
	sess.EXPECT().DeserializeIssuerCredential(gomock.Any(), []byte(`{"offer":1}`)).Return(ic, nil)
	ic.EXPECT().UpdateState(gomock.Any()).Return(vcx.StateRequestReceived, nil)
	sess.EXPECT().DeserializeConnection(gomock.Any(), connRep.ConnData).Return(conn, nil)
	ic.EXPECT().SendCredential(gomock.Any(), conn).Return(nil)
	ic.EXPECT().Serialize().Return([]byte(`{"issued":1}`), nil)

	count, err := Poll(context.Background(), sess, connRep, convRep)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, storage.KindIssueCredential, convRep.Kind)
	require.Equal(t, storage.StatusSent, convRep.Status)

	// next round the holder has stored the credential
	ic2 := mocks.NewMockIssuerCredential(ctrl)
	sess.EXPECT().DeserializeIssuerCredential(gomock.Any(), []byte(`{"issued":1}`)).Return(ic2, nil)
	ic2.EXPECT().UpdateState(gomock.Any()).Return(vcx.StateAccepted, nil)
	ic2.EXPECT().Serialize().Return([]byte(`{"done":1}`), nil)

	count, err = Poll(context.Background(), sess, connRep, convRep)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	stored, _, err := storage.GetConversationRep(convRep.ID)
	require.NoError(t, err)
	require.Equal(t, storage.StatusAccepted, stored.Status)
	require.Equal(t, storage.KindIssueCredential, stored.Kind)
}

func TestIngestInbound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	connRep := connRepFor("i_alice_ingest", "Faber", storage.Inbound)

	require.NoError(t, storage.AddConversationRep(&storage.ConversationRep{
		ID:         utils.UUID(),
		WalletName: connRep.WalletName,
		Kind:       storage.KindCredentialOffer,
		MessageID:  "msg-dup",
		Status:     storage.StatusPending,
	}))

	conn := mocks.NewMockConnection(ctrl)
	sess := mocks.NewMockSession(ctrl)
	sess.EXPECT().DeserializeConnection(gomock.Any(), connRep.ConnData).Return(conn, nil)
	sess.EXPECT().CredentialOffers(gomock.Any(), conn).Return([]vcx.InboundMessage{
		{MsgRefID: "msg-dup", Payload: []byte(`{"offer":"old"}`)},
		{MsgRefID: "msg-new", Payload: []byte(`{"offer":"new"}`)},
	}, nil)
	sess.EXPECT().PresentationRequests(gomock.Any(), conn).Return([]vcx.InboundMessage{
		{MsgRefID: "msg-proof", Payload: []byte(`{"proof_request":1}`)},
	}, nil)

	count, err := IngestInbound(context.Background(), sess, connRep)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	reps, err := storage.ConversationReps(func(c *storage.ConversationRep) bool {
		return c.WalletName == connRep.WalletName
	})
	require.NoError(t, err)
	require.Len(t, reps, 3)

	// re-ingesting the same batch inserts nothing
	sess.EXPECT().DeserializeConnection(gomock.Any(), connRep.ConnData).Return(conn, nil)
	sess.EXPECT().CredentialOffers(gomock.Any(), conn).Return([]vcx.InboundMessage{
		{MsgRefID: "msg-new", Payload: []byte(`{"offer":"new"}`)},
	}, nil)
	sess.EXPECT().PresentationRequests(gomock.Any(), conn).Return(nil, nil)

	count, err = IngestInbound(context.Background(), sess, connRep)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestIngestSkipsOutbound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sess := mocks.NewMockSession(ctrl)
	connRep := connRepFor("o_faber_out", "alice@example.com", storage.Outbound)

	count, err := IngestInbound(context.Background(), sess, connRep)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestHolderCredentialFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	connRep := connRepFor("i_alice_holder", "Faber", storage.Inbound)
	convRep := &storage.ConversationRep{
		ID:         utils.UUID(),
		WalletName: connRep.WalletName,
		Kind:       storage.KindCredentialOffer,
		MessageID:  "msg-offer-1",
		Status:     storage.StatusPending,
		ConvData:   []byte(`{"offer":"payload"}`),
	}
	require.NoError(t, storage.AddConversationRep(convRep))

	sess := mocks.NewMockSession(ctrl)
	conn := mocks.NewMockConnection(ctrl)

	cred := mocks.NewMockCredential(ctrl)
	sess.EXPECT().DeserializeConnection(gomock.Any(), connRep.ConnData).Return(conn, nil)
	sess.EXPECT().CredentialFromOffer(gomock.Any(), []byte(`{"offer":"payload"}`)).Return(cred, nil)
	cred.EXPECT().SendRequest(gomock.Any(), conn).Return(nil)
	cred.EXPECT().Serialize().Return([]byte(`{"requested":1}`), nil)

	require.NoError(t, RequestCredential(context.Background(), sess, connRep, convRep))
	require.Equal(t, storage.KindCredentialRequest, convRep.Kind)
	require.Equal(t, storage.StatusSent, convRep.Status)

	cred2 := mocks.NewMockCredential(ctrl)
	sess.EXPECT().DeserializeCredential(gomock.Any(), []byte(`{"requested":1}`)).Return(cred2, nil)
	cred2.EXPECT().UpdateState(gomock.Any()).Return(vcx.StateAccepted, nil)
	cred2.EXPECT().Serialize().Return([]byte(`{"stored":1}`), nil)

	count, err := Poll(context.Background(), sess, connRep, convRep)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	stored, _, err := storage.GetConversationRep(convRep.ID)
	require.NoError(t, err)
	require.Equal(t, storage.StatusAccepted, stored.Status)
}

func TestProofVerifierFlow(t *testing.T) {
	tests := []struct {
		name       string
		proofState vcx.ProofState
		want       storage.ProofResult
	}{
		{"verified", vcx.ProofVerified, storage.ProofVerified},
		{"invalid", vcx.ProofInvalid, storage.ProofNotVerified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			connRep := connRepFor("o_faber_proof_"+tt.name, "alice@example.com", storage.Outbound)
			attrs := []vcx.ProofAttr{{Name: "name"}}
			predicates := []vcx.ProofPredicate{{Name: "age", PType: ">=", PValue: 18}}

			sess := mocks.NewMockSession(ctrl)
			conn := mocks.NewMockConnection(ctrl)

			pr := mocks.NewMockProofRequest(ctrl)
			sess.EXPECT().DeserializeConnection(gomock.Any(), connRep.ConnData).Return(conn, nil)
			sess.EXPECT().CreateProofRequest(gomock.Any(), gomock.Any(), "Proof of Age", attrs, predicates).
				Return(pr, nil)
			pr.EXPECT().Request(gomock.Any(), conn).Return(nil)
			pr.EXPECT().Serialize().Return([]byte(`{"requested":1}`), nil)

			id, err := SendProofRequest(context.Background(), sess, connRep, "Proof of Age", attrs, predicates)
			require.NoError(t, err)

			rep, found, err := storage.GetConversationRep(id)
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, storage.KindProofRequest, rep.Kind)
			require.Equal(t, storage.StatusSent, rep.Status)

			pr2 := mocks.NewMockProofRequest(ctrl)
			sess.EXPECT().DeserializeProofRequest(gomock.Any(), []byte(`{"requested":1}`)).Return(pr2, nil)
			pr2.EXPECT().UpdateState(gomock.Any()).Return(vcx.StateAccepted, nil)
			sess.EXPECT().DeserializeConnection(gomock.Any(), connRep.ConnData).Return(conn, nil)
			pr2.EXPECT().Proof(gomock.Any(), conn).Return(tt.proofState, nil)
			pr2.EXPECT().Serialize().Return([]byte(`{"done":1}`), nil)

			count, err := Poll(context.Background(), sess, connRep, rep)
			require.NoError(t, err)
			require.Equal(t, 1, count)

			stored, _, err := storage.GetConversationRep(id)
			require.NoError(t, err)
			require.Equal(t, storage.StatusAccepted, stored.Status)
			require.Equal(t, tt.want, stored.Result)
		})
	}
}

func TestSelectClaimsAndSendProof(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	connRep := connRepFor("i_alice_claims", "Faber", storage.Inbound)
	convRep := &storage.ConversationRep{
		ID:         utils.UUID(),
		WalletName: connRep.WalletName,
		Kind:       storage.KindProofRequest,
		MessageID:  "msg-pr-1",
		Status:     storage.StatusPending,
		ConvData:   []byte(`{"proof_request":1}`),
	}
	require.NoError(t, storage.AddConversationRep(convRep))

	first := vcx.CredentialInfo{Referent: "cred-a", CredDefID: "cd:1"}
	second := vcx.CredentialInfo{Referent: "cred-b", CredDefID: "cd:2"}

	sess := mocks.NewMockSession(ctrl)
	conn := mocks.NewMockConnection(ctrl)

	dp := mocks.NewMockDisclosedProof(ctrl)
	sess.EXPECT().DeserializeConnection(gomock.Any(), connRep.ConnData).Return(conn, nil)
	sess.EXPECT().ProofFromRequest(gomock.Any(), []byte(`{"proof_request":1}`)).Return(dp, nil)
	dp.EXPECT().Credentials(gomock.Any()).Return(&vcx.CredentialsForProof{
		Attrs: map[string][]vcx.CredentialInfo{"name": {first, second}},
	}, nil)
	dp.EXPECT().Generate(gomock.Any(),
		map[string]vcx.CredentialInfo{"name": second},
		map[string]string{"nickname": "Ally"}).Return(nil)
	dp.EXPECT().Send(gomock.Any(), conn).Return(nil)
	dp.EXPECT().Serialize().Return([]byte(`{"proof":"sent"}`), nil)

	err := SelectClaimsAndSendProof(context.Background(), sess, connRep, convRep,
		map[string]string{"name": "1", "nickname": "Ally"})
	require.NoError(t, err)

	stored, _, err := storage.GetConversationRep(convRep.ID)
	require.NoError(t, err)
	require.Equal(t, storage.KindProofOffer, stored.Kind)
	require.Equal(t, storage.StatusAccepted, stored.Status)
}

func TestPollSkipsPendingOffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// a holder-side offer waits for AcceptOffer, polling it must not touch
	// the raw inbound payload
	sess := mocks.NewMockSession(ctrl)
	connRep := connRepFor("i_faber_pending", "faber@example.com", storage.Inbound)
	convRep := &storage.ConversationRep{
		ID:         utils.UUID(),
		WalletName: connRep.WalletName,
		Kind:       storage.KindCredentialOffer,
		Status:     storage.StatusPending,
		ConvData:   []byte(`{"schema_id":"55:2:degree:1.0"}`),
	}

	count, err := Poll(context.Background(), sess, connRep, convRep)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestPollUnknownKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sess := mocks.NewMockSession(ctrl)
	connRep := connRepFor("o_faber_unknown", "alice@example.com", storage.Outbound)
	convRep := &storage.ConversationRep{
		ID:         utils.UUID(),
		WalletName: connRep.WalletName,
		Kind:       storage.Kind(42),
		Status:     storage.StatusSent,
	}

	count, err := Poll(context.Background(), sess, connRep, convRep)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestPollAllSkipsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	connRep := connRepFor("o_faber_batch", "alice-batch@example.com", storage.Outbound)

	good := &storage.ConversationRep{
		ID:          utils.UUID(),
		WalletName:  connRep.WalletName,
		PartnerName: connRep.PartnerName,
		Kind:        storage.KindIssueCredential,
		MessageID:   storage.NoMessageID,
		Status:      storage.StatusSent,
		ConvData:    []byte(`{"good":1}`),
	}
	bad := &storage.ConversationRep{
		ID:          utils.UUID(),
		WalletName:  connRep.WalletName,
		PartnerName: connRep.PartnerName,
		Kind:        storage.KindIssueCredential,
		MessageID:   storage.NoMessageID,
		Status:      storage.StatusSent,
		ConvData:    []byte(`{"bad":1}`),
	}
	require.NoError(t, storage.AddConversationRep(good))
	require.NoError(t, storage.AddConversationRep(bad))

	sess := mocks.NewMockSession(ctrl)

	ic := mocks.NewMockIssuerCredential(ctrl)
	sess.EXPECT().DeserializeIssuerCredential(gomock.Any(), []byte(`{"good":1}`)).Return(ic, nil)
	ic.EXPECT().UpdateState(gomock.Any()).Return(vcx.StateAccepted, nil)
	ic.EXPECT().Serialize().Return([]byte(`{"good":2}`), nil)

	sess.EXPECT().DeserializeIssuerCredential(gomock.Any(), []byte(`{"bad":1}`)).
		Return(nil, errors.New("agency timeout"))

	count, err := PollAll(context.Background(), sess, connRep)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
