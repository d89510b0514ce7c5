package connection

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/atria-network/atria-agent/agent/vcx/mocks"
	"github.com/golang/mock/gomock"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/stretchr/testify/require"
)

const dbPath = "connection_test.bolt"

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

func TestInvite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invite := []byte(`{"@id":"abc","label":"partner"}`)
	data := []byte(`{"state":"offer_sent"}`)

	conn := mocks.NewMockConnection(ctrl)
	conn.EXPECT().Connect(gomock.Any()).Return(nil)
	conn.EXPECT().InviteDetails(gomock.Any()).Return(invite, nil)
	conn.EXPECT().Serialize().Return(data, nil)

	sess := mocks.NewMockSession(ctrl)
	sess.EXPECT().CreateConnection(gomock.Any(), "stranger@example.com").Return(conn, nil)

	result, err := Invite(context.Background(), sess, "o_invite_test", "stranger@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, result.ConnectionID)
	require.Equal(t, invite, result.Invitation)

	rep, found, err := storage.GetConnectionRep(result.ConnectionID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, storage.Outbound, rep.Dir)
	require.Equal(t, storage.StatusSent, rep.Status)
	require.Equal(t, data, rep.ConnData)

	// stranger is not a local owner, no counterpart record exists
	reps, err := storage.ConnectionReps(func(c *storage.ConnectionRep) bool {
		return c.WalletName != "o_invite_test"
	})
	require.NoError(t, err)
	require.Empty(t, reps)
}

func TestInviteLocalPartner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	require.NoError(t, storage.AddWalletRep(&storage.WalletRep{
		Name: "o_faber_inv", OwnerOrg: "FaberInv",
	}))
	require.NoError(t, storage.AddWalletRep(&storage.WalletRep{
		Name: "i_alice_inv", OwnerUser: "alice-inv@example.com",
	}))

	invite := []byte(`{"@id":"local"}`)

	conn := mocks.NewMockConnection(ctrl)
	conn.EXPECT().Connect(gomock.Any()).Return(nil)
	conn.EXPECT().InviteDetails(gomock.Any()).Return(invite, nil)
	conn.EXPECT().Serialize().Return([]byte(`{}`), nil)

	sess := mocks.NewMockSession(ctrl)
	sess.EXPECT().CreateConnection(gomock.Any(), "alice-inv@example.com").Return(conn, nil)

	_, err := Invite(context.Background(), sess, "o_faber_inv", "alice-inv@example.com")
	require.NoError(t, err)

	counterparts, err := storage.ConnectionReps(func(c *storage.ConnectionRep) bool {
		return c.WalletName == "i_alice_inv"
	})
	require.NoError(t, err)
	require.Len(t, counterparts, 1)
	require.Equal(t, storage.Inbound, counterparts[0].Dir)
	require.Equal(t, storage.StatusPending, counterparts[0].Status)
	require.Equal(t, "FaberInv", counterparts[0].PartnerName)
	require.Equal(t, invite, counterparts[0].Invitation)
}

func TestAcceptFlipsPendingRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invite := []byte(`{"@id":"pending"}`)
	pending := &storage.ConnectionRep{
		ID:          "accept-pending",
		WalletName:  "i_accept_test",
		PartnerName: "Faber",
		Dir:         storage.Inbound,
		Invitation:  invite,
		Status:      storage.StatusPending,
	}
	require.NoError(t, storage.AddConnectionRep(pending))

	data := []byte(`{"state":"accepted"}`)

	conn := mocks.NewMockConnection(ctrl)
	conn.EXPECT().Connect(gomock.Any()).Return(nil)
	conn.EXPECT().UpdateState(gomock.Any()).Return(vcx.StateAccepted, nil)
	conn.EXPECT().Serialize().Return(data, nil)

	sess := mocks.NewMockSession(ctrl)
	sess.EXPECT().ConnectionFromInvite(gomock.Any(), "Faber", invite).Return(conn, nil)

	id, err := Accept(context.Background(), sess, "i_accept_test", "Faber", invite, "accept-pending")
	require.NoError(t, err)
	require.Equal(t, "accept-pending", id)

	rep, found, err := storage.GetConnectionRep("accept-pending")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, storage.StatusActive, rep.Status)
	require.Equal(t, data, rep.ConnData)
}

func TestAcceptUnknownRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := mocks.NewMockConnection(ctrl)
	conn.EXPECT().Connect(gomock.Any()).Return(nil)
	conn.EXPECT().UpdateState(gomock.Any()).Return(vcx.StateAccepted, nil)
	conn.EXPECT().Serialize().Return([]byte(`{}`), nil)

	sess := mocks.NewMockSession(ctrl)
	sess.EXPECT().ConnectionFromInvite(gomock.Any(), gomock.Any(), gomock.Any()).Return(conn, nil)

	_, err := Accept(context.Background(), sess, "i_accept_test", "Faber",
		[]byte(`{}`), "no-such-record")
	require.ErrorIs(t, err, vcx.ErrNotFound)
}

func TestAcceptWithoutRecordInserts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	invite := []byte(`{"@id":"oob"}`)

	conn := mocks.NewMockConnection(ctrl)
	conn.EXPECT().Connect(gomock.Any()).Return(nil)
	conn.EXPECT().UpdateState(gomock.Any()).Return(vcx.StateAccepted, nil)
	conn.EXPECT().Serialize().Return([]byte(`{}`), nil)

	sess := mocks.NewMockSession(ctrl)
	sess.EXPECT().ConnectionFromInvite(gomock.Any(), "Unknown Org", invite).Return(conn, nil)

	id, err := Accept(context.Background(), sess, "i_oob_test", "Unknown Org", invite, "")
	require.NoError(t, err)

	rep, found, err := storage.GetConnectionRep(id)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, storage.Inbound, rep.Dir)
	require.Equal(t, storage.StatusActive, rep.Status)
	require.Equal(t, invite, rep.Invitation)
}

func TestPoll(t *testing.T) {
	tests := []struct {
		name       string
		repStatus  storage.Status
		connState  vcx.State
		wantStatus storage.Status
	}{
		{"accepted activates", storage.StatusSent, vcx.StateAccepted, storage.StatusActive},
		{"pending stays sent", storage.StatusSent, vcx.StateOfferSent, storage.StatusSent},
		{"active never regresses", storage.StatusActive, vcx.StateOfferSent, storage.StatusActive},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			rep := &storage.ConnectionRep{
				ID:         fmt.Sprintf("poll-%d", i),
				WalletName: "o_poll_test",
				Status:     tt.repStatus,
				ConnData:   []byte(`{}`),
			}
			require.NoError(t, storage.AddConnectionRep(rep))

			conn := mocks.NewMockConnection(ctrl)
			conn.EXPECT().UpdateState(gomock.Any()).Return(tt.connState, nil)
			conn.EXPECT().Serialize().Return([]byte(`{"polled":true}`), nil)

			sess := mocks.NewMockSession(ctrl)
			sess.EXPECT().DeserializeConnection(gomock.Any(), gomock.Any()).Return(conn, nil)

			status, err := Poll(context.Background(), sess, rep)
			require.NoError(t, err)
			require.Equal(t, tt.wantStatus, status)

			stored, _, err := storage.GetConnectionRep(rep.ID)
			require.NoError(t, err)
			require.Equal(t, tt.wantStatus, stored.Status)
		})
	}
}

func TestPollAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	require.NoError(t, storage.AddConnectionRep(&storage.ConnectionRep{
		ID: "pollall-1", WalletName: "o_pollall", Status: storage.StatusSent, ConnData: []byte(`{}`),
	}))
	require.NoError(t, storage.AddConnectionRep(&storage.ConnectionRep{
		ID: "pollall-2", WalletName: "o_pollall", Status: storage.StatusSent, ConnData: []byte(`{}`),
	}))
	require.NoError(t, storage.AddConnectionRep(&storage.ConnectionRep{
		ID: "pollall-3", WalletName: "o_pollall", Status: storage.StatusActive, ConnData: []byte(`{}`),
	}))

	conn := mocks.NewMockConnection(ctrl)
	conn.EXPECT().UpdateState(gomock.Any()).Return(vcx.StateAccepted, nil).Times(2)
	conn.EXPECT().Serialize().Return([]byte(`{}`), nil).Times(2)

	sess := mocks.NewMockSession(ctrl)
	// only the Sent records get polled
	sess.EXPECT().DeserializeConnection(gomock.Any(), gomock.Any()).Return(conn, nil).Times(2)

	count, err := PollAll(context.Background(), sess, "o_pollall")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
