package session

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/atria-network/atria-agent/agent/vcx/mocks"
	"github.com/atria-network/atria-agent/enclave"
	"github.com/golang/mock/gomock"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/stretchr/testify/require"
)

const (
	dbPath      = "session_test.bolt"
	enclavePath = "session_enclave_test"
)

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
	try.To(enclave.Init(".", enclavePath, ""))
}

func tearDown() {
	try.To(storage.Close())
	enclave.Close()

	os.Remove(dbPath)
	os.Remove(dbPath + "_backup")
	os.Remove(enclavePath + ".bolt")
	os.Remove(enclavePath + ".bolt_backup")
}

func TestOpenWithExplicitKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	require.NoError(t, storage.AddWalletRep(&storage.WalletRep{
		Name: "o_session_org", OwnerOrg: "Session Org",
	}))

	agency := mocks.NewMockAgency(ctrl)
	agency.EXPECT().OpenWallet(gomock.Any(), "o_session_org", "explicit-key").Return(7, nil)

	m := NewManager("sess-1", agency)
	require.NoError(t, m.Open(context.Background(), "o_session_org", "explicit-key"))

	handle, ok := m.Handle(SlotOrg)
	require.True(t, ok)
	require.Equal(t, 7, handle)

	name, ok := m.Wallet(SlotOrg)
	require.True(t, ok)
	require.Equal(t, "o_session_org", name)

	owner, ok := m.Owner(SlotOrg)
	require.True(t, ok)
	require.Equal(t, "Session Org", owner)

	_, ok = m.Handle(SlotUser)
	require.False(t, ok)

	rep, found, err := storage.GetSessionRep("sess-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "o_session_org", rep.WalletName)
	require.Equal(t, "Session Org", rep.Owner)
}

func TestOpenWithEnclaveKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const owner = "session-user@example.com"
	key, err := enclave.NewWalletKey(owner)
	require.NoError(t, err)

	require.NoError(t, storage.AddWalletRep(&storage.WalletRep{
		Name: "i_session_user", OwnerUser: owner,
	}))

	agency := mocks.NewMockAgency(ctrl)
	agency.EXPECT().OpenWallet(gomock.Any(), "i_session_user", key).Return(3, nil)

	m := NewManager("sess-2", agency)
	require.NoError(t, m.Open(context.Background(), "i_session_user", ""))

	handle, ok := m.Handle(SlotUser)
	require.True(t, ok)
	require.Equal(t, 3, handle)
}

func TestOpenUnknownWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := NewManager("sess-3", mocks.NewMockAgency(ctrl))
	err := m.Open(context.Background(), "o_no_such_wallet", "key")
	require.ErrorIs(t, err, vcx.ErrNotFound)
}

func TestOpenOwnerlessWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	require.NoError(t, storage.AddWalletRep(&storage.WalletRep{
		Name: "o_session_orphan",
	}))

	m := NewManager("sess-4", mocks.NewMockAgency(ctrl))
	err := m.Open(context.Background(), "o_session_orphan", "key")
	require.ErrorIs(t, err, vcx.ErrOwnerlessWallet)
}

func TestSlotReuseClosesOldHandle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	require.NoError(t, storage.AddWalletRep(&storage.WalletRep{
		Name: "o_session_first", OwnerOrg: "First Org",
	}))
	require.NoError(t, storage.AddWalletRep(&storage.WalletRep{
		Name: "o_session_second", OwnerOrg: "Second Org",
	}))

	agency := mocks.NewMockAgency(ctrl)
	gomock.InOrder(
		agency.EXPECT().OpenWallet(gomock.Any(), "o_session_first", "k1").Return(1, nil),
		agency.EXPECT().CloseWallet(gomock.Any(), 1).Return(nil),
		agency.EXPECT().OpenWallet(gomock.Any(), "o_session_second", "k2").Return(2, nil),
	)

	m := NewManager("sess-5", agency)
	require.NoError(t, m.Open(context.Background(), "o_session_first", "k1"))
	require.NoError(t, m.Open(context.Background(), "o_session_second", "k2"))

	handle, ok := m.Handle(SlotOrg)
	require.True(t, ok)
	require.Equal(t, 2, handle)

	name, _ := m.Wallet(SlotOrg)
	require.Equal(t, "o_session_second", name)
}

func TestRemoveWalletReleasesHandleOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	require.NoError(t, storage.AddWalletRep(&storage.WalletRep{
		Name: "o_session_remove", OwnerOrg: "Remove Org",
	}))

	agency := mocks.NewMockAgency(ctrl)
	agency.EXPECT().OpenWallet(gomock.Any(), "o_session_remove", "kr").Return(5, nil)
	agency.EXPECT().CloseWallet(gomock.Any(), 5).Return(nil)

	m := NewManager("sess-7", agency)
	require.NoError(t, m.Open(context.Background(), "o_session_remove", "kr"))

	m.RemoveWallet(context.Background(), SlotOrg)

	_, ok := m.Handle(SlotOrg)
	require.False(t, ok)

	// the record survives removal
	_, found, err := storage.GetWalletRep("o_session_remove")
	require.NoError(t, err)
	require.True(t, found)
}

func TestLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	require.NoError(t, storage.AddWalletRep(&storage.WalletRep{
		Name: "o_session_logout", OwnerOrg: "Logout Org",
	}))
	require.NoError(t, storage.AddWalletRep(&storage.WalletRep{
		Name: "i_session_logout", OwnerUser: "logout-user@example.com",
	}))

	agency := mocks.NewMockAgency(ctrl)
	agency.EXPECT().OpenWallet(gomock.Any(), "o_session_logout", "ko").Return(10, nil)
	agency.EXPECT().OpenWallet(gomock.Any(), "i_session_logout", "ku").Return(11, nil)
	// a failing close is logged, never surfaced
	agency.EXPECT().CloseWallet(gomock.Any(), 10).Return(errors.New("agency down"))
	agency.EXPECT().CloseWallet(gomock.Any(), 11).Return(nil)

	m := NewManager("sess-6", agency)
	require.NoError(t, m.Open(context.Background(), "o_session_logout", "ko"))
	require.NoError(t, m.Open(context.Background(), "i_session_logout", "ku"))

	m.Logout(context.Background())

	_, ok := m.Handle(SlotOrg)
	require.False(t, ok)
	_, ok = m.Handle(SlotUser)
	require.False(t, ok)

	_, found, err := storage.GetSessionRep("sess-6")
	require.NoError(t, err)
	require.False(t, found)
}
