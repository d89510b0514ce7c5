/*
Package session owns the lifecycle of opened wallet handles. A Manager is
scoped to one login session and keeps at most one open handle per actor slot;
opening another wallet into an occupied slot closes the old handle first, and
logout releases everything unconditionally.
*/
package session

import (
	"context"
	"fmt"

	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/atria-network/atria-agent/enclave"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Slot is the actor type a wallet handle is held for. A session can hold a
// user wallet and an org wallet at the same time, but never two of a kind.
type Slot string

const (
	SlotUser Slot = "user"
	SlotOrg  Slot = "org"
)

type walletHandle struct {
	handle     int
	walletName string
	owner      string
}

// Manager tracks the open wallet handles of one login session.
type Manager struct {
	id      string
	agency  vcx.Agency
	handles map[Slot]walletHandle
}

func NewManager(sessionID string, agency vcx.Agency) *Manager {
	return &Manager{
		id:      sessionID,
		agency:  agency,
		handles: make(map[Slot]walletHandle),
	}
}

// Open attaches the named wallet to the session. With an empty key the
// wallet's enclave key is used, so interactive callers never have to handle
// key material. A wrong key surfaces as vcx.ErrAuthFailure; a wallet record
// without an owner is a data-integrity fault and propagates hard.
func (m *Manager) Open(ctx context.Context, walletName, key string) (err error) {
	defer err2.Handle(&err, "session open")

	rep, found := try.To2(storage.GetWalletRep(walletName))
	if !found {
		return fmt.Errorf("wallet %s: %w", walletName, vcx.ErrNotFound)
	}

	slot, owner, oerr := ownerSlot(rep)
	try.To(oerr)

	if key == "" {
		key = try.To1(enclave.WalletKey(owner))
	}

	// close-before-open keeps the one-handle-per-slot invariant
	if old, ok := m.handles[slot]; ok {
		m.closeHandle(ctx, slot, old)
	}

	handle := try.To1(m.agency.OpenWallet(ctx, walletName, key))
	m.handles[slot] = walletHandle{
		handle:     handle,
		walletName: walletName,
		owner:      owner,
	}

	try.To(storage.AddSessionRep(&storage.SessionRep{
		SessionID:  m.id,
		Owner:      owner,
		WalletName: walletName,
	}))

	glog.V(2).Infof("session %s: wallet %s open in slot %s", m.id, walletName, slot)
	return nil
}

// ownerSlot resolves which slot the wallet belongs to. Exactly one owner
// field must be set.
func ownerSlot(rep *storage.WalletRep) (Slot, string, error) {
	switch {
	case rep.OwnerUser != "":
		return SlotUser, rep.OwnerUser, nil
	case rep.OwnerOrg != "":
		return SlotOrg, rep.OwnerOrg, nil
	default:
		return "", "", fmt.Errorf("wallet %s: %w", rep.Name, vcx.ErrOwnerlessWallet)
	}
}

// Logout closes every held handle. Close failures are logged and swallowed;
// the slots are cleared no matter what so no handle reference survives the
// session.
func (m *Manager) Logout(ctx context.Context) {
	for slot, h := range m.handles {
		m.closeHandle(ctx, slot, h)
	}
	m.handles = make(map[Slot]walletHandle)

	if err := storage.RmSessionRep(m.id); err != nil {
		glog.Warningf("session %s: remove session record: %v", m.id, err)
	}
}

func (m *Manager) closeHandle(ctx context.Context, slot Slot, h walletHandle) {
	if err := m.agency.CloseWallet(ctx, h.handle); err != nil {
		glog.Warningf("session %s: close wallet %s (slot %s): %v",
			m.id, h.walletName, slot, err)
	}
	delete(m.handles, slot)
}

// RemoveWallet is deliberately a no-op: wallet records and their enclave keys
// are never hard-deleted, only the open handle is released.
func (m *Manager) RemoveWallet(ctx context.Context, slot Slot) {
	if h, ok := m.handles[slot]; ok {
		m.closeHandle(ctx, slot, h)
	}
	glog.Warningf("session %s: wallet removal requested, records retained", m.id)
}

// Handle returns the open wallet handle in the slot.
func (m *Manager) Handle(slot Slot) (handle int, ok bool) {
	h, ok := m.handles[slot]
	return h.handle, ok
}

// Wallet returns the wallet name attached to the slot.
func (m *Manager) Wallet(slot Slot) (name string, ok bool) {
	h, ok := m.handles[slot]
	return h.walletName, ok
}

// Owner returns the owner identity attached to the slot.
func (m *Manager) Owner(slot Slot) (owner string, ok bool) {
	h, ok := m.handles[slot]
	return h.owner, ok
}
