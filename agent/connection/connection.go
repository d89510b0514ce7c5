/*
Package connection drives pairwise DID connection records through their
lifecycle: invitation, acceptance, and status polling. The agency session is
passed in by the caller, so one session can serve a single operation or a
whole polling batch.
*/
package connection

import (
	"context"
	"fmt"

	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/utils"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// InviteResult carries what the inviter needs to hand over out of band.
type InviteResult struct {
	ConnectionID string
	Invitation   []byte
}

// Invite creates an outbound connection for the wallet and persists its
// record as Sent. When the partner name resolves to a local wallet, a
// counterpart Pending record carrying the invitation is persisted for them
// too; an unknown partner just means the invitation travels out of band.
func Invite(ctx context.Context, sess vcx.Session, walletName, partnerName string) (_ *InviteResult, err error) {
	defer err2.Handle(&err, "create invitation")

	conn := try.To1(sess.CreateConnection(ctx, partnerName))
	try.To(conn.Connect(ctx))
	invite := try.To1(conn.InviteDetails(ctx))
	data := try.To1(conn.Serialize())

	rep := &storage.ConnectionRep{
		ID:          utils.UUID(),
		WalletName:  walletName,
		PartnerName: partnerName,
		Dir:         storage.Outbound,
		ConnData:    data,
		Status:      storage.StatusSent,
	}
	try.To(storage.AddConnectionRep(rep))

	try.To(addCounterpartRep(walletName, partnerName, invite))

	glog.V(2).Infof("invitation created: %s -> %s", walletName, partnerName)
	return &InviteResult{ConnectionID: rep.ID, Invitation: invite}, nil
}

// addCounterpartRep persists the invitee's Pending record when the partner is
// a local owner. A partner nobody here knows is fine.
func addCounterpartRep(inviterWallet, partnerName string, invite []byte) (err error) {
	defer err2.Handle(&err, "counterpart record")

	partnerRep, found := try.To2(storage.WalletRepByOwner(partnerName))
	if !found {
		glog.V(2).Infoln("partner not local, no counterpart record:", partnerName)
		return nil
	}

	inviterRep, found := try.To2(storage.GetWalletRep(inviterWallet))
	if !found {
		return fmt.Errorf("inviter wallet %s: %w", inviterWallet, vcx.ErrNotFound)
	}

	return storage.AddConnectionRep(&storage.ConnectionRep{
		ID:          utils.UUID(),
		WalletName:  partnerRep.Name,
		PartnerName: inviterRep.Owner(),
		Dir:         storage.Inbound,
		Invitation:  invite,
		Status:      storage.StatusPending,
	})
}

// Accept answers a received invitation. With a connectionID the existing
// Pending record flips to Active in place; without one a fresh Inbound
// Active record is inserted, which supports invitations from senders this
// store has never seen.
func Accept(ctx context.Context, sess vcx.Session, walletName, partnerName string,
	invite []byte, connectionID string) (id string, err error) {

	defer err2.Handle(&err, "accept invitation")

	conn := try.To1(sess.ConnectionFromInvite(ctx, partnerName, invite))
	try.To(conn.Connect(ctx))
	try.To1(conn.UpdateState(ctx))
	data := try.To1(conn.Serialize())

	if connectionID != "" {
		rep, found := try.To2(storage.GetConnectionRep(connectionID))
		if !found {
			return "", fmt.Errorf("connection %s: %w", connectionID, vcx.ErrNotFound)
		}
		rep.ConnData = data
		rep.Status = storage.StatusActive
		try.To(storage.UpdateConnectionRep(rep))
		return rep.ID, nil
	}

	rep := &storage.ConnectionRep{
		ID:          utils.UUID(),
		WalletName:  walletName,
		PartnerName: partnerName,
		Dir:         storage.Inbound,
		Invitation:  invite,
		ConnData:    data,
		Status:      storage.StatusActive,
	}
	try.To(storage.AddConnectionRep(rep))
	return rep.ID, nil
}

// Poll refreshes one connection record against the agency. Accepted maps to
// Active, everything else to Sent; an Active record never regresses.
func Poll(ctx context.Context, sess vcx.Session, rep *storage.ConnectionRep) (_ storage.Status, err error) {
	defer err2.Handle(&err, "poll connection")

	conn := try.To1(sess.DeserializeConnection(ctx, rep.ConnData))
	state := try.To1(conn.UpdateState(ctx))
	data := try.To1(conn.Serialize())

	status := storage.StatusSent
	if state == vcx.StateAccepted {
		status = storage.StatusActive
	}
	if rep.Status == storage.StatusActive {
		// monotonic: polling never downgrades an established connection
		status = storage.StatusActive
	}

	rep.ConnData = data
	rep.Status = status
	try.To(storage.UpdateConnectionRep(rep))

	glog.V(3).Infof("connection %s polled: %s", rep.ID, status)
	return status, nil
}

// PollAll polls every non-Active connection of the wallet over one session.
func PollAll(ctx context.Context, sess vcx.Session, walletName string) (count int, err error) {
	defer err2.Handle(&err, "poll connections")

	reps := try.To1(storage.ConnectionRepsByWallet(walletName))
	for _, rep := range reps {
		if rep.Status != storage.StatusSent {
			continue
		}
		if _, perr := Poll(ctx, sess, rep); perr != nil {
			glog.Warningf("poll connection %s: %v", rep.ID, perr)
			continue
		}
		count++
	}
	return count, nil
}
