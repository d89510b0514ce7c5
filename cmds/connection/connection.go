// Package connection has the CLI commands for creating, accepting and
// polling pairwise connections.
package connection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/atria-network/atria-agent/agent/connection"
	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/atria-network/atria-agent/cmds"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Cmd is shared by all connection commands.
type Cmd struct {
	cmds.Cmd
	Agency vcx.Agency
}

func (c Cmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.Agency == nil {
		return errors.New("agency implementation missing")
	}
	return nil
}

// session opens the wallet's agency session and hands it to f, closing it on
// every exit path.
func (c Cmd) session(f func(ctx context.Context, sess vcx.Session) error) (err error) {
	defer err2.Handle(&err)

	ctx, cancel := cmds.Ctx()
	defer cancel()

	sess := try.To1(cmds.OpenSession(ctx, c.Agency, c.WalletName))
	defer func() {
		if cerr := sess.Close(ctx); cerr != nil {
			glog.Warningln("close session:", cerr)
		}
	}()
	return f(ctx, sess)
}

// InviteCmd creates an invitation for a partner.
type InviteCmd struct {
	Cmd
	Partner string
}

type InviteResult struct {
	ConnectionID string
	Invitation   json.RawMessage
}

func (r InviteResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c InviteCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.Partner == "" {
		return errors.New("partner cannot be empty")
	}
	return nil
}

func (c InviteCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "invite")

	var result *connection.InviteResult
	try.To(c.session(func(ctx context.Context, sess vcx.Session) (err error) {
		defer err2.Handle(&err)
		result = try.To1(connection.Invite(ctx, sess, c.WalletName, c.Partner))
		return nil
	}))

	cmds.Fprintln(w, "Invitation created:", result.ConnectionID)
	cmds.Fprintln(w, string(result.Invitation))
	return InviteResult{
		ConnectionID: result.ConnectionID,
		Invitation:   result.Invitation,
	}, nil
}

// AcceptCmd answers a received invitation. ConnectionID may name an existing
// Pending record to flip in place.
type AcceptCmd struct {
	Cmd
	Partner      string
	Invitation   string
	ConnectionID string
}

type AcceptResult struct {
	ConnectionID string
}

func (r AcceptResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c AcceptCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.Invitation == "" && c.ConnectionID == "" {
		return errors.New("invitation or connection id is needed")
	}
	return nil
}

func (c AcceptCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "accept")

	invite := []byte(c.Invitation)
	if c.Invitation == "" {
		// the Pending record carries the invitation it was created with
		rep, found := try.To2(storage.GetConnectionRep(c.ConnectionID))
		if !found {
			return nil, fmt.Errorf("connection %s: %w", c.ConnectionID, vcx.ErrNotFound)
		}
		invite = rep.Invitation
	}

	var id string
	try.To(c.session(func(ctx context.Context, sess vcx.Session) (err error) {
		defer err2.Handle(&err)
		id = try.To1(connection.Accept(
			ctx, sess, c.WalletName, c.Partner, invite, c.ConnectionID))
		return nil
	}))

	cmds.Fprintln(w, "Connection active:", id)
	return AcceptResult{ConnectionID: id}, nil
}

// PollCmd refreshes the wallet's pending connections, or one of them.
type PollCmd struct {
	Cmd
	ConnectionID string
}

type PollResult struct {
	Polled int
	Status string
}

func (r PollResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c PollCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "poll connections")

	result := PollResult{}
	try.To(c.session(func(ctx context.Context, sess vcx.Session) (err error) {
		defer err2.Handle(&err)

		if c.ConnectionID != "" {
			rep, found := try.To2(storage.GetConnectionRep(c.ConnectionID))
			if !found {
				return fmt.Errorf("connection %s: %w", c.ConnectionID, vcx.ErrNotFound)
			}
			status := try.To1(connection.Poll(ctx, sess, rep))
			result = PollResult{Polled: 1, Status: string(status)}
			return nil
		}

		count := try.To1(connection.PollAll(ctx, sess, c.WalletName))
		result = PollResult{Polled: count}
		return nil
	}))

	cmds.Fprintln(w, "Polled connections:", result.Polled)
	return result, nil
}
