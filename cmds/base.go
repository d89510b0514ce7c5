/*
Package cmds holds the validated command structs behind the CLI. Each command
validates its inputs first and executes against the storage and agency layers
the cobra wiring in cmd/ injects.
*/
package cmds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/utils"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const walletKeyLength = 44

var ErrInvalid = errors.New("invalid command, check arguments")

// Cmd is the embedded base of every wallet-scoped command.
type Cmd struct {
	WalletName string
}

func (c Cmd) Validate() error {
	if c.WalletName == "" {
		return errors.New("wallet name cannot be empty")
	}
	return nil
}

// ValidateKey accepts an empty key (the enclave key is used then) or a raw
// key of the right length.
func ValidateKey(k string) error {
	if k != "" && len(k) != walletKeyLength {
		return errors.New("wallet key is not valid")
	}
	return nil
}

func ValidateSeed(seed string) error {
	if seed != "" && len(seed) != 32 {
		return errors.New("seed must be empty or length of 32")
	}
	return nil
}

type Result interface {
	JSON() ([]byte, error)
}

type Command interface {
	Validate() error
	Exec(w io.Writer) (r Result, err error)
}

// WalletNameForUser derives a user's wallet name from their email. The
// derivation is deterministic so the same owner always maps to the same
// wallet.
func WalletNameForUser(email string) string {
	return "i_" + normalizeOwner(email)
}

// WalletNameForOrg derives an org's wallet name from the org name.
func WalletNameForOrg(orgName string) string {
	return "o_" + normalizeOwner(orgName)
}

func normalizeOwner(s string) string {
	r := strings.NewReplacer("@", "_", ".", "_", " ", "_")
	return strings.ToLower(r.Replace(s))
}

// OpenSession loads the wallet's agent configuration and opens an agency
// session on it. The caller closes the session.
func OpenSession(ctx context.Context, agency vcx.Agency, walletName string) (sess vcx.Session, err error) {
	defer err2.Handle(&err, "open session")

	rep, found := try.To2(storage.GetWalletRep(walletName))
	if !found {
		return nil, fmt.Errorf("wallet %s: %w", walletName, vcx.ErrNotFound)
	}
	return agency.Open(ctx, rep.Config)
}

// Ctx returns the context commands run under, bounded by the configured op
// timeout.
func Ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), utils.Settings.OpTimeout())
}

// Fprintln is fmt.Fprintln that allows a nil writer. Note! it throws on a
// write error.
func Fprintln(w io.Writer, a ...interface{}) {
	if w != nil {
		try.To1(fmt.Fprintln(w, a...))
	}
}

// Fprintf is fmt.Fprintf that allows a nil writer. Note! it throws on a
// write error.
func Fprintf(w io.Writer, format string, a ...interface{}) {
	if w != nil {
		try.To1(fmt.Fprintf(w, format, a...))
	}
}
