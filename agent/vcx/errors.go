package vcx

import (
	"errors"
	"fmt"
)

var (
	// ErrWalletExists is benign on create; callers swallow it.
	ErrWalletExists = errors.New("wallet already exists")

	// ErrAuthFailure means the wallet key was wrong; the wallet stays closed.
	ErrAuthFailure = errors.New("wallet authentication failure")

	// ErrNotFound means a referenced record or protocol object does not
	// resolve.
	ErrNotFound = errors.New("not found")

	// ErrOwnerlessWallet is a data-integrity violation: a wallet record with
	// neither a user nor an organization owner. It is never recovered at an
	// operation boundary.
	ErrOwnerlessWallet = errors.New("wallet has no owner")
)

// ProtocolError wraps any fault raised by the agency SDK during a protocol
// operation so that the SDK's own error types never leak past this package.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("agency: %s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Protocol wraps err into a ProtocolError unless it already is one or is one
// of the sentinel errors above.
func Protocol(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProtocolError
	if errors.As(err, &pe) ||
		errors.Is(err, ErrAuthFailure) ||
		errors.Is(err, ErrWalletExists) ||
		errors.Is(err, ErrNotFound) {
		return err
	}
	return &ProtocolError{Op: op, Err: err}
}
