// Package registry has the CLI commands for schemas, credential definitions
// and proof request templates.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/atria-network/atria-agent/agent/registry"
	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/atria-network/atria-agent/cmds"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Cmd is shared by the registry commands that need a wallet session.
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

// SchemaCmd writes a new schema to the ledger.
type SchemaCmd struct {
	Cmd
	Name    string
	Version string
	Attrs   []string
}

type SchemaResult struct {
	LedgerID string
}

func (r SchemaResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c SchemaCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.Name == "" {
		return errors.New("schema name cannot be empty")
	}
	if c.Version == "" {
		return errors.New("schema version cannot be empty")
	}
	if len(c.Attrs) == 0 {
		return errors.New("schema needs at least one attribute")
	}
	return nil
}

func (c SchemaCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "create schema")

	var rep *storage.SchemaRep
	try.To(c.session(func(ctx context.Context, sess vcx.Session) (err error) {
		defer err2.Handle(&err)
		rep = try.To1(registry.CreateSchema(
			ctx, sess, c.WalletName, c.Name, c.Version, c.Attrs))
		return nil
	}))

	cmds.Fprintln(w, "Schema created:", rep.LedgerID)
	return SchemaResult{LedgerID: rep.LedgerID}, nil
}

// CredDefCmd writes a credential definition against a stored schema. Schema
// takes the schema's ledger id or its registered name.
type CredDefCmd struct {
	Cmd
	Schema string
	Tag    string
}

type CredDefResult struct {
	LedgerID string
}

func (r CredDefResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c CredDefCmd) Validate() error {
	if err := c.Cmd.Validate(); err != nil {
		return err
	}
	if c.Schema == "" {
		return errors.New("schema cannot be empty")
	}
	return nil
}

func (c CredDefCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "create cred def")

	schema, found := try.To2(storage.GetSchemaRep(c.Schema))
	if !found {
		schema, found = try.To2(storage.SchemaRepByName(c.Schema))
	}
	if !found {
		return nil, fmt.Errorf("schema %s: %w", c.Schema, vcx.ErrNotFound)
	}

	tag := c.Tag
	if tag == "" {
		tag = schema.Name + "-" + c.WalletName
	}

	var rep *storage.CredDefRep
	try.To(c.session(func(ctx context.Context, sess vcx.Session) (err error) {
		defer err2.Handle(&err)
		rep = try.To1(registry.CreateCredDef(
			ctx, sess, c.WalletName, schema, tag, schema.Template))
		return nil
	}))

	cmds.Fprintln(w, "Cred def created:", rep.LedgerID)
	return CredDefResult{LedgerID: rep.LedgerID}, nil
}

// TemplateCmd stores a named proof request template. It needs no wallet
// session; templates are local records.
type TemplateCmd struct {
	Name        string
	Description string
	Attrs       string
	Predicates  string
}

type TemplateResult struct {
	Name string
}

func (r TemplateResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c TemplateCmd) Validate() error {
	if c.Name == "" {
		return errors.New("template name cannot be empty")
	}
	if c.Attrs == "" {
		return errors.New("template needs attrs JSON")
	}
	return nil
}

func (c TemplateCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "create template")

	var attrs []vcx.ProofAttr
	try.To(json.Unmarshal([]byte(c.Attrs), &attrs))
	var predicates []vcx.ProofPredicate
	if c.Predicates != "" {
		try.To(json.Unmarshal([]byte(c.Predicates), &predicates))
	}

	try.To1(registry.CreateProofReqTemplate(c.Name, c.Description, attrs, predicates))

	cmds.Fprintln(w, "Template stored:", c.Name)
	return TemplateResult{Name: c.Name}, nil
}

// BootstrapCmd seeds the role-based registry defaults for an org wallet.
type BootstrapCmd struct {
	Cmd
	Role string
}

type BootstrapResult struct {
	WalletName string
	Role       string
}

func (r BootstrapResult) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c BootstrapCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "bootstrap")

	try.To(c.session(func(ctx context.Context, sess vcx.Session) (err error) {
		defer err2.Handle(&err)
		return registry.Bootstrap(ctx, sess, c.WalletName, c.Role)
	}))

	cmds.Fprintln(w, "Registry defaults seeded for:", c.WalletName)
	return BootstrapResult{WalletName: c.WalletName, Role: c.Role}, nil
}
