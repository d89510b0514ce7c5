package storage

import (
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// SchemaRep binds a ledger-assigned schema id to its name, version and
// attribute template.
type SchemaRep struct {
	LedgerID string
	Name     string
	Version  string
	Attrs    []string
	Template map[string]string // empty-valued attr template for cred defs
	Data     []byte            // serialized protocol object
}

func NewSchemaRep(d []byte) *SchemaRep {
	s := &SchemaRep{}
	dto.FromGOB(d, s)
	return s
}

func (s *SchemaRep) GOB() []byte {
	return dto.ToGOB(s)
}

func AddSchemaRep(s *SchemaRep) (err error) {
	return addData([]byte(s.LedgerID), s.GOB(), bucketSchema)
}

func GetSchemaRep(ledgerID string) (s *SchemaRep, found bool, err error) {
	found, err = get([]byte(ledgerID), bucketSchema, func(d []byte) {
		s = NewSchemaRep(d)
	})
	if !found {
		s = nil
	}
	return s, found, err
}

// SchemaRepByName returns the first stored schema with the given name.
func SchemaRepByName(name string) (s *SchemaRep, found bool, err error) {
	defer err2.Handle(&err, "schema by name")

	values := try.To1(getAll(bucketSchema))
	for _, d := range values {
		sch := NewSchemaRep(d)
		if sch.Name == name {
			return sch, true, nil
		}
	}
	return nil, false, nil
}

// CredDefRep binds a ledger-assigned cred def id to the schema it issues
// against and the wallet allowed to issue with it.
type CredDefRep struct {
	LedgerID       string
	SchemaLedgerID string
	WalletName     string
	Name           string
	Template       map[string]string
	Data           []byte
}

func NewCredDefRep(d []byte) *CredDefRep {
	c := &CredDefRep{}
	dto.FromGOB(d, c)
	return c
}

func (c *CredDefRep) GOB() []byte {
	return dto.ToGOB(c)
}

func AddCredDefRep(c *CredDefRep) (err error) {
	return addData([]byte(c.LedgerID), c.GOB(), bucketCredDef)
}

func GetCredDefRep(ledgerID string) (c *CredDefRep, found bool, err error) {
	found, err = get([]byte(ledgerID), bucketCredDef, func(d []byte) {
		c = NewCredDefRep(d)
	})
	if !found {
		c = nil
	}
	return c, found, err
}

func CredDefRepsByWallet(walletName string) (cs []*CredDefRep, err error) {
	defer err2.Handle(&err, "cred defs by wallet")

	values := try.To1(getAll(bucketCredDef))
	cs = make([]*CredDefRep, 0, len(values))
	for _, d := range values {
		c := NewCredDefRep(d)
		if c.WalletName == walletName {
			cs = append(cs, c)
		}
	}
	return cs, nil
}

// ProofReqRep is a named proof request template: the attributes and
// predicates a verifier asks for, stored as facade JSON.
type ProofReqRep struct {
	Name        string
	Description string
	Attrs       []byte // JSON, []vcx.ProofAttr
	Predicates  []byte // JSON, []vcx.ProofPredicate
}

func NewProofReqRep(d []byte) *ProofReqRep {
	p := &ProofReqRep{}
	dto.FromGOB(d, p)
	return p
}

func (p *ProofReqRep) GOB() []byte {
	return dto.ToGOB(p)
}

func AddProofReqRep(p *ProofReqRep) (err error) {
	return addData([]byte(p.Name), p.GOB(), bucketProofReq)
}

func GetProofReqRep(name string) (p *ProofReqRep, found bool, err error) {
	found, err = get([]byte(name), bucketProofReq, func(d []byte) {
		p = NewProofReqRep(d)
	})
	if !found {
		p = nil
	}
	return p, found, err
}
