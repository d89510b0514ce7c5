package storage

import (
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// ConnectionRep is one side of a pairwise DID connection. ConnData is the
// serialized connection-protocol state; it is opaque to this layer and only
// the agency SDK interprets it.
type ConnectionRep struct {
	ID          string
	WalletName  string
	PartnerName string
	Dir         Direction
	Invitation  []byte // serialized invite payload, inbound records only
	ConnData    []byte // serialized protocol state blob
	Status      Status

	// Seq increments on every successful write; updates with a stale Seq
	// are rejected so concurrent pollers cannot overwrite each other.
	Seq uint64
}

func NewConnectionRep(d []byte) *ConnectionRep {
	c := &ConnectionRep{}
	dto.FromGOB(d, c)
	return c
}

func (c *ConnectionRep) Data() []byte {
	return dto.ToGOB(c)
}

func AddConnectionRep(c *ConnectionRep) (err error) {
	return addData([]byte(c.ID), c.Data(), bucketConnection)
}

func GetConnectionRep(id string) (c *ConnectionRep, found bool, err error) {
	found, err = get([]byte(id), bucketConnection, func(d []byte) {
		c = NewConnectionRep(d)
	})
	if !found {
		c = nil
	}
	return c, found, err
}

// UpdateConnectionRep writes c back only when nobody else has written the
// record since c was read, then bumps its Seq.
func UpdateConnectionRep(c *ConnectionRep) (err error) {
	defer err2.Handle(&err, "update connection")

	cur, found, err := GetConnectionRep(c.ID)
	try.To(err)
	if found && cur.Seq != c.Seq {
		return ErrStale
	}
	c.Seq++
	return AddConnectionRep(c)
}

// ConnectionReps returns all connection records accepted by the filter. The
// record keys are hashed in the DB so listing is a full-bucket scan, same as
// the rest of the record types.
func ConnectionReps(accept func(*ConnectionRep) bool) (cs []*ConnectionRep, err error) {
	defer err2.Handle(&err, "list connections")

	values := try.To1(getAll(bucketConnection))
	cs = make([]*ConnectionRep, 0, len(values))
	for _, d := range values {
		c := NewConnectionRep(d)
		if accept == nil || accept(c) {
			cs = append(cs, c)
		}
	}
	return cs, nil
}

// ConnectionRepsByWallet returns the wallet's connections.
func ConnectionRepsByWallet(walletName string) ([]*ConnectionRep, error) {
	return ConnectionReps(func(c *ConnectionRep) bool {
		return c.WalletName == walletName
	})
}
