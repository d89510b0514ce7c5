package storage

import (
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/golang/glog"
)

// WalletRep is one provisioned wallet and its agent configuration blob. The
// wallet name is derived from the owner identity and globally unique; exactly
// one of OwnerUser / OwnerOrg is set for a healthy record.
type WalletRep struct {
	Name      string
	OwnerUser string // owner's email when a user wallet
	OwnerOrg  string // org name when an org wallet
	Config    []byte // opaque agent configuration blob (JSON)
}

func NewWalletRep(d []byte) *WalletRep {
	w := &WalletRep{}
	dto.FromGOB(d, w)
	return w
}

func (w *WalletRep) Data() []byte {
	return dto.ToGOB(w)
}

func AddWalletRep(w *WalletRep) (err error) {
	return addData([]byte(w.Name), w.Data(), bucketWallet)
}

// GetWalletRep returns (nil, false, nil) when the wallet does not exist.
func GetWalletRep(name string) (w *WalletRep, found bool, err error) {
	found, err = get([]byte(name), bucketWallet, func(d []byte) {
		w = NewWalletRep(d)
	})
	if !found {
		glog.V(3).Infoln("wallet rep not found:", name)
		w = nil
	}
	return w, found, err
}

// WalletRepByOwner resolves an owner identity (user email or org name) to
// their wallet. Listing is a full-bucket scan like the other lookups.
func WalletRepByOwner(owner string) (w *WalletRep, found bool, err error) {
	values, err := getAll(bucketWallet)
	if err != nil {
		return nil, false, err
	}
	for _, d := range values {
		rep := NewWalletRep(d)
		if rep.OwnerUser == owner || rep.OwnerOrg == owner {
			return rep, true, nil
		}
	}
	return nil, false, nil
}

// Owner returns the owner identity of the wallet, whichever field is set.
func (w *WalletRep) Owner() string {
	if w.OwnerUser != "" {
		return w.OwnerUser
	}
	return w.OwnerOrg
}

// RmWalletRep exists for symmetry but wallet records are never deleted in
// normal operation. See the registry of open questions in DESIGN.md.
func RmWalletRep(name string) (err error) {
	return rm([]byte(name), bucketWallet)
}
