// Package onboard provisions wallets and agent configurations for users and
// organizations, and seeds the org registry defaults.
package onboard

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/atria-network/atria-agent/agent/registry"
	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/atria-network/atria-agent/cmds"
	"github.com/atria-network/atria-agent/enclave"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Cmd onboards one owner: creates their wallet key in the enclave, provisions
// the agent, and persists the wallet record. Exactly one of Email / Org is
// given.
type Cmd struct {
	Agency vcx.Agency

	Email string // user onboarding
	Org   string // org onboarding
	Role  string // org role, Trustee seeds the shared defaults

	AgencyURL   string
	PoolName    string
	GenesisPath string
	Seed        string // enterprise seed for the institution DID

	InstitutionName string
}

type Result struct {
	WalletName string
	Owner      string
}

func (r Result) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c Cmd) Validate() error {
	if c.Agency == nil {
		return errors.New("agency implementation missing")
	}
	if (c.Email == "") == (c.Org == "") {
		return errors.New("exactly one of email and org is needed")
	}
	if c.AgencyURL == "" {
		return errors.New("agency url cannot be empty")
	}
	if err := cmds.ValidateSeed(c.Seed); err != nil {
		return err
	}
	return nil
}

func (c Cmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "onboard")

	owner := c.Email
	walletName := cmds.WalletNameForUser(c.Email)
	if c.Org != "" {
		owner = c.Org
		walletName = cmds.WalletNameForOrg(c.Org)
	}

	if _, found, gerr := storage.GetWalletRep(walletName); gerr == nil && found {
		return nil, errors.New("wallet already onboarded: " + walletName)
	}

	key := try.To1(enclave.NewWalletKey(owner))

	cmds.Fprintln(w, "Provisioning agent for", owner)

	ctx, cancel := cmds.Ctx()
	defer cancel()

	conf := try.To1(c.Agency.Provision(ctx, vcx.ProvisionConfig{
		AgencyURL:       c.AgencyURL,
		PoolName:        c.PoolName,
		GenesisPath:     c.GenesisPath,
		WalletName:      walletName,
		WalletKey:       key,
		EnterpriseSeed:  c.Seed,
		InstitutionName: c.InstitutionName,
	}))

	rep := &storage.WalletRep{
		Name:   walletName,
		Config: conf,
	}
	if c.Org != "" {
		rep.OwnerOrg = c.Org
	} else {
		rep.OwnerUser = c.Email
	}
	try.To(storage.AddWalletRep(rep))

	if c.Org != "" {
		try.To(c.bootstrap(walletName, conf))
	}

	glog.V(1).Infoln("onboarded", owner, "as", walletName)
	cmds.Fprintln(w, "Wallet ready:", walletName)
	return Result{WalletName: walletName, Owner: owner}, nil
}

// bootstrap seeds the org's registry defaults over its own session. Schema
// writes hit the ledger, so this runs under its own op timeout.
func (c Cmd) bootstrap(walletName string, conf []byte) (err error) {
	defer err2.Handle(&err, "bootstrap")

	ctx, cancel := cmds.Ctx()
	defer cancel()

	sess := try.To1(c.Agency.Open(ctx, conf))
	defer func() {
		if cerr := sess.Close(ctx); cerr != nil {
			glog.Warningln("bootstrap: close session:", cerr)
		}
	}()

	return registry.Bootstrap(ctx, sess, walletName, c.Role)
}
