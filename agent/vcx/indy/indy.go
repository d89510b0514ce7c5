/*
Package indy implements the vcx facade over findy-wrapper-go and libindy.
Wallets and anoncreds live in the native library; message transfer between
agents goes through the agency mailbox. All wrapper channels are awaited
under the caller's context so every blocking call honors its deadline.
*/
package indy

import (
	"context"

	"github.com/atria-network/atria-agent/agent/async"
	"github.com/atria-network/atria-agent/agent/utils"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/findy-network/findy-wrapper-go/did"
	indypool "github.com/findy-network/findy-wrapper-go/pool"
	"github.com/findy-network/findy-wrapper-go/wallet"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// libindy error codes we branch on.
const (
	walletAlreadyExistsError = 203
	walletAccessFailedError  = 3690
)

// Agency is the production vcx.Agency. One instance serves the whole
// process; sessions carry the per-wallet state.
type Agency struct{}

var _ vcx.Agency = (*Agency)(nil)

func New() *Agency {
	return &Agency{}
}

func walletCfg(name, key string) (wallet.Config, wallet.Credentials) {
	return wallet.Config{ID: name}, wallet.Credentials{
		Key:                 key,
		KeyDerivationMethod: "RAW",
	}
}

// Provision onboards the agent: creates and opens the wallet, registers the
// agent with the agency, and derives the institution DID from the seed. The
// returned blob is the only thing a caller needs to open sessions later.
func (a *Agency) Provision(ctx context.Context, cfg vcx.ProvisionConfig) (conf []byte, err error) {
	defer wrapErr(&err, "provision")
	defer err2.Handle(&err)

	try.To(a.CreateWallet(ctx, cfg.WalletName, cfg.WalletKey))
	handle := try.To1(a.OpenWallet(ctx, cfg.WalletName, cfg.WalletKey))
	defer func() {
		if cerr := a.CloseWallet(ctx, handle); cerr != nil {
			glog.Errorln("provision: close wallet:", cerr)
		}
	}()

	r := try.To1(async.Await(ctx, did.CreateAndStore(handle, did.Did{Seed: cfg.EnterpriseSeed})))
	instDID, instVerkey := r.Str1(), r.Str2()

	r = try.To1(async.Await(ctx, did.CreateAndStore(handle, did.Did{})))
	agentDID, agentVerkey := r.Str1(), r.Str2()

	c := vcx.Config{
		ProvisionConfig:   cfg,
		AgentDID:          agentDID,
		AgentVerkey:       agentVerkey,
		InstitutionDID:    instDID,
		InstitutionVerkey: instVerkey,
	}

	box := newMailbox(cfg.AgencyURL)
	try.To(box.Register(ctx, agentDID, agentVerkey))

	glog.V(1).Infoln("provisioned agent", agentDID, "for wallet", cfg.WalletName)
	return c.Bytes(), nil
}

func (a *Agency) CreateWallet(ctx context.Context, name, key string) (err error) {
	defer wrapErr(&err, "create wallet")

	cfg, creds := walletCfg(name, key)
	r, rerr := async.Await(ctx, wallet.Create(cfg, creds))
	if rerr != nil {
		if r.ErrCode() == walletAlreadyExistsError {
			glog.V(3).Infoln("wallet", name, "already exists")
			return nil
		}
		return rerr
	}
	return nil
}

func (a *Agency) OpenWallet(ctx context.Context, name, key string) (handle int, err error) {
	defer wrapErr(&err, "open wallet")

	cfg, creds := walletCfg(name, key)
	r, rerr := async.Await(ctx, wallet.Open(cfg, creds))
	if rerr != nil {
		if r.ErrCode() == walletAccessFailedError {
			return 0, vcx.ErrAuthFailure
		}
		return 0, rerr
	}
	return r.Handle(), nil
}

func (a *Agency) CloseWallet(ctx context.Context, handle int) (err error) {
	defer wrapErr(&err, "close wallet")

	_, err = async.Await(ctx, wallet.Close(handle))
	return err
}

// Open parses the agent configuration blob, opens its wallet and the ledger
// pool, and returns a Session bound to them.
func (a *Agency) Open(ctx context.Context, conf []byte) (_ vcx.Session, err error) {
	defer wrapErr(&err, "open session")
	defer err2.Handle(&err)

	cfg := try.To1(vcx.ParseConfig(conf))
	handle := try.To1(a.OpenWallet(ctx, cfg.WalletName, cfg.WalletKey))

	pool, perr := openPool(ctx, cfg.PoolName, cfg.GenesisPath)
	if perr != nil {
		if cerr := a.CloseWallet(ctx, handle); cerr != nil {
			glog.Errorln("open session: close wallet:", cerr)
		}
		return nil, perr
	}

	glog.V(3).Infoln("session open, wallet", cfg.WalletName)
	return &session{
		cfg:    cfg,
		wallet: handle,
		pool:   pool,
		box:    newMailbox(cfg.AgencyURL),
	}, nil
}

var poolCache = struct {
	name   string
	handle int
}{}

// openPool opens the ledger pool once per process and reuses the handle.
// Libindy allows only one open handle per pool name.
func openPool(ctx context.Context, name, genesisPath string) (handle int, err error) {
	defer err2.Handle(&err, "open pool")

	if poolCache.name == name && poolCache.handle != 0 {
		return poolCache.handle, nil
	}
	if name == "" || utils.Settings.LocalTestMode() {
		return 0, nil
	}

	if _, cerr := async.Await(ctx, indypool.CreateConfig(name,
		indypool.Config{GenesisTxn: genesisPath})); cerr != nil {
		// an existing config is reused as is
		glog.V(3).Infoln("pool config:", cerr)
	}

	r := try.To1(async.Await(ctx, indypool.OpenLedger(name)))
	handle = r.Handle()
	poolCache.name = name
	poolCache.handle = handle
	return handle, nil
}

// wrapErr tags any failure with the operation name so callers can tell the
// recoverable agency failures apart from their own logic errors. Sentinels
// pass through untouched.
func wrapErr(err *error, op string) {
	if *err != nil {
		*err = vcx.Protocol(op, *err)
	}
}
