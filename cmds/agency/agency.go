// Package agency has the long-running service command. It opens the local
// stores, keeps a scheduler polling the agency mailbox for every tracked
// wallet and shuts everything down on signal.
package agency

import (
	"context"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atria-network/atria-agent/agent/connection"
	"github.com/atria-network/atria-agent/agent/conversation"
	"github.com/atria-network/atria-agent/agent/storage"
	"github.com/atria-network/atria-agent/agent/utils"
	"github.com/atria-network/atria-agent/agent/vcx"
	"github.com/atria-network/atria-agent/cmds"
	"github.com/atria-network/atria-agent/enclave"
	"github.com/go-co-op/gocron"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Cmd starts the agent service.
type Cmd struct {
	Agency vcx.Agency

	DataPath    string
	AgencyURL   string
	PoolName    string
	GenesisPath string
	EnclaveKey  string // hex, empty leaves the enclave unsealed

	PollInterval time.Duration
	OpTimeout    time.Duration
}

var cron = gocron.NewScheduler(time.Now().Location())

func (c *Cmd) Validate() error {
	if c.Agency == nil {
		return errors.New("agency implementation missing")
	}
	if c.AgencyURL == "" {
		return errors.New("agency url cannot be empty")
	}
	if c.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}
	return nil
}

func (c *Cmd) Exec(w io.Writer) (r cmds.Result, err error) {
	return nil, c.Serve(w)
}

// Serve runs until SIGINT or SIGTERM.
func (c *Cmd) Serve(w io.Writer) (err error) {
	defer err2.Handle(&err, "serve")

	try.To(c.setup())
	defer c.closeAll()

	try.To1(cron.Every(c.PollInterval).Do(c.reconcile))
	cron.StartAsync()

	cmds.Fprintln(w, "agent service started, poll interval", c.PollInterval)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	glog.V(1).Infoln("shutdown signal received")
	return nil
}

func (c *Cmd) setup() (err error) {
	defer err2.Handle(&err, "setup")

	utils.Settings.SetAgencyURL(c.AgencyURL)
	if c.DataPath != "" {
		utils.Settings.SetDataPath(c.DataPath)
	}
	if c.GenesisPath != "" {
		utils.Settings.SetGenesisPath(c.GenesisPath)
	}
	if c.OpTimeout > 0 {
		utils.Settings.SetOpTimeout(c.OpTimeout)
	}

	dataDir := utils.Settings.DataFile("")
	try.To(os.MkdirAll(dataDir, 0700))
	try.To(storage.Open(utils.Settings.DataFile("agent.bolt")))
	if c.EnclaveKey != "" {
		storage.InstallCipher(try.To1(hex.DecodeString(c.EnclaveKey)))
	}
	try.To(enclave.Init(dataDir, "enclave", c.EnclaveKey))
	return nil
}

func (c *Cmd) closeAll() {
	cron.Stop()
	if err := storage.Close(); err != nil {
		glog.Warningln("closing storage:", err)
	}
	enclave.Close()
}

// reconcile is the scheduler's tick. It refreshes every wallet still tracked
// by a login session: pending connections get polled, waiting inbound offers
// and proof requests get ingested and open conversations advanced. A failing
// wallet is logged and skipped so one broken session never stalls the rest.
func (c *Cmd) reconcile() {
	defer err2.Catch(func(err error) {
		glog.Errorln("reconcile:", err)
	})

	sessions := try.To1(storage.SessionReps())

	seen := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		if seen[s.WalletName] {
			continue
		}
		seen[s.WalletName] = true

		if err := c.reconcileWallet(s.WalletName); err != nil {
			glog.Warningf("reconcile wallet %s: %v", s.WalletName, err)
		}
	}
}

func (c *Cmd) reconcileWallet(walletName string) (err error) {
	defer err2.Handle(&err)

	ctx, cancel := cmds.Ctx()
	defer cancel()

	sess := try.To1(cmds.OpenSession(ctx, c.Agency, walletName))
	defer func() {
		if cerr := sess.Close(ctx); cerr != nil {
			glog.Warningln("close session:", cerr)
		}
	}()

	polled := try.To1(connection.PollAll(ctx, sess, walletName))
	if polled > 0 {
		glog.V(1).Infof("%s: %d connections advanced", walletName, polled)
	}

	conns := try.To1(storage.ConnectionRepsByWallet(walletName))
	for _, conn := range conns {
		if conn.Status != storage.StatusActive {
			continue
		}
		try.To(c.reconcileConnection(ctx, sess, conn))
	}
	return nil
}

func (c *Cmd) reconcileConnection(ctx context.Context, sess vcx.Session,
	conn *storage.ConnectionRep) (err error) {

	defer err2.Handle(&err)

	ingested := try.To1(conversation.IngestInbound(ctx, sess, conn))
	advanced := try.To1(conversation.PollAll(ctx, sess, conn))
	if ingested > 0 || advanced > 0 {
		glog.V(1).Infof("%s/%s: %d ingested, %d conversations advanced",
			conn.WalletName, conn.PartnerName, ingested, advanced)
	}
	return nil
}
