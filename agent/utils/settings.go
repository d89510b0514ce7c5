package utils

import (
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"
)

// Version is the current version of the agent binary.
var Version = "0.9.0"

const HTTPReqTimeout = 1 * time.Minute

var Settings = &Hub{
	opTimeout: 30 * time.Second,
}

// Hub keeps the process wide settings together. The cmds layer fills it at
// startup; everything below reads it through the accessors.
type Hub struct {
	dataPath  string        // root dir for bolt files and wallet exports
	agencyURL string        // base URL of the credential agency mailbox
	genesis   string        // path to the ledger genesis transaction file
	opTimeout time.Duration // deadline for individual agency SDK calls

	localTestMode bool // tells if we are running unit tests
}

func (h *Hub) DataPath() string {
	return h.dataPath
}

func (h *Hub) SetDataPath(path string) {
	h.dataPath = path
}

func (h *Hub) AgencyURL() string {
	return h.agencyURL
}

func (h *Hub) SetAgencyURL(url string) {
	h.agencyURL = url
}

func (h *Hub) GenesisPath() string {
	return h.genesis
}

func (h *Hub) SetGenesisPath(path string) {
	h.genesis = path
}

func (h *Hub) OpTimeout() time.Duration {
	return h.opTimeout
}

func (h *Hub) SetOpTimeout(to time.Duration) {
	if to <= 0 {
		glog.Warning("ignoring non-positive op timeout")
		return
	}
	h.opTimeout = to
}

func (h *Hub) LocalTestMode() bool {
	return h.localTestMode
}

func (h *Hub) SetLocalTestMode(on bool) {
	h.localTestMode = on
}

// DataFile returns a path for a named storage file under the data dir.
func (h *Hub) DataFile(name string) string {
	base := h.dataPath
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			glog.Warning("cannot resolve home dir, using cwd")
			home = "."
		}
		base = filepath.Join(home, ".atria")
	}
	return filepath.Join(base, name)
}
