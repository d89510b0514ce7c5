/*
Package enclave is the agent's sealed box for indy wallet keys. Onboarding
derives a wallet key once and keeps it here mapped from the owner identity, so
raw passwords are never persisted. The box is an aries-SPI store mounted on
the encrypted bolt provider; installing a cipher key seals the content.
*/
package enclave

import (
	"errors"

	"github.com/atria-network/atria-agent/agent/async"
	"github.com/atria-network/atria-agent/agent/storage/wrapper"
	"github.com/atria-network/atria-agent/agent/utils"
	"github.com/findy-network/findy-wrapper-go/wallet"
	"github.com/golang/glog"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const (
	keyStoreName    = "wallet_keys"
	secretStoreName = "master_secrets"
)

// ErrNotExists is returned when an owner has no key in the enclave.
var ErrNotExists = errors.New("key not exists")

var (
	provider *wrapper.StorageProvider
	keyStore storage.Store
	secStore storage.Store
)

// Init opens the enclave's sealed box. It must be called once during the app
// life cycle. An empty hex key leaves the box unsealed (tests).
func Init(filePath, fileName, hexKey string) (err error) {
	defer err2.Handle(&err, "init enclave")

	glog.V(1).Info("init enclave ", fileName)

	provider = wrapper.New(wrapper.Config{
		Key:       hexKey,
		FileName:  fileName,
		FilePath:  filePath,
		BucketIDs: []string{keyStoreName, secretStoreName},
	})
	try.To(provider.Init())

	keyStore = try.To1(provider.OpenStore(keyStoreName))
	secStore = try.To1(provider.OpenStore(secretStoreName))
	return nil
}

// Close closes the sealed box. It can be opened again with Init.
func Close() {
	defer err2.Catch(func(err error) {
		glog.Warning("closing enclave:", err)
	})

	try.To(provider.Close())
	provider = nil
	keyStore = nil
	secStore = nil
}

// NewWalletKey creates and stores a new indy wallet key for the owner. It is
// an error to create a second key for the same owner.
func NewWalletKey(owner string) (key string, err error) {
	defer err2.Handle(&err, "new wallet key")

	if _, err := keyStore.Get(owner); err == nil {
		return "", errors.New("key already exists")
	}

	key = try.To1(generateKey())
	try.To(keyStore.Put(owner, []byte(key)))

	return key, nil
}

// WalletKey retrieves the owner's wallet key from the sealed box.
func WalletKey(owner string) (key string, err error) {
	d, err := keyStore.Get(owner)
	if errors.Is(err, storage.ErrDataNotFound) {
		return "", ErrNotExists
	}
	if err != nil {
		return "", err
	}
	return string(d), nil
}

// WalletKeyExists tells if the owner already has a key in the enclave.
func WalletKeyExists(owner string) bool {
	_, err := WalletKey(owner)
	return err == nil
}

// NewWalletMasterSecret creates and stores a master secret for the DID.
func NewWalletMasterSecret(did string) (sec string, err error) {
	defer err2.Handle(&err, "new master secret")

	if _, err := secStore.Get(did); err == nil {
		return "", errors.New("master secret already exists")
	}

	sec = utils.UUID()
	try.To(secStore.Put(did, []byte(sec)))

	return sec, nil
}

// MasterSecret retrieves a wallet master secret by the DID.
func MasterSecret(did string) (sec string, err error) {
	d, err := secStore.Get(did)
	if errors.Is(err, storage.ErrDataNotFound) {
		return "", ErrNotExists
	}
	if err != nil {
		return "", err
	}
	return string(d), nil
}

func generateKey() (key string, err error) {
	defer err2.Handle(&err)

	f := async.NewFuture(wallet.GenerateKey(""))
	return f.Str1(), nil
}
