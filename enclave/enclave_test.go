package enclave

import (
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/stretchr/testify/require"
)

const enclaveFile = "enclave_test"

func TestMain(m *testing.M) {
	setUp()
	code := m.Run()
	tearDown()
	os.Exit(code)
}

func setUp() {
	defer err2.Catch(func(err error) {
		fmt.Println("error on setup", err)
	})

	try.To(flag.Set("logtostderr", "true"))

	// empty key leaves the box unsealed for tests
	try.To(Init(".", enclaveFile, ""))
}

func tearDown() {
	Close()

	os.Remove(enclaveFile + ".bolt")
	os.Remove(enclaveFile + ".bolt_backup")
}

func TestWalletKeyLifecycle(t *testing.T) {
	const owner = "alice@example.com"

	require.False(t, WalletKeyExists(owner))

	key, err := NewWalletKey(owner)
	require.NoError(t, err)
	require.NotEmpty(t, key)
	require.True(t, WalletKeyExists(owner))

	got, err := WalletKey(owner)
	require.NoError(t, err)
	require.Equal(t, key, got)

	// a second key for the same owner is refused
	_, err = NewWalletKey(owner)
	require.Error(t, err)
}

func TestWalletKeyNotExists(t *testing.T) {
	_, err := WalletKey("nobody@example.com")
	require.ErrorIs(t, err, ErrNotExists)
}

func TestMasterSecret(t *testing.T) {
	const did = "Th7MpTaRZVRYnPiabds81Y"

	sec, err := NewWalletMasterSecret(did)
	require.NoError(t, err)
	require.NotEmpty(t, sec)

	got, err := MasterSecret(did)
	require.NoError(t, err)
	require.Equal(t, sec, got)

	_, err = MasterSecret("unknown-did")
	require.ErrorIs(t, err, ErrNotExists)
}

func TestKeysAreUnique(t *testing.T) {
	k1, err := NewWalletKey("org-one")
	require.NoError(t, err)
	k2, err := NewWalletKey("org-two")
	require.NoError(t, err)
	require.NotEqual(t, k1, k2)
}
