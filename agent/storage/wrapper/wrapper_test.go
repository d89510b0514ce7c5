package wrapper

import (
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/stretchr/testify/require"
)

const testFileName = "wrapper_test"

var provider *StorageProvider

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

	provider = New(Config{
		FileName:  testFileName,
		FilePath:  ".",
		BucketIDs: []string{"keys", "secrets"},
	})
	try.To(provider.Init())
}

func tearDown() {
	try.To(provider.Close())

	os.Remove(testFileName + ".bolt")
	os.Remove(testFileName + ".bolt_backup")
}

func TestOpenStore(t *testing.T) {
	store, err := provider.OpenStore("keys")
	require.NoError(t, err)
	require.NotNil(t, store)

	_, err = provider.OpenStore("no-such-bucket")
	require.Error(t, err)
}

func TestPutGetDelete(t *testing.T) {
	store, err := provider.OpenStore("keys")
	require.NoError(t, err)

	require.NoError(t, store.Put("owner-1", []byte("key-material")))

	got, err := store.Get("owner-1")
	require.NoError(t, err)
	require.Equal(t, []byte("key-material"), got)

	require.NoError(t, store.Delete("owner-1"))

	_, err = store.Get("owner-1")
	require.ErrorIs(t, err, storage.ErrDataNotFound)
}

func TestBucketsAreIsolated(t *testing.T) {
	keys, err := provider.OpenStore("keys")
	require.NoError(t, err)
	secrets, err := provider.OpenStore("secrets")
	require.NoError(t, err)

	require.NoError(t, keys.Put("shared-id", []byte("from-keys")))
	require.NoError(t, secrets.Put("shared-id", []byte("from-secrets")))

	got, err := keys.Get("shared-id")
	require.NoError(t, err)
	require.Equal(t, []byte("from-keys"), got)

	got, err = secrets.Get("shared-id")
	require.NoError(t, err)
	require.Equal(t, []byte("from-secrets"), got)
}

func TestGetAll(t *testing.T) {
	s, err := provider.OpenStore("secrets")
	require.NoError(t, err)
	store, ok := s.(Store)
	require.True(t, ok)

	require.NoError(t, store.Put("all-1", []byte("v1")))
	require.NoError(t, store.Put("all-2", []byte("v2")))

	values, err := store.GetAll(func(v []byte) []byte { return v })
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(values), 2)
}
