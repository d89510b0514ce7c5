/*
Package wrapper exposes the bolt-backed record store through the
aries-framework storage SPI so that components written against that interface
can mount the same sealed storage. The enclave keeps its wallet-key box in one
of these stores.
*/
package wrapper

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/findy-network/findy-common-go/crypto"
	"github.com/findy-network/findy-common-go/crypto/db"
	"github.com/golang/glog"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const level7 = 7

// Store widens the aries store with bucket scans; record keys are hashed so
// range queries are not available.
type Store interface {
	storage.Store
	GetAll(transform db.Filter) ([][]byte, error)
}

type Config struct {
	Key       string // hex-coded cipher key; empty means plaintext (tests)
	FileName  string
	FilePath  string
	BucketIDs []string
}

type StorageProvider struct {
	l sync.RWMutex

	conf    Config
	db      db.Handle
	buckets map[string]bucket
	cipher  *crypto.Cipher
}

func New(config Config) *StorageProvider {
	s := &StorageProvider{
		conf:    config,
		buckets: make(map[string]bucket),
	}

	var bucketKey byte
	for _, name := range s.conf.BucketIDs {
		s.buckets[name] = newBucket(s, bucketKey)
		bucketKey++
	}

	return s
}

func (s *StorageProvider) Init() (err error) {
	defer err2.Handle(&err, "storage provider init")

	s.l.Lock()
	defer s.l.Unlock()

	if s.db != nil {
		glog.Warningf("skipping storage provider init for %s, already open", s.conf.FileName)
		return nil
	}

	if s.conf.Key != "" {
		k := try.To1(hex.DecodeString(s.conf.Key))
		s.cipher = crypto.NewCipher(k)
	}

	path := "."
	if s.conf.FilePath != "" {
		path = s.conf.FilePath
	}
	filename := path + "/" + s.conf.FileName + ".bolt"

	if len(s.conf.BucketIDs) == 0 {
		return fmt.Errorf("no buckets specified")
	}

	mgdBuckets := make([][]byte, 0, len(s.conf.BucketIDs))
	var bucketKey byte
	for range s.conf.BucketIDs {
		mgdBuckets = append(mgdBuckets, []byte{bucketKey})
		bucketKey++
	}

	// this will not open the file handle to db, just initializes it
	s.db = db.New(db.Cfg{
		Filename:   filename,
		Buckets:    mgdBuckets,
		BackupName: filename + "_backup",
	})

	return nil
}

func (s *StorageProvider) ID() string {
	return s.conf.FileName
}

// OpenStore implements storage.Provider.
func (s *StorageProvider) OpenStore(name string) (storage.Store, error) {
	glog.V(level7).Infoln("StorageProvider::OpenStore", s.ID(), name)

	if b, ok := s.buckets[name]; ok {
		return &b, nil
	}
	return nil, fmt.Errorf("store %s not found", name)
}

func (s *StorageProvider) SetStoreConfig(string, storage.StoreConfiguration) error {
	return nil
}

func (s *StorageProvider) GetStoreConfig(string) (storage.StoreConfiguration, error) {
	return storage.StoreConfiguration{}, nil
}

func (s *StorageProvider) GetOpenStores() []storage.Store {
	stores := make([]storage.Store, 0, len(s.buckets))
	for name := range s.buckets {
		b := s.buckets[name]
		stores = append(stores, &b)
	}
	return stores
}

func (s *StorageProvider) Close() (err error) {
	defer err2.Handle(&err, "storage provider close")

	s.l.Lock()
	defer s.l.Unlock()

	if s.db == nil {
		glog.Warningf("skipping storage provider close for %s, already closed", s.conf.FileName)
		return nil
	}

	try.To(s.db.Close())
	s.db = nil
	return nil
}

func (s *StorageProvider) addData(bucketID byte, key, value []byte) (err error) {
	s.l.RLock()
	defer s.l.RUnlock()

	return s.db.AddKeyValueToBucket([]byte{bucketID},
		&db.Data{
			Data: value,
			Read: s.encrypt,
		},
		&db.Data{
			Data: key,
			Read: s.hash,
		},
	)
}

func (s *StorageProvider) getData(bucketID byte, key []byte) (value []byte, err error) {
	s.l.RLock()
	defer s.l.RUnlock()

	data := &db.Data{
		Write: s.decrypt,
		Use: func(d []byte) interface{} {
			value = d
			return nil
		},
	}
	_, err = s.db.GetKeyValueFromBucket([]byte{bucketID},
		&db.Data{
			Data: key,
			Read: s.hash,
		},
		data)

	return value, err
}

func (s *StorageProvider) deleteData(bucketID byte, key string) (err error) {
	s.l.RLock()
	defer s.l.RUnlock()

	return s.db.RmKeyValueFromBucket([]byte{bucketID}, &db.Data{
		Data: []byte(key),
		Read: s.hash,
	})
}

func (s *StorageProvider) getAll(bucketID byte, transform db.Filter) (res [][]byte, err error) {
	s.l.RLock()
	defer s.l.RUnlock()

	return s.db.GetAllValuesFromBucket([]byte{bucketID}, s.decrypt, transform)
}

func (s *StorageProvider) hash(key []byte) (k []byte) {
	if s.cipher != nil {
		h := md5.Sum(key)
		return h[:]
	}
	return append(key[:0:0], key...)
}

func (s *StorageProvider) encrypt(value []byte) (k []byte) {
	if s.cipher != nil {
		return s.cipher.TryEncrypt(value)
	}
	return append(value[:0:0], value...)
}

func (s *StorageProvider) decrypt(value []byte) (k []byte) {
	if s.cipher != nil {
		return s.cipher.TryDecrypt(value)
	}
	return append(value[:0:0], value...)
}
