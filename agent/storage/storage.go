/*
Package storage is the persistence boundary of the agent: encrypted bolt
buckets holding the Wallet, Connection, Conversation, registry and session
records the state machines read and update. Values are gob-encoded reps;
record keys are hashed and values sealed with the DB cipher when a key is
installed, so the bolt file carries no plaintext identities.
*/
package storage

import (
	"crypto/md5"
	"errors"

	"github.com/findy-network/findy-common-go/crypto"
	"github.com/findy-network/findy-common-go/crypto/db"
)

const (
	bucketWallet byte = 0 + iota
	bucketConnection
	bucketConversation
	bucketSchema
	bucketCredDef
	bucketProofReq
	bucketSession
)

var (
	buckets = [][]byte{
		{bucketWallet},
		{bucketConnection},
		{bucketConversation},
		{bucketSchema},
		{bucketCredDef},
		{bucketProofReq},
		{bucketSession},
	}

	theCipher *crypto.Cipher

	mgdDB db.Handle
)

// ErrStale is returned by update operations when the record has been written
// by someone else since it was read. Callers re-read and retry.
var ErrStale = errors.New("stale record write")

// Open opens the database by the name of the file. It must be called once
// before any record operation.
func Open(filename string) (err error) {
	mgdDB = db.New(db.Cfg{
		Filename:   filename,
		Buckets:    buckets,
		BackupName: filename + "_backup",
	})
	return nil
}

// Close closes the database.
func Close() (err error) {
	return mgdDB.Close()
}

// InstallCipher seals record values with the given key from now on. Without
// it the store works in plaintext mode, which is meant for tests only.
func InstallCipher(key []byte) {
	theCipher = crypto.NewCipher(key)
}

func addData(key []byte, value []byte, bucketID byte) (err error) {
	return mgdDB.AddKeyValueToBucket(buckets[bucketID],
		&db.Data{
			Data: value,
			Read: encrypt,
		},
		&db.Data{
			Data: key,
			Read: hash,
		},
	)
}

// get executes a read transaction by a key and a bucket. It uses a lambda for
// the result transport to prevent cloning the byte slice.
func get(key []byte, bucketID byte, use func(d []byte)) (found bool, err error) {
	value := &db.Data{
		Write: decrypt,
		Use: func(d []byte) interface{} {
			use(d)
			return nil
		},
	}
	found, err = mgdDB.GetKeyValueFromBucket(buckets[bucketID],
		&db.Data{
			Data: key,
			Read: hash,
		},
		value)

	return found, err
}

func getAll(bucketID byte) (values [][]byte, err error) {
	return mgdDB.GetAllValuesFromBucket(buckets[bucketID], decrypt)
}

func rm(key []byte, bucketID byte) (err error) {
	return mgdDB.RmKeyValueFromBucket(buckets[bucketID],
		&db.Data{
			Data: key,
			Read: hash,
		})
}

// hash makes the cryptographic hash of the record key so that key value
// indexes (emails, wallet names) are not stored as plain text.
func hash(key []byte) (k []byte) {
	if theCipher != nil {
		h := md5.Sum(key)
		return h[:]
	}
	return append(key[:0:0], key...)
}

func encrypt(value []byte) (k []byte) {
	if theCipher != nil {
		return theCipher.TryEncrypt(value)
	}
	return append(value[:0:0], value...)
}

func decrypt(value []byte) (k []byte) {
	if theCipher != nil {
		return theCipher.TryDecrypt(value)
	}
	return append(value[:0:0], value...)
}
