package wrapper

import (
	"github.com/findy-network/findy-common-go/crypto/db"
	"github.com/golang/glog"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type bucket struct {
	bucketID byte
	owner    *StorageProvider
}

func newBucket(owner *StorageProvider, bucketID byte) bucket {
	return bucket{
		owner:    owner,
		bucketID: bucketID,
	}
}

// Put stores the key + value pair. Tags are not supported by the bolt
// backend.
func (b *bucket) Put(key string, value []byte, tags ...storage.Tag) (err error) {
	glog.V(level7).Infoln("bucket::Put", key)

	if len(tags) > 0 {
		panic("tags not supported")
	}

	return b.owner.addData(b.bucketID, []byte(key), value)
}

// Get fetches the value associated with the given key. A missing key returns
// an error wrapping storage.ErrDataNotFound.
func (b *bucket) Get(key string) (data []byte, err error) {
	defer err2.Handle(&err)

	glog.V(level7).Infoln("bucket::Get", key)

	data = try.To1(b.owner.getData(b.bucketID, []byte(key)))
	if len(data) == 0 {
		return nil, storage.ErrDataNotFound
	}

	return data, nil
}

// Delete deletes the key + value pair associated with key.
func (b *bucket) Delete(key string) error {
	glog.V(level7).Infoln("bucket::Delete", key)

	return b.owner.deleteData(b.bucketID, key)
}

func (b *bucket) GetAll(transform db.Filter) ([][]byte, error) {
	glog.V(level7).Infoln("bucket::GetAll")

	return b.owner.getAll(b.bucketID, transform)
}

// Close frees the store object. The provider owns the DB handle so this is a
// no-op.
func (b *bucket) Close() error {
	glog.V(level7).Infoln("bucket::Close")
	return nil
}

// aries SPI placeholder
func (b *bucket) GetTags(key string) ([]storage.Tag, error) {
	glog.V(level7).Infoln("bucket::GetTags", key)
	panic("implement me")
}

// aries SPI placeholder
func (b *bucket) GetBulk(keys ...string) ([][]byte, error) {
	glog.V(level7).Infoln("bucket::GetBulk", keys)
	panic("implement me")
}

// aries SPI placeholder
func (b *bucket) Query(expression string, options ...storage.QueryOption) (storage.Iterator, error) {
	glog.V(level7).Infoln("bucket::Query", expression)
	panic("implement me")
}

// aries SPI placeholder
func (b *bucket) Batch(operations []storage.Operation) error {
	glog.V(level7).Infoln("bucket::Batch")
	panic("implement me")
}

// aries SPI placeholder
func (b *bucket) Flush() error {
	glog.V(level7).Infoln("bucket::Flush")
	panic("implement me")
}
