// Package kvstore wraps bbolt as a small durable key-value store for
// client-side state that must survive restarts.
package kvstore

import (
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// Store is a bbolt-backed key-value store. All operations are safe for
// concurrent use.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the store file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "kvstore: open %s", path)
	}
	return &Store{db: db}, nil
}

// Put stores value under bucket/key, creating the bucket if needed.
func (s *Store) Put(bucket, key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), value)
	})
	return errors.Wrapf(err, "kvstore: put %s/%s", bucket, key)
}

// Get returns the value stored under bucket/key. A missing bucket or key
// yields (nil, nil).
func (s *Store) Get(bucket, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "kvstore: get %s/%s", bucket, key)
	}
	return out, nil
}

// Delete removes bucket/key. Deleting a missing key is not an error.
func (s *Store) Delete(bucket, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
	return errors.Wrapf(err, "kvstore: delete %s/%s", bucket, key)
}

// Close releases the underlying bolt file.
func (s *Store) Close() error {
	return s.db.Close()
}
