package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// Bolt is a bbolt-backed Engine. One file on disk; buckets are tables.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the store file at path and idempotently creates
// the named tables. Writers are serialized by the engine; readers observe a
// consistent snapshot and never block.
func OpenBolt(path string, tables ...string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open store %q: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range tables {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create table %q: %w", name, err)
			}
		}

		return nil
	})
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) View(fn func(tx Tx) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		return fn(boltTx{tx: tx})
	})
}

func (b *Bolt) Update(fn func(tx Tx) error) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return fn(boltTx{tx: tx})
	})
}

// Ping verifies the store is still usable by opening an empty read transaction.
func (b *Bolt) Ping(_ context.Context) error {
	return b.db.View(func(_ *bolt.Tx) error { return nil })
}

// Path returns the location of the store file.
func (b *Bolt) Path() string {
	return b.db.Path()
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

// Shutdown closes the store. It satisfies the injector's shutdown hook.
func (b *Bolt) Shutdown() error {
	return b.Close()
}

type boltTx struct {
	tx *bolt.Tx
}

func (t boltTx) Table(name string) (Table, error) {
	bucket := t.tx.Bucket([]byte(name))
	if bucket == nil {
		return nil, fmt.Errorf("table %q does not exist", name)
	}

	return boltTable{bucket: bucket}, nil
}

type boltTable struct {
	bucket *bolt.Bucket
}

func (t boltTable) Get(key []byte) []byte {
	return t.bucket.Get(key)
}

func (t boltTable) Put(key, value []byte) error {
	return t.bucket.Put(key, value)
}

func (t boltTable) Delete(key []byte) error {
	return t.bucket.Delete(key)
}

func (t boltTable) Scan(lo, hi []byte, fn func(key, value []byte) error) error {
	cursor := t.bucket.Cursor()

	var k, v []byte
	if lo == nil {
		k, v = cursor.First()
	} else {
		k, v = cursor.Seek(lo)
	}

	for ; k != nil; k, v = cursor.Next() {
		if hi != nil && bytes.Compare(k, hi) >= 0 {
			return nil
		}

		if err := fn(k, v); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}

			return err
		}
	}

	return nil
}
