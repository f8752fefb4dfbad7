package storage

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var slotBucket = []byte("slots")

// BoltSlots stores slots in a single bbolt file.
type BoltSlots struct {
	db *bolt.DB
}

func OpenBolt(path string) (*BoltSlots, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create slot directory")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt %s", path)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(slotBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create slot bucket")
	}
	return &BoltSlots{db: db}, nil
}

func (b *BoltSlots) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(slotBucket).Get([]byte(key))
		if v == nil {
			return errors.Wrap(ErrSlotNotFound, key)
		}
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

func (b *BoltSlots) Put(_ context.Context, key string, payload []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotBucket).Put([]byte(key), payload)
	})
}

func (b *BoltSlots) Close() error {
	return b.db.Close()
}
