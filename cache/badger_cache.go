// Package cache stores rendered photo previews in an embedded BadgerDB.
package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const previewKeyPrefix = "preview:"

// ErrMiss is returned by Get for absent or expired keys.
var ErrMiss = errors.New("cache miss")

// PreviewCache is a byte cache keyed by photo id and preview size.
type PreviewCache struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens (or creates) the cache at path. An empty path keeps the cache in
// memory, which is what tests and the memory store use.
func Open(path string, ttl time.Duration) (*PreviewCache, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open preview cache: %w", err)
	}
	return &PreviewCache{db: db, ttl: ttl}, nil
}

func previewKey(photoID, size string) []byte {
	return []byte(previewKeyPrefix + photoID + ":" + size)
}

// Get returns the cached preview or ErrMiss.
func (c *PreviewCache) Get(photoID, size string) ([]byte, error) {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(previewKey(photoID, size))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrMiss
		}
		if err != nil {
			return fmt.Errorf("get preview: %w", err)
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set stores a preview. Entries expire after the cache TTL when one is set.
func (c *PreviewCache) Set(photoID, size string, data []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(previewKey(photoID, size), data)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		if err := txn.SetEntry(e); err != nil {
			return fmt.Errorf("set preview: %w", err)
		}
		return nil
	})
}

// Close flushes and closes the underlying database.
func (c *PreviewCache) Close() error {
	return c.db.Close()
}
