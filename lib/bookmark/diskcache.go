// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package bookmark

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"

	"github.com/ndp190/termfolio/lib/clock"
	"github.com/ndp190/termfolio/lib/codec"
)

// cacheEntry is the on-disk record for one document.
type cacheEntry struct {
	Key       string    `cbor:"key"`
	FetchedAt time.Time `cbor:"fetched_at"`
	Document  Document  `cbor:"document"`
}

// DiskCache stores fetched documents as zstd-compressed CBOR files,
// one per key, named by the BLAKE3 hash of the key. Entries older
// than the configured age are treated as missing.
type DiskCache struct {
	directory string
	maxAge    time.Duration
	clock     clock.Clock
}

// NewDiskCache returns a cache rooted at directory, creating it if
// needed. maxAge of zero keeps entries forever.
func NewDiskCache(directory string, maxAge time.Duration, clk clock.Clock) (*DiskCache, error) {
	if clk == nil {
		clk = clock.Real()
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &DiskCache{directory: directory, maxAge: maxAge, clock: clk}, nil
}

func (cache *DiskCache) path(key string) string {
	digest := blake3.Sum256([]byte(key))
	return filepath.Join(cache.directory, fmt.Sprintf("%x.cbor.zst", digest[:16]))
}

// Get returns the cached document for key, or nil when there is no
// fresh entry.
func (cache *DiskCache) Get(key string) (*Document, error) {
	data, err := os.ReadFile(cache.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry cacheEntry
	if err := codec.UnmarshalCompressed(data, &entry); err != nil {
		return nil, fmt.Errorf("decoding cache entry for %q: %w", key, err)
	}
	if entry.Key != key {
		return nil, nil
	}
	if cache.maxAge > 0 && cache.clock.Now().Sub(entry.FetchedAt) > cache.maxAge {
		return nil, nil
	}
	return &entry.Document, nil
}

// Put stores document under key.
func (cache *DiskCache) Put(key string, document *Document) error {
	data, err := codec.MarshalCompressed(cacheEntry{
		Key:       key,
		FetchedAt: cache.clock.Now().UTC(),
		Document:  *document,
	})
	if err != nil {
		return fmt.Errorf("encoding cache entry for %q: %w", key, err)
	}
	target := cache.path(key)
	temporary := target + ".tmp"
	if err := os.WriteFile(temporary, data, 0o644); err != nil {
		return err
	}
	return os.Rename(temporary, target)
}
