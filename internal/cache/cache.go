// Package cache persists last-known-good API responses so screens can render
// instantly on cold start before the network round-trip completes.
//
// Entries are keyed by (endpoint, date) and stored as one JSON snapshot file
// per key. Writes are last-write-wins atomic replacements; snapshots are
// unversioned opaque blobs owned by the decode layer. A small LRU front
// keeps same-day re-reads off the disk.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const memEntries = 64

// Cache is a disk-backed response snapshot store with an in-memory front.
type Cache struct {
	root string
	mem  *lru.Cache[string, entry]
}

type entry struct {
	data     []byte
	storedAt time.Time
}

// New creates a cache rooted at dir, creating it if needed.
func New(dir string) (*Cache, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("empty cache dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	mem, err := lru.New[string, entry](memEntries)
	if err != nil {
		return nil, err
	}
	return &Cache{root: dir, mem: mem}, nil
}

// Get returns the cached snapshot for (endpoint, date) with its stored-at
// time. A miss is the false return, not an error.
func (c *Cache) Get(endpoint, date string) ([]byte, time.Time, bool) {
	k := key(endpoint, date)
	if e, ok := c.mem.Get(k); ok {
		return cloneBytes(e.data), e.storedAt, true
	}
	path := filepath.Join(c.root, k)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, false
	}
	storedAt := time.Now()
	if info, err := os.Stat(path); err == nil {
		storedAt = info.ModTime()
	}
	c.mem.Add(k, entry{data: data, storedAt: storedAt})
	return cloneBytes(data), storedAt, true
}

// Put overwrites the snapshot for (endpoint, date). The file is replaced
// atomically so readers never observe a partial write.
func (c *Cache) Put(endpoint, date string, data []byte) error {
	k := key(endpoint, date)
	path := filepath.Join(c.root, k)

	tmp, err := os.CreateTemp(c.root, "snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	c.mem.Add(k, entry{data: cloneBytes(data), storedAt: time.Now()})
	return nil
}

// Clear removes every snapshot file and empties the memory front.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return fmt.Errorf("read cache dir: %w", err)
	}
	var firstErr error
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(c.root, e.Name())); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.mem.Purge()
	return firstErr
}

func key(endpoint, date string) string {
	endpoint = sanitize(endpoint)
	if date == "" {
		return endpoint + ".json"
	}
	return endpoint + "-" + sanitize(date) + ".json"
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

func cloneBytes(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	dup := make([]byte, len(data))
	copy(dup, data)
	return dup
}
