package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache persists entries as JSON files under a single directory, one
// file per key. Ephemeris responses are tiny and the key space is bounded
// by distinct (moment, body) lookups, so a flat layout keyed by the content
// hash is enough.
type FileCache struct {
	dir string
}

// NewFileCache opens (creating if needed) a file cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk envelope. Expires is a unix timestamp in
// nanoseconds; zero means the entry never expires.
type fileEntry struct {
	Expires int64  `json:"expires"`
	Payload []byte `json:"payload"`
}

func (fc *FileCache) entryPath(key string) string {
	return filepath.Join(fc.dir, Hash([]byte(key))+".json")
}

// Get reads the entry for key. Expired or unreadable entries are removed
// and reported as misses.
func (fc *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := fc.entryPath(key)

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if entry.Expires != 0 && time.Now().UnixNano() > entry.Expires {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Payload, true, nil
}

// Set writes the entry for key. The write goes through a temp file and a
// rename so concurrent readers never see a torn entry.
func (fc *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Payload: data}
	if ttl > 0 {
		entry.Expires = time.Now().Add(ttl).UnixNano()
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := fc.entryPath(key)
	tmp, err := os.CreateTemp(fc.dir, "entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the entry for key if present.
func (fc *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(fc.entryPath(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op; files need no teardown.
func (fc *FileCache) Close() error { return nil }

var _ Cache = (*FileCache)(nil)
