package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const entryExt = ".json"

// Store errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("invalid cache key")
	ErrCacheDisabled   = errors.New("cache is disabled")
)

// FileStore keeps one JSON file per entry in a directory. It is safe for
// concurrent use within a process.
type FileStore struct {
	dir     string
	enabled bool
	ttl     time.Duration
	now     func() time.Time

	mu sync.RWMutex
}

// Open prepares a FileStore from s, creating the directory when needed.
// A disabled store is returned as-is and answers every call with
// ErrCacheDisabled.
func Open(s Settings) (*FileStore, error) {
	if !s.Enabled {
		return &FileStore{now: time.Now}, nil
	}
	if s.Directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if s.TTL <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidTTL, s.TTL)
	}
	if err := os.MkdirAll(s.Directory, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileStore{
		dir:     s.Directory,
		enabled: true,
		ttl:     s.TTL,
		now:     time.Now,
	}, nil
}

// Get returns the entry stored under key. Stale entries are removed and
// reported as ErrCacheExpired.
func (s *FileStore) Get(key string) (*Entry, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if err = json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}

	if entry.ExpiredAt(s.now()) {
		s.mu.Lock()
		_ = os.Remove(path)
		s.mu.Unlock()
		return nil, ErrCacheExpired
	}
	return &entry, nil
}

// Set writes data under key, replacing any previous entry. The file is
// written to a temporary name first and renamed into place.
func (s *FileStore) Set(key, resource string, data json.RawMessage) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(NewEntry(key, resource, data, s.now(), s.ttl), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, encoded, 0o600); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}
	return nil
}

// Delete removes the entry under key. Missing entries are not an error.
func (s *FileStore) Delete(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes every entry and returns how many were deleted.
func (s *FileStore) Clear() (int, error) {
	return s.removeWhere(func(string) bool { return true })
}

// CleanupExpired removes stale and unreadable entries and returns how many
// were deleted.
func (s *FileStore) CleanupExpired() (int, error) {
	now := s.now()
	return s.removeWhere(func(path string) bool {
		data, err := os.ReadFile(path)
		if err != nil {
			return false
		}
		var entry Entry
		if err = json.Unmarshal(data, &entry); err != nil {
			return true
		}
		return entry.ExpiredAt(now)
	})
}

// Count returns the number of entries on disk, expired ones included.
func (s *FileStore) Count() (int, error) {
	files, err := s.entryFiles()
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// Size returns the total size of all entries in bytes.
func (s *FileStore) Size() (int64, error) {
	files, err := s.entryFiles()
	if err != nil {
		return 0, err
	}

	var total int64
	for _, f := range files {
		if info, statErr := os.Stat(f); statErr == nil {
			total += info.Size()
		}
	}
	return total, nil
}

// Enabled reports whether the store is active.
func (s *FileStore) Enabled() bool { return s.enabled }

// Directory returns the cache directory, empty when disabled.
func (s *FileStore) Directory() string { return s.dir }

// TTL returns the lifetime given to new entries.
func (s *FileStore) TTL() time.Duration { return s.ttl }

func (s *FileStore) removeWhere(match func(path string) bool) (int, error) {
	files, err := s.entryFiles()
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, f := range files {
		if !match(f) {
			continue
		}
		if rmErr := os.Remove(f); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return removed, fmt.Errorf("failed to remove cache file %s: %w", filepath.Base(f), rmErr)
		}
		removed++
	}
	return removed, nil
}

func (s *FileStore) entryFiles() ([]string, error) {
	if !s.enabled {
		return nil, ErrCacheDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != entryExt {
			continue
		}
		files = append(files, filepath.Join(s.dir, e.Name()))
	}
	return files, nil
}

// path maps key to its file. Keys containing path separators are rejected
// rather than sanitized so two keys can never share a file.
func (s *FileStore) path(key string) (string, error) {
	if !s.enabled {
		return "", ErrCacheDisabled
	}
	if key == "" || strings.ContainsAny(key, `/\:`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidCacheKey, key)
	}
	return filepath.Join(s.dir, key+entryExt), nil
}
