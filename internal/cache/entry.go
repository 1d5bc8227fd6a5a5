package cache

import (
	"encoding/json"
	"errors"
	"time"
)

// Entry is one cached page response.
type Entry struct {
	// Key is the SHA-256 key of the query that produced Data.
	Key string `json:"key"`

	// Resource is kept for diagnostics only; lookups go through Key.
	Resource string `json:"resource,omitempty"`

	// Data is the encoded source.Result.
	Data json.RawMessage `json:"data"`

	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewEntry creates an entry stored at now that lives for ttl.
func NewEntry(key, resource string, data json.RawMessage, now time.Time, ttl time.Duration) *Entry {
	return &Entry{
		Key:       key,
		Resource:  resource,
		Data:      data,
		StoredAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

// ExpiredAt reports whether the entry is stale at instant now.
func (e *Entry) ExpiredAt(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Remaining returns the time left before expiry, or 0 once expired.
func (e *Entry) Remaining(now time.Time) time.Duration {
	if d := e.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

type entryJSON struct {
	Key       string          `json:"key"`
	Resource  string          `json:"resource,omitempty"`
	Data      json.RawMessage `json:"data"`
	StoredAt  string          `json:"stored_at"`
	ExpiresAt string          `json:"expires_at"`
}

// MarshalJSON writes timestamps as RFC3339 so cache files stay readable.
func (e *Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Key:       e.Key,
		Resource:  e.Resource,
		Data:      e.Data,
		StoredAt:  e.StoredAt.UTC().Format(time.RFC3339),
		ExpiresAt: e.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// UnmarshalJSON parses the RFC3339 timestamps written by MarshalJSON.
func (e *Entry) UnmarshalJSON(data []byte) error {
	if e == nil {
		return errors.New("cannot unmarshal into nil Entry")
	}

	var aux entryJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	storedAt, err := time.Parse(time.RFC3339, aux.StoredAt)
	if err != nil {
		return err
	}
	expiresAt, err := time.Parse(time.RFC3339, aux.ExpiresAt)
	if err != nil {
		return err
	}

	*e = Entry{
		Key:       aux.Key,
		Resource:  aux.Resource,
		Data:      aux.Data,
		StoredAt:  storedAt,
		ExpiresAt: expiresAt,
	}
	return nil
}
