package models

import "time"

// CacheEntry is one time-boxed cached fetch result, owned exclusively
// by the cache layer. Entries are keyed by resource query shape, not by
// entity identity, and are invalidated whole-kind rather than updated
// in place.
type CacheEntry struct {
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Kind      string    `json:"kind"`
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
}

// Expired reports whether the entry is past its TTL at the given time.
// An expired entry may still be served as a degraded (stale) read when
// no network path is available.
func (e *CacheEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
