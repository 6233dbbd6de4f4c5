package cache

import (
	"encoding/json"
	"sort"
	"sync"
	"time"
)

// Entry is a value held by the local fallback store.
type Entry struct {
	Value      json.RawMessage
	InsertedAt time.Time
	TTL        time.Duration
	// Permanent entries were stored without a TTL and never expire.
	Permanent bool
}

// Expired reports whether a non-permanent entry has outlived its TTL.
func (e *Entry) Expired(now time.Time) bool {
	return !e.Permanent && now.Sub(e.InsertedAt) >= e.TTL
}

// LocalStore is the in-process fallback map. Expiry is checked lazily on
// read; expired entries stay in the map until overwritten or cleared.
type LocalStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	now     func() time.Time
}

func NewLocalStore(now func() time.Time) *LocalStore {
	if now == nil {
		now = time.Now
	}
	return &LocalStore{entries: make(map[string]*Entry), now: now}
}

// Get returns the value for key if present and not expired.
func (l *LocalStore) Get(key string) (json.RawMessage, bool) {
	l.mu.RLock()
	e, ok := l.entries[key]
	l.mu.RUnlock()
	if !ok || e.Expired(l.now()) {
		return nil, false
	}
	return e.Value, true
}

// Put stores value. ttl <= 0 stores a permanent entry.
func (l *LocalStore) Put(key string, value json.RawMessage, ttl time.Duration) {
	e := &Entry{Value: value, InsertedAt: l.now(), TTL: ttl, Permanent: ttl <= 0}
	l.mu.Lock()
	l.entries[key] = e
	l.mu.Unlock()
}

func (l *LocalStore) Delete(key string) {
	l.mu.Lock()
	delete(l.entries, key)
	l.mu.Unlock()
}

func (l *LocalStore) Clear() {
	l.mu.Lock()
	l.entries = make(map[string]*Entry)
	l.mu.Unlock()
}

// Keys returns the sorted keys of live entries accepted by match.
func (l *LocalStore) Keys(match func(string) bool) []string {
	now := l.now()
	l.mu.RLock()
	keys := make([]string, 0, len(l.entries))
	for k, e := range l.entries {
		if e.Expired(now) || !match(k) {
			continue
		}
		keys = append(keys, k)
	}
	l.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Len counts stored entries, expired ones included.
func (l *LocalStore) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
