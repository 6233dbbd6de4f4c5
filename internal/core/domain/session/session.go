package session

import (
	"errors"
	"time"
)

// ErrInvalidSession is returned for an empty session id.
var ErrInvalidSession = errors.New("invalid session id")

// KeyPrefix namespaces session entries in the cache.
const KeyPrefix = "session:"

// DefaultTTL is the sliding expiry window.
const DefaultTTL = 24 * time.Hour

// Session is an admin login. ExpiresAt slides forward on every Touch.
type Session struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	LoginTime  time.Time `json:"loginTime"`
	LastAccess time.Time `json:"lastAccess"`
	ExpiresAt  time.Time `json:"expiresAt"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
}

// Key returns the cache key for a session id.
func Key(id string) string { return KeyPrefix + id }

// Expired reports whether now is past ExpiresAt.
func (s *Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }

// Data seeds a new session.
type Data struct {
	Username  string
	IPAddress string
	UserAgent string
}

// Patch carries the fields Touch merges into a session. Nil fields are kept.
type Patch struct {
	LastAccess *time.Time
	IPAddress  *string
	UserAgent  *string
}

// Apply merges p into s.
func (p Patch) Apply(s *Session) {
	if p.LastAccess != nil {
		s.LastAccess = *p.LastAccess
	}
	if p.IPAddress != nil {
		s.IPAddress = *p.IPAddress
	}
	if p.UserAgent != nil {
		s.UserAgent = *p.UserAgent
	}
}
