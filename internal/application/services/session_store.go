package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/session"
	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
)

// SessionStore implements ports.SessionStore on a CacheStore. Expiry slides
// forward on every Touch. Reads check ExpiresAt themselves because a
// permission-restricted remote may keep the entry past its TTL.
type SessionStore struct {
	cache  ports.CacheStore
	ttl    time.Duration
	now    func() time.Time
	logger *logrus.Logger
}

func NewSessionStore(cache ports.CacheStore, ttl time.Duration, logger *logrus.Logger) *SessionStore {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &SessionStore{cache: cache, ttl: ttl, now: time.Now, logger: logger}
}

// WithClock replaces time.Now.
func (s *SessionStore) WithClock(now func() time.Time) *SessionStore {
	s.now = now
	return s
}

func (s *SessionStore) Create(ctx context.Context, id string, data session.Data) (*session.Session, error) {
	if id == "" {
		return nil, session.ErrInvalidSession
	}
	now := s.now()
	sess := &session.Session{
		ID:         id,
		Username:   data.Username,
		LoginTime:  now,
		LastAccess: now,
		ExpiresAt:  now.Add(s.ttl),
		IPAddress:  data.IPAddress,
		UserAgent:  data.UserAgent,
	}
	if res := s.cache.Set(ctx, session.Key(id), sess, s.ttl); res.Outcome == ports.OutcomeRejected {
		return nil, fmt.Errorf("store session: %w", res.Err)
	}
	return sess, nil
}

// Read returns the session if present and not past ExpiresAt. An expired
// session is deleted.
func (s *SessionStore) Read(ctx context.Context, id string) (*session.Session, bool) {
	if id == "" {
		return nil, false
	}
	sess, ok := ports.Decode[session.Session](s.cache.Get(ctx, session.Key(id)))
	if !ok {
		return nil, false
	}
	if sess.Expired(s.now()) {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"session_id": id, "expires_at": sess.ExpiresAt}).Info("session expired")
		}
		s.cache.Delete(ctx, session.Key(id))
		return nil, false
	}
	return &sess, true
}

// Touch merges patch into the session and rewrites it with a fresh expiry.
func (s *SessionStore) Touch(ctx context.Context, id string, patch session.Patch) (*session.Session, bool) {
	sess, ok := s.Read(ctx, id)
	if !ok {
		return nil, false
	}
	now := s.now()
	sess.LastAccess = now
	patch.Apply(sess)
	sess.ExpiresAt = now.Add(s.ttl)
	if res := s.cache.Set(ctx, session.Key(id), sess, s.ttl); res.Outcome == ports.OutcomeRejected {
		return nil, false
	}
	return sess, true
}

func (s *SessionStore) Destroy(ctx context.Context, id string) {
	if id == "" {
		return
	}
	s.cache.Delete(ctx, session.Key(id))
}

// IDs lists session ids the cache can enumerate. A remote-backed cache
// cannot enumerate keys and yields none.
func (s *SessionStore) IDs(ctx context.Context) []string {
	keys := s.cache.ListKeys(ctx, session.KeyPrefix+"*")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, session.KeyPrefix))
	}
	return ids
}
