package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
)

const (
	// Tombstone is written in place of a physical delete. Readers treat it as
	// absent.
	Tombstone = "null"

	probeKey = "test:permissions"
	probeTTL = 60 * time.Second
)

// DefaultWellKnownKeys are the keys Clear invalidates on the remote store,
// which offers no key enumeration.
var DefaultWellKnownKeys = []string{"events:all", "leagues:all", "stats:all"}

// Store implements ports.CacheStore over an optional remote store with an
// always-available local fallback.
//
// Writes that succeed remotely do not touch the local store, so the two can
// diverge; Get prefers the remote while it is healthy. If SETEX is denied,
// values requested with a TTL are stored remotely without any expiry. Callers
// that need a hard deadline (sessions) must check it themselves.
type Store struct {
	remote    ports.RemoteStore
	local     *LocalStore
	logger    *logrus.Logger
	now       func() time.Time
	wellKnown []string
	ops       *prometheus.CounterVec

	profile  atomic.Pointer[ports.PermissionProfile]
	degraded atomic.Bool
}

type Option func(*Store)

// WithClock replaces time.Now for local expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithWellKnownKeys sets the keys Clear invalidates.
func WithWellKnownKeys(keys ...string) Option {
	return func(s *Store) { s.wellKnown = keys }
}

// WithMetrics counts operations by op and outcome.
func WithMetrics(ops *prometheus.CounterVec) Option {
	return func(s *Store) { s.ops = ops }
}

// NewStore builds a cache. remote may be nil for local-only operation.
func NewStore(remote ports.RemoteStore, logger *logrus.Logger, opts ...Option) *Store {
	s := &Store{
		remote:    remote,
		logger:    logger,
		now:       time.Now,
		wellKnown: DefaultWellKnownKeys,
	}
	if s.logger == nil {
		s.logger = logrus.New()
		s.logger.SetOutput(io.Discard)
	}
	for _, opt := range opts {
		opt(s)
	}
	s.local = NewLocalStore(s.now)
	return s
}

// Init runs the permission self-test and logs which fallbacks will be used.
func (s *Store) Init(ctx context.Context) ports.PermissionProfile {
	if s.remote == nil {
		s.logger.Info("remote cache not configured; using local memory cache")
		return ports.PermissionProfile{}
	}
	p := s.TestPermissions(ctx)
	entry := s.logger.WithFields(logrus.Fields{
		"backend":         s.remote.Name(),
		"get":             p.Get,
		"set":             p.Set,
		"set_with_expiry": p.SetWithExpiry,
		"delete":          p.Delete,
	})
	entry.Info("remote cache permissions tested")
	if !p.Get {
		entry.Warn("remote GET not working; reads will fall back to local cache")
	}
	if !p.SetWithExpiry && p.Set {
		entry.Warn("remote SETEX not allowed; TTL writes will be stored without expiry")
	}
	if !p.Delete {
		entry.Warn("remote DEL not allowed; deletes will write tombstones")
	}
	return p
}

// Close releases the remote connection.
func (s *Store) Close() error {
	if s.remote == nil {
		return nil
	}
	return s.remote.Close()
}

func (s *Store) Get(ctx context.Context, key string) ports.Result {
	if s.remote == nil {
		v, ok := s.localGet(key)
		if !ok {
			return s.observe("get", ports.Result{Outcome: ports.OutcomeMiss})
		}
		return s.observe("get", ports.Result{Outcome: ports.OutcomeHit, Found: true, Value: v})
	}

	raw, ok, err := s.remote.Get(ctx, key)
	if err != nil {
		s.warn("get", key, err)
		v, found := s.localGet(key)
		return s.observe("get", ports.Result{Outcome: ports.OutcomeDegradedLocal, Found: found, Value: v})
	}
	s.degraded.Store(false)
	if !ok || !live([]byte(raw)) {
		return s.observe("get", ports.Result{Outcome: ports.OutcomeMiss})
	}
	return s.observe("get", ports.Result{Outcome: ports.OutcomeHit, Found: true, Value: json.RawMessage(raw)})
}

func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) ports.Result {
	b, err := json.Marshal(value)
	if err != nil {
		s.logger.WithFields(logrus.Fields{"key": key, "op": "set"}).WithError(err).Error("cache value is not JSON encodable")
		return s.observe("set", ports.Result{Outcome: ports.OutcomeRejected, Err: err})
	}
	if s.remote == nil {
		s.local.Put(key, b, ttl)
		return s.observe("set", ports.Result{Outcome: ports.OutcomeApplied})
	}

	outcome := ports.OutcomeApplied
	if ttl > 0 {
		err = ports.ErrPermissionDenied
		if s.allowed(func(p *ports.PermissionProfile) bool { return p.SetWithExpiry }) {
			err = s.remote.SetWithExpiry(ctx, key, string(b), ttl)
		}
		if errors.Is(err, ports.ErrPermissionDenied) {
			s.logger.WithField("key", key).Debug("SETEX not allowed; storing without expiry")
			err = s.remote.Set(ctx, key, string(b))
			outcome = ports.OutcomeAppliedNoExpiry
		}
	} else {
		err = s.remote.Set(ctx, key, string(b))
	}
	if err != nil {
		s.warn("set", key, err)
		s.local.Put(key, b, ttl)
		return s.observe("set", ports.Result{Outcome: ports.OutcomeDegradedLocal})
	}
	s.degraded.Store(false)
	return s.observe("set", ports.Result{Outcome: outcome})
}

func (s *Store) Delete(ctx context.Context, key string) ports.Result {
	s.local.Delete(key)
	if s.remote == nil {
		return s.observe("delete", ports.Result{Outcome: ports.OutcomeApplied})
	}

	err := ports.ErrPermissionDenied
	if s.allowed(func(p *ports.PermissionProfile) bool { return p.Delete }) {
		err = s.remote.Delete(ctx, key)
	}
	if err == nil {
		s.degraded.Store(false)
		return s.observe("delete", ports.Result{Outcome: ports.OutcomeApplied})
	}
	if errors.Is(err, ports.ErrPermissionDenied) {
		s.logger.WithField("key", key).Debug("DEL not allowed; writing tombstone")
		if err = s.remote.Set(ctx, key, Tombstone); err == nil {
			s.degraded.Store(false)
			return s.observe("delete", ports.Result{Outcome: ports.OutcomeTombstoned})
		}
	}
	s.warn("delete", key, err)
	return s.observe("delete", ports.Result{Outcome: ports.OutcomeDegradedLocal})
}

func (s *Store) Invalidate(ctx context.Context, key string) ports.Result {
	s.local.Delete(key)
	if s.remote == nil {
		return s.observe("invalidate", ports.Result{Outcome: ports.OutcomeApplied})
	}
	if err := s.remote.Set(ctx, key, Tombstone); err != nil {
		s.warn("invalidate", key, err)
		return s.observe("invalidate", ports.Result{Outcome: ports.OutcomeDegradedLocal})
	}
	s.degraded.Store(false)
	return s.observe("invalidate", ports.Result{Outcome: ports.OutcomeTombstoned})
}

// Clear invalidates the well-known keys and empties the local store.
func (s *Store) Clear(ctx context.Context) {
	for _, key := range s.wellKnown {
		s.Invalidate(ctx, key)
	}
	s.local.Clear()
}

// ListKeys matches pattern against local keys. The remote store has no key
// enumeration, so a remote-backed cache always returns an empty list.
func (s *Store) ListKeys(ctx context.Context, pattern string) []string {
	if s.remote != nil {
		s.logger.WithField("pattern", pattern).Debug("key enumeration not supported by remote cache")
		return []string{}
	}
	re, err := CompileGlob(pattern)
	if err != nil {
		s.logger.WithField("pattern", pattern).WithError(err).Warn("invalid key pattern")
		return []string{}
	}
	return s.local.Keys(re.MatchString)
}

// TestPermissions probes each remote primitive independently and remembers
// the profile for the lifetime of the store.
func (s *Store) TestPermissions(ctx context.Context) ports.PermissionProfile {
	if s.remote == nil {
		return ports.PermissionProfile{}
	}
	p := ports.PermissionProfile{HasRemote: true}
	probe := func(name string, fn func() error) bool {
		if err := fn(); err != nil {
			s.logger.WithFields(logrus.Fields{"primitive": name}).WithError(err).Info("remote permission test failed")
			return false
		}
		return true
	}
	p.Get = probe("get", func() error { _, _, err := s.remote.Get(ctx, probeKey); return err })
	p.Set = probe("set", func() error { return s.remote.Set(ctx, probeKey, `"test"`) })
	p.SetWithExpiry = probe("setex", func() error { return s.remote.SetWithExpiry(ctx, probeKey, `"test"`, probeTTL) })
	p.Delete = probe("del", func() error { return s.remote.Delete(ctx, probeKey) })
	s.profile.Store(&p)
	return p
}

func (s *Store) Info() ports.CacheInfo {
	info := ports.CacheInfo{
		BackendKind:     ports.BackendLocal,
		Backend:         "local memory",
		LocalEntryCount: s.local.Len(),
	}
	if s.remote != nil {
		info.BackendKind = ports.BackendRemote
		info.Backend = s.remote.Name()
		info.IsRemoteActive = true
		info.Degraded = s.degraded.Load()
	}
	if p := s.profile.Load(); p != nil {
		cp := *p
		info.Permissions = &cp
	}
	return info
}

// allowed reports whether a primitive may be attempted. Unknown profiles
// allow everything.
func (s *Store) allowed(check func(*ports.PermissionProfile) bool) bool {
	p := s.profile.Load()
	return p == nil || check(p)
}

func (s *Store) localGet(key string) (json.RawMessage, bool) {
	v, ok := s.local.Get(key)
	if !ok || !live(v) {
		return nil, false
	}
	return v, true
}

func (s *Store) warn(op, key string, err error) {
	s.degraded.Store(true)
	s.logger.WithFields(logrus.Fields{"op": op, "key": key}).WithError(err).Warn("remote cache failed; using local cache")
}

func (s *Store) observe(op string, r ports.Result) ports.Result {
	if s.ops != nil {
		s.ops.WithLabelValues(op, string(r.Outcome)).Inc()
	}
	return r
}

// live reports whether a stored payload is a real value: valid JSON that is
// not the tombstone.
func live(b []byte) bool {
	return len(b) > 0 && string(b) != Tombstone && json.Valid(b)
}
