package ports

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrPermissionDenied is returned by a RemoteStore when the backend rejects a
// command for lack of ACL permission (Redis NOPERM).
var ErrPermissionDenied = errors.New("remote store: permission denied")

// RemoteStore is a thin adapter over a remote key-value service. Values are
// already-encoded JSON strings. Every primitive may fail independently with
// ErrPermissionDenied on restricted credentials.
type RemoteStore interface {
	// Get returns the raw value for key. ok=false if the key does not exist.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value without expiry.
	Set(ctx context.Context, key, value string) error
	// SetWithExpiry stores value with a TTL (SETEX).
	SetWithExpiry(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key; absence is not an error.
	Delete(ctx context.Context, key string) error
	// Ping checks connectivity.
	Ping(ctx context.Context) error
	// Name identifies the backend for logs and cache info.
	Name() string
	Close() error
}

// Outcome tags which path a cache operation took.
type Outcome string

const (
	OutcomeHit  Outcome = "hit"
	OutcomeMiss Outcome = "miss"
	// OutcomeDegradedLocal means the remote store failed and the local fallback
	// served the operation.
	OutcomeDegradedLocal Outcome = "degraded_local"
	// OutcomeApplied means the write or delete ran on the primary backend with
	// the requested semantics.
	OutcomeApplied Outcome = "applied"
	// OutcomeAppliedNoExpiry means SETEX was denied and the value was stored
	// remotely with no enforced expiry.
	OutcomeAppliedNoExpiry Outcome = "applied_no_expiry"
	// OutcomeTombstoned means the key was overwritten with the tombstone
	// instead of being physically deleted.
	OutcomeTombstoned Outcome = "tombstoned"
	// OutcomeRejected means the value could not be encoded; nothing was written.
	OutcomeRejected Outcome = "rejected"
)

// Result is returned by every CacheStore operation.
type Result struct {
	Outcome Outcome
	// Found reports whether Value holds a live entry (reads only).
	Found bool
	Value json.RawMessage
	// Err is only set together with OutcomeRejected.
	Err error
}

// Degraded reports whether the operation fell back to the local store.
func (r Result) Degraded() bool { return r.Outcome == OutcomeDegradedLocal }

// PermissionProfile records which remote primitives are usable.
type PermissionProfile struct {
	HasRemote     bool `json:"hasRemote"`
	Get           bool `json:"get"`
	Set           bool `json:"set"`
	SetWithExpiry bool `json:"setWithExpiry"`
	Delete        bool `json:"delete"`
}

// BackendKind is the active primary backend.
type BackendKind string

const (
	BackendRemote BackendKind = "remote"
	BackendLocal  BackendKind = "local"
)

// CacheInfo describes the cache for diagnostics.
type CacheInfo struct {
	BackendKind     BackendKind        `json:"backendKind"`
	Backend         string             `json:"backend"`
	IsRemoteActive  bool               `json:"isRemoteActive"`
	Degraded        bool               `json:"degraded"`
	LocalEntryCount int                `json:"localEntryCount"`
	Permissions     *PermissionProfile `json:"permissions,omitempty"`
}

// CacheStore is the cache contract consumed by services. Implementations never
// surface backend failures: reads degrade to a miss or the local store, writes
// degrade to the local store. Values are JSON encoded by the store.
//
// The store is not linearizable. Concurrent writers to the same key race and
// the last write to complete wins.
type CacheStore interface {
	Get(ctx context.Context, key string) Result
	// Set stores value under key. ttl <= 0 stores a permanent entry.
	Set(ctx context.Context, key string, value any, ttl time.Duration) Result
	Delete(ctx context.Context, key string) Result
	// Invalidate writes a tombstone remotely (never a physical delete) and
	// always clears the local copy.
	Invalidate(ctx context.Context, key string) Result
	Clear(ctx context.Context)
	ListKeys(ctx context.Context, pattern string) []string
	TestPermissions(ctx context.Context) PermissionProfile
	Info() CacheInfo
}

// Decode unmarshals a live result into T. A miss or an undecodable value
// yields ok=false.
func Decode[T any](r Result) (v T, ok bool) {
	if !r.Found {
		return v, false
	}
	if err := json.Unmarshal(r.Value, &v); err != nil {
		return v, false
	}
	return v, true
}
