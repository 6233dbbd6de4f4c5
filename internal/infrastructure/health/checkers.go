package health

import (
	"context"

	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
)

// remoteCacheChecker pings the remote cache backend.
type remoteCacheChecker struct{ remote ports.RemoteStore }

func (r *remoteCacheChecker) Name() string                    { return "cache:" + r.remote.Name() }
func (r *remoteCacheChecker) Check(ctx context.Context) error { return r.remote.Ping(ctx) }

// NewRemoteCacheHealthChecker creates a health checker for a remote cache
// backend. A nil remote yields nil, which the health handler skips.
func NewRemoteCacheHealthChecker(remote ports.RemoteStore) ports.HealthChecker {
	if remote == nil {
		return nil
	}
	return &remoteCacheChecker{remote: remote}
}
