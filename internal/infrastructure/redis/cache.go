package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
)

// RemoteStore implements ports.RemoteStore using a Redis client.
type RemoteStore struct {
	r redis.Cmdable
	// optional key prefix to namespace entries
	prefix string
	closer func() error
}

// NewRemoteStore wraps a Redis client. Close on the store closes client when
// it implements io.Closer.
func NewRemoteStore(r redis.Cmdable, prefix string) *RemoteStore {
	s := &RemoteStore{r: r, prefix: prefix}
	if c, ok := r.(interface{ Close() error }); ok {
		s.closer = c.Close
	}
	return s
}

func (s *RemoteStore) namespaced(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

func (s *RemoteStore) Name() string { return "redis" }

// Get implements RemoteStore.Get.
func (s *RemoteStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.r.Get(ctx, s.namespaced(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, classify("GET", err)
	}
	return val, true, nil
}

// Set implements RemoteStore.Set.
func (s *RemoteStore) Set(ctx context.Context, key, value string) error {
	return classify("SET", s.r.Set(ctx, s.namespaced(key), value, 0).Err())
}

// SetWithExpiry implements RemoteStore.SetWithExpiry.
func (s *RemoteStore) SetWithExpiry(ctx context.Context, key, value string, ttl time.Duration) error {
	return classify("SETEX", s.r.SetEX(ctx, s.namespaced(key), value, ttl).Err())
}

// Delete implements RemoteStore.Delete.
func (s *RemoteStore) Delete(ctx context.Context, key string) error {
	return classify("DEL", s.r.Del(ctx, s.namespaced(key)).Err())
}

func (s *RemoteStore) Ping(ctx context.Context) error {
	return s.r.Ping(ctx).Err()
}

func (s *RemoteStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// classify maps ACL rejections to ports.ErrPermissionDenied.
func classify(cmd string, err error) error {
	if err == nil {
		return nil
	}
	if IsPermissionError(err) {
		return fmt.Errorf("%s: %w: %s", cmd, ports.ErrPermissionDenied, err.Error())
	}
	return fmt.Errorf("%s: %w", cmd, err)
}

// IsPermissionError reports whether a server error message is an ACL denial.
func IsPermissionError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "NOPERM") || strings.Contains(msg, "no permissions")
}
