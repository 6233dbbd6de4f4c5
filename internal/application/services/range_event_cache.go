package services

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/event"
	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
)

// DefaultEventTTL is how long a fetched range stays cached.
const DefaultEventTTL = 300 * time.Second

// DefaultRefreshTimeout bounds one shared refresh.
const DefaultRefreshTimeout = 30 * time.Second

// RefreshFunc loads the events of a range on a cache miss. It must return
// events in ascending start time order; the cache stores them as given.
type RefreshFunc func(ctx context.Context, r event.DateRange) ([]event.Event, error)

// RangeEventCache caches event lists under events:<start>:<end>. Overlapping
// ranges are independent entries.
type RangeEventCache struct {
	cache     ports.CacheStore
	ttl       time.Duration
	logger    *logrus.Logger
	refreshes *prometheus.CounterVec
	timeout   time.Duration
	group     singleflight.Group
}

func NewRangeEventCache(cache ports.CacheStore, ttl time.Duration, logger *logrus.Logger) *RangeEventCache {
	if ttl <= 0 {
		ttl = DefaultEventTTL
	}
	return &RangeEventCache{cache: cache, ttl: ttl, logger: logger, timeout: DefaultRefreshTimeout}
}

// WithRefreshTimeout sets the deadline of a shared refresh.
func (c *RangeEventCache) WithRefreshTimeout(d time.Duration) *RangeEventCache {
	if d > 0 {
		c.timeout = d
	}
	return c
}

// WithRefreshMetrics counts refreshes by result (fetched, empty, error).
func (c *RangeEventCache) WithRefreshMetrics(v *prometheus.CounterVec) *RangeEventCache {
	c.refreshes = v
	return c
}

// GetOrRefresh returns the cached events for the range, calling refresh on a
// miss. Concurrent misses for the same range share one refresh. Empty results
// are cached too. The only errors are event.ErrInvalidRange, errors returned
// by refresh and the caller's own ctx error; nothing is cached when refresh
// fails.
//
// The shared refresh does not inherit any caller's cancellation, so a caller
// that goes away only abandons its own wait.
func (c *RangeEventCache) GetOrRefresh(ctx context.Context, startDate, endDate string, refresh RefreshFunc) ([]event.Event, error) {
	r := event.DateRange{StartDate: startDate, EndDate: endDate}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	key := r.CacheKey()
	if events, ok := c.lookup(ctx, key); ok {
		return events, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		if events, ok := c.lookup(ctx, key); ok {
			return events, nil
		}
		events, err := refresh(ctx, r)
		if err != nil {
			c.count("error")
			if c.logger != nil {
				c.logger.WithFields(logrus.Fields{"start_date": startDate, "end_date": endDate}).WithError(err).Error("failed to refresh events")
			}
			return nil, err
		}
		if events == nil {
			events = []event.Event{}
		}
		res := c.cache.Set(ctx, key, events, c.ttl)
		if len(events) == 0 {
			c.count("empty")
		} else {
			c.count("fetched")
		}
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{
				"key":     key,
				"count":   len(events),
				"outcome": res.Outcome,
			}).Info("cached events for range")
		}
		return events, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	events, ok := res.Val.([]event.Event)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	return events, nil
}

// Peek returns the cached events for a range without refreshing.
func (c *RangeEventCache) Peek(ctx context.Context, startDate, endDate string) ([]event.Event, bool) {
	r := event.DateRange{StartDate: startDate, EndDate: endDate}
	return c.lookup(ctx, r.CacheKey())
}

// Invalidate tombstones one range.
func (c *RangeEventCache) Invalidate(ctx context.Context, startDate, endDate string) {
	r := event.DateRange{StartDate: startDate, EndDate: endDate}
	c.cache.Invalidate(ctx, r.CacheKey())
}

func (c *RangeEventCache) lookup(ctx context.Context, key string) ([]event.Event, bool) {
	events, ok := ports.Decode[[]event.Event](c.cache.Get(ctx, key))
	if !ok || events == nil {
		return nil, false
	}
	return events, true
}

func (c *RangeEventCache) count(result string) {
	if c.refreshes != nil {
		c.refreshes.WithLabelValues(result).Inc()
	}
}
