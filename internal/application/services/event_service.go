package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/Nguyenkim2108/league-scheude/configs"
	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/event"
	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
)

var ErrNotFound = errors.New("not found")

// fallbackZone is used when the tz database lacks the schedule zone.
var fallbackZone = time.FixedZone("UTC+7", 7*60*60)

type EventService struct {
	ranges     *RangeEventCache
	fetcher    ports.EventFetcher
	cache      ports.CacheStore
	loc        *time.Location
	extendDays int
	now        func() time.Time
	logger     *logrus.Logger
}

func NewEventService(ranges *RangeEventCache, fetcher ports.EventFetcher, cache ports.CacheStore, cfg *config.ScheduleConfig, logger *logrus.Logger) *EventService {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		if logger != nil {
			logger.WithFields(logrus.Fields{"time_zone": cfg.TimeZone}).WithError(err).Warn("unknown schedule time zone; using UTC+7")
		}
		loc = fallbackZone
	}
	extend := cfg.ExtendDays
	if extend <= 0 {
		extend = 3
	}
	return &EventService{
		ranges:     ranges,
		fetcher:    fetcher,
		cache:      cache,
		loc:        loc,
		extendDays: extend,
		now:        time.Now,
		logger:     logger,
	}
}

// WithClock replaces time.Now for default range computation.
func (s *EventService) WithClock(now func() time.Time) *EventService {
	s.now = now
	return s
}

func (s *EventService) DefaultRange() event.DateRange {
	return event.DefaultRange(s.now(), s.loc)
}

// ListEvents serves the requested range, or the default range unless both
// dates are given.
func (s *EventService) ListEvents(ctx context.Context, q ports.EventQuery) (*ports.EventListing, error) {
	r := s.DefaultRange()
	if q.StartDate != "" && q.EndDate != "" {
		r = event.DateRange{StartDate: q.StartDate, EndDate: q.EndDate}
	}

	events, err := s.ranges.GetOrRefresh(ctx, r.StartDate, r.EndDate, s.fetcher.FetchEvents)
	if err != nil {
		return nil, err
	}
	events = event.Filter{League: q.League, State: q.State}.Apply(events)

	views := make([]event.View, 0, len(events))
	for _, e := range events {
		views = append(views, event.NewView(e, s.loc))
	}
	listing := &ports.EventListing{Events: views, DateRange: r}
	if q.GroupByDate {
		listing.Groups = event.GroupByDate(views)
	}
	if next, err := r.Extend(s.extendDays); err == nil {
		listing.NextRange = &next
	}
	return listing, nil
}

// GetEvent looks the event up in the default range.
func (s *EventService) GetEvent(ctx context.Context, id string) (*event.View, error) {
	r := s.DefaultRange()
	events, err := s.ranges.GetOrRefresh(ctx, r.StartDate, r.EndDate, s.fetcher.FetchEvents)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		if e.ID == id {
			v := event.NewView(e, s.loc)
			return &v, nil
		}
	}
	return nil, ErrNotFound
}

// CacheInfo reports the cache backend and what is cached for the default
// range. Permissions are the profile found at startup; the remote is only
// probed here when no profile is known yet.
func (s *EventService) CacheInfo(ctx context.Context) *ports.CacheReport {
	r := s.DefaultRange()
	report := &ports.CacheReport{CacheInfo: s.cache.Info(), CurrentRange: r}
	if events, ok := s.ranges.Peek(ctx, r.StartDate, r.EndDate); ok {
		report.CachedEvents = len(events)
		if len(events) > 0 {
			last := events[len(events)-1].StartTime
			report.LastEventTime = &last
		}
	}
	if report.IsRemoteActive && report.Permissions == nil {
		p := s.cache.TestPermissions(ctx)
		report.Permissions = &p
	}
	return report
}

// ProbePermissions re-runs the remote permission self-test and replaces the
// profile the cache uses to pick its write strategies.
func (s *EventService) ProbePermissions(ctx context.Context) ports.PermissionProfile {
	p := s.cache.TestPermissions(ctx)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"get":             p.Get,
			"set":             p.Set,
			"set_with_expiry": p.SetWithExpiry,
			"delete":          p.Delete,
		}).Info("cache permissions re-probed")
	}
	return p
}

func (s *EventService) ClearCache(ctx context.Context) {
	r := s.DefaultRange()
	s.ranges.Invalidate(ctx, r.StartDate, r.EndDate)
	s.cache.Clear(ctx)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"start_date": r.StartDate, "end_date": r.EndDate}).Info("event cache cleared")
	}
}

// Warm loads the default range into the cache.
func (s *EventService) Warm(ctx context.Context) error {
	r := s.DefaultRange()
	events, err := s.ranges.GetOrRefresh(ctx, r.StartDate, r.EndDate, s.fetcher.FetchEvents)
	if err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"start_date": r.StartDate, "end_date": r.EndDate, "count": len(events)}).Info("event cache warmed")
	}
	return nil
}
