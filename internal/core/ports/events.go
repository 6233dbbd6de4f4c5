package ports

import (
	"context"

	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/event"
)

// EventFetcher loads events for a range from the upstream schedule API. It
// returns events sorted by ascending start time.
type EventFetcher interface {
	FetchEvents(ctx context.Context, r event.DateRange) ([]event.Event, error)
}

// EventQuery selects events for display. Empty dates select the default range.
type EventQuery struct {
	StartDate   string
	EndDate     string
	League      string
	State       event.State
	GroupByDate bool
}

type EventListing struct {
	Events    []event.View     `json:"events"`
	Groups    []event.DayGroup `json:"groups,omitempty"`
	DateRange event.DateRange  `json:"dateRange"`
	NextRange *event.DateRange `json:"nextRange,omitempty"`
}

// CacheReport extends CacheInfo with the state of the current default range.
type CacheReport struct {
	CacheInfo
	CachedEvents  int             `json:"cachedEvents"`
	LastEventTime *string         `json:"lastEventTime"`
	CurrentRange  event.DateRange `json:"currentRange"`
}

type EventService interface {
	ListEvents(ctx context.Context, q EventQuery) (*EventListing, error)
	GetEvent(ctx context.Context, id string) (*event.View, error)
	CacheInfo(ctx context.Context) *CacheReport
	ClearCache(ctx context.Context)
	ProbePermissions(ctx context.Context) PermissionProfile
	Warm(ctx context.Context) error
}
