package event

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrInvalidRange is returned when a date range cannot be parsed or ends
// before it starts.
var ErrInvalidRange = errors.New("invalid date range")

// DateLayout is the canonical day granularity used in cache keys.
const DateLayout = "2006-01-02"

type League struct {
	Image string `json:"image"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
}

type MatchTeam struct {
	Name     string  `json:"name"`
	Code     string  `json:"code"`
	Image    string  `json:"image"`
	GameWins int     `json:"gameWins"`
	Outcome  *string `json:"outcome"`
}

type Tournament struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Event is one scheduled match as served to the front-end.
type Event struct {
	ID          string      `json:"id"`
	League      League      `json:"league"`
	MatchFormat string      `json:"matchFormat"`
	MatchTeams  []MatchTeam `json:"matchTeams"`
	StartTime   string      `json:"startTime"`
	State       State       `json:"state"`
	Type        string      `json:"type"`
	BlockName   string      `json:"blockName"`
	Tournament  Tournament  `json:"tournament"`
}

// StartsAt parses StartTime; unparseable values sort first.
func (e Event) StartsAt() time.Time {
	t, err := time.Parse(time.RFC3339, e.StartTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

type State string

const (
	StateUnstarted  State = "unstarted"
	StateInProgress State = "inProgress"
	StateCompleted  State = "completed"
)

// Label returns the Vietnamese display label for the state.
func (s State) Label() string {
	switch s {
	case StateUnstarted:
		return "Chưa bắt đầu"
	case StateInProgress:
		return "Đang diễn ra"
	case StateCompleted:
		return "Đã kết thúc"
	default:
		return string(s)
	}
}

// DateRange is an inclusive window of days.
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Validate parses both bounds and rejects end < start.
func (r DateRange) Validate() error {
	start, err := ParseDate(r.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start date %q", ErrInvalidRange, r.StartDate)
	}
	end, err := ParseDate(r.EndDate)
	if err != nil {
		return fmt.Errorf("%w: end date %q", ErrInvalidRange, r.EndDate)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: %s is before %s", ErrInvalidRange, r.EndDate, r.StartDate)
	}
	return nil
}

// CacheKey returns the events:<start>:<end> key for the range.
func (r DateRange) CacheKey() string {
	return "events:" + r.StartDate + ":" + r.EndDate
}

// ParseDate accepts a YYYY-MM-DD day or a full RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// DefaultRange is yesterday through tomorrow in loc.
func DefaultRange(now time.Time, loc *time.Location) DateRange {
	today := now.In(loc)
	return DateRange{
		StartDate: today.AddDate(0, 0, -1).Format(DateLayout),
		EndDate:   today.AddDate(0, 0, 1).Format(DateLayout),
	}
}

// Extend returns the window that follows r: from r's end date, days long.
func (r DateRange) Extend(days int) (DateRange, error) {
	end, err := ParseDate(r.EndDate)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end date %q", ErrInvalidRange, r.EndDate)
	}
	return DateRange{
		StartDate: r.EndDate,
		EndDate:   end.AddDate(0, 0, days).Format(DateLayout),
	}, nil
}

// SortByTime sorts events in place by start time, ascending unless desc.
func SortByTime(events []Event, desc bool) {
	sort.SliceStable(events, func(i, j int) bool {
		if desc {
			return events[i].StartsAt().After(events[j].StartsAt())
		}
		return events[i].StartsAt().Before(events[j].StartsAt())
	})
}

// Filter narrows a list of events. Zero fields do not filter.
type Filter struct {
	League string
	State  State
	From   time.Time
	To     time.Time
}

func (f Filter) Apply(events []Event) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if f.League != "" && !strings.EqualFold(e.League.Slug, f.League) {
			continue
		}
		if f.State != "" && e.State != f.State {
			continue
		}
		if !f.From.IsZero() && e.StartsAt().Before(f.From) {
			continue
		}
		if !f.To.IsZero() && e.StartsAt().After(f.To) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// UniqueLeagues returns leagues in first-seen order.
func UniqueLeagues(events []Event) []League {
	seen := make(map[string]bool)
	var out []League
	for _, e := range events {
		if seen[e.League.Slug] {
			continue
		}
		seen[e.League.Slug] = true
		out = append(out, e.League)
	}
	return out
}
