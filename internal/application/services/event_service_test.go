package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/Nguyenkim2108/league-scheude/configs"
	impl "github.com/Nguyenkim2108/league-scheude/internal/application/services"
	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/event"
	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/cache"
	"github.com/Nguyenkim2108/league-scheude/internal/mocks"
)

type eventFixture struct {
	svc     *impl.EventService
	store   *cache.Store
	fetcher *mocks.EventFetcherMock
	ranges  []event.DateRange
}

func newEventFixture(t *testing.T, remote ports.RemoteStore) *eventFixture {
	t.Helper()
	clk := newTestClock()
	f := &eventFixture{}
	f.fetcher = &mocks.EventFetcherMock{FetchEventsFn: func(ctx context.Context, r event.DateRange) ([]event.Event, error) {
		f.ranges = append(f.ranges, r)
		return sampleEvents(), nil
	}}
	f.store = cache.NewStore(remote, nil, cache.WithClock(clk.Now))
	ranges := impl.NewRangeEventCache(f.store, time.Minute, nil)
	f.svc = impl.NewEventService(ranges, f.fetcher, f.store, &config.ScheduleConfig{TimeZone: "Asia/Ho_Chi_Minh", ExtendDays: 3}, nil).
		WithClock(clk.Now)
	return f
}

func TestEventService_DefaultRange(t *testing.T) {
	f := newEventFixture(t, nil)
	require.Equal(t, event.DateRange{StartDate: "2024-01-01", EndDate: "2024-01-03"}, f.svc.DefaultRange())
}

func TestEventService_ListEventsDefaultRange(t *testing.T) {
	f := newEventFixture(t, nil)

	listing, err := f.svc.ListEvents(context.Background(), ports.EventQuery{})
	require.NoError(t, err)
	require.Len(t, listing.Events, 2)
	require.Equal(t, "2024-01-01", listing.DateRange.StartDate)
	require.Equal(t, &event.DateRange{StartDate: "2024-01-03", EndDate: "2024-01-06"}, listing.NextRange)
	require.Nil(t, listing.Groups)

	v := listing.Events[0]
	assert.Equal(t, "01/01/2024", v.FormattedTime.Date)
	assert.Equal(t, "15:00", v.FormattedTime.Time)
	assert.Equal(t, "Đã kết thúc", v.StateLabel)
}

func TestEventService_ListEventsNeedsBothDates(t *testing.T) {
	f := newEventFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.ListEvents(ctx, ports.EventQuery{StartDate: "2023-12-01"})
	require.NoError(t, err)
	_, err = f.svc.ListEvents(ctx, ports.EventQuery{StartDate: "2023-12-01", EndDate: "2023-12-05"})
	require.NoError(t, err)

	require.Equal(t, []event.DateRange{
		{StartDate: "2024-01-01", EndDate: "2024-01-03"},
		{StartDate: "2023-12-01", EndDate: "2023-12-05"},
	}, f.ranges)
}

func TestEventService_ListEventsFilterAndGroup(t *testing.T) {
	f := newEventFixture(t, nil)

	listing, err := f.svc.ListEvents(context.Background(), ports.EventQuery{League: "LCK", GroupByDate: true})
	require.NoError(t, err)
	require.Len(t, listing.Events, 1)
	require.Equal(t, "ev1", listing.Events[0].ID)
	require.Len(t, listing.Groups, 1)
	require.Equal(t, "01/01/2024", listing.Groups[0].DateKey)

	listing, err = f.svc.ListEvents(context.Background(), ports.EventQuery{State: event.StateUnstarted})
	require.NoError(t, err)
	require.Len(t, listing.Events, 1)
	require.Equal(t, "ev2", listing.Events[0].ID)
}

func TestEventService_ListEventsInvalidRange(t *testing.T) {
	f := newEventFixture(t, nil)
	_, err := f.svc.ListEvents(context.Background(), ports.EventQuery{StartDate: "2024-02-01", EndDate: "2024-01-01"})
	require.ErrorIs(t, err, event.ErrInvalidRange)
	require.Equal(t, 0, f.fetcher.Calls())
}

func TestEventService_ListEventsUpstreamError(t *testing.T) {
	f := newEventFixture(t, nil)
	boom := errors.New("boom")
	f.fetcher.FetchEventsFn = func(ctx context.Context, r event.DateRange) ([]event.Event, error) { return nil, boom }

	_, err := f.svc.ListEvents(context.Background(), ports.EventQuery{})
	require.ErrorIs(t, err, boom)
}

func TestEventService_GetEvent(t *testing.T) {
	f := newEventFixture(t, nil)
	ctx := context.Background()

	v, err := f.svc.GetEvent(ctx, "ev2")
	require.NoError(t, err)
	require.Equal(t, "ev2", v.ID)

	_, err = f.svc.GetEvent(ctx, "missing")
	require.ErrorIs(t, err, impl.ErrNotFound)
	require.Equal(t, 1, f.fetcher.Calls())
}

func TestEventService_CacheInfoLocal(t *testing.T) {
	f := newEventFixture(t, nil)
	ctx := context.Background()

	report := f.svc.CacheInfo(ctx)
	require.Equal(t, 0, report.CachedEvents)
	require.Nil(t, report.LastEventTime)

	require.NoError(t, f.svc.Warm(ctx))
	report = f.svc.CacheInfo(ctx)
	require.Equal(t, ports.BackendLocal, report.BackendKind)
	require.Equal(t, 2, report.CachedEvents)
	require.Equal(t, "2024-01-02T09:00:00Z", *report.LastEventTime)
	require.Nil(t, report.Permissions)
}

func TestEventService_CacheInfoRemoteProbesPermissions(t *testing.T) {
	remote := mocks.NewRemoteStore()
	remote.DenyDel = true
	f := newEventFixture(t, remote)

	report := f.svc.CacheInfo(context.Background())
	require.True(t, report.IsRemoteActive)
	require.NotNil(t, report.Permissions)
	require.False(t, report.Permissions.Delete)
	require.True(t, report.Permissions.SetWithExpiry)
}

func TestEventService_CacheInfoReusesStartupProfile(t *testing.T) {
	remote := mocks.NewRemoteStore()
	remote.DenyDel = true
	f := newEventFixture(t, remote)
	ctx := context.Background()
	f.store.Init(ctx)
	dels := remote.Calls("DEL")

	for i := 0; i < 3; i++ {
		report := f.svc.CacheInfo(ctx)
		require.NotNil(t, report.Permissions)
		require.False(t, report.Permissions.Delete)
	}
	require.Equal(t, dels, remote.Calls("DEL"), "cache info must not touch the remote probe key")

	remote.DenyDel = false
	p := f.svc.ProbePermissions(ctx)
	require.True(t, p.Delete)
	require.Equal(t, dels+1, remote.Calls("DEL"))
	require.True(t, f.svc.CacheInfo(ctx).Permissions.Delete)
}

func TestEventService_ClearCache(t *testing.T) {
	remote := mocks.NewRemoteStore()
	f := newEventFixture(t, remote)
	ctx := context.Background()

	require.NoError(t, f.svc.Warm(ctx))
	f.svc.ClearCache(ctx)

	raw, ok := remote.Raw("events:2024-01-01:2024-01-03")
	require.True(t, ok)
	require.Equal(t, cache.Tombstone, raw)

	_, err := f.svc.ListEvents(ctx, ports.EventQuery{})
	require.NoError(t, err)
	require.Equal(t, 2, f.fetcher.Calls())
}

func TestEventService_UnknownZoneFallsBack(t *testing.T) {
	store := cache.NewStore(nil, nil)
	svc := impl.NewEventService(impl.NewRangeEventCache(store, 0, nil), &mocks.EventFetcherMock{}, store, &config.ScheduleConfig{TimeZone: "Mars/Olympus"}, nil).
		WithClock(func() time.Time { return time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC) })

	// 20:00 UTC is already Jan 3 at UTC+7.
	require.Equal(t, event.DateRange{StartDate: "2024-01-02", EndDate: "2024-01-04"}, svc.DefaultRange())
}
