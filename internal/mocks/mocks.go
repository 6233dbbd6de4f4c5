package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/content"
	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/event"
	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/session"
	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
)

// RemoteStore is an in-memory ports.RemoteStore whose primitives can be denied
// (NOPERM) or broken (network failure) one by one.
type RemoteStore struct {
	mu          sync.Mutex
	data        map[string]string
	ttls        map[string]time.Duration
	calls       map[string]int
	BackendName string

	DenyGet   bool
	DenySet   bool
	DenySetEx bool
	DenyDel   bool
	// Down makes every primitive fail with a non-permission error.
	Down bool
}

func NewRemoteStore() *RemoteStore {
	return &RemoteStore{
		data:        map[string]string{},
		ttls:        map[string]time.Duration{},
		calls:       map[string]int{},
		BackendName: "fake",
	}
}

var errDown = fmt.Errorf("dial tcp: connection refused")

func (m *RemoteStore) check(cmd string, denied bool) error {
	m.calls[cmd]++
	if m.Down {
		return fmt.Errorf("%s: %w", cmd, errDown)
	}
	if denied {
		return fmt.Errorf("%s: %w: NOPERM this user has no permissions to run the '%s' command", cmd, ports.ErrPermissionDenied, strings.ToLower(cmd))
	}
	return nil
}

func (m *RemoteStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("GET", m.DenyGet); err != nil {
		return "", false, err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *RemoteStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("SET", m.DenySet); err != nil {
		return err
	}
	m.data[key] = value
	delete(m.ttls, key)
	return nil
}

func (m *RemoteStore) SetWithExpiry(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("SETEX", m.DenySetEx); err != nil {
		return err
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *RemoteStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check("DEL", m.DenyDel); err != nil {
		return err
	}
	delete(m.data, key)
	delete(m.ttls, key)
	return nil
}

func (m *RemoteStore) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.check("PING", false)
}

func (m *RemoteStore) Name() string { return m.BackendName }
func (m *RemoteStore) Close() error { return nil }

// Raw returns the stored string for key.
func (m *RemoteStore) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// TTL returns the expiry recorded by SetWithExpiry; zero for plain SET.
func (m *RemoteStore) TTL(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ttls[key]
}

// Calls returns how many times a command was attempted.
func (m *RemoteStore) Calls(cmd string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[cmd]
}

// Put seeds a raw value.
func (m *RemoteStore) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// EventFetcherMock counts calls and delegates to FetchEventsFn.
type EventFetcherMock struct {
	mu            sync.Mutex
	calls         int
	FetchEventsFn func(ctx context.Context, r event.DateRange) ([]event.Event, error)
}

func (m *EventFetcherMock) FetchEvents(ctx context.Context, r event.DateRange) ([]event.Event, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.FetchEventsFn != nil {
		return m.FetchEventsFn(ctx, r)
	}
	return []event.Event{}, nil
}

func (m *EventFetcherMock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// SessionStoreMock is a lightweight mock for ports.SessionStore
type SessionStoreMock struct {
	CreateFn  func(ctx context.Context, id string, data session.Data) (*session.Session, error)
	ReadFn    func(ctx context.Context, id string) (*session.Session, bool)
	TouchFn   func(ctx context.Context, id string, patch session.Patch) (*session.Session, bool)
	DestroyFn func(ctx context.Context, id string)
	IDsFn     func(ctx context.Context) []string
}

func (m *SessionStoreMock) Create(ctx context.Context, id string, data session.Data) (*session.Session, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, id, data)
	}
	return &session.Session{ID: id, Username: data.Username}, nil
}
func (m *SessionStoreMock) Read(ctx context.Context, id string) (*session.Session, bool) {
	if m.ReadFn != nil {
		return m.ReadFn(ctx, id)
	}
	return nil, false
}
func (m *SessionStoreMock) Touch(ctx context.Context, id string, patch session.Patch) (*session.Session, bool) {
	if m.TouchFn != nil {
		return m.TouchFn(ctx, id, patch)
	}
	return nil, false
}
func (m *SessionStoreMock) Destroy(ctx context.Context, id string) {
	if m.DestroyFn != nil {
		m.DestroyFn(ctx, id)
	}
}
func (m *SessionStoreMock) IDs(ctx context.Context) []string {
	if m.IDsFn != nil {
		return m.IDsFn(ctx)
	}
	return []string{}
}

// AuthServiceMock is a lightweight mock for ports.AuthService
type AuthServiceMock struct {
	LoginFn            func(ctx context.Context, req *ports.LoginRequest, ip, ua string) (*ports.LoginResult, error)
	AuthenticateFn     func(ctx context.Context, sessionID, ip, ua string) (*session.Session, error)
	LogoutFn           func(ctx context.Context, sessionID string)
	ListSessionsFn     func(ctx context.Context) []string
	TerminateSessionFn func(ctx context.Context, sessionID string)
	CleanupSessionsFn  func(ctx context.Context) int
}

func (m *AuthServiceMock) Login(ctx context.Context, req *ports.LoginRequest, ip, ua string) (*ports.LoginResult, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, req, ip, ua)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *AuthServiceMock) Authenticate(ctx context.Context, sessionID, ip, ua string) (*session.Session, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, sessionID, ip, ua)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *AuthServiceMock) Logout(ctx context.Context, sessionID string) {
	if m.LogoutFn != nil {
		m.LogoutFn(ctx, sessionID)
	}
}
func (m *AuthServiceMock) ListSessions(ctx context.Context) []string {
	if m.ListSessionsFn != nil {
		return m.ListSessionsFn(ctx)
	}
	return []string{}
}
func (m *AuthServiceMock) TerminateSession(ctx context.Context, sessionID string) {
	if m.TerminateSessionFn != nil {
		m.TerminateSessionFn(ctx, sessionID)
	}
}
func (m *AuthServiceMock) CleanupSessions(ctx context.Context) int {
	if m.CleanupSessionsFn != nil {
		return m.CleanupSessionsFn(ctx)
	}
	return 0
}

// EventServiceMock is a lightweight mock for ports.EventService
type EventServiceMock struct {
	ListEventsFn func(ctx context.Context, q ports.EventQuery) (*ports.EventListing, error)
	GetEventFn   func(ctx context.Context, id string) (*event.View, error)
	CacheInfoFn  func(ctx context.Context) *ports.CacheReport
	ClearCacheFn func(ctx context.Context)
	ProbeFn      func(ctx context.Context) ports.PermissionProfile
	WarmFn       func(ctx context.Context) error
}

func (m *EventServiceMock) ListEvents(ctx context.Context, q ports.EventQuery) (*ports.EventListing, error) {
	if m.ListEventsFn != nil {
		return m.ListEventsFn(ctx, q)
	}
	return &ports.EventListing{Events: []event.View{}}, nil
}
func (m *EventServiceMock) GetEvent(ctx context.Context, id string) (*event.View, error) {
	if m.GetEventFn != nil {
		return m.GetEventFn(ctx, id)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *EventServiceMock) CacheInfo(ctx context.Context) *ports.CacheReport {
	if m.CacheInfoFn != nil {
		return m.CacheInfoFn(ctx)
	}
	return &ports.CacheReport{}
}
func (m *EventServiceMock) ClearCache(ctx context.Context) {
	if m.ClearCacheFn != nil {
		m.ClearCacheFn(ctx)
	}
}
func (m *EventServiceMock) ProbePermissions(ctx context.Context) ports.PermissionProfile {
	if m.ProbeFn != nil {
		return m.ProbeFn(ctx)
	}
	return ports.PermissionProfile{}
}
func (m *EventServiceMock) Warm(ctx context.Context) error {
	if m.WarmFn != nil {
		return m.WarmFn(ctx)
	}
	return nil
}

// ContentServiceMock is a lightweight mock for ports.ContentService
type ContentServiceMock struct {
	GetBannersFn   func(ctx context.Context) *content.Banners
	AddBannerFn    func(ctx context.Context, slot content.BannerSlot, req content.BannerRequest) (*content.Banner, int, error)
	UpdateBannerFn func(ctx context.Context, slot content.BannerSlot, id string, req content.BannerRequest) (*content.Banner, error)
	DeleteBannerFn func(ctx context.Context, slot content.BannerSlot, id string) (*content.Banner, int, error)
	GetVideoFn     func(ctx context.Context) *content.Video
	SetVideoFn     func(ctx context.Context, youtubeURL string) (*content.Video, error)
	DeleteVideoFn  func(ctx context.Context)
	GetSocialsFn   func(ctx context.Context) []content.Social
	SetSocialsFn   func(ctx context.Context, socials []content.Social) ([]content.Social, error)
	GetPopupFn     func(ctx context.Context) *content.Popup
	SetPopupFn     func(ctx context.Context, req content.PopupRequest) (*content.Popup, error)
	DeletePopupFn  func(ctx context.Context)
}

func (m *ContentServiceMock) GetBanners(ctx context.Context) *content.Banners {
	if m.GetBannersFn != nil {
		return m.GetBannersFn(ctx)
	}
	return &content.Banners{Banner1: []content.Banner{}, Banner2: []content.Banner{}}
}
func (m *ContentServiceMock) AddBanner(ctx context.Context, slot content.BannerSlot, req content.BannerRequest) (*content.Banner, int, error) {
	if m.AddBannerFn != nil {
		return m.AddBannerFn(ctx, slot, req)
	}
	return nil, 0, fmt.Errorf("not implemented")
}
func (m *ContentServiceMock) UpdateBanner(ctx context.Context, slot content.BannerSlot, id string, req content.BannerRequest) (*content.Banner, error) {
	if m.UpdateBannerFn != nil {
		return m.UpdateBannerFn(ctx, slot, id, req)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *ContentServiceMock) DeleteBanner(ctx context.Context, slot content.BannerSlot, id string) (*content.Banner, int, error) {
	if m.DeleteBannerFn != nil {
		return m.DeleteBannerFn(ctx, slot, id)
	}
	return nil, 0, fmt.Errorf("not implemented")
}
func (m *ContentServiceMock) GetVideo(ctx context.Context) *content.Video {
	if m.GetVideoFn != nil {
		return m.GetVideoFn(ctx)
	}
	return nil
}
func (m *ContentServiceMock) SetVideo(ctx context.Context, youtubeURL string) (*content.Video, error) {
	if m.SetVideoFn != nil {
		return m.SetVideoFn(ctx, youtubeURL)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *ContentServiceMock) DeleteVideo(ctx context.Context) {
	if m.DeleteVideoFn != nil {
		m.DeleteVideoFn(ctx)
	}
}
func (m *ContentServiceMock) GetSocials(ctx context.Context) []content.Social {
	if m.GetSocialsFn != nil {
		return m.GetSocialsFn(ctx)
	}
	return []content.Social{}
}
func (m *ContentServiceMock) SetSocials(ctx context.Context, socials []content.Social) ([]content.Social, error) {
	if m.SetSocialsFn != nil {
		return m.SetSocialsFn(ctx, socials)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *ContentServiceMock) GetPopup(ctx context.Context) *content.Popup {
	if m.GetPopupFn != nil {
		return m.GetPopupFn(ctx)
	}
	return nil
}
func (m *ContentServiceMock) SetPopup(ctx context.Context, req content.PopupRequest) (*content.Popup, error) {
	if m.SetPopupFn != nil {
		return m.SetPopupFn(ctx, req)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *ContentServiceMock) DeletePopup(ctx context.Context) {
	if m.DeletePopupFn != nil {
		m.DeletePopupFn(ctx)
	}
}
