package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/Nguyenkim2108/league-scheude/internal/application/services"
	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/session"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/httpserver/helpers"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/httpserver/middleware"
	"github.com/Nguyenkim2108/league-scheude/internal/mocks"
)

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	htErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, code, htErr.Code)
}

func TestRequireSession_MissingTokenReturns401(t *testing.T) {
	e := echo.New()
	m := middleware.NewAdminAuthMiddleware(&mocks.AuthServiceMock{}, logrus.New())
	handler := m.RequireSession()(okHandler)

	for _, header := range []string{"", "Basic abc", "Bearer   "} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		c := e.NewContext(req, httptest.NewRecorder())
		requireHTTPError(t, handler(c), http.StatusUnauthorized)
	}
}

func TestRequireSession_ExpiredSessionReturns401(t *testing.T) {
	e := echo.New()
	authMock := &mocks.AuthServiceMock{AuthenticateFn: func(ctx context.Context, id, ip, ua string) (*session.Session, error) {
		return nil, services.ErrSessionExpired
	}}
	handler := middleware.NewAdminAuthMiddleware(authMock, nil).RequireSession()(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer old")
	c := e.NewContext(req, httptest.NewRecorder())
	requireHTTPError(t, handler(c), http.StatusUnauthorized)
}

func TestRequireSession_StoresSession(t *testing.T) {
	e := echo.New()
	var gotIP, gotUA string
	authMock := &mocks.AuthServiceMock{AuthenticateFn: func(ctx context.Context, id, ip, ua string) (*session.Session, error) {
		gotIP, gotUA = ip, ua
		return &session.Session{ID: id, Username: "admin"}, nil
	}}
	var seen *session.Session
	var seenID string
	handler := middleware.NewAdminAuthMiddleware(authMock, nil).RequireSession()(func(c echo.Context) error {
		var err error
		seen, err = helpers.GetAdminSessionFromContext(c)
		if err != nil {
			return err
		}
		seenID, err = helpers.GetSessionIDFromContext(c)
		if err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(echo.HeaderXRealIP, "9.9.9.9")
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "abc", seenID)
	require.Equal(t, "admin", seen.Username)
	require.Equal(t, "9.9.9.9", gotIP)
	require.Equal(t, "test-agent", gotUA)
}

func TestRateLimit_DeniesAfterBurstPerIP(t *testing.T) {
	e := echo.New()
	handler := middleware.NewRateLimitMiddleware(0.001, 2, nil).Handler()(okHandler)

	call := func(ip string) error {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		return handler(e.NewContext(req, httptest.NewRecorder()))
	}

	require.NoError(t, call("1.1.1.1"))
	require.NoError(t, call("1.1.1.1"))
	requireHTTPError(t, call("1.1.1.1"), http.StatusTooManyRequests)
	require.NoError(t, call("2.2.2.2"))
}

func TestMetrics_RecordsRenderedStatus(t *testing.T) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_requests_total"}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "test_duration_seconds"}, []string{"method", "route"})
	reg := prometheus.NewRegistry()
	reg.MustRegister(requests, duration)

	e := echo.New()
	e.Use(middleware.NewMetricsMiddleware(requests, duration).CollectHTTPMetrics())
	e.GET("/api/events/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events/ev1", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	families, err := reg.Gather()
	require.NoError(t, err)
	labels := map[string]string{}
	for _, mf := range families {
		if mf.GetName() != "test_requests_total" {
			continue
		}
		for _, lp := range mf.GetMetric()[0].GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
	}
	require.Equal(t, map[string]string{"method": "GET", "route": "/api/events/:id", "status": "404"}, labels)
}
