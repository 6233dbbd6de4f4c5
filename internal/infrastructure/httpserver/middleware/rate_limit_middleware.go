package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware limits requests per client IP with an in-memory token
// bucket. It guards the admin login endpoint.
type RateLimitMiddleware struct {
	store  echomw.RateLimiterStore
	logger *logrus.Logger
}

func NewRateLimitMiddleware(perSecond float64, burst int, logger *logrus.Logger) *RateLimitMiddleware {
	if perSecond <= 0 {
		perSecond = 0.2
	}
	if burst <= 0 {
		burst = 5
	}
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 10 * time.Minute,
	})
	return &RateLimitMiddleware{store: store, logger: logger}
}

func (r *RateLimitMiddleware) Handler() echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: r.store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"ip": identifier, "path": c.Request().URL.Path}).Warn("rate limit exceeded")
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client")
		},
	})
}
