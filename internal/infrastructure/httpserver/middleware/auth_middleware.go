package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/httpserver/helpers"
)

type AdminAuthMiddleware struct {
	authService ports.AuthService
	logger      *logrus.Logger
}

func NewAdminAuthMiddleware(authService ports.AuthService, logger *logrus.Logger) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{authService: authService, logger: logger}
}

// RequireSession resolves the bearer session id, slides the session's expiry
// and stores it in the request context.
func (m *AdminAuthMiddleware) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID, err := helpers.GetBearerToken(c)
			if err != nil {
				return err
			}

			sess, err := m.authService.Authenticate(c.Request().Context(), sessionID, c.RealIP(), c.Request().UserAgent())
			if err != nil {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path, "error": err.Error()}).Warn("admin session rejected")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			helpers.SetSessionID(c, sessionID)
			helpers.SetAdminSession(c, sess)

			if m.logger != nil {
				m.logger.WithFields(logrus.Fields{"session_id": sessionID, "username": sess.Username}).Debug("admin session validated")
			}
			return next(c)
		}
	}
}
