package helpers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/session"
)

// GetAdminSessionFromContext returns the session set by the admin auth middleware.
func GetAdminSessionFromContext(c echo.Context) (*session.Session, error) {
	s, ok := GetAdminSessionRaw(c)
	if !ok || s == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid session context")
	}
	return s, nil
}

func GetSessionIDFromContext(c echo.Context) (string, error) {
	id, ok := GetSessionIDRaw(c)
	if !ok || id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid session context")
	}
	return id, nil
}

// GetBearerToken extracts the session id from "Authorization: Bearer <id>".
func GetBearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "empty token")
	}
	return token, nil
}
