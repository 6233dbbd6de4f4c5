package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nguyenkim2108/league-scheude/internal/application/services"
	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/content"
	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/event"
	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/session"
)

// toHTTPError maps service errors to client-visible statuses.
func (s *Server) toHTTPError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, event.ErrInvalidRange),
		errors.Is(err, session.ErrInvalidSession),
		errors.Is(err, content.ErrInvalidSlot),
		errors.Is(err, content.ErrMissingField),
		errors.Is(err, content.ErrInvalidURL),
		errors.Is(err, content.ErrInvalidYouTubeURL),
		errors.Is(err, services.ErrMissingCredentials):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUnauthorized),
		errors.Is(err, services.ErrSessionExpired):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, content.ErrBannerNotFound),
		errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if s.logger != nil {
		s.logger.WithField("path", c.Request().URL.Path).WithError(err).Error("request failed")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
