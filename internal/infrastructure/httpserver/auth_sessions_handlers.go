package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Session management handlers
func (s *Server) listSessions(c echo.Context) error {
	ids := s.authSvc.ListSessions(c.Request().Context())
	resp := map[string]any{
		"success":  true,
		"sessions": ids,
		"count":    len(ids),
	}
	if len(ids) == 0 {
		resp["note"] = "sessions held by a remote cache cannot be listed; manage them by session id"
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) terminateSession(c echo.Context) error {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session id is required")
	}
	s.authSvc.TerminateSession(c.Request().Context(), sessionID)
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "session deleted"})
}

func (s *Server) cleanupSessions(c echo.Context) error {
	removed := s.authSvc.CleanupSessions(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"removed": removed,
		"message": "expired sessions removed; remaining sessions expire after their idle timeout",
	})
}
