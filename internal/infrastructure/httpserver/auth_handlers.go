package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/httpserver/helpers"
)

// Admin auth handlers
func (s *Server) login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := s.authSvc.Login(c.Request().Context(), &req, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return s.toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   "login successful",
		"sessionId": res.SessionID,
		"expiresAt": res.ExpiresAt,
	})
}

func (s *Server) logout(c echo.Context) error {
	sessionID, err := helpers.GetSessionIDFromContext(c)
	if err != nil {
		return err
	}
	s.authSvc.Logout(c.Request().Context(), sessionID)
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "logout successful"})
}

func (s *Server) checkSession(c echo.Context) error {
	sess, err := helpers.GetAdminSessionFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"session": map[string]any{
			"username":  sess.Username,
			"loginTime": sess.LoginTime,
			"expiresAt": sess.ExpiresAt,
		},
	})
}
