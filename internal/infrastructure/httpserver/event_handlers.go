package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/event"
	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
)

// Event handlers
func (s *Server) listEvents(c echo.Context) error {
	groupByDate, _ := strconv.ParseBool(c.QueryParam("groupByDate"))
	q := ports.EventQuery{
		StartDate:   c.QueryParam("startDate"),
		EndDate:     c.QueryParam("endDate"),
		League:      c.QueryParam("league"),
		State:       event.State(c.QueryParam("state")),
		GroupByDate: groupByDate,
	}

	listing, err := s.eventSvc.ListEvents(c.Request().Context(), q)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (s *Server) getEvent(c echo.Context) error {
	ev, err := s.eventSvc.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"event": ev})
}

func (s *Server) cacheInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, s.eventSvc.CacheInfo(c.Request().Context()))
}

func (s *Server) probeCachePermissions(c echo.Context) error {
	p := s.eventSvc.ProbePermissions(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{"permissions": p})
}

func (s *Server) clearCache(c echo.Context) error {
	s.eventSvc.ClearCache(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "cache cleared",
	})
}
