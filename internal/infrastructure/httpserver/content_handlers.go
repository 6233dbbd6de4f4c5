package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/content"
)

// Banner handlers
func (s *Server) getBanners(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"banners": s.contentSvc.GetBanners(c.Request().Context()),
	})
}

func (s *Server) addBanner(c echo.Context) error {
	slot, err := content.ParseSlot(c.Param("type"))
	if err != nil {
		return s.toHTTPError(c, err)
	}
	var req content.BannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	banner, total, err := s.contentSvc.AddBanner(c.Request().Context(), slot, req)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "banner added to " + string(slot),
		"banner":  banner,
		"total":   total,
	})
}

func (s *Server) updateBanner(c echo.Context) error {
	slot, err := content.ParseSlot(c.Param("type"))
	if err != nil {
		return s.toHTTPError(c, err)
	}
	var req content.BannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	banner, err := s.contentSvc.UpdateBanner(c.Request().Context(), slot, c.Param("id"), req)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "banner updated",
		"banner":  banner,
	})
}

func (s *Server) deleteBanner(c echo.Context) error {
	slot, err := content.ParseSlot(c.Param("type"))
	if err != nil {
		return s.toHTTPError(c, err)
	}

	removed, remaining, err := s.contentSvc.DeleteBanner(c.Request().Context(), slot, c.Param("id"))
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":       true,
		"message":       "banner deleted",
		"deletedBanner": removed,
		"remaining":     remaining,
	})
}

// Video handlers
func (s *Server) getVideo(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"video":   s.contentSvc.GetVideo(c.Request().Context()),
	})
}

func (s *Server) setVideo(c echo.Context) error {
	var req struct {
		YouTubeURL string `json:"youtube_url"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	video, err := s.contentSvc.SetVideo(c.Request().Context(), req.YouTubeURL)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "video updated",
		"video":   video,
	})
}

func (s *Server) deleteVideo(c echo.Context) error {
	s.contentSvc.DeleteVideo(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "video deleted"})
}

// Social handlers
func (s *Server) getSocials(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"socials": s.contentSvc.GetSocials(c.Request().Context()),
	})
}

func (s *Server) setSocials(c echo.Context) error {
	var req struct {
		Socials []content.Social `json:"socials"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	socials, err := s.contentSvc.SetSocials(c.Request().Context(), req.Socials)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "socials updated",
		"socials": socials,
	})
}

// Popup handlers
func (s *Server) getPopup(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"popup":   s.contentSvc.GetPopup(c.Request().Context()),
	})
}

func (s *Server) setPopup(c echo.Context) error {
	var req content.PopupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	popup, err := s.contentSvc.SetPopup(c.Request().Context(), req)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "popup updated",
		"popup":   popup,
	})
}

func (s *Server) deletePopup(c echo.Context) error {
	s.contentSvc.DeletePopup(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "popup deleted"})
}
