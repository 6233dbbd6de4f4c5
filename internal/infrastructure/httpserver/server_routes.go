package httpserver

import (
	"os"
	"path/filepath"
)

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api")
	api.GET("/events", s.listEvents)
	api.GET("/events/:id", s.getEvent)
	api.GET("/cache/info", s.cacheInfo)
	api.DELETE("/cache", s.clearCache)

	api.GET("/banners", s.getBanners)
	api.GET("/video", s.getVideo)
	api.GET("/socials", s.getSocials)
	api.GET("/popup", s.getPopup)

	admin := api.Group("/admin")
	admin.POST("/login", s.login, s.middleware.RateLimit.Handler())

	protected := admin.Group("")
	protected.Use(s.middleware.Admin.RequireSession())

	protected.POST("/logout", s.logout)
	protected.GET("/check", s.checkSession)
	protected.GET("/sessions", s.listSessions)
	protected.DELETE("/sessions/:sessionId", s.terminateSession)
	protected.POST("/sessions/cleanup", s.cleanupSessions)
	protected.POST("/cache/permissions", s.probeCachePermissions)

	protected.GET("/banners", s.getBanners)
	protected.POST("/banners/:type", s.addBanner)
	protected.PUT("/banners/:type/:id", s.updateBanner)
	protected.DELETE("/banners/:type/:id", s.deleteBanner)

	protected.GET("/video", s.getVideo)
	protected.POST("/video", s.setVideo)
	protected.DELETE("/video", s.deleteVideo)

	protected.GET("/socials", s.getSocials)
	protected.POST("/socials", s.setSocials)

	protected.GET("/popup", s.getPopup)
	protected.POST("/popup", s.setPopup)
	protected.DELETE("/popup", s.deletePopup)

	s.setupStatic()
}

func (s *Server) setupStatic() {
	dir := s.config.PublicDir
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		if s.logger != nil {
			s.logger.WithField("public_dir", dir).Info("public directory not found; static pages disabled")
		}
		return
	}
	// Static serves index.html for "/".
	s.echo.Static("/", dir)
	s.echo.File("/admin", filepath.Join(dir, "admin.html"))
}
