package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
	customMiddleware "github.com/Nguyenkim2108/league-scheude/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
	// PublicDir holds the front-end pages; skipped when missing.
	PublicDir string
}

type ServerDeps struct {
	EventService   ports.EventService
	ContentService ports.ContentService
	AuthService    ports.AuthService
	HealthCheckers []ports.HealthChecker
	LoginRate      float64
	LoginBurst     int
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	eventSvc       ports.EventService
	contentSvc     ports.ContentService
	authSvc        ports.AuthService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		eventSvc:       deps.EventService,
		contentSvc:     deps.ContentService,
		authSvc:        deps.AuthService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.AuthService,
			logger,
			deps.LoginRate,
			deps.LoginBurst,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
