package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/Nguyenkim2108/league-scheude/configs"
	"github.com/Nguyenkim2108/league-scheude/internal/application/services"
	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/cache"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/health"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/httpserver"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/lolesports"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/redis"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/upstash"
	"github.com/Nguyenkim2108/league-scheude/internal/utils"
)

func main() {
	// "server hash-password <password>" prints a value for ADMIN_PASSWORD_HASH
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := utils.HashPassword(os.Args[2])
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}
		fmt.Println(hash)
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting league schedule server...")

	// Cache: remote backend when configured, always backed by local memory
	remote := newRemoteStore(cfg, logger)
	store := cache.NewStore(remote, logger,
		cache.WithWellKnownKeys(cfg.Cache.WellKnownKeys...),
		cache.WithMetrics(httpserver.GetCacheOperations()),
	)
	initCtx, initCancel := context.WithTimeout(context.Background(), 15*time.Second)
	store.Init(initCtx)
	initCancel()
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Warn("failed to close cache backend")
		}
	}()

	fetcher := lolesports.NewClient(lolesports.Config{
		BaseURL:       cfg.Upstream.BaseURL,
		OperationName: cfg.Upstream.OperationName,
		QueryHash:     cfg.Upstream.QueryHash,
		Locale:        cfg.Upstream.Locale,
		Sport:         cfg.Upstream.Sport,
		Leagues:       cfg.Upstream.Leagues,
		PageSize:      cfg.Upstream.PageSize,
		Retries:       cfg.Upstream.Retries,
		RetryWait:     cfg.Upstream.RetryWait,
		RetryMaxWait:  cfg.Upstream.RetryMaxWait,
		Timeout:       cfg.Upstream.Timeout,
	}, logger)

	// Wire services
	ranges := services.NewRangeEventCache(store, cfg.Cache.EventTTL, logger).
		WithRefreshMetrics(httpserver.GetEventRefreshes()).
		WithRefreshTimeout(cfg.Upstream.Timeout * time.Duration(cfg.Upstream.Retries+1))
	eventService := services.NewEventService(ranges, fetcher, store, &cfg.Schedule, logger)
	contentService := services.NewContentService(store, logger)
	sessionStore := services.NewSessionStore(store, cfg.Cache.SessionTTL, logger)
	authService := services.NewAuthService(sessionStore, &cfg.Admin, logger)

	var hcSlice []ports.HealthChecker
	if hc := health.NewRemoteCacheHealthChecker(remote); hc != nil {
		hcSlice = append(hcSlice, hc)
	}

	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Environment:    cfg.Server.Environment,
		PublicDir:      cfg.Server.PublicDir,
	}

	deps := httpserver.ServerDeps{
		EventService:   eventService,
		ContentService: contentService,
		AuthService:    authService,
		HealthCheckers: hcSlice,
		LoginRate:      cfg.Admin.LoginRate,
		LoginBurst:     cfg.Admin.LoginBurst,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Warm the default range without delaying startup
	warmCtx, warmCancel := context.WithTimeout(context.Background(), cfg.Upstream.Timeout*time.Duration(cfg.Upstream.Retries+1))
	go func() {
		defer warmCancel()
		if err := eventService.Warm(warmCtx); err != nil {
			logger.WithError(err).Warn("failed to warm event cache")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	warmCancel()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

// newRemoteStore builds the configured remote cache backend. A backend that
// cannot be reached at startup is logged and replaced by local-only caching.
func newRemoteStore(cfg *config.Config, logger *logrus.Logger) ports.RemoteStore {
	backend := cfg.ResolveBackend()
	entry := logger.WithField("backend", backend)

	switch backend {
	case config.BackendUpstash:
		client, err := upstash.NewClient(upstash.Config{
			URL:     cfg.Upstash.URL,
			Token:   cfg.Upstash.Token,
			Timeout: cfg.Upstash.Timeout,
		})
		if err != nil {
			entry.WithError(err).Warn("Upstash not configured; using local memory cache")
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Upstash.Timeout)
		defer cancel()
		if err := client.Ping(ctx); err != nil {
			// PING may be denied by ACL while data commands still work.
			entry.WithError(err).Warn("Upstash ping failed; permission test will decide fallbacks")
		}
		entry.Info("Using Upstash REST cache")
		return client

	case config.BackendRedis:
		client, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			entry.WithError(err).Warn("Failed to connect to Redis; using local memory cache")
			return nil
		}
		entry.Info("Connected to Redis successfully")
		return redis.NewRemoteStore(client, cfg.Cache.KeyPrefix)
	}

	entry.Info("No remote cache configured; using local memory cache")
	return nil
}
