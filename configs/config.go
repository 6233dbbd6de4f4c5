package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Upstash  UpstashConfig
	Upstream UpstreamConfig
	Admin    AdminConfig
	Schedule ScheduleConfig
	Log      LogConfig
}

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
	PublicDir      string
}

// Cache backends selectable with CACHE_BACKEND.
const (
	BackendAuto    = "auto"
	BackendRedis   = "redis"
	BackendUpstash = "upstash"
	BackendLocal   = "local"
)

type CacheConfig struct {
	Backend       string
	EventTTL      time.Duration
	SessionTTL    time.Duration
	WellKnownKeys []string
	KeyPrefix     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

type UpstashConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// UpstreamConfig configures the esports GraphQL schedule API.
type UpstreamConfig struct {
	BaseURL       string
	OperationName string
	QueryHash     string
	Locale        string
	Sport         string
	Leagues       []string
	PageSize      int
	Retries       int
	RetryWait     time.Duration
	RetryMaxWait  time.Duration
	Timeout       time.Duration
}

type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string // bcrypt; takes precedence over Password
	LoginRate    float64
	LoginBurst   int
}

type ScheduleConfig struct {
	TimeZone   string
	ExtendDays int
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("PORT", getEnv("SERVER_PORT", "3000")),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:    getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
			AllowedOrigins: getListEnv("ALLOWED_ORIGINS", []string{"*"}),
			Environment:    getEnv("ENVIRONMENT", "development"),
			PublicDir:      getEnv("PUBLIC_DIR", "public"),
		},
		Cache: CacheConfig{
			Backend:       strings.ToLower(getEnv("CACHE_BACKEND", BackendAuto)),
			EventTTL:      getDurationEnv("CACHE_EVENT_TTL", 5*time.Minute),
			SessionTTL:    getDurationEnv("SESSION_TTL", 24*time.Hour),
			WellKnownKeys: getListEnv("CACHE_WELL_KNOWN_KEYS", []string{"events:all", "leagues:all", "stats:all"}),
			KeyPrefix:     getEnv("CACHE_KEY_PREFIX", ""),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", ""),
			Port:         getEnv("REDIS_PORT", "6379"),
			Username:     getEnv("REDIS_USERNAME", ""),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		Upstash: UpstashConfig{
			URL:     getEnv("UPSTASH_REDIS_REST_URL", ""),
			Token:   getEnv("UPSTASH_REDIS_REST_TOKEN", ""),
			Timeout: getDurationEnv("UPSTASH_TIMEOUT", 5*time.Second),
		},
		Upstream: UpstreamConfig{
			BaseURL:       getEnv("UPSTREAM_BASE_URL", "https://lolesports.com/api/gql"),
			OperationName: getEnv("UPSTREAM_OPERATION", "homeEvents"),
			QueryHash:     getEnv("UPSTREAM_QUERY_HASH", "7246add6f577cf30b304e651bf9e25fc6a41fe49aeafb0754c16b5778060fc0a"),
			Locale:        getEnv("UPSTREAM_LOCALE", "vi-VN"),
			Sport:         getEnv("UPSTREAM_SPORT", "lol"),
			Leagues:       getListEnv("UPSTREAM_LEAGUES", []string{"98767991310872058", "98767991314006698"}),
			PageSize:      getIntEnv("UPSTREAM_PAGE_SIZE", 300),
			Retries:       getIntEnv("UPSTREAM_RETRIES", 3),
			RetryWait:     getDurationEnv("UPSTREAM_RETRY_WAIT", 1500*time.Millisecond),
			RetryMaxWait:  getDurationEnv("UPSTREAM_RETRY_MAX_WAIT", 10*time.Second),
			Timeout:       getDurationEnv("UPSTREAM_TIMEOUT", 30*time.Second),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			Password:     getEnv("ADMIN_PASSWORD", "admin123"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			LoginRate:    getFloatEnv("ADMIN_LOGIN_RATE", 0.2),
			LoginBurst:   getIntEnv("ADMIN_LOGIN_BURST", 5),
		},
		Schedule: ScheduleConfig{
			TimeZone:   getEnv("SCHEDULE_TIMEZONE", "Asia/Ho_Chi_Minh"),
			ExtendDays: getIntEnv("SCHEDULE_EXTEND_DAYS", 3),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case BackendAuto, BackendRedis, BackendUpstash, BackendLocal:
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendUpstash && (c.Upstash.URL == "" || c.Upstash.Token == "") {
		return fmt.Errorf("CACHE_BACKEND=upstash requires UPSTASH_REDIS_REST_URL and UPSTASH_REDIS_REST_TOKEN")
	}
	if c.Cache.Backend == BackendRedis && c.Redis.Host == "" {
		return fmt.Errorf("CACHE_BACKEND=redis requires REDIS_HOST")
	}
	if c.Cache.EventTTL <= 0 || c.Cache.SessionTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	return nil
}

// ResolveBackend picks the concrete backend for CACHE_BACKEND=auto: Upstash
// when its credentials are set, then Redis when REDIS_HOST is set, else local.
func (c *Config) ResolveBackend() string {
	if c.Cache.Backend != BackendAuto {
		return c.Cache.Backend
	}
	switch {
	case c.Upstash.URL != "" && c.Upstash.Token != "":
		return BackendUpstash
	case c.Redis.Host != "":
		return BackendRedis
	default:
		return BackendLocal
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated value, dropping empty items.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
