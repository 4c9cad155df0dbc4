package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend names.
const (
	BackendRedis = "redis"
	BackendFile  = "file"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// DevMode relaxes the admin guard when no credentials are configured
	// and defaults storage to the local file backend.
	DevMode bool

	// Admin credentials. When both are empty, admin endpoints are open in
	// dev mode and denied otherwise.
	AdminUsername string
	AdminPassword string

	ContentDir     string        // directory of markdown posts
	ReloadInterval time.Duration // catalog reload interval

	Storage  string // "redis" | "file"; empty = detect from BLOG_REDIS_ADDR
	DataFile string // local JSON store path (file backend)

	// Redis
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDialTimeout    time.Duration
	RedisReadTimeout    time.Duration
	RedisWriteTimeout   time.Duration
	RedisPoolSize       int
	RedisConnectTimeout time.Duration
	RedisRetryInterval  time.Duration
	RedisMaxWait        time.Duration
	RedisPingTimeout    time.Duration

	// Rate limiting for the analytics endpoints.
	RateLimitMax    int
	RateLimitWindow time.Duration

	TrustProxy  bool     // true => trust X-Forwarded-For / X-Real-IP headers
	CORSOrigins []string // allowed origins for the browser extension; empty = any
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present (never overrides real env vars).
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ListenPort:      getenv("BLOG_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("BLOG_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("BLOG_LOG_LEVEL", "info"),
		PrettyLog: mustBool("BLOG_PRETTY_LOG", false),

		DevMode: mustBool("BLOG_DEV_MODE", false),

		AdminUsername: getenv("BLOG_ADMIN_USERNAME", ""),
		AdminPassword: getenv("BLOG_ADMIN_PASSWORD", ""),

		ContentDir:     getenv("BLOG_CONTENT_DIR", "./content/posts"),
		ReloadInterval: mustDuration("BLOG_RELOAD_INTERVAL", time.Hour),

		Storage:  getenv("BLOG_STORAGE", ""),
		DataFile: getenv("BLOG_DATA_FILE", "./data/store.json"),

		RedisAddr:           getenv("BLOG_REDIS_ADDR", ""),
		RedisUser:           getenv("BLOG_REDIS_USERNAME", ""),
		RedisPassword:       getenv("BLOG_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("BLOG_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),

		RateLimitMax:    getenvInt("BLOG_RATE_LIMIT_MAX", 30),
		RateLimitWindow: mustDuration("BLOG_RATE_LIMIT_WINDOW", time.Minute),

		TrustProxy:  mustBool("BLOG_TRUST_PROXY", true),
		CORSOrigins: splitAndTrim(getenv("BLOG_CORS_ORIGINS", "")),
	}

	if cfg.Storage != "" && cfg.Storage != BackendRedis && cfg.Storage != BackendFile {
		panic(fmt.Sprintf("invalid BLOG_STORAGE %q (want %q or %q)",
			cfg.Storage, BackendRedis, BackendFile))
	}
	if cfg.Storage == BackendRedis && cfg.RedisAddr == "" {
		panic("BLOG_REDIS_ADDR is required when BLOG_STORAGE=redis")
	}

	return cfg
}

// Backend resolves the storage backend: explicit setting first, otherwise
// Redis when an address is configured, the local file store otherwise.
func (c *Config) Backend() string {
	if c.Storage != "" {
		return c.Storage
	}
	if c.RedisAddr != "" {
		return BackendRedis
	}
	return BackendFile
}

// HasAdminCredentials reports whether a credential pair is configured.
func (c *Config) HasAdminCredentials() bool {
	return c.AdminUsername != "" || c.AdminPassword != ""
}

// helpers

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
