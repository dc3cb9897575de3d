package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Crawler   CrawlerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Store     StoreConfig
	Cache     CacheConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instances.
type BrowserConfig struct {
	// Headless controls whether the browsers run headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// DefaultProxy is the proxy URL applied to every instance.
	DefaultProxy string
}

// CrawlerConfig controls the pagination crawl behavior. The wait bounds are
// policy, not incidental: every wait in the crawl loop is bounded so a stuck
// page can never block sibling URLs.
type CrawlerConfig struct {
	// Concurrency is the default number of browser instances per batch.
	Concurrency int // default: 3

	// NavTimeout bounds navigation plus the initial settle wait.
	NavTimeout time.Duration // default: 30s

	// TableWait bounds the wait for the transaction table root marker.
	TableWait time.Duration // default: 10s

	// RowWait bounds the per-page wait for row elements.
	RowWait time.Duration // default: 5s

	// IdleWait bounds the post-click network-idle wait. The site's idle
	// signal is unreliable after client-side page changes, so this wait is
	// allowed to expire without aborting the loop.
	IdleWait time.Duration // default: 3s

	// SettleAfterClick is the fixed pause after clicking the next control.
	SettleAfterClick time.Duration // default: 3s

	// ExpandPause is the pause after expanding collapsed rows.
	ExpandPause time.Duration // default: 800ms

	// FilterPause is the pause after clearing active table filters.
	FilterPause time.Duration // default: 1s
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// StoreConfig controls persistence of finished batch results.
type StoreConfig struct {
	// Dir is the directory batch artifacts are written to.
	Dir string // default: "results"
}

// CacheConfig controls the in-memory cache in front of the result store.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached batch artifacts.
	MaxEntries int // default: 100
}

// WebhookConfig controls the optional batch-completion webhook.
type WebhookConfig struct {
	// URL receives a POST when a batch finishes. Empty disables delivery.
	URL string

	// Secret signs the payload with HMAC-SHA256 when non-empty.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("PROPLENS_HOST", "0.0.0.0"),
			Port: envIntOr("PROPLENS_PORT", 8080),
			Mode: envOr("PROPLENS_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("PROPLENS_HEADLESS", true),
			NoSandbox:    envBoolOr("PROPLENS_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("PROPLENS_BROWSER_BIN"),
			DefaultProxy: os.Getenv("PROPLENS_PROXY"),
		},
		Crawler: CrawlerConfig{
			Concurrency:      envIntOr("PROPLENS_CONCURRENCY", 3),
			NavTimeout:       envDurationOr("PROPLENS_NAV_TIMEOUT", 30*time.Second),
			TableWait:        envDurationOr("PROPLENS_TABLE_WAIT", 10*time.Second),
			RowWait:          envDurationOr("PROPLENS_ROW_WAIT", 5*time.Second),
			IdleWait:         envDurationOr("PROPLENS_IDLE_WAIT", 3*time.Second),
			SettleAfterClick: envDurationOr("PROPLENS_SETTLE_WAIT", 3*time.Second),
			ExpandPause:      envDurationOr("PROPLENS_EXPAND_PAUSE", 800*time.Millisecond),
			FilterPause:      envDurationOr("PROPLENS_FILTER_PAUSE", time.Second),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PROPLENS_AUTH_ENABLED", false),
			APIKeys: envSliceOr("PROPLENS_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PROPLENS_RATE_RPS", 5.0),
			Burst:             envIntOr("PROPLENS_RATE_BURST", 10),
		},
		Store: StoreConfig{
			Dir: envOr("PROPLENS_RESULTS_DIR", "results"),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("PROPLENS_CACHE_MAX_ENTRIES", 100),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("PROPLENS_WEBHOOK_URL"),
			Secret: os.Getenv("PROPLENS_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("PROPLENS_LOG_LEVEL", "info"),
			Format: envOr("PROPLENS_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
