package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/rostertools/checker"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// List pagination defaults.
	ListLimit int
	MaxLimit  int

	// Input settings.
	MaxInlineSize int64
	AllowURLs     bool

	// Check tool defaults.
	KeyField string
	MinCount int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from ROSTERTOOLS_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("ROSTERTOOLS_MCP_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("ROSTERTOOLS_MCP_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("ROSTERTOOLS_MCP_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("ROSTERTOOLS_MCP_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("ROSTERTOOLS_MCP_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("ROSTERTOOLS_MCP_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ListLimit:          envInt("ROSTERTOOLS_MCP_LIST_LIMIT", 100),
		MaxLimit:           envInt("ROSTERTOOLS_MCP_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("ROSTERTOOLS_MCP_MAX_INLINE_SIZE", 1<<20)),
		AllowURLs:          envBool("ROSTERTOOLS_MCP_ALLOW_URLS", false),
		KeyField:           envString("ROSTERTOOLS_MCP_KEY_FIELD", checker.DefaultKeyField),
		MinCount:           envInt("ROSTERTOOLS_MCP_MIN_COUNT", 2),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
