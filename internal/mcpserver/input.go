package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/rostertools/parser"
)

// rosterInput represents the three ways a roster can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type rosterInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a roster file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a roster from (requires ROSTERTOOLS_MCP_ALLOW_URLS=true)"`
	Content string `json:"content,omitempty" jsonschema:"Inline roster content (JSON, NDJSON, CSV, or YAML)"`
	Format  string `json:"format,omitempty"  jsonschema:"Force the input format (json, ndjson, csv, yaml) instead of detecting it. Required for inline CSV."`
}

// cacheEntry holds a cached parse result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *parser.ParseResult
	insertAt  time.Time
	expiresAt time.Time
}

// rosterCacheStore provides a session-scoped cache for parsed rosters.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. URL inputs are keyed by URL string.
// Entries have per-type TTLs and a background sweeper removes expired entries.
type rosterCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var rosterCache = &rosterCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *rosterCacheStore) get(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.result
	}
	return nil
}

// putWithTTL stores a result with a specific TTL, evicting the oldest entry if at capacity.
func (c *rosterCacheStore) putWithTTL(key string, result *parser.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, insertAt: now, expiresAt: now.Add(ttl)}

	// If already cached, just update.
	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	// Evict oldest if at capacity.
	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *rosterCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *rosterCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	var sweeping atomic.Bool
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !sweeping.CompareAndSwap(false, true) {
					continue
				}
				c.sweep()
				sweeping.Store(false)
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *rosterCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *rosterCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given roster input.
func makeCacheKey(in rosterInput) string {
	switch {
	case in.File != "":
		absPath, err := filepath.Abs(in.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%s:%d", in.Format, absPath, info.ModTime().UnixNano())
	case in.Content != "":
		h := sha256.Sum256([]byte(in.Content))
		return fmt.Sprintf("content:%s:%s", in.Format, hex.EncodeToString(h[:]))
	case in.URL != "":
		return fmt.Sprintf("url:%s:%s", in.Format, in.URL)
	default:
		return ""
	}
}

// resolve parses the roster from whichever input was provided, using the
// session cache for file, URL, and content inputs.
func (in rosterInput) resolve() (*parser.ParseResult, error) {
	count := 0
	if in.File != "" {
		count++
	}
	if in.URL != "" {
		count++
	}
	if in.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	if in.URL != "" && !cfg.AllowURLs {
		return nil, fmt.Errorf("url inputs are disabled; set ROSTERTOOLS_MCP_ALLOW_URLS=true to enable")
	}

	if in.Format != "" && !parser.IsValidFormat(in.Format) {
		return nil, fmt.Errorf("unsupported format %q (valid: %v)", in.Format, parser.ValidFormats())
	}

	// Enforce inline content size limit.
	if in.Content != "" && int64(len(in.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set ROSTERTOOLS_MCP_MAX_INLINE_SIZE to increase",
			len(in.Content), cfg.MaxInlineSize)
	}

	// Determine cache key and TTL (skip when caching is disabled).
	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(in)
		switch {
		case in.File != "":
			ttl = cfg.CacheFileTTL
		case in.URL != "":
			ttl = cfg.CacheURLTTL
		default:
			ttl = cfg.CacheContentTTL
		}
	}

	if key != "" {
		if cached := rosterCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var opts []parser.Option
	switch {
	case in.File != "":
		opts = append(opts, parser.WithFilePath(in.File))
	case in.URL != "":
		// SSRF-safe HTTP client keeps agent-provided URLs off private IPs.
		opts = append(opts, parser.WithFilePath(in.URL), parser.WithHTTPClient(newSafeHTTPClient()))
	case in.Content != "":
		opts = append(opts, parser.WithReader(strings.NewReader(in.Content)))
	}
	if in.Format != "" {
		opts = append(opts, parser.WithFormat(parser.SourceFormat(in.Format)))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}

	// Cache the result for future calls (key is empty when caching is disabled).
	if key != "" {
		rosterCache.putWithTTL(key, result, ttl)
	}

	return result, nil
}
