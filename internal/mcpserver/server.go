// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes rostertools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/rostertools"
)

const serverInstructions = `rostertools MCP server — checks rosters for duplicate identifiers, profiles fields, inspects parse results, and previews deduplication.

Configuration: All defaults are configurable via ROSTERTOOLS_MCP_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- ROSTERTOOLS_MCP_CACHE_FILE_TTL (default: 15m) — cache TTL for local roster files
- ROSTERTOOLS_MCP_CACHE_URL_TTL (default: 5m) — cache TTL for URL-fetched rosters
- ROSTERTOOLS_MCP_CACHE_ENABLED (default: true) — disable roster caching entirely
- ROSTERTOOLS_MCP_LIST_LIMIT (default: 100) — default result limit for list output
- ROSTERTOOLS_MCP_MAX_INLINE_SIZE (default: 1048576) — maximum inline content bytes
- ROSTERTOOLS_MCP_ALLOW_URLS (default: false) — allow url inputs (fetches stay off private IPs)
- ROSTERTOOLS_MCP_KEY_FIELD (default: "EMP ID") — default identifier column

Caching: Parsed rosters are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		rosterCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "rostertools", Version: rostertools.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_duplicates",
		Description: "Check a roster for duplicate identifier values. Groups records on the key field (default \"EMP ID\"), counts occurrences, and returns the values appearing more than once, ordered by count descending. Use min_count to change the duplicate threshold and include_rows to get the 1-based record indexes per duplicate. Use offset/limit to paginate through large duplicate lists.",
	}, handleCheckDuplicates)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "profile_fields",
		Description: "Profile the fields of a roster. Returns per-column statistics: present/missing counts, distinct values, the highest single-value occurrence count, a type classification, timestamp detection, and sample values. Columns are ordered by value concentration so duplicated identifier columns surface first. Use offset/limit to paginate.",
	}, handleProfileFields)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect_roster",
		Description: "Parse a roster and return a structural summary: detected format, source size, record and field counts, the column names in first-seen order, and any parse warnings. Use this before check_duplicates to confirm the roster loaded the way you expect.",
	}, handleInspectRoster)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview_dedupe",
		Description: "Preview deduplication of a roster without writing anything. Strategies: keep-first (default), keep-last, fail. Returns kept/removed counts and the removed rows (value + 1-based index). Use offset/limit to paginate through removed rows.",
	}, handlePreviewDedupe)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
