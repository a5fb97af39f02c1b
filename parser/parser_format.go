package parser

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/rostertools"
)

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	// Handle negative values
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	// Use proper binary unit notation (KiB, MiB, GiB, etc.)
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// ValidFormats returns the list of valid roster format names.
func ValidFormats() []string {
	return []string{
		string(SourceFormatJSON),
		string(SourceFormatNDJSON),
		string(SourceFormatCSV),
		string(SourceFormatYAML),
	}
}

// IsValidFormat returns true if the given string is a valid format name.
func IsValidFormat(s string) bool {
	switch SourceFormat(s) {
	case SourceFormatJSON, SourceFormatNDJSON, SourceFormatCSV, SourceFormatYAML:
		return true
	default:
		return false
	}
}

// formatExtension returns the file extension for a source format, used when
// synthesizing SourcePath names for reader and byte inputs.
func formatExtension(format SourceFormat) string {
	switch format {
	case SourceFormatJSON:
		return "json"
	case SourceFormatNDJSON:
		return "ndjson"
	case SourceFormatCSV:
		return "csv"
	case SourceFormatYAML:
		return "yaml"
	default:
		return "dat"
	}
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return SourceFormatJSON
	case ".ndjson", ".jsonl":
		return SourceFormatNDJSON
	case ".csv":
		return SourceFormatCSV
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes.
// A leading '[' or '{' is JSON; the '{' case is NDJSON only when the content
// is a stream of object lines (two or more non-blank lines, each starting
// with '{'), so a lone object still hits the array-root validation. CSV
// cannot be reliably sniffed and is never returned here; set Parser.Format
// or use a .csv path. Anything else is assumed to be YAML.
func detectFormatFromContent(data []byte) SourceFormat {
	// Trim leading whitespace
	trimmed := bytes.TrimLeft(data, " \t\n\r")

	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}

	switch trimmed[0] {
	case '[':
		return SourceFormatJSON
	case '{':
		if looksLikeNDJSON(trimmed) {
			return SourceFormatNDJSON
		}
		return SourceFormatJSON
	}

	return SourceFormatYAML
}

// looksLikeNDJSON reports whether data is a stream of JSON object lines.
// A pretty-printed single object fails the per-line '{' check on its second
// line, so it is decoded as JSON instead.
func looksLikeNDJSON(data []byte) bool {
	objectLines := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if line[0] != '{' {
			return false
		}
		objectLines++
	}
	return objectLines > 1
}

// isURL determines if the given path is a URL (http:// or https://)
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// fetchURL fetches content from a URL and returns the bytes and Content-Type header
func (p *Parser) fetchURL(urlStr string) ([]byte, string, error) {
	// Use custom client if provided, otherwise create default with timeout
	client := p.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to create request: %w", err)
	}

	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = rostertools.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("parser: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, p.maxInputSize()+1))
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to read response body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	return data, contentType, nil
}

// detectFormatFromURL attempts to detect the format from a URL path and Content-Type header
func detectFormatFromURL(urlStr string, contentType string) SourceFormat {
	// First try to detect from URL path extension
	parsedURL, err := url.Parse(urlStr)
	if err == nil && parsedURL.Path != "" {
		format := detectFormatFromPath(parsedURL.Path)
		if format != SourceFormatUnknown {
			return format
		}
	}

	// Try to detect from Content-Type header
	if contentType != "" {
		contentType = strings.ToLower(contentType)
		// Remove charset and other parameters
		if idx := strings.Index(contentType, ";"); idx != -1 {
			contentType = contentType[:idx]
		}
		contentType = strings.TrimSpace(contentType)

		switch contentType {
		case "application/json":
			return SourceFormatJSON
		case "application/x-ndjson", "application/jsonl":
			return SourceFormatNDJSON
		case "text/csv":
			return SourceFormatCSV
		case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
			return SourceFormatYAML
		}
	}

	return SourceFormatUnknown
}
