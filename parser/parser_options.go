package parser

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/erraggy/rostertools"
	"github.com/erraggy/rostertools/internal/options"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte
	stdin    bool

	// Configuration options
	validateStructure bool
	format            SourceFormat
	userAgent         string
	httpClient        *http.Client
	logger            Logger

	// Resource limits (0 means use default)
	maxInputSize int64
	maxRecords   int

	// Source identification
	sourceName *string // Override SourcePath in the result
}

// ParseWithOptions parses a roster using functional options.
// This provides a flexible, extensible API that combines input source selection
// and configuration in a single function call.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("membercsvjson.json"),
//	    parser.WithMaxRecords(100000),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		ValidateStructure: cfg.validateStructure,
		Format:            cfg.format,
		UserAgent:         cfg.userAgent,
		HTTPClient:        cfg.httpClient,
		Logger:            cfg.logger,
		MaxInputSize:      cfg.maxInputSize,
		MaxRecords:        cfg.maxRecords,
	}

	// Route to appropriate parsing method based on input source
	var result *ParseResult
	var parseErr error
	switch {
	case cfg.filePath != nil:
		result, parseErr = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		result, parseErr = p.ParseReader(cfg.reader)
	case cfg.bytes != nil:
		result, parseErr = p.ParseBytes(cfg.bytes)
	case cfg.stdin:
		result, parseErr = p.ParseReader(os.Stdin)
		if result != nil {
			result.SourcePath = "stdin"
		}
	default:
		// Should never reach here due to validation in applyOptions
		return nil, fmt.Errorf("parser: no input source specified")
	}

	if parseErr != nil {
		return result, parseErr
	}

	// Apply source name override if specified
	if result != nil && cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}

	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		// Set defaults to match Parser's zero-config behavior
		validateStructure: true,
		format:            SourceFormatUnknown,
		userAgent:         rostertools.UserAgent(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one input source is specified
	if err := options.ValidateSingleInputSource(
		"parser: must specify an input source (use WithFilePath, WithReader, WithBytes, or WithStdin)",
		"parser: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil, cfg.stdin,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithStdin specifies standard input as the input source.
// The result's SourcePath is set to "stdin".
func WithStdin() Option {
	return func(cfg *parseConfig) error {
		cfg.stdin = true
		return nil
	}
}

// WithFormat forces the input format instead of detecting it from the path
// or content. Required for CSV arriving via reader, bytes, or stdin.
func WithFormat(format SourceFormat) Option {
	return func(cfg *parseConfig) error {
		switch format {
		case SourceFormatJSON, SourceFormatNDJSON, SourceFormatCSV, SourceFormatYAML:
			cfg.format = format
			return nil
		default:
			return fmt.Errorf("parser: unsupported format %q", string(format))
		}
	}
}

// WithValidateStructure enables or disables basic structure validation
// (root must be a collection, every element a mapping).
// Default: true
func WithValidateStructure(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.validateStructure = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "rostertools/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *parseConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for fetching URLs.
// When set, the client is used as-is for all HTTP requests.
//
// If the client is nil, this option has no effect (default client is used).
//
// Example with custom timeout:
//
//	client := &http.Client{Timeout: 60 * time.Second}
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("https://example.com/roster.json"),
//	    parser.WithHTTPClient(client),
//	)
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *parseConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithLogger sets a structured logger for debug output during parsing.
// By default, no logging is performed (nil logger).
//
// The logger interface is compatible with log/slog, zap, and zerolog.
// Use NewSlogAdapter to wrap a *slog.Logger.
//
// Example:
//
//	logger := parser.NewSlogAdapter(slog.Default())
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("roster.json"),
//	    parser.WithLogger(logger),
//	)
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxInputSize sets the maximum input size in bytes.
// This prevents resource exhaustion from loading arbitrarily large files.
// A value of 0 means use the default (25 MiB).
// Returns an error if size is negative.
func WithMaxInputSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size < 0 {
			return fmt.Errorf("parser: maxInputSize cannot be negative")
		}
		cfg.maxInputSize = size
		return nil
	}
}

// WithMaxRecords sets the maximum number of records accepted.
// A value of 0 means unlimited.
// Returns an error if count is negative.
func WithMaxRecords(count int) Option {
	return func(cfg *parseConfig) error {
		if count < 0 {
			return fmt.Errorf("parser: maxRecords cannot be negative")
		}
		cfg.maxRecords = count
		return nil
	}
}

// WithSourceName specifies a meaningful name for the source roster.
// This is particularly useful when parsing from bytes or reader, where
// the default names ("ParseBytes.json", "ParseReader.json") are not
// descriptive. The name is used in reports and diagnostic output.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithBytes(data),
//	    parser.WithSourceName("payroll-export"),
//	)
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		if name == "" {
			return fmt.Errorf("parser: source name cannot be empty")
		}
		cfg.sourceName = &name
		return nil
	}
}
