package converter

import (
	"fmt"

	"github.com/erraggy/rostertools/internal/options"
	"github.com/erraggy/rostertools/parser"
)

// Option is a function that configures a convert operation
type Option func(*convertConfig) error

// convertConfig holds configuration for a convert operation
type convertConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	// Configuration options
	format    parser.SourceFormat
	indent    string
	userAgent string
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*convertConfig, error) {
	cfg := &convertConfig{
		// Set defaults to match Converter's zero-config behavior
		format: parser.SourceFormatJSON,
		indent: defaultIndent,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one input source is specified
	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath or WithParsed)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *convertConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *convertConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithTargetFormat sets the encoding the roster is converted to
// Default: parser.SourceFormatJSON
func WithTargetFormat(format parser.SourceFormat) Option {
	return func(cfg *convertConfig) error {
		if !parser.IsValidFormat(string(format)) {
			return fmt.Errorf("converter: invalid target format %q (valid: %v)", string(format), parser.ValidFormats())
		}
		cfg.format = format
		return nil
	}
}

// WithIndent sets the JSON indentation string
// Default: two spaces
func WithIndent(indent string) Option {
	return func(cfg *convertConfig) error {
		cfg.indent = indent
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "" (uses parser default)
func WithUserAgent(ua string) Option {
	return func(cfg *convertConfig) error {
		cfg.userAgent = ua
		return nil
	}
}
