package dedupe

import (
	"fmt"

	"github.com/erraggy/rostertools/internal/options"
	"github.com/erraggy/rostertools/parser"
)

// Option is a function that configures a dedupe operation
type Option func(*dedupeConfig) error

// dedupeConfig holds configuration for a dedupe operation
type dedupeConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult
	records  []parser.Record

	// Configuration options
	keyField  string
	strategy  Strategy
	userAgent string
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*dedupeConfig, error) {
	cfg := &dedupeConfig{
		// Set defaults to match Deduper's zero-config behavior
		keyField: DefaultKeyField,
		strategy: StrategyKeepFirst,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one input source is specified
	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath, WithParsed, or WithRecords)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.parsed != nil, cfg.records != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *dedupeConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *dedupeConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithRecords specifies a record slice as the input source
func WithRecords(records []parser.Record) Option {
	return func(cfg *dedupeConfig) error {
		if records == nil {
			return fmt.Errorf("dedupe: records cannot be nil")
		}
		cfg.records = records
		return nil
	}
}

// WithKeyField sets the identifier column to deduplicate on
// Default: "EMP ID"
func WithKeyField(field string) Option {
	return func(cfg *dedupeConfig) error {
		if field == "" {
			return fmt.Errorf("dedupe: key field cannot be empty")
		}
		cfg.keyField = field
		return nil
	}
}

// WithStrategy sets the survivor-selection strategy
// Default: StrategyKeepFirst
func WithStrategy(strategy Strategy) Option {
	return func(cfg *dedupeConfig) error {
		if !IsValidStrategy(string(strategy)) {
			return fmt.Errorf("dedupe: invalid strategy %q (valid: %v)", string(strategy), ValidStrategies())
		}
		cfg.strategy = strategy
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "" (uses parser default)
func WithUserAgent(ua string) Option {
	return func(cfg *dedupeConfig) error {
		cfg.userAgent = ua
		return nil
	}
}
