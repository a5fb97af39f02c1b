package checker

import (
	"fmt"

	"github.com/erraggy/rostertools/internal/options"
	"github.com/erraggy/rostertools/parser"
)

// Option is a function that configures a check operation
type Option func(*checkConfig) error

// checkConfig holds configuration for a check operation
type checkConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult
	records  []parser.Record

	// Configuration options
	keyField          string
	minCount          int
	missingKeyPolicy  MissingKeyPolicy
	includeRows       bool
	validateStructure bool
	userAgent         string
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*checkConfig, error) {
	cfg := &checkConfig{
		// Set defaults to match Checker's zero-config behavior
		keyField:          DefaultKeyField,
		minCount:          defaultMinCount,
		missingKeyPolicy:  MissingKeyReport,
		validateStructure: true,
		userAgent:         "",
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
	return func(cfg *checkConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *checkConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithRecords specifies a record slice as the input source
func WithRecords(records []parser.Record) Option {
	return func(cfg *checkConfig) error {
		if records == nil {
			return fmt.Errorf("checker: records cannot be nil")
		}
		cfg.records = records
		return nil
	}
}

// WithKeyField sets the identifier column to group on
// Default: "EMP ID"
func WithKeyField(field string) Option {
	return func(cfg *checkConfig) error {
		if field == "" {
			return fmt.Errorf("checker: key field cannot be empty")
		}
		cfg.keyField = field
		return nil
	}
}

// WithMinCount sets the duplicate threshold: values with at least this many
// records are reported.
// Default: 2
func WithMinCount(n int) Option {
	return func(cfg *checkConfig) error {
		if n < 1 {
			return fmt.Errorf("checker: minCount must be at least 1")
		}
		cfg.minCount = n
		return nil
	}
}

// WithMissingKeyPolicy sets the handling of records without a key value
// Default: MissingKeyReport
func WithMissingKeyPolicy(policy MissingKeyPolicy) Option {
	return func(cfg *checkConfig) error {
		if !IsValidMissingKeyPolicy(string(policy)) {
			return fmt.Errorf("checker: invalid missing-key policy %q (valid: %v)", string(policy), ValidMissingKeyPolicies())
		}
		cfg.missingKeyPolicy = policy
		return nil
	}
}

// WithIncludeRows enables collection of the 1-based record indexes for each
// duplicate. Costs extra memory on large rosters.
// Default: false
func WithIncludeRows(enabled bool) Option {
	return func(cfg *checkConfig) error {
		cfg.includeRows = enabled
		return nil
	}
}

// WithValidateStructure enables or disables parser structure validation.
// When enabled (default), the parser requires the roster root to be a
// collection of mappings. When disabled, parsing is more lenient.
// Default: true
func WithValidateStructure(enabled bool) Option {
	return func(cfg *checkConfig) error {
		cfg.validateStructure = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "" (uses parser default)
func WithUserAgent(ua string) Option {
	return func(cfg *checkConfig) error {
		cfg.userAgent = ua
		return nil
	}
}
