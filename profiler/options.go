package profiler

import (
	"fmt"

	"github.com/erraggy/rostertools/internal/options"
	"github.com/erraggy/rostertools/parser"
)

// Option is a function that configures a profile operation
type Option func(*profileConfig) error

// profileConfig holds configuration for a profile operation
type profileConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult
	records  []parser.Record

	// Configuration options
	sampleSize       int
	detectTimestamps bool
	fields           []string
}

// ProfileWithOptions profiles a roster using functional options.
//
// Example:
//
//	result, err := profiler.ProfileWithOptions(
//	    profiler.WithFilePath("membercsvjson.json"),
//	    profiler.WithSampleSize(5),
//	)
func ProfileWithOptions(opts ...Option) (*ProfileResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("profiler: invalid options: %w", err)
	}

	p := &Profiler{
		SampleSize:       cfg.sampleSize,
		DetectTimestamps: cfg.detectTimestamps,
	}

	// Route to the appropriate method based on input source.
	// Parsed input is profiled first as it's the preferred high-performance path.
	if cfg.parsed != nil {
		return p.Profile(cfg.parsed), nil
	}
	if cfg.records != nil {
		return p.ProfileRecords(cfg.records, cfg.fields), nil
	}
	// cfg.filePath must be non-nil here (validated by applyOptions)
	parseResult, err := parser.New().Parse(*cfg.filePath)
	if err != nil {
		return nil, err
	}
	return p.Profile(parseResult), nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*profileConfig, error) {
	cfg := &profileConfig{
		// Set defaults to match Profiler's zero-config behavior
		sampleSize:       defaultSampleSize,
		detectTimestamps: true,
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
	return func(cfg *profileConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *profileConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithRecords specifies a record slice as the input source
func WithRecords(records []parser.Record) Option {
	return func(cfg *profileConfig) error {
		if records == nil {
			return fmt.Errorf("profiler: records cannot be nil")
		}
		cfg.records = records
		return nil
	}
}

// WithFields fixes the column order when profiling a bare record slice.
// Ignored for file and parsed input, which carry their own column order.
func WithFields(fields []string) Option {
	return func(cfg *profileConfig) error {
		cfg.fields = fields
		return nil
	}
}

// WithSampleSize sets the number of distinct sample values retained per column
// Default: 3
func WithSampleSize(n int) Option {
	return func(cfg *profileConfig) error {
		if n < 1 {
			return fmt.Errorf("profiler: sample size must be at least 1")
		}
		cfg.sampleSize = n
		return nil
	}
}

// WithDetectTimestamps enables or disables timestamp detection on string columns
// Default: true
func WithDetectTimestamps(enabled bool) Option {
	return func(cfg *profileConfig) error {
		cfg.detectTimestamps = enabled
		return nil
	}
}
