package dedupe

import (
	"fmt"
	"time"

	"github.com/erraggy/rostertools/parser"
)

// DefaultKeyField is the identifier column deduplicated when none is configured.
const DefaultKeyField = "EMP ID"

// Strategy controls which record survives when an identifier is duplicated.
type Strategy string

const (
	// StrategyKeepFirst retains the earliest record for each duplicated
	// identifier. This is the default.
	StrategyKeepFirst Strategy = "keep-first"
	// StrategyKeepLast retains the latest record for each duplicated identifier.
	StrategyKeepLast Strategy = "keep-last"
	// StrategyFail returns an error when any duplicate exists.
	StrategyFail Strategy = "fail"
)

// ValidStrategies returns the list of valid strategy names.
func ValidStrategies() []string {
	return []string{string(StrategyKeepFirst), string(StrategyKeepLast), string(StrategyFail)}
}

// IsValidStrategy returns true if the given string is a valid strategy name.
func IsValidStrategy(s string) bool {
	switch Strategy(s) {
	case StrategyKeepFirst, StrategyKeepLast, StrategyFail:
		return true
	default:
		return false
	}
}

// RemovedRecord identifies one record dropped by deduplication.
type RemovedRecord struct {
	// Value is the canonical string form of the duplicated identifier
	Value string
	// Row is the 1-based index of the removed record in the input
	Row int
}

// DedupeResult contains the results of deduplicating a roster
type DedupeResult struct {
	// KeyField is the identifier column that was deduplicated
	KeyField string
	// Strategy is the strategy the run used
	Strategy Strategy
	// TotalRecords is the number of records in the input
	TotalRecords int
	// Records contains the surviving records in their original relative order
	Records []parser.Record
	// Fields contains the column names of the input, in first-seen order
	Fields []string
	// Removed identifies the dropped records, in input order
	Removed []RemovedRecord
	// DuplicateValues is the number of distinct identifiers that had
	// more than one record
	DuplicateValues int
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// SourceFormat is the format of the source file
	SourceFormat parser.SourceFormat
	// SourcePath is the original source path from the parsed roster
	SourcePath string
}

// RemovedCount returns the number of records dropped.
func (r *DedupeResult) RemovedCount() int {
	return len(r.Removed)
}

// Deduper removes duplicate-identifier records from rosters
type Deduper struct {
	// KeyField is the identifier column to deduplicate on.
	// Defaults to "EMP ID" if not set.
	KeyField string
	// Strategy controls which record survives per duplicated identifier.
	// Defaults to StrategyKeepFirst if not set.
	Strategy Strategy
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to "rostertools" if not set
	UserAgent string
}

// New creates a new Deduper instance with default settings
func New() *Deduper {
	return &Deduper{
		KeyField: DefaultKeyField,
		Strategy: StrategyKeepFirst,
	}
}

// DedupeWithOptions deduplicates a roster using functional options, combining
// input source selection and configuration in a single call.
//
// Example:
//
//	result, err := dedupe.DedupeWithOptions(
//	    dedupe.WithFilePath("membercsvjson.json"),
//	    dedupe.WithStrategy(dedupe.StrategyKeepLast),
//	)
func DedupeWithOptions(opts ...Option) (*DedupeResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("dedupe: invalid options: %w", err)
	}

	d := &Deduper{
		KeyField:  cfg.keyField,
		Strategy:  cfg.strategy,
		UserAgent: cfg.userAgent,
	}

	// Route to the appropriate method based on input source.
	// Parsed input is checked first as it's the preferred high-performance path.
	if cfg.parsed != nil {
		return d.DedupeParsed(*cfg.parsed)
	}
	if cfg.records != nil {
		return d.DedupeRecords(cfg.records)
	}
	// cfg.filePath must be non-nil here (validated by applyOptions)
	return d.Dedupe(*cfg.filePath)
}

// keyField returns the configured key field or the default.
func (d *Deduper) keyField() string {
	if d.KeyField != "" {
		return d.KeyField
	}
	return DefaultKeyField
}

// strategy returns the configured strategy or the default.
func (d *Deduper) strategy() Strategy {
	if d.Strategy != "" {
		return d.Strategy
	}
	return StrategyKeepFirst
}

// Dedupe parses a roster file or URL and removes duplicate-identifier records.
func (d *Deduper) Dedupe(path string) (*DedupeResult, error) {
	p := parser.New()
	p.UserAgent = d.UserAgent

	parseResult, err := p.Parse(path)
	if err != nil {
		return nil, err
	}
	return d.DedupeParsed(*parseResult)
}

// DedupeParsed deduplicates an already parsed roster
func (d *Deduper) DedupeParsed(parseResult parser.ParseResult) (*DedupeResult, error) {
	result, err := d.DedupeRecords(parseResult.Records)
	if err != nil {
		return nil, err
	}
	result.Fields = parseResult.Fields
	result.LoadTime = parseResult.LoadTime
	result.SourceSize = parseResult.SourceSize
	result.SourceFormat = parseResult.SourceFormat
	result.SourcePath = parseResult.SourcePath
	return result, nil
}

// DedupeRecords deduplicates a record slice. The algorithm is two-pass: the
// first pass counts records per identifier, the second selects survivors so
// that relative input order is preserved regardless of strategy. Records
// missing the key field (or carrying null) are always retained.
func (d *Deduper) DedupeRecords(records []parser.Record) (*DedupeResult, error) {
	if !IsValidStrategy(string(d.strategy())) {
		return nil, fmt.Errorf("dedupe: invalid strategy %q (valid: %v)", string(d.Strategy), ValidStrategies())
	}

	keyField := d.keyField()
	strategy := d.strategy()

	result := &DedupeResult{
		KeyField:     keyField,
		Strategy:     strategy,
		TotalRecords: len(records),
	}

	// First pass: count and remember the last row per identifier.
	counts := make(map[string]int)
	lastRow := make(map[string]int)
	for i, rec := range records {
		value, ok := rec[keyField]
		if !ok || value == nil {
			continue
		}
		key := parser.CanonicalString(value)
		counts[key]++
		lastRow[key] = i
	}

	for key, count := range counts {
		if count > 1 {
			result.DuplicateValues++
			if strategy == StrategyFail {
				return nil, fmt.Errorf("dedupe: identifier %q has %d records (strategy %s)", key, count, StrategyFail)
			}
		}
	}

	// Second pass: select survivors in input order.
	result.Records = make([]parser.Record, 0, len(records)-result.DuplicateValues)
	seen := make(map[string]bool)
	for i, rec := range records {
		value, ok := rec[keyField]
		if !ok || value == nil {
			result.Records = append(result.Records, rec)
			continue
		}
		key := parser.CanonicalString(value)
		if counts[key] == 1 {
			result.Records = append(result.Records, rec)
			continue
		}

		keep := false
		switch strategy {
		case StrategyKeepFirst:
			keep = !seen[key]
		case StrategyKeepLast:
			keep = i == lastRow[key]
		}
		seen[key] = true

		if keep {
			result.Records = append(result.Records, rec)
		} else {
			result.Removed = append(result.Removed, RemovedRecord{Value: key, Row: i + 1})
		}
	}

	return result, nil
}
