package checker

import (
	"fmt"
	"sort"
	"time"

	"github.com/erraggy/rostertools/internal/issues"
	"github.com/erraggy/rostertools/internal/severity"
	"github.com/erraggy/rostertools/parser"
)

// DefaultKeyField is the identifier column checked when none is configured.
// Roster exports name their employee-identifier column "EMP ID".
const DefaultKeyField = "EMP ID"

// defaultMinCount reports values appearing strictly more than once.
const defaultMinCount = 2

// Severity indicates the severity level of a check issue
type Severity = severity.Severity

const (
	// SeverityError indicates a problem that makes the roster fail the check
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a data-quality finding or recommendation
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
	// SeverityCritical indicates critical issues
	SeverityCritical = severity.SeverityCritical
)

// CheckIssue represents a single issue found while checking a roster
type CheckIssue = issues.Issue

// MissingKeyPolicy controls how records lacking the key field (or carrying a
// null value for it) are handled.
type MissingKeyPolicy string

const (
	// MissingKeyReport excludes the record from the frequency table and
	// reports a warning issue. This is the default.
	MissingKeyReport MissingKeyPolicy = "report"
	// MissingKeySkip excludes the record silently.
	MissingKeySkip MissingKeyPolicy = "skip"
	// MissingKeyFail excludes the record and fails the check with an error issue.
	MissingKeyFail MissingKeyPolicy = "fail"
)

// ValidMissingKeyPolicies returns the list of valid missing-key policy names.
func ValidMissingKeyPolicies() []string {
	return []string{string(MissingKeyReport), string(MissingKeySkip), string(MissingKeyFail)}
}

// IsValidMissingKeyPolicy returns true if the given string is a valid policy name.
func IsValidMissingKeyPolicy(s string) bool {
	switch MissingKeyPolicy(s) {
	case MissingKeyReport, MissingKeySkip, MissingKeyFail:
		return true
	default:
		return false
	}
}

// Frequency is one entry of the frequency table: an identifier value and the
// number of records sharing it.
type Frequency struct {
	// Value is the canonical string form of the identifier
	Value string
	// Count is the number of records sharing the value
	Count int
}

// Duplicate is a frequency entry whose count reached the duplicate threshold.
type Duplicate struct {
	// Value is the canonical string form of the identifier
	Value string
	// Count is the number of records sharing the value
	Count int
	// Rows contains the 1-based record indexes sharing the value.
	// Only populated when Checker.IncludeRows is enabled.
	Rows []int
}

// CheckResult contains the results of checking a roster for duplicate identifiers
type CheckResult struct {
	// Valid is true if no error-severity issues were found
	// (duplicates are findings, not errors)
	Valid bool
	// KeyField is the identifier column that was checked
	KeyField string
	// MinCount is the duplicate threshold the check ran with
	MinCount int
	// TotalRecords is the number of records in the roster
	TotalRecords int
	// KeyedRecords is the number of records carrying a non-null key value.
	// The counts in Frequencies sum to exactly this number.
	KeyedRecords int
	// MissingKey is the number of records lacking the key field or carrying
	// a null value for it
	MissingKey int
	// DistinctValues is the number of distinct identifier values
	DistinctValues int
	// Frequencies is the full pre-filter frequency table, ordered by count
	// descending then value ascending
	Frequencies []Frequency
	// Duplicates is the subset of Frequencies with Count >= MinCount,
	// in the same order
	Duplicates []Duplicate
	// Issues contains all issues found while checking
	Issues []CheckIssue
	// ErrorCount is the number of error-severity issues
	ErrorCount int
	// WarningCount is the number of warning-severity issues
	WarningCount int
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the roster
	Stats parser.RosterStats
	// SourceFormat is the format of the source file
	SourceFormat parser.SourceFormat
	// SourcePath is the original source path from the parsed roster
	SourcePath string
}

// HasDuplicates returns true if any identifier reached the duplicate threshold.
func (r *CheckResult) HasDuplicates() bool {
	return len(r.Duplicates) > 0
}

// DuplicateRecords returns the total number of records involved in
// duplicated identifiers (the sum of all duplicate counts).
func (r *CheckResult) DuplicateRecords() int {
	total := 0
	for _, d := range r.Duplicates {
		total += d.Count
	}
	return total
}

// Checker handles duplicate-identifier analysis of rosters
type Checker struct {
	// KeyField is the identifier column to group on.
	// Defaults to "EMP ID" if not set.
	KeyField string
	// MinCount is the duplicate threshold: values with at least this many
	// records are reported. A value of 0 means use the default (2).
	MinCount int
	// MissingKeyPolicy controls handling of records without a key value.
	// Defaults to MissingKeyReport if not set.
	MissingKeyPolicy MissingKeyPolicy
	// IncludeRows collects the 1-based record indexes for each duplicate,
	// at the cost of extra memory on large rosters
	IncludeRows bool
	// ValidateStructure controls whether the parser performs basic structure
	// validation when the checker loads the roster itself
	ValidateStructure bool
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to "rostertools" if not set
	UserAgent string
}

// New creates a new Checker instance with default settings
func New() *Checker {
	return &Checker{
		KeyField:          DefaultKeyField,
		MinCount:          defaultMinCount,
		MissingKeyPolicy:  MissingKeyReport,
		ValidateStructure: true,
	}
}

// CheckWithOptions checks a roster for duplicate identifiers using functional
// options. This provides a flexible, extensible API that combines input source
// selection and configuration in a single function call.
//
// Example:
//
//	result, err := checker.CheckWithOptions(
//	    checker.WithFilePath("membercsvjson.json"),
//	    checker.WithKeyField("EMP ID"),
//	)
func CheckWithOptions(opts ...Option) (*CheckResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("checker: invalid options: %w", err)
	}

	c := &Checker{
		KeyField:          cfg.keyField,
		MinCount:          cfg.minCount,
		MissingKeyPolicy:  cfg.missingKeyPolicy,
		IncludeRows:       cfg.includeRows,
		ValidateStructure: cfg.validateStructure,
		UserAgent:         cfg.userAgent,
	}

	// Route to the appropriate method based on input source.
	// Parsed input is checked first as it's the preferred high-performance path.
	if cfg.parsed != nil {
		return c.CheckParsed(*cfg.parsed)
	}
	if cfg.records != nil {
		return c.CheckRecords(cfg.records)
	}
	// cfg.filePath must be non-nil here (validated by applyOptions)
	return c.Check(*cfg.filePath)
}

// keyField returns the configured key field or the default.
func (c *Checker) keyField() string {
	if c.KeyField != "" {
		return c.KeyField
	}
	return DefaultKeyField
}

// minCount returns the configured duplicate threshold or the default.
func (c *Checker) minCount() int {
	if c.MinCount > 0 {
		return c.MinCount
	}
	return defaultMinCount
}

// policy returns the configured missing-key policy or the default.
func (c *Checker) policy() MissingKeyPolicy {
	if c.MissingKeyPolicy != "" {
		return c.MissingKeyPolicy
	}
	return MissingKeyReport
}

// Check parses a roster file or URL and checks it for duplicate identifiers.
//
// A missing local file returns the parser's error unchanged, satisfying
// errors.Is(err, fs.ErrNotExist); callers that treat not-found as an expected
// condition branch on that.
func (c *Checker) Check(path string) (*CheckResult, error) {
	p := parser.New()
	p.ValidateStructure = c.ValidateStructure
	p.UserAgent = c.UserAgent

	parseResult, err := p.Parse(path)
	if err != nil {
		return nil, err
	}
	return c.CheckParsed(*parseResult)
}

// CheckParsed checks an already parsed roster for duplicate identifiers
func (c *Checker) CheckParsed(parseResult parser.ParseResult) (*CheckResult, error) {
	result, err := c.CheckRecords(parseResult.Records)
	if err != nil {
		return nil, err
	}
	result.LoadTime = parseResult.LoadTime
	result.SourceSize = parseResult.SourceSize
	result.Stats = parseResult.Stats
	result.SourceFormat = parseResult.SourceFormat
	result.SourcePath = parseResult.SourcePath
	return result, nil
}

// CheckRecords checks a record slice for duplicate identifiers.
// This is the algorithmic core: build the frequency table by grouping on the
// key field, order it deterministically, and filter to the duplicate subset.
func (c *Checker) CheckRecords(records []parser.Record) (*CheckResult, error) {
	if !IsValidMissingKeyPolicy(string(c.policy())) {
		return nil, fmt.Errorf("checker: invalid missing-key policy %q (valid: %v)", string(c.MissingKeyPolicy), ValidMissingKeyPolicies())
	}
	if c.MinCount < 0 {
		return nil, fmt.Errorf("checker: minCount cannot be negative")
	}

	keyField := c.keyField()
	result := &CheckResult{
		KeyField:     keyField,
		MinCount:     c.minCount(),
		TotalRecords: len(records),
		Issues:       make([]CheckIssue, 0),
	}

	counts := make(map[string]int)
	var rowsByValue map[string][]int
	if c.IncludeRows {
		rowsByValue = make(map[string][]int)
	}

	for i, rec := range records {
		value, ok := rec[keyField]
		if !ok || value == nil {
			// Null identifiers are excluded from the frequency table, the
			// same way a tabular group-and-count drops null keys.
			result.MissingKey++
			c.addMissingKeyIssue(result, keyField, i+1, ok)
			continue
		}
		key := parser.CanonicalString(value)
		counts[key]++
		if c.IncludeRows {
			rowsByValue[key] = append(rowsByValue[key], i+1)
		}
	}

	result.KeyedRecords = result.TotalRecords - result.MissingKey
	result.DistinctValues = len(counts)
	result.Frequencies = sortFrequencies(counts)

	minCount := c.minCount()
	for _, f := range result.Frequencies {
		if f.Count < minCount {
			continue
		}
		result.Duplicates = append(result.Duplicates, Duplicate{
			Value: f.Value,
			Count: f.Count,
			Rows:  rowsByValue[f.Value],
		})
	}

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError, SeverityCritical:
			result.ErrorCount++
		case SeverityWarning:
			result.WarningCount++
		}
	}
	result.Valid = result.ErrorCount == 0

	return result, nil
}

// addMissingKeyIssue records a missing-key finding per the configured policy.
// present reports whether the field existed with a null value.
func (c *Checker) addMissingKeyIssue(result *CheckResult, keyField string, row int, present bool) {
	policy := c.policy()
	if policy == MissingKeySkip {
		return
	}

	sev := SeverityWarning
	if policy == MissingKeyFail {
		sev = SeverityError
	}
	message := fmt.Sprintf("missing key field %q", keyField)
	if present {
		message = fmt.Sprintf("null value for key field %q", keyField)
	}
	result.Issues = append(result.Issues, CheckIssue{
		Message:  message,
		Severity: sev,
		Field:    keyField,
		Record:   row,
	})
}

// sortFrequencies converts a count map into a deterministically ordered
// table: count descending, then value ascending for equal counts.
func sortFrequencies(counts map[string]int) []Frequency {
	frequencies := make([]Frequency, 0, len(counts))
	for value, count := range counts {
		frequencies = append(frequencies, Frequency{Value: value, Count: count})
	}
	sort.Slice(frequencies, func(i, j int) bool {
		if frequencies[i].Count != frequencies[j].Count {
			return frequencies[i].Count > frequencies[j].Count
		}
		return frequencies[i].Value < frequencies[j].Value
	})
	return frequencies
}
