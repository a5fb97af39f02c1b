package profiler

import (
	"sort"
	"time"

	"github.com/araddon/dateparse"

	"github.com/erraggy/rostertools/parser"
)

// defaultSampleSize is the number of distinct sample values retained per
// field when Profiler.SampleSize is zero.
const defaultSampleSize = 3

// FieldType classifies the values observed in a roster column.
type FieldType string

const (
	// FieldTypeString indicates all present values are strings
	FieldTypeString FieldType = "string"
	// FieldTypeNumber indicates all present values are numeric
	FieldTypeNumber FieldType = "number"
	// FieldTypeBool indicates all present values are booleans
	FieldTypeBool FieldType = "bool"
	// FieldTypeNull indicates the column has no present values at all
	FieldTypeNull FieldType = "null"
	// FieldTypeMixed indicates the column mixes value kinds
	FieldTypeMixed FieldType = "mixed"
)

// FieldProfile contains statistics for one roster column.
type FieldProfile struct {
	// Name is the column name
	Name string
	// Present is the number of records carrying a non-null value
	Present int
	// Missing is the number of records lacking the column or carrying null
	Missing int
	// Distinct is the number of distinct canonical values
	Distinct int
	// MaxCount is the highest occurrence count of any single value.
	// A MaxCount above 1 means the column repeats values.
	MaxCount int
	// TopValue is the most frequent value (ties broken by value order)
	TopValue string
	// Type classifies the observed values
	Type FieldType
	// Timestamp is true when every non-empty string value parses as a
	// date or time
	Timestamp bool
	// Samples holds the first distinct values in record order
	Samples []string
}

// HasDuplication reports whether any single value repeats in the column.
func (fp *FieldProfile) HasDuplication() bool {
	return fp.MaxCount > 1
}

// ProfileResult contains per-column statistics for a roster.
type ProfileResult struct {
	// RecordCount is the number of records profiled
	RecordCount int
	// Fields contains one profile per column, in roster column order
	Fields []*FieldProfile
	// ByName provides lookup by column name
	ByName map[string]*FieldProfile
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// SourceFormat is the format of the source file
	SourceFormat parser.SourceFormat
	// SourcePath is the original source path from the parsed roster
	SourcePath string
}

// FieldsByDuplication returns the column profiles ordered by value
// concentration: highest MaxCount first, ties broken by name. Identifier
// columns with duplicates surface at the top.
func (r *ProfileResult) FieldsByDuplication() []*FieldProfile {
	ordered := make([]*FieldProfile, len(r.Fields))
	copy(ordered, r.Fields)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].MaxCount != ordered[j].MaxCount {
			return ordered[i].MaxCount > ordered[j].MaxCount
		}
		return ordered[i].Name < ordered[j].Name
	})
	return ordered
}

// Profiler computes per-column statistics for rosters
type Profiler struct {
	// SampleSize is the number of distinct sample values retained per
	// column. A value of 0 means use the default (3).
	SampleSize int
	// DetectTimestamps controls whether string columns are tested for
	// parseable dates. Default: true via New.
	DetectTimestamps bool
}

// New creates a new Profiler instance with default settings
func New() *Profiler {
	return &Profiler{
		SampleSize:       defaultSampleSize,
		DetectTimestamps: true,
	}
}

// sampleSize returns the configured sample size or the default.
func (p *Profiler) sampleSize() int {
	if p.SampleSize > 0 {
		return p.SampleSize
	}
	return defaultSampleSize
}

// Profile computes column statistics for a parsed roster.
func (p *Profiler) Profile(result *parser.ParseResult) *ProfileResult {
	pr := p.ProfileRecords(result.Records, result.Fields)
	pr.LoadTime = result.LoadTime
	pr.SourceSize = result.SourceSize
	pr.SourceFormat = result.SourceFormat
	pr.SourcePath = result.SourcePath
	return pr
}

// ProfileRecords computes column statistics for a record slice. fields fixes
// the column order; pass nil to derive the sorted union of record keys.
func (p *Profiler) ProfileRecords(records []parser.Record, fields []string) *ProfileResult {
	if fields == nil {
		fields = unionFields(records)
	}

	result := &ProfileResult{
		RecordCount: len(records),
		Fields:      make([]*FieldProfile, 0, len(fields)),
		ByName:      make(map[string]*FieldProfile, len(fields)),
	}

	for _, name := range fields {
		fp := p.profileField(name, records)
		result.Fields = append(result.Fields, fp)
		result.ByName[name] = fp
	}
	return result
}

// profileField computes the statistics for a single column.
func (p *Profiler) profileField(name string, records []parser.Record) *FieldProfile {
	fp := &FieldProfile{Name: name}

	counts := make(map[string]int)
	var distinctOrder []string
	kind := FieldType("")
	allTimestamps := true

	for _, rec := range records {
		value, ok := rec[name]
		if !ok || value == nil {
			fp.Missing++
			continue
		}
		fp.Present++

		k := valueKind(value)
		if kind == "" {
			kind = k
		} else if kind != k {
			kind = FieldTypeMixed
		}

		canonical := parser.CanonicalString(value)
		if counts[canonical] == 0 {
			distinctOrder = append(distinctOrder, canonical)
		}
		counts[canonical]++

		if allTimestamps && k == FieldTypeString {
			if canonical != "" && !parsesAsTimestamp(canonical) {
				allTimestamps = false
			}
		}
	}

	fp.Distinct = len(counts)
	for value, count := range counts {
		if count > fp.MaxCount || (count == fp.MaxCount && value < fp.TopValue) {
			fp.MaxCount = count
			fp.TopValue = value
		}
	}

	if fp.Present == 0 {
		fp.Type = FieldTypeNull
	} else {
		fp.Type = kind
	}

	if p.DetectTimestamps && fp.Type == FieldTypeString && fp.Present > 0 {
		fp.Timestamp = allTimestamps
	}

	sampleSize := p.sampleSize()
	if len(distinctOrder) > sampleSize {
		distinctOrder = distinctOrder[:sampleSize]
	}
	fp.Samples = distinctOrder

	return fp
}

// parsesAsTimestamp reports whether s reads as a date or time. Short pure
// digit runs are identifiers, not dates, and never qualify even though a
// lenient date parser may accept them.
func parsesAsTimestamp(s string) bool {
	if isShortDigitRun(s) {
		return false
	}
	_, err := dateparse.ParseAny(s)
	return err == nil
}

// isShortDigitRun reports whether s is all digits and too short to be a
// compact date like 20240102.
func isShortDigitRun(s string) bool {
	if len(s) >= 8 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// valueKind classifies a decoded value.
func valueKind(v any) FieldType {
	switch v.(type) {
	case string:
		return FieldTypeString
	case bool:
		return FieldTypeBool
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return FieldTypeNumber
	default:
		// Nested maps and slices do not fit the scalar kinds
		return FieldTypeMixed
	}
}

// unionFields returns the sorted union of all record keys, used when no
// column order is supplied.
func unionFields(records []parser.Record) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for key := range rec {
			seen[key] = true
		}
	}
	fields := make([]string, 0, len(seen))
	for key := range seen {
		fields = append(fields, key)
	}
	sort.Strings(fields)
	return fields
}
