// Package issues provides a unified issue type for roster data-quality problems.
package issues

import (
	"fmt"

	"github.com/erraggy/rostertools/internal/severity"
)

// Issue represents a single problem found while checking or remediating a roster.
type Issue struct {
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Field is the roster column the issue relates to (empty when not field-specific)
	Field string
	// Record is the 1-based index of the record the issue relates to (0 if unknown)
	Record int
	// Value is the problematic value (optional)
	Value any
	// Context provides additional information about the issue (optional)
	Context string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	result := fmt.Sprintf("%s %s: %s", symbol, i.Location(), i.Message)
	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}

// Location returns the issue position in a readable form: "records[N].Field"
// when both are known, "records[N]" or the bare field name when only one is,
// and "roster" when neither applies.
func (i Issue) Location() string {
	switch {
	case i.Record > 0 && i.Field != "":
		return fmt.Sprintf("records[%d].%s", i.Record, i.Field)
	case i.Record > 0:
		return fmt.Sprintf("records[%d]", i.Record)
	case i.Field != "":
		return i.Field
	default:
		return "roster"
	}
}

// HasLocation returns true if this issue points at a specific record.
func (i Issue) HasLocation() bool {
	return i.Record > 0
}
