// Package severity provides severity level constants and utilities
// for issues reported by the checker, profiler, dedupe, and differ packages.
//
// All four severity levels are exported by each public package that uses them:
//   - SeverityInfo: Informational messages about choices made
//   - SeverityWarning: Data-quality findings or recommendations
//   - SeverityError: Problems that make a roster fail a check
//   - SeverityCritical: Problems that prevent processing (data loss)
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue found while checking,
// profiling, or remediating a roster.
type Severity int

const (
	// SeverityError indicates a problem that makes the roster fail a check.
	// Used primarily by the checker package for key-field violations.
	SeverityError Severity = iota

	// SeverityWarning indicates data-quality findings or recommendations
	// that don't prevent processing but should be addressed.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	// These are non-actionable notices that may be useful for debugging.
	SeverityInfo

	// SeverityCritical indicates problems that prevent processing without data loss.
	// Used when remediation must skip or alter records.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
