package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/rostertools/internal/severity"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name     string
		issue    Issue
		expected string
	}{
		{
			name: "error with record and field",
			issue: Issue{
				Message:  "missing key field \"EMP ID\"",
				Severity: severity.SeverityError,
				Field:    "EMP ID",
				Record:   3,
			},
			expected: "✗ records[3].EMP ID: missing key field \"EMP ID\"",
		},
		{
			name: "warning with record only",
			issue: Issue{
				Message:  "empty record",
				Severity: severity.SeverityWarning,
				Record:   7,
			},
			expected: "⚠ records[7]: empty record",
		},
		{
			name: "info with field only",
			issue: Issue{
				Message:  "values parsed as timestamps",
				Severity: severity.SeverityInfo,
				Field:    "Start Date",
			},
			expected: "ℹ Start Date: values parsed as timestamps",
		},
		{
			name: "critical without location",
			issue: Issue{
				Message:  "roster is empty",
				Severity: severity.SeverityCritical,
			},
			expected: "✗ roster: roster is empty",
		},
		{
			name: "with context",
			issue: Issue{
				Message:  "duplicate value",
				Severity: severity.SeverityWarning,
				Field:    "EMP ID",
				Record:   2,
				Context:  "first seen at records[1]",
			},
			expected: "⚠ records[2].EMP ID: duplicate value\n    Context: first seen at records[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.issue.String())
		})
	}
}

func TestIssueLocation(t *testing.T) {
	assert.Equal(t, "records[2].EMP ID", Issue{Record: 2, Field: "EMP ID"}.Location())
	assert.Equal(t, "records[2]", Issue{Record: 2}.Location())
	assert.Equal(t, "EMP ID", Issue{Field: "EMP ID"}.Location())
	assert.Equal(t, "roster", Issue{}.Location())
}

func TestIssueHasLocation(t *testing.T) {
	assert.True(t, Issue{Record: 1}.HasLocation())
	assert.False(t, Issue{Field: "EMP ID"}.HasLocation())
}
