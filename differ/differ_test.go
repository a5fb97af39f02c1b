package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rostertools/internal/testutil"
	"github.com/erraggy/rostertools/parser"
)

// TestDifferNew tests the New constructor
func TestDifferNew(t *testing.T) {
	d := New()
	if d == nil {
		t.Fatal("New() returned nil")
	}
	if d.KeyField != "EMP ID" {
		t.Errorf("Expected default key field \"EMP ID\", got %q", d.KeyField)
	}
}

func TestDiffRecordsIdenticalRosters(t *testing.T) {
	records := testutil.NewDuplicateRoster()

	result, err := New().DiffRecords(records, records)
	require.NoError(t, err)

	assert.False(t, result.HasChanges())
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
	assert.Empty(t, result.Changed)
	assert.Empty(t, result.DuplicateDelta)
}

func TestDiffRecordsDisjointRosters(t *testing.T) {
	oldRecords := []parser.Record{
		{"EMP ID": "A"}, {"EMP ID": "B"},
	}
	newRecords := []parser.Record{
		{"EMP ID": "C"}, {"EMP ID": "D"},
	}

	result, err := New().DiffRecords(oldRecords, newRecords)
	require.NoError(t, err)

	assert.True(t, result.HasChanges())
	assert.Equal(t, []string{"C", "D"}, result.Added)
	assert.Equal(t, []string{"A", "B"}, result.Removed)
	assert.Empty(t, result.Changed)
}

func TestDiffRecordsChangedContent(t *testing.T) {
	oldRecords := []parser.Record{
		{"EMP ID": "A", "Dept": "Platform"},
		{"EMP ID": "B", "Dept": "Payroll"},
	}
	newRecords := []parser.Record{
		{"EMP ID": "A", "Dept": "Support"},
		{"EMP ID": "B", "Dept": "Payroll"},
	}

	result, err := New().DiffRecords(oldRecords, newRecords)
	require.NoError(t, err)

	assert.Equal(t, []string{"A"}, result.Changed)
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
}

func TestDiffRecordsDuplicateMultiset(t *testing.T) {
	// The same two records in a different order are not a change.
	first := parser.Record{"EMP ID": "A", "Dept": "Platform"}
	second := parser.Record{"EMP ID": "A", "Dept": "Payroll"}

	result, err := New().DiffRecords(
		[]parser.Record{first, second},
		[]parser.Record{second, first},
	)
	require.NoError(t, err)
	assert.False(t, result.HasChanges())
}

func TestDiffRecordsDuplicateDelta(t *testing.T) {
	oldRecords := []parser.Record{
		{"EMP ID": "A"}, {"EMP ID": "A"}, {"EMP ID": "A"},
		{"EMP ID": "B"},
	}
	newRecords := []parser.Record{
		{"EMP ID": "A"},
		{"EMP ID": "B"}, {"EMP ID": "B"},
	}

	result, err := New().DiffRecords(oldRecords, newRecords)
	require.NoError(t, err)

	require.Len(t, result.DuplicateDelta, 2)
	assert.Equal(t, CountChange{Value: "A", OldCount: 3, NewCount: 1}, result.DuplicateDelta[0])
	assert.Equal(t, CountChange{Value: "B", OldCount: 1, NewCount: 2}, result.DuplicateDelta[1])

	// Shrinking a duplicate set is also a content change.
	assert.Equal(t, []string{"A", "B"}, result.Changed)
}

func TestDiffRecordsMissingKeysIgnored(t *testing.T) {
	oldRecords := []parser.Record{
		{"EMP ID": "A"},
		{"Name": "no id"},
	}
	newRecords := []parser.Record{
		{"EMP ID": "A"},
		{"EMP ID": nil, "Name": "null id"},
	}

	result, err := New().DiffRecords(oldRecords, newRecords)
	require.NoError(t, err)
	assert.False(t, result.HasChanges())
	assert.Equal(t, 2, result.OldRecords)
	assert.Equal(t, 2, result.NewRecords)
}

func TestDiffRecordsCustomKeyField(t *testing.T) {
	d := New()
	d.KeyField = "Email"

	result, err := d.DiffRecords(
		[]parser.Record{{"Email": "a@example.com"}},
		[]parser.Record{{"Email": "b@example.com"}},
	)
	require.NoError(t, err)

	assert.Equal(t, "Email", result.KeyField)
	assert.Equal(t, []string{"b@example.com"}, result.Added)
	assert.Equal(t, []string{"a@example.com"}, result.Removed)
}

func TestDiffFiles(t *testing.T) {
	oldPath := testutil.WriteTempJSON(t, testutil.NewCleanRoster())
	newPath := testutil.WriteTempJSON(t, testutil.NewDuplicateRoster())

	result, err := New().DiffFiles(oldPath, newPath)
	require.NoError(t, err)

	assert.Equal(t, oldPath, result.OldPath)
	assert.Equal(t, newPath, result.NewPath)
	assert.True(t, result.HasChanges())
	assert.Equal(t, []string{"E004"}, result.Added)
}

func TestDiffFilesNotFound(t *testing.T) {
	_, err := New().DiffFiles("missing-old.json", "missing-new.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "old roster")
}
