package checker

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rostertools/internal/testutil"
	"github.com/erraggy/rostertools/parser"
)

// TestCheckerNew tests the New constructor
func TestCheckerNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Fatal("New() returned nil")
	}
	if c.KeyField != "EMP ID" {
		t.Errorf("Expected default key field \"EMP ID\", got %q", c.KeyField)
	}
	if c.MinCount != 2 {
		t.Errorf("Expected default min count 2, got %d", c.MinCount)
	}
	if c.MissingKeyPolicy != MissingKeyReport {
		t.Errorf("Expected default policy report, got %q", c.MissingKeyPolicy)
	}
}

func TestCheckRecordsNoDuplicates(t *testing.T) {
	c := New()
	result, err := c.CheckRecords(testutil.NewCleanRoster())
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.False(t, result.HasDuplicates())
	assert.Empty(t, result.Duplicates)
	assert.Equal(t, 3, result.TotalRecords)
	assert.Equal(t, 3, result.KeyedRecords)
	assert.Equal(t, 3, result.DistinctValues)
	assert.Equal(t, 0, result.MissingKey)
}

func TestCheckRecordsWithDuplicates(t *testing.T) {
	c := New()
	result, err := c.CheckRecords(testutil.NewDuplicateRoster())
	require.NoError(t, err)

	assert.True(t, result.Valid, "duplicates are findings, not errors")
	assert.True(t, result.HasDuplicates())
	require.Len(t, result.Duplicates, 2)

	// Ordered by count descending, then value ascending
	assert.Equal(t, "E001", result.Duplicates[0].Value)
	assert.Equal(t, 3, result.Duplicates[0].Count)
	assert.Equal(t, "E002", result.Duplicates[1].Value)
	assert.Equal(t, 2, result.Duplicates[1].Count)

	assert.Equal(t, 5, result.DuplicateRecords())
	assert.Equal(t, 4, result.DistinctValues)
}

func TestCheckRecordsFrequencySumInvariant(t *testing.T) {
	tests := []struct {
		name    string
		records []parser.Record
	}{
		{"clean roster", testutil.NewCleanRoster()},
		{"duplicate roster", testutil.NewDuplicateRoster()},
		{"empty roster", []parser.Record{}},
		{
			"roster with missing keys",
			[]parser.Record{
				{"EMP ID": "A"},
				{"Name": "No ID"},
				{"EMP ID": "A"},
				{"EMP ID": nil},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New().CheckRecords(tt.records)
			require.NoError(t, err)

			sum := 0
			for _, f := range result.Frequencies {
				sum += f.Count
			}
			assert.Equal(t, result.KeyedRecords, sum,
				"frequency counts must sum to the keyed record count")
			assert.Equal(t, result.TotalRecords, result.KeyedRecords+result.MissingKey)
		})
	}
}

func TestCheckRecordsCountExactness(t *testing.T) {
	// An identifier appearing k times must be reported with count exactly k.
	records := []parser.Record{
		{"EMP ID": "X"}, {"EMP ID": "X"}, {"EMP ID": "X"}, {"EMP ID": "X"},
		{"EMP ID": "Y"},
	}
	result, err := New().CheckRecords(records)
	require.NoError(t, err)

	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "X", result.Duplicates[0].Value)
	assert.Equal(t, 4, result.Duplicates[0].Count)
}

func TestCheckRecordsTieOrdering(t *testing.T) {
	records := []parser.Record{
		{"EMP ID": "B"}, {"EMP ID": "B"},
		{"EMP ID": "A"}, {"EMP ID": "A"},
		{"EMP ID": "C"}, {"EMP ID": "C"}, {"EMP ID": "C"},
	}
	result, err := New().CheckRecords(records)
	require.NoError(t, err)

	require.Len(t, result.Duplicates, 3)
	assert.Equal(t, "C", result.Duplicates[0].Value, "highest count first")
	assert.Equal(t, "A", result.Duplicates[1].Value, "ties break by value ascending")
	assert.Equal(t, "B", result.Duplicates[2].Value)
}

func TestCheckRecordsNumericIdentifiers(t *testing.T) {
	// JSON numbers decode as float64; integral values must group under a
	// form without a decimal point so "1003" and 1003 count together.
	records := []parser.Record{
		{"EMP ID": float64(1003)},
		{"EMP ID": "1003"},
		{"EMP ID": float64(1004)},
	}
	result, err := New().CheckRecords(records)
	require.NoError(t, err)

	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "1003", result.Duplicates[0].Value)
	assert.Equal(t, 2, result.Duplicates[0].Count)
}

func TestCheckRecordsMissingKeyPolicies(t *testing.T) {
	records := []parser.Record{
		{"EMP ID": "A"},
		{"Name": "No ID at all"},
		{"EMP ID": nil, "Name": "Null ID"},
		{"EMP ID": "A"},
	}

	t.Run("report", func(t *testing.T) {
		c := New()
		result, err := c.CheckRecords(records)
		require.NoError(t, err)

		assert.True(t, result.Valid)
		assert.Equal(t, 2, result.MissingKey)
		assert.Equal(t, 2, result.WarningCount)
		require.Len(t, result.Issues, 2)
		assert.Equal(t, 2, result.Issues[0].Record)
		assert.Contains(t, result.Issues[0].Message, "missing key field")
		assert.Contains(t, result.Issues[1].Message, "null value for key field")
	})

	t.Run("skip", func(t *testing.T) {
		c := New()
		c.MissingKeyPolicy = MissingKeySkip
		result, err := c.CheckRecords(records)
		require.NoError(t, err)

		assert.True(t, result.Valid)
		assert.Equal(t, 2, result.MissingKey)
		assert.Empty(t, result.Issues)
	})

	t.Run("fail", func(t *testing.T) {
		c := New()
		c.MissingKeyPolicy = MissingKeyFail
		result, err := c.CheckRecords(records)
		require.NoError(t, err)

		assert.False(t, result.Valid)
		assert.Equal(t, 2, result.ErrorCount)
	})

	t.Run("invalid policy", func(t *testing.T) {
		c := New()
		c.MissingKeyPolicy = MissingKeyPolicy("explode")
		_, err := c.CheckRecords(records)
		assert.Error(t, err)
	})
}

func TestCheckRecordsIncludeRows(t *testing.T) {
	records := []parser.Record{
		{"EMP ID": "A"}, {"EMP ID": "B"}, {"EMP ID": "A"}, {"EMP ID": "A"},
	}

	c := New()
	c.IncludeRows = true
	result, err := c.CheckRecords(records)
	require.NoError(t, err)

	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, []int{1, 3, 4}, result.Duplicates[0].Rows)

	// Rows stay nil when not requested
	c.IncludeRows = false
	result, err = c.CheckRecords(records)
	require.NoError(t, err)
	require.Len(t, result.Duplicates, 1)
	assert.Nil(t, result.Duplicates[0].Rows)
}

func TestCheckRecordsMinCount(t *testing.T) {
	records := []parser.Record{
		{"EMP ID": "A"}, {"EMP ID": "A"}, {"EMP ID": "A"},
		{"EMP ID": "B"}, {"EMP ID": "B"},
		{"EMP ID": "C"},
	}

	c := New()
	c.MinCount = 3
	result, err := c.CheckRecords(records)
	require.NoError(t, err)

	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "A", result.Duplicates[0].Value)

	// MinCount 1 reports every value
	c.MinCount = 1
	result, err = c.CheckRecords(records)
	require.NoError(t, err)
	assert.Len(t, result.Duplicates, 3)
}

func TestCheckRecordsCustomKeyField(t *testing.T) {
	records := []parser.Record{
		{"EMP ID": "A", "Email": "x@example.com"},
		{"EMP ID": "B", "Email": "x@example.com"},
	}

	c := New()
	c.KeyField = "Email"
	result, err := c.CheckRecords(records)
	require.NoError(t, err)

	assert.Equal(t, "Email", result.KeyField)
	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "x@example.com", result.Duplicates[0].Value)
}

func TestCheckFile(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.NewDuplicateRoster())

	c := New()
	result, err := c.Check(path)
	require.NoError(t, err)

	assert.Equal(t, path, result.SourcePath)
	assert.Equal(t, parser.SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, 7, result.TotalRecords)
	assert.True(t, result.HasDuplicates())
	assert.Greater(t, result.SourceSize, int64(0))
}

func TestCheckFileNotFound(t *testing.T) {
	c := New()
	result, err := c.Check("does-not-exist.json")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, fs.ErrNotExist),
		"not-found must be detectable with errors.Is for the expected-error tier")
}

func TestCheckWithOptions(t *testing.T) {
	t.Run("file path input", func(t *testing.T) {
		path := testutil.WriteTempJSON(t, testutil.NewDuplicateRoster())
		result, err := CheckWithOptions(WithFilePath(path))
		require.NoError(t, err)
		assert.True(t, result.HasDuplicates())
	})

	t.Run("parsed input", func(t *testing.T) {
		parsed, err := parser.ParseWithOptions(
			parser.WithBytes([]byte(`[{"EMP ID":"A"},{"EMP ID":"A"},{"EMP ID":"B"}]`)),
		)
		require.NoError(t, err)

		result, err := CheckWithOptions(WithParsed(*parsed))
		require.NoError(t, err)
		require.Len(t, result.Duplicates, 1)
		assert.Equal(t, "A", result.Duplicates[0].Value)
		assert.Equal(t, 2, result.Duplicates[0].Count)
	})

	t.Run("records input", func(t *testing.T) {
		result, err := CheckWithOptions(
			WithRecords(testutil.NewCleanRoster()),
			WithKeyField("Dept"),
			WithIncludeRows(true),
		)
		require.NoError(t, err)
		require.Len(t, result.Duplicates, 1)
		assert.Equal(t, "Platform", result.Duplicates[0].Value)
		assert.Equal(t, []int{1, 3}, result.Duplicates[0].Rows)
	})

	t.Run("no input source", func(t *testing.T) {
		_, err := CheckWithOptions(WithKeyField("EMP ID"))
		assert.Error(t, err)
	})

	t.Run("multiple input sources", func(t *testing.T) {
		_, err := CheckWithOptions(
			WithFilePath("a.json"),
			WithRecords(testutil.NewCleanRoster()),
		)
		assert.Error(t, err)
	})

	t.Run("invalid min count", func(t *testing.T) {
		_, err := CheckWithOptions(
			WithRecords(testutil.NewCleanRoster()),
			WithMinCount(0),
		)
		assert.Error(t, err)
	})

	t.Run("empty key field", func(t *testing.T) {
		_, err := CheckWithOptions(
			WithRecords(testutil.NewCleanRoster()),
			WithKeyField(""),
		)
		assert.Error(t, err)
	})
}

func TestValidMissingKeyPolicies(t *testing.T) {
	policies := ValidMissingKeyPolicies()
	assert.Equal(t, []string{"report", "skip", "fail"}, policies)
	for _, p := range policies {
		assert.True(t, IsValidMissingKeyPolicy(p))
	}
	assert.False(t, IsValidMissingKeyPolicy("explode"))
	assert.False(t, IsValidMissingKeyPolicy(""))
}
