package testutil

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCleanRoster(t *testing.T) {
	roster := NewCleanRoster()
	require.Len(t, roster, 3)

	seen := make(map[any]int)
	for _, rec := range roster {
		seen[rec["EMP ID"]]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "EMP ID %v should be unique", id)
	}
}

func TestNewDuplicateRoster(t *testing.T) {
	roster := NewDuplicateRoster()
	require.Len(t, roster, 7)

	seen := make(map[any]int)
	for _, rec := range roster {
		seen[rec["EMP ID"]]++
	}
	assert.Equal(t, 3, seen["E001"])
	assert.Equal(t, 2, seen["E002"])
	assert.Equal(t, 1, seen["E003"])
	assert.Equal(t, 1, seen["E004"])
}

func TestWriteTempJSON(t *testing.T) {
	path := WriteTempJSON(t, NewCleanRoster())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Len(t, records, 3)
}

func TestWriteTempFile(t *testing.T) {
	path := WriteTempFile(t, "roster.csv", "EMP ID,Name\nE001,Ada\n")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "EMP ID,Name")
}
