package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleConvert_NoArgs(t *testing.T) {
	assert.Error(t, HandleConvert([]string{}))
}

func TestHandleConvert_MissingTo(t *testing.T) {
	assert.Error(t, HandleConvert([]string{"roster.json"}))
}

func TestHandleConvert_InvalidTarget(t *testing.T) {
	assert.Error(t, HandleConvert([]string{"-to", "xml", "roster.json"}))
}

func TestHandleConvert_JSONToCSV(t *testing.T) {
	path := writeRoster(t, "roster.json", cleanRosterJSON)
	outPath := filepath.Join(t.TempDir(), "roster.csv")

	require.NoError(t, HandleConvert([]string{"-to", "csv", "-o", outPath, path}))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "EMP ID,Name,Dept")
	assert.Contains(t, out, "E001,Ada,ENG")
}

func TestHandleConvert_CSVToJSON(t *testing.T) {
	path := writeRoster(t, "roster.csv", "EMP ID,Name\nE001,Ada\nE002,Grace\n")
	outPath := filepath.Join(t.TempDir(), "roster.json")

	require.NoError(t, HandleConvert([]string{"-to", "json", "-o", outPath, path}))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"EMP ID": "E001"`)
}
