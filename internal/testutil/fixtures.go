// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/rostertools/parser"
)

// NewCleanRoster creates a small roster where every EMP ID appears exactly once.
func NewCleanRoster() []parser.Record {
	return []parser.Record{
		{"EMP ID": "E001", "Name": "Ada Park", "Dept": "Platform"},
		{"EMP ID": "E002", "Name": "Ben Ito", "Dept": "Payroll"},
		{"EMP ID": "E003", "Name": "Cara Diaz", "Dept": "Platform"},
	}
}

// NewDuplicateRoster creates a roster with known duplicates:
// E001 appears three times and E002 twice; E003 and E004 are unique.
func NewDuplicateRoster() []parser.Record {
	return []parser.Record{
		{"EMP ID": "E001", "Name": "Ada Park", "Dept": "Platform"},
		{"EMP ID": "E002", "Name": "Ben Ito", "Dept": "Payroll"},
		{"EMP ID": "E001", "Name": "Ada P.", "Dept": "Platform"},
		{"EMP ID": "E003", "Name": "Cara Diaz", "Dept": "Support"},
		{"EMP ID": "E001", "Name": "A. Park", "Dept": "Platform"},
		{"EMP ID": "E002", "Name": "Ben Ito", "Dept": "Payroll"},
		{"EMP ID": "E004", "Name": "Dev Rao", "Dept": "Support"},
	}
}

// WriteTempJSON marshals a value to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, v any) string {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal value to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "roster.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}

// WriteTempYAML marshals a value to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, v any) string {
	t.Helper()

	data, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal value to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempFile writes raw content to a temporary file with the given name.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file %s: %v", name, err)
	}

	return tmpFile
}
