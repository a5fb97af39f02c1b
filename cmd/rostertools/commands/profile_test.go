package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupProfileFlags(t *testing.T) {
	fs, flags := SetupProfileFlags()
	assert.Equal(t, FormatText, flags.Format)
	assert.False(t, flags.ByDuplication)

	require.NoError(t, fs.Parse([]string{"-by-duplication", "-samples", "3", "roster.json"}))
	assert.True(t, flags.ByDuplication)
	assert.Equal(t, 3, flags.SampleSize)
}

func TestHandleProfile_NoArgs(t *testing.T) {
	assert.Error(t, HandleProfile([]string{}))
}

func TestHandleProfile_Text(t *testing.T) {
	path := writeRoster(t, "roster.json", dupRosterJSON)

	var err error
	out := captureStdout(t, func() {
		err = HandleProfile([]string{path})
	})

	require.NoError(t, err)
	assert.Contains(t, out, "Profiled 6 records")
	assert.Contains(t, out, "EMP ID")
	assert.Contains(t, out, "COLUMN")
}

func TestHandleProfile_ByDuplication(t *testing.T) {
	path := writeRoster(t, "roster.json", dupRosterJSON)

	var err error
	out := captureStdout(t, func() {
		err = HandleProfile([]string{"-by-duplication", "-f", "json", path})
	})

	require.NoError(t, err)
	// Dept (ENG appears 4 times) sorts ahead of EMP ID (E001 appears 3 times).
	assert.Less(t, strings.Index(out, `"Dept"`), strings.Index(out, `"EMP ID"`))
}
