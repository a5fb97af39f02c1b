package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInvalidURI(t *testing.T) {
	_, err := Open(context.Background(), "not-a-postgres-uri")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history: failed to connect")
}

func TestRecordScanNilResult(t *testing.T) {
	s := &Store{}
	_, err := s.RecordScan(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "result cannot be nil")
}
