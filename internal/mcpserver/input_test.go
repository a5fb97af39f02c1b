package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rostertools/internal/testutil"
)

const inlineRoster = `[
  {"EMP ID": "E001", "Name": "Ada Park"},
  {"EMP ID": "E002", "Name": "Ben Ito"},
  {"EMP ID": "E001", "Name": "Ada Park"}
]`

func TestResolve_ExactlyOneInput(t *testing.T) {
	_, err := rosterInput{}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content")

	_, err = rosterInput{File: "a.json", Content: "[]"}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 2")
}

func TestResolve_Content(t *testing.T) {
	rosterCache.reset()

	result, err := rosterInput{Content: inlineRoster}.resolve()
	require.NoError(t, err)
	assert.Len(t, result.Records, 3)
	assert.Equal(t, []string{"EMP ID", "Name"}, result.Fields)
}

func TestResolve_File(t *testing.T) {
	rosterCache.reset()
	path := testutil.WriteTempJSON(t, testutil.NewDuplicateRoster())

	result, err := rosterInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Len(t, result.Records, 7)
}

func TestResolve_URLsDisabledByDefault(t *testing.T) {
	_, err := rosterInput{URL: "https://example.com/roster.json"}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROSTERTOOLS_MCP_ALLOW_URLS")
}

func TestResolve_InvalidFormat(t *testing.T) {
	_, err := rosterInput{Content: inlineRoster, Format: "xml"}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestResolve_InlineCSVNeedsFormat(t *testing.T) {
	rosterCache.reset()
	csv := "EMP ID,Name\nE001,Ada Park\nE001,Ada Park\n"

	result, err := rosterInput{Content: csv, Format: "csv"}.resolve()
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
}

func TestResolve_InlineSizeLimit(t *testing.T) {
	old := cfg.MaxInlineSize
	cfg.MaxInlineSize = 8
	defer func() { cfg.MaxInlineSize = old }()

	_, err := rosterInput{Content: inlineRoster}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestResolve_CachesFileInputs(t *testing.T) {
	rosterCache.reset()
	path := testutil.WriteTempJSON(t, testutil.NewCleanRoster())

	first, err := rosterInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, rosterCache.size())

	second, err := rosterInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Same(t, first, second, "second resolve should hit the cache")
}

func TestResolve_ContentKeyedByHash(t *testing.T) {
	rosterCache.reset()

	_, err := rosterInput{Content: inlineRoster}.resolve()
	require.NoError(t, err)
	_, err = rosterInput{Content: `[{"EMP ID": "X"}]`}.resolve()
	require.NoError(t, err)
	assert.Equal(t, 2, rosterCache.size())
}

func TestMakeCacheKey(t *testing.T) {
	assert.Empty(t, makeCacheKey(rosterInput{}))
	assert.Empty(t, makeCacheKey(rosterInput{File: "does-not-exist.json"}),
		"unstat-able files are not cached")

	key := makeCacheKey(rosterInput{Content: "x"})
	assert.Contains(t, key, "content:")

	key = makeCacheKey(rosterInput{URL: "https://example.com/r.json"})
	assert.Equal(t, "url::https://example.com/r.json", key)
}

func TestCacheExpiry(t *testing.T) {
	rosterCache.reset()

	rosterCache.putWithTTL("k", nil, time.Nanosecond)
	time.Sleep(time.Millisecond)
	assert.Nil(t, rosterCache.get("k"))
	assert.Equal(t, 0, rosterCache.size())
}

func TestCacheEviction(t *testing.T) {
	rosterCache.reset()
	oldMax := rosterCache.maxSize
	rosterCache.maxSize = 2
	defer func() { rosterCache.maxSize = oldMax }()

	rosterCache.putWithTTL("a", nil, time.Minute)
	time.Sleep(time.Millisecond)
	rosterCache.putWithTTL("b", nil, time.Minute)
	time.Sleep(time.Millisecond)
	rosterCache.putWithTTL("c", nil, time.Minute)

	assert.Equal(t, 2, rosterCache.size())

	rosterCache.mu.Lock()
	_, hasOldest := rosterCache.entries["a"]
	rosterCache.mu.Unlock()
	assert.False(t, hasOldest, "oldest entry should be evicted")
}
