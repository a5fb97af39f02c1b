package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dupRosterBody = `[
  {"EMP ID": "E001", "Name": "Ada Park"},
  {"EMP ID": "E002", "Name": "Ben Ito"},
  {"EMP ID": "E001", "Name": "Ada Park"},
  {"EMP ID": "E003", "Name": "Cam Diaz"},
  {"EMP ID": "E001", "Name": "Ada Park"},
  {"EMP ID": "E002", "Name": "Ben Ito"},
  {"EMP ID": "E004", "Name": "Dee Lin"}
]`

func newTestCore(t *testing.T) *Core {
	t.Helper()
	conf := DefaultConfig()
	conf.Version = "test"
	core, err := NewCore(context.Background(), conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = core.Close(context.Background()) })
	return core
}

func doRequest(core *Core, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	core.ServeHTTP(w, req)
	return w
}

func TestStatusEndpoint(t *testing.T) {
	core := newTestCore(t)
	w := doRequest(core, "GET", "/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestVersionEndpoint(t *testing.T) {
	core := newTestCore(t)
	w := doRequest(core, "GET", "/version", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test", resp["version"])
}

func TestMetricsEndpoint(t *testing.T) {
	core := newTestCore(t)
	w := doRequest(core, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestCheckHandler(t *testing.T) {
	core := newTestCore(t)
	w := doRequest(core, "POST", "/api/check", dupRosterBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	var resp checkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "EMP ID", resp.KeyField)
	assert.Equal(t, 7, resp.TotalRecords)
	assert.Equal(t, 4, resp.DistinctValues)
	assert.True(t, resp.HasDuplicates)
	require.Len(t, resp.Duplicates, 2)
	assert.Equal(t, duplicateEntry{Value: "E001", Count: 3}, resp.Duplicates[0])
	assert.Equal(t, duplicateEntry{Value: "E002", Count: 2}, resp.Duplicates[1])
}

func TestCheckHandlerCustomParams(t *testing.T) {
	core := newTestCore(t)
	w := doRequest(core, "POST", "/api/check?key=Name&min=3", dupRosterBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp checkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Name", resp.KeyField)
	assert.Equal(t, 3, resp.MinCount)
	require.Len(t, resp.Duplicates, 1)
	assert.Equal(t, "Ada Park", resp.Duplicates[0].Value)
}

func TestCheckHandlerCachesResponses(t *testing.T) {
	core := newTestCore(t)

	doRequest(core, "POST", "/api/check", dupRosterBody)
	assert.Equal(t, 1, core.cache.Len())

	doRequest(core, "POST", "/api/check", dupRosterBody)
	assert.Equal(t, 1, core.cache.Len(), "identical request should reuse the cached result")

	// Different params miss the cache.
	doRequest(core, "POST", "/api/check?min=3", dupRosterBody)
	assert.Equal(t, 2, core.cache.Len())
}

func TestCheckHandlerEmptyBody(t *testing.T) {
	core := newTestCore(t)
	w := doRequest(core, "POST", "/api/check", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "request body")
}

func TestCheckHandlerInvalidMin(t *testing.T) {
	core := newTestCore(t)
	w := doRequest(core, "POST", "/api/check?min=zero", dupRosterBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckHandlerMalformedBody(t *testing.T) {
	core := newTestCore(t)
	w := doRequest(core, "POST", "/api/check", `{"not": "an array"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileHandler(t *testing.T) {
	core := newTestCore(t)
	w := doRequest(core, "POST", "/api/profile", dupRosterBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp profileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.RecordCount)
	require.Len(t, resp.Fields, 2)
	assert.Equal(t, "EMP ID", resp.Fields[0].Name)
	assert.Equal(t, 3, resp.Fields[0].MaxCount)
}

func TestDedupeHandler(t *testing.T) {
	core := newTestCore(t)
	w := doRequest(core, "POST", "/api/dedupe", dupRosterBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dedupeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "keep-first", resp.Strategy)
	assert.Equal(t, 7, resp.TotalRecords)
	assert.Equal(t, 3, resp.RemovedCount)
	assert.Len(t, resp.Records, 4)
}

func TestDedupeHandlerFailStrategy(t *testing.T) {
	core := newTestCore(t)
	w := doRequest(core, "POST", "/api/dedupe?strategy=fail", dupRosterBody)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDedupeHandlerInvalidStrategy(t *testing.T) {
	core := newTestCore(t)
	w := doRequest(core, "POST", "/api/dedupe?strategy=keep-best", dupRosterBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryHandlerWithoutStore(t *testing.T) {
	core := newTestCore(t)
	w := doRequest(core, "GET", "/api/history", "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestRequestIDPropagated(t *testing.T) {
	core := newTestCore(t)
	req := httptest.NewRequest("POST", "/api/check", strings.NewReader(dupRosterBody))
	req.Header.Set(RequestIDHeader, "fixed-id")
	w := httptest.NewRecorder()
	core.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get(RequestIDHeader))
}
