package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/erraggy/rostertools/checker"
	"github.com/erraggy/rostertools/dedupe"
	"github.com/erraggy/rostertools/parser"
	"github.com/erraggy/rostertools/profiler"
)

// maxRequestBody caps roster uploads at 25 MiB, matching the parser default.
const maxRequestBody = 25 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func respond(c *Core, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		c.requestLogger(r).Error("Failed to encode response", zap.Error(err))
	}
}

func respondError(c *Core, w http.ResponseWriter, r *http.Request, status int, err error) {
	c.requestLogger(r).Warn("Request failed", zap.Int("status", status), zap.Error(err))
	respond(c, w, r, status, errorResponse{Error: err.Error()})
}

func readRosterBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("request body must contain a roster JSON array")
	}
	if len(body) > maxRequestBody {
		return nil, fmt.Errorf("request body exceeds %d bytes", maxRequestBody)
	}
	return body, nil
}

type checkResponse struct {
	KeyField       string           `json:"key_field"`
	MinCount       int              `json:"min_count"`
	TotalRecords   int              `json:"total_records"`
	KeyedRecords   int              `json:"keyed_records"`
	MissingKey     int              `json:"missing_key,omitempty"`
	DistinctValues int              `json:"distinct_values"`
	HasDuplicates  bool             `json:"has_duplicates"`
	Duplicates     []duplicateEntry `json:"duplicates,omitempty"`
}

type duplicateEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

func handleCheck(c *Core, w http.ResponseWriter, r *http.Request) {
	body, err := readRosterBody(r)
	if err != nil {
		respondError(c, w, r, http.StatusBadRequest, err)
		return
	}

	keyField := r.URL.Query().Get("key")
	if keyField == "" {
		keyField = c.conf.DefaultKeyField
	}
	minCount := 2
	if v := r.URL.Query().Get("min"); v != "" {
		minCount, err = strconv.Atoi(v)
		if err != nil || minCount < 1 {
			respondError(c, w, r, http.StatusBadRequest, fmt.Errorf("invalid min parameter %q", v))
			return
		}
	}

	// The same roster body checked with the same parameters yields the same
	// result, so cache on a digest of all three.
	sum := sha256.Sum256(body)
	cacheKey := fmt.Sprintf("%s:%s:%d", hex.EncodeToString(sum[:]), keyField, minCount)

	result, ok := c.cache.Get(cacheKey)
	if ok {
		c.metrics.cacheHits.Inc()
	} else {
		c.metrics.cacheMisses.Inc()

		parseResult, err := parser.ParseWithOptions(
			parser.WithBytes(body),
			parser.WithSourceName("api"),
		)
		if err != nil {
			respondError(c, w, r, http.StatusBadRequest, err)
			return
		}

		result, err = checker.CheckWithOptions(
			checker.WithParsed(*parseResult),
			checker.WithKeyField(keyField),
			checker.WithMinCount(minCount),
		)
		if err != nil {
			respondError(c, w, r, http.StatusBadRequest, err)
			return
		}
		c.cache.Add(cacheKey, result)

		c.metrics.duplicatesFound.Add(float64(len(result.Duplicates)))
		if c.store != nil {
			if _, err := c.store.RecordScan(r.Context(), result); err != nil {
				c.requestLogger(r).Error("Failed to record scan", zap.Error(err))
			}
		}
	}

	resp := checkResponse{
		KeyField:       result.KeyField,
		MinCount:       result.MinCount,
		TotalRecords:   result.TotalRecords,
		KeyedRecords:   result.KeyedRecords,
		MissingKey:     result.MissingKey,
		DistinctValues: result.DistinctValues,
		HasDuplicates:  result.HasDuplicates(),
	}
	for _, d := range result.Duplicates {
		resp.Duplicates = append(resp.Duplicates, duplicateEntry{Value: d.Value, Count: d.Count})
	}
	respond(c, w, r, http.StatusOK, resp)
}

type profileResponse struct {
	RecordCount int                 `json:"record_count"`
	Fields      []profileFieldEntry `json:"fields"`
}

type profileFieldEntry struct {
	Name     string   `json:"name"`
	Present  int      `json:"present"`
	Missing  int      `json:"missing,omitempty"`
	Distinct int      `json:"distinct"`
	MaxCount int      `json:"max_count"`
	TopValue string   `json:"top_value,omitempty"`
	Type     string   `json:"type"`
	Samples  []string `json:"samples,omitempty"`
}

func handleProfile(c *Core, w http.ResponseWriter, r *http.Request) {
	body, err := readRosterBody(r)
	if err != nil {
		respondError(c, w, r, http.StatusBadRequest, err)
		return
	}

	parseResult, err := parser.ParseWithOptions(
		parser.WithBytes(body),
		parser.WithSourceName("api"),
	)
	if err != nil {
		respondError(c, w, r, http.StatusBadRequest, err)
		return
	}

	profile := profiler.New().Profile(parseResult)
	resp := profileResponse{
		RecordCount: profile.RecordCount,
		Fields:      make([]profileFieldEntry, 0, len(profile.Fields)),
	}
	for _, fp := range profile.Fields {
		resp.Fields = append(resp.Fields, profileFieldEntry{
			Name:     fp.Name,
			Present:  fp.Present,
			Missing:  fp.Missing,
			Distinct: fp.Distinct,
			MaxCount: fp.MaxCount,
			TopValue: fp.TopValue,
			Type:     string(fp.Type),
			Samples:  fp.Samples,
		})
	}
	respond(c, w, r, http.StatusOK, resp)
}

type dedupeResponse struct {
	KeyField        string          `json:"key_field"`
	Strategy        string          `json:"strategy"`
	TotalRecords    int             `json:"total_records"`
	RemovedCount    int             `json:"removed_count"`
	DuplicateValues int             `json:"duplicate_values"`
	Records         []parser.Record `json:"records"`
}

func handleDedupe(c *Core, w http.ResponseWriter, r *http.Request) {
	body, err := readRosterBody(r)
	if err != nil {
		respondError(c, w, r, http.StatusBadRequest, err)
		return
	}

	keyField := r.URL.Query().Get("key")
	if keyField == "" {
		keyField = c.conf.DefaultKeyField
	}
	strategy := dedupe.StrategyKeepFirst
	if v := r.URL.Query().Get("strategy"); v != "" {
		if !dedupe.IsValidStrategy(v) {
			respondError(c, w, r, http.StatusBadRequest,
				fmt.Errorf("invalid strategy %q (valid: %v)", v, dedupe.ValidStrategies()))
			return
		}
		strategy = dedupe.Strategy(v)
	}

	parseResult, err := parser.ParseWithOptions(
		parser.WithBytes(body),
		parser.WithSourceName("api"),
	)
	if err != nil {
		respondError(c, w, r, http.StatusBadRequest, err)
		return
	}

	result, err := dedupe.DedupeWithOptions(
		dedupe.WithParsed(*parseResult),
		dedupe.WithKeyField(keyField),
		dedupe.WithStrategy(strategy),
	)
	if err != nil {
		// The fail strategy reports duplicates as a conflict, not a bad request.
		respondError(c, w, r, http.StatusConflict, err)
		return
	}

	respond(c, w, r, http.StatusOK, dedupeResponse{
		KeyField:        result.KeyField,
		Strategy:        string(result.Strategy),
		TotalRecords:    result.TotalRecords,
		RemovedCount:    result.RemovedCount(),
		DuplicateValues: result.DuplicateValues,
		Records:         result.Records,
	})
}

type historyResponse struct {
	Scans []historyScanEntry `json:"scans"`
}

type historyScanEntry struct {
	ID               string `json:"id"`
	Source           string `json:"source"`
	KeyField         string `json:"key_field"`
	RecordCount      int    `json:"record_count"`
	DistinctValues   int    `json:"distinct_values"`
	DuplicateValues  int    `json:"duplicate_values"`
	DuplicateRecords int    `json:"duplicate_records"`
	CreatedAt        string `json:"created_at"`
}

func handleHistory(c *Core, w http.ResponseWriter, r *http.Request) {
	if c.store == nil {
		respondError(c, w, r, http.StatusNotImplemented,
			fmt.Errorf("scan history is not configured; start the daemon with -database-uri"))
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		var err error
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 {
			respondError(c, w, r, http.StatusBadRequest, fmt.Errorf("invalid limit parameter %q", v))
			return
		}
	}

	scans, err := c.store.ListScans(r.Context(), limit)
	if err != nil {
		respondError(c, w, r, http.StatusInternalServerError, err)
		return
	}

	resp := historyResponse{Scans: make([]historyScanEntry, 0, len(scans))}
	for _, s := range scans {
		resp.Scans = append(resp.Scans, historyScanEntry{
			ID:               s.ID,
			Source:           s.Source,
			KeyField:         s.KeyField,
			RecordCount:      s.RecordCount,
			DistinctValues:   s.DistinctValues,
			DuplicateValues:  s.DuplicateValues,
			DuplicateRecords: s.DuplicateRecords,
			CreatedAt:        s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	respond(c, w, r, http.StatusOK, resp)
}
