// Package history persists roster scan results to PostgreSQL so duplicate
// counts can be tracked across runs.
package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/segmentio/ksuid"

	"github.com/erraggy/rostertools/checker"
)

// schema is applied on Open. The table is append-only; scans are never
// updated in place.
const schema = `CREATE TABLE IF NOT EXISTS roster_scans (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	key_field TEXT NOT NULL,
	record_count BIGINT NOT NULL,
	distinct_values BIGINT NOT NULL,
	duplicate_values BIGINT NOT NULL,
	duplicate_records BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// ScanRecord is one persisted roster scan.
type ScanRecord struct {
	// ID is a ksuid assigned when the scan is recorded
	ID string
	// Source is the roster path or URL that was scanned
	Source string
	// KeyField is the identifier column the scan grouped on
	KeyField string
	// RecordCount is the number of records in the roster
	RecordCount int
	// DistinctValues is the number of distinct identifier values
	DistinctValues int
	// DuplicateValues is the number of identifiers that reached the
	// duplicate threshold
	DuplicateValues int
	// DuplicateRecords is the number of records involved in duplicates
	DuplicateRecords int
	// CreatedAt is when the scan was recorded
	CreatedAt time.Time
}

// Store persists scan records over a single PostgreSQL connection.
// The connection is not thread-safe; a mutex guards every use.
type Store struct {
	mu   sync.Mutex
	conn *pgx.Conn
}

// Open connects to PostgreSQL at the given URI and ensures the
// roster_scans table exists.
func Open(ctx context.Context, databaseURI string) (*Store, error) {
	conn, err := pgx.Connect(ctx, databaseURI)
	if err != nil {
		return nil, fmt.Errorf("history: failed to connect to database: %w", err)
	}
	if _, err := conn.Exec(ctx, schema); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("history: failed to ensure roster_scans table: %w", err)
	}
	return &Store{conn: conn}, nil
}

// RecordScan persists the outcome of a duplicate check and returns the stored
// record with its assigned ID and timestamp.
func (s *Store) RecordScan(ctx context.Context, result *checker.CheckResult) (*ScanRecord, error) {
	if result == nil {
		return nil, fmt.Errorf("history: result cannot be nil")
	}

	rec := &ScanRecord{
		ID:               ksuid.New().String(),
		Source:           result.SourcePath,
		KeyField:         result.KeyField,
		RecordCount:      result.TotalRecords,
		DistinctValues:   result.DistinctValues,
		DuplicateValues:  len(result.Duplicates),
		DuplicateRecords: result.DuplicateRecords(),
		CreatedAt:        time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.conn.Exec(ctx,
		`INSERT INTO roster_scans
			(id, source, key_field, record_count, distinct_values, duplicate_values, duplicate_records, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.Source, rec.KeyField, rec.RecordCount,
		rec.DistinctValues, rec.DuplicateValues, rec.DuplicateRecords, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("history: failed to insert scan: %w", err)
	}
	return rec, nil
}

// ListScans returns the most recent scans, newest first.
// A non-positive limit returns all scans.
func (s *Store) ListScans(ctx context.Context, limit int) ([]ScanRecord, error) {
	// Column order must match the fields of ScanRecord.
	query := `SELECT id, source, key_field, record_count, distinct_values, duplicate_values, duplicate_records, created_at
		FROM roster_scans ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: failed to query scans: %w", err)
	}
	scans, err := pgx.CollectRows(rows, pgx.RowToStructByPos[ScanRecord])
	if err != nil {
		return nil, fmt.Errorf("history: failed to collect scans: %w", err)
	}
	return scans, nil
}

// Close releases the database connection.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.Close(ctx); err != nil {
		return fmt.Errorf("history: failed to close connection: %w", err)
	}
	return nil
}
