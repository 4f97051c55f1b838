package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"dart_extractor/pkg/core/dart"
)

// ExtractionStore records the outcome of extraction runs, keyed by source
// path and run ID. With a nil pool every call is a no-op, so callers never
// branch on whether persistence is configured.
type ExtractionStore struct {
	pool *pgxpool.Pool
}

// NewExtractionStore wraps a connection pool; pool may be nil.
func NewExtractionStore(pool *pgxpool.Pool) *ExtractionStore {
	return &ExtractionStore{pool: pool}
}

// StoredTable is the JSON shape persisted per successful extraction.
type StoredTable struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// SaveResult upserts one batch result. Failures are stored with the error
// text and a null table, so a run's misses stay auditable.
func (s *ExtractionStore) SaveResult(ctx context.Context, runID string, res dart.BatchResult) error {
	if s.pool == nil {
		return nil
	}

	var tableJSON []byte
	errText := ""
	if res.Err != nil {
		errText = res.Err.Error()
	} else {
		data, err := json.Marshal(StoredTable{Header: res.Table.Header, Rows: res.Table.Rows})
		if err != nil {
			return fmt.Errorf("marshal table for %s: %w", res.Source, err)
		}
		tableJSON = data
	}

	query := `
		INSERT INTO income_statement_extractions (
			run_id, source, table_data, error, extracted_at
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (source)
		DO UPDATE SET
			run_id = EXCLUDED.run_id,
			table_data = EXCLUDED.table_data,
			error = EXCLUDED.error,
			extracted_at = EXCLUDED.extracted_at
	`
	if _, err := s.pool.Exec(ctx, query, runID, res.Source, tableJSON, errText, time.Now()); err != nil {
		return fmt.Errorf("save extraction for %s: %w", res.Source, err)
	}
	return nil
}

// Get loads the stored table for a source, or nil when absent or failed.
func (s *ExtractionStore) Get(ctx context.Context, source string) (*dart.Table, error) {
	if s.pool == nil {
		return nil, nil
	}

	query := `SELECT table_data FROM income_statement_extractions WHERE source = $1 LIMIT 1`
	var tableJSON []byte
	if err := s.pool.QueryRow(ctx, query, source).Scan(&tableJSON); err != nil {
		return nil, nil // miss
	}
	if len(tableJSON) == 0 {
		return nil, nil // stored failure
	}
	var stored StoredTable
	if err := json.Unmarshal(tableJSON, &stored); err != nil {
		return nil, fmt.Errorf("unmarshal stored table for %s: %w", source, err)
	}
	return &dart.Table{Header: stored.Header, Rows: stored.Rows}, nil
}
