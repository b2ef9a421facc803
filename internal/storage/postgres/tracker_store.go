package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tradebot-pipeline/internal/storage"
)

// TrackerStore is a PostgreSQL implementation of storage.TrackerStore
// backed by <schema>.pipeline_tracker. One row per destination table.
type TrackerStore struct {
	pool   *Pool
	schema string
}

// NewTrackerStore creates a new PostgreSQL tracker store.
func NewTrackerStore(pool *Pool, schema string) *TrackerStore {
	return &TrackerStore{pool: pool, schema: schema}
}

// Compile-time interface check.
var _ storage.TrackerStore = (*TrackerStore)(nil)

// Watermark returns the last committed source id for a table.
// Returns storage.ErrNotFound when the table has never been tracked.
func (s *TrackerStore) Watermark(ctx context.Context, table string) (int64, error) {
	if table == "" {
		return 0, storage.ErrInvalidInput
	}

	query := fmt.Sprintf(`
		SELECT last_processed_id FROM %s.pipeline_tracker
		WHERE table_name = $1
	`, pgx.Identifier{s.schema}.Sanitize())

	var id int64
	err := s.pool.QueryRow(ctx, query, table).Scan(&id)
	if err != nil {
		if isNotFoundError(err) {
			return 0, storage.ErrNotFound
		}
		return 0, fmt.Errorf("get watermark for %s: %w", table, err)
	}

	return id, nil
}

// Advance upserts the watermark for a table. The id is written
// unconditionally; monotonicity is the caller's contract.
func (s *TrackerStore) Advance(ctx context.Context, table string, id int64) error {
	if table == "" {
		return storage.ErrInvalidInput
	}

	query := fmt.Sprintf(`
		INSERT INTO %s.pipeline_tracker (table_name, last_processed_id, last_updated)
		VALUES ($1, $2, NOW())
		ON CONFLICT (table_name) DO UPDATE
		SET last_processed_id = EXCLUDED.last_processed_id,
		    last_updated = NOW()
	`, pgx.Identifier{s.schema}.Sanitize())

	if _, err := s.pool.Exec(ctx, query, table, id); err != nil {
		return fmt.Errorf("advance watermark for %s: %w", table, err)
	}

	return nil
}
