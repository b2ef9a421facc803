package storage

import (
	"context"

	"tradebot-pipeline/internal/domain"
)

// TrackerStore persists per-table pipeline progress.
type TrackerStore interface {
	// Watermark returns the highest source id committed for a
	// destination table, or 0 when the table was never processed.
	Watermark(ctx context.Context, table string) (int64, error)

	// Advance upserts the watermark for a table. The value is set
	// unconditionally; callers are expected to pass monotonically
	// non-decreasing ids.
	Advance(ctx context.Context, table string, id int64) error
}

// RawStore reads raw source tables in ascending-id pages above a
// watermark. An empty result means the table is exhausted.
type RawStore interface {
	FetchOpportunities(ctx context.Context, afterID int64, limit int) ([]*domain.Opportunity, error)
	FetchCoinInfo(ctx context.Context, afterID int64, limit int) ([]*domain.CoinInfo, error)
	FetchArbTransactions(ctx context.Context, afterID int64, limit int) ([]*domain.ArbTransaction, error)
	FetchBTSTransactions(ctx context.Context, afterID int64, limit int) ([]*domain.BTSTransaction, error)
}

// CleanOpportunityStore writes processed.clean_arb_opportunity.
type CleanOpportunityStore interface {
	// UpsertBatch inserts rows in one transaction, skipping rows whose
	// row_hash already exists. Returns the number actually inserted.
	UpsertBatch(ctx context.Context, rows []*domain.CleanOpportunity) (int64, error)
}

// CleanCoinInfoStore writes processed.clean_bts_coin_info.
type CleanCoinInfoStore interface {
	UpsertBatch(ctx context.Context, rows []*domain.CleanCoinInfo) (int64, error)
}

// ProcessedArbStore writes processed.processed_arb.
type ProcessedArbStore interface {
	UpsertBatch(ctx context.Context, rows []*domain.ProcessedArb) (int64, error)
}

// ProcessedBTSStore writes processed.processed_bts.
type ProcessedBTSStore interface {
	UpsertBatch(ctx context.Context, rows []*domain.PairedTrade) (int64, error)
}
