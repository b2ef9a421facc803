package postgres

import (
	"context"

	"tradebot-pipeline/internal/domain"
	"tradebot-pipeline/internal/storage"
)

// ProcessedArbStore writes processed.processed_arb.
type ProcessedArbStore struct {
	pool   *Pool
	schema string
}

// NewProcessedArbStore creates the store on the processed-side pool.
func NewProcessedArbStore(pool *Pool, schema string) *ProcessedArbStore {
	return &ProcessedArbStore{pool: pool, schema: schema}
}

// Compile-time interface check.
var _ storage.ProcessedArbStore = (*ProcessedArbStore)(nil)

var processedArbColumns = []string{
	"datetraded", "tokenpair", "buyexchange", "sellexchange",
	"buyvolume", "buyvwap", "sellvolume", "sellvwap",
	"profit", "profitpercentage", "win_loss", "botid", "row_hash",
}

// UpsertBatch inserts rows in one statement; rows whose row_hash
// already exists are skipped. created_at is filled by the table
// default and deliberately absent from the fingerprint.
func (s *ProcessedArbStore) UpsertBatch(ctx context.Context, rows []*domain.ProcessedArb) (int64, error) {
	values := make([][]any, len(rows))
	for i, r := range rows {
		values[i] = []any{
			r.DateTraded, r.TokenPair, r.BuyExchange, r.SellExchange,
			r.BuyVolume, r.BuyVwap, r.SellVolume, r.SellVwap,
			r.Profit, r.ProfitPercentage, r.WinLoss, r.BotID, r.RowHash,
		}
	}
	return insertBatch(ctx, s.pool, qualify(s.schema, "processed_arb"), processedArbColumns, values)
}
