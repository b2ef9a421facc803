package postgres

import (
	"context"

	"tradebot-pipeline/internal/domain"
	"tradebot-pipeline/internal/storage"
)

// CleanOpportunityStore writes processed.clean_arb_opportunity.
type CleanOpportunityStore struct {
	pool   *Pool
	schema string
}

// NewCleanOpportunityStore creates the store on the processed-side pool.
func NewCleanOpportunityStore(pool *Pool, schema string) *CleanOpportunityStore {
	return &CleanOpportunityStore{pool: pool, schema: schema}
}

// Compile-time interface check.
var _ storage.CleanOpportunityStore = (*CleanOpportunityStore)(nil)

var cleanOpportunityColumns = []string{
	"id", "tokenaddress", "buyexchange", "sellexchange",
	"buyprice", "sellprice", "pricedifference", "profitpercentage",
	"volume", "liquidity", "timestamp", "status", "row_hash",
}

// UpsertBatch inserts rows in one statement; rows whose row_hash
// already exists are skipped.
func (s *CleanOpportunityStore) UpsertBatch(ctx context.Context, rows []*domain.CleanOpportunity) (int64, error) {
	values := make([][]any, len(rows))
	for i, r := range rows {
		values[i] = []any{
			r.ID, r.TokenAddress, r.BuyExchange, r.SellExchange,
			r.BuyPrice, r.SellPrice, r.PriceDifference, r.ProfitPercentage,
			r.Volume, r.Liquidity, r.Timestamp, r.Status, r.RowHash,
		}
	}
	return insertBatch(ctx, s.pool, qualify(s.schema, "clean_arb_opportunity"), cleanOpportunityColumns, values)
}
