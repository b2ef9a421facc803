package postgres

import (
	"context"

	"tradebot-pipeline/internal/domain"
	"tradebot-pipeline/internal/storage"
)

// CleanCoinInfoStore writes processed.clean_bts_coin_info.
type CleanCoinInfoStore struct {
	pool   *Pool
	schema string
}

// NewCleanCoinInfoStore creates the store on the processed-side pool.
func NewCleanCoinInfoStore(pool *Pool, schema string) *CleanCoinInfoStore {
	return &CleanCoinInfoStore{pool: pool, schema: schema}
}

// Compile-time interface check.
var _ storage.CleanCoinInfoStore = (*CleanCoinInfoStore)(nil)

var cleanCoinInfoColumns = []string{
	"id", "tokenaddress", "coinprice", "devpubkey", "devcapital",
	"devholderpercentage", "tokensupply", "totalholderssupply",
	"isbundle", "liquiditytomcapratio", "reservesinsol",
	"datecaptured", "row_hash",
}

// UpsertBatch inserts rows in one statement; rows whose row_hash
// already exists are skipped. Because datecaptured never enters the
// fingerprint, a re-capture of a known coin is one of those skips.
func (s *CleanCoinInfoStore) UpsertBatch(ctx context.Context, rows []*domain.CleanCoinInfo) (int64, error) {
	values := make([][]any, len(rows))
	for i, r := range rows {
		values[i] = []any{
			r.ID, r.TokenAddress, r.CoinPrice, r.DevPubkey, r.DevCapital,
			r.DevHolderPercentage, r.TokenSupply, r.TotalHoldersSupply,
			r.IsBundle, r.LiquidityToMcapRatio, r.ReservesInSOL,
			r.DateCaptured, r.RowHash,
		}
	}
	return insertBatch(ctx, s.pool, qualify(s.schema, "clean_bts_coin_info"), cleanCoinInfoColumns, values)
}
