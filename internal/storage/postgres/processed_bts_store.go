package postgres

import (
	"context"

	"tradebot-pipeline/internal/domain"
	"tradebot-pipeline/internal/storage"
)

// ProcessedBTSStore writes processed.processed_bts.
type ProcessedBTSStore struct {
	pool   *Pool
	schema string
}

// NewProcessedBTSStore creates the store on the processed-side pool.
func NewProcessedBTSStore(pool *Pool, schema string) *ProcessedBTSStore {
	return &ProcessedBTSStore{pool: pool, schema: schema}
}

// Compile-time interface check.
var _ storage.ProcessedBTSStore = (*ProcessedBTSStore)(nil)

var processedBTSColumns = []string{
	"tokenaddress",
	"buy_amount", "buy_price", "buy_walletaddress", "buy_timestamp", "buy_amountindollars",
	"partial_sell_amount", "partial_sell_price", "partial_sell_walletaddress",
	"partial_sell_amountindollars", "partial_sell_timestamp", "partial_sell_botid",
	"sell_amount", "sell_price", "sell_walletaddress", "sell_timestamp", "sell_amountindollars",
	"dollarprofit", "profit", "win_loss", "symbol", "name", "btscoininfoid", "row_hash",
}

// UpsertBatch inserts paired trades in one statement; trades whose
// row_hash already exists are skipped.
func (s *ProcessedBTSStore) UpsertBatch(ctx context.Context, rows []*domain.PairedTrade) (int64, error) {
	values := make([][]any, len(rows))
	for i, r := range rows {
		values[i] = []any{
			r.TokenAddress,
			r.BuyAmount, r.BuyPrice, r.BuyWalletAddress, r.BuyTimestamp, r.BuyAmountInDollars,
			r.PartialSellAmount, r.PartialSellPrice, r.PartialSellWalletAddress,
			r.PartialSellAmountInDollars, r.PartialSellTimestamp, r.PartialSellBotID,
			r.SellAmount, r.SellPrice, r.SellWalletAddress, r.SellTimestamp, r.SellAmountInDollars,
			r.DollarProfit, r.Profit, r.WinLoss, r.Symbol, r.Name, r.BTSCoinInfoID, r.RowHash,
		}
	}
	return insertBatch(ctx, s.pool, qualify(s.schema, "processed_bts"), processedBTSColumns, values)
}
