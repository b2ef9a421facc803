package postgres

import (
	"context"
	"fmt"

	"tradebot-pipeline/internal/domain"
	"tradebot-pipeline/internal/storage"
)

// RawStore reads the bot-owned source tables. It is read-only: the
// source side is append-only from the pipeline's perspective.
//
// Numeric columns in arbopportunity and btscoininfo are selected as
// text because the bot writes empty strings into them; the cleaners
// normalize those to NULL before the typed destination insert.
type RawStore struct {
	pool *Pool
}

// NewRawStore creates a RawStore on the raw-database pool.
func NewRawStore(pool *Pool) *RawStore {
	return &RawStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RawStore = (*RawStore)(nil)

// FetchOpportunities returns up to limit arbopportunity rows with
// id > afterID in ascending id order.
func (s *RawStore) FetchOpportunities(ctx context.Context, afterID int64, limit int) ([]*domain.Opportunity, error) {
	query := `
		SELECT id, tokenaddress, buyexchange, sellexchange,
		       buyprice::text, sellprice::text, pricedifference::text,
		       profitpercentage::text, volume::text, liquidity::text,
		       timestamp, status, row_hash
		FROM arbopportunity
		WHERE id > $1
		ORDER BY id ASC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch arbopportunity batch: %w", err)
	}
	defer rows.Close()

	var out []*domain.Opportunity
	for rows.Next() {
		var o domain.Opportunity
		err := rows.Scan(
			&o.ID, &o.TokenAddress, &o.BuyExchange, &o.SellExchange,
			&o.BuyPrice, &o.SellPrice, &o.PriceDifference,
			&o.ProfitPercentage, &o.Volume, &o.Liquidity,
			&o.Timestamp, &o.Status, &o.RowHash,
		)
		if err != nil {
			return nil, fmt.Errorf("scan arbopportunity row: %w", err)
		}
		out = append(out, &o)
	}

	return out, rows.Err()
}

// FetchCoinInfo returns up to limit btscoininfo rows with id > afterID
// in ascending id order.
func (s *RawStore) FetchCoinInfo(ctx context.Context, afterID int64, limit int) ([]*domain.CoinInfo, error) {
	query := `
		SELECT id, tokenaddress, coinprice::text, devpubkey,
		       devcapital::text, devholderpercentage::text,
		       tokensupply::text, totalholderssupply::text, isbundle,
		       liquiditytomcapratio::text, reservesinsol::text,
		       datecaptured, row_hash
		FROM btscoininfo
		WHERE id > $1
		ORDER BY id ASC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch btscoininfo batch: %w", err)
	}
	defer rows.Close()

	var out []*domain.CoinInfo
	for rows.Next() {
		var c domain.CoinInfo
		err := rows.Scan(
			&c.ID, &c.TokenAddress, &c.CoinPrice, &c.DevPubkey,
			&c.DevCapital, &c.DevHolderPercentage,
			&c.TokenSupply, &c.TotalHoldersSupply, &c.IsBundle,
			&c.LiquidityToMcapRatio, &c.ReservesInSOL,
			&c.DateCaptured, &c.RowHash,
		)
		if err != nil {
			return nil, fmt.Errorf("scan btscoininfo row: %w", err)
		}
		out = append(out, &c)
	}

	return out, rows.Err()
}

// FetchArbTransactions returns up to limit arbtransaction rows with
// id > afterID in ascending id order. Missing volume/vwap/profit
// figures read as zero, matching how the bot's own reports treat them.
func (s *RawStore) FetchArbTransactions(ctx context.Context, afterID int64, limit int) ([]*domain.ArbTransaction, error) {
	query := `
		SELECT id, datetraded, tokenpair, buyexchange, sellexchange,
		       COALESCE(buyvolume, 0)::float8,
		       COALESCE(buyvwap, 0)::float8,
		       COALESCE(sellvolume, 0)::float8,
		       COALESCE(sellvwap, 0)::float8,
		       COALESCE(idealprofit, 0)::float8,
		       botid
		FROM arbtransaction
		WHERE id > $1
		ORDER BY id ASC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch arbtransaction batch: %w", err)
	}
	defer rows.Close()

	var out []*domain.ArbTransaction
	for rows.Next() {
		var tx domain.ArbTransaction
		err := rows.Scan(
			&tx.ID, &tx.DateTraded, &tx.TokenPair, &tx.BuyExchange,
			&tx.SellExchange, &tx.BuyVolume, &tx.BuyVwap,
			&tx.SellVolume, &tx.SellVwap, &tx.IdealProfit, &tx.BotID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan arbtransaction row: %w", err)
		}
		out = append(out, &tx)
	}

	return out, rows.Err()
}

// FetchBTSTransactions returns up to limit btstransaction rows with
// id > afterID in ascending id order.
func (s *RawStore) FetchBTSTransactions(ctx context.Context, afterID int64, limit int) ([]*domain.BTSTransaction, error) {
	query := `
		SELECT id, tokenaddress, COALESCE(type, ''),
		       COALESCE(amount, 0)::float8,
		       COALESCE(price, 0)::float8,
		       COALESCE(amountindollars, 0)::float8,
		       walletaddress, timestamp, btscoininfoid
		FROM btstransaction
		WHERE id > $1
		ORDER BY id ASC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch btstransaction batch: %w", err)
	}
	defer rows.Close()

	var out []*domain.BTSTransaction
	for rows.Next() {
		var tx domain.BTSTransaction
		err := rows.Scan(
			&tx.ID, &tx.TokenAddress, &tx.Type, &tx.Amount,
			&tx.Price, &tx.AmountInDollars, &tx.WalletAddress,
			&tx.Timestamp, &tx.BTSCoinInfoID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan btstransaction row: %w", err)
		}
		out = append(out, &tx)
	}

	return out, rows.Err()
}
