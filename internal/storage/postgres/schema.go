package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Schema owns destination DDL. Every statement is idempotent
// (IF NOT EXISTS) so concurrent pipeline invocations may race on
// creation; the benign duplicate errors that race can still produce
// are surfaced for the caller's retry policy to absorb.
type Schema struct {
	pool *Pool
	name string
}

// NewSchema creates a Schema manager for the named destination schema.
func NewSchema(pool *Pool, name string) *Schema {
	return &Schema{pool: pool, name: name}
}

// Name returns the destination schema name.
func (s *Schema) Name() string {
	return s.name
}

// Ensure creates the schema, the pipeline tracker and all destination
// tables. Safe to call on every run.
func (s *Schema) Ensure(ctx context.Context) error {
	ident := pgx.Identifier{s.name}.Sanitize()

	statements := []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, ident),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.pipeline_tracker (
				table_name VARCHAR(100) PRIMARY KEY,
				last_processed_id BIGINT NOT NULL DEFAULT 0,
				last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, ident),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.clean_arb_opportunity (
				id BIGINT PRIMARY KEY,
				tokenaddress VARCHAR(255),
				buyexchange VARCHAR(100),
				sellexchange VARCHAR(100),
				buyprice DECIMAL,
				sellprice DECIMAL,
				pricedifference DECIMAL,
				profitpercentage DECIMAL,
				volume DECIMAL,
				liquidity DECIMAL,
				timestamp TIMESTAMPTZ,
				status VARCHAR(50),
				row_hash VARCHAR(64) UNIQUE
			)`, ident),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.clean_bts_coin_info (
				id BIGINT PRIMARY KEY,
				tokenaddress VARCHAR(255),
				coinprice DECIMAL,
				devpubkey VARCHAR(255),
				devcapital DECIMAL,
				devholderpercentage DECIMAL,
				tokensupply DECIMAL,
				totalholderssupply DECIMAL,
				isbundle BOOLEAN,
				liquiditytomcapratio DECIMAL,
				reservesinsol DECIMAL,
				datecaptured TIMESTAMPTZ,
				row_hash VARCHAR(64) UNIQUE
			)`, ident),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.processed_arb (
				id BIGSERIAL PRIMARY KEY,
				datetraded TIMESTAMPTZ,
				tokenpair VARCHAR(100),
				buyexchange VARCHAR(100),
				sellexchange VARCHAR(100),
				buyvolume DECIMAL,
				buyvwap DECIMAL,
				sellvolume DECIMAL,
				sellvwap DECIMAL,
				profit DECIMAL,
				profitpercentage DECIMAL,
				win_loss VARCHAR(10),
				botid BIGINT,
				row_hash VARCHAR(64) UNIQUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, ident),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.processed_bts (
				id BIGSERIAL PRIMARY KEY,
				tokenaddress VARCHAR(255),
				buy_amount DECIMAL,
				buy_price DECIMAL,
				buy_walletaddress VARCHAR(255),
				buy_timestamp TIMESTAMPTZ,
				buy_amountindollars DECIMAL,
				partial_sell_amount DECIMAL,
				partial_sell_price DECIMAL,
				partial_sell_walletaddress VARCHAR(255),
				partial_sell_amountindollars DECIMAL,
				partial_sell_timestamp TIMESTAMPTZ,
				partial_sell_botid BIGINT,
				sell_amount DECIMAL,
				sell_price DECIMAL,
				sell_walletaddress VARCHAR(255),
				sell_timestamp TIMESTAMPTZ,
				sell_amountindollars DECIMAL,
				dollarprofit DECIMAL,
				profit DECIMAL,
				win_loss VARCHAR(10),
				symbol VARCHAR(100),
				name VARCHAR(255),
				btscoininfoid BIGINT,
				row_hash VARCHAR(64) UNIQUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, ident),
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema %s: %w", s.name, err)
		}
	}

	return nil
}

// RetryableSetupError reports whether a schema setup failure came from
// concurrent creators racing, rather than a real DDL problem.
func RetryableSetupError(err error) bool {
	return isCreateRaceError(err)
}
