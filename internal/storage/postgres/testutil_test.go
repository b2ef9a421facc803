package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testSchema = "processed"

// setupTestDB creates a PostgreSQL container with the bot's source
// tables and the processed schema applied. Returns a cleanup function
// that must be called after tests complete.
func setupTestDB(t *testing.T) (*Pool, func()) {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	createSourceTables(t, ctx, pool)
	require.NoError(t, NewSchema(pool, testSchema).Ensure(ctx), "failed to ensure schema")

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// createSourceTables builds the bot-owned tables the pipeline reads.
// Numeric-looking columns in arbopportunity and btscoininfo are
// VARCHAR on purpose: the bot writes empty strings into them.
func createSourceTables(t *testing.T, ctx context.Context, pool *Pool) {
	t.Helper()

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS arbopportunity (
			id BIGINT PRIMARY KEY,
			tokenaddress VARCHAR(64),
			buyexchange VARCHAR(64),
			sellexchange VARCHAR(64),
			buyprice VARCHAR(64),
			sellprice VARCHAR(64),
			pricedifference VARCHAR(64),
			profitpercentage VARCHAR(64),
			volume VARCHAR(64),
			liquidity VARCHAR(64),
			timestamp TIMESTAMPTZ,
			status VARCHAR(32),
			row_hash VARCHAR(64)
		)`,
		`CREATE TABLE IF NOT EXISTS btscoininfo (
			id BIGINT PRIMARY KEY,
			tokenaddress VARCHAR(64),
			coinprice VARCHAR(64),
			devpubkey VARCHAR(64),
			devcapital VARCHAR(64),
			devholderpercentage VARCHAR(64),
			tokensupply VARCHAR(64),
			totalholderssupply VARCHAR(64),
			isbundle BOOLEAN,
			liquiditytomcapratio VARCHAR(64),
			reservesinsol VARCHAR(64),
			datecaptured TIMESTAMPTZ,
			row_hash VARCHAR(64)
		)`,
		`CREATE TABLE IF NOT EXISTS arbtransaction (
			id BIGINT PRIMARY KEY,
			datetraded TIMESTAMPTZ,
			tokenpair VARCHAR(32),
			buyexchange VARCHAR(64),
			sellexchange VARCHAR(64),
			buyvolume DOUBLE PRECISION,
			buyvwap DOUBLE PRECISION,
			sellvolume DOUBLE PRECISION,
			sellvwap DOUBLE PRECISION,
			idealprofit DOUBLE PRECISION,
			botid BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS btstransaction (
			id BIGINT PRIMARY KEY,
			tokenaddress VARCHAR(64),
			type VARCHAR(16),
			amount DOUBLE PRECISION,
			price DOUBLE PRECISION,
			amountindollars DOUBLE PRECISION,
			walletaddress VARCHAR(64),
			timestamp TIMESTAMPTZ,
			btscoininfoid BIGINT
		)`,
	}
	for _, stmt := range ddl {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err, "failed to create source table")
	}
}
