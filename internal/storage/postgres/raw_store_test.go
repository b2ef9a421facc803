package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawStore_FetchOpportunitiesPaginates(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	for _, id := range []int64{1, 2, 3, 4, 5} {
		_, err := pool.Exec(ctx,
			`INSERT INTO arbopportunity (id, tokenaddress, status) VALUES ($1, 'tok', 'open')`, id)
		require.NoError(t, err)
	}

	store := NewRawStore(pool)

	page1, err := store.FetchOpportunities(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, int64(1), page1[0].ID)
	assert.Equal(t, int64(2), page1[1].ID)

	page2, err := store.FetchOpportunities(ctx, page1[1].ID, 10)
	require.NoError(t, err)
	require.Len(t, page2, 3)
	assert.Equal(t, int64(3), page2[0].ID)
	assert.Equal(t, int64(5), page2[2].ID)

	empty, err := store.FetchOpportunities(ctx, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRawStore_FetchOpportunitiesCarriesEmptyStrings(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	_, err := pool.Exec(ctx, `
		INSERT INTO arbopportunity (id, tokenaddress, buyprice, sellprice)
		VALUES (1, 'tok', '', '1.25')
	`)
	require.NoError(t, err)

	store := NewRawStore(pool)
	rows, err := store.FetchOpportunities(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Empty strings survive the read untouched; normalizing them to
	// NULL is the cleaner's job.
	require.NotNil(t, rows[0].BuyPrice)
	assert.Equal(t, "", *rows[0].BuyPrice)
	require.NotNil(t, rows[0].SellPrice)
	assert.Equal(t, "1.25", *rows[0].SellPrice)
	assert.Nil(t, rows[0].PriceDifference)
}

func TestRawStore_FetchArbTransactionsCoalescesNulls(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	_, err := pool.Exec(ctx, `
		INSERT INTO arbtransaction (id, tokenpair, buyvolume, idealprofit)
		VALUES (1, 'SOL/USDC', NULL, 12.5)
	`)
	require.NoError(t, err)

	store := NewRawStore(pool)
	rows, err := store.FetchArbTransactions(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 0.0, rows[0].BuyVolume)
	assert.Equal(t, 12.5, rows[0].IdealProfit)
	assert.Nil(t, rows[0].BotID)
}

func TestRawStore_FetchBTSTransactions(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	_, err := pool.Exec(ctx, `
		INSERT INTO btstransaction (id, tokenaddress, type, amount, price, amountindollars)
		VALUES (1, 'mintA', 'buy', 100, 0.1, 10),
		       (2, 'mintA', 'sell', 120, 0.125, 15),
		       (3, NULL, 'buy', 5, 0.01, 0.05)
	`)
	require.NoError(t, err)

	store := NewRawStore(pool)
	rows, err := store.FetchBTSTransactions(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "buy", rows[0].Type)
	assert.Equal(t, 100.0, rows[0].Amount)
	require.NotNil(t, rows[0].TokenAddress)
	assert.Equal(t, "mintA", *rows[0].TokenAddress)
	assert.Nil(t, rows[2].TokenAddress, "missing token address reads as nil")
}

func TestRawStore_FetchCoinInfo(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	_, err := pool.Exec(ctx, `
		INSERT INTO btscoininfo (id, tokenaddress, coinprice, isbundle, datecaptured)
		VALUES (7, 'mintA', '0.00042', TRUE, NOW())
	`)
	require.NoError(t, err)

	store := NewRawStore(pool)
	rows, err := store.FetchCoinInfo(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, int64(7), rows[0].ID)
	require.NotNil(t, rows[0].CoinPrice)
	assert.Equal(t, "0.00042", *rows[0].CoinPrice)
	require.NotNil(t, rows[0].IsBundle)
	assert.True(t, *rows[0].IsBundle)
	assert.NotNil(t, rows[0].DateCaptured)
}
