package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebot-pipeline/internal/storage"
)

func TestTrackerStore_WatermarkNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTrackerStore(pool, testSchema)

	_, err := store.Watermark(ctx, "arbopportunity")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTrackerStore_AdvanceAndWatermark(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTrackerStore(pool, testSchema)

	require.NoError(t, store.Advance(ctx, "btstransaction", 42))

	id, err := store.Watermark(ctx, "btstransaction")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestTrackerStore_AdvanceUpserts(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTrackerStore(pool, testSchema)

	require.NoError(t, store.Advance(ctx, "arbtransaction", 100))
	require.NoError(t, store.Advance(ctx, "arbtransaction", 250))

	id, err := store.Watermark(ctx, "arbtransaction")
	require.NoError(t, err)
	assert.Equal(t, int64(250), id)
}

func TestTrackerStore_TablesIndependent(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTrackerStore(pool, testSchema)

	require.NoError(t, store.Advance(ctx, "arbopportunity", 10))
	require.NoError(t, store.Advance(ctx, "btscoininfo", 99))

	id, err := store.Watermark(ctx, "arbopportunity")
	require.NoError(t, err)
	assert.Equal(t, int64(10), id)

	id, err = store.Watermark(ctx, "btscoininfo")
	require.NoError(t, err)
	assert.Equal(t, int64(99), id)
}

func TestTrackerStore_EmptyTableName(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTrackerStore(pool, testSchema)

	_, err := store.Watermark(ctx, "")
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Advance(ctx, "", 1), storage.ErrInvalidInput)
}
