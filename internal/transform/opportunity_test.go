package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebot-pipeline/internal/domain"
)

func str(s string) *string { return &s }

func TestCleanOpportunity_EmptyNumericsBecomeNull(t *testing.T) {
	ts := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
	raw := &domain.Opportunity{
		ID:           11,
		TokenAddress: str("So11111111111111111111111111111111111111112"),
		BuyExchange:  str("raydium"),
		SellExchange: str("orca"),
		BuyPrice:     str("1.25"),
		SellPrice:    str(""),   // empty string from the bot
		Volume:       str("  "), // whitespace only
		Liquidity:    nil,
		Timestamp:    &ts,
		Status:       str("open"),
	}

	row := CleanOpportunity(raw)

	require.NotNil(t, row.BuyPrice)
	assert.Equal(t, "1.25", *row.BuyPrice)
	assert.Nil(t, row.SellPrice, "empty string must become NULL, not reach the numeric column")
	assert.Nil(t, row.Volume)
	assert.Nil(t, row.Liquidity)
	assert.Len(t, row.RowHash, 64)
}

func TestCleanOpportunity_DiscardsIncomingRowHash(t *testing.T) {
	raw := &domain.Opportunity{ID: 1, Status: str("open"), RowHash: str("bot-written-hash")}
	row := CleanOpportunity(raw)

	assert.NotEqual(t, "bot-written-hash", row.RowHash)

	// The incoming hash must not influence the new fingerprint.
	raw2 := &domain.Opportunity{ID: 1, Status: str("open"), RowHash: str("different")}
	assert.Equal(t, row.RowHash, CleanOpportunity(raw2).RowHash)
}

func TestCleanOpportunity_NullAndEmptyFingerprintAlike(t *testing.T) {
	// After normalization NULL and empty string are the same value, so
	// they must also dedup as the same row.
	a := CleanOpportunity(&domain.Opportunity{ID: 3, BuyPrice: str("")})
	b := CleanOpportunity(&domain.Opportunity{ID: 3, BuyPrice: nil})

	assert.Equal(t, a.RowHash, b.RowHash)
}
