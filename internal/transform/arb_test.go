package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tradebot-pipeline/internal/domain"
)

func TestProcessArb_ProfitCarriedThrough(t *testing.T) {
	ts := time.Date(2025, 4, 2, 14, 0, 0, 0, time.UTC)
	raw := &domain.ArbTransaction{
		ID:          100,
		DateTraded:  &ts,
		TokenPair:   str("SOL/USDC"),
		BuyVolume:   200,
		BuyVwap:     1.0,
		SellVolume:  200,
		SellVwap:    1.1,
		IdealProfit: 20,
	}

	row := ProcessArb(raw)

	assert.Equal(t, 20.0, row.Profit)
	assert.InDelta(t, 10.0, row.ProfitPercentage, 1e-9)
	assert.Equal(t, domain.WinLossWin, row.WinLoss)
}

func TestProcessArb_ZeroBuyVolumeGuard(t *testing.T) {
	row := ProcessArb(&domain.ArbTransaction{ID: 1, BuyVolume: 0, IdealProfit: 5})

	assert.Equal(t, 0.0, row.ProfitPercentage)
	assert.Equal(t, 5.0, row.Profit)
}

func TestProcessArb_NegativeBuyVolumeUsesAbsolute(t *testing.T) {
	row := ProcessArb(&domain.ArbTransaction{ID: 2, BuyVolume: -50, IdealProfit: 5})

	assert.InDelta(t, 10.0, row.ProfitPercentage, 1e-9)
}

func TestProcessArb_ZeroProfitIsLoss(t *testing.T) {
	row := ProcessArb(&domain.ArbTransaction{ID: 3, BuyVolume: 10, IdealProfit: 0})

	assert.Equal(t, domain.WinLossLoss, row.WinLoss)
}

func TestProcessArb_NegativeProfitIsLoss(t *testing.T) {
	row := ProcessArb(&domain.ArbTransaction{ID: 4, BuyVolume: 10, IdealProfit: -3})

	assert.Equal(t, domain.WinLossLoss, row.WinLoss)
	assert.InDelta(t, -30.0, row.ProfitPercentage, 1e-9)
}

func TestProcessArb_FingerprintIgnoresDerivedFields(t *testing.T) {
	// Two rows differing only in vwap/volume figures outside the
	// reduced fingerprint set must dedup to the same hash.
	a := ProcessArb(&domain.ArbTransaction{ID: 9, BuyVolume: 100, SellVwap: 1.5, IdealProfit: 7})
	b := ProcessArb(&domain.ArbTransaction{ID: 9, BuyVolume: 100, SellVwap: 9.9, IdealProfit: 7})

	assert.Equal(t, a.RowHash, b.RowHash)
}

func TestProcessArb_FingerprintCoversIdentity(t *testing.T) {
	a := ProcessArb(&domain.ArbTransaction{ID: 9, IdealProfit: 7})
	b := ProcessArb(&domain.ArbTransaction{ID: 10, IdealProfit: 7})

	assert.NotEqual(t, a.RowHash, b.RowHash)
}
