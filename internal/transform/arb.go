package transform

import (
	"math"

	"tradebot-pipeline/internal/domain"
	"tradebot-pipeline/internal/fingerprint"
)

// ProcessArb derives one arbitrage trade from a raw arbtransaction
// row. idealProfit is carried through as the authoritative profit
// figure; profit percentage is relative to the absolute buy volume,
// with zero volume yielding zero rather than an error.
//
// The fingerprint covers a reduced field set so pipeline-added columns
// (created_at, the derived percentage) never affect dedup.
func ProcessArb(raw *domain.ArbTransaction) *domain.ProcessedArb {
	profit := raw.IdealProfit

	var pct float64
	if raw.BuyVolume != 0 {
		pct = profit / math.Abs(raw.BuyVolume) * 100
	}

	return &domain.ProcessedArb{
		DateTraded:       raw.DateTraded,
		TokenPair:        raw.TokenPair,
		BuyExchange:      raw.BuyExchange,
		SellExchange:     raw.SellExchange,
		BuyVolume:        raw.BuyVolume,
		BuyVwap:          raw.BuyVwap,
		SellVolume:       raw.SellVolume,
		SellVwap:         raw.SellVwap,
		Profit:           profit,
		ProfitPercentage: pct,
		WinLoss:          domain.WinLoss(profit),
		BotID:            raw.BotID,
		RowHash: fingerprint.Hash(map[string]string{
			"id":           fingerprint.ID(raw.ID),
			"datetraded":   fingerprint.Time(raw.DateTraded),
			"tokenpair":    fingerprint.String(raw.TokenPair),
			"buyexchange":  fingerprint.String(raw.BuyExchange),
			"sellexchange": fingerprint.String(raw.SellExchange),
			"profit":       fingerprint.Float(profit),
			"botid":        fingerprint.Int(raw.BotID),
		}),
	}
}
