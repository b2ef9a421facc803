package transform

import (
	"tradebot-pipeline/internal/domain"
	"tradebot-pipeline/internal/fingerprint"
)

// CleanOpportunity normalizes one raw arbopportunity row. All fields
// are carried; the bot's own row_hash is discarded and a fresh
// fingerprint is computed over the normalized values.
func CleanOpportunity(raw *domain.Opportunity) *domain.CleanOpportunity {
	row := &domain.CleanOpportunity{
		ID:               raw.ID,
		TokenAddress:     raw.TokenAddress,
		BuyExchange:      raw.BuyExchange,
		SellExchange:     raw.SellExchange,
		BuyPrice:         normNumeric(raw.BuyPrice),
		SellPrice:        normNumeric(raw.SellPrice),
		PriceDifference:  normNumeric(raw.PriceDifference),
		ProfitPercentage: normNumeric(raw.ProfitPercentage),
		Volume:           normNumeric(raw.Volume),
		Liquidity:        normNumeric(raw.Liquidity),
		Timestamp:        raw.Timestamp,
		Status:           raw.Status,
	}

	row.RowHash = fingerprint.Hash(map[string]string{
		"id":               fingerprint.ID(row.ID),
		"tokenaddress":     fingerprint.String(row.TokenAddress),
		"buyexchange":      fingerprint.String(row.BuyExchange),
		"sellexchange":     fingerprint.String(row.SellExchange),
		"buyprice":         fingerprint.String(row.BuyPrice),
		"sellprice":        fingerprint.String(row.SellPrice),
		"pricedifference":  fingerprint.String(row.PriceDifference),
		"profitpercentage": fingerprint.String(row.ProfitPercentage),
		"volume":           fingerprint.String(row.Volume),
		"liquidity":        fingerprint.String(row.Liquidity),
		"timestamp":        fingerprint.Time(row.Timestamp),
		"status":           fingerprint.String(row.Status),
	})

	return row
}
