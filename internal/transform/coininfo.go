package transform

import (
	"tradebot-pipeline/internal/domain"
	"tradebot-pipeline/internal/fingerprint"
)

// CleanCoinInfo normalizes one raw btscoininfo row. datecaptured is
// carried to the destination column but excluded from the fingerprint:
// it changes on every re-capture, and including it would make each
// re-capture of the same coin a distinct row, defeating dedup.
func CleanCoinInfo(raw *domain.CoinInfo) *domain.CleanCoinInfo {
	row := &domain.CleanCoinInfo{
		ID:                   raw.ID,
		TokenAddress:         raw.TokenAddress,
		CoinPrice:            normNumeric(raw.CoinPrice),
		DevPubkey:            raw.DevPubkey,
		DevCapital:           normNumeric(raw.DevCapital),
		DevHolderPercentage:  normNumeric(raw.DevHolderPercentage),
		TokenSupply:          normNumeric(raw.TokenSupply),
		TotalHoldersSupply:   normNumeric(raw.TotalHoldersSupply),
		IsBundle:             raw.IsBundle,
		LiquidityToMcapRatio: normNumeric(raw.LiquidityToMcapRatio),
		ReservesInSOL:        normNumeric(raw.ReservesInSOL),
		DateCaptured:         raw.DateCaptured,
	}

	row.RowHash = fingerprint.Hash(map[string]string{
		"id":                   fingerprint.ID(row.ID),
		"tokenaddress":         fingerprint.String(row.TokenAddress),
		"coinprice":            fingerprint.String(row.CoinPrice),
		"devpubkey":            fingerprint.String(row.DevPubkey),
		"devcapital":           fingerprint.String(row.DevCapital),
		"devholderpercentage":  fingerprint.String(row.DevHolderPercentage),
		"tokensupply":          fingerprint.String(row.TokenSupply),
		"totalholderssupply":   fingerprint.String(row.TotalHoldersSupply),
		"isbundle":             fingerprint.Bool(row.IsBundle),
		"liquiditytomcapratio": fingerprint.String(row.LiquidityToMcapRatio),
		"reservesinsol":        fingerprint.String(row.ReservesInSOL),
	})

	return row
}
