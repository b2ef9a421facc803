package domain

import "time"

// Win/loss labels. A trade with zero profit classifies as LOSS.
const (
	WinLossWin  = "WIN"
	WinLossLoss = "LOSS"
)

// WinLoss labels a profit figure. The profit == 0 boundary is LOSS,
// matching the bot's own reporting.
func WinLoss(profit float64) string {
	if profit > 0 {
		return WinLossWin
	}
	return WinLossLoss
}

// CleanOpportunity is a normalized arbopportunity row destined for
// processed.clean_arb_opportunity.
type CleanOpportunity struct {
	ID               int64
	TokenAddress     *string
	BuyExchange      *string
	SellExchange     *string
	BuyPrice         *string // NULL when the source held an empty string
	SellPrice        *string
	PriceDifference  *string
	ProfitPercentage *string
	Volume           *string
	Liquidity        *string
	Timestamp        *time.Time
	Status           *string
	RowHash          string
}

// CleanCoinInfo is a normalized btscoininfo row destined for
// processed.clean_bts_coin_info. DateCaptured is carried through but
// never participates in RowHash.
type CleanCoinInfo struct {
	ID                   int64
	TokenAddress         *string
	CoinPrice            *string
	DevPubkey            *string
	DevCapital           *string
	DevHolderPercentage  *string
	TokenSupply          *string
	TotalHoldersSupply   *string
	IsBundle             *bool
	LiquidityToMcapRatio *string
	ReservesInSOL        *string
	DateCaptured         *time.Time
	RowHash              string
}

// ProcessedArb is a derived arbitrage trade destined for
// processed.processed_arb.
type ProcessedArb struct {
	DateTraded       *time.Time
	TokenPair        *string
	BuyExchange      *string
	SellExchange     *string
	BuyVolume        float64
	BuyVwap          float64
	SellVolume       float64
	SellVwap         float64
	Profit           float64 // idealProfit carried through
	ProfitPercentage float64
	WinLoss          string
	BotID            *int64
	RowHash          string
}

// PairedTrade is one sniper trade synthesized from a buy event, an
// optional partial_sell event, and a sell event sharing a token
// address. It owns copies of the event scalars; destination table is
// processed.processed_bts.
type PairedTrade struct {
	TokenAddress string

	BuyAmount          float64
	BuyPrice           float64
	BuyWalletAddress   *string
	BuyTimestamp       *time.Time
	BuyAmountInDollars float64

	PartialSellAmount          *float64
	PartialSellPrice           *float64
	PartialSellWalletAddress   *string
	PartialSellTimestamp       *time.Time
	PartialSellAmountInDollars *float64
	PartialSellBotID           *int64

	// Sell totals fold the partial sell in, matching the bot's reports.
	SellAmount          float64
	SellPrice           float64
	SellWalletAddress   *string
	SellTimestamp       *time.Time
	SellAmountInDollars float64

	Profit       float64 // token units
	DollarProfit float64
	WinLoss      string

	Symbol string
	Name   string

	BTSCoinInfoID *int64
	RowHash       string
}
