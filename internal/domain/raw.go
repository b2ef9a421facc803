package domain

import "time"

// Opportunity is a raw row from the arbopportunity source table.
// Numeric columns are carried as text because the bot writes them
// inconsistently (empty strings instead of NULLs).
type Opportunity struct {
	ID               int64
	TokenAddress     *string
	BuyExchange      *string
	SellExchange     *string
	BuyPrice         *string // numeric-as-text, may be empty
	SellPrice        *string
	PriceDifference  *string
	ProfitPercentage *string
	Volume           *string
	Liquidity        *string
	Timestamp        *time.Time
	Status           *string
	RowHash          *string // hash written by the bot, replaced on clean
}

// CoinInfo is a raw row from the btscoininfo source table.
type CoinInfo struct {
	ID                   int64
	TokenAddress         *string
	CoinPrice            *string // numeric-as-text, may be empty
	DevPubkey            *string
	DevCapital           *string
	DevHolderPercentage  *string
	TokenSupply          *string
	TotalHoldersSupply   *string
	IsBundle             *bool
	LiquidityToMcapRatio *string
	ReservesInSOL        *string
	DateCaptured         *time.Time // re-capture timestamp, volatile
	RowHash              *string
}

// ArbTransaction is a raw row from the arbtransaction source table.
type ArbTransaction struct {
	ID           int64
	DateTraded   *time.Time
	TokenPair    *string // e.g. "SOL/USDC"
	BuyExchange  *string
	SellExchange *string
	BuyVolume    float64
	BuyVwap      float64
	SellVolume   float64
	SellVwap     float64
	IdealProfit  float64
	BotID        *int64
}

// BTSTransaction is a raw sniper-bot event from the btstransaction
// source table. One trade produces up to three events (buy,
// partial_sell, sell) sharing a token address.
type BTSTransaction struct {
	ID              int64
	TokenAddress    *string
	Type            string // see EventType constants
	Amount          float64
	Price           float64
	AmountInDollars float64
	WalletAddress   *string
	Timestamp       *time.Time
	BTSCoinInfoID   *int64
}

// Event type values found in btstransaction.type.
const (
	EventBuy         = "buy"
	EventSell        = "sell"
	EventPartialSell = "partial_sell"
)
