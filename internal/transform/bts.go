package transform

import (
	"tradebot-pipeline/internal/domain"
	"tradebot-pipeline/internal/fingerprint"
)

// PairResult is the outcome of pairing one batch of sniper events.
type PairResult struct {
	// Trades are the buy/sell pairs found in this batch, in token
	// first-seen order. Symbol, Name and RowHash are not yet set;
	// metadata enrichment happens after pairing.
	Trades []*domain.PairedTrade

	// MaxSourceID is the highest event id seen in the batch, counting
	// events that produced no trade (missing token address, unpaired
	// buy or sell). Advancing the watermark to it guarantees the
	// pipeline never refetches a batch that emitted zero trades.
	MaxSourceID int64
}

// PairBTS matches buy and sell events that share a token address into
// single trade records.
//
// Pairing is same-batch only: a group missing either side is skipped
// this pass, and once the watermark passes those events they are never
// revisited. Buys and sells that straddle a batch boundary are
// therefore lost.
func PairBTS(events []*domain.BTSTransaction) *PairResult {
	res := &PairResult{}

	groups := make(map[string][]*domain.BTSTransaction)
	var order []string

	for _, ev := range events {
		if ev.ID > res.MaxSourceID {
			res.MaxSourceID = ev.ID
		}
		if ev.TokenAddress == nil || *ev.TokenAddress == "" {
			continue
		}
		addr := *ev.TokenAddress
		if _, seen := groups[addr]; !seen {
			order = append(order, addr)
		}
		groups[addr] = append(groups[addr], ev)
	}

	for _, addr := range order {
		if trade := pairGroup(addr, groups[addr]); trade != nil {
			res.Trades = append(res.Trades, trade)
		}
	}

	return res
}

// pairGroup builds one trade from a token's events, or nil when the
// group lacks a buy or a sell.
func pairGroup(addr string, events []*domain.BTSTransaction) *domain.PairedTrade {
	var buy, sell, partial *domain.BTSTransaction
	for _, ev := range events {
		switch ev.Type {
		case domain.EventBuy:
			if buy == nil {
				buy = ev
			}
		case domain.EventSell:
			if sell == nil {
				sell = ev
			}
		case domain.EventPartialSell:
			if partial == nil {
				partial = ev
			}
		}
	}

	if buy == nil || sell == nil {
		return nil
	}

	var partialAmount, partialDollars float64
	if partial != nil {
		partialAmount = partial.Amount
		partialDollars = partial.AmountInDollars
	}

	totalSellAmount := partialAmount + sell.Amount
	totalSellDollars := partialDollars + sell.AmountInDollars
	profit := totalSellAmount - buy.Amount
	dollarProfit := totalSellDollars - buy.AmountInDollars

	trade := &domain.PairedTrade{
		TokenAddress: addr,

		BuyAmount:          buy.Amount,
		BuyPrice:           buy.Price,
		BuyWalletAddress:   buy.WalletAddress,
		BuyTimestamp:       buy.Timestamp,
		BuyAmountInDollars: buy.AmountInDollars,

		SellAmount:          totalSellAmount,
		SellPrice:           sell.Price,
		SellWalletAddress:   sell.WalletAddress,
		SellTimestamp:       sell.Timestamp,
		SellAmountInDollars: totalSellDollars,

		Profit:       profit,
		DollarProfit: dollarProfit,
		WinLoss:      domain.WinLoss(dollarProfit),

		BTSCoinInfoID: buy.BTSCoinInfoID,
	}

	if partial != nil {
		trade.PartialSellAmount = &partial.Amount
		trade.PartialSellPrice = &partial.Price
		trade.PartialSellWalletAddress = partial.WalletAddress
		trade.PartialSellTimestamp = partial.Timestamp
		trade.PartialSellAmountInDollars = &partial.AmountInDollars
		// partial_sell_botid has always carried the event's
		// btscoininfoid; downstream reports depend on it.
		trade.PartialSellBotID = partial.BTSCoinInfoID
	}

	return trade
}

// FingerprintTrade computes the fingerprint of a fully enriched paired
// trade. Call after Symbol and Name are set; the hash covers the whole
// record so two different trades on the same token never collide.
func FingerprintTrade(t *domain.PairedTrade) string {
	return fingerprint.Hash(map[string]string{
		"tokenaddress": t.TokenAddress,

		"buy_amount":          fingerprint.Float(t.BuyAmount),
		"buy_price":           fingerprint.Float(t.BuyPrice),
		"buy_walletaddress":   fingerprint.String(t.BuyWalletAddress),
		"buy_timestamp":       fingerprint.Time(t.BuyTimestamp),
		"buy_amountindollars": fingerprint.Float(t.BuyAmountInDollars),

		"partial_sell_amount":          floatPtr(t.PartialSellAmount),
		"partial_sell_price":           floatPtr(t.PartialSellPrice),
		"partial_sell_walletaddress":   fingerprint.String(t.PartialSellWalletAddress),
		"partial_sell_timestamp":       fingerprint.Time(t.PartialSellTimestamp),
		"partial_sell_amountindollars": floatPtr(t.PartialSellAmountInDollars),
		"partial_sell_botid":           fingerprint.Int(t.PartialSellBotID),

		"sell_amount":          fingerprint.Float(t.SellAmount),
		"sell_price":           fingerprint.Float(t.SellPrice),
		"sell_walletaddress":   fingerprint.String(t.SellWalletAddress),
		"sell_timestamp":       fingerprint.Time(t.SellTimestamp),
		"sell_amountindollars": fingerprint.Float(t.SellAmountInDollars),

		"dollarprofit": fingerprint.Float(t.DollarProfit),
		"profit":       fingerprint.Float(t.Profit),
		"win_loss":     t.WinLoss,
		"symbol":       t.Symbol,
		"name":         t.Name,
		"btscoininfoid": fingerprint.Int(t.BTSCoinInfoID),
	})
}

func floatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return fingerprint.Float(*v)
}
