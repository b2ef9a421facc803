package pipeline

// Process names accepted on the command line.
const (
	CleanCoinInfo    = "clean_bts_coin_info"
	CleanOpportunity = "clean_arb_opportunity"
	ProcessBTS       = "process_bts"
	ProcessArb       = "process_arb"
)

// Source table names double as pipeline_tracker keys.
const (
	tableOpportunity = "arbopportunity"
	tableCoinInfo    = "btscoininfo"
	tableArb         = "arbtransaction"
	tableBTS         = "btstransaction"
)

// Order is the execution order for a full run. Cleaning processes go
// first so the processing ones always see fully cleaned snapshots.
var Order = []string{CleanCoinInfo, CleanOpportunity, ProcessBTS, ProcessArb}

// Descriptions maps each process to a one-line summary for `list`.
var Descriptions = map[string]string{
	CleanCoinInfo:    "normalize btscoininfo rows into processed.clean_bts_coin_info",
	CleanOpportunity: "normalize arbopportunity rows into processed.clean_arb_opportunity",
	ProcessBTS:       "pair sniper buy/sell events into processed.processed_bts",
	ProcessArb:       "derive arbitrage outcomes into processed.processed_arb",
}

// Known reports whether name is a runnable process.
func Known(name string) bool {
	_, ok := Descriptions[name]
	return ok
}
