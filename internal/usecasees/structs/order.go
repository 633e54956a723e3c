package structs

type PlaceOrder struct {
	AccountID  string  `json:"accountId"`
	Pair       string  `json:"pair"`
	Direction  string  `json:"direction"`
	Stake      float64 `json:"stake"`
	Timeframe  string  `json:"timeframe"`
	EntryPrice float64 `json:"entryPrice"`
}
