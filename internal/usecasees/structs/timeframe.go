package structs

import (
	"math"
	"time"
)

// Timeframe is one tier of the placement table. The profit rate and stake
// bounds are fixed per tier; the rate is captured onto the order at placement
// and never re-read from this table.
type Timeframe struct {
	Code       string
	Duration   time.Duration
	ProfitRate float64
	MinStake   float64
	MaxStake   float64
}

const (
	Timeframe5M  = "5m"
	Timeframe30M = "30m"
	Timeframe1H  = "1h"
	Timeframe24H = "24h"
)

var Timeframes = map[string]Timeframe{
	Timeframe5M: {
		Code:       Timeframe5M,
		Duration:   5 * time.Minute,
		ProfitRate: 20,
		MinStake:   100,
		MaxStake:   4999,
	},
	Timeframe30M: {
		Code:       Timeframe30M,
		Duration:   30 * time.Minute,
		ProfitRate: 40,
		MinStake:   5000,
		MaxStake:   9999,
	},
	Timeframe1H: {
		Code:       Timeframe1H,
		Duration:   time.Hour,
		ProfitRate: 60,
		MinStake:   10000,
		MaxStake:   49999,
	},
	Timeframe24H: {
		Code:       Timeframe24H,
		Duration:   24 * time.Hour,
		ProfitRate: 80,
		MinStake:   50000,
		MaxStake:   math.MaxFloat64,
	},
}

func (t Timeframe) StakeAllowed(stake float64) bool {
	return stake >= t.MinStake && stake <= t.MaxStake
}
