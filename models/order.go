package models

import "time"

const (
	OrderStatusPending       = "Pending"
	OrderStatusNowProcessing = "NowProcessing"
	OrderStatusCompleted     = "Completed"
	OrderStatusFailed        = "Failed"

	DirectionUp   = "Up"
	DirectionDown = "Down"
)

type Order struct {
	ID         string    `db:"id"`
	AccountID  string    `db:"account_id"`
	Pair       string    `db:"pair"`
	Direction  string    `db:"direction"`
	Stake      float64   `db:"stake"`
	Asset      string    `db:"asset"`
	EntryPrice float64   `db:"entry_price"`
	ProfitRate float64   `db:"profit_rate"`
	Timeframe  string    `db:"timeframe"`
	Reference  string    `db:"reference"`
	Status     string    `db:"status"`
	Reminded   bool      `db:"reminded"`
	CreatedAt  time.Time `db:"created_at"`
	ExpiresAt  time.Time `db:"expires_at"`
}

// transitions holds every permitted status change. Terminal statuses have no
// outgoing edges.
var transitions = map[string][]string{
	OrderStatusPending:       {OrderStatusNowProcessing, OrderStatusCompleted, OrderStatusFailed},
	OrderStatusNowProcessing: {OrderStatusCompleted, OrderStatusFailed},
}

func ValidTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}

	return false
}

func TerminalStatus(status string) bool {
	return status == OrderStatusCompleted || status == OrderStatusFailed
}

func (o *Order) Terminal() bool {
	return TerminalStatus(o.Status)
}

func (o *Order) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// Payout is the stake plus the profit captured at placement.
func (o *Order) Payout() float64 {
	rate := o.ProfitRate
	if rate < 0 {
		rate = 0
	}

	return o.Stake + o.Stake*rate/100
}
