package structs

type MetricConst int

const (
	MetricOrderPlaced MetricConst = iota
	MetricOrderCompleted
	MetricOrderFailed
	MetricOrderAutoSettled
	MetricOrderHeldForReview
	MetricReminderSent
	MetricLedgerConflict
)

func (m MetricConst) ToString() string {
	switch m {
	case MetricOrderPlaced:
		return "settler_orders_placed"
	case MetricOrderCompleted:
		return "settler_orders_completed"
	case MetricOrderFailed:
		return "settler_orders_failed"
	case MetricOrderAutoSettled:
		return "settler_orders_auto_settled"
	case MetricOrderHeldForReview:
		return "settler_orders_held_for_review"
	case MetricReminderSent:
		return "settler_reminders_sent"
	case MetricLedgerConflict:
		return "settler_ledger_conflicts"
	}

	return "settler_unknown"
}
