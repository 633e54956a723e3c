package models

import "time"

// AdminTarget is the reserved target id for operator-facing notifications.
const AdminTarget = "admin"

const (
	NotificationOrder      = "order"
	NotificationDeposit    = "deposit"
	NotificationWithdrawal = "withdrawal"
	NotificationGeneral    = "general"
)

type Notification struct {
	ID        string    `db:"id"`
	TargetID  string    `db:"target_id"`
	Message   string    `db:"message"`
	Category  string    `db:"category"`
	Link      string    `db:"link"`
	Read      bool      `db:"read"`
	CreatedAt time.Time `db:"created_at"`
}
