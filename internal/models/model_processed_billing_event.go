package models

import "time"

// ProcessedBillingEvent marks a provider webhook event as handled. Billing
// providers redeliver events; inserting here with ON CONFLICT DO NOTHING
// before applying effects makes replays a no-op, so bonus points cannot be
// double-awarded.
type ProcessedBillingEvent struct {
	EventID   string    `gorm:"column:event_id;type:varchar(128);primary_key" json:"event_id"`
	Kind      string    `gorm:"column:kind;type:varchar(64);not null" json:"kind"`
	UserID    string    `gorm:"column:user_id;type:varchar(64);index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProcessedBillingEvent) TableName() string {
	return "processed_billing_event"
}
