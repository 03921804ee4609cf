package models

import "time"

// PointLog records every applied ledger delta.
// Use case: troubleshooting silently-wrong balances and admin audits.
type PointLog struct {
	ID     string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string `gorm:"column:user_id;type:varchar(64);index:idx_point_log_user_id,priority:1;not null" json:"user_id"`
	Delta  int64  `gorm:"column:delta;not null" json:"delta"`
	// Reason names the flow that produced the delta, e.g. "follow_profile",
	// "challenge_reward", "subscription_bonus", "admin_award".
	Reason string `gorm:"column:reason;type:varchar(64);not null" json:"reason"`
	// BalanceAfter is the balance returned by the atomic increment.
	BalanceAfter int64     `gorm:"column:balance_after;not null" json:"balance_after"`
	CreatedAt    time.Time `gorm:"index:idx_point_log_user_id,priority:2" json:"created_at"`
}

func (PointLog) TableName() string {
	return "point_log"
}
