package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/growthlab/boostup/pkg/types"
)

// SubscriptionChangeLog records changes to user subscription records.
// Use case: troubleshooting.
type SubscriptionChangeLog struct {
	ID     string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string `gorm:"column:user_id;type:varchar(64);index:idx_sub_change_user_id,priority:1;not null"`
	// Reason is the change source.
	Reason types.SubscriptionChangeReason `gorm:"column:reason;type:varchar(64);not null"`
	// Before stores the record before the change in JSON format.
	Before datatypes.JSONType[*SubscriptionRecord] `gorm:"column:before;type:jsonb;default:'null'"`
	// After stores the record after the change in JSON format.
	After     datatypes.JSONType[*SubscriptionRecord] `gorm:"column:after;type:jsonb;default:'null'"`
	CreatedAt time.Time                               `gorm:"index:idx_sub_change_user_id,priority:2"`
}

func (SubscriptionChangeLog) TableName() string {
	return "subscription_change_log"
}
