package models

import (
	"time"

	"github.com/growthlab/boostup/pkg/types"
)

// SubscriptionRecord is the local projection of the billing provider's
// truth for one user. Written only by the billing synchronizer (webhook,
// poll, or admin override); conflicting writers on the same user resolve
// last-write-wins since both derive from the same provider state.
type SubscriptionRecord struct {
	ID     string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex" json:"user_id"`
	// BillingCustomerID links the provider customer to this account; set on
	// first checkout or poll and used to resolve later webhook events.
	BillingCustomerID string                 `gorm:"column:billing_customer_id;type:varchar(128);index" json:"billing_customer_id"`
	Subscribed        bool                   `gorm:"column:subscribed;not null;default:false" json:"subscribed"`
	Tier              types.SubscriptionTier `gorm:"column:tier;type:varchar(64)" json:"tier"`
	SubscriptionEnd   *time.Time             `gorm:"column:subscription_end;default:null" json:"subscription_end"`
	PointsEarnedToday int64                  `gorm:"column:points_earned_today;not null;default:0" json:"points_earned_today"`
	LastPointsReset   time.Time              `gorm:"column:last_points_reset" json:"last_points_reset"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

func (SubscriptionRecord) TableName() string {
	return "subscription_record"
}

// Premium reports whether the record grants premium entitlements now.
func (r *SubscriptionRecord) Premium() bool {
	return r != nil && r.Subscribed &&
		(r.SubscriptionEnd == nil || r.SubscriptionEnd.After(time.Now()))
}
