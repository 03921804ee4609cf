package types

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
)

// SubscriptionTier classifies the account. The free tier is the empty string;
// premium lifts the daily point-earning cap.
type SubscriptionTier string

const (
	SubscriptionTierFree    SubscriptionTier = ""
	SubscriptionTierPremium SubscriptionTier = "Premium"
)

type SubscriptionChangeReason string

const (
	SubscriptionChangeReasonCheckout      SubscriptionChangeReason = "checkout"
	SubscriptionChangeReasonWebhook       SubscriptionChangeReason = "webhook"
	SubscriptionChangeReasonPoll          SubscriptionChangeReason = "poll"
	SubscriptionChangeReasonAdminOverride SubscriptionChangeReason = "admin_override"
)

type SubscriptionInfo struct {
	Subscribed bool             `json:"subscribed"`
	Tier       SubscriptionTier `json:"tier"`
	ExpireAt   *time.Time       `json:"expire_at"`
}
