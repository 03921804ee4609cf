package types

import "time"

// BillingEventKind names the provider webhook events the synchronizer reacts
// to. Values match the provider's wire names so raw events map one-to-one.
type BillingEventKind string

const (
	BillingEventCheckoutCompleted   BillingEventKind = "checkout.session.completed"
	BillingEventSubscriptionCreated BillingEventKind = "customer.subscription.created"
	BillingEventSubscriptionUpdated BillingEventKind = "customer.subscription.updated"
	BillingEventSubscriptionDeleted BillingEventKind = "customer.subscription.deleted"
	BillingEventInvoicePaid         BillingEventKind = "invoice.payment_succeeded"
)

type CheckoutMode string

const (
	CheckoutModeSubscription CheckoutMode = "subscription"
	CheckoutModePayment      CheckoutMode = "payment"
)

// BillingEvent is the provider-neutral view of a webhook delivery after
// signature verification. UserID may be empty when the provider customer is
// not yet linked to a local account.
type BillingEvent struct {
	ID           string           `json:"id"`
	Kind         BillingEventKind `json:"kind"`
	UserID       string           `json:"user_id"`
	CustomerID   string           `json:"customer_id"`
	CheckoutMode CheckoutMode     `json:"checkout_mode,omitempty"`
	// PackPoints is the purchased point amount for one-time point packs.
	PackPoints int64            `json:"pack_points,omitempty"`
	Tier       SubscriptionTier `json:"tier,omitempty"`
	PeriodEnd  *time.Time       `json:"period_end,omitempty"`
}
