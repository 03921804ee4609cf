package billing

import (
	"context"
	"time"

	"github.com/growthlab/boostup/pkg/types"
)

// CheckoutRequest describes a checkout session to create. PackPoints is
// snapshot into session metadata for point packs so the webhook can award
// without a second catalog lookup.
type CheckoutRequest struct {
	UserID     string
	Email      string
	Mode       types.CheckoutMode
	PriceID    string
	PackPoints int64
	SuccessURL string
	CancelURL  string
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ProviderSubscription is the provider's current view of a customer's
// subscription.
type ProviderSubscription struct {
	CustomerID string
	PriceID    string
	PeriodEnd  time.Time
}

// Gateway abstracts the billing provider. The synchronizer only depends on
// this surface; the Stripe implementation lives in internal/platform.
type Gateway interface {
	// FindCustomerID looks up the provider customer by email; empty when the
	// customer does not exist yet.
	FindCustomerID(ctx context.Context, email string) (string, error)
	// ActiveSubscription returns the customer's active subscription, or nil.
	ActiveSubscription(ctx context.Context, customerID string) (*ProviderSubscription, error)
	CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
	// VerifyWebhook checks the delivery signature and normalizes the payload.
	// A bad signature must fail before any of the payload is interpreted.
	VerifyWebhook(ctx context.Context, payload []byte, signature string) (*types.BillingEvent, error)
}
