package stripegw

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v79"
	portalsession "github.com/stripe/stripe-go/v79/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/customer"
	"github.com/stripe/stripe-go/v79/subscription"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"github.com/growthlab/boostup/internal/app/service/billing"
	"github.com/growthlab/boostup/pkg/config"
	"github.com/growthlab/boostup/pkg/logctx"
	"github.com/growthlab/boostup/pkg/types"
)

// gateway talks to Stripe. It is the only package that imports the provider
// SDK; everything above it works with billing.Gateway.
type gateway struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

func New(cfg *config.Config, log *zap.SugaredLogger) billing.Gateway {
	stripe.Key = cfg.Billing.APIKey
	return &gateway{cfg: cfg, log: log}
}

func (g *gateway) FindCustomerID(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)
	it := customer.List(params)
	for it.Next() {
		return it.Customer().ID, nil
	}
	if err := it.Err(); err != nil {
		return "", fmt.Errorf("list customers: %w", err)
	}
	return "", nil
}

func (g *gateway) ActiveSubscription(ctx context.Context, customerID string) (*billing.ProviderSubscription, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)
	it := subscription.List(params)
	for it.Next() {
		return providerSubscription(it.Subscription()), nil
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return nil, nil
}

func (g *gateway) CreateCheckoutSession(ctx context.Context, req *billing.CheckoutRequest) (*billing.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(req.Mode)),
		ClientReferenceID: stripe.String(req.UserID),
		CustomerEmail:     stripe.String(req.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	params.AddMetadata("user_id", req.UserID)
	if req.Mode == types.CheckoutModePayment {
		params.AddMetadata("points", strconv.FormatInt(req.PackPoints, 10))
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &billing.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (g *gateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx
	sess, err := portalsession.New(params)
	if err != nil {
		return "", fmt.Errorf("create portal session: %w", err)
	}
	return sess.URL, nil
}

// VerifyWebhook checks the delivery signature, then flattens the Stripe event
// into the provider-neutral shape the synchronizer consumes. Event types we
// do not handle come back as nil without error.
func (g *gateway) VerifyWebhook(ctx context.Context, payload []byte, signature string) (*types.BillingEvent, error) {
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		g.cfg.Billing.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return nil, fmt.Errorf("verify webhook signature: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		return g.normalizeCheckout(ctx, &event)
	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		return g.normalizeSubscription(&event)
	case "invoice.payment_succeeded":
		return g.normalizeInvoice(&event)
	default:
		logctx.FromCtx(ctx, g.log).Debugf("ignoring billing event type %s", event.Type)
		return nil, nil
	}
}

func (g *gateway) normalizeCheckout(ctx context.Context, event *stripe.Event) (*types.BillingEvent, error) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal checkout session: %w", err)
	}

	ev := &types.BillingEvent{
		ID:           event.ID,
		Kind:         types.BillingEventCheckoutCompleted,
		UserID:       sess.ClientReferenceID,
		CheckoutMode: types.CheckoutMode(sess.Mode),
	}
	if ev.UserID == "" {
		ev.UserID = sess.Metadata["user_id"]
	}
	if sess.Customer != nil {
		ev.CustomerID = sess.Customer.ID
	}

	switch ev.CheckoutMode {
	case types.CheckoutModePayment:
		points, err := strconv.ParseInt(sess.Metadata["points"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("checkout session %s has no points metadata: %w", sess.ID, err)
		}
		ev.PackPoints = points
	case types.CheckoutModeSubscription:
		ev.Tier = types.SubscriptionTierPremium
		if sess.Subscription != nil {
			// The session only carries the subscription ID; fetch it for the
			// current period end. Missing period end is tolerated, the next
			// subscription.updated delivery carries it.
			params := &stripe.SubscriptionParams{}
			params.Context = ctx
			sub, err := subscription.Get(sess.Subscription.ID, params)
			if err != nil {
				logctx.FromCtx(ctx, g.log).Warnf("failed to fetch subscription %s: %v", sess.Subscription.ID, err)
			} else if sub.CurrentPeriodEnd > 0 {
				end := time.Unix(sub.CurrentPeriodEnd, 0)
				ev.PeriodEnd = &end
			}
		}
	}
	return ev, nil
}

func (g *gateway) normalizeSubscription(event *stripe.Event) (*types.BillingEvent, error) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return nil, fmt.Errorf("unmarshal subscription: %w", err)
	}

	ev := &types.BillingEvent{
		ID:   event.ID,
		Kind: types.BillingEventKind(event.Type),
		Tier: types.SubscriptionTierPremium,
	}
	if sub.Customer != nil {
		ev.CustomerID = sub.Customer.ID
	}
	if sub.Metadata != nil {
		ev.UserID = sub.Metadata["user_id"]
	}
	if sub.CurrentPeriodEnd > 0 {
		end := time.Unix(sub.CurrentPeriodEnd, 0)
		ev.PeriodEnd = &end
	}
	return ev, nil
}

func (g *gateway) normalizeInvoice(event *stripe.Event) (*types.BillingEvent, error) {
	var inv stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
		return nil, fmt.Errorf("unmarshal invoice: %w", err)
	}

	ev := &types.BillingEvent{
		ID:   event.ID,
		Kind: types.BillingEventInvoicePaid,
		Tier: types.SubscriptionTierPremium,
	}
	if inv.Customer != nil {
		ev.CustomerID = inv.Customer.ID
	}
	if inv.PeriodEnd > 0 {
		end := time.Unix(inv.PeriodEnd, 0)
		ev.PeriodEnd = &end
	}
	return ev, nil
}

func providerSubscription(sub *stripe.Subscription) *billing.ProviderSubscription {
	ps := &billing.ProviderSubscription{}
	if sub.Customer != nil {
		ps.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		ps.PriceID = sub.Items.Data[0].Price.ID
	}
	if sub.CurrentPeriodEnd > 0 {
		ps.PeriodEnd = time.Unix(sub.CurrentPeriodEnd, 0)
	}
	return ps
}
