package stripegw

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"github.com/growthlab/boostup/pkg/config"
	"github.com/growthlab/boostup/pkg/types"
)

func newTestGateway() *gateway {
	return &gateway{cfg: &config.Config{}, log: zap.NewNop().Sugar()}
}

func event(id, kind string, raw string) *stripe.Event {
	return &stripe.Event{
		ID:   id,
		Type: stripe.EventType(kind),
		Data: &stripe.EventData{Raw: json.RawMessage(raw)},
	}
}

func TestNormalizeCheckoutPayment(t *testing.T) {
	g := newTestGateway()
	ev, err := g.normalizeCheckout(t.Context(), event("evt_1", "checkout.session.completed", `{
		"id": "cs_1",
		"mode": "payment",
		"client_reference_id": "u-1",
		"customer": "cus_1",
		"metadata": {"user_id": "u-1", "points": "250"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "evt_1", ev.ID)
	assert.Equal(t, types.BillingEventCheckoutCompleted, ev.Kind)
	assert.Equal(t, "u-1", ev.UserID)
	assert.Equal(t, "cus_1", ev.CustomerID)
	assert.Equal(t, types.CheckoutModePayment, ev.CheckoutMode)
	assert.Equal(t, int64(250), ev.PackPoints)
}

func TestNormalizeCheckoutPaymentWithoutPoints(t *testing.T) {
	g := newTestGateway()
	_, err := g.normalizeCheckout(t.Context(), event("evt_1", "checkout.session.completed", `{
		"id": "cs_1",
		"mode": "payment",
		"client_reference_id": "u-1"
	}`))
	require.Error(t, err)
}

func TestNormalizeCheckoutSubscription(t *testing.T) {
	g := newTestGateway()
	ev, err := g.normalizeCheckout(t.Context(), event("evt_2", "checkout.session.completed", `{
		"id": "cs_2",
		"mode": "subscription",
		"client_reference_id": "u-2",
		"customer": "cus_2"
	}`))
	require.NoError(t, err)
	assert.Equal(t, types.CheckoutModeSubscription, ev.CheckoutMode)
	assert.Equal(t, types.SubscriptionTierPremium, ev.Tier)
	assert.Nil(t, ev.PeriodEnd)
}

func TestNormalizeCheckoutFallsBackToMetadataUser(t *testing.T) {
	g := newTestGateway()
	ev, err := g.normalizeCheckout(t.Context(), event("evt_3", "checkout.session.completed", `{
		"id": "cs_3",
		"mode": "payment",
		"metadata": {"user_id": "u-3", "points": "100"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "u-3", ev.UserID)
}

func TestNormalizeSubscription(t *testing.T) {
	g := newTestGateway()
	periodEnd := time.Now().Add(30 * 24 * time.Hour).Unix()
	raw, _ := json.Marshal(map[string]any{
		"id":                 "sub_1",
		"customer":           "cus_1",
		"current_period_end": periodEnd,
		"metadata":           map[string]string{"user_id": "u-1"},
	})

	for _, kind := range []string{
		"customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted",
	} {
		ev, err := g.normalizeSubscription(event("evt_"+kind, kind, string(raw)))
		require.NoError(t, err)
		assert.Equal(t, types.BillingEventKind(kind), ev.Kind)
		assert.Equal(t, "cus_1", ev.CustomerID)
		assert.Equal(t, "u-1", ev.UserID)
		require.NotNil(t, ev.PeriodEnd)
		assert.Equal(t, periodEnd, ev.PeriodEnd.Unix())
	}
}

func TestNormalizeInvoice(t *testing.T) {
	g := newTestGateway()
	end := time.Now().Add(30 * 24 * time.Hour).Unix()
	raw, _ := json.Marshal(map[string]any{
		"id":         "in_1",
		"customer":   "cus_1",
		"period_end": end,
	})
	ev, err := g.normalizeInvoice(event("evt_in", "invoice.payment_succeeded", string(raw)))
	require.NoError(t, err)
	assert.Equal(t, types.BillingEventInvoicePaid, ev.Kind)
	assert.Equal(t, "cus_1", ev.CustomerID)
	require.NotNil(t, ev.PeriodEnd)
	assert.Equal(t, end, ev.PeriodEnd.Unix())
}
