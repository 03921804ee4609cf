package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/growthlab/boostup/internal/app/service/billing"
	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/types"
)

type stubGateway struct {
	event *types.BillingEvent
	err   error
}

func (g *stubGateway) FindCustomerID(context.Context, string) (string, error) { return "", nil }

func (g *stubGateway) ActiveSubscription(context.Context, string) (*billing.ProviderSubscription, error) {
	return nil, nil
}

func (g *stubGateway) CreateCheckoutSession(context.Context, *billing.CheckoutRequest) (*billing.CheckoutSession, error) {
	return nil, nil
}

func (g *stubGateway) CreatePortalSession(context.Context, string, string) (string, error) {
	return "", nil
}

func (g *stubGateway) VerifyWebhook(context.Context, []byte, string) (*types.BillingEvent, error) {
	return g.event, g.err
}

type stubApplier struct {
	err   error
	calls int
}

func (a *stubApplier) ApplyEvent(context.Context, *types.BillingEvent) error {
	a.calls++
	return a.err
}

type stubRecorder struct {
	entries []*models.BillingEventLog
}

func (r *stubRecorder) Save(_ context.Context, entry *models.BillingEventLog) {
	r.entries = append(r.entries, entry)
}

func postWebhook(gw billing.Gateway, applier billingEventApplier, recorder billingEventRecorder) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/billing/webhook", ApiBillingWebhook(gw, applier, recorder, zap.NewNop().Sugar()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/billing/webhook", strings.NewReader(`{"id":"evt_1"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=sig")
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	applier := &stubApplier{}
	w := postWebhook(&stubGateway{err: errors.New("bad signature")}, applier, &stubRecorder{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, applier.calls)
}

func TestWebhookAcksIgnoredEvents(t *testing.T) {
	applier := &stubApplier{}
	recorder := &stubRecorder{}
	w := postWebhook(&stubGateway{}, applier, recorder)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, applier.calls)
	assert.Empty(t, recorder.entries)
}

func TestWebhookFailureTriggersRedelivery(t *testing.T) {
	// On an apply failure every effect rolled back, so the response must be
	// non-2xx or the provider would mark the delivery succeeded and the
	// event would be lost for good.
	ev := &types.BillingEvent{ID: "evt_1", Kind: types.BillingEventInvoicePaid, UserID: "u1"}
	applier := &stubApplier{err: errors.New("record upsert failed")}
	recorder := &stubRecorder{}
	w := postWebhook(&stubGateway{event: ev}, applier, recorder)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, applier.calls)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, models.BillingEventLogStatusHandleFailed, recorder.entries[0].Status)
}

func TestWebhookHandledEvent(t *testing.T) {
	ev := &types.BillingEvent{ID: "evt_1", Kind: types.BillingEventInvoicePaid, UserID: "u1"}
	applier := &stubApplier{}
	recorder := &stubRecorder{}
	w := postWebhook(&stubGateway{event: ev}, applier, recorder)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, applier.calls)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, models.BillingEventLogStatusHandled, recorder.entries[0].Status)
}
