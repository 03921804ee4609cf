package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/growthlab/boostup/internal/app/service/billing"
	"github.com/growthlab/boostup/internal/app/service/eventlog"
	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/logctx"
	"github.com/growthlab/boostup/pkg/response"
	"github.com/growthlab/boostup/pkg/types"
)

type billingEventApplier interface {
	ApplyEvent(ctx context.Context, ev *types.BillingEvent) error
}

type billingEventRecorder interface {
	Save(ctx context.Context, entry *models.BillingEventLog)
}

// @Summary      Billing Webhook
// @Description  Handles provider webhook deliveries. The Stripe-Signature header is verified before the payload is interpreted; replayed event IDs are acknowledged without effect.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        payload body string true "Provider event payload"
// @Success      200  {object}  handlers.RespOK
// @Failure      500  {object}  handlers.RespOK
// @Router       /api/v1/billing/webhook [post]
func ApiBillingWebhook(gw billing.Gateway, svc billingEventApplier, elog billingEventRecorder, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid payload"))
			return
		}

		ev, err := gw.VerifyWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
		if err != nil {
			logctx.FromGin(c, log).Errorw("webhook_verify_failed", "error", err.Error())
			c.JSON(http.StatusBadRequest, response.ErrorT[any](response.APIResponseCodeBadRequest, "signature verification failed"))
			return
		}
		if ev == nil {
			// Event type we do not handle; acknowledge so the provider
			// stops retrying.
			c.JSON(http.StatusOK, response.OKT[any](nil))
			return
		}

		entry := &models.BillingEventLog{
			EventID: ev.ID,
			Kind:    string(ev.Kind),
			TraceID: c.GetString("traceID"),
			Data:    datatypes.JSON(payload),
			Status:  models.BillingEventLogStatusHandled,
		}
		if ev.UserID != "" {
			entry.UserID = &ev.UserID
		}

		if err := svc.ApplyEvent(c.Request.Context(), ev); err != nil {
			entry.Status = models.BillingEventLogStatusHandleFailed
			raw, _ := json.Marshal(map[string]string{"error": err.Error()})
			result := datatypes.JSON(raw)
			entry.Result = &result
			elog.Save(c.Request.Context(), entry)

			logctx.FromGin(c, log).Errorw("webhook_handle_failed", "event_id", ev.ID, "error", err.Error())
			// Non-2xx makes the provider redeliver; the rolled-back event
			// mark lets the retry apply cleanly.
			c.JSON(http.StatusInternalServerError, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}

		elog.Save(c.Request.Context(), entry)
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

func RegisterBillingWebhookRoutes(r gin.IRouter, gw billing.Gateway, svc *billing.Service, elog *eventlog.Service, log *zap.SugaredLogger) {
	r.POST("/billing/webhook", ApiBillingWebhook(gw, svc, elog, log))
}
