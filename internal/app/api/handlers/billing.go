package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthlab/boostup/internal/app/service/billing"
	"github.com/growthlab/boostup/pkg/response"
)

// @Summary      Subscription Status
// @Description  Returns the user's subscription state. With refresh=true the provider is polled first.
// @Tags         Billing
// @Produce      json
// @Param        refresh query bool false "Poll the provider before answering"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/billing/status [get]
func ApiBillingStatus(svc *billing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		email := c.GetString("email")

		if c.Query("refresh") == "true" {
			info, err := svc.PollStatus(c.Request.Context(), userID, email)
			if err != nil {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.OKT(info))
			return
		}

		info, err := svc.Status(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(info))
	}
}

type CheckoutRequest struct {
	// Item is "premium" for the subscription plan or a configured point
	// pack id.
	Item string `json:"item" binding:"required"`
}

// @Summary      Create Checkout
// @Description  Starts a provider checkout session for the premium plan or a point pack.
// @Tags         Billing
// @Accept       json
// @Produce      json
// @Param        request body CheckoutRequest true "Checkout request"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/billing/checkout [post]
func ApiCreateCheckout(svc *billing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		email := c.GetString("email")
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		sess, err := svc.CreateCheckout(c.Request.Context(), userID, email, req.Item)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(sess))
	}
}

// @Summary      Billing Portal
// @Description  Starts a provider billing portal session for the user.
// @Tags         Billing
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/billing/portal [post]
func ApiCreatePortal(svc *billing.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		url, err := svc.CreatePortal(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, billing.ErrNoBillingCustomer) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"url": url}))
	}
}

func RegisterBillingRoutes(r gin.IRouter, svc *billing.Service) {
	r.GET("/billing/status", ApiBillingStatus(svc))
	r.POST("/billing/checkout", ApiCreateCheckout(svc))
	r.POST("/billing/portal", ApiCreatePortal(svc))
}
