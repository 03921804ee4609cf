package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/growthlab/boostup/internal/app/service/ads"
	"github.com/growthlab/boostup/internal/app/service/billing"
	"github.com/growthlab/boostup/internal/app/service/ledger"
	"github.com/growthlab/boostup/internal/app/service/statistics"
	"github.com/growthlab/boostup/pkg/logctx"
	"github.com/growthlab/boostup/pkg/response"
)

// @Summary      Admin Overview
// @Description  Returns headline totals for the admin dashboard.
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/overview [get]
func ApiAdminOverview(stats *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		overview, err := stats.GetOverview(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(overview))
	}
}

// @Summary      Engagement Statistics (Admin)
// @Description  Retrieves daily engagement series for the admin charts.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body statistics.EngagementStatisticRequest true "Statistic request parameters"
// @Success      200  {object}  handlers.RespEngagementStatistic
// @Router       /api/v1/admin/get_engagement_statistic [post]
func ApiGetEngagementStatistic(stats *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statistics.EngagementStatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if len(req.DataItems) == 0 {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing data_items"))
			return
		}
		res, err := stats.GetEngagementStatistic(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      List Users (Admin)
// @Description  Retrieves a paginated and filterable list of users with their engagement state.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body statistics.ScanUsersRequest true "Scan request with filters, pagination, and sorting"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/list_users [post]
func ApiListUsers(stats *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statistics.ScanUsersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := stats.ScanUsers(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Ban User (Admin)
// @Tags         Admin
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/users/{id}/ban [post]
func ApiBanUser(stats *statistics.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return setBannedHandler(stats, log, true)
}

// @Summary      Unban User (Admin)
// @Tags         Admin
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/users/{id}/unban [post]
func ApiUnbanUser(stats *statistics.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return setBannedHandler(stats, log, false)
}

func setBannedHandler(stats *statistics.Service, log *zap.SugaredLogger, banned bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")
		if err := stats.SetBanned(c.Request.Context(), userID, banned); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		logctx.FromGin(c, log).Infow("admin_set_banned", "target_user_id", userID, "banned", banned, "admin_user_id", c.GetString("user_id"))
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

type AwardPointsRequest struct {
	Delta  int64  `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

// @Summary      Award Points (Admin)
// @Description  Applies a manual point delta to a user's balance.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body AwardPointsRequest true "Point delta"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/users/{id}/points [post]
func ApiAwardPoints(led *ledger.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")
		var req AwardPointsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		reason := req.Reason
		if reason == "" {
			reason = "admin_award"
		}
		balance, err := led.AddPoints(c.Request.Context(), userID, req.Delta, reason)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		logctx.FromGin(c, log).Infow("admin_award_points", "target_user_id", userID, "delta", req.Delta, "admin_user_id", c.GetString("user_id"))
		c.JSON(http.StatusOK, response.OKT(map[string]int64{"balance": balance}))
	}
}

type PremiumOverrideRequest struct {
	Premium *bool `json:"premium" binding:"required"`
}

// @Summary      Premium Override (Admin)
// @Description  Toggles a user's premium state without a provider subscription.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body PremiumOverrideRequest true "Premium flag"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/users/{id}/premium [post]
func ApiPremiumOverride(bil *billing.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")
		var req PremiumOverrideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := bil.SetPremiumOverride(c.Request.Context(), userID, *req.Premium); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		logctx.FromGin(c, log).Infow("admin_premium_override", "target_user_id", userID, "premium", *req.Premium, "admin_user_id", c.GetString("user_id"))
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

// @Summary      List Ad Units (Admin)
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/ads [get]
func ApiListAdUnits(svc *ads.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		units, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(units))
	}
}

// @Summary      Create Ad Unit (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body ads.UpsertAdUnitRequest true "Ad unit"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/ads [post]
func ApiCreateAdUnit(svc *ads.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ads.UpsertAdUnitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		unit, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(unit))
	}
}

// @Summary      Update Ad Unit (Admin)
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Ad unit ID"
// @Param        request body ads.UpsertAdUnitRequest true "Ad unit"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/ads/{id} [put]
func ApiUpdateAdUnit(svc *ads.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ads.UpsertAdUnitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		unit, err := svc.Update(c.Request.Context(), c.Param("id"), &req)
		if err != nil {
			if errors.Is(err, ads.ErrAdUnitNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(unit))
	}
}

// @Summary      Delete Ad Unit (Admin)
// @Tags         Admin
// @Produce      json
// @Param        id path string true "Ad unit ID"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/ads/{id} [delete]
func ApiDeleteAdUnit(svc *ads.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, ads.ErrAdUnitNotFound) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

func RegisterAdminRoutes(r gin.IRouter, stats *statistics.Service, led *ledger.Service, bil *billing.Service, adSvc *ads.Service, log *zap.SugaredLogger) {
	r.GET("/overview", ApiAdminOverview(stats))
	r.POST("/get_engagement_statistic", ApiGetEngagementStatistic(stats))
	r.POST("/list_users", ApiListUsers(stats))
	r.POST("/users/:id/ban", ApiBanUser(stats, log))
	r.POST("/users/:id/unban", ApiUnbanUser(stats, log))
	r.POST("/users/:id/points", ApiAwardPoints(led, log))
	r.POST("/users/:id/premium", ApiPremiumOverride(bil, log))
	r.GET("/ads", ApiListAdUnits(adSvc))
	r.POST("/ads", ApiCreateAdUnit(adSvc))
	r.PUT("/ads/:id", ApiUpdateAdUnit(adSvc))
	r.DELETE("/ads/:id", ApiDeleteAdUnit(adSvc))
}
