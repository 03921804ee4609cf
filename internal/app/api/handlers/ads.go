package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthlab/boostup/internal/app/service/ads"
	"github.com/growthlab/boostup/pkg/response"
)

// @Summary      Ads for Placement
// @Description  Returns the active ad units for a placement.
// @Tags         Ads
// @Produce      json
// @Param        placement query string true "Placement name"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/ads [get]
func ApiAdsForPlacement(svc *ads.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		placement := c.Query("placement")
		if placement == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing placement"))
			return
		}
		units, err := svc.ActiveForPlacement(c.Request.Context(), placement)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(units))
	}
}

func RegisterAdRoutes(r gin.IRouter, svc *ads.Service) {
	r.GET("/ads", ApiAdsForPlacement(svc))
}
