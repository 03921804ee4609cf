package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthlab/boostup/internal/app/service/content"
	"github.com/growthlab/boostup/pkg/response"
)

type HashtagsRequest struct {
	Niche string `json:"niche"`
	Count int    `json:"count"`
}

// @Summary      Generate Hashtags
// @Description  Returns hashtag suggestions for a niche.
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        request body HashtagsRequest true "Hashtag request"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/content/hashtags [post]
func ApiGenerateHashtags(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		var req HashtagsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		tags, err := svc.Hashtags(c.Request.Context(), userID, req.Niche, req.Count)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(tags))
	}
}

type IdeasRequest struct {
	Count int `json:"count"`
}

// @Summary      Generate Ideas
// @Description  Returns content idea prompts and advances the idea challenge.
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        request body IdeasRequest true "Ideas request"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/content/ideas [post]
func ApiGenerateIdeas(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		var req IdeasRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.Ideas(c.Request.Context(), userID, req.Count)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type AnalysisRequest struct {
	Handle string `json:"handle" binding:"required"`
}

// @Summary      Profile Analysis
// @Description  Runs the profile analysis for a handle and advances the analysis challenge.
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        request body AnalysisRequest true "Analysis request"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/content/analysis [post]
func ApiProfileAnalysis(svc *content.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		var req AnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.Analyze(c.Request.Context(), userID, req.Handle)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterContentRoutes(r gin.IRouter, svc *content.Service) {
	r.POST("/content/hashtags", ApiGenerateHashtags(svc))
	r.POST("/content/ideas", ApiGenerateIdeas(svc))
	r.POST("/content/analysis", ApiProfileAnalysis(svc))
}
