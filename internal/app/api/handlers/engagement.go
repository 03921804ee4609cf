package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthlab/boostup/internal/app/service/engagement"
	"github.com/growthlab/boostup/pkg/response"
)

// @Summary      Suggested Profiles
// @Description  Returns creator profiles the user has not followed yet.
// @Tags         Engagement
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/profiles/suggestions [get]
func ApiProfileSuggestions(svc *engagement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		profiles, err := svc.Suggestions(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(profiles))
	}
}

// @Summary      Follow Profile
// @Description  Records a follow, awards follow points and advances the follow challenge. Re-follows are rejected.
// @Tags         Engagement
// @Produce      json
// @Param        id path string true "Profile ID"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/profiles/{id}/follow [post]
func ApiFollowProfile(svc *engagement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		profileID := c.Param("id")
		if profileID == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing profile id"))
			return
		}
		res, err := svc.FollowProfile(c.Request.Context(), userID, profileID)
		if err != nil {
			if errors.Is(err, engagement.ErrAlreadyFollowed) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type SubmitVideoRequest struct {
	URL string `json:"url" binding:"required"`
}

// @Summary      Submit Video
// @Description  Validates and records a shared video URL, awards points and advances the share challenge. Duplicates are rejected.
// @Tags         Engagement
// @Accept       json
// @Produce      json
// @Param        request body SubmitVideoRequest true "Video submission"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/videos [post]
func ApiSubmitVideo(svc *engagement.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		var req SubmitVideoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.SubmitVideo(c.Request.Context(), userID, req.URL)
		if err != nil {
			if errors.Is(err, engagement.ErrInvalidVideoURL) || errors.Is(err, engagement.ErrDuplicateVideo) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterEngagementRoutes(r gin.IRouter, svc *engagement.Service) {
	r.GET("/profiles/suggestions", ApiProfileSuggestions(svc))
	r.POST("/profiles/:id/follow", ApiFollowProfile(svc))
	r.POST("/videos", ApiSubmitVideo(svc))
}
