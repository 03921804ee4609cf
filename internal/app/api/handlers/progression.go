package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/growthlab/boostup/internal/app/service/billing"
	"github.com/growthlab/boostup/internal/app/service/leaderboard"
	"github.com/growthlab/boostup/internal/app/service/ledger"
	"github.com/growthlab/boostup/internal/app/service/progression"
	"github.com/growthlab/boostup/internal/models"
	"github.com/growthlab/boostup/pkg/response"
	"github.com/growthlab/boostup/pkg/types"
)

type DashboardResponse struct {
	Statistics   *models.UserStatistics    `json:"statistics"`
	Streak       *models.UserStreak        `json:"streak"`
	Subscription *types.SubscriptionInfo   `json:"subscription"`
	Rank         int64                     `json:"rank"`
	Challenges   []*progression.StepResult `json:"challenges"`
}

// @Summary      Dashboard
// @Description  Returns the signed-in user's statistics, streak, subscription state, leaderboard rank and today's challenges.
// @Tags         Me
// @Produce      json
// @Success      200  {object}  handlers.RespDashboard
// @Router       /api/v1/me/dashboard [get]
func ApiDashboard(led *ledger.Service, prog *progression.Service, bil *billing.Service, board *leaderboard.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		stats, err := led.EnsureStatistics(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		streak, err := prog.Streak(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		sub, err := bil.Status(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		rank, err := board.Rank(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		challenges, err := prog.TodayProgress(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}

		c.JSON(http.StatusOK, response.OKT(&DashboardResponse{
			Statistics:   stats,
			Streak:       streak,
			Subscription: sub,
			Rank:         rank,
			Challenges:   challenges,
		}))
	}
}

// @Summary      Streak
// @Description  Returns the user's current daily streak state.
// @Tags         Me
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/me/streak [get]
func ApiStreak(prog *progression.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		streak, err := prog.Streak(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(streak))
	}
}

// @Summary      Point History
// @Description  Returns the user's recent point ledger entries.
// @Tags         Me
// @Produce      json
// @Param        limit query int false "Max entries, default 50"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/me/points/history [get]
func ApiPointHistory(led *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		limit := 50
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
				limit = n
			}
		}
		logs, err := led.RecentPointLogs(c.Request.Context(), userID, limit)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(logs))
	}
}

type ChallengeListItem struct {
	*types.ChallengeDefinition
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

// @Summary      List Challenges
// @Description  Returns all daily challenges with the user's progress for today.
// @Tags         Challenges
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/challenges [get]
func ApiListChallenges(prog *progression.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		steps, err := prog.TodayProgress(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		byCode := make(map[types.ChallengeCode]*progression.StepResult, len(steps))
		for _, st := range steps {
			byCode[st.Challenge] = st
		}
		items := make([]*ChallengeListItem, 0, len(types.Challenges))
		for _, def := range types.Challenges {
			item := &ChallengeListItem{ChallengeDefinition: def}
			if st, ok := byCode[def.Code]; ok {
				item.Progress = st.Progress
				item.Completed = st.Completed
			}
			items = append(items, item)
		}
		c.JSON(http.StatusOK, response.OKT(items))
	}
}

// @Summary      Advance Challenge
// @Description  Advances the named challenge by one step and applies streak, bonus and badge effects when it completes.
// @Tags         Challenges
// @Produce      json
// @Param        code path string true "Challenge code"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/challenges/{code}/advance [post]
func ApiAdvanceChallenge(prog *progression.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		code := types.ChallengeCode(c.Param("code"))
		res, err := prog.CompleteChallengeStep(c.Request.Context(), userID, code)
		if err != nil {
			if errors.Is(err, progression.ErrUnknownChallenge) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Badges
// @Description  Returns badges the user has earned.
// @Tags         Me
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/badges [get]
func ApiBadges(prog *progression.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		badges, err := prog.Badges(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(badges))
	}
}

// @Summary      Notifications
// @Description  Returns the user's recent notifications.
// @Tags         Me
// @Produce      json
// @Param        limit query int false "Max entries, default 20"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/notifications [get]
func ApiNotifications(prog *progression.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		limit := 20
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}
		notifs, err := prog.Notifications(c.Request.Context(), userID, limit)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(notifs))
	}
}

// @Summary      Leaderboard
// @Description  Returns the top users ranked by points.
// @Tags         Leaderboard
// @Produce      json
// @Param        size query int false "Board size, default 20"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/leaderboard [get]
func ApiLeaderboard(board *leaderboard.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		size := int64(20)
		if v := c.Query("size"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 && n <= 100 {
				size = n
			}
		}
		entries, err := board.Top(c.Request.Context(), size)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(entries))
	}
}

func RegisterProgressionRoutes(r gin.IRouter, led *ledger.Service, prog *progression.Service, bil *billing.Service, board *leaderboard.Service) {
	r.GET("/me/dashboard", ApiDashboard(led, prog, bil, board))
	r.GET("/me/streak", ApiStreak(prog))
	r.GET("/me/points/history", ApiPointHistory(led))
	r.GET("/badges", ApiBadges(prog))
	r.GET("/notifications", ApiNotifications(prog))
	r.GET("/challenges", ApiListChallenges(prog))
	r.POST("/challenges/:code/advance", ApiAdvanceChallenge(prog))
	r.GET("/leaderboard", ApiLeaderboard(board))
}
