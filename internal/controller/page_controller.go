package controller

import (
	"net/http"
	"newel_classroom/internal/service"
	"newel_classroom/internal/util"

	"github.com/gin-gonic/gin"
)

type PageController struct {
	LeaderboardService *service.LeaderboardService
}

func NewPageController(leaderboardService *service.LeaderboardService) *PageController {
	return &PageController{LeaderboardService: leaderboardService}
}

// Index sends signed-in users to their dashboard and shows the landing page otherwise.
func (c *PageController) Index(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	switch {
	case user.IsTeacher():
		util.Redirect(ctx, "/teacher/dashboard")
	case user.IsStudent():
		util.Redirect(ctx, "/student/dashboard")
	default:
		util.HTML(ctx, http.StatusOK, "index", gin.H{"Title": "Welcome"})
	}
}

func (c *PageController) Leaderboard(ctx *gin.Context) {
	entries, err := c.LeaderboardService.ComputeLeaderboard(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.HTML(ctx, http.StatusOK, "leaderboard", gin.H{
		"Title":       "Leaderboard",
		"Leaderboard": entries,
	})
}

func (c *PageController) NoRoute(ctx *gin.Context) {
	util.NotFound(ctx)
}
