package app

import (
	"newel_classroom/internal/config"
	"newel_classroom/internal/middleware"
	"newel_classroom/internal/model"
	"newel_classroom/internal/util"
	"newel_classroom/pkg/monitoring"
	"newel_classroom/pkg/security"
	"time"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)
	router.NoRoute(c.page.NoRoute)

	// 1. 公共页面(无需登录)
	a.registerPublicRoutes(router, c, cfg)

	// 2. 登录后通用页面
	authGroup := router.Group("/")
	authGroup.Use(middleware.RequireLogin())
	{
		authGroup.GET("/logout", c.auth.Logout)
		authGroup.GET("/leaderboard", c.page.Leaderboard)
	}

	// 3. 教师页面
	a.registerTeacherRoutes(router, c)

	// 4. 学生页面
	a.registerStudentRoutes(router, c)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	// 登录与注册共用一个按 IP 的限流器
	limiter := security.RateLimiter(cfg.RateLimit.MaxRequests, window, func(ctx *gin.Context) {
		util.RedirectWithFlash(ctx, ctx.Request.URL.Path, util.FlashError, "Too many attempts. Please wait a minute and try again.")
	})

	router.GET("/", c.page.Index)
	router.GET("/register", c.auth.ShowRegister)
	router.POST("/register", limiter, c.auth.Register)
	router.GET("/login", c.auth.ShowLogin)
	router.POST("/login", limiter, c.auth.Login)
}

func (a *App) registerTeacherRoutes(router *gin.Engine, c *controllers) {
	teacher := router.Group("/")
	teacher.Use(middleware.RequireLogin(), middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/teacher/dashboard", c.teacher.Dashboard)
		teacher.GET("/create_prompt", c.teacher.ShowCreatePrompt)
		teacher.POST("/create_prompt", c.teacher.CreatePrompt)
		teacher.GET("/grade/:prompt_id", c.teacher.GradeResponses)
		teacher.POST("/grade_response/:response_id", c.teacher.GradeResponse)
	}
}

func (a *App) registerStudentRoutes(router *gin.Engine, c *controllers) {
	student := router.Group("/")
	student.Use(middleware.RequireLogin(), middleware.RoleMiddleware(model.Student))
	{
		student.GET("/student/dashboard", c.student.Dashboard)
		student.GET("/prompts", c.student.Prompts)
		student.GET("/prompt/:id", c.student.ViewPrompt)
		student.POST("/prompt/:id", c.student.SubmitResponse)
	}
}
