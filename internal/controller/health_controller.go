package controller

import (
	"net/http"
	"newel_classroom/internal/session"
	"newel_classroom/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB       *gorm.DB
	Sessions session.Store
}

func NewHealthController(db *gorm.DB, sessions session.Store) *HealthController {
	return &HealthController{DB: db, Sessions: sessions}
}

func (c *HealthController) HealthCheck(ctx *gin.Context) {
	components := gin.H{"database": "up", "sessions": "up"}
	healthy := true

	// 检查数据库连接
	sqlDB, err := c.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		components["database"] = "down"
		healthy = false
	}

	if err := c.Sessions.Ping(ctx.Request.Context()); err != nil {
		components["sessions"] = "down"
		healthy = false
	}

	if !healthy {
		ctx.JSON(http.StatusServiceUnavailable, util.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "unavailable",
			Data:    gin.H{"status": "degraded", "components": components},
		})
		return
	}
	util.Success(ctx, gin.H{"status": "ok", "components": components})
}
