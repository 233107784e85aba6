package util

import (
	"net/http"
	"newel_classroom/internal/config"

	"github.com/gin-gonic/gin"
)

func SetSessionCookie(c *gin.Context, cfg *config.SessionConfig, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, token, int(cfg.TTL.Seconds()), "/", "", cfg.SecureCookie, true)
}

func ClearSessionCookie(c *gin.Context, cfg *config.SessionConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.SecureCookie, true)
}
