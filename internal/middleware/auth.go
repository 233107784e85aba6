package middleware

import (
	"errors"
	"newel_classroom/internal/config"
	"newel_classroom/internal/model"
	"newel_classroom/internal/service"
	"newel_classroom/internal/util"
	"newel_classroom/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionMiddleware resolves the session cookie into the current user. It
// never blocks: anonymous requests simply carry no user.
func SessionMiddleware(auth *service.AuthService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.Session.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, claims, err := auth.CurrentUser(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrNotAuthenticated) {
				logger.Log.Warn("Session lookup failed", zap.Error(err))
			}
			// 过期或被注销的会话，清掉残留 cookie
			util.ClearSessionCookie(c, &cfg.Session)
			c.Next()
			return
		}

		c.Set(util.ContextUserKey, user)
		c.Set(util.ContextClaimsKey, claims)
		c.Next()
	}
}

// RequireLogin sends anonymous visitors to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if util.GetUserFromContext(c) == nil {
			util.RedirectWithFlash(c, "/login", util.FlashInfo, "Please log in to access this page.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleMiddleware lets through only users holding role; others go back to the
// index page with a message.
func RoleMiddleware(role model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.RedirectWithFlash(c, "/login", util.FlashInfo, "Please log in to access this page.")
			c.Abort()
			return
		}

		if err := service.RequireRole(user, role); err != nil {
			util.RedirectWithFlash(c, "/", util.FlashError, util.Message(err, "Access denied."))
			c.Abort()
			return
		}
		c.Next()
	}
}
