package middleware

import (
	"newel_classroom/internal/util"

	"github.com/gin-gonic/gin"
)

// FlashMiddleware exposes messages left by earlier requests. They are only
// cleared once a page renders them.
func FlashMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if flashes := util.ReadFlashes(c); len(flashes) > 0 {
			c.Set(util.ContextFlashesKey, flashes)
		}
		c.Next()
	}
}
