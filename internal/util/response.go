package util

import (
	"net/http"
	"newel_classroom/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一 JSON 响应结构（健康检查等）
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// HTML renders a page with the current user and pending flashes merged into data.
func HTML(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = GetUserFromContext(c)
	data["Flashes"] = ConsumeFlashes(c)
	c.HTML(status, page, data)
}

func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func RedirectWithFlash(c *gin.Context, location, category, message string) {
	SetFlash(c, category, message)
	Redirect(c, location)
}

func NotFound(c *gin.Context) {
	HTML(c, http.StatusNotFound, "404", gin.H{"Title": "Not Found"})
}

func InternalServerError(c *gin.Context) {
	HTML(c, http.StatusInternalServerError, "500", gin.H{"Title": "Server Error"})
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	InternalServerError(c)
}
