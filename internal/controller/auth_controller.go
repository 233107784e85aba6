package controller

import (
	"net/http"
	"newel_classroom/internal/config"
	"newel_classroom/internal/service"
	"newel_classroom/internal/util"
	"newel_classroom/pkg/validator"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	Cfg         *config.Config
}

func NewAuthController(authService *service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{
		AuthService: authService,
		Cfg:         cfg,
	}
}

// RegisterForm 注册表单，必填校验在 service 层完成
type RegisterForm struct {
	Name      string `form:"name" binding:"max=150"`
	Password  string `form:"password" binding:"max=128"`
	UserType  string `form:"user_type" binding:"omitempty,oneof=Teacher Student"`
	YearLevel string `form:"year_level" binding:"max=4"`
}

type LoginForm struct {
	Name     string `form:"name" binding:"max=150"`
	Password string `form:"password" binding:"max=128"`
}

func (c *AuthController) ShowRegister(ctx *gin.Context) {
	util.HTML(ctx, http.StatusOK, "register", gin.H{"Title": "Register"})
}

func (c *AuthController) Register(ctx *gin.Context) {
	var form RegisterForm
	if err := ctx.ShouldBind(&form); err != nil {
		util.RedirectWithFlash(ctx, "/register", util.FlashError, validator.FormatValidationError(err))
		return
	}

	_, err := c.AuthService.Register(ctx.Request.Context(), service.RegisterInput{
		Name:      form.Name,
		Password:  form.Password,
		UserType:  form.UserType,
		YearLevel: form.YearLevel,
	})
	if err != nil {
		handleError(ctx, err, "/register")
		return
	}

	util.RedirectWithFlash(ctx, "/login", util.FlashSuccess, "Registration successful. Please log in.")
}

func (c *AuthController) ShowLogin(ctx *gin.Context) {
	util.HTML(ctx, http.StatusOK, "login", gin.H{"Title": "Log in"})
}

func (c *AuthController) Login(ctx *gin.Context) {
	var form LoginForm
	if err := ctx.ShouldBind(&form); err != nil {
		util.RedirectWithFlash(ctx, "/login", util.FlashError, validator.FormatValidationError(err))
		return
	}

	_, token, err := c.AuthService.Login(ctx.Request.Context(), form.Name, form.Password)
	if err != nil {
		handleError(ctx, err, "/login")
		return
	}

	util.SetSessionCookie(ctx, &c.Cfg.Session, token)
	util.RedirectWithFlash(ctx, "/", util.FlashSuccess, "Logged in successfully.")
}

func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.AuthService.Logout(ctx.Request.Context(), util.GetClaimsFromContext(ctx)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.ClearSessionCookie(ctx, &c.Cfg.Session)
	util.RedirectWithFlash(ctx, "/", util.FlashInfo, "Logged out.")
}
