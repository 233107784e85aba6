package controller

import (
	"fmt"
	"net/http"
	"newel_classroom/internal/service"
	"newel_classroom/internal/util"
	"newel_classroom/pkg/validator"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	PromptService   *service.PromptService
	ResponseService *service.ResponseService
}

func NewStudentController(promptService *service.PromptService, responseService *service.ResponseService) *StudentController {
	return &StudentController{
		PromptService:   promptService,
		ResponseService: responseService,
	}
}

// ResponseForm carries the essay as typed. Emptiness is checked by the
// service once the prompt is resolved.
type ResponseForm struct {
	Content string `form:"content"`
}

func (c *StudentController) Dashboard(ctx *gin.Context) {
	responses, err := c.ResponseService.ListResponsesForStudent(ctx.Request.Context(), util.GetUserFromContext(ctx))
	if err != nil {
		handleError(ctx, err, "/")
		return
	}
	util.HTML(ctx, http.StatusOK, "student_dashboard", gin.H{
		"Title":     "Student Dashboard",
		"Responses": responses,
	})
}

func (c *StudentController) Prompts(ctx *gin.Context) {
	prompts, err := c.PromptService.ListAllPrompts(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.HTML(ctx, http.StatusOK, "prompts", gin.H{
		"Title":   "Prompts",
		"Prompts": prompts,
	})
}

func (c *StudentController) ViewPrompt(ctx *gin.Context) {
	promptID, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.NotFound(ctx)
		return
	}

	prompt, err := c.PromptService.GetPrompt(ctx.Request.Context(), promptID)
	if err != nil {
		handleError(ctx, err, "/prompts")
		return
	}
	util.HTML(ctx, http.StatusOK, "view_prompt", gin.H{
		"Title":  prompt.Title,
		"Prompt": prompt,
	})
}

func (c *StudentController) SubmitResponse(ctx *gin.Context) {
	promptID, ok := util.ParseID(ctx.Param("id"))
	if !ok {
		util.NotFound(ctx)
		return
	}
	back := fmt.Sprintf("/prompt/%d", promptID)

	var form ResponseForm
	if err := ctx.ShouldBind(&form); err != nil {
		util.RedirectWithFlash(ctx, back, util.FlashError, validator.FormatValidationError(err))
		return
	}

	if _, err := c.ResponseService.SubmitResponse(ctx.Request.Context(), util.GetUserFromContext(ctx), promptID, form.Content); err != nil {
		handleError(ctx, err, back)
		return
	}
	util.RedirectWithFlash(ctx, "/student/dashboard", util.FlashSuccess, "Response submitted.")
}
