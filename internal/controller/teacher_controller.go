package controller

import (
	"fmt"
	"net/http"
	"newel_classroom/internal/service"
	"newel_classroom/internal/util"
	"newel_classroom/pkg/validator"

	"github.com/gin-gonic/gin"
)

type TeacherController struct {
	PromptService  *service.PromptService
	GradingService *service.GradingService
}

func NewTeacherController(promptService *service.PromptService, gradingService *service.GradingService) *TeacherController {
	return &TeacherController{
		PromptService:  promptService,
		GradingService: gradingService,
	}
}

type CreatePromptForm struct {
	Title   string `form:"title" binding:"max=200"`
	Content string `form:"content"`
	Subject string `form:"subject" binding:"max=50"`
}

// GradeForm is validated by GradingService after the response and its
// owner are resolved.
type GradeForm struct {
	Score    string `form:"score"`
	Feedback string `form:"feedback"`
}

func (c *TeacherController) Dashboard(ctx *gin.Context) {
	prompts, err := c.PromptService.ListPromptsForTeacher(ctx.Request.Context(), util.GetUserFromContext(ctx))
	if err != nil {
		handleError(ctx, err, "/")
		return
	}
	util.HTML(ctx, http.StatusOK, "teacher_dashboard", gin.H{
		"Title":   "Teacher Dashboard",
		"Prompts": prompts,
	})
}

func (c *TeacherController) ShowCreatePrompt(ctx *gin.Context) {
	util.HTML(ctx, http.StatusOK, "create_prompt", gin.H{"Title": "Create Prompt"})
}

func (c *TeacherController) CreatePrompt(ctx *gin.Context) {
	var form CreatePromptForm
	if err := ctx.ShouldBind(&form); err != nil {
		util.RedirectWithFlash(ctx, "/create_prompt", util.FlashError, validator.FormatValidationError(err))
		return
	}

	_, err := c.PromptService.CreatePrompt(ctx.Request.Context(), util.GetUserFromContext(ctx), form.Title, form.Content, form.Subject)
	if err != nil {
		handleError(ctx, err, "/create_prompt")
		return
	}
	util.RedirectWithFlash(ctx, "/teacher/dashboard", util.FlashSuccess, "Prompt created successfully.")
}

// GradeResponses lists the responses to one of the teacher's prompts, oldest first.
func (c *TeacherController) GradeResponses(ctx *gin.Context) {
	promptID, ok := util.ParseID(ctx.Param("prompt_id"))
	if !ok {
		util.NotFound(ctx)
		return
	}

	prompt, responses, err := c.GradingService.ListResponsesForGrading(ctx.Request.Context(), util.GetUserFromContext(ctx), promptID)
	if err != nil {
		handleError(ctx, err, "/teacher/dashboard")
		return
	}
	util.HTML(ctx, http.StatusOK, "grade_responses", gin.H{
		"Title":     "Grade: " + prompt.Title,
		"Prompt":    prompt,
		"Responses": responses,
	})
}

func (c *TeacherController) GradeResponse(ctx *gin.Context) {
	responseID, ok := util.ParseID(ctx.Param("response_id"))
	if !ok {
		util.NotFound(ctx)
		return
	}

	var form GradeForm
	if err := ctx.ShouldBind(&form); err != nil {
		util.RedirectWithFlash(ctx, "/teacher/dashboard", util.FlashError, validator.FormatValidationError(err))
		return
	}

	result, err := c.GradingService.GradeResponse(ctx.Request.Context(), util.GetUserFromContext(ctx), responseID, form.Score, form.Feedback)
	if err != nil {
		fallback := "/teacher/dashboard"
		if result != nil {
			fallback = gradePath(result.PromptID)
		}
		handleError(ctx, err, fallback)
		return
	}

	message := "Grade saved."
	if result.Updated {
		message = "Grade updated."
	}
	util.RedirectWithFlash(ctx, gradePath(result.PromptID), util.FlashSuccess, message)
}

func gradePath(promptID uint) string {
	return fmt.Sprintf("/grade/%d", promptID)
}
