package controller

import (
	"errors"
	"newel_classroom/internal/util"

	"github.com/gin-gonic/gin"
)

// handleError maps service errors to the page-level outcome: a 404 page, a
// flash message with a redirect to fallback, or a logged 500.
func handleError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, util.ErrNotFound):
		util.NotFound(ctx)
	case util.IsHandled(err):
		util.RedirectWithFlash(ctx, fallback, util.FlashError, util.Message(err, "Something went wrong."))
	default:
		util.LogInternalError(ctx, err)
	}
}
