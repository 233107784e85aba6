package service

import (
	"context"
	"newel_classroom/internal/model"
	"newel_classroom/internal/repository"
	"newel_classroom/internal/util"
	"newel_classroom/pkg/monitoring"
	"newel_classroom/pkg/tracing"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type ResponseService struct {
	DB           *gorm.DB
	PromptRepo   *repository.PromptRepository
	ResponseRepo *repository.ResponseRepository
}

func NewResponseService(db *gorm.DB, promptRepo *repository.PromptRepository, responseRepo *repository.ResponseRepository) *ResponseService {
	return &ResponseService{
		DB:           db,
		PromptRepo:   promptRepo,
		ResponseRepo: responseRepo,
	}
}

// SubmitResponse stores a new response. Students may answer the same prompt
// more than once; every submission is kept.
func (s *ResponseService) SubmitResponse(ctx context.Context, student *model.User, promptID uint, content string) (*model.Response, error) {
	ctx, span := tracing.Start(ctx, "responses.submit", attribute.Int64("prompt.id", int64(promptID)))
	defer span.End()

	if err := RequireRole(student, model.Student); err != nil {
		return nil, err
	}

	response := &model.Response{
		Content:   strings.TrimSpace(content),
		PromptID:  promptID,
		StudentID: student.ID,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.PromptRepo.WithTx(tx).FindByID(ctx, promptID); err != nil {
			return notFound(err, "Prompt not found.")
		}
		if response.Content == "" {
			return util.NewValidationError("Response cannot be empty.")
		}
		return s.ResponseRepo.WithTx(tx).Create(ctx, response)
	})
	if err != nil {
		return nil, err
	}

	monitoring.ResponsesSubmitted.Inc()
	return response, nil
}

// ListResponsesForStudent returns the student's responses, newest first, with prompt and grade loaded.
func (s *ResponseService) ListResponsesForStudent(ctx context.Context, student *model.User) ([]model.Response, error) {
	if err := RequireRole(student, model.Student); err != nil {
		return nil, err
	}
	return s.ResponseRepo.ListByStudent(ctx, student.ID)
}
