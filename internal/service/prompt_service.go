package service

import (
	"context"
	"newel_classroom/internal/model"
	"newel_classroom/internal/repository"
	"newel_classroom/internal/util"
	"newel_classroom/pkg/logger"
	"newel_classroom/pkg/monitoring"
	"newel_classroom/pkg/tracing"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PromptService struct {
	DB         *gorm.DB
	PromptRepo *repository.PromptRepository
}

func NewPromptService(db *gorm.DB, promptRepo *repository.PromptRepository) *PromptService {
	return &PromptService{
		DB:         db,
		PromptRepo: promptRepo,
	}
}

func (s *PromptService) CreatePrompt(ctx context.Context, teacher *model.User, title, content, subject string) (*model.Prompt, error) {
	ctx, span := tracing.Start(ctx, "prompts.create")
	defer span.End()

	if err := RequireRole(teacher, model.Teacher); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, util.NewValidationError("Title and content are required for a prompt.")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = model.DefaultSubject
	}

	prompt := &model.Prompt{
		Title:     title,
		Content:   content,
		Subject:   subject,
		TeacherID: teacher.ID,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.PromptRepo.WithTx(tx).Create(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}

	monitoring.PromptsCreated.Inc()
	return prompt, nil
}

// ListPromptsForTeacher returns the teacher's own prompts, newest first.
func (s *PromptService) ListPromptsForTeacher(ctx context.Context, teacher *model.User) ([]model.Prompt, error) {
	if err := RequireRole(teacher, model.Teacher); err != nil {
		return nil, err
	}
	return s.PromptRepo.ListByTeacher(ctx, teacher.ID)
}

// ListAllPrompts returns every prompt, newest first.
func (s *PromptService) ListAllPrompts(ctx context.Context) ([]model.Prompt, error) {
	return s.PromptRepo.ListAll(ctx)
}

func (s *PromptService) GetPrompt(ctx context.Context, id uint) (*model.Prompt, error) {
	prompt, err := s.PromptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Prompt not found.")
	}
	return prompt, nil
}

// DeletePrompt removes a prompt with its responses and their grades.
func (s *PromptService) DeletePrompt(ctx context.Context, id uint) error {
	if err := s.PromptRepo.Delete(ctx, id); err != nil {
		return notFound(err, "Prompt not found.")
	}
	logger.Log.Info("Prompt deleted", zap.Uint("promptID", id))
	return nil
}
