package service

import (
	"context"
	"errors"
	"newel_classroom/internal/model"
	"newel_classroom/internal/repository"
	"newel_classroom/internal/util"
	"newel_classroom/pkg/logger"
	"newel_classroom/pkg/monitoring"
	"newel_classroom/pkg/tracing"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GradingService struct {
	DB           *gorm.DB
	PromptRepo   *repository.PromptRepository
	ResponseRepo *repository.ResponseRepository
	GradeRepo    *repository.GradeRepository
}

func NewGradingService(db *gorm.DB, promptRepo *repository.PromptRepository, responseRepo *repository.ResponseRepository, gradeRepo *repository.GradeRepository) *GradingService {
	return &GradingService{
		DB:           db,
		PromptRepo:   promptRepo,
		ResponseRepo: responseRepo,
		GradeRepo:    gradeRepo,
	}
}

// GradeResult is returned as soon as the response is resolved, so callers can
// send the teacher back to the prompt's grading page even when validation fails.
type GradeResult struct {
	Grade    *model.Grade
	PromptID uint
	Updated  bool
}

// GradeResponse creates or replaces the single grade of a response.
func (s *GradingService) GradeResponse(ctx context.Context, teacher *model.User, responseID uint, scoreRaw, feedback string) (*GradeResult, error) {
	ctx, span := tracing.Start(ctx, "grading.grade_response", attribute.Int64("response.id", int64(responseID)))
	defer span.End()

	if err := RequireRole(teacher, model.Teacher); err != nil {
		return nil, err
	}

	response, err := s.ResponseRepo.FindByID(ctx, responseID)
	if err != nil {
		return nil, notFound(err, "Response not found.")
	}
	if err := RequireOwnership(response.Prompt, teacher, "You are not authorized to grade this response."); err != nil {
		return nil, err
	}

	result := &GradeResult{PromptID: response.PromptID}

	score, err := ParseScore(scoreRaw)
	if err != nil {
		return result, err
	}

	grade, updated, err := s.upsert(ctx, responseID, score, strings.TrimSpace(feedback))
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 另一请求抢先插入，改为更新，保持最后写入生效
		logger.Log.Debug("Grade insert lost race, retrying as update", zap.Uint("responseID", responseID))
		grade, updated, err = s.upsert(ctx, responseID, score, strings.TrimSpace(feedback))
	}
	if err != nil {
		return result, err
	}

	result.Grade = grade
	result.Updated = updated
	action := "created"
	if updated {
		action = "updated"
	}
	monitoring.GradesRecorded.WithLabelValues(action).Inc()
	return result, nil
}

// upsert runs the find-then-write in one transaction so score and feedback
// change together.
func (s *GradingService) upsert(ctx context.Context, responseID uint, score int, feedback string) (*model.Grade, bool, error) {
	var (
		grade   *model.Grade
		updated bool
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		grades := s.GradeRepo.WithTx(tx)

		existing, err := grades.FindByResponseID(ctx, responseID)
		if err == nil {
			grade = existing
			updated = true
			return grades.UpdateScore(ctx, existing, score, feedback)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		grade = &model.Grade{
			Score:        score,
			FeedbackText: feedback,
			ResponseID:   responseID,
		}
		return grades.Create(ctx, grade)
	})
	if err != nil {
		return nil, false, err
	}
	return grade, updated, nil
}

// ParseScore accepts integers in [MinScore, MaxScore].
func ParseScore(raw string) (int, error) {
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, util.NewValidationError("Score must be an integer between 0 and 100.")
	}
	if score < model.MinScore || score > model.MaxScore {
		return 0, util.NewValidationError("Score must be between 0 and 100.")
	}
	return score, nil
}

// ListResponsesForGrading returns a prompt owned by teacher and its responses, oldest first.
func (s *GradingService) ListResponsesForGrading(ctx context.Context, teacher *model.User, promptID uint) (*model.Prompt, []model.Response, error) {
	if err := RequireRole(teacher, model.Teacher); err != nil {
		return nil, nil, err
	}

	prompt, err := s.PromptRepo.FindByID(ctx, promptID)
	if err != nil {
		return nil, nil, notFound(err, "Prompt not found.")
	}
	if err := RequireOwnership(prompt, teacher, "You are not authorized to grade responses for that prompt."); err != nil {
		return nil, nil, err
	}

	responses, err := s.ResponseRepo.ListByPrompt(ctx, prompt.ID)
	if err != nil {
		return nil, nil, err
	}
	return prompt, responses, nil
}
