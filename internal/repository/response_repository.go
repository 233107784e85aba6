package repository

import (
	"context"
	"newel_classroom/internal/model"

	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

func (r *ResponseRepository) WithTx(tx *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: tx}
}

func (r *ResponseRepository) Create(ctx context.Context, response *model.Response) error {
	return r.DB.WithContext(ctx).Create(response).Error
}

// FindByID loads the response with its parent prompt.
func (r *ResponseRepository) FindByID(ctx context.Context, id uint) (*model.Response, error) {
	var response model.Response
	if err := r.DB.WithContext(ctx).Preload("Prompt").First(&response, id).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// ListByStudent returns the student's responses newest first, with prompt and grade.
func (r *ResponseRepository) ListByStudent(ctx context.Context, studentID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.DB.WithContext(ctx).
		Preload("Prompt").
		Preload("Grade").
		Where("student_id = ?", studentID).
		Order("created_at DESC").Order("id DESC").
		Find(&responses).Error
	return responses, err
}

// ListByPrompt returns the prompt's responses oldest first, with student and grade.
func (r *ResponseRepository) ListByPrompt(ctx context.Context, promptID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.DB.WithContext(ctx).
		Preload("Student").
		Preload("Grade").
		Where("prompt_id = ?", promptID).
		Order("created_at ASC").Order("id ASC").
		Find(&responses).Error
	return responses, err
}
