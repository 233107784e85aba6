package repository

import (
	"context"
	"newel_classroom/internal/model"

	"gorm.io/gorm"
)

type PromptRepository struct {
	DB *gorm.DB
}

func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{DB: db}
}

func (r *PromptRepository) WithTx(tx *gorm.DB) *PromptRepository {
	return &PromptRepository{DB: tx}
}

func (r *PromptRepository) Create(ctx context.Context, prompt *model.Prompt) error {
	return r.DB.WithContext(ctx).Create(prompt).Error
}

func (r *PromptRepository) FindByID(ctx context.Context, id uint) (*model.Prompt, error) {
	var prompt model.Prompt
	if err := r.DB.WithContext(ctx).Preload("Teacher").First(&prompt, id).Error; err != nil {
		return nil, err
	}
	return &prompt, nil
}

// ListByTeacher returns the teacher's prompts, newest first.
func (r *PromptRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]model.Prompt, error) {
	var prompts []model.Prompt
	err := r.DB.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").Order("id DESC").
		Find(&prompts).Error
	return prompts, err
}

// ListAll returns every prompt, newest first.
func (r *PromptRepository) ListAll(ctx context.Context) ([]model.Prompt, error) {
	var prompts []model.Prompt
	err := r.DB.WithContext(ctx).
		Preload("Teacher").
		Order("created_at DESC").Order("id DESC").
		Find(&prompts).Error
	return prompts, err
}

// Delete removes the prompt, its responses and their grades.
func (r *PromptRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		responses := tx.Model(&model.Response{}).Select("id").Where("prompt_id = ?", id)
		if err := tx.Where("response_id IN (?)", responses).Delete(&model.Grade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("prompt_id = ?", id).Delete(&model.Response{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Prompt{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
