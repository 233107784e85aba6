package repository

import (
	"context"
	"newel_classroom/internal/model"

	"gorm.io/gorm"
)

type GradeRepository struct {
	DB *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: db}
}

func (r *GradeRepository) WithTx(tx *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: tx}
}

func (r *GradeRepository) FindByResponseID(ctx context.Context, responseID uint) (*model.Grade, error) {
	var grade model.Grade
	if err := r.DB.WithContext(ctx).Where("response_id = ?", responseID).First(&grade).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *GradeRepository) Create(ctx context.Context, grade *model.Grade) error {
	return r.DB.WithContext(ctx).Create(grade).Error
}

// UpdateScore writes score and feedback together in one statement.
func (r *GradeRepository) UpdateScore(ctx context.Context, grade *model.Grade, score int, feedback string) error {
	err := r.DB.WithContext(ctx).Model(grade).Updates(map[string]interface{}{
		"score":         score,
		"feedback_text": feedback,
	}).Error
	if err != nil {
		return err
	}
	grade.Score = score
	grade.FeedbackText = feedback
	return nil
}

func (r *GradeRepository) CountByResponseID(ctx context.Context, responseID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Grade{}).Where("response_id = ?", responseID).Count(&count).Error
	return count, err
}
