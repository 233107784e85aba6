package repository

import (
	"context"
	"newel_classroom/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{DB: tx}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user together with their prompts, their responses, the
// responses to their prompts, and every grade attached to those responses.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownPrompts := func() *gorm.DB {
			return tx.Model(&model.Prompt{}).Select("id").Where("teacher_id = ?", id)
		}
		affected := tx.Model(&model.Response{}).Select("id").
			Where("student_id = ? OR prompt_id IN (?)", id, ownPrompts())

		if err := tx.Where("response_id IN (?)", affected).Delete(&model.Grade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ? OR prompt_id IN (?)", id, ownPrompts()).Delete(&model.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Where("teacher_id = ?", id).Delete(&model.Prompt{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
