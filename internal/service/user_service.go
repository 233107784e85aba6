package service

import (
	"context"
	"newel_classroom/internal/model"
	"newel_classroom/internal/repository"
	"newel_classroom/pkg/logger"
	"strings"

	"go.uber.org/zap"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	user, err := s.UserRepo.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, notFound(err, "User not found.")
	}
	return user, nil
}

// DeleteUser removes a user and, transitively, their prompts, responses and grades.
func (s *UserService) DeleteUser(ctx context.Context, name string) (*model.User, error) {
	user, err := s.GetUserByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.UserRepo.Delete(ctx, user.ID); err != nil {
		return nil, notFound(err, "User not found.")
	}
	logger.Log.Info("User deleted",
		zap.Uint("userID", user.ID),
		zap.String("name", user.Name),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}
