package service

import (
	"newel_classroom/internal/model"
	"newel_classroom/internal/util"
)

// RequireRole fails with a Forbidden error when user is nil or holds a different role.
func RequireRole(user *model.User, role model.UserRole) error {
	if user == nil {
		return util.NewForbiddenError("Please log in to access this page.")
	}
	if user.Role != role {
		switch role {
		case model.Teacher:
			return util.NewForbiddenError("You must be a teacher to access that page.")
		case model.Student:
			return util.NewForbiddenError("You must be a student to access that page.")
		}
		return util.NewForbiddenError("You are not allowed to access that page.")
	}
	return nil
}

// RequireOwnership fails with a Forbidden error unless user is the teacher who owns prompt.
func RequireOwnership(prompt *model.Prompt, user *model.User, message string) error {
	if prompt == nil || user == nil || !prompt.OwnedBy(user) {
		return util.NewForbiddenError(message)
	}
	return nil
}
