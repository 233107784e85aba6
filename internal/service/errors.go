package service

import (
	"errors"
	"newel_classroom/internal/util"

	"gorm.io/gorm"
)

// ErrNotAuthenticated means the request carries no usable session.
var ErrNotAuthenticated = errors.New("not authenticated")

// notFound turns a missing row into a NotFound AppError and passes other errors through.
func notFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.NewNotFoundError(message)
	}
	return err
}
