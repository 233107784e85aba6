package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sampleForm struct {
	Title    string `validate:"max=5"`
	UserType string `validate:"omitempty,oneof=Teacher Student"`
}

func TestFormatValidationError(t *testing.T) {
	v := validator.New()
	err := v.Struct(sampleForm{Title: "too long title", UserType: "Admin"})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	msg := FormatValidationError(err)
	if !strings.Contains(msg, "Title must be at most 5 characters") {
		t.Fatalf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, "User type must be one of: Teacher Student") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestFormatNonValidationError(t *testing.T) {
	if got := FormatValidationError(errors.New("boom")); got != "Invalid form submission." {
		t.Fatalf("unexpected message %q", got)
	}
}
