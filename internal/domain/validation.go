package domain

import (
	"fmt"

	apperrors "github.com/md-dataset/md-dataset/internal/pkg/errors"
	"github.com/md-dataset/md-dataset/internal/validator"
)

// validateStruct validates v and reports its violations as one
// ValidationError about subject
func validateStruct(subject string, v any) error {
	err := validator.Validate(v)
	if err == nil {
		return nil
	}
	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	return validationError(subject, violations)
}

// validationError builds a ValidationError with one detail per field, e.g.
// "2 validation errors for INTENSITY output dataset"
func validationError(subject string, violations validator.ValidationErrors) *apperrors.AppError {
	noun := "errors"
	if len(violations) == 1 {
		noun = "error"
	}
	appErr := apperrors.Validation(fmt.Sprintf("%d validation %s for %s", len(violations), noun, subject))
	for _, v := range violations {
		appErr.WithDetail(v.Field, v.Message)
	}
	return appErr
}
