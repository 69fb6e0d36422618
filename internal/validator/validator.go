package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// V is the singleton validator instance
var V *validator.Validate

func init() {
	V = validator.New()

	// Report fields by their json name, which is also the table field name
	// used in step results and error messages.
	V.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return toSnakeCase(fld.Name)
		}
		return name
	})

	_ = V.RegisterValidation("valid", validateValid)
}

// validateValid accepts values whose IsValid method reports true, such as
// closed enumerations.
func validateValid(fl validator.FieldLevel) bool {
	if v, ok := fl.Field().Interface().(interface{ IsValid() bool }); ok {
		return v.IsValid()
	}
	return false
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(msgs, "; ")
}

// Validate validates a struct and returns ValidationErrors if invalid
func Validate(v any) error {
	if err := V.Struct(v); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// formatValidationErrors converts validator errors to ValidationErrors
func formatValidationErrors(err error) ValidationErrors {
	var validationErrors ValidationErrors

	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range errs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   fieldPath(e),
				Message: getErrorMessage(e),
			})
		}
	} else {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "",
			Message: err.Error(),
		})
	}

	return validationErrors
}

// toSnakeCase converts a Go field name such as RuntimeMetadata to runtime_metadata
func toSnakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// getErrorMessage returns a human-readable error message for a validation error
func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field required"
	case "valid":
		return fmt.Sprintf("%v is not a valid value", e.Value())
	default:
		return fmt.Sprintf("failed validation: %s", e.Tag())
	}
}

// fieldPath returns the field namespace below the validated struct, e.g.
// "tables[1].name"
func fieldPath(e validator.FieldError) string {
	if _, path, ok := strings.Cut(e.Namespace(), "."); ok {
		return path
	}
	return e.Field()
}
