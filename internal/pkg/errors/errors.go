package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error codes
const (
	CodeInternal        = "INTERNAL_ERROR"
	CodeConfiguration   = "CONFIGURATION_ERROR"
	CodeStorageNotFound = "STORAGE_NOT_FOUND"
	CodeStorage         = "STORAGE_ERROR"
	CodeDecode          = "DECODE_ERROR"
	CodeValidation      = "VALIDATION_ERROR"
)

// AppError represents an application error with context
type AppError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Err     error             `json:"-"`
}

// Error implements the error interface. Details are rendered sorted by key
// so the message is stable.
func (e *AppError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "\n  %s: %s", k, e.Details[k])
		}
	}

	if e.Err != nil {
		fmt.Fprintf(&b, " (%v)", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithError wraps an underlying error
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Configuration creates an error for a missing or unusable setting
func Configuration(message string) *AppError {
	return New(CodeConfiguration, message)
}

// StorageNotFound creates an error for a missing object
func StorageNotFound(bucket, key string) *AppError {
	return New(CodeStorageNotFound, fmt.Sprintf("object %s/%s not found", bucket, key)).
		WithDetail("bucket", bucket).
		WithDetail("key", key)
}

// Storage creates a transport or upload error for the object at path
func Storage(path string, err error) *AppError {
	return New(CodeStorage, fmt.Sprintf("storage operation failed for %s", path)).
		WithDetail("path", path).
		WithError(err)
}

// Decode creates an error for a table payload that cannot be decoded
func Decode(key string, err error) *AppError {
	return New(CodeDecode, fmt.Sprintf("cannot decode table %s", key)).
		WithDetail("key", key).
		WithError(err)
}

// Validation creates a validation error
func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error if present
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Code returns the error code, or CodeInternal for foreign errors
func Code(err error) string {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return CodeInternal
}

func hasCode(err error, code string) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == code
	}
	return false
}

// IsConfiguration checks if the error is a configuration error
func IsConfiguration(err error) bool {
	return hasCode(err, CodeConfiguration)
}

// IsStorageNotFound checks if the error is a missing object error
func IsStorageNotFound(err error) bool {
	return hasCode(err, CodeStorageNotFound)
}

// IsStorage checks if the error is a storage transport error
func IsStorage(err error) bool {
	return hasCode(err, CodeStorage)
}

// IsDecode checks if the error is a decode error
func IsDecode(err error) bool {
	return hasCode(err, CodeDecode)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}
