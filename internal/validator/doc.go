// Package validator provides struct validation for md-dataset.
//
// This package wraps go-playground/validator to provide:
//   - Required-table checks for output datasets
//   - Human-readable error messages keyed by json field name
//   - A "valid" tag for types with an IsValid method (closed enums)
//
// # Usage
//
//	if err := validator.Validate(tables); err != nil {
//	    // err is a validator.ValidationErrors
//	}
//
// The validator instance is package-level and thread-safe.
package validator
