// Package errors provides application error types for md-dataset.
//
// This package defines:
//   - AppError type with error classification
//   - Error constructors for the storage and dataset error taxonomy
//   - Error type checking helpers
//
// # Error Types
//
//   - Configuration: no bucket could be resolved, or a setting is unusable
//   - StorageNotFound: the requested object does not exist
//   - Storage: transport or upload failure, carries the failing path
//   - Decode: a table payload is not valid parquet
//   - Validation: an output dataset is missing or mistypes required tables
//
// # Usage
//
// Create errors using constructor functions:
//
//	return apperrors.StorageNotFound(bucket, key)
//	return apperrors.Validation("1 validation error").WithDetail("metadata", "is required")
//
// Check error types:
//
//	if apperrors.IsStorageNotFound(err) {
//	    // Handle missing object
//	}
//
// # Error Wrapping
//
// Errors support wrapping with fmt.Errorf:
//
//	return fmt.Errorf("hydrate %s: %w", name, apperrors.Decode(key, err))
package errors
