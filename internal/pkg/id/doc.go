// Package id provides identifier generation for md-dataset.
//
// This package generates:
//   - run identifiers, which scope the storage paths of one step execution
//   - manifest table identifiers, generated fresh for every output dataset
//
// Both are UUID v4 values. All functions are safe for concurrent use.
package id
