// Package process runs pipeline steps against dataset storage.
//
// A Runner hydrates the input datasets of a step, calls it, validates the
// returned tables as an output dataset of the requested type and persists
// them under a fresh run id. The manifest of the saved dataset is returned
// to the caller.
package process
