package id

import (
	"github.com/google/uuid"
)

// NewRunID generates the identifier scoping every table produced by one
// execution of a pipeline step
func NewRunID() uuid.UUID {
	return uuid.New()
}

// NewTableID generates a manifest table identifier
func NewTableID() uuid.UUID {
	return uuid.New()
}
