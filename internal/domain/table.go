package domain

import (
	"github.com/md-dataset/md-dataset/internal/frame"
)

// TableState is the hydration state of an input table
type TableState string

const (
	// TableLocated has a storage key and no data yet
	TableLocated TableState = "LOCATED"
	// TableHydrated carries its data
	TableHydrated TableState = "HYDRATED"
	// TableUnlocated has neither data nor a storage key
	TableUnlocated TableState = "UNLOCATED"
)

// Table is a named input table. Before hydration Bucket and Key locate it and
// Data is nil; after hydration Data is set and the location is cleared.
// An empty Bucket means the storage default bucket.
type Table struct {
	Name   string       `json:"name" validate:"required"`
	Bucket string       `json:"bucket,omitempty"`
	Key    string       `json:"key,omitempty"`
	Data   *frame.Frame `json:"-"`
}

// State returns the hydration state
func (t Table) State() TableState {
	switch {
	case t.Data != nil:
		return TableHydrated
	case t.Key != "":
		return TableLocated
	default:
		return TableUnlocated
	}
}

// LocatedTable creates a table that still has to be hydrated
func LocatedTable(name, bucket, key string) Table {
	return Table{Name: name, Bucket: bucket, Key: key}
}

// HydratedTable creates a table that already carries its data
func HydratedTable(name string, data *frame.Frame) Table {
	return Table{Name: name, Data: data}
}

// PathTable pairs an output frame with the storage key it is written to
type PathTable struct {
	Path string
	Data *frame.Frame
}
