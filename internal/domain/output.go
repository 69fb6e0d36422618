package domain

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/md-dataset/md-dataset/internal/frame"
	apperrors "github.com/md-dataset/md-dataset/internal/pkg/errors"
	"github.com/md-dataset/md-dataset/internal/validator"
)

// RunIdentity scopes all tables produced by one execution of a step
type RunIdentity struct {
	RunID uuid.UUID `json:"run_id" validate:"required"`
	Name  string    `json:"name" validate:"required"`
}

// OutputDataset is a validated, immutable dataset produced by a step
type OutputDataset interface {
	Name() string
	Type() DatasetType
	RunID() uuid.UUID
	// Tables returns the (path, frame) pairs to persist, in manifest order
	Tables() []PathTable
	// Manifest returns the memoized manifest
	Manifest() Manifest
}

type outputTable struct {
	kind TableKind
	data *frame.Frame
}

// collect drops unset optional tables
func collect(tables ...outputTable) []outputTable {
	out := make([]outputTable, 0, len(tables))
	for _, t := range tables {
		if t.data != nil {
			out = append(out, t)
		}
	}
	return out
}

func pathTables(runID uuid.UUID, tables []outputTable) []PathTable {
	out := make([]PathTable, len(tables))
	for i, t := range tables {
		out[i] = PathTable{Path: TablePath(runID, t.kind), Data: t.data}
	}
	return out
}

// IntensityTables are the tables of an intensity output dataset
type IntensityTables struct {
	Intensity       *frame.Frame `json:"intensity" validate:"required"`
	Metadata        *frame.Frame `json:"metadata" validate:"required"`
	RuntimeMetadata *frame.Frame `json:"runtime_metadata,omitempty"`
}

// IntensityOutputDataset is a validated protein intensity output
type IntensityOutputDataset struct {
	run      RunIdentity
	tables   IntensityTables
	manifest manifestCache
}

// NewIntensityOutputDataset validates tables and creates the dataset.
// Every missing required table is reported in one ValidationError.
func NewIntensityOutputDataset(run RunIdentity, tables IntensityTables) (*IntensityOutputDataset, error) {
	return newIntensityOutputDataset(run, tables, nil)
}

func newIntensityOutputDataset(run RunIdentity, tables IntensityTables, violations validator.ValidationErrors) (*IntensityOutputDataset, error) {
	if err := validateOutput(DatasetTypeIntensity, run, tables, violations); err != nil {
		return nil, err
	}
	return &IntensityOutputDataset{run: run, tables: tables}, nil
}

func (d *IntensityOutputDataset) Name() string      { return d.run.Name }
func (d *IntensityOutputDataset) Type() DatasetType { return DatasetTypeIntensity }
func (d *IntensityOutputDataset) RunID() uuid.UUID  { return d.run.RunID }

// Intensity returns the intensity table
func (d *IntensityOutputDataset) Intensity() *frame.Frame { return d.tables.Intensity }

// Metadata returns the metadata table
func (d *IntensityOutputDataset) Metadata() *frame.Frame { return d.tables.Metadata }

// RuntimeMetadata returns the runtime metadata table, nil when not set
func (d *IntensityOutputDataset) RuntimeMetadata() *frame.Frame { return d.tables.RuntimeMetadata }

func (d *IntensityOutputDataset) fields() []outputTable {
	return collect(
		outputTable{TableKindIntensity, d.tables.Intensity},
		outputTable{TableKindMetadata, d.tables.Metadata},
		outputTable{TableKindRuntimeMetadata, d.tables.RuntimeMetadata},
	)
}

func (d *IntensityOutputDataset) Tables() []PathTable {
	return pathTables(d.run.RunID, d.fields())
}

func (d *IntensityOutputDataset) Manifest() Manifest {
	return d.manifest.get(d.run, DatasetTypeIntensity, d.fields())
}

// DoseResponseTables are the tables of a dose response output dataset
type DoseResponseTables struct {
	DoseResponse    *frame.Frame `json:"dose_response" validate:"required"`
	Metadata        *frame.Frame `json:"metadata,omitempty"`
	RuntimeMetadata *frame.Frame `json:"runtime_metadata,omitempty"`
}

// DoseResponseOutputDataset is a validated dose response output
type DoseResponseOutputDataset struct {
	run      RunIdentity
	tables   DoseResponseTables
	manifest manifestCache
}

// NewDoseResponseOutputDataset validates tables and creates the dataset
func NewDoseResponseOutputDataset(run RunIdentity, tables DoseResponseTables) (*DoseResponseOutputDataset, error) {
	return newDoseResponseOutputDataset(run, tables, nil)
}

func newDoseResponseOutputDataset(run RunIdentity, tables DoseResponseTables, violations validator.ValidationErrors) (*DoseResponseOutputDataset, error) {
	if err := validateOutput(DatasetTypeDoseResponse, run, tables, violations); err != nil {
		return nil, err
	}
	return &DoseResponseOutputDataset{run: run, tables: tables}, nil
}

func (d *DoseResponseOutputDataset) Name() string      { return d.run.Name }
func (d *DoseResponseOutputDataset) Type() DatasetType { return DatasetTypeDoseResponse }
func (d *DoseResponseOutputDataset) RunID() uuid.UUID  { return d.run.RunID }

// DoseResponse returns the dose response table
func (d *DoseResponseOutputDataset) DoseResponse() *frame.Frame { return d.tables.DoseResponse }

// Metadata returns the metadata table, nil when not set
func (d *DoseResponseOutputDataset) Metadata() *frame.Frame { return d.tables.Metadata }

// RuntimeMetadata returns the runtime metadata table, nil when not set
func (d *DoseResponseOutputDataset) RuntimeMetadata() *frame.Frame {
	return d.tables.RuntimeMetadata
}

func (d *DoseResponseOutputDataset) fields() []outputTable {
	return collect(
		outputTable{TableKindDoseResponse, d.tables.DoseResponse},
		outputTable{TableKindMetadata, d.tables.Metadata},
		outputTable{TableKindRuntimeMetadata, d.tables.RuntimeMetadata},
	)
}

func (d *DoseResponseOutputDataset) Tables() []PathTable {
	return pathTables(d.run.RunID, d.fields())
}

func (d *DoseResponseOutputDataset) Manifest() Manifest {
	return d.manifest.get(d.run, DatasetTypeDoseResponse, d.fields())
}

// NewOutputDataset creates the output variant for datasetType from a step
// result keyed by table field name ("intensity", "metadata", ...). Values
// must be *frame.Frame. Keys the dataset type does not own are ignored.
func NewOutputDataset(run RunIdentity, datasetType DatasetType, values map[string]any) (OutputDataset, error) {
	frames := make(map[TableKind]*frame.Frame)
	var violations validator.ValidationErrors

	for _, kind := range datasetType.TableKinds() {
		v, ok := values[kind.Field()]
		if !ok || v == nil {
			continue
		}
		switch f := v.(type) {
		case *frame.Frame:
			if f != nil {
				frames[kind] = f
			}
		case frame.Frame:
			frames[kind] = &f
		default:
			violations = append(violations, validator.ValidationError{
				Field:   kind.Field(),
				Message: fmt.Sprintf("must be a table frame, got %T", v),
			})
		}
	}

	switch datasetType {
	case DatasetTypeIntensity:
		ds, err := newIntensityOutputDataset(run, IntensityTables{
			Intensity:       frames[TableKindIntensity],
			Metadata:        frames[TableKindMetadata],
			RuntimeMetadata: frames[TableKindRuntimeMetadata],
		}, violations)
		if err != nil {
			return nil, err
		}
		return ds, nil
	case DatasetTypeDoseResponse:
		ds, err := newDoseResponseOutputDataset(run, DoseResponseTables{
			DoseResponse:    frames[TableKindDoseResponse],
			Metadata:        frames[TableKindMetadata],
			RuntimeMetadata: frames[TableKindRuntimeMetadata],
		}, violations)
		if err != nil {
			return nil, err
		}
		return ds, nil
	}

	return nil, apperrors.Validation(fmt.Sprintf("unknown dataset type %q", datasetType)).
		WithDetail("type", "is not a valid value")
}

// validateOutput checks the run identity and the required tables. A field
// already reported as mistyped is not reported again as missing.
func validateOutput(datasetType DatasetType, run RunIdentity, tables any, violations validator.ValidationErrors) error {
	reported := make(map[string]bool, len(violations))
	for _, v := range violations {
		reported[v.Field] = true
	}

	for _, target := range []any{run, tables} {
		err := validator.Validate(target)
		if err == nil {
			continue
		}
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, v := range errs {
			if !reported[v.Field] {
				reported[v.Field] = true
				violations = append(violations, v)
			}
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return validationError(fmt.Sprintf("%s output dataset", datasetType), violations)
}
