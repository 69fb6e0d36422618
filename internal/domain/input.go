package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/md-dataset/md-dataset/internal/frame"
	apperrors "github.com/md-dataset/md-dataset/internal/pkg/errors"
)

// TableLoader loads one table from object storage
type TableLoader interface {
	LoadTable(ctx context.Context, bucket, key string) (*frame.Frame, error)
}

// InputDataset is a named collection of input tables of one dataset type
type InputDataset interface {
	Name() string
	Type() DatasetType
	// Tables returns a copy of the table entries in order
	Tables() []Table
	// TableByName returns the first table with the given name
	TableByName(name string) (Table, bool)
	// Table returns the table of the given kind, looked up by the display
	// name the dataset type gives it
	Table(kind TableKind) (Table, bool)
	// TableDataByName returns the data of the first table with the given
	// name, or nil when it is absent or not hydrated
	TableDataByName(name string) *frame.Frame
	// PopulateTables hydrates every located table in place
	PopulateTables(ctx context.Context, loader TableLoader) error
}

// inputDataset holds the state common to every input variant. Each variant
// value owns its own table slice.
type inputDataset struct {
	name   string
	typ    DatasetType
	tables []Table
}

func newInputDataset(name string, typ DatasetType, tables []Table) inputDataset {
	return inputDataset{
		name:   name,
		typ:    typ,
		tables: append([]Table(nil), tables...),
	}
}

func (d *inputDataset) Name() string      { return d.name }
func (d *inputDataset) Type() DatasetType { return d.typ }

func (d *inputDataset) Tables() []Table {
	return append([]Table(nil), d.tables...)
}

// TableByName does not require unique names: duplicates are kept and the
// first entry wins.
func (d *inputDataset) TableByName(name string) (Table, bool) {
	for _, t := range d.tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

func (d *inputDataset) TableDataByName(name string) *frame.Frame {
	t, ok := d.TableByName(name)
	if !ok {
		return nil
	}
	return t.Data
}

// PopulateTables hydrates located tables in order. Hydrated tables are not
// fetched again. The first failure is returned unchanged; tables hydrated
// before it stay hydrated.
func (d *inputDataset) PopulateTables(ctx context.Context, loader TableLoader) error {
	for i := range d.tables {
		t := d.tables[i]

		switch t.State() {
		case TableHydrated:
			continue
		case TableUnlocated:
			return apperrors.Validation(fmt.Sprintf("table %q has no data and no storage key", t.Name)).
				WithDetail("table", t.Name)
		}

		data, err := loader.LoadTable(ctx, t.Bucket, t.Key)
		if err != nil {
			return err
		}
		if data == nil {
			return apperrors.Decode(t.Key, errors.New("loader returned no data"))
		}

		d.tables[i] = HydratedTable(t.Name, data)
	}
	return nil
}

// MarshalJSON encodes the dataset with its type tag. Table data is not
// encoded, only names and locations.
func (d *inputDataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(inputDatasetJSON{Name: d.name, Type: d.typ, Tables: d.tables})
}

// table resolves a kind to its display name for the dataset type
func (d *inputDataset) table(kind TableKind) (Table, bool) {
	name := TableName(d.typ, kind)
	if name == "" {
		return Table{}, false
	}
	return d.TableByName(name)
}

// IntensityInputDataset is a protein intensity dataset
type IntensityInputDataset struct {
	inputDataset
}

// NewIntensityInputDataset creates an intensity input dataset
func NewIntensityInputDataset(name string, tables ...Table) *IntensityInputDataset {
	return &IntensityInputDataset{newInputDataset(name, DatasetTypeIntensity, tables)}
}

// Table looks a table up by its kind, e.g. TableKindIntensity resolves to
// the table named "Protein_Intensity"
func (d *IntensityInputDataset) Table(kind TableKind) (Table, bool) {
	return d.table(kind)
}

// DoseResponseInputDataset is a dose response dataset
type DoseResponseInputDataset struct {
	inputDataset
}

// NewDoseResponseInputDataset creates a dose response input dataset
func NewDoseResponseInputDataset(name string, tables ...Table) *DoseResponseInputDataset {
	return &DoseResponseInputDataset{newInputDataset(name, DatasetTypeDoseResponse, tables)}
}

// Table looks a table up by its kind
func (d *DoseResponseInputDataset) Table(kind TableKind) (Table, bool) {
	return d.table(kind)
}

// NewInputDataset creates the input variant matching datasetType
func NewInputDataset(name string, datasetType DatasetType, tables ...Table) (InputDataset, error) {
	switch datasetType {
	case DatasetTypeIntensity:
		return NewIntensityInputDataset(name, tables...), nil
	case DatasetTypeDoseResponse:
		return NewDoseResponseInputDataset(name, tables...), nil
	}
	return nil, apperrors.Validation(fmt.Sprintf("unknown dataset type %q", datasetType)).
		WithDetail("type", "is not a valid value")
}

type inputDatasetJSON struct {
	Name   string      `json:"name" validate:"required"`
	Type   DatasetType `json:"type" validate:"required,valid"`
	Tables []Table     `json:"tables" validate:"dive"`
}

// DecodeInputDataset decodes upstream dataset metadata into the variant
// named by its type tag
func DecodeInputDataset(data []byte) (InputDataset, error) {
	var raw inputDatasetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode input dataset: %w", err)
	}
	return raw.build()
}

// DecodeInputDatasets decodes a JSON array of input datasets
func DecodeInputDatasets(data []byte) ([]InputDataset, error) {
	var raw []inputDatasetJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode input datasets: %w", err)
	}

	datasets := make([]InputDataset, 0, len(raw))
	for i, r := range raw {
		ds, err := r.build()
		if err != nil {
			return nil, fmt.Errorf("input dataset %d: %w", i, err)
		}
		datasets = append(datasets, ds)
	}
	return datasets, nil
}

func (r inputDatasetJSON) build() (InputDataset, error) {
	if err := validateStruct("input dataset", r); err != nil {
		return nil, err
	}
	return NewInputDataset(r.Name, r.Type, r.Tables...)
}
