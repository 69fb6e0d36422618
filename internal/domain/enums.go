package domain

import (
	"fmt"
	"strings"
)

// DatasetType is the type tag shared by input and output datasets
type DatasetType string

const (
	DatasetTypeIntensity    DatasetType = "INTENSITY"
	DatasetTypeDoseResponse DatasetType = "DOSE_RESPONSE"
)

// IsValid checks if the dataset type is valid
func (t DatasetType) IsValid() bool {
	switch t {
	case DatasetTypeIntensity, DatasetTypeDoseResponse:
		return true
	}
	return false
}

// ParseDatasetType parses a dataset type, case-insensitively
func ParseDatasetType(s string) (DatasetType, error) {
	t := DatasetType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown dataset type %q", s)
	}
	return t, nil
}

// TableKind is the logical role of a table within a dataset
type TableKind string

const (
	TableKindIntensity       TableKind = "INTENSITY"
	TableKindMetadata        TableKind = "METADATA"
	TableKindRuntimeMetadata TableKind = "RUNTIME_METADATA"
	TableKindDoseResponse    TableKind = "DOSE_RESPONSE"
)

// IsValid checks if the table kind is valid
func (k TableKind) IsValid() bool {
	switch k {
	case TableKindIntensity, TableKindMetadata, TableKindRuntimeMetadata, TableKindDoseResponse:
		return true
	}
	return false
}

// Field returns the lowercase form used as step result key and file name
func (k TableKind) Field() string {
	return strings.ToLower(string(k))
}

// TableKinds returns the kinds a dataset type owns, in table order
func (t DatasetType) TableKinds() []TableKind {
	switch t {
	case DatasetTypeIntensity:
		return []TableKind{TableKindIntensity, TableKindMetadata, TableKindRuntimeMetadata}
	case DatasetTypeDoseResponse:
		return []TableKind{TableKindDoseResponse, TableKindMetadata, TableKindRuntimeMetadata}
	}
	return nil
}
