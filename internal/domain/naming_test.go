package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKinds = []TableKind{
	TableKindIntensity,
	TableKindMetadata,
	TableKindRuntimeMetadata,
	TableKindDoseResponse,
}

func TestTableName(t *testing.T) {
	tests := []struct {
		datasetType DatasetType
		kind        TableKind
		want        string
	}{
		{DatasetTypeIntensity, TableKindIntensity, "Protein_Intensity"},
		{DatasetTypeIntensity, TableKindMetadata, "Protein_Metadata"},
		{DatasetTypeIntensity, TableKindRuntimeMetadata, "Protein_Runtime_Metadata"},
		{DatasetTypeIntensity, TableKindDoseResponse, ""},
		{DatasetTypeDoseResponse, TableKindDoseResponse, "Dose_Response"},
		{DatasetTypeDoseResponse, TableKindMetadata, "Dose_Response_Metadata"},
		{DatasetTypeDoseResponse, TableKindRuntimeMetadata, "Dose_Response_Runtime_Metadata"},
		{DatasetTypeDoseResponse, TableKindIntensity, ""},
		{DatasetType("UNKNOWN"), TableKindIntensity, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.datasetType)+"/"+string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, TableName(tt.datasetType, tt.kind))
		})
	}
}

func TestTableNames_UniqueWithinType(t *testing.T) {
	for _, dt := range []DatasetType{DatasetTypeIntensity, DatasetTypeDoseResponse} {
		seen := make(map[string]TableKind)
		for _, kind := range dt.TableKinds() {
			name := TableName(dt, kind)
			require.NotEmpty(t, name, "%s owns %s but has no name for it", dt, kind)
			prev, dup := seen[name]
			require.False(t, dup, "%s and %s share name %q", prev, kind, name)
			seen[name] = kind
		}
	}
}

func TestTablePath(t *testing.T) {
	runID := uuid.MustParse("8a1f4e3c-2b7d-4c1e-9f00-5d6e7a8b9c0d")

	assert.Equal(t, "job_runs/8a1f4e3c-2b7d-4c1e-9f00-5d6e7a8b9c0d/intensity.parquet",
		TablePath(runID, TableKindIntensity))
	assert.Equal(t, "job_runs/8a1f4e3c-2b7d-4c1e-9f00-5d6e7a8b9c0d/runtime_metadata.parquet",
		TablePath(runID, TableKindRuntimeMetadata))
}

func TestTablePath_Pure(t *testing.T) {
	runID := uuid.New()
	for _, kind := range allKinds {
		assert.Equal(t, TablePath(runID, kind), TablePath(runID, kind))
	}
}

func TestTablePath_Injective(t *testing.T) {
	type key struct {
		run  uuid.UUID
		kind TableKind
	}
	seen := make(map[string]key)

	for i := 0; i < 200; i++ {
		runID := uuid.New()
		for _, kind := range allKinds {
			path := TablePath(runID, kind)
			prev, dup := seen[path]
			require.False(t, dup, "path %q produced by %v and %v", path, prev, key{runID, kind})
			seen[path] = key{runID, kind}
		}
	}
}

func TestDatasetType(t *testing.T) {
	assert.True(t, DatasetTypeIntensity.IsValid())
	assert.True(t, DatasetTypeDoseResponse.IsValid())
	assert.False(t, DatasetType("PEPTIDE").IsValid())

	dt, err := ParseDatasetType(" intensity ")
	require.NoError(t, err)
	assert.Equal(t, DatasetTypeIntensity, dt)

	_, err = ParseDatasetType("peptide")
	assert.Error(t, err)

	assert.Nil(t, DatasetType("PEPTIDE").TableKinds())
}

func TestTableKind_Field(t *testing.T) {
	assert.Equal(t, "runtime_metadata", TableKindRuntimeMetadata.Field())
	assert.Equal(t, "dose_response", TableKindDoseResponse.Field())
	assert.True(t, TableKindMetadata.IsValid())
	assert.False(t, TableKind("OTHER").IsValid())
}
