package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// JobRunsPrefix is the key prefix of every table written for a run
const JobRunsPrefix = "job_runs"

var tableNames = map[DatasetType]map[TableKind]string{
	DatasetTypeIntensity: {
		TableKindIntensity:       "Protein_Intensity",
		TableKindMetadata:        "Protein_Metadata",
		TableKindRuntimeMetadata: "Protein_Runtime_Metadata",
	},
	DatasetTypeDoseResponse: {
		TableKindDoseResponse:    "Dose_Response",
		TableKindMetadata:        "Dose_Response_Metadata",
		TableKindRuntimeMetadata: "Dose_Response_Runtime_Metadata",
	},
}

// TableName returns the display name of a table kind within a dataset type.
// Kinds a dataset type does not own yield an empty string.
func TableName(datasetType DatasetType, kind TableKind) string {
	return tableNames[datasetType][kind]
}

// TablePath returns the storage key of a table kind for a run:
// job_runs/<run_id>/<kind>.parquet
func TablePath(runID uuid.UUID, kind TableKind) string {
	return fmt.Sprintf("%s/%s/%s.parquet", JobRunsPrefix, runID, kind.Field())
}
