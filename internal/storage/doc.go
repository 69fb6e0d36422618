// Package storage moves dataset tables between object storage and memory.
//
// Tables are stored as parquet files. A Manager resolves buckets against
// the configured default, downloads and decodes tables for input datasets,
// and encodes and uploads the tables of output datasets. The ObjectStore
// interface abstracts the blob store; MinioStore implements it for MinIO
// and S3-compatible services.
package storage
