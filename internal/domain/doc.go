// Package domain contains the dataset and table model of md-dataset.
//
// This package defines:
//   - Dataset types and table kinds (closed enumerations)
//   - Table identity: display names and run-scoped storage paths
//   - Input datasets, which hydrate their tables lazily from storage
//   - Output datasets, which validate their tables at construction and
//     produce a memoized manifest
//
// # Table Identity
//
// Every output table is stored at
//
//	job_runs/<run_id>/<kind>.parquet
//
// where kind is the lowercase table kind. Paths never collide across runs
// (run_id differs) nor within a run (kinds are distinct).
//
// # Input Datasets
//
// Input tables start located (bucket and key set) and become hydrated once
// PopulateTables loads them. A hydrated table is never fetched again:
//
//	ds := domain.NewIntensityInputDataset("one",
//	    domain.LocatedTable("Protein_Intensity", "bucket", "baz/qux"),
//	)
//	if err := ds.PopulateTables(ctx, files); err != nil {
//	    return err
//	}
//	intensity, _ := ds.Table(domain.TableKindIntensity)
//
// # Output Datasets
//
// Output datasets fail construction with a validation error naming every
// missing or mistyped required table. Tables()[i] and Manifest().Tables[i]
// always describe the same table.
package domain
