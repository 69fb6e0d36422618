package testutil

import (
	"github.com/md-dataset/md-dataset/internal/frame"
)

// IntensityFrame returns a 3x2 protein intensity table
func IntensityFrame() *frame.Frame {
	return frame.MustNew(
		frame.Strings("Protein", "P1", "P2", "P3"),
		frame.Float64s("Intensity", 1.5, 2.25, 3.0),
	)
}

// MetadataFrame returns a 3x2 sample metadata table
func MetadataFrame() *frame.Frame {
	return frame.MustNew(
		frame.Strings("Sample", "S1", "S2", "S3"),
		frame.Int64s("Replicate", 1, 2, 3),
	)
}

// RuntimeMetadataFrame returns a 2x2 runtime metadata table
func RuntimeMetadataFrame() *frame.Frame {
	return frame.MustNew(
		frame.Strings("Key", "instrument", "operator"),
		frame.Bools("Verified", true, false),
	)
}

// DoseResponseFrame returns a 3x3 dose response table
func DoseResponseFrame() *frame.Frame {
	return frame.MustNew(
		frame.Strings("Compound", "C1", "C1", "C2"),
		frame.Float64s("Dose", 0.1, 1, 10),
		frame.Float64s("Response", 98.5, 51.2, 4.75),
	)
}
