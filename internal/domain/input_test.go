package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/md-dataset/md-dataset/internal/frame"
	apperrors "github.com/md-dataset/md-dataset/internal/pkg/errors"
)

// MockTableLoader is a mock implementation of TableLoader
type MockTableLoader struct {
	mock.Mock
}

func (m *MockTableLoader) LoadTable(ctx context.Context, bucket, key string) (*frame.Frame, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*frame.Frame), args.Error(1)
}

func intensityFrame() *frame.Frame {
	return frame.MustNew(
		frame.Int64s("col1", 1, 2, 3),
		frame.Strings("col2", "a", "b", "c"),
	)
}

func metadataFrame() *frame.Frame {
	return frame.MustNew(
		frame.Int64s("col1", 4, 5, 6),
		frame.Strings("col2", "x", "y", "z"),
	)
}

func locatedIntensityDataset() *IntensityInputDataset {
	return NewIntensityInputDataset("one",
		LocatedTable("Protein_Intensity", "bucket", "baz/qux"),
		LocatedTable("Protein_Metadata", "bucket", "qux/quux"),
	)
}

func TestTable_State(t *testing.T) {
	assert.Equal(t, TableLocated, LocatedTable("t", "", "k").State())
	assert.Equal(t, TableHydrated, HydratedTable("t", intensityFrame()).State())
	assert.Equal(t, TableUnlocated, Table{Name: "t", Bucket: "b"}.State())
}

func TestInputDataset_TableByName(t *testing.T) {
	first := HydratedTable("dup", intensityFrame())
	second := HydratedTable("dup", metadataFrame())
	ds := NewIntensityInputDataset("one", first, second, LocatedTable("other", "", "k"))

	t.Run("unknown name is absent", func(t *testing.T) {
		_, ok := ds.TableByName("missing")
		assert.False(t, ok)
		assert.Nil(t, ds.TableDataByName("missing"))
	})

	t.Run("duplicate names return the first match", func(t *testing.T) {
		got, ok := ds.TableByName("dup")
		require.True(t, ok)
		assert.Same(t, first.Data, got.Data)
	})

	t.Run("located table has no data", func(t *testing.T) {
		got, ok := ds.TableByName("other")
		require.True(t, ok)
		assert.Equal(t, "k", got.Key)
		assert.Nil(t, ds.TableDataByName("other"))
	})
}

func TestIntensityInputDataset_Table(t *testing.T) {
	ds := NewIntensityInputDataset("one",
		HydratedTable("Protein_Intensity", intensityFrame()),
		HydratedTable("Protein_Metadata", metadataFrame()),
	)

	got, ok := ds.Table(TableKindIntensity)
	require.True(t, ok)
	assert.Equal(t, "Protein_Intensity", got.Name)

	got, ok = ds.Table(TableKindMetadata)
	require.True(t, ok)
	assert.True(t, got.Data.Equal(metadataFrame()))

	_, ok = ds.Table(TableKindRuntimeMetadata)
	assert.False(t, ok)

	_, ok = ds.Table(TableKindDoseResponse)
	assert.False(t, ok, "kind not owned by the dataset type")
}

func TestDoseResponseInputDataset_Table(t *testing.T) {
	ds := NewDoseResponseInputDataset("drc", HydratedTable("Dose_Response", intensityFrame()))

	assert.Equal(t, DatasetTypeDoseResponse, ds.Type())
	got, ok := ds.Table(TableKindDoseResponse)
	require.True(t, ok)
	assert.Equal(t, "Dose_Response", got.Name)
}

func TestInputDataset_TableByKind(t *testing.T) {
	datasets := []InputDataset{
		NewIntensityInputDataset("one", HydratedTable("Protein_Metadata", metadataFrame())),
		NewDoseResponseInputDataset("drc", HydratedTable("Dose_Response_Metadata", metadataFrame())),
	}

	for _, ds := range datasets {
		t.Run(string(ds.Type()), func(t *testing.T) {
			got, ok := ds.Table(TableKindMetadata)
			require.True(t, ok)
			assert.Equal(t, TableName(ds.Type(), TableKindMetadata), got.Name)
			assert.True(t, got.Data.Equal(metadataFrame()))
		})
	}
}

func TestInputDataset_Tables_ReturnsCopy(t *testing.T) {
	ds := locatedIntensityDataset()
	tables := ds.Tables()
	tables[0].Key = "changed"

	got, _ := ds.TableByName("Protein_Intensity")
	assert.Equal(t, "baz/qux", got.Key)
}

func TestInputDataset_PopulateTables(t *testing.T) {
	ctx := context.Background()

	t.Run("hydrates located tables and drops location", func(t *testing.T) {
		loader := new(MockTableLoader)
		loader.On("LoadTable", ctx, "bucket", "baz/qux").Return(intensityFrame(), nil).Once()
		loader.On("LoadTable", ctx, "bucket", "qux/quux").Return(metadataFrame(), nil).Once()

		ds := locatedIntensityDataset()
		require.NoError(t, ds.PopulateTables(ctx, loader))

		for _, table := range ds.Tables() {
			assert.Equal(t, TableHydrated, table.State())
			assert.Empty(t, table.Bucket)
			assert.Empty(t, table.Key)
		}
		assert.True(t, ds.TableDataByName("Protein_Intensity").Equal(intensityFrame()))
		assert.True(t, ds.TableDataByName("Protein_Metadata").Equal(metadataFrame()))
		loader.AssertExpectations(t)
	})

	t.Run("second call does not fetch again", func(t *testing.T) {
		loader := new(MockTableLoader)
		loader.On("LoadTable", ctx, "bucket", "baz/qux").Return(intensityFrame(), nil).Once()
		loader.On("LoadTable", ctx, "bucket", "qux/quux").Return(metadataFrame(), nil).Once()

		ds := locatedIntensityDataset()
		require.NoError(t, ds.PopulateTables(ctx, loader))
		first := ds.Tables()

		require.NoError(t, ds.PopulateTables(ctx, loader))
		second := ds.Tables()

		require.Len(t, second, len(first))
		for i := range first {
			assert.Same(t, first[i].Data, second[i].Data)
		}
		loader.AssertNumberOfCalls(t, "LoadTable", 2)
	})

	t.Run("mixed dataset only fetches pending tables", func(t *testing.T) {
		hydrated := intensityFrame()
		loader := new(MockTableLoader)
		loader.On("LoadTable", ctx, "", "qux/quux").Return(metadataFrame(), nil).Once()

		ds := NewIntensityInputDataset("one",
			HydratedTable("Protein_Intensity", hydrated),
			LocatedTable("Protein_Metadata", "", "qux/quux"),
		)
		require.NoError(t, ds.PopulateTables(ctx, loader))

		assert.Same(t, hydrated, ds.TableDataByName("Protein_Intensity"))
		assert.NotNil(t, ds.TableDataByName("Protein_Metadata"))
		loader.AssertExpectations(t)
	})

	t.Run("storage failure propagates unchanged", func(t *testing.T) {
		notFound := apperrors.StorageNotFound("bucket", "qux/quux")
		loader := new(MockTableLoader)
		loader.On("LoadTable", ctx, "bucket", "baz/qux").Return(intensityFrame(), nil).Once()
		loader.On("LoadTable", ctx, "bucket", "qux/quux").Return(nil, notFound).Once()

		ds := locatedIntensityDataset()
		err := ds.PopulateTables(ctx, loader)

		require.Error(t, err)
		assert.Same(t, notFound, err)

		intensity, _ := ds.TableByName("Protein_Intensity")
		metadata, _ := ds.TableByName("Protein_Metadata")
		assert.Equal(t, TableHydrated, intensity.State())
		assert.Equal(t, TableLocated, metadata.State())
	})

	t.Run("retry after failure only fetches the failed table", func(t *testing.T) {
		loader := new(MockTableLoader)
		loader.On("LoadTable", ctx, "bucket", "baz/qux").Return(intensityFrame(), nil).Once()
		loader.On("LoadTable", ctx, "bucket", "qux/quux").Return(nil, errors.New("reset")).Once()
		loader.On("LoadTable", ctx, "bucket", "qux/quux").Return(metadataFrame(), nil).Once()

		ds := locatedIntensityDataset()
		require.Error(t, ds.PopulateTables(ctx, loader))
		require.NoError(t, ds.PopulateTables(ctx, loader))

		loader.AssertNumberOfCalls(t, "LoadTable", 3)
	})

	t.Run("unlocated table is rejected", func(t *testing.T) {
		loader := new(MockTableLoader)
		ds := NewIntensityInputDataset("one", Table{Name: "Protein_Intensity"})

		err := ds.PopulateTables(ctx, loader)

		assert.True(t, apperrors.IsValidation(err))
		assert.Contains(t, err.Error(), "Protein_Intensity")
		loader.AssertNotCalled(t, "LoadTable", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("loader returning no data is a decode error", func(t *testing.T) {
		loader := new(MockTableLoader)
		loader.On("LoadTable", ctx, "bucket", "baz/qux").Return(nil, nil).Once()

		ds := NewIntensityInputDataset("one", LocatedTable("Protein_Intensity", "bucket", "baz/qux"))
		err := ds.PopulateTables(ctx, loader)

		assert.True(t, apperrors.IsDecode(err))
	})
}

func TestNewInputDataset(t *testing.T) {
	ds, err := NewInputDataset("drc", DatasetTypeDoseResponse)
	require.NoError(t, err)
	assert.IsType(t, &DoseResponseInputDataset{}, ds)

	ds, err = NewInputDataset("one", DatasetTypeIntensity, LocatedTable("Protein_Intensity", "", "k"))
	require.NoError(t, err)
	assert.IsType(t, &IntensityInputDataset{}, ds)
	assert.Len(t, ds.Tables(), 1)

	_, err = NewInputDataset("x", DatasetType("PEPTIDE"))
	assert.True(t, apperrors.IsValidation(err))
}

func TestDecodeInputDatasets(t *testing.T) {
	payload := []byte(`[
		{"name": "one", "type": "INTENSITY", "tables": [
			{"name": "Protein_Intensity", "bucket": "bucket", "key": "baz/qux"},
			{"name": "Protein_Metadata", "key": "qux/quux"}
		]},
		{"name": "drc", "type": "DOSE_RESPONSE", "tables": []}
	]`)

	datasets, err := DecodeInputDatasets(payload)
	require.NoError(t, err)
	require.Len(t, datasets, 2)

	intensity, ok := datasets[0].(*IntensityInputDataset)
	require.True(t, ok)
	assert.Equal(t, "one", intensity.Name())
	table, ok := intensity.Table(TableKindMetadata)
	require.True(t, ok)
	assert.Equal(t, "", table.Bucket)
	assert.Equal(t, "qux/quux", table.Key)
	assert.Equal(t, TableLocated, table.State())

	assert.Equal(t, DatasetTypeDoseResponse, datasets[1].Type())
}

func TestDecodeInputDataset_Errors(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		_, err := DecodeInputDataset([]byte(`{"name":`))
		require.Error(t, err)
		assert.False(t, apperrors.IsValidation(err))
	})

	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{"missing name", `{"type": "INTENSITY", "tables": []}`, "name"},
		{"missing type", `{"name": "one", "tables": []}`, "type"},
		{"unknown type", `{"name": "one", "type": "PEPTIDE", "tables": []}`, "type"},
		{"unnamed table", `{"name": "one", "type": "INTENSITY", "tables": [{"key": "a"}, {"bucket": "b"}]}`, "tables[1].name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInputDataset([]byte(tt.payload))
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Contains(t, apperrors.GetAppError(err).Details, tt.field)
		})
	}

	t.Run("unknown type names the value", func(t *testing.T) {
		_, err := DecodeInputDataset([]byte(`{"name": "one", "type": "PEPTIDE"}`))
		require.Error(t, err)
		assert.Contains(t, apperrors.GetAppError(err).Details["type"], "PEPTIDE")
	})
}

func TestInputDataset_MarshalJSON(t *testing.T) {
	ds := locatedIntensityDataset()

	decoded, err := DecodeInputDataset(mustMarshal(t, ds))
	require.NoError(t, err)
	assert.Equal(t, ds.Name(), decoded.Name())
	assert.Equal(t, ds.Type(), decoded.Type())
	assert.Equal(t, ds.Tables(), decoded.Tables())
}
