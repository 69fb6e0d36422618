package domain

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/md-dataset/md-dataset/internal/pkg/id"
)

// ManifestTable describes one persisted output table
type ManifestTable struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Path string    `json:"path"`
}

// Manifest is the serializable record of an output dataset. Tables[i]
// describes the same table as OutputDataset.Tables()[i].
type Manifest struct {
	Name   string          `json:"name"`
	Type   DatasetType     `json:"type"`
	RunID  uuid.UUID       `json:"run_id"`
	Tables []ManifestTable `json:"tables"`
}

// TableByName returns the first manifest table with the given name
func (m Manifest) TableByName(name string) (ManifestTable, bool) {
	for _, t := range m.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return ManifestTable{}, false
}

// manifestCache memoizes the manifest of one output dataset. Table ids are
// generated when the cache is filled and never change afterwards.
type manifestCache struct {
	once     sync.Once
	manifest Manifest
}

func (c *manifestCache) get(run RunIdentity, typ DatasetType, tables []outputTable) Manifest {
	c.once.Do(func() {
		c.manifest = buildManifest(run, typ, tables)
	})

	m := c.manifest
	m.Tables = slices.Clone(c.manifest.Tables)
	return m
}

func buildManifest(run RunIdentity, typ DatasetType, tables []outputTable) Manifest {
	m := Manifest{
		Name:   run.Name,
		Type:   typ,
		RunID:  run.RunID,
		Tables: make([]ManifestTable, 0, len(tables)),
	}
	for _, t := range tables {
		m.Tables = append(m.Tables, ManifestTable{
			ID:   id.NewTableID(),
			Name: TableName(typ, t.kind),
			Path: TablePath(run.RunID, t.kind),
		})
	}
	return m
}
