package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/julianstephens/studylit/internal/models"
)

// snapshotFile is the on-disk import format: a snapshot plus optional
// settings as key/value pairs.
type snapshotFile struct {
	models.Snapshot
	Settings map[string]string `json:"settings,omitempty"`
}

// ReadSnapshotFile decodes an import file. Unknown fields are rejected so
// typos surface instead of silently dropping data.
func ReadSnapshotFile(r io.Reader) (models.Snapshot, map[string]string, error) {
	var f snapshotFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return models.Snapshot{}, nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return f.Snapshot, f.Settings, nil
}

// AssignIDs gives every record without an id a fresh UUID and returns how
// many ids were generated. Content ids are left alone because plans refer
// to them.
func AssignIDs(snap *models.Snapshot) int {
	n := 0
	fill := func(id *string) {
		if *id == "" {
			*id = uuid.NewString()
			n++
		}
	}

	for i := range snap.BlockSets {
		fill(&snap.BlockSets[i].ID)
		for j := range snap.BlockSets[i].Blocks {
			fill(&snap.BlockSets[i].Blocks[j].ID)
		}
	}
	for i := range snap.Plans {
		fill(&snap.Plans[i].ID)
	}
	for i := range snap.Exclusions {
		fill(&snap.Exclusions[i].ID)
	}
	for i := range snap.AcademySchedules {
		fill(&snap.AcademySchedules[i].ID)
	}
	return n
}
