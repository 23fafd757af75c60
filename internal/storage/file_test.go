package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/studylit/internal/models"
)

func TestReadSnapshotFile(t *testing.T) {
	input := `{
		"plans": [{"id": "p1", "plan_date": "2026-03-02", "content_type": "book", "content_id": "bk", "range_start": 0, "range_end": 10}],
		"block_sets": [{"id": "s1", "name": "Default", "active": true, "blocks": [{"day_of_week": 1, "start_time": "09:00", "end_time": "10:00", "block_index": 0}]}],
		"settings": {"pages_per_hour": "15"}
	}`

	snap, settings, err := ReadSnapshotFile(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadSnapshotFile() error = %v", err)
	}
	if len(snap.Plans) != 1 || snap.Plans[0].ID != "p1" {
		t.Errorf("Plans = %+v, want one plan p1", snap.Plans)
	}
	if got := snap.BlockSets[0].Blocks[0].DayOfWeek; got != time.Monday {
		t.Errorf("DayOfWeek = %v, want Monday", got)
	}
	if settings["pages_per_hour"] != "15" {
		t.Errorf("settings = %v, want pages_per_hour 15", settings)
	}
}

func TestReadSnapshotFileErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown field", `{"tasks": []}`},
		{"malformed", `{"plans": [`},
		{"wrong type", `{"plans": {"id": "p1"}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := ReadSnapshotFile(strings.NewReader(tc.input)); err == nil {
				t.Error("ReadSnapshotFile(): expected error, got nil")
			}
		})
	}
}

func TestAssignIDs(t *testing.T) {
	snap := models.Snapshot{
		BlockSets: []models.BlockSet{{Name: "Default", Blocks: []models.Block{{ID: "keep"}, {}}}},
		Contents:  []models.ContentItem{{}},
		Plans:     []models.Plan{{ID: "p1"}, {}},
		Exclusions: []models.Exclusion{
			{Date: "2026-03-04"},
		},
		AcademySchedules: []models.AcademySchedule{{}},
	}

	if got := AssignIDs(&snap); got != 5 {
		t.Errorf("AssignIDs() = %d, want 5", got)
	}
	if snap.BlockSets[0].Blocks[0].ID != "keep" || snap.Plans[0].ID != "p1" {
		t.Error("AssignIDs() overwrote existing ids")
	}
	for _, id := range []string{snap.BlockSets[0].ID, snap.BlockSets[0].Blocks[1].ID, snap.Plans[1].ID, snap.Exclusions[0].ID, snap.AcademySchedules[0].ID} {
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("generated id %q is not a UUID: %v", id, err)
		}
	}
	if snap.Contents[0].ID != "" {
		t.Errorf("content id = %q, want it left empty", snap.Contents[0].ID)
	}
}

func TestAttachCalendar(t *testing.T) {
	exclusions := []models.Exclusion{{ID: "x1", Date: "2026-03-03", Type: models.ExclusionPersonal}}
	academies := []models.AcademySchedule{
		{ID: "a1", DayOfWeek: time.Monday, StartTime: "18:00", EndTime: "20:00"},
		{ID: "a2", DayOfWeek: time.Tuesday, StartTime: "18:00", EndTime: "19:00"},
	}
	preset := &models.Exclusion{ID: "own", Date: "2026-03-02", Type: models.ExclusionVacation}
	entries := []models.DailyScheduleEntry{
		{Date: "2026-03-02", Exclusion: preset},
		{Date: "2026-03-03"},
		{Date: "bad"},
	}

	AttachCalendar(entries, exclusions, academies)

	if entries[0].Exclusion != preset {
		t.Error("existing exclusion was replaced")
	}
	if len(entries[0].AcademySchedules) != 1 || entries[0].AcademySchedules[0].ID != "a1" {
		t.Errorf("Monday academies = %+v, want a1", entries[0].AcademySchedules)
	}
	if entries[1].Exclusion == nil || entries[1].Exclusion.ID != "x1" {
		t.Errorf("Tuesday exclusion = %+v, want x1", entries[1].Exclusion)
	}
	if len(entries[1].AcademySchedules) != 1 || entries[1].AcademySchedules[0].ID != "a2" {
		t.Errorf("Tuesday academies = %+v, want a2", entries[1].AcademySchedules)
	}
	if entries[2].Exclusion != nil || len(entries[2].AcademySchedules) != 0 {
		t.Errorf("malformed date entry should be left alone: %+v", entries[2])
	}
}
