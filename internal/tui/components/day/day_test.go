package day

import (
	"strings"
	"testing"

	"github.com/julianstephens/studylit/internal/allocator"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/scheduler"
)

func TestRender(t *testing.T) {
	day := scheduler.DayResult{
		Entry: models.DailyScheduleEntry{
			Date:    "2026-03-02",
			DayType: models.DayStudy,
			TimeSlots: []models.TimeSlot{
				{Type: models.SlotStudy, Start: "09:00", End: "10:00"},
			},
		},
		EstimationType: models.DayStudy,
		Plans: []models.Plan{
			{ID: "a", ContentID: "bk", Chapter: "ch1"},
			{ID: "b", ContentID: "bk", Chapter: "ch2"},
		},
		Allocation: allocator.Result{
			Placements: map[int][]models.Placement{
				0: {{PlanID: "a", Start: "09:00", End: "10:00", IsPartial: true}},
			},
			Overflow: []models.Overflow{{PlanID: "a", Minutes: 15}, {PlanID: "b", Minutes: 30}},
		},
	}
	catalog := models.NewContentCatalog([]models.ContentItem{{ID: "bk", Title: "Calculus"}})

	got := Render(day, catalog, map[string]int{"a": 3, "b": 4})

	for _, want := range []string{"Calculus ch1", "#3", "partial", "Did not fit:", "Calculus ch2", "#4", "30 min"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q:\n%s", want, got)
		}
	}
}

func TestRenderWithoutSequences(t *testing.T) {
	day := scheduler.DayResult{
		Entry: models.DailyScheduleEntry{Date: "2026-03-02", DayType: models.DayReview},
	}
	got := Render(day, nil, nil)
	if !strings.Contains(got, "No time slots.") {
		t.Errorf("Render() missing empty slot notice:\n%s", got)
	}
	if strings.Contains(got, "#") {
		t.Errorf("Render() without sequences should not print one:\n%s", got)
	}
}
