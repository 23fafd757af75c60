package weekly

import (
	"math"
	"testing"

	"github.com/julianstephens/studylit/internal/models"
)

func intPtr(v int) *int { return &v }

func entry(date string, week *int, dt models.DayType, studyHours float64, slots ...models.TimeSlot) models.DailyScheduleEntry {
	return models.DailyScheduleEntry{Date: date, WeekNumber: week, DayType: dt, StudyHours: studyHours, TimeSlots: slots}
}

func slot(t models.SlotType, start, end string) models.TimeSlot {
	return models.TimeSlot{Type: t, Start: start, End: end}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAggregate(t *testing.T) {
	entries := []models.DailyScheduleEntry{
		entry("2026-03-03", intPtr(1), models.DayStudy, 4,
			slot(models.SlotStudy, "09:00", "12:00"),
			slot(models.SlotLunch, "12:00", "13:00"),
			slot(models.SlotSelfStudy, "19:00", "20:00"),
			slot(models.SlotTravel, "13:00", "13:30"),
		),
		entry("2026-03-02", intPtr(1), models.DayReview, 2,
			slot(models.SlotStudy, "09:00", "11:00"),
			slot(models.SlotAcademy, "16:00", "18:00"),
		),
		entry("2026-03-04", intPtr(1), models.DayDesignatedHoliday, 3,
			slot(models.SlotStudy, "09:00", "17:00"),
		),
		entry("2026-03-09", intPtr(2), models.DayVacation, 0),
		entry("2026-03-10", nil, models.DayStudy, 1, slot(models.SlotStudy, "09:00", "10:00")),
	}

	got := Aggregate(entries, map[string]int{"2026-03-02": 100, "2026-03-03": 150})

	if len(got.Weeks) != 2 {
		t.Fatalf("Aggregate() returned %d weeks, want 2", len(got.Weeks))
	}
	if len(got.Ungrouped) != 1 || got.Ungrouped[0].Date != "2026-03-10" {
		t.Errorf("Ungrouped = %+v, want the 2026-03-10 entry", got.Ungrouped)
	}

	w := got.Weeks[0]
	if w.Number != 1 || w.StartDate != "2026-03-02" || w.EndDate != "2026-03-04" {
		t.Errorf("week 1 bounds = %d %s..%s", w.Number, w.StartDate, w.EndDate)
	}
	// Holiday study slots are skipped; its study_hours count as self-study.
	if !approx(w.StudyHours, 5) {
		t.Errorf("StudyHours = %v, want 5", w.StudyHours)
	}
	if !approx(w.SelfStudyHours, 4) {
		t.Errorf("SelfStudyHours = %v, want 4", w.SelfStudyHours)
	}
	if !approx(w.TravelHours, 0.5) || !approx(w.AcademyHours, 2) {
		t.Errorf("TravelHours/AcademyHours = %v/%v, want 0.5/2", w.TravelHours, w.AcademyHours)
	}
	if w.StudyDays != 1 || w.ReviewDays != 1 || w.ExclusionDays != 1 {
		t.Errorf("day counts = %d/%d/%d, want 1/1/1", w.StudyDays, w.ReviewDays, w.ExclusionDays)
	}
	if !approx(w.AverageHoursPerDay, 4.5) {
		t.Errorf("AverageHoursPerDay = %v, want 4.5", w.AverageHoursPerDay)
	}
	if w.PlacedMinutes != 250 {
		t.Errorf("PlacedMinutes = %d, want 250", w.PlacedMinutes)
	}

	w2 := got.Weeks[1]
	if w2.AverageHoursPerDay != 0 {
		t.Errorf("week without study days AverageHoursPerDay = %v, want 0", w2.AverageHoursPerDay)
	}
	if w2.ExclusionDays != 1 {
		t.Errorf("week 2 ExclusionDays = %d, want 1", w2.ExclusionDays)
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil, nil)
	if len(got.Weeks) != 0 || len(got.Ungrouped) != 0 {
		t.Errorf("Aggregate(nil) = %+v, want empty", got)
	}
}
