package scheduler

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/studylit/internal/models"
)

func intPtr(v int) *int { return &v }

func bookPlan(id, date string, start, end int) models.Plan {
	return models.Plan{ID: id, PlanDate: date, ContentType: models.ContentBook, ContentID: "book-1", RangeStart: intPtr(start), RangeEnd: intPtr(end)}
}

func testSnapshot() models.Snapshot {
	return models.Snapshot{
		BlockSets: []models.BlockSet{
			{ID: "old", Name: "Old", Blocks: []models.Block{{DayOfWeek: time.Tuesday, StartTime: "06:00", EndTime: "07:00", BlockIndex: 1}}},
			{ID: "set", Name: "Weekdays", Active: true, Blocks: []models.Block{
				{ID: "b1", DayOfWeek: time.Tuesday, StartTime: "13:00", EndTime: "14:00", BlockIndex: 1},
			}},
		},
		Contents: []models.ContentItem{{ID: "book-1", ContentType: models.ContentBook}},
		Plans: []models.Plan{
			bookPlan("p1", "2026-03-02", 0, 15),
			bookPlan("p2", "2026-03-02", 15, 30),
			func() models.Plan { p := bookPlan("t1", "2026-03-03", 30, 35); p.BlockIndex = intPtr(1); return p }(),
			bookPlan("r1", "2026-03-08", 35, 55),
			bookPlan("r2", "2026-03-08", 55, 75),
			bookPlan("r3", "2026-03-08", 75, 95),
			bookPlan("lost", "2026-04-01", 95, 100),
		},
		Entries: []models.DailyScheduleEntry{
			{Date: "2026-03-08", WeekNumber: intPtr(1), DayType: models.DayReview, StudyHours: 2, TimeSlots: []models.TimeSlot{
				{Type: models.SlotStudy, Start: "09:00", End: "13:00"},
			}},
			{Date: "2026-03-02", WeekNumber: intPtr(1), DayType: models.DayStudy, StudyHours: 4, TimeSlots: []models.TimeSlot{
				{Type: models.SlotStudy, Start: "09:00", End: "11:00"},
				{Type: models.SlotStudy, Start: "13:00", End: "15:00"},
			}},
			{Date: "2026-03-03", WeekNumber: intPtr(1), DayType: models.DayStudy, StudyHours: 4, TimeSlots: []models.TimeSlot{
				{Type: models.SlotStudy, Start: "12:00", End: "15:00"},
			}},
		},
	}
}

func testSettings() models.Settings {
	return models.Settings{PeriodStart: "2026-03-02", SchedulerType: "cyclic", StudyDays: 6, ReviewDays: 1}
}

func TestBuild(t *testing.T) {
	tt, err := New(testSettings()).Build(context.Background(), testSnapshot())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(tt.Days) != 3 || tt.Days[0].Entry.Date != "2026-03-02" || tt.Days[2].Entry.Date != "2026-03-08" {
		t.Fatalf("Days are not ordered by date: %+v", tt.Days)
	}

	t.Run("split across slots", func(t *testing.T) {
		day, ok := tt.Day("2026-03-02")
		if !ok {
			t.Fatal("Day(2026-03-02) not found")
		}
		want := map[int][]models.Placement{
			0: {
				{PlanID: "p1", SlotIndex: 0, Start: "09:00", End: "10:30"},
				{PlanID: "p2", SlotIndex: 0, Start: "10:30", End: "11:00", IsPartial: true},
			},
			1: {
				{PlanID: "p2", SlotIndex: 1, Start: "13:00", End: "14:00", IsContinued: true},
			},
		}
		if !reflect.DeepEqual(day.Allocation.Placements, want) {
			t.Errorf("Placements = %+v, want %+v", day.Allocation.Placements, want)
		}
	})

	t.Run("block start from the active set", func(t *testing.T) {
		day, _ := tt.Day("2026-03-03")
		got := day.Allocation.Placements[0]
		if len(got) != 1 || got[0].Start != "13:00" || got[0].End != "13:30" {
			t.Errorf("Placements = %+v, want t1 at 13:00-13:30", got)
		}
	})

	t.Run("review day rescale", func(t *testing.T) {
		day, _ := tt.Day("2026-03-08")
		if day.CyclicType != models.DayReview || day.EstimationType != models.DayReview {
			t.Errorf("types = %q/%q, want review/review", day.CyclicType, day.EstimationType)
		}
		if !day.Allocation.Rescaled {
			t.Error("review day was not rescaled")
		}
		for _, id := range []string{"r1", "r2", "r3"} {
			if day.Allocation.Estimates[id] != 60 || day.Allocation.Working[id] != 40 {
				t.Errorf("%s estimate/working = %d/%d, want 60/40", id, day.Allocation.Estimates[id], day.Allocation.Working[id])
			}
		}
	})

	t.Run("weeks and sequences", func(t *testing.T) {
		if len(tt.Weeks) != 1 || tt.Weeks[0].StudyDays != 2 || tt.Weeks[0].ReviewDays != 1 {
			t.Errorf("Weeks = %+v", tt.Weeks)
		}
		if tt.Weeks[0].PlacedMinutes != 180+30+120 {
			t.Errorf("PlacedMinutes = %d, want 330", tt.Weeks[0].PlacedMinutes)
		}
		if tt.Sequences["p1"] != 1 || tt.Sequences["lost"] != 7 {
			t.Errorf("Sequences = %v", tt.Sequences)
		}
		if !reflect.DeepEqual(tt.Unscheduled, []string{"lost"}) {
			t.Errorf("Unscheduled = %v, want [lost]", tt.Unscheduled)
		}
	})
}

func TestBuild_ExclusionPolicy(t *testing.T) {
	tests := []struct {
		policy      string
		wantType    models.DayType
		wantWorking int
	}{
		{policy: "override_all", wantType: models.DayDesignatedHoliday, wantWorking: 120},
		{policy: "override_render", wantType: models.DayReview, wantWorking: 40},
	}

	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			snap := testSnapshot()
			snap.Exclusions = []models.Exclusion{{Date: "2026-03-08", Type: models.ExclusionDesignatedHoliday}}
			settings := testSettings()
			settings.ExclusionPolicy = tt.policy

			got, err := New(settings).Build(context.Background(), snap)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			day, _ := got.Day("2026-03-08")
			if day.EstimationType != tt.wantType {
				t.Errorf("EstimationType = %q, want %q", day.EstimationType, tt.wantType)
			}
			if day.Allocation.Working["r1"] != tt.wantWorking {
				t.Errorf("Working[r1] = %d, want %d", day.Allocation.Working["r1"], tt.wantWorking)
			}
		})
	}
}

func TestBuildDay_ExplicitEnd(t *testing.T) {
	entry := models.DailyScheduleEntry{Date: "2026-03-02", DayType: models.DayStudy, StudyHours: 4, TimeSlots: []models.TimeSlot{
		{Type: models.SlotStudy, Start: "09:00", End: "11:00"},
	}}
	plan := bookPlan("e", "2026-03-02", 0, 15)
	plan.ExplicitStart = "09:00"
	plan.ExplicitEnd = "09:20"
	catalog := models.NewContentCatalog(testSnapshot().Contents)

	day := New(testSettings()).BuildDay(entry, []models.Plan{plan}, catalog, nil, nil)

	want := []models.Placement{{PlanID: "e", SlotIndex: 0, Start: "09:00", End: "09:20"}}
	if got := day.Allocation.PlacementsFor("e"); !reflect.DeepEqual(got, want) {
		t.Errorf("PlacementsFor(e) = %+v, want %+v", got, want)
	}
	if day.Allocation.Estimates["e"] != 20 {
		t.Errorf("Estimates[e] = %d, want 20", day.Allocation.Estimates["e"])
	}
}

func TestBuild_ParallelMatchesSerial(t *testing.T) {
	snap := testSnapshot()

	serial := New(testSettings())
	serial.SetConcurrency(1)
	want, err := serial.Build(context.Background(), snap)
	if err != nil {
		t.Fatalf("serial Build() error = %v", err)
	}

	for i := 0; i < 5; i++ {
		got, err := New(testSettings()).Build(context.Background(), snap)
		if err != nil {
			t.Fatalf("parallel Build() error = %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("parallel build differs from serial build")
		}
	}
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testSettings()).Build(ctx, testSnapshot())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
}

func TestNew_UnknownPolicies(t *testing.T) {
	s := New(models.Settings{BlockFallback: "nearest", ExclusionPolicy: "sometimes"})
	if s.fallback != "clamp_first" || s.policy != "override_all" {
		t.Errorf("fallback/policy = %q/%q, want defaults", s.fallback, s.policy)
	}
}

func TestBuildEntries(t *testing.T) {
	dates := []string{"2026-03-07", "2026-03-08", "2026-03-09"}
	exclusions := []models.Exclusion{{Date: "2026-03-09", Type: models.ExclusionVacation}}

	got := BuildEntries(dates, exclusions, testSettings())

	wantTypes := []models.DayType{models.DayStudy, models.DayReview, models.DayVacation}
	for i, e := range got {
		if e.DayType != wantTypes[i] {
			t.Errorf("entry %s DayType = %q, want %q", e.Date, e.DayType, wantTypes[i])
		}
		if e.WeekNumber == nil || *e.WeekNumber != 1 {
			t.Errorf("entry %s WeekNumber = %v, want 1", e.Date, e.WeekNumber)
		}
	}
	if got[2].Exclusion == nil {
		t.Errorf("excluded date lost its exclusion")
	}

	automatic := testSettings()
	automatic.SchedulerType = "automatic"
	for _, e := range BuildEntries(dates[:2], nil, automatic) {
		if e.DayType != models.DayStudy || e.WeekNumber != nil {
			t.Errorf("automatic entry %s = %q week %v, want study without week", e.Date, e.DayType, e.WeekNumber)
		}
	}
}
