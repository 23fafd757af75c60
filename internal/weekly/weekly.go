// Package weekly rolls daily schedule entries into per-week statistics.
package weekly

import (
	"sort"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/utils"
)

type Week struct {
	Number             int     `json:"week_number"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	StudyHours         float64 `json:"study_hours"`
	SelfStudyHours     float64 `json:"self_study_hours"`
	TravelHours        float64 `json:"travel_hours"`
	AcademyHours       float64 `json:"academy_hours"`
	AverageHoursPerDay float64 `json:"average_hours_per_day"`
	StudyDays          int     `json:"study_days"`
	ReviewDays         int     `json:"review_days"`
	ExclusionDays      int     `json:"exclusion_days"`
	PlacedMinutes      int     `json:"placed_minutes"`
}

type Summary struct {
	Weeks []Week `json:"weeks"`

	// Ungrouped holds entries without a week number, untouched.
	Ungrouped []models.DailyScheduleEntry `json:"ungrouped,omitempty"`
}

// Aggregate groups entries by week number. placed optionally maps a date to
// the minutes the allocator placed on it.
func Aggregate(entries []models.DailyScheduleEntry, placed map[string]int) Summary {
	byWeek := make(map[int]*Week)
	summary := Summary{}

	for _, entry := range entries {
		if entry.WeekNumber == nil {
			summary.Ungrouped = append(summary.Ungrouped, entry)
			continue
		}

		w, ok := byWeek[*entry.WeekNumber]
		if !ok {
			w = &Week{Number: *entry.WeekNumber, StartDate: entry.Date, EndDate: entry.Date}
			byWeek[*entry.WeekNumber] = w
		}
		add(w, entry)
		w.PlacedMinutes += placed[entry.Date]
	}

	for _, w := range byWeek {
		finish(w)
		summary.Weeks = append(summary.Weeks, *w)
	}
	sort.Slice(summary.Weeks, func(i, j int) bool {
		return summary.Weeks[i].Number < summary.Weeks[j].Number
	})
	return summary
}

func add(w *Week, entry models.DailyScheduleEntry) {
	if entry.Date < w.StartDate {
		w.StartDate = entry.Date
	}
	if entry.Date > w.EndDate {
		w.EndDate = entry.Date
	}

	switch entry.DayType {
	case models.DayStudy:
		w.StudyDays++
	case models.DayReview:
		w.ReviewDays++
	default:
		if entry.DayType.IsExclusion() {
			w.ExclusionDays++
		}
	}

	holiday := entry.DayType == models.DayDesignatedHoliday
	if holiday {
		// On designated holidays study_hours is the self-study budget.
		w.SelfStudyHours += entry.StudyHours
	}

	for _, slot := range entry.TimeSlots {
		hours := float64(slotMinutes(slot)) / 60
		switch slot.Type {
		case models.SlotStudy:
			if !holiday {
				w.StudyHours += hours
			}
		case models.SlotSelfStudy:
			if !holiday {
				w.SelfStudyHours += hours
			}
		case models.SlotTravel:
			w.TravelHours += hours
		case models.SlotAcademy:
			w.AcademyHours += hours
		}
	}
}

func finish(w *Week) {
	days := w.StudyDays + w.ReviewDays
	if days == 0 {
		return
	}
	w.AverageHoursPerDay = (w.StudyHours + w.SelfStudyHours) / float64(days)
}

func slotMinutes(slot models.TimeSlot) int {
	start, err := utils.ParseTimeOfDay(slot.Start)
	if err != nil {
		return 0
	}
	end, err := utils.ParseTimeOfDay(slot.End)
	if err != nil || end <= start {
		return 0
	}
	return end.Sub(start)
}
