package models

import "time"

type ExclusionType string

const (
	ExclusionVacation          ExclusionType = "vacation"
	ExclusionPersonal          ExclusionType = "personal"
	ExclusionDesignatedHoliday ExclusionType = "designated_holiday"
)

// Exclusion overrides a single date.
type Exclusion struct {
	ID     string        `json:"id"`
	Date   string        `json:"date"` // YYYY-MM-DD format
	Type   ExclusionType `json:"type"`
	Reason string        `json:"reason,omitempty"`
}

// AcademySchedule is a recurring external commitment on a weekday.
type AcademySchedule struct {
	ID          string       `json:"id"`
	DayOfWeek   time.Weekday `json:"day_of_week"`
	StartTime   string       `json:"start_time"` // HH:MM format
	EndTime     string       `json:"end_time"`   // HH:MM format
	AcademyName string       `json:"academy_name,omitempty"`
	Subject     string       `json:"subject,omitempty"`
}

// ExclusionFor returns the exclusion registered for date, if any.
func ExclusionFor(date string, exclusions []Exclusion) *Exclusion {
	for i := range exclusions {
		if exclusions[i].Date == date {
			return &exclusions[i]
		}
	}
	return nil
}
