package models

type DayType string

const (
	DayStudy             DayType = "study"
	DayReview            DayType = "review"
	DayDesignatedHoliday DayType = "designated_holiday"
	DayVacation          DayType = "vacation"
	DayPersonal          DayType = "personal"
)

// IsExclusion reports whether the day type comes from an exclusion record.
func (d DayType) IsExclusion() bool {
	return d == DayDesignatedHoliday || d == DayVacation || d == DayPersonal
}

type SlotType string

const (
	SlotStudy     SlotType = "study"
	SlotLunch     SlotType = "lunch"
	SlotAcademy   SlotType = "academy"
	SlotTravel    SlotType = "travel"
	SlotSelfStudy SlotType = "self_study"
)

// IsStudyType reports whether plans are packed into the slot by the study pass.
func (s SlotType) IsStudyType() bool {
	return s == SlotStudy || s == SlotSelfStudy
}

// AcceptsCustomOnly reports whether only custom plans may be placed in the slot.
func (s SlotType) AcceptsCustomOnly() bool {
	return s == SlotTravel || s == SlotAcademy
}

// TimeSlot is one typed interval of a day's pre-built timeline.
type TimeSlot struct {
	Type  SlotType `json:"type"`
	Start string   `json:"start"` // HH:MM format
	End   string   `json:"end"`   // HH:MM format
	Label string   `json:"label,omitempty"`
}

// DailyScheduleEntry is one day's computed context, built upstream.
type DailyScheduleEntry struct {
	Date             string            `json:"date"` // YYYY-MM-DD format
	DayType          DayType           `json:"day_type"`
	StudyHours       float64           `json:"study_hours"`
	WeekNumber       *int              `json:"week_number,omitempty"`
	TimeSlots        []TimeSlot        `json:"time_slots"`
	Exclusion        *Exclusion        `json:"exclusion,omitempty"`
	AcademySchedules []AcademySchedule `json:"academy_schedules,omitempty"`
}

// Placement is one allocated segment of a Plan inside one TimeSlot.
type Placement struct {
	PlanID      string `json:"plan_id"`
	SlotIndex   int    `json:"slot_index"`
	Start       string `json:"start"` // HH:MM format
	End         string `json:"end"`   // HH:MM format
	IsPartial   bool   `json:"is_partial"`
	IsContinued bool   `json:"is_continued"`
}

// FreeRange is leftover time inside a study-type slot.
type FreeRange struct {
	SlotIndex int      `json:"slot_index"`
	Type      SlotType `json:"type"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
}

// Overflow records working time a pass could not place.
type Overflow struct {
	PlanID  string `json:"plan_id"`
	Minutes int    `json:"minutes"`
}
