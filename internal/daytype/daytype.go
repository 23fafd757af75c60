// Package daytype classifies calendar dates into study and review days.
package daytype

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/utils"
)

// SchedulerCyclic is the only scheduler type that produces a study/review cycle.
const SchedulerCyclic = "cyclic"

// Policy controls how an exclusion combines with the cyclic day type.
type Policy string

const (
	// PolicyOverrideAll lets an exclusion replace the cyclic type for
	// rendering and for duration estimation.
	PolicyOverrideAll Policy = "override_all"
	// PolicyOverrideRender lets an exclusion change rendering only.
	PolicyOverrideRender Policy = "override_render"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyOverrideAll, PolicyOverrideRender:
		return Policy(s), nil
	case "":
		return PolicyOverrideAll, nil
	default:
		return "", fmt.Errorf("unknown exclusion policy %q", s)
	}
}

// Classify returns the cyclic day type of date. ok is false when the
// scheduler is not cyclic, the cycle is empty, the date precedes the
// period start or either date is malformed. Exclusions are not consulted.
func Classify(date, periodStart, schedulerType string, studyDays, reviewDays int) (models.DayType, bool) {
	if schedulerType != SchedulerCyclic {
		return "", false
	}
	weekSize := studyDays + reviewDays
	if weekSize <= 0 {
		return "", false
	}
	diff, err := utils.DaysBetween(periodStart, date)
	if err != nil || diff < 0 {
		return "", false
	}
	if diff%weekSize < studyDays {
		return models.DayStudy, true
	}
	return models.DayReview, true
}

// FromExclusion maps an exclusion record to its day type.
func FromExclusion(e models.Exclusion) models.DayType {
	switch e.Type {
	case models.ExclusionVacation:
		return models.DayVacation
	case models.ExclusionPersonal:
		return models.DayPersonal
	default:
		return models.DayDesignatedHoliday
	}
}

// Effective returns the day type shown for a date. Exclusions always win;
// dates without a cyclic classification are study days.
func Effective(cyclic models.DayType, ok bool, exclusion *models.Exclusion) models.DayType {
	if exclusion != nil {
		return FromExclusion(*exclusion)
	}
	if !ok {
		return models.DayStudy
	}
	return cyclic
}

// ForEstimation returns the day type fed to the duration estimator.
func ForEstimation(cyclic models.DayType, ok bool, exclusion *models.Exclusion, policy Policy) models.DayType {
	if policy == PolicyOverrideRender {
		return Effective(cyclic, ok, nil)
	}
	return Effective(cyclic, ok, exclusion)
}

// CycleDay is one date of a study/review cycle walk.
type CycleDay struct {
	Date        string
	DayType     models.DayType
	CycleDay    int // 1-based position inside the cycle, 0 for exclusions
	CycleNumber int
}

// CycleDays walks dates in order and assigns cycle positions. Excluded
// dates keep their exclusion type and do not advance the cycle. An empty
// cycle yields no days.
func CycleDays(dates []string, exclusions []models.Exclusion, studyDays, reviewDays int) []CycleDay {
	cycleLength := studyDays + reviewDays
	if cycleLength <= 0 {
		return nil
	}

	result := make([]CycleDay, 0, len(dates))
	position, cycle := 0, 1
	for _, date := range dates {
		if ex := models.ExclusionFor(date, exclusions); ex != nil {
			result = append(result, CycleDay{Date: date, DayType: FromExclusion(*ex), CycleNumber: cycle})
			continue
		}

		position++
		if position > cycleLength {
			position = 1
			cycle++
		}

		dt := models.DayReview
		if position <= studyDays {
			dt = models.DayStudy
		}
		result = append(result, CycleDay{Date: date, DayType: dt, CycleDay: position, CycleNumber: cycle})
	}
	return result
}

// WeekNumbers assigns a 1-based week to every date. A new week starts after
// seven non-excluded dates; excluded dates join the current week.
func WeekNumbers(dates []string, exclusions []models.Exclusion) map[string]int {
	weeks := make(map[string]int, len(dates))
	week, count := 1, 0
	for _, date := range dates {
		if models.ExclusionFor(date, exclusions) == nil {
			count++
			if count > 7 {
				week++
				count = 1
			}
		}
		weeks[date] = week
	}
	return weeks
}
