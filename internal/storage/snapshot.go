package storage

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/utils"
)

// LoadSnapshot reads everything a timetable build needs. Entries outside
// [from, to] are skipped; plans are always loaded in full so sequences
// stay correct.
func LoadSnapshot(p Provider, from, to string) (models.Snapshot, error) {
	var snap models.Snapshot
	var err error

	if snap.Settings, err = p.GetSettings(); err != nil {
		return snap, fmt.Errorf("loading settings: %w", err)
	}
	if snap.BlockSets, err = p.GetBlockSets(); err != nil {
		return snap, fmt.Errorf("loading block sets: %w", err)
	}
	if snap.Contents, err = p.GetContents(); err != nil {
		return snap, fmt.Errorf("loading contents: %w", err)
	}
	if snap.Plans, err = p.GetPlans(); err != nil {
		return snap, fmt.Errorf("loading plans: %w", err)
	}
	if snap.Exclusions, err = p.GetExclusions(); err != nil {
		return snap, fmt.Errorf("loading exclusions: %w", err)
	}
	if snap.AcademySchedules, err = p.GetAcademySchedules(); err != nil {
		return snap, fmt.Errorf("loading academy schedules: %w", err)
	}
	if snap.Entries, err = p.GetEntries(from, to); err != nil {
		return snap, fmt.Errorf("loading schedule entries: %w", err)
	}

	AttachCalendar(snap.Entries, snap.Exclusions, snap.AcademySchedules)
	return snap, nil
}

// AttachCalendar fills each entry's exclusion and academy schedules from
// the registries, leaving values already present untouched.
func AttachCalendar(entries []models.DailyScheduleEntry, exclusions []models.Exclusion, academies []models.AcademySchedule) {
	for i := range entries {
		e := &entries[i]
		if e.Exclusion == nil {
			e.Exclusion = models.ExclusionFor(e.Date, exclusions)
		}
		if len(e.AcademySchedules) > 0 {
			continue
		}
		weekday, err := utils.Weekday(e.Date)
		if err != nil {
			continue
		}
		for _, a := range academies {
			if a.DayOfWeek == weekday {
				e.AcademySchedules = append(e.AcademySchedules, a)
			}
		}
	}
}
