package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingSlots  ConflictType = "overlapping_slots"
	ConflictUnorderedSlots    ConflictType = "unordered_slots"
	ConflictInvalidDateTime   ConflictType = "invalid_datetime"
	ConflictInvalidRange      ConflictType = "invalid_range"
	ConflictDuplicatePlanID   ConflictType = "duplicate_plan_id"
	ConflictUnknownContent    ConflictType = "unknown_content"
	ConflictBlockDayOfWeek    ConflictType = "block_day_of_week"
	ConflictDuplicateBlock    ConflictType = "duplicate_block"
	ConflictPlanWithoutEntry  ConflictType = "plan_without_entry"
	ConflictDuplicateEntry    ConflictType = "duplicate_entry"
	ConflictMultipleActiveSet ConflictType = "multiple_active_block_sets"
)

// Conflict represents a detected problem in a snapshot
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Slot or block labels involved
	TimeRange   string   // Human-readable time range (if applicable)
	PlanIDs     []string // IDs of plans involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator checks snapshots for conflicts. The engine tolerates every
// conflict it reports; the report tells the user why output looks wrong.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateSnapshot runs every check over the snapshot.
func (v *Validator) ValidateSnapshot(snap models.Snapshot) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	v.validateBlockSets(snap.BlockSets, &result)
	v.validateEntries(snap.Entries, &result)
	v.validatePlans(snap, &result)
	return result
}

func (v *Validator) validateBlockSets(sets []models.BlockSet, result *ValidationResult) {
	active := 0
	for _, set := range sets {
		if set.Active {
			active++
		}

		seen := make(map[string]string)
		for _, b := range set.Blocks {
			label := fmt.Sprintf("%s block %d on %s", set.Name, b.BlockIndex, b.DayOfWeek)
			if b.DayOfWeek < 0 || b.DayOfWeek > 6 {
				result.add(Conflict{
					Type:        ConflictBlockDayOfWeek,
					Description: fmt.Sprintf("Block set %q has a block with day_of_week %d outside 0-6", set.Name, int(b.DayOfWeek)),
					Items:       []string{set.Name},
				})
				continue
			}
			v.checkInterval(label, "", b.StartTime, b.EndTime, result)

			key := fmt.Sprintf("%d/%d", b.DayOfWeek, b.BlockIndex)
			if prev, ok := seen[key]; ok {
				result.add(Conflict{
					Type:        ConflictDuplicateBlock,
					Description: fmt.Sprintf("Block set %q has two blocks with index %d on %s (%s, %s)", set.Name, b.BlockIndex, b.DayOfWeek, prev, b.ID),
					Items:       []string{prev, b.ID},
				})
			}
			seen[key] = b.ID
		}
	}

	if active > 1 {
		result.add(Conflict{
			Type:        ConflictMultipleActiveSet,
			Description: fmt.Sprintf("%d block sets are active; only the first is used", active),
		})
	}
}

func (v *Validator) validateEntries(entries []models.DailyScheduleEntry, result *ValidationResult) {
	dates := make(map[string]bool)
	for _, entry := range entries {
		if _, err := utils.ParseDate(entry.Date); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Schedule entry has invalid date: %s", entry.Date),
				Date:        entry.Date,
			})
			continue
		}
		if dates[entry.Date] {
			result.add(Conflict{
				Type:        ConflictDuplicateEntry,
				Description: fmt.Sprintf("Date %s has more than one schedule entry", entry.Date),
				Date:        entry.Date,
			})
		}
		dates[entry.Date] = true

		prevStart, prevEnd := -1, -1
		prevLabel := ""
		for i, slot := range entry.TimeSlots {
			label := fmt.Sprintf("%s slot %d", slot.Type, i)
			start, end, ok := v.checkInterval(label, entry.Date, slot.Start, slot.End, result)
			if !ok {
				continue
			}
			if prevStart >= 0 {
				switch {
				case start < prevStart:
					result.add(Conflict{
						Type:        ConflictUnorderedSlots,
						Description: fmt.Sprintf("On %s, %s starts before %s", entry.Date, label, prevLabel),
						Date:        entry.Date,
						Items:       []string{prevLabel, label},
					})
				case start < prevEnd:
					result.add(Conflict{
						Type:        ConflictOverlappingSlots,
						Description: fmt.Sprintf("On %s, %s overlaps %s", entry.Date, label, prevLabel),
						Date:        entry.Date,
						Items:       []string{prevLabel, label},
						TimeRange:   fmt.Sprintf("%s-%s", utils.FormatMinutes(start), utils.FormatMinutes(min(end, prevEnd))),
					})
				}
			}
			prevStart, prevEnd, prevLabel = start, max(end, prevEnd), label
		}
	}
}

func (v *Validator) validatePlans(snap models.Snapshot, result *ValidationResult) {
	catalog := models.NewContentCatalog(snap.Contents)
	dates := make(map[string]bool, len(snap.Entries))
	for _, e := range snap.Entries {
		dates[e.Date] = true
	}

	ids := make(map[string]int)
	var order []string
	for _, p := range snap.Plans {
		if ids[p.ID] == 0 {
			order = append(order, p.ID)
		}
		ids[p.ID]++

		if catalog.Lookup(p.ContentID) == nil {
			result.add(Conflict{
				Type:        ConflictUnknownContent,
				Description: fmt.Sprintf("Plan %s references unknown content %q", p.ID, p.ContentID),
				Date:        p.PlanDate,
				PlanIDs:     []string{p.ID},
			})
		}
		if _, err := utils.ParseDate(p.PlanDate); err != nil {
			result.add(Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Plan %s has invalid plan_date: %s", p.ID, p.PlanDate),
				PlanIDs:     []string{p.ID},
			})
		} else if len(dates) > 0 && !dates[p.PlanDate] {
			result.add(Conflict{
				Type:        ConflictPlanWithoutEntry,
				Description: fmt.Sprintf("Plan %s is dated %s but that date has no schedule entry", p.ID, p.PlanDate),
				Date:        p.PlanDate,
				PlanIDs:     []string{p.ID},
			})
		}
		if amount, ok := p.Amount(); ok && amount <= 0 {
			result.add(Conflict{
				Type:        ConflictInvalidRange,
				Description: fmt.Sprintf("Plan %s has range %d-%d; its estimate falls back to the default", p.ID, *p.RangeStart, *p.RangeEnd),
				Date:        p.PlanDate,
				PlanIDs:     []string{p.ID},
			})
		}
		for _, t := range []string{p.ExplicitStart, p.ExplicitEnd} {
			if t != "" && !utils.ValidateTimeFormat(t) {
				result.add(Conflict{
					Type:        ConflictInvalidDateTime,
					Description: fmt.Sprintf("Plan %s has invalid explicit time: %s", p.ID, t),
					Date:        p.PlanDate,
					PlanIDs:     []string{p.ID},
				})
			}
		}
	}

	sort.Strings(order)
	for _, id := range order {
		if ids[id] > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicatePlanID,
				Description: fmt.Sprintf("Plan id %s is used by %d plans", id, ids[id]),
				PlanIDs:     []string{id},
			})
		}
	}
}

// checkInterval reports malformed or empty intervals and returns the parsed
// bounds when both are valid.
func (v *Validator) checkInterval(label, date, startStr, endStr string, result *ValidationResult) (int, int, bool) {
	start, errStart := utils.ParseTimeOfDay(startStr)
	end, errEnd := utils.ParseTimeOfDay(endStr)
	if errStart != nil || errEnd != nil {
		result.add(Conflict{
			Type:        ConflictInvalidDateTime,
			Description: fmt.Sprintf("%s has invalid time range: %s-%s", label, startStr, endStr),
			Date:        date,
			Items:       []string{label},
		})
		return 0, 0, false
	}
	if end <= start {
		result.add(Conflict{
			Type:        ConflictInvalidRange,
			Description: fmt.Sprintf("%s ends at or before it starts: %s-%s", label, startStr, endStr),
			Date:        date,
			Items:       []string{label},
			TimeRange:   fmt.Sprintf("%s-%s", startStr, endStr),
		})
		return 0, 0, false
	}
	return start.Minutes(), end.Minutes(), true
}
