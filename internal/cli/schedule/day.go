package schedule

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/scheduler"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
	JSON bool   `help:"Print the allocation as JSON."`
}

type dayJSON struct {
	Date           string                     `json:"date"`
	DayType        models.DayType             `json:"day_type"`
	EstimationType models.DayType             `json:"estimation_type"`
	Placements     map[int][]models.Placement `json:"placements"`
	FreeRanges     []models.FreeRange         `json:"free_ranges"`
	UnplacedCustom []string                   `json:"unplaced_custom"`
	Overflow       []models.Overflow          `json:"overflow"`
	Rescaled       bool                       `json:"rescaled"`
	Sequences      map[string]int             `json:"sequences"`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	snap, err := ctx.LoadSnapshot(date, date)
	if err != nil {
		return err
	}
	derived := len(snap.Entries) == 0
	if err := cli.FillMissingEntries(&snap, date, date); err != nil {
		return err
	}

	tt, err := ctx.Build(context.Background(), snap)
	if err != nil {
		return err
	}
	day, ok := tt.Day(date)
	if !ok {
		return fmt.Errorf("no schedule for %s", date)
	}

	if c.JSON {
		out, err := json.MarshalIndent(dayJSON{
			Date:           day.Entry.Date,
			DayType:        day.Entry.DayType,
			EstimationType: day.EstimationType,
			Placements:     day.Allocation.Placements,
			FreeRanges:     day.Allocation.FreeRanges,
			UnplacedCustom: day.Allocation.UnplacedCustom,
			Overflow:       day.Allocation.Overflow,
			Rescaled:       day.Allocation.Rescaled,
			Sequences:      daySequences(day, tt.Sequences),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		ctx.Println(string(out))
		return nil
	}

	printDay(ctx, day, models.NewContentCatalog(snap.Contents), tt.Sequences, derived)
	return nil
}

// daySequences keeps the sequences of the day's own plans.
func daySequences(day scheduler.DayResult, seqs map[string]int) map[string]int {
	out := make(map[string]int, len(day.Plans))
	for _, p := range day.Plans {
		if seq, ok := seqs[p.ID]; ok {
			out[p.ID] = seq
		}
	}
	return out
}

func printDay(ctx *cli.Context, day scheduler.DayResult, catalog models.ContentCatalog, seqs map[string]int, derived bool) {
	entry := day.Entry
	ctx.Printf("%s (%s)  %s", entry.Date, weekdayName(entry.Date), entry.DayType)
	if day.EstimationType != entry.DayType {
		ctx.Printf("  [estimated as %s]", day.EstimationType)
	}
	ctx.Println()
	if entry.Exclusion != nil && entry.Exclusion.Reason != "" {
		ctx.Printf("  %s: %s\n", entry.Exclusion.Type, entry.Exclusion.Reason)
	}
	if derived {
		ctx.Println("  No stored schedule entry; day type derived from settings, no time slots.")
	}
	if day.Allocation.Rescaled {
		ctx.Printf("  Review estimates rescaled to %.1f study hours\n", entry.StudyHours)
	}
	ctx.Println()

	plans := make(map[string]models.Plan, len(day.Plans))
	for _, p := range day.Plans {
		plans[p.ID] = p
	}

	free := make(map[int][]models.FreeRange)
	for _, fr := range day.Allocation.FreeRanges {
		free[fr.SlotIndex] = append(free[fr.SlotIndex], fr)
	}

	for i, slot := range entry.TimeSlots {
		label := string(slot.Type)
		if slot.Label != "" {
			label += " " + slot.Label
		}
		ctx.Printf("%s-%s  %s\n", slot.Start, slot.End, label)
		for _, p := range day.Allocation.Placements[i] {
			ctx.Printf("  %s-%s  %-40s %s %s\n", p.Start, p.End, describePlan(plans[p.PlanID], catalog), sequenceLabel(seqs, p.PlanID), flags(p))
		}
		for _, fr := range free[i] {
			ctx.Printf("  %s-%s  (free)\n", fr.Start, fr.End)
		}
	}

	if len(day.Allocation.UnplacedCustom) > 0 {
		ctx.Println()
		ctx.Println("Custom plans without a travel or academy slot:")
		for _, id := range day.Allocation.UnplacedCustom {
			ctx.Printf("  %-40s %s\n", describePlan(plans[id], catalog), sequenceLabel(seqs, id))
		}
	}

	if len(day.Allocation.Overflow) > 0 {
		ctx.Println()
		ctx.Println("Did not fit:")
		for _, o := range day.Allocation.Overflow {
			ctx.Printf("  %-40s %s %d min\n", describePlan(plans[o.PlanID], catalog), sequenceLabel(seqs, o.PlanID), o.Minutes)
		}
	}

	ctx.Printf("\nPlaced %s of %d plan(s)\n", cli.FormatHours(day.Allocation.PlacedMinutes()), len(day.Plans))
}
