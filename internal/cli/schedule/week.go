package schedule

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/weekly"
)

type WeekCmd struct {
	From string `help:"First date to include (YYYY-MM-DD)."`
	To   string `help:"Last date to include (YYYY-MM-DD)."`
	JSON bool   `help:"Print the statistics as JSON."`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	if err := checkDate("from", c.From); err != nil {
		return err
	}
	if err := checkDate("to", c.To); err != nil {
		return err
	}

	snap, err := ctx.LoadSnapshot(c.From, c.To)
	if err != nil {
		return err
	}
	tt, err := ctx.Build(context.Background(), snap)
	if err != nil {
		return err
	}

	if c.JSON {
		out, err := json.MarshalIndent(weekly.Summary{Weeks: tt.Weeks, Ungrouped: tt.Ungrouped}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		ctx.Println(string(out))
		return nil
	}

	if len(tt.Weeks) == 0 {
		ctx.Println("No weeks scheduled.")
	}
	for _, w := range tt.Weeks {
		ctx.Printf("Week %d  %s to %s\n", w.Number, w.StartDate, w.EndDate)
		ctx.Printf("  Study %.1fh  Self-study %.1fh  Travel %.1fh  Academy %.1fh\n",
			w.StudyHours, w.SelfStudyHours, w.TravelHours, w.AcademyHours)
		ctx.Printf("  %.1fh per scheduled day, %s placed\n", w.AverageHoursPerDay, cli.FormatHours(w.PlacedMinutes))
		ctx.Printf("  %d study, %d review, %d excluded day(s)\n\n", w.StudyDays, w.ReviewDays, w.ExclusionDays)
	}
	if len(tt.Ungrouped) > 0 {
		ctx.Printf("%d day(s) without a week number\n", len(tt.Ungrouped))
	}

	unscheduled := c.unscheduled(snap.Plans, tt.Unscheduled)
	if len(unscheduled) > 0 {
		catalog := models.NewContentCatalog(snap.Contents)
		ctx.Println("Plans on dates without a schedule entry:")
		for _, p := range unscheduled {
			ctx.Printf("  %s  %-40s %s\n", p.PlanDate, describePlan(p, catalog), sequenceLabel(tt.Sequences, p.ID))
		}
	}
	return nil
}

// unscheduled returns the plans named by ids whose date lies in the
// command's range, in plan order.
func (c *WeekCmd) unscheduled(plans []models.Plan, ids []string) []models.Plan {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Plan
	for _, p := range plans {
		if !want[p.ID] {
			continue
		}
		if (c.From != "" && p.PlanDate < c.From) || (c.To != "" && p.PlanDate > c.To) {
			continue
		}
		out = append(out, p)
	}
	return out
}
