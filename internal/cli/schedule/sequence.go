package schedule

import (
	"fmt"
	"sort"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/sequence"
)

type SequenceCmd struct {
	Content string `help:"Only show plans of this content id."`
	Persist bool   `help:"Store computed sequences for plans that have none."`
}

func (c *SequenceCmd) Run(ctx *cli.Context) error {
	plans, err := ctx.Store.GetPlans()
	if err != nil {
		return fmt.Errorf("failed to get plans: %w", err)
	}
	contents, err := ctx.Store.GetContents()
	if err != nil {
		return fmt.Errorf("failed to get contents: %w", err)
	}
	catalog := models.NewContentCatalog(contents)
	seqs := sequence.Calculate(plans)

	var shown []models.Plan
	for _, p := range plans {
		if c.Content == "" || p.ContentID == c.Content {
			shown = append(shown, p)
		}
	}
	sort.SliceStable(shown, func(i, j int) bool {
		a, b := shown[i], shown[j]
		if a.ContentID != b.ContentID {
			return a.ContentID < b.ContentID
		}
		if a.PlanDate != b.PlanDate {
			return a.PlanDate < b.PlanDate
		}
		return seqs[a.ID] < seqs[b.ID]
	})

	if len(shown) == 0 {
		ctx.Println("No plans found.")
	}
	for _, p := range shown {
		stored := ""
		if p.Sequence != nil {
			stored = " (stored)"
		}
		planNumber := "-"
		if p.PlanNumber != nil {
			planNumber = fmt.Sprintf("%d", *p.PlanNumber)
		}
		ctx.Printf("%s  #%-3s seq %-3d %s%s\n", p.PlanDate, planNumber, seqs[p.ID], describePlan(p, catalog), stored)
	}

	if !c.Persist {
		return nil
	}

	pending := sequence.Unpersisted(plans)
	if len(pending) == 0 {
		ctx.Println("\nAll sequences are already stored.")
		return nil
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Store.UpdatePlanSequences(pending); err != nil {
		return fmt.Errorf("failed to store sequences: %w", err)
	}
	ctx.Printf("\nStored %d sequence(s).\n", len(pending))
	return nil
}
