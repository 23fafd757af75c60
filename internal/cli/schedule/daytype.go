package schedule

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/daytype"
	"github.com/julianstephens/studylit/internal/models"
)

type DayTypeCmd struct {
	Date string `arg:"" optional:"" help:"Date to classify (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayTypeCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	exclusions, err := ctx.Store.GetExclusions()
	if err != nil {
		return fmt.Errorf("failed to get exclusions: %w", err)
	}

	policy, err := daytype.ParsePolicy(settings.ExclusionPolicy)
	if err != nil {
		return err
	}

	cyclic, ok := daytype.Classify(date, settings.PeriodStart, settings.SchedulerType, settings.StudyDays, settings.ReviewDays)
	exclusion := models.ExclusionFor(date, exclusions)

	ctx.Printf("Date:        %s (%s)\n", date, weekdayName(date))
	if ok {
		ctx.Printf("Cycle:       %s\n", cyclic)
	} else {
		ctx.Printf("Cycle:       none\n")
	}
	if exclusion != nil {
		ctx.Printf("Exclusion:   %s", exclusion.Type)
		if exclusion.Reason != "" {
			ctx.Printf(" (%s)", exclusion.Reason)
		}
		ctx.Println()
	}
	ctx.Printf("Day type:    %s\n", daytype.Effective(cyclic, ok, exclusion))
	ctx.Printf("Estimation:  %s (policy %s)\n", daytype.ForEstimation(cyclic, ok, exclusion, policy), policy)
	return nil
}
