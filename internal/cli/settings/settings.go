package settings

import (
	"fmt"
	"sort"

	"github.com/julianstephens/studylit/internal/blocks"
	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/daytype"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/utils"
)

type SettingsCmd struct {
	List bool              `help:"List current settings."`
	Set  map[string]string `help:"Set a setting, e.g. --set pages_per_hour=12." placeholder:"KEY=VALUE"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if len(c.Set) == 0 {
		if !c.List {
			ctx.Println("No changes specified. Use --list to view settings or --set to update them.")
			return nil
		}
		printSettings(ctx, settings)
		return nil
	}

	merged := models.SettingsToMap(settings)
	for k, v := range c.Set {
		if _, known := merged[k]; !known {
			return fmt.Errorf("unknown setting %q", k)
		}
		merged[k] = v
	}
	updated, err := models.MapToSettings(merged)
	if err != nil {
		return err
	}
	if err := Validate(updated); err != nil {
		return err
	}

	if err := ctx.Store.SaveSettings(updated); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	if c.List {
		printSettings(ctx, updated)
	}
	return nil
}

func printSettings(ctx *cli.Context, settings models.Settings) {
	m := models.SettingsToMap(settings)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx.Println("Current Settings:")
	for _, k := range keys {
		v := m[k]
		if v == "" {
			v = "(unset)"
		}
		ctx.Printf("  %-18s %s\n", k, v)
	}
}

// Validate rejects settings the engine cannot work with.
func Validate(s models.Settings) error {
	if s.PagesPerHour <= 0 {
		return fmt.Errorf("pages_per_hour must be positive")
	}
	if s.DefaultMinutes <= 0 {
		return fmt.Errorf("default_minutes must be positive")
	}
	if s.ReviewFactor <= 0 {
		return fmt.Errorf("review_factor must be positive")
	}
	if _, err := blocks.ParseFallback(s.BlockFallback); err != nil {
		return err
	}
	if _, err := daytype.ParsePolicy(s.ExclusionPolicy); err != nil {
		return err
	}
	if s.StudyDays < 0 || s.ReviewDays < 0 {
		return fmt.Errorf("study_days and review_days must not be negative")
	}
	if s.SchedulerType == daytype.SchedulerCyclic && s.StudyDays+s.ReviewDays == 0 {
		return fmt.Errorf("a cyclic scheduler needs at least one study or review day")
	}
	if s.PeriodStart != "" {
		if _, err := utils.ParseDate(s.PeriodStart); err != nil {
			return fmt.Errorf("period_start must be YYYY-MM-DD")
		}
	}
	if !utils.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("invalid timezone %q", s.Timezone)
	}
	return nil
}
