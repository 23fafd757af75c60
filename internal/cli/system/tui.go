package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/tui"
	"github.com/julianstephens/studylit/internal/utils"
	"github.com/julianstephens/studylit/internal/validation"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	snap, err := ctx.LoadSnapshot("", "")
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	tt, err := ctx.Build(context.Background(), snap)
	if err != nil {
		return err
	}
	result := validation.New().ValidateSnapshot(snap)

	today, err := utils.TodayInTimezone(snap.Settings.Timezone)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(tt, snap.Contents, result.Conflicts, today), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
