package system

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Exit with an error when conflicts are found."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.LoadSnapshot("", "")
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	result := validation.New().ValidateSnapshot(snap)
	ctx.Println(result.FormatReport())

	if cmd.Strict && result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found", len(result.Conflicts))
	}
	return nil
}
