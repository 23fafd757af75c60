package system

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/cli"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	sm, ok := ctx.Store.(cli.SchemaManager)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}

	count, err := sm.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
