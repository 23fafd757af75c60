package system

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/backup"
	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/cli/settings"
	"github.com/julianstephens/studylit/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name    string
	needsDB bool // skipped when the database cannot be loaded
	warning bool
	run     func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Required tables", needsDB: true, run: checkTables},
	{name: "Settings", needsDB: true, run: checkSettings},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Backups present", warning: true, run: checkBackupsPresent},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	if err := ctx.Store.Load(); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n   Error: %v\n", err)
		hasError = true
		reachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warning:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sm, ok := ctx.Store.(cli.SchemaManager)
	if !ok {
		return nil
	}
	current, latest, err := sm.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	sm, ok := ctx.Store.(cli.SchemaManager)
	if !ok {
		return nil
	}
	current, latest, err := sm.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'studylit migrate')", current, latest)
	}
	return nil
}

func checkTables(ctx *cli.Context) error {
	sm, ok := ctx.Store.(cli.SchemaManager)
	if !ok {
		return nil
	}
	missing, err := sm.MissingTables()
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing tables: %v", missing)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	s, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.Validate(s)
}

func checkValidation(ctx *cli.Context) error {
	snap, err := ctx.LoadSnapshot("", "")
	if err != nil {
		return err
	}
	result := validation.New().ValidateSnapshot(snap)
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found, run 'studylit validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsFileStore() {
		return fmt.Errorf("backups are only managed for SQLite storage")
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'studylit backup create'")
	}
	return nil
}
