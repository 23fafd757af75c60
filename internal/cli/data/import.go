package data

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/validation"
)

type ImportCmd struct {
	File    string `arg:"" type:"existingfile" help:"JSON snapshot to import."`
	Replace bool   `help:"Remove all stored snapshot data before importing."`
	Yes     bool   `short:"y" help:"Do not ask for confirmation."`
	Strict  bool   `help:"Refuse to import a snapshot with conflicts."`

	// confirm is swapped in tests.
	confirm func(title string) (bool, error)
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	snap, settingsData, err := storage.ReadSnapshotFile(f)
	if err != nil {
		return err
	}
	if n := storage.AssignIDs(&snap); n > 0 {
		logger.Debug("Assigned ids to imported records", "count", n)
	}

	result := validation.New().ValidateSnapshot(snap)
	if result.HasConflicts() {
		ctx.Println(result.FormatReport())
		if c.Strict {
			return fmt.Errorf("snapshot has %d conflict(s)", len(result.Conflicts))
		}
	}

	if c.Replace && !c.Yes {
		empty, err := ctx.Store.IsEmpty()
		if err != nil {
			return err
		}
		if !empty {
			ok, err := c.ask("Replace all stored plans, blocks and schedule entries?")
			if err != nil {
				return err
			}
			if !ok {
				ctx.Println("Import cancelled.")
				return nil
			}
		}
	}

	if c.Replace {
		ctx.PerformAutomaticBackup()
	}

	if err := ctx.Store.ImportSnapshot(snap, c.Replace); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if len(settingsData) > 0 {
		if err := mergeSettings(ctx.Store, settingsData); err != nil {
			return err
		}
	}

	ctx.Printf("Imported %d plan(s), %d content item(s), %d block set(s), %d schedule entr(ies), %d exclusion(s), %d academy schedule(s)\n",
		len(snap.Plans), len(snap.Contents), len(snap.BlockSets), len(snap.Entries), len(snap.Exclusions), len(snap.AcademySchedules))
	return nil
}

func (c *ImportCmd) ask(title string) (bool, error) {
	if c.confirm != nil {
		return c.confirm(title)
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Replace").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

// mergeSettings overlays imported key/value settings on the stored ones.
func mergeSettings(store storage.Provider, data map[string]string) error {
	current, err := store.GetSettings()
	if err != nil && !storage.IsNotFound(err) {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	merged := models.SettingsToMap(current)
	for k, v := range data {
		merged[k] = v
	}
	settings, err := models.MapToSettings(merged)
	if err != nil {
		return fmt.Errorf("invalid settings in snapshot: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	if err := store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
