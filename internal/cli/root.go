package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/studylit/internal/backup"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/scheduler"
	"github.com/julianstephens/studylit/internal/storage"
	"github.com/julianstephens/studylit/internal/storage/sqlite"
	"github.com/julianstephens/studylit/internal/utils"
)

type Context struct {
	Store storage.Provider
	Out   io.Writer
}

// SchemaManager is implemented by stores backed by a migrated schema.
type SchemaManager interface {
	Migrate(logFn func(string)) (int, error)
	SchemaStatus() (current, latest int, err error)
	MissingTables() ([]string, error)
}

// Writer is where command output goes, stdout unless Out is set.
func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Writer(), args...)
}

// IsFileStore reports whether the store is a local SQLite file, the only
// kind the backup manager can copy.
func (c *Context) IsFileStore() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsFileStore() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if path, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	} else {
		logger.Debug("Automatic backup created", "path", path)
	}
}

// ResolveDate turns "today" into the current date in the configured
// timezone and checks every other value is YYYY-MM-DD.
func (c *Context) ResolveDate(arg string) (string, error) {
	if arg == "" || arg == "today" {
		settings, err := c.Store.GetSettings()
		if err != nil {
			return "", fmt.Errorf("failed to get settings: %w", err)
		}
		return utils.TodayInTimezone(settings.Timezone)
	}
	if _, err := utils.ParseDate(arg); err != nil {
		return "", fmt.Errorf("invalid date %q, use %s or 'today'", arg, "YYYY-MM-DD")
	}
	return arg, nil
}

// LoadSnapshot reads the stored snapshot with entries limited to [from, to].
func (c *Context) LoadSnapshot(from, to string) (models.Snapshot, error) {
	snap, err := storage.LoadSnapshot(c.Store, from, to)
	if err != nil {
		return models.Snapshot{}, err
	}
	models.ApplyDefaultSettings(&snap.Settings)
	return snap, nil
}

// Build runs the scheduler over snap with its own settings.
func (c *Context) Build(ctx context.Context, snap models.Snapshot) (scheduler.Timetable, error) {
	return scheduler.New(snap.Settings).Build(ctx, snap)
}

// FillMissingEntries adds derived entries for dates in [from, to] that have
// none stored, so a day can still be classified and its plans reported.
func FillMissingEntries(snap *models.Snapshot, from, to string) error {
	dates, err := utils.DateRange(from, to)
	if err != nil {
		return err
	}

	have := make(map[string]bool, len(snap.Entries))
	for _, e := range snap.Entries {
		have[e.Date] = true
	}
	var missing []string
	for _, d := range dates {
		if !have[d] {
			missing = append(missing, d)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	derived := scheduler.BuildEntries(missing, snap.Exclusions, snap.Settings)
	storage.AttachCalendar(derived, snap.Exclusions, snap.AcademySchedules)
	snap.Entries = append(snap.Entries, derived...)
	logger.Debug("Derived schedule entries", "count", len(derived), "from", from, "to", to)
	return nil
}

// FormatHours renders minutes as hours with one decimal.
func FormatHours(minutes int) string {
	return fmt.Sprintf("%.1fh", float64(minutes)/60)
}
