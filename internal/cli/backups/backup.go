package backups

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studylit/internal/backup"
	"github.com/julianstephens/studylit/internal/cli"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	ctx.Printf("Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	infos, err := mgr.List()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		ctx.Printf("No backups found in %s\n", mgr.BackupDir())
		return nil
	}

	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tSIZE\tPATH")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Timestamp.Format("2006-01-02 15:04:05"), formatSize(info.Size), info.Path)
	}
	return w.Flush()
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file to restore."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`

	confirm func(title string) (bool, error)
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	if _, err := os.Stat(c.Path); err != nil {
		return fmt.Errorf("backup not found: %w", err)
	}

	if !c.Yes {
		ok, err := c.ask(fmt.Sprintf("Restore %s over the current database?", c.Path))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	saved, err := mgr.Restore(c.Path)
	if err != nil {
		return err
	}
	if saved != "" {
		ctx.Printf("Previous database saved to: %s\n", saved)
	}
	ctx.Printf("Restored database from: %s\n", c.Path)
	return nil
}

func (c *BackupRestoreCmd) ask(title string) (bool, error) {
	if c.confirm != nil {
		return c.confirm(title)
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Restore").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

func manager(ctx *cli.Context) (*backup.Manager, error) {
	if !ctx.IsFileStore() {
		return nil, fmt.Errorf("backups are only supported for SQLite storage")
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMG"[exp])
}
