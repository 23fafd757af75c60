package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/studylit/internal/backup"
	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/storage/sqlite"
)

func newContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	return &cli.Context{Store: store, Out: &out}, &out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := newContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupListCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "No backups found") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupCreateCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Backup created:") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("BackupListCmd.Run() error = %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "CREATED") || !strings.Contains(got, ".db") {
		t.Errorf("list output missing backup row:\n%s", got)
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out := newContext(t)

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	original := settings.PagesPerHour

	path, err := backup.NewManager(ctx.Store.GetConfigPath()).Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	settings.PagesPerHour = original + 5
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	cmd := &BackupRestoreCmd{Path: path, Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("BackupRestoreCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Previous database saved to:") {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("Load() after restore error = %v", err)
	}
	restored, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if restored.PagesPerHour != original {
		t.Errorf("PagesPerHour = %d, want %d after restore", restored.PagesPerHour, original)
	}
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, out := newContext(t)
	path, err := backup.NewManager(ctx.Store.GetConfigPath()).Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	cmd := &BackupRestoreCmd{Path: path, confirm: func(string) (bool, error) { return false, nil }}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("BackupRestoreCmd.Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		t.Errorf("store should stay open after a cancelled restore: %v", err)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tc := range tests {
		if got := formatSize(tc.in); got != tc.want {
			t.Errorf("formatSize(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
