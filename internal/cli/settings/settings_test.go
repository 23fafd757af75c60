package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/models"
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

func TestSettingsCmdList(t *testing.T) {
	ctx, out := newContext(t)

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("SettingsCmd.Run() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{"pages_per_hour", "review_factor", "period_start", "(unset)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSettingsCmdSet(t *testing.T) {
	ctx, _ := newContext(t)

	cmd := &SettingsCmd{Set: map[string]string{
		"pages_per_hour": "12",
		"period_start":   "2026-03-02",
		"timezone":       "UTC",
	}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("SettingsCmd.Run() error = %v", err)
	}

	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got.PagesPerHour != 12 || got.PeriodStart != "2026-03-02" || got.Timezone != "UTC" {
		t.Errorf("GetSettings() = %+v, want pages_per_hour 12, period_start 2026-03-02, timezone UTC", got)
	}
}

func TestSettingsCmdSetRejected(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]string
	}{
		{"unknown key", map[string]string{"day_start": "08:00"}},
		{"not a number", map[string]string{"pages_per_hour": "fast"}},
		{"zero speed", map[string]string{"pages_per_hour": "0"}},
		{"bad fallback", map[string]string{"block_fallback": "nearest"}},
		{"bad policy", map[string]string{"exclusion_policy": "ignore"}},
		{"bad date", map[string]string{"period_start": "March 2"}},
		{"bad timezone", map[string]string{"timezone": "Mars/Olympus"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := newContext(t)
			before, _ := ctx.Store.GetSettings()

			if err := (&SettingsCmd{Set: tc.set}).Run(ctx); err == nil {
				t.Fatal("SettingsCmd.Run(): expected error, got nil")
			}

			after, _ := ctx.Store.GetSettings()
			if before != after {
				t.Errorf("settings changed after a rejected update: %+v -> %+v", before, after)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := models.DefaultSettings()

	tests := []struct {
		name    string
		modify  func(s *models.Settings)
		wantErr bool
	}{
		{"defaults", func(s *models.Settings) {}, false},
		{"untimed fallback", func(s *models.Settings) { s.BlockFallback = "untimed" }, false},
		{"negative review days", func(s *models.Settings) { s.ReviewDays = -1 }, true},
		{"empty cycle", func(s *models.Settings) { s.StudyDays, s.ReviewDays = 0, 0 }, true},
		{"empty cycle without cyclic scheduler", func(s *models.Settings) {
			s.SchedulerType = "manual"
			s.StudyDays, s.ReviewDays = 0, 0
		}, false},
		{"zero review factor", func(s *models.Settings) { s.ReviewFactor = 0 }, true},
		{"zero default minutes", func(s *models.Settings) { s.DefaultMinutes = 0 }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := valid
			tc.modify(&s)
			if err := Validate(s); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
