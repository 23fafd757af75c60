package storage

import (
	"errors"

	"github.com/julianstephens/studylit/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNotInitialized = errors.New("storage not initialized, run 'studylit init' first")
)

// Provider persists the snapshot the engine reads. Implementations are not
// required to be safe for concurrent writers; the CLI runs one command at a time.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Reference data
	GetBlockSets() ([]models.BlockSet, error)
	GetContents() ([]models.ContentItem, error)
	GetExclusions() ([]models.Exclusion, error)
	GetAcademySchedules() ([]models.AcademySchedule, error)

	// Plans
	GetPlans() ([]models.Plan, error)
	GetPlansForDate(date string) ([]models.Plan, error)
	// UpdatePlanSequences stores the Sequence of every given plan. Plans
	// without a sequence are skipped.
	UpdatePlanSequences(plans []models.Plan) error

	// Daily schedule entries, with their time slots. Empty bounds are open.
	GetEntries(from, to string) ([]models.DailyScheduleEntry, error)
	GetEntry(date string) (models.DailyScheduleEntry, error)

	// Bulk
	// ImportSnapshot upserts every record of snap. With replace set, all
	// existing snapshot data is removed first. Settings are not touched.
	ImportSnapshot(snap models.Snapshot, replace bool) error
	IsEmpty() (bool, error)

	// Utils
	GetConfigPath() string
}

// RequiredTables are the tables every backend's schema must provide.
var RequiredTables = []string{
	"settings",
	"block_sets",
	"blocks",
	"contents",
	"plans",
	"exclusions",
	"academy_schedules",
	"schedule_entries",
	"time_slots",
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
