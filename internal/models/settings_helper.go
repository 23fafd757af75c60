package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/studylit/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingPagesPerHour:
			if _, err := fmt.Sscanf(value, "%d", &settings.PagesPerHour); err != nil {
				return Settings{}, fmt.Errorf("parsing pages_per_hour: %w", err)
			}
		case constants.SettingDefaultMinutes:
			if _, err := fmt.Sscanf(value, "%d", &settings.DefaultMinutes); err != nil {
				return Settings{}, fmt.Errorf("parsing default_minutes: %w", err)
			}
		case constants.SettingReviewFactor:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing review_factor: %w", err)
			}
			settings.ReviewFactor = f
		case constants.SettingBlockFallback:
			settings.BlockFallback = value
		case constants.SettingExclusionPolicy:
			settings.ExclusionPolicy = value
		case constants.SettingSchedulerType:
			settings.SchedulerType = value
		case constants.SettingStudyDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.StudyDays); err != nil {
				return Settings{}, fmt.Errorf("parsing study_days: %w", err)
			}
		case constants.SettingReviewDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.ReviewDays); err != nil {
				return Settings{}, fmt.Errorf("parsing review_days: %w", err)
			}
		case constants.SettingPeriodStart:
			settings.PeriodStart = value
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingPagesPerHour:    fmt.Sprintf("%d", settings.PagesPerHour),
		constants.SettingDefaultMinutes:  fmt.Sprintf("%d", settings.DefaultMinutes),
		constants.SettingReviewFactor:    strconv.FormatFloat(settings.ReviewFactor, 'f', -1, 64),
		constants.SettingBlockFallback:   settings.BlockFallback,
		constants.SettingExclusionPolicy: settings.ExclusionPolicy,
		constants.SettingSchedulerType:   settings.SchedulerType,
		constants.SettingStudyDays:       fmt.Sprintf("%d", settings.StudyDays),
		constants.SettingReviewDays:      fmt.Sprintf("%d", settings.ReviewDays),
		constants.SettingPeriodStart:     settings.PeriodStart,
		constants.SettingTimezone:        settings.Timezone,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.PagesPerHour == 0 {
		settings.PagesPerHour = constants.DefaultPagesPerHour
	}
	if settings.DefaultMinutes == 0 {
		settings.DefaultMinutes = constants.DefaultMinutes
	}
	if settings.ReviewFactor == 0 {
		settings.ReviewFactor = constants.DefaultReviewFactor
	}
	if settings.BlockFallback == "" {
		settings.BlockFallback = constants.DefaultBlockFallback
	}
	if settings.ExclusionPolicy == "" {
		settings.ExclusionPolicy = constants.DefaultExclusionPolicy
	}
	if settings.SchedulerType == "" {
		settings.SchedulerType = constants.DefaultSchedulerType
	}

	// A 0/0 cycle is meaningless; a cycle with zero review days is valid.
	if settings.StudyDays == 0 && settings.ReviewDays == 0 {
		settings.StudyDays = constants.DefaultStudyDays
		settings.ReviewDays = constants.DefaultReviewDays
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}

// DefaultSettings returns a Settings value with every default applied.
func DefaultSettings() Settings {
	s := Settings{}
	ApplyDefaultSettings(&s)
	return s
}
