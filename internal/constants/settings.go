package constants

const (
	// Estimation Settings
	SettingPagesPerHour   = "pages_per_hour"
	SettingDefaultMinutes = "default_minutes"
	SettingReviewFactor   = "review_factor"

	// Scheduling Settings
	SettingBlockFallback   = "block_fallback"
	SettingExclusionPolicy = "exclusion_policy"
	SettingSchedulerType   = "scheduler_type"
	SettingStudyDays       = "study_days"
	SettingReviewDays      = "review_days"
	SettingPeriodStart     = "period_start"
	SettingTimezone        = "timezone"

	// Default Settings Values
	DefaultPagesPerHour    = 10
	DefaultMinutes         = 60
	DefaultReviewFactor    = 0.5
	DefaultBlockFallback   = "clamp_first"
	DefaultExclusionPolicy = "override_all"
	DefaultSchedulerType   = "cyclic"
	DefaultStudyDays       = 6
	DefaultReviewDays      = 1
	DefaultTimezone        = "Local" // Use system local timezone by default
)
