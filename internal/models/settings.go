package models

// Settings represents application-wide settings
type Settings struct {
	PagesPerHour    int     `json:"pages_per_hour"`   // book reading speed used by the estimator
	DefaultMinutes  int     `json:"default_minutes"`  // fallback estimate for unknown or custom content
	ReviewFactor    float64 `json:"review_factor"`    // multiplier applied to estimates on review days
	BlockFallback   string  `json:"block_fallback"`   // "clamp_first" or "untimed"
	ExclusionPolicy string  `json:"exclusion_policy"` // "override_all" or "override_render"
	SchedulerType   string  `json:"scheduler_type"`   // "cyclic" enables study/review classification
	StudyDays       int     `json:"study_days"`       // study days per cycle
	ReviewDays      int     `json:"review_days"`      // review days per cycle
	PeriodStart     string  `json:"period_start"`     // first date of the plan period, YYYY-MM-DD
	Timezone        string  `json:"timezone"`         // IANA timezone name or "Local"
}
