// Package estimator derives how many minutes a plan is expected to take.
package estimator

import (
	"math"

	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/models"
)

type Estimator struct {
	pagesPerHour   int
	defaultMinutes int
	reviewFactor   float64
}

// New builds an Estimator from settings; zero values fall back to defaults.
func New(settings models.Settings) *Estimator {
	models.ApplyDefaultSettings(&settings)
	return &Estimator{
		pagesPerHour:   settings.PagesPerHour,
		defaultMinutes: settings.DefaultMinutes,
		reviewFactor:   settings.ReviewFactor,
	}
}

// Default returns an Estimator using 10 pages/hour, 60 minute fallback and 0.5 review factor.
func Default() *Estimator {
	return New(models.Settings{})
}

// Estimate returns the minutes the plan should take on a day of the given type.
// Missing content or ranges never fail; they produce the fallback estimate.
func (e *Estimator) Estimate(plan models.Plan, content *models.ContentItem, dayType models.DayType) int {
	base := e.Base(plan, content)
	if dayType == models.DayReview {
		return int(math.Round(float64(base) * e.reviewFactor))
	}
	return base
}

// Base returns the estimate before any day-type adjustment.
func (e *Estimator) Base(plan models.Plan, content *models.ContentItem) int {
	amount, ok := plan.Amount()
	if !ok || amount <= 0 {
		return e.defaultMinutes
	}

	switch plan.ContentType {
	case models.ContentBook:
		pph := e.pagesPerHour
		if pph <= 0 {
			pph = constants.DefaultPagesPerHour
		}
		return int(math.Round(float64(amount) * 60 / float64(pph)))
	case models.ContentLecture:
		if content == nil || content.DurationMinutes == nil || *content.DurationMinutes <= 0 {
			return e.defaultMinutes
		}
		return int(math.Round(float64(*content.DurationMinutes) / float64(max(amount, 1))))
	default:
		return e.defaultMinutes
	}
}
