package estimator

import (
	"testing"

	"github.com/julianstephens/studylit/internal/models"
)

func intPtr(v int) *int { return &v }

func TestEstimator_Estimate(t *testing.T) {
	lecture := &models.ContentItem{ID: "lec", ContentType: models.ContentLecture, DurationMinutes: intPtr(120)}
	lectureNoDuration := &models.ContentItem{ID: "lec2", ContentType: models.ContentLecture}

	tests := []struct {
		name    string
		plan    models.Plan
		content *models.ContentItem
		dayType models.DayType
		want    int
	}{
		{
			name:    "book ten pages on a study day",
			plan:    models.Plan{ContentType: models.ContentBook, RangeStart: intPtr(10), RangeEnd: intPtr(20)},
			dayType: models.DayStudy,
			want:    60,
		},
		{
			name:    "book ten pages on a review day",
			plan:    models.Plan{ContentType: models.ContentBook, RangeStart: intPtr(10), RangeEnd: intPtr(20)},
			dayType: models.DayReview,
			want:    30,
		},
		{
			name:    "book single page",
			plan:    models.Plan{ContentType: models.ContentBook, RangeStart: intPtr(1), RangeEnd: intPtr(2)},
			dayType: models.DayStudy,
			want:    6,
		},
		{
			name:    "lecture split over two episodes",
			plan:    models.Plan{ContentType: models.ContentLecture, RangeStart: intPtr(1), RangeEnd: intPtr(3)},
			content: lecture,
			dayType: models.DayStudy,
			want:    60,
		},
		{
			name:    "lecture without duration",
			plan:    models.Plan{ContentType: models.ContentLecture, RangeStart: intPtr(1), RangeEnd: intPtr(3)},
			content: lectureNoDuration,
			dayType: models.DayStudy,
			want:    60,
		},
		{
			name:    "lecture with missing content on review day",
			plan:    models.Plan{ContentType: models.ContentLecture, RangeStart: intPtr(1), RangeEnd: intPtr(3)},
			dayType: models.DayReview,
			want:    30,
		},
		{
			name:    "missing range",
			plan:    models.Plan{ContentType: models.ContentBook},
			dayType: models.DayStudy,
			want:    60,
		},
		{
			name:    "empty range on review day",
			plan:    models.Plan{ContentType: models.ContentBook, RangeStart: intPtr(5), RangeEnd: intPtr(5)},
			dayType: models.DayReview,
			want:    30,
		},
		{
			name:    "inverted range",
			plan:    models.Plan{ContentType: models.ContentBook, RangeStart: intPtr(9), RangeEnd: intPtr(5)},
			dayType: models.DayStudy,
			want:    60,
		},
		{
			name:    "custom content",
			plan:    models.Plan{ContentType: models.ContentCustom, RangeStart: intPtr(0), RangeEnd: intPtr(40)},
			dayType: models.DayStudy,
			want:    60,
		},
		{
			name:    "exclusion day types are not halved",
			plan:    models.Plan{ContentType: models.ContentBook, RangeStart: intPtr(0), RangeEnd: intPtr(5)},
			dayType: models.DayDesignatedHoliday,
			want:    30,
		},
	}

	e := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Estimate(tt.plan, tt.content, tt.dayType); got != tt.want {
				t.Errorf("Estimate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimator_Rounding(t *testing.T) {
	// 15 pages at 20 pages/hour = 45 minutes, halved = 22.5 -> 23.
	e := New(models.Settings{PagesPerHour: 20})
	plan := models.Plan{ContentType: models.ContentBook, RangeStart: intPtr(0), RangeEnd: intPtr(15)}

	if got := e.Estimate(plan, nil, models.DayStudy); got != 45 {
		t.Errorf("Estimate() study = %d, want 45", got)
	}
	if got := e.Estimate(plan, nil, models.DayReview); got != 23 {
		t.Errorf("Estimate() review = %d, want 23", got)
	}
}

func TestEstimator_Pure(t *testing.T) {
	e := Default()
	plan := models.Plan{ContentType: models.ContentBook, RangeStart: intPtr(3), RangeEnd: intPtr(14)}
	first := e.Estimate(plan, nil, models.DayStudy)
	for i := 0; i < 5; i++ {
		if got := e.Estimate(plan, nil, models.DayStudy); got != first {
			t.Fatalf("Estimate() changed between calls: %d vs %d", got, first)
		}
	}
}
