package scheduler

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/studylit/internal/allocator"
	"github.com/julianstephens/studylit/internal/blocks"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/daytype"
	"github.com/julianstephens/studylit/internal/estimator"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/sequence"
	"github.com/julianstephens/studylit/internal/utils"
	"github.com/julianstephens/studylit/internal/weekly"
)

type Scheduler struct {
	settings  models.Settings
	estimator *estimator.Estimator
	fallback  blocks.Fallback
	policy    daytype.Policy
	limit     int
}

// New builds a Scheduler. Unknown policy names fall back to their defaults.
func New(settings models.Settings) *Scheduler {
	models.ApplyDefaultSettings(&settings)

	fallback, err := blocks.ParseFallback(settings.BlockFallback)
	if err != nil {
		logger.Warn("Using default block fallback", "error", err)
		fallback = blocks.FallbackClampFirst
	}
	policy, err := daytype.ParsePolicy(settings.ExclusionPolicy)
	if err != nil {
		logger.Warn("Using default exclusion policy", "error", err)
		policy = daytype.PolicyOverrideAll
	}

	return &Scheduler{
		settings:  settings,
		estimator: estimator.New(settings),
		fallback:  fallback,
		policy:    policy,
		limit:     constants.MaxParallelDays,
	}
}

// SetConcurrency bounds the number of day passes running at once. Values
// below one run the passes serially.
func (s *Scheduler) SetConcurrency(n int) {
	s.limit = max(n, 1)
}

func (s *Scheduler) Settings() models.Settings {
	return s.settings
}

// DayResult is the computed timetable of one date.
type DayResult struct {
	Entry          models.DailyScheduleEntry
	CyclicType     models.DayType // empty when the date has no cyclic classification
	EstimationType models.DayType
	Plans          []models.Plan
	Allocation     allocator.Result
}

type Timetable struct {
	Days      []DayResult
	Weeks     []weekly.Week
	Ungrouped []models.DailyScheduleEntry
	Sequences map[string]int

	// Unscheduled lists plans whose date has no schedule entry.
	Unscheduled []string
}

// Day returns the result for date.
func (t Timetable) Day(date string) (DayResult, bool) {
	i := sort.Search(len(t.Days), func(i int) bool { return t.Days[i].Entry.Date >= date })
	if i < len(t.Days) && t.Days[i].Entry.Date == date {
		return t.Days[i], true
	}
	return DayResult{}, false
}

// Build computes the timetable of every schedule entry in the snapshot.
// Day passes run concurrently and share nothing but the read-only snapshot.
func (s *Scheduler) Build(ctx context.Context, snap models.Snapshot) (Timetable, error) {
	entries := append([]models.DailyScheduleEntry(nil), snap.Entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	plansByDate := make(map[string][]models.Plan)
	for _, p := range snap.Plans {
		plansByDate[p.PlanDate] = append(plansByDate[p.PlanDate], p)
	}

	catalog := models.NewContentCatalog(snap.Contents)
	activeBlocks := snap.ActiveBlocks()

	days := make([]DayResult, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			days[i] = s.BuildDay(entry, plansByDate[entry.Date], catalog, activeBlocks, snap.Exclusions)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Timetable{}, fmt.Errorf("building timetable: %w", err)
	}

	placed := make(map[string]int, len(days))
	scheduled := make(map[string]bool, len(days))
	for _, d := range days {
		placed[d.Entry.Date] = d.Allocation.PlacedMinutes()
		scheduled[d.Entry.Date] = true
		if len(d.Allocation.Overflow) > 0 {
			logger.Warn("Plans did not fit their day", "date", d.Entry.Date, "overflow", len(d.Allocation.Overflow))
		}
	}
	summary := weekly.Aggregate(entries, placed)

	tt := Timetable{
		Days:      days,
		Weeks:     summary.Weeks,
		Ungrouped: summary.Ungrouped,
		Sequences: sequence.Calculate(snap.Plans),
	}
	for _, p := range snap.Plans {
		if !scheduled[p.PlanDate] {
			tt.Unscheduled = append(tt.Unscheduled, p.ID)
		}
	}

	logger.Debug("Built timetable", "days", len(days), "weeks", len(tt.Weeks), "plans", len(snap.Plans), "unscheduled", len(tt.Unscheduled))
	return tt, nil
}

// BuildDay runs one allocation pass for a single entry.
func (s *Scheduler) BuildDay(entry models.DailyScheduleEntry, plans []models.Plan, catalog models.ContentCatalog, activeBlocks []models.Block, exclusions []models.Exclusion) DayResult {
	cyclic, ok := s.classify(entry)

	exclusion := entry.Exclusion
	if exclusion == nil {
		exclusion = models.ExclusionFor(entry.Date, exclusions)
	}
	estType := daytype.ForEstimation(cyclic, ok, exclusion, s.policy)

	items := make([]allocator.Item, 0, len(plans))
	for _, p := range plans {
		item := allocator.Item{
			Plan:     p,
			Estimate: s.estimator.Estimate(p, catalog.Lookup(p.ContentID), estType),
		}
		item.Start, item.Timed = blocks.StartFor(p, activeBlocks, s.fallback)
		item.Explicit = p.ExplicitStart != "" && utils.ValidateTimeFormat(p.ExplicitStart)
		if end, err := utils.ParseTimeOfDay(p.ExplicitEnd); err == nil && item.Explicit {
			item.End = end
		}
		items = append(items, item)
	}

	result := DayResult{
		Entry:          entry,
		EstimationType: estType,
		Plans:          plans,
		Allocation: allocator.Allocate(allocator.Input{
			Date:       entry.Date,
			Slots:      entry.TimeSlots,
			Items:      items,
			DayType:    estType,
			StudyHours: entry.StudyHours,
		}),
	}
	if ok {
		result.CyclicType = cyclic
	}
	return result
}

// classify returns the cyclic type of the entry's date. When the settings
// carry no cycle the upstream study/review type is used instead.
func (s *Scheduler) classify(entry models.DailyScheduleEntry) (models.DayType, bool) {
	if s.settings.PeriodStart != "" {
		if dt, ok := daytype.Classify(entry.Date, s.settings.PeriodStart, s.settings.SchedulerType, s.settings.StudyDays, s.settings.ReviewDays); ok {
			return dt, true
		}
	}
	if entry.DayType == models.DayStudy || entry.DayType == models.DayReview {
		return entry.DayType, true
	}
	return "", false
}

// BuildEntries derives day types and week numbers for dates without a
// stored entry. Time slots come from the upstream builder and stay empty.
func BuildEntries(dates []string, exclusions []models.Exclusion, settings models.Settings) []models.DailyScheduleEntry {
	models.ApplyDefaultSettings(&settings)

	var weeks map[string]int
	if settings.SchedulerType == daytype.SchedulerCyclic {
		weeks = daytype.WeekNumbers(dates, exclusions)
	}

	entries := make([]models.DailyScheduleEntry, 0, len(dates))
	for _, date := range dates {
		cyclic, ok := daytype.Classify(date, settings.PeriodStart, settings.SchedulerType, settings.StudyDays, settings.ReviewDays)
		exclusion := models.ExclusionFor(date, exclusions)

		entry := models.DailyScheduleEntry{
			Date:      date,
			DayType:   daytype.Effective(cyclic, ok, exclusion),
			TimeSlots: []models.TimeSlot{},
			Exclusion: exclusion,
		}
		if week, found := weeks[date]; found {
			entry.WeekNumber = &week
		}
		entries = append(entries, entry)
	}
	return entries
}
