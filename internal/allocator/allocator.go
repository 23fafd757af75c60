// Package allocator packs a day's plans into the day's time slots.
package allocator

import (
	"math"
	"sort"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/utils"
)

// Item is a plan prepared for allocation.
type Item struct {
	Plan     models.Plan
	Estimate int // minutes, from the estimator

	// Start is meaningful only when Timed is set. Explicit marks a start
	// taken from the plan's persisted explicit_start.
	Start    utils.TimeOfDay
	Timed    bool
	Explicit bool

	// End is the plan's explicit_end. Zero when unset.
	End utils.TimeOfDay
}

// duration is the minutes the item needs. An explicit start and end
// override the estimator.
func (it Item) duration() int {
	if it.Explicit && it.End > it.Start {
		return it.End.Sub(it.Start)
	}
	return it.Estimate
}

// Input is everything one allocation pass needs for a single date.
type Input struct {
	Date       string
	Slots      []models.TimeSlot
	Items      []Item
	DayType    models.DayType
	StudyHours float64
}

// Result is the outcome of one allocation pass.
type Result struct {
	Date string

	// Placements maps a slot index to its placements ordered by start.
	Placements     map[int][]models.Placement
	FreeRanges     []models.FreeRange
	UnplacedCustom []string
	Overflow       []models.Overflow

	Estimates map[string]int // original estimate per plan id
	Working   map[string]int // working time per plan id after any rescale
	Rescaled  bool
}

// PlacedMinutes sums the duration of every placement.
func (r Result) PlacedMinutes() int {
	total := 0
	for _, ps := range r.Placements {
		for _, p := range ps {
			total += span{start: mustMinutes(p.Start), end: mustMinutes(p.End)}.length()
		}
	}
	return total
}

// PlacementsFor returns a plan's placements in slot order.
func (r Result) PlacementsFor(planID string) []models.Placement {
	indexes := make([]int, 0, len(r.Placements))
	for idx := range r.Placements {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	var out []models.Placement
	for _, idx := range indexes {
		for _, p := range r.Placements[idx] {
			if p.PlanID == planID {
				out = append(out, p)
			}
		}
	}
	return out
}

type span struct {
	start int // minutes from midnight
	end   int // minutes from midnight
}

func (s span) length() int { return s.end - s.start }

// pass holds the state of one allocation. It is created per call and
// discarded afterwards, so concurrent passes share nothing.
type pass struct {
	slots      []models.TimeSlot
	timed      []Item
	untimed    []Item
	working    map[string]int
	remaining  map[string]int
	placements map[int][]models.Placement
	customHit  map[string]bool
}

// Allocate runs one allocation pass. Identical inputs always produce
// identical output.
func Allocate(in Input) Result {
	result := Result{
		Date:       in.Date,
		Placements: make(map[int][]models.Placement),
		Estimates:  make(map[string]int, len(in.Items)),
		Working:    make(map[string]int, len(in.Items)),
	}

	// Step 1: Working times, rescaled on overloaded review days
	total := 0
	for _, item := range in.Items {
		result.Estimates[item.Plan.ID] = item.duration()
		total += item.duration()
	}
	budget := in.StudyHours * 60
	if in.DayType == models.DayReview && len(in.Items) > 0 && float64(total) > budget {
		share := int(math.Floor(budget / float64(len(in.Items))))
		for _, item := range in.Items {
			result.Working[item.Plan.ID] = share
		}
		result.Rescaled = true
	} else {
		for _, item := range in.Items {
			result.Working[item.Plan.ID] = item.duration()
		}
	}

	p := &pass{
		slots:      in.Slots,
		working:    result.Working,
		remaining:  make(map[string]int, len(in.Items)),
		placements: result.Placements,
		customHit:  make(map[string]bool),
	}
	for id, w := range result.Working {
		p.remaining[id] = w
	}

	// Step 2: Timed plans by start, untimed plans by block index
	p.timed, p.untimed = order(in.Items)

	// Step 3: Custom plans into travel and academy slots, then study slots
	p.placeCustom()
	p.placeStudy()

	// Step 4: Free ranges and reports
	result.FreeRanges = p.freeRanges()
	for _, item := range in.Items {
		if item.Plan.IsCustom() && !p.customHit[item.Plan.ID] {
			result.UnplacedCustom = append(result.UnplacedCustom, item.Plan.ID)
		}
	}
	reported := make(map[string]bool)
	for _, item := range in.Items {
		id := item.Plan.ID
		if p.remaining[id] > 0 && !reported[id] {
			result.Overflow = append(result.Overflow, models.Overflow{PlanID: id, Minutes: p.remaining[id]})
			reported[id] = true
		}
	}

	return result
}

func order(items []Item) (timed, untimed []Item) {
	for _, item := range items {
		if item.Timed {
			timed = append(timed, item)
		} else {
			untimed = append(untimed, item)
		}
	}
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].Start < timed[j].Start
	})
	sort.SliceStable(untimed, func(i, j int) bool {
		return blockIndexOf(untimed[i].Plan) < blockIndexOf(untimed[j].Plan)
	})
	return timed, untimed
}

func blockIndexOf(p models.Plan) int {
	if p.BlockIndex == nil {
		return 0
	}
	return *p.BlockIndex
}

// slotSpan parses a slot's bounds; ok is false for malformed or empty slots.
func slotSpan(slot models.TimeSlot) (span, bool) {
	start, err := utils.ParseTimeOfDay(slot.Start)
	if err != nil {
		return span{}, false
	}
	end, err := utils.ParseTimeOfDay(slot.End)
	if err != nil {
		return span{}, false
	}
	if end <= start {
		return span{}, false
	}
	return span{start: start.Minutes(), end: end.Minutes()}, true
}

func (p *pass) emit(slotIdx int, planID string, s span, partial, continued bool) {
	p.placements[slotIdx] = append(p.placements[slotIdx], models.Placement{
		PlanID:      planID,
		SlotIndex:   slotIdx,
		Start:       utils.FormatMinutes(s.start),
		End:         utils.FormatMinutes(s.end),
		IsPartial:   partial,
		IsContinued: continued,
	})
}

func (p *pass) sortSlot(slotIdx int) {
	ps := p.placements[slotIdx]
	sort.SliceStable(ps, func(i, j int) bool {
		return mustMinutes(ps[i].Start) < mustMinutes(ps[j].Start)
	})
}

func mustMinutes(s string) int {
	t, err := utils.ParseTimeOfDay(s)
	if err != nil {
		return 0
	}
	return t.Minutes()
}
