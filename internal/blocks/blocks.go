// Package blocks resolves a plan's weekly block index into a start time.
package blocks

import (
	"fmt"
	"sort"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/utils"
)

// Fallback names what happens when a block index has no exact match.
type Fallback string

const (
	// FallbackClampFirst uses the idx-th block of the weekday when the index
	// is in range and the first block otherwise.
	FallbackClampFirst Fallback = "clamp_first"
	// FallbackUntimed leaves the plan without a start time.
	FallbackUntimed Fallback = "untimed"
)

func ParseFallback(s string) (Fallback, error) {
	switch Fallback(s) {
	case FallbackClampFirst, FallbackUntimed:
		return Fallback(s), nil
	case "":
		return FallbackClampFirst, nil
	default:
		return "", fmt.Errorf("unknown block fallback %q", s)
	}
}

// Resolve returns the start time of the block a plan on planDate with the
// given block index should use. ok is false when the weekday has no blocks,
// the date is malformed, or the fallback leaves the plan untimed.
func Resolve(planDate string, blockIndex int, blocks []models.Block, fallback Fallback) (utils.TimeOfDay, bool) {
	weekday, err := utils.Weekday(planDate)
	if err != nil {
		return 0, false
	}

	var day []models.Block
	for _, b := range blocks {
		if b.DayOfWeek != weekday {
			continue
		}
		if b.BlockIndex == blockIndex {
			return startOf(b)
		}
		day = append(day, b)
	}
	if len(day) == 0 {
		return 0, false
	}

	sort.SliceStable(day, func(i, j int) bool {
		return day[i].BlockIndex < day[j].BlockIndex
	})

	switch {
	case blockIndex >= 1 && blockIndex <= len(day):
		return startOf(day[blockIndex-1])
	case fallback == FallbackUntimed:
		return 0, false
	default:
		return startOf(day[0])
	}
}

// StartFor returns the start time of a plan. A valid explicit start wins;
// otherwise the plan's block index is resolved. Plans without a block
// index are untimed.
func StartFor(plan models.Plan, blocks []models.Block, fallback Fallback) (utils.TimeOfDay, bool) {
	if plan.ExplicitStart != "" {
		if t, err := utils.ParseTimeOfDay(plan.ExplicitStart); err == nil {
			return t, true
		}
	}
	if plan.BlockIndex == nil {
		return 0, false
	}
	return Resolve(plan.PlanDate, *plan.BlockIndex, blocks, fallback)
}

func startOf(b models.Block) (utils.TimeOfDay, bool) {
	t, err := utils.ParseTimeOfDay(b.StartTime)
	if err != nil {
		return 0, false
	}
	return t, true
}
