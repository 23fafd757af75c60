// Package sequence numbers each plan's occurrence within its content item.
package sequence

import (
	"sort"

	"github.com/julianstephens/studylit/internal/models"
)

// Calculate returns the sequence of every plan keyed by plan id.
//
// Plans are grouped by content id and walked once in (plan_date,
// range_start) order. Plans sharing a plan_number count as one occurrence
// and resolve to the same sequence. Persisted sequences are returned
// unchanged and are reused by every plan of their plan_number group.
func Calculate(plans []models.Plan) map[string]int {
	groups := make(map[string][]int)
	var contentOrder []string
	for i, p := range plans {
		if _, ok := groups[p.ContentID]; !ok {
			contentOrder = append(contentOrder, p.ContentID)
		}
		groups[p.ContentID] = append(groups[p.ContentID], i)
	}

	result := make(map[string]int, len(plans))
	for _, contentID := range contentOrder {
		calculateGroup(plans, groups[contentID], result)
	}
	return result
}

func calculateGroup(plans []models.Plan, indexes []int, result map[string]int) {
	// First persisted sequence per plan_number, in original order.
	persisted := make(map[int]int)
	for _, i := range indexes {
		p := plans[i]
		if p.PlanNumber == nil || p.Sequence == nil {
			continue
		}
		if _, ok := persisted[*p.PlanNumber]; !ok {
			persisted[*p.PlanNumber] = *p.Sequence
		}
	}

	sorted := append([]int(nil), indexes...)
	sort.SliceStable(sorted, func(a, b int) bool {
		pa, pb := plans[sorted[a]], plans[sorted[b]]
		if pa.PlanDate != pb.PlanDate {
			return pa.PlanDate < pb.PlanDate
		}
		return rangeStartOf(pa) < rangeStartOf(pb)
	})

	memo := make(map[int]int)
	count := 0
	for _, i := range sorted {
		p := plans[i]

		var seq int
		if p.PlanNumber == nil {
			count++
			seq = count
		} else {
			shared, seen := memo[*p.PlanNumber]
			if !seen {
				count++
				shared = count
				if s, ok := persisted[*p.PlanNumber]; ok {
					shared = s
				}
				memo[*p.PlanNumber] = shared
			}
			seq = shared
		}

		if p.Sequence != nil {
			seq = *p.Sequence
		}
		result[p.ID] = seq
	}
}

// For returns the sequence of target within plans. target does not need
// to be part of plans.
func For(plans []models.Plan, target models.Plan) int {
	if target.Sequence != nil {
		return *target.Sequence
	}
	for _, p := range plans {
		if p.ID == target.ID {
			return Calculate(plans)[target.ID]
		}
	}
	withTarget := append(append([]models.Plan(nil), plans...), target)
	return Calculate(withTarget)[target.ID]
}

// Unpersisted returns copies of the plans that have no stored sequence,
// with their computed sequence filled in.
func Unpersisted(plans []models.Plan) []models.Plan {
	seqs := Calculate(plans)
	var out []models.Plan
	for _, p := range plans {
		if p.Sequence != nil {
			continue
		}
		seq := seqs[p.ID]
		p.Sequence = &seq
		out = append(out, p)
	}
	return out
}

func rangeStartOf(p models.Plan) int {
	if p.RangeStart == nil {
		return 0
	}
	return *p.RangeStart
}
