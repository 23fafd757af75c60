package schedule

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/utils"
)

// describePlan renders a plan as "title chapter (start-end)".
func describePlan(p models.Plan, catalog models.ContentCatalog) string {
	var parts []string
	if item := catalog.Lookup(p.ContentID); item != nil && item.Title != "" {
		parts = append(parts, item.Title)
	} else {
		parts = append(parts, p.ContentID)
	}
	if p.Chapter != "" {
		parts = append(parts, p.Chapter)
	}
	if p.RangeStart != nil && p.RangeEnd != nil {
		parts = append(parts, fmt.Sprintf("(%d-%d)", *p.RangeStart, *p.RangeEnd))
	}
	return strings.Join(parts, " ")
}

// sequenceLabel renders a plan's sequence as "seq N", padded to a column.
func sequenceLabel(seqs map[string]int, planID string) string {
	seq, ok := seqs[planID]
	if !ok {
		return "seq -  "
	}
	return fmt.Sprintf("seq %-3d", seq)
}

func weekdayName(date string) string {
	wd, err := utils.Weekday(date)
	if err != nil {
		return ""
	}
	return wd.String()
}

func flags(p models.Placement) string {
	var f []string
	if p.IsContinued {
		f = append(f, "continued")
	}
	if p.IsPartial {
		f = append(f, "partial")
	}
	if len(f) == 0 {
		return ""
	}
	return "[" + strings.Join(f, ", ") + "]"
}

func checkDate(flag, s string) error {
	if s == "" {
		return nil
	}
	if _, err := utils.ParseDate(s); err != nil {
		return fmt.Errorf("invalid --%s %q, use YYYY-MM-DD", flag, s)
	}
	return nil
}
