package models

// Plan is one unit of learning work scheduled for a calendar date.
type Plan struct {
	ID              string      `json:"id"`
	PlanDate        string      `json:"plan_date"` // YYYY-MM-DD format
	BlockIndex      *int        `json:"block_index,omitempty"`
	ContentType     ContentType `json:"content_type"`
	ContentID       string      `json:"content_id"`
	Chapter         string      `json:"chapter,omitempty"`
	RangeStart      *int        `json:"range_start,omitempty"`
	RangeEnd        *int        `json:"range_end,omitempty"`
	PlanNumber      *int        `json:"plan_number,omitempty"`
	Sequence        *int        `json:"sequence,omitempty"`
	ExplicitStart   string      `json:"explicit_start,omitempty"` // HH:MM format
	ExplicitEnd     string      `json:"explicit_end,omitempty"`   // HH:MM format
	CompletedAmount *int        `json:"completed_amount,omitempty"`
}

// Amount returns range_end - range_start and whether both ends are present.
func (p Plan) Amount() (int, bool) {
	if p.RangeStart == nil || p.RangeEnd == nil {
		return 0, false
	}
	return *p.RangeEnd - *p.RangeStart, true
}

// IsCustom reports whether the plan draws from custom content.
func (p Plan) IsCustom() bool {
	return p.ContentType == ContentCustom
}
