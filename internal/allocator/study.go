package allocator

import (
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/utils"
)

// placeStudy fills study and self-study slots in chronological order.
func (p *pass) placeStudy() {
	for idx, slot := range p.slots {
		if !slot.Type.IsStudyType() {
			continue
		}
		bounds, ok := slotSpan(slot)
		if !ok {
			continue
		}

		// Timed plans take the part of [start, start+remaining] that overlaps
		// the slot. The start stays fixed, so time past the interval overflows.
		for _, item := range p.timed {
			id := item.Plan.ID
			before := p.remaining[id]
			if before <= 0 {
				continue
			}
			start := item.Start.Minutes()
			avail := span{start: max(start, bounds.start), end: min(start+before, bounds.end)}
			if avail.start >= avail.end {
				continue
			}
			used := avail.length()
			p.emit(idx, id, avail, before > used, before < p.working[id])
			p.remaining[id] = before - used
		}

		// Untimed plans are packed from the slot start.
		cursor := bounds.start
		for _, item := range p.untimed {
			if cursor >= bounds.end {
				break
			}
			id := item.Plan.ID
			before := p.remaining[id]
			if before <= 0 {
				continue
			}
			used := min(before, bounds.end-cursor)
			p.emit(idx, id, span{start: cursor, end: cursor + used}, before > used, before < p.working[id])
			p.remaining[id] = before - used
			cursor += used
		}

		p.sortSlot(idx)
	}
}

// freeRanges reports the gaps of every study-type slot that holds at least
// one placement. Empty slots are already entirely free and are skipped.
func (p *pass) freeRanges() []models.FreeRange {
	var free []models.FreeRange
	for idx, slot := range p.slots {
		if !slot.Type.IsStudyType() || len(p.placements[idx]) == 0 {
			continue
		}
		bounds, ok := slotSpan(slot)
		if !ok {
			continue
		}

		cursor := bounds.start
		for _, pl := range p.placements[idx] {
			start, end := mustMinutes(pl.Start), mustMinutes(pl.End)
			if cursor < start {
				free = append(free, freeRange(idx, slot.Type, span{start: cursor, end: start}))
			}
			cursor = max(cursor, end)
		}
		if cursor < bounds.end {
			free = append(free, freeRange(idx, slot.Type, span{start: cursor, end: bounds.end}))
		}
	}
	return free
}

func freeRange(idx int, t models.SlotType, s span) models.FreeRange {
	return models.FreeRange{
		SlotIndex: idx,
		Type:      t,
		Start:     utils.FormatMinutes(s.start),
		End:       utils.FormatMinutes(s.end),
	}
}
