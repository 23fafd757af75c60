package allocator

// placeCustom fills travel and academy slots with custom plans. Plans with
// an explicit start are clamped to the slot and never flagged as split;
// the rest are packed from the slot start.
func (p *pass) placeCustom() {
	for idx, slot := range p.slots {
		if !slot.Type.AcceptsCustomOnly() {
			continue
		}
		bounds, ok := slotSpan(slot)
		if !ok {
			continue
		}

		// Custom plans without a start share one cursor so they never overlap.
		cursor := bounds.start
		for _, item := range append(append([]Item(nil), p.timed...), p.untimed...) {
			id := item.Plan.ID
			before := p.remaining[id]
			if !item.Plan.IsCustom() || before <= 0 {
				continue
			}

			if item.Explicit {
				start := item.Start.Minutes()
				avail := span{start: max(start, bounds.start), end: min(start+before, bounds.end)}
				if avail.start >= avail.end {
					continue
				}
				p.emit(idx, id, avail, false, false)
				p.remaining[id] = before - avail.length()
				p.customHit[id] = true
				continue
			}

			if cursor >= bounds.end {
				continue
			}
			used := min(before, bounds.end-cursor)
			p.emit(idx, id, span{start: cursor, end: cursor + used}, before > used, false)
			p.remaining[id] = before - used
			p.customHit[id] = true
			cursor += used
		}

		p.sortSlot(idx)
	}
}
