package cooldown

// ValidZones returns every range of start times at which ability could be
// placed without conflicting with its other uses on the same slot.
//
// The result is sorted, and no two ranges overlap or touch. Candidate starts
// are bounded to [0, timelineDuration-ability.Duration]. A nil ability
// yields the whole timeline; an ability longer than the timeline yields no
// zones at all.
func ValidZones(placements []Placement, ability *Ability, timelineDuration int, excludeID string) []TimeRange {
	if ability == nil {
		return []TimeRange{{Start: 0, End: timelineDuration}}
	}

	maxEnd := timelineDuration - ability.Duration
	if maxEnd < 0 {
		return []TimeRange{}
	}

	used := history(placements, *ability, excludeID)
	if len(used) == 0 {
		return []TimeRange{{Start: 0, End: maxEnd}}
	}

	if ability.MaxCharges() == 1 {
		return singleChargeZones(used, ability.Cooldown, maxEnd)
	}
	return multiChargeZones(used, *ability, maxEnd)
}

// singleChargeZones blocks cooldown seconds on both sides of each use. A use
// placed earlier than an existing one would put the existing use on cooldown,
// so the block is symmetric. Blocks are closed: both start-cooldown and
// start+cooldown are illegal, and blocks that overlap or touch are merged.
func singleChargeZones(used []Placement, cooldown, maxEnd int) []TimeRange {
	if cooldown <= 0 {
		return []TimeRange{{Start: 0, End: maxEnd}}
	}

	blocks := make([]TimeRange, 0, len(used))
	for _, p := range used {
		b := TimeRange{Start: p.Start - cooldown, End: p.Start + cooldown}
		if n := len(blocks); n > 0 && b.Start <= blocks[n-1].End+1 {
			blocks[n-1].End = max(blocks[n-1].End, b.End)
			continue
		}
		blocks = append(blocks, b)
	}

	zones := []TimeRange{}
	cursor := 0
	for _, b := range blocks {
		if end := min(b.Start-1, maxEnd); cursor <= end {
			zones = append(zones, TimeRange{Start: cursor, End: end})
		}
		cursor = max(cursor, b.End+1)
		if cursor > maxEnd {
			return zones
		}
	}
	return append(zones, TimeRange{Start: cursor, End: maxEnd})
}

// multiChargeZones classifies every whole second with the same charge
// simulation HasConflict uses and run-length encodes the legal seconds.
// Timelines are a few hundred seconds long, so the brute force is cheap; a
// sweep over recharge events must keep the same per-second answers.
func multiChargeZones(used []Placement, ability Ability, maxEnd int) []TimeRange {
	zones := []TimeRange{}
	open := -1
	for t := 0; t <= maxEnd; t++ {
		if chargeAvailable(used, ability, t) {
			if open < 0 {
				open = t
			}
			continue
		}
		if open >= 0 {
			zones = append(zones, TimeRange{Start: open, End: t - 1})
			open = -1
		}
	}
	if open >= 0 {
		zones = append(zones, TimeRange{Start: open, End: maxEnd})
	}
	return zones
}
