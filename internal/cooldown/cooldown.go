// Package cooldown decides when an ability can legally be used on a timeline.
//
// Every function in this package is a pure calculation over a snapshot of
// placements: inputs are never mutated and no state survives between calls.
// Conflicts and blocked ranges are ordinary return values, not errors.
package cooldown

import "sort"

// Ability describes the timing of one ability bound to a party slot.
type Ability struct {
	ID        string
	Name      string
	Slot      string
	Duration  int // seconds the effect lasts
	Cooldown  int // seconds until the ability (or one charge) is available again
	Charges   int // 0 or 1 means a single charge
	SweetSpot int // optional window at the start of the effect, 0 when unset
}

// MaxCharges returns the number of charges, treating unset as one.
func (a Ability) MaxCharges() int {
	if a.Charges < 1 {
		return 1
	}
	return a.Charges
}

// Placement is one scheduled use of an ability on a slot.
type Placement struct {
	ID        string
	AbilityID string
	Slot      string
	Start     int // seconds from pull
}

// TimeRange is a closed range of start times in seconds.
type TimeRange struct {
	Start int
	End   int
}

// Contains reports whether t lies inside the range, boundaries included.
func (r TimeRange) Contains(t int) bool {
	return t >= r.Start && t <= r.End
}

// Len returns the number of whole seconds covered by the range.
func (r TimeRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// InAny reports whether t lies inside any of the ranges.
func InAny(ranges []TimeRange, t int) bool {
	for _, r := range ranges {
		if r.Contains(t) {
			return true
		}
	}
	return false
}

// history returns the placements of the same (slot, ability) pair, minus the
// excluded one, ordered by start time. Equal starts keep their input order.
func history(placements []Placement, ability Ability, excludeID string) []Placement {
	var out []Placement
	for _, p := range placements {
		if p.Slot != ability.Slot || p.AbilityID != ability.ID {
			continue
		}
		if excludeID != "" && p.ID == excludeID {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}
