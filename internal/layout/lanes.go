// Package layout stacks overlapping timeline items into display lanes.
package layout

import "sort"

// Span is one item occupying [Start, Start+Duration) on a timeline.
type Span struct {
	ID       string
	Start    int
	Duration int
}

// End returns the exclusive end of the span.
func (s Span) End() int {
	return s.Start + s.Duration
}

// Overlaps reports whether two spans share any instant.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End() && other.Start < s.End()
}

// Lane is a span annotated with its display lane.
type Lane struct {
	Span
	Lane       int
	TotalLanes int
}

// AssignLanes places each span in the first lane where it overlaps nothing,
// opening a new lane when every existing one is taken.
//
// Spans are visited by start time; equal starts keep their input order, so
// identical input always yields identical lanes. The result is in input
// order and every entry carries the same TotalLanes.
func AssignLanes(spans []Span) []Lane {
	if len(spans) == 0 {
		return nil
	}

	order := make([]int, len(spans))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return spans[order[a]].Start < spans[order[b]].Start
	})

	var lanes [][]Span
	assigned := make([]int, len(spans))
	for _, idx := range order {
		s := spans[idx]
		lane := len(lanes)
		for i, members := range lanes {
			if !overlapsAny(s, members) {
				lane = i
				break
			}
		}
		if lane == len(lanes) {
			lanes = append(lanes, nil)
		}
		lanes[lane] = append(lanes[lane], s)
		assigned[idx] = lane
	}

	out := make([]Lane, len(spans))
	for i, s := range spans {
		out[i] = Lane{Span: s, Lane: assigned[i], TotalLanes: len(lanes)}
	}
	return out
}

func overlapsAny(s Span, members []Span) bool {
	for _, m := range members {
		if s.Overlaps(m) {
			return true
		}
	}
	return false
}
