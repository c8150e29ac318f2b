package cooldown

import "sort"

// DefaultSnapThreshold is how close, in seconds, a candidate must be to a
// zone boundary before it is pulled onto it.
const DefaultSnapThreshold = 2

// Snapper corrects imprecise candidate start times toward legal ones.
type Snapper struct {
	Threshold        int
	TimelineDuration int
}

// NewSnapper returns a Snapper for a timeline using DefaultSnapThreshold.
func NewSnapper(timelineDuration int) Snapper {
	return Snapper{Threshold: DefaultSnapThreshold, TimelineDuration: timelineDuration}
}

// Snap returns the corrected start time for t.
//
// A candidate within Threshold of a snap point (0, any zone boundary or the
// last legal start on the timeline) moves to the nearest one; ties go to the
// earlier point. Otherwise a candidate already inside a zone is kept, one
// before a zone advances to that zone's start, and one past every zone is
// clamped to the end of the last zone. With no zones t is returned as is.
func (s Snapper) Snap(t int, zones []TimeRange, ability *Ability) int {
	if len(zones) == 0 {
		return t
	}

	best, bestDist := 0, -1
	for _, p := range s.points(zones, ability) {
		d := abs(t - p)
		if d > s.Threshold {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = p, d
		}
	}
	if bestDist >= 0 {
		return best
	}

	for _, z := range zones {
		if z.Contains(t) {
			return t
		}
		if z.Start > t {
			return z.Start
		}
	}
	return zones[len(zones)-1].End
}

// points returns the sorted, de-duplicated snap points for zones.
func (s Snapper) points(zones []TimeRange, ability *Ability) []int {
	final := s.TimelineDuration
	if ability != nil {
		final -= ability.Duration
	}

	seen := map[int]bool{0: true, final: true}
	pts := []int{0}
	if final != 0 {
		pts = append(pts, final)
	}
	for _, z := range zones {
		for _, p := range [2]int{z.Start, z.End} {
			if !seen[p] {
				seen[p] = true
				pts = append(pts, p)
			}
		}
	}
	sort.Ints(pts)
	return pts
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
