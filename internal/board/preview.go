package board

import (
	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/cooldown"
)

// Preview is what a pending placement or move would look like.
type Preview struct {
	Raw      int
	Start    int
	Zones    []cooldown.TimeRange
	InZone   bool
	InBounds bool
	Conflict bool
}

// Valid reports whether committing the preview would succeed.
func (p Preview) Valid() bool {
	return p.InBounds && !p.Conflict
}

// Preview snaps a raw start time for a against the current board.
// excludeID names the placement being moved, if any.
func (b *Board) Preview(a catalog.SlotAbility, raw int, excludeID string) Preview {
	zones := b.Zones(a, excludeID)
	start := b.Snapper.Snap(raw, zones, &a.Ability)
	return Preview{
		Raw:      raw,
		Start:    start,
		Zones:    zones,
		InZone:   cooldown.InAny(zones, start),
		InBounds: b.InBounds(a, start),
		Conflict: cooldown.HasConflict(b.Placements(), a.Ability, start, excludeID),
	}
}

// Centered converts a cursor position into the start time that puts the
// effect's midpoint under it, never before the pull.
func Centered(cursor int, a catalog.SlotAbility) int {
	start := cursor - a.Duration/2
	if start < 0 {
		return 0
	}
	return start
}
