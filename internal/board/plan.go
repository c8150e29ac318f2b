package board

import (
	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/cooldown"
	"github.com/javiermolinar/mitplan/internal/plan"
	"github.com/javiermolinar/mitplan/internal/timeline"
)

// FromPlan rebuilds a board from a saved plan. Placements the party can no
// longer make are returned rather than loaded.
func FromPlan(c *catalog.Catalog, tl *timeline.Timeline, p *plan.Plan) (*Board, []plan.Placement) {
	b := New(c, tl, catalog.Party(p.Party))

	saved := make([]cooldown.Placement, len(p.Placements))
	for i, pl := range p.Placements {
		saved[i] = cooldown.Placement{ID: pl.ID, Slot: pl.Slot, AbilityID: pl.AbilityID, Start: pl.Start}
	}

	var skipped []plan.Placement
	for _, s := range b.Restore(saved) {
		skipped = append(skipped, plan.Placement{ID: s.ID, Slot: s.Slot, AbilityID: s.AbilityID, Start: s.Start})
	}
	return b, skipped
}

// Save copies the board's party and placements into p.
func (b *Board) Save(p *plan.Plan) {
	p.BossID = b.Timeline.ID
	p.Party = b.Party.Clone()
	p.Placements = p.Placements[:0]
	for _, e := range b.Entries() {
		p.Placements = append(p.Placements, plan.Placement{
			ID:        e.ID,
			Slot:      e.Slot,
			AbilityID: e.AbilityID,
			JobID:     e.Ability.JobID,
			Start:     e.Start,
		})
	}
}
