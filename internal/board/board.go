// Package board holds the placements of one plan and commits changes to
// them only when the cooldown engine allows it.
package board

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/cooldown"
	"github.com/javiermolinar/mitplan/internal/layout"
	"github.com/javiermolinar/mitplan/internal/timeline"
)

// Board errors.
var (
	ErrOutOfBounds         = errors.New("placement outside the timeline")
	ErrCooldownConflict    = errors.New("ability is on cooldown")
	ErrPlacementNotFound   = errors.New("placement not found")
	ErrSlotMismatch        = errors.New("ability does not belong to this slot")
	ErrUnresolvedPlacement = errors.New("placement does not match the party")
)

// Entry is a committed placement together with the ability it uses.
type Entry struct {
	cooldown.Placement
	Ability catalog.SlotAbility
}

// End returns the second the effect wears off.
func (e Entry) End() int {
	return e.Start + e.Ability.Duration
}

// Board is the placement store for one plan.
type Board struct {
	Catalog  *catalog.Catalog
	Timeline *timeline.Timeline
	Party    catalog.Party
	Snapper  cooldown.Snapper

	entries []Entry
	logger  zerolog.Logger
}

// New returns an empty board for a timeline and party.
func New(c *catalog.Catalog, tl *timeline.Timeline, party catalog.Party) *Board {
	return &Board{
		Catalog:  c,
		Timeline: tl,
		Party:    party.Clone(),
		Snapper:  cooldown.NewSnapper(tl.Duration),
		logger:   zerolog.Nop(),
	}
}

// Clone returns an independent copy sharing the read-only catalog and timeline.
func (b *Board) Clone() *Board {
	c := *b
	c.Party = b.Party.Clone()
	c.entries = append([]Entry(nil), b.entries...)
	return &c
}

// SetLogger attaches a logger for commit decisions.
func (b *Board) SetLogger(l zerolog.Logger) {
	b.logger = l.With().Str("component", "board").Logger()
}

// Ability resolves an ability for whoever sits in slot.
func (b *Board) Ability(slot, abilityID string) (catalog.SlotAbility, error) {
	return b.Catalog.Ability(b.Party, slot, abilityID)
}

// Entries returns a copy of the committed placements ordered by start time.
func (b *Board) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// SlotEntries returns the committed placements of one slot ordered by start.
func (b *Board) SlotEntries(slot string) []Entry {
	var out []Entry
	for _, e := range b.Entries() {
		if e.Slot == slot {
			out = append(out, e)
		}
	}
	return out
}

// Placements returns the engine's view of the board.
func (b *Board) Placements() []cooldown.Placement {
	out := make([]cooldown.Placement, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.Placement
	}
	return out
}

// Len returns the number of committed placements.
func (b *Board) Len() int {
	return len(b.entries)
}

// Find returns the entry with the given id.
func (b *Board) Find(id string) (Entry, bool) {
	if i := b.index(id); i >= 0 {
		return b.entries[i], true
	}
	return Entry{}, false
}

// At returns the entries of slot whose effect covers second t.
func (b *Board) At(slot string, t int) []Entry {
	var out []Entry
	for _, e := range b.SlotEntries(slot) {
		if t >= e.Start && t < e.End() {
			out = append(out, e)
		}
	}
	return out
}

// Place commits a new use of a at start.
func (b *Board) Place(a catalog.SlotAbility, start int) (Entry, error) {
	if err := b.check(a, start, ""); err != nil {
		return Entry{}, err
	}
	e := Entry{
		Placement: cooldown.Placement{
			ID:        uuid.NewString(),
			AbilityID: a.ID,
			Slot:      a.Slot,
			Start:     start,
		},
		Ability: a,
	}
	b.entries = append(b.entries, e)
	b.logger.Debug().Str("slot", a.Slot).Str("ability", a.ID).Int("start", start).Msg("placed")
	return e, nil
}

// Move changes the start time of an existing placement.
func (b *Board) Move(id string, start int) (Entry, error) {
	i := b.index(id)
	if i < 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrPlacementNotFound, id)
	}
	if err := b.check(b.entries[i].Ability, start, id); err != nil {
		return Entry{}, err
	}
	b.entries[i].Start = start
	b.logger.Debug().Str("id", id).Int("start", start).Msg("moved")
	return b.entries[i], nil
}

// Remove deletes a placement.
func (b *Board) Remove(id string) error {
	i := b.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPlacementNotFound, id)
	}
	b.entries = append(b.entries[:i], b.entries[i+1:]...)
	b.logger.Debug().Str("id", id).Msg("removed")
	return nil
}

// Clear removes every placement.
func (b *Board) Clear() {
	b.entries = nil
}

// SwitchTimeline replaces the boss timeline and clears the board.
func (b *Board) SwitchTimeline(tl *timeline.Timeline) {
	b.Timeline = tl
	b.Snapper.TimelineDuration = tl.Duration
	b.Clear()
}

// SetJob seats a job in slot. Placements made by the previous job are
// dropped and returned.
func (b *Board) SetJob(slot, jobID string) ([]Entry, error) {
	if !b.Catalog.HasSlot(slot) {
		return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownSlot, slot)
	}
	if jobID != "" {
		j, err := b.Catalog.Job(jobID)
		if err != nil {
			return nil, err
		}
		jobID = j.ID
	}
	if b.Party[slot] == jobID {
		return nil, nil
	}
	b.Party[slot] = jobID

	var kept, dropped []Entry
	for _, e := range b.entries {
		if e.Slot == slot {
			dropped = append(dropped, e)
			continue
		}
		kept = append(kept, e)
	}
	b.entries = kept
	return dropped, nil
}

// Restore loads previously saved placements without re-running the
// cooldown check, so a conflicting plan can still be opened and fixed.
// Placements whose ability the party no longer has are skipped and
// returned.
func (b *Board) Restore(placements []cooldown.Placement) []cooldown.Placement {
	var skipped []cooldown.Placement
	for _, p := range placements {
		a, err := b.Ability(p.Slot, p.AbilityID)
		if err != nil {
			skipped = append(skipped, p)
			continue
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		b.entries = append(b.entries, Entry{Placement: p, Ability: a})
	}
	return skipped
}

// InBounds reports whether a use of a at start fits on the timeline.
func (b *Board) InBounds(a catalog.SlotAbility, start int) bool {
	return start >= 0 && start+a.Duration <= b.Timeline.Duration
}

// Check reports why a use of a at start would be rejected, or nil.
// excludeID names a placement being moved.
func (b *Board) Check(a catalog.SlotAbility, start int, excludeID string) error {
	return b.check(a, start, excludeID)
}

func (b *Board) check(a catalog.SlotAbility, start int, excludeID string) error {
	if b.Party[a.Slot] != a.JobID {
		return fmt.Errorf("%w: %s in %s", ErrSlotMismatch, a.ID, a.Slot)
	}
	if !b.InBounds(a, start) {
		return fmt.Errorf("%w: %s at %ds (fight is %ds)", ErrOutOfBounds, a.Name, start, b.Timeline.Duration)
	}
	if cooldown.HasConflict(b.Placements(), a.Ability, start, excludeID) {
		return fmt.Errorf("%w: %s at %ds", ErrCooldownConflict, a.Name, start)
	}
	return nil
}

// Conflicts returns the ids of placements that could not be committed
// against the rest of the board, in start order.
func (b *Board) Conflicts() []string {
	all := b.Placements()
	var ids []string
	for _, e := range b.Entries() {
		if !b.InBounds(e.Ability, e.Start) || cooldown.HasConflict(all, e.Ability.Ability, e.Start, e.ID) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Zones returns the valid start ranges for a.
func (b *Board) Zones(a catalog.SlotAbility, excludeID string) []cooldown.TimeRange {
	return cooldown.ValidZones(b.Placements(), &a.Ability, b.Timeline.Duration, excludeID)
}

// Lanes assigns the placements of one slot to non-overlapping lanes.
// The result follows SlotEntries order.
func (b *Board) Lanes(slot string) []layout.Lane {
	entries := b.SlotEntries(slot)
	spans := make([]layout.Span, len(entries))
	for i, e := range entries {
		spans[i] = layout.Span{ID: e.ID, Start: e.Start, Duration: e.Ability.Duration}
	}
	return layout.AssignLanes(spans)
}

func (b *Board) index(id string) int {
	for i, e := range b.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
