package cooldown

// HasConflict reports whether using ability at start would break its cooldown
// or charge budget, given the placements already on the board.
//
// Only placements on the ability's slot with the same ability id are
// considered; excludeID (when not empty) removes one placement so that moving
// a placement never conflicts with its own previous position. Bounds against
// the timeline are the caller's responsibility.
func HasConflict(placements []Placement, ability Ability, start int, excludeID string) bool {
	used := history(placements, ability, excludeID)

	if ability.MaxCharges() == 1 {
		for _, p := range used {
			if start >= p.Start && start < p.Start+ability.Cooldown {
				return true
			}
		}
		return false
	}

	return !chargeAvailable(used, ability, start)
}

// ledger tracks the charge economy of a multi-charge ability while walking
// its uses in time order. Charges come back only in whole cooldown steps
// counted from the last recharge checkpoint, never fractionally.
type ledger struct {
	charges    int
	max        int
	cooldown   int
	checkpoint int
}

func newLedger(ability Ability) *ledger {
	return &ledger{
		charges:  ability.MaxCharges(),
		max:      ability.MaxCharges(),
		cooldown: ability.Cooldown,
	}
}

// use recharges up to t and then tries to spend a charge.
func (l *ledger) use(t int) bool {
	if elapsed := t - l.checkpoint; elapsed > 0 {
		if steps := elapsed / l.cooldown; steps > 0 {
			l.charges = min(l.max, l.charges+steps)
			l.checkpoint += steps * l.cooldown
		}
	}
	if l.charges > 0 {
		l.charges--
		return true
	}
	return false
}

// chargeAvailable simulates the uses in order with a candidate use at t
// merged in after any existing use that starts at the same second. Existing
// uses are committed history: they are replayed even when the ledger has no
// charge for them.
func chargeAvailable(used []Placement, ability Ability, t int) bool {
	if ability.Cooldown <= 0 {
		return true
	}

	l := newLedger(ability)
	for _, p := range used {
		if p.Start > t {
			break
		}
		l.use(p.Start)
	}
	return l.use(t)
}
