package cooldown

import "testing"

func place(id, slot, ability string, start int) Placement {
	return Placement{ID: id, Slot: slot, AbilityID: ability, Start: start}
}

func TestHasConflict_SingleCharge(t *testing.T) {
	rampart := Ability{ID: "rampart", Slot: "tank1", Duration: 20, Cooldown: 90}
	placements := []Placement{
		place("a", "tank1", "rampart", 30),
		place("b", "tank2", "rampart", 50),  // other slot
		place("c", "tank1", "reprisal", 50), // other ability
	}

	tests := []struct {
		name  string
		start int
		want  bool
	}{
		{name: "same second", start: 30, want: true},
		{name: "inside cooldown", start: 60, want: true},
		{name: "last second of cooldown", start: 119, want: true},
		{name: "cooldown elapsed", start: 120, want: false},
		{name: "before existing use", start: 0, want: false},
		{name: "just before existing use", start: 29, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasConflict(placements, rampart, tt.start, ""); got != tt.want {
				t.Errorf("HasConflict(%d) = %v, want %v", tt.start, got, tt.want)
			}
		})
	}
}

func TestHasConflict_ExcludeSelf(t *testing.T) {
	rampart := Ability{ID: "rampart", Slot: "tank1", Duration: 20, Cooldown: 90}
	placements := []Placement{place("a", "tank1", "rampart", 30)}

	if !HasConflict(placements, rampart, 40, "") {
		t.Fatal("expected conflict without exclusion")
	}
	if HasConflict(placements, rampart, 40, "a") {
		t.Error("moving a placement should not conflict with itself")
	}
	if !HasConflict(placements, rampart, 40, "other") {
		t.Error("excluding an unrelated id should keep the conflict")
	}
}

func TestHasConflict_MultiCharge(t *testing.T) {
	oblation := Ability{ID: "oblation", Slot: "tank1", Duration: 10, Cooldown: 60, Charges: 2}

	t.Run("second charge available", func(t *testing.T) {
		placements := []Placement{place("a", "tank1", "oblation", 0)}
		if HasConflict(placements, oblation, 30, "") {
			t.Error("expected t=30 to use the second charge")
		}
	})

	t.Run("both charges spent", func(t *testing.T) {
		placements := []Placement{
			place("a", "tank1", "oblation", 0),
			place("b", "tank1", "oblation", 30),
		}
		if !HasConflict(placements, oblation, 50, "") {
			t.Error("expected t=50 to have no charge left")
		}
		if HasConflict(placements, oblation, 60, "") {
			t.Error("expected a charge to be back at t=60")
		}
	})

	t.Run("candidate before existing uses", func(t *testing.T) {
		placements := []Placement{
			place("a", "tank1", "oblation", 100),
			place("b", "tank1", "oblation", 110),
		}
		if HasConflict(placements, oblation, 10, "") {
			t.Error("expected a full ledger before the first use")
		}
	})

	t.Run("recharge counts whole cooldowns from the checkpoint", func(t *testing.T) {
		// Uses at 0 and 10 empty the ledger. At 70 one full cooldown has
		// passed since the checkpoint at 0, so a charge is back and the
		// checkpoint moves to 60. At 100 less than a cooldown has passed
		// since 60, so the ledger is still empty.
		placements := []Placement{
			place("a", "tank1", "oblation", 0),
			place("b", "tank1", "oblation", 10),
			place("c", "tank1", "oblation", 70),
		}
		if !HasConflict(placements, oblation, 100, "") {
			t.Error("expected t=100 to conflict")
		}
		if HasConflict(placements, oblation, 120, "") {
			t.Error("expected t=120 to be legal")
		}
	})

	t.Run("exclude self frees a charge", func(t *testing.T) {
		placements := []Placement{
			place("a", "tank1", "oblation", 0),
			place("b", "tank1", "oblation", 30),
		}
		if HasConflict(placements, oblation, 45, "b") {
			t.Error("expected moving b to 45 to be legal")
		}
	})

	t.Run("overspent history is tolerated", func(t *testing.T) {
		placements := []Placement{
			place("a", "tank1", "oblation", 0),
			place("b", "tank1", "oblation", 1),
			place("c", "tank1", "oblation", 2),
		}
		if !HasConflict(placements, oblation, 3, "") {
			t.Error("expected conflict after overspent history")
		}
		if HasConflict(placements, oblation, 60, "") {
			t.Error("expected a recharged charge at t=60")
		}
	})
}

func TestHasConflict_ZeroCooldown(t *testing.T) {
	consolation := Ability{ID: "consolation", Slot: "healer1", Duration: 30, Cooldown: 0, Charges: 2}
	placements := []Placement{
		place("a", "healer1", "consolation", 0),
		place("b", "healer1", "consolation", 0),
	}
	if HasConflict(placements, consolation, 0, "") {
		t.Error("zero cooldown should never conflict")
	}

	single := Ability{ID: "x", Slot: "healer1", Duration: 5}
	if HasConflict([]Placement{place("a", "healer1", "x", 10)}, single, 10, "") {
		t.Error("zero cooldown single charge should never conflict")
	}
}

func TestHasConflict_DoesNotMutateInput(t *testing.T) {
	oblation := Ability{ID: "oblation", Slot: "tank1", Duration: 10, Cooldown: 60, Charges: 2}
	placements := []Placement{
		place("b", "tank1", "oblation", 90),
		place("a", "tank1", "oblation", 10),
	}
	HasConflict(placements, oblation, 50, "")
	if placements[0].ID != "b" || placements[1].ID != "a" {
		t.Errorf("input order changed: %+v", placements)
	}
}
