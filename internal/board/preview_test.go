package board

import (
	"testing"

	"github.com/javiermolinar/mitplan/internal/cooldown"
)

func TestPreview(t *testing.T) {
	b := newTestBoard(t)
	rampart := mustAbility(t, b, "tank1", "rampart") // 20s, cd 90
	placed, _ := b.Place(rampart, 0)

	tests := []struct {
		name      string
		raw       int
		exclude   string
		wantStart int
		wantValid bool
	}{
		{"snaps onto zone start", 89, "", 91, true},
		{"advances to next zone", 40, "", 91, true},
		{"clamps to last legal start", 155, "", 140, true},
		{"moving self frees the board", 40, placed.ID, 40, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := b.Preview(rampart, tt.raw, tt.exclude)
			if p.Start != tt.wantStart {
				t.Errorf("Start = %d, want %d", p.Start, tt.wantStart)
			}
			if p.Valid() != tt.wantValid {
				t.Errorf("Valid() = %v, want %v (%+v)", p.Valid(), tt.wantValid, p)
			}
			if !p.InZone {
				t.Errorf("snapped start %d not inside %v", p.Start, p.Zones)
			}
		})
	}
}

func TestPreview_ZonesMatchEngine(t *testing.T) {
	b := newTestBoard(t)
	oblation := mustAbility(t, b, "tank2", "oblation")
	_, _ = b.Place(oblation, 0)
	_, _ = b.Place(oblation, 30)

	p := b.Preview(oblation, 45, "")
	want := cooldown.ValidZones(b.Placements(), &oblation.Ability, 160, "")
	if len(p.Zones) != len(want) {
		t.Fatalf("got %v, want %v", p.Zones, want)
	}
	if p.Conflict != cooldown.HasConflict(b.Placements(), oblation.Ability, p.Start, "") {
		t.Error("preview conflict disagrees with the engine")
	}
}

func TestCentered(t *testing.T) {
	b := newTestBoard(t)
	rampart := mustAbility(t, b, "tank1", "rampart")
	if got := Centered(50, rampart); got != 40 {
		t.Errorf("Centered(50) = %d, want 40", got)
	}
	if got := Centered(3, rampart); got != 0 {
		t.Errorf("Centered(3) = %d, want 0", got)
	}
}
