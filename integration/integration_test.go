package integration

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/mitplan/internal/board"
	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/cooldown"
	"github.com/javiermolinar/mitplan/internal/db"
	"github.com/javiermolinar/mitplan/internal/plan"
	"github.com/javiermolinar/mitplan/internal/summary"
	"github.com/javiermolinar/mitplan/internal/timeline"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newBoard(t *testing.T, timelineID string) *board.Board {
	t.Helper()
	tl, err := timeline.Load(timelineID)
	if err != nil {
		t.Fatalf("failed to load timeline: %v", err)
	}
	return board.New(catalog.MustLoad(), tl, catalog.DefaultParty())
}

// mustPlace places slot's ability at start or fails the test.
func mustPlace(t *testing.T, b *board.Board, slot, abilityID string, start int) board.Entry {
	t.Helper()
	a, err := b.Ability(slot, abilityID)
	if err != nil {
		t.Fatalf("ability %s/%s: %v", slot, abilityID, err)
	}
	e, err := b.Place(a, start)
	if err != nil {
		t.Fatalf("placing %s at %d: %v", abilityID, start, err)
	}
	return e
}

// savePlan stores the board as a new plan and returns its id.
func savePlan(t *testing.T, repo plan.Repository, b *board.Board, name string) string {
	t.Helper()
	p, err := plan.New(name, b.Timeline.ID, b.Party.Clone(), time.Now())
	if err != nil {
		t.Fatalf("failed to create plan: %v", err)
	}
	b.Save(p)
	if err := repo.SavePlan(context.Background(), p); err != nil {
		t.Fatalf("failed to save plan: %v", err)
	}
	return p.ID
}

func loadBoard(t *testing.T, repo plan.Repository, id string) (*board.Board, []plan.Placement) {
	t.Helper()
	p, err := repo.GetPlan(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to get plan: %v", err)
	}
	if p == nil {
		t.Fatalf("plan %s not found", id)
	}
	tl, err := timeline.Resolve(p.BossID)
	if err != nil {
		t.Fatalf("failed to resolve timeline: %v", err)
	}
	return board.FromPlan(catalog.MustLoad(), tl, p)
}

func TestPlanRoundTrip(t *testing.T) {
	repo := openRepo(t)
	b := newBoard(t, "sample-boss")
	mustPlace(t, b, "tank1", "rampart", 0)
	mustPlace(t, b, "tank1", "rampart", 90)
	mustPlace(t, b, "tank2", "oblation", 10)
	mustPlace(t, b, "tank2", "oblation", 12)

	id := savePlan(t, repo, b, "Week one")
	got, skipped := loadBoard(t, repo, id)
	if len(skipped) != 0 {
		t.Errorf("skipped %d placements", len(skipped))
	}
	if got.Len() != b.Len() {
		t.Fatalf("loaded %d placements, want %d", got.Len(), b.Len())
	}
	for _, e := range b.Entries() {
		loaded, ok := got.Find(e.ID)
		if !ok {
			t.Errorf("placement %s missing after reload", e.ID)
			continue
		}
		if loaded.Start != e.Start || loaded.Slot != e.Slot || loaded.AbilityID != e.AbilityID {
			t.Errorf("placement %s = %+v, want %+v", e.ID, loaded.Placement, e.Placement)
		}
	}

	// The reloaded board enforces the same cooldowns.
	a, _ := got.Ability("tank2", "oblation")
	if err := got.Check(a, 20, ""); !errors.Is(err, board.ErrCooldownConflict) {
		t.Errorf("third oblation at 20 = %v, want cooldown conflict", err)
	}
}

func TestZonesAfterReload(t *testing.T) {
	repo := openRepo(t)
	b := newBoard(t, "sample-boss")
	mustPlace(t, b, "tank1", "rampart", 30)

	got, _ := loadBoard(t, repo, savePlan(t, repo, b, "Zones"))
	a, _ := got.Ability("tank1", "rampart")
	want := []cooldown.TimeRange{{Start: 121, End: 140}}
	zones := got.Zones(a, "")
	if len(zones) != len(want) || zones[0] != want[0] {
		t.Errorf("Zones() = %v, want %v", zones, want)
	}

	p := got.Preview(a, 100, "")
	if p.Start != 121 || !p.Valid() {
		t.Errorf("Preview(100) = %+v, want a valid start at 121", p)
	}
}

func TestConflictingPlanStillOpens(t *testing.T) {
	repo := openRepo(t)
	p, err := plan.New("Broken", "sample-boss", catalog.DefaultParty(), time.Now())
	if err != nil {
		t.Fatalf("failed to create plan: %v", err)
	}
	p.Placements = []plan.Placement{
		{ID: "a", Slot: "tank1", AbilityID: "rampart", JobID: "PLD", Start: 0},
		{ID: "b", Slot: "tank1", AbilityID: "rampart", JobID: "PLD", Start: 30},
		{ID: "c", Slot: "healer1", AbilityID: "holmgang", JobID: "WAR", Start: 0},
	}
	if err := repo.SavePlan(context.Background(), p); err != nil {
		t.Fatalf("failed to save plan: %v", err)
	}

	b, skipped := loadBoard(t, repo, p.ID)
	if len(skipped) != 1 || skipped[0].ID != "c" {
		t.Errorf("skipped = %+v, want the placement the party cannot make", skipped)
	}
	if b.Len() != 2 {
		t.Errorf("loaded %d placements, want 2", b.Len())
	}
	if conflicts := b.Conflicts(); len(conflicts) == 0 {
		t.Error("expected the overlapping ramparts to be reported")
	}
}

func TestCoverageFromRepository(t *testing.T) {
	repo := openRepo(t)
	b := newBoard(t, "sample-boss")
	mustPlace(t, b, "tank1", "rampart", 0)
	id := savePlan(t, repo, b, "Coverage")

	s, err := summary.Build(context.Background(), repo, catalog.MustLoad(), summary.BuildOptions{PlanID: id})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if s.Placements != 1 || s.CoveredCount() == 0 {
		t.Errorf("summary = %d placements, %d covered", s.Placements, s.CoveredCount())
	}
	if s.Attacks[0].Attack.Time != 10 || !s.Attacks[0].Covered() {
		t.Errorf("first attack = %+v, want the 0:10 buster covered", s.Attacks[0])
	}

	if _, err := summary.Build(context.Background(), repo, catalog.MustLoad(), summary.BuildOptions{PlanID: "missing"}); !errors.Is(err, plan.ErrPlanNotFound) {
		t.Errorf("Build(missing) = %v, want ErrPlanNotFound", err)
	}
}

func TestExportImportBetweenStores(t *testing.T) {
	src := openRepo(t)
	dst := openRepo(t)
	b := newBoard(t, "training-dummy")
	mustPlace(t, b, "healer1", "sacred-soil", 15)
	id := savePlan(t, src, b, "Shared")

	p, err := src.GetPlan(context.Background(), id)
	if err != nil || p == nil {
		t.Fatalf("GetPlan() = %v, %v", p, err)
	}
	var buf bytes.Buffer
	if err := p.Export(&buf); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	imported, err := plan.Import(&buf)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if err := dst.SavePlan(context.Background(), imported); err != nil {
		t.Fatalf("failed to save imported plan: %v", err)
	}

	plans, err := dst.ListPlansByBoss(context.Background(), "training-dummy")
	if err != nil {
		t.Fatalf("ListPlansByBoss() error: %v", err)
	}
	if len(plans) != 1 || plans[0].Name != "Shared" || plans[0].Placements != 1 {
		t.Errorf("plans = %+v", plans)
	}
}

func TestDeletePlan(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	id := savePlan(t, repo, newBoard(t, "sample-boss"), "Temporary")

	if err := repo.DeletePlan(ctx, id); err != nil {
		t.Fatalf("DeletePlan() error: %v", err)
	}
	if p, err := repo.GetPlan(ctx, id); err != nil || p != nil {
		t.Errorf("GetPlan() after delete = %v, %v", p, err)
	}
	if err := repo.DeletePlan(ctx, id); !errors.Is(err, plan.ErrPlanNotFound) {
		t.Errorf("second DeletePlan() = %v, want ErrPlanNotFound", err)
	}
}
