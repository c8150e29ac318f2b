package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/mitplan/internal/board"
	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/config"
	"github.com/javiermolinar/mitplan/internal/db"
	"github.com/javiermolinar/mitplan/internal/plan"
)

type testEnv struct {
	repo *db.SQLite
	cat  *catalog.Catalog
	cfg  *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	DisableColor()

	dir := t.TempDir()
	repo, err := db.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("db.New() error = %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "test.db")

	return &testEnv{repo: repo, cat: catalog.MustLoad(), cfg: cfg}
}

// run executes one command line on a fresh App and returns stdout.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := NewApp(e.repo, e.cat, e.cfg)
	var out, errOut bytes.Buffer
	app.SetOutput(&out, &errOut)
	app.SetArgs(args)
	err := app.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%v: error = %v\noutput:\n%s", args, err, out)
	}
	return out
}

func (e *testEnv) newPlan(t *testing.T, name string) string {
	t.Helper()
	out := e.mustRun(t, "plans", "new", "--name", name, "--boss", "sample-boss")
	fields := strings.Fields(out)
	if len(fields) == 0 {
		t.Fatalf("plans new printed nothing")
	}
	return fields[len(fields)-1]
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "version")
	if !strings.HasPrefix(out, "mitplan dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestJobsAndTimelines(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "jobs")
	for _, want := range []string{"TANK", "PLD", "SCH"} {
		if !strings.Contains(out, want) {
			t.Errorf("jobs output missing %q", want)
		}
	}

	out = env.mustRun(t, "jobs", "pld")
	if !strings.Contains(out, "rampart") || !strings.Contains(out, "Holy Sheltron") || !strings.Contains(out, "target") {
		t.Errorf("jobs pld output = %s", out)
	}

	if _, err := env.run(t, "jobs", "xyz"); !errors.Is(err, catalog.ErrUnknownJob) {
		t.Errorf("jobs xyz error = %v, want ErrUnknownJob", err)
	}

	out = env.mustRun(t, "timelines")
	if !strings.Contains(out, "* sample-boss") || !strings.Contains(out, "training-dummy") {
		t.Errorf("timelines output = %s", out)
	}

	out = env.mustRun(t, "timelines", "sample-boss")
	if !strings.Contains(out, "Tank Buster") || !strings.Contains(out, "2:30") {
		t.Errorf("timelines sample-boss output = %s", out)
	}
}

func TestPlaceZonesAndCheck(t *testing.T) {
	env := newTestEnv(t)
	id := env.newPlan(t, "Prog")

	out := env.mustRun(t, "place", "--plan", id, "--slot", "tank1", "--ability", "rampart", "--at", "0:08")
	if !strings.Contains(out, "Placed Rampart") {
		t.Errorf("place output = %s", out)
	}

	_, err := env.run(t, "place", "--plan", id, "--slot", "tank1", "--ability", "rampart", "--at", "30")
	if !errors.Is(err, board.ErrCooldownConflict) {
		t.Errorf("second rampart error = %v, want ErrCooldownConflict", err)
	}

	out = env.mustRun(t, "zones", "--plan", id, "--slot", "tank1", "--ability", "rampart")
	if !strings.Contains(out, "1:39-2:20") {
		t.Errorf("zones output = %s", out)
	}

	out = env.mustRun(t, "check", "--plan", id, "--slot", "tank1", "--ability", "rampart", "--at", "1:39")
	if !strings.Contains(out, "ok:") {
		t.Errorf("check output = %s", out)
	}

	out, err = env.run(t, "check", "--slot", "tank1", "--ability", "rampart", "--at", "141")
	if !errors.Is(err, board.ErrOutOfBounds) {
		t.Errorf("check past the end error = %v, want ErrOutOfBounds", err)
	}
	if !strings.Contains(out, "blocked:") {
		t.Errorf("check output = %s", out)
	}

	out = env.mustRun(t, "check", "--plan", id, "--slot", "tank1", "--ability", "rampart", "--at", "97", "--snap")
	if !strings.Contains(out, "snapped 1:37 -> 1:39") {
		t.Errorf("snapped check output = %s", out)
	}

	p, err := env.repo.GetPlan(context.Background(), id)
	if err != nil || p == nil {
		t.Fatalf("GetPlan() = %v, %v", p, err)
	}
	if len(p.Placements) != 1 || p.Placements[0].Start != 8 || p.Placements[0].JobID != "PLD" {
		t.Errorf("stored placements = %+v", p.Placements)
	}
}

func TestPlaceNewPlan(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "place", "--plan", "new", "--name", "Quick", "--boss", "training-dummy",
		"--party", "tank1=WAR", "--slot", "tank1", "--ability", "rampart", "--at", "5")
	if !strings.Contains(out, "Created plan training-dummy-quick-") {
		t.Errorf("place --plan new output = %s", out)
	}

	plans, err := env.repo.ListPlans(context.Background())
	if err != nil {
		t.Fatalf("ListPlans() error = %v", err)
	}
	if len(plans) != 1 || plans[0].Placements != 1 {
		t.Fatalf("plans = %+v", plans)
	}
	p, _ := env.repo.GetPlan(context.Background(), plans[0].ID)
	if p.Party["tank1"] != "WAR" {
		t.Errorf("tank1 = %q, want WAR", p.Party["tank1"])
	}

	if _, err := env.run(t, "place", "--slot", "tank1", "--ability", "rampart", "--at", "5"); !errors.Is(err, errPlanRequired) {
		t.Errorf("place without --plan error = %v", err)
	}
}

func TestMoveRemoveClearLanes(t *testing.T) {
	env := newTestEnv(t)
	id := env.newPlan(t, "Edit")

	env.mustRun(t, "place", "--plan", id, "--slot", "tank1", "--ability", "rampart", "--at", "0")
	env.mustRun(t, "place", "--plan", id, "--slot", "tank1", "--ability", "reprisal", "--at", "10")
	env.mustRun(t, "place", "--plan", id, "--slot", "tank1", "--ability", "guardian", "--at", "20")

	out := env.mustRun(t, "lanes", "--plan", id, "--slot", "tank1")
	if !strings.Contains(out, "(2 lane(s))") || !strings.Contains(out, "lane 1") {
		t.Errorf("lanes output = %s", out)
	}

	p, _ := env.repo.GetPlan(context.Background(), id)
	var rampartID string
	for _, pl := range p.Placements {
		if pl.AbilityID == "rampart" {
			rampartID = pl.ID
		}
	}

	out = env.mustRun(t, "move", "--plan", id, rampartID, "--at", "1:40")
	if !strings.Contains(out, "Moved Rampart from 0:00 to 1:40") {
		t.Errorf("move output = %s", out)
	}

	if _, err := env.run(t, "move", "--plan", id, "missing", "--at", "5"); !errors.Is(err, board.ErrPlacementNotFound) {
		t.Errorf("move missing error = %v", err)
	}

	env.mustRun(t, "remove", "--plan", id, rampartID)
	p, _ = env.repo.GetPlan(context.Background(), id)
	if len(p.Placements) != 2 {
		t.Fatalf("after remove placements = %d, want 2", len(p.Placements))
	}

	out = env.mustRun(t, "clear", "--plan", id)
	if !strings.Contains(out, "Cleared 2 placement(s)") {
		t.Errorf("clear output = %s", out)
	}
	p, _ = env.repo.GetPlan(context.Background(), id)
	if len(p.Placements) != 0 {
		t.Errorf("after clear placements = %d, want 0", len(p.Placements))
	}
}

func TestCoverage(t *testing.T) {
	env := newTestEnv(t)
	id := env.newPlan(t, "Cover")
	env.mustRun(t, "place", "--plan", id, "--slot", "tank1", "--ability", "reprisal", "--at", "0:20")

	out := env.mustRun(t, "coverage", "--plan", id)
	if !strings.Contains(out, "Covered 1/9") {
		t.Errorf("coverage output = %s", out)
	}
	if !strings.Contains(out, "Reprisal") {
		t.Errorf("coverage output missing active ability: %s", out)
	}

	if _, err := env.run(t, "coverage", "--plan", "nope"); !errors.Is(err, plan.ErrPlanNotFound) {
		t.Errorf("coverage missing plan error = %v", err)
	}
}

func TestPlansLifecycle(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "plans", "list")
	if !strings.Contains(out, "No saved plans.") {
		t.Errorf("empty list output = %s", out)
	}

	id := env.newPlan(t, "Roundtrip")
	env.mustRun(t, "place", "--plan", id, "--slot", "tank2", "--ability", "rampart", "--at", "40")

	out = env.mustRun(t, "plans", "show", id)
	if !strings.Contains(out, "Roundtrip") || !strings.Contains(out, "tank1=PLD") || !strings.Contains(out, "Rampart") {
		t.Errorf("show output = %s", out)
	}

	exported := env.mustRun(t, "plans", "export", id, "--output", "-")
	if !strings.Contains(exported, `"planName": "Roundtrip"`) {
		t.Fatalf("export output = %s", exported)
	}

	env.mustRun(t, "plans", "delete", id)
	if _, err := env.run(t, "plans", "delete", id); !errors.Is(err, plan.ErrPlanNotFound) {
		t.Errorf("second delete error = %v", err)
	}

	file := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(file, []byte(exported), 0o644); err != nil {
		t.Fatal(err)
	}
	out = env.mustRun(t, "plans", "import", file)
	if !strings.Contains(out, "Imported "+id+" (1 placements)") {
		t.Errorf("import output = %s", out)
	}

	out = env.mustRun(t, "plans", "list", "--boss", "sample-boss")
	if !strings.Contains(out, id) {
		t.Errorf("list by boss output = %s", out)
	}
	out = env.mustRun(t, "plans", "list", "--boss", "training-dummy")
	if !strings.Contains(out, "No saved plans.") {
		t.Errorf("list other boss output = %s", out)
	}
}

func TestPlansParty(t *testing.T) {
	env := newTestEnv(t)
	id := env.newPlan(t, "Swap")
	env.mustRun(t, "place", "--plan", id, "--slot", "tank2", "--ability", "rampart", "--at", "40")
	env.mustRun(t, "place", "--plan", id, "--slot", "tank1", "--ability", "rampart", "--at", "40")

	out := env.mustRun(t, "plans", "party", id, "tank2=GNB", "dps4=")
	if !strings.Contains(out, "tank2: removed 1 placement(s)") || !strings.Contains(out, "tank2=GNB") {
		t.Errorf("party output = %s", out)
	}

	p, _ := env.repo.GetPlan(context.Background(), id)
	if len(p.Placements) != 1 || p.Placements[0].Slot != "tank1" {
		t.Errorf("placements after swap = %+v", p.Placements)
	}
	if p.Party["dps4"] != "" {
		t.Errorf("dps4 = %q, want open", p.Party["dps4"])
	}

	if _, err := env.run(t, "plans", "party", id, "bench=WAR"); !errors.Is(err, catalog.ErrUnknownSlot) {
		t.Errorf("unknown slot error = %v", err)
	}
}
