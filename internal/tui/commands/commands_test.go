package commands

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/mitplan/internal/advisor"
	"github.com/javiermolinar/mitplan/internal/board"
	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/llm"
	"github.com/javiermolinar/mitplan/internal/plan"
	"github.com/javiermolinar/mitplan/internal/summary"
	"github.com/javiermolinar/mitplan/internal/timeline"
)

type fakeRepo struct {
	plans   map[string]*plan.Plan
	saveErr error
}

func (f *fakeRepo) SavePlan(_ context.Context, p *plan.Plan) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.plans == nil {
		f.plans = map[string]*plan.Plan{}
	}
	f.plans[p.ID] = p
	return nil
}

func (f *fakeRepo) GetPlan(_ context.Context, id string) (*plan.Plan, error) {
	return f.plans[id], nil
}

func (f *fakeRepo) ListPlans(context.Context) ([]plan.Summary, error) {
	out := make([]plan.Summary, 0, len(f.plans))
	for _, p := range f.plans {
		out = append(out, plan.Summary{ID: p.ID, Name: p.Name, BossID: p.BossID, Placements: len(p.Placements)})
	}
	return out, nil
}

func (f *fakeRepo) ListPlansByBoss(context.Context, string) ([]plan.Summary, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) DeletePlan(context.Context, string) error { return errors.New("not implemented") }
func (f *fakeRepo) Close() error                             { return nil }

type fakeClient struct {
	reply string
	err   error
}

func (c *fakeClient) Chat(context.Context, []llm.Message) (string, error) {
	return c.reply, c.err
}

func (c *fakeClient) ChatJSON(ctx context.Context, messages []llm.Message, result any) error {
	out, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(out), result)
}

func TestLoadPlan(t *testing.T) {
	repo := &fakeRepo{plans: map[string]*plan.Plan{"a": {ID: "a", Name: "A", BossID: "sample-boss"}}}

	msg := LoadPlan(repo, "a")()
	loaded, ok := msg.(PlanLoadedMsg)
	if !ok || loaded.Plan.ID != "a" {
		t.Fatalf("LoadPlan(a) = %#v", msg)
	}

	msg = LoadPlan(repo, "missing")()
	errMsg, ok := msg.(ErrMsg)
	if !ok || !errors.Is(errMsg.Err, plan.ErrPlanNotFound) {
		t.Fatalf("LoadPlan(missing) = %#v", msg)
	}
}

func TestSavePlan(t *testing.T) {
	repo := &fakeRepo{}
	p := &plan.Plan{ID: "x", Name: "X", BossID: "sample-boss", Placements: []plan.Placement{{ID: "1"}}}

	msg := SavePlan(repo, p)()
	saved, ok := msg.(PlanSavedMsg)
	if !ok || saved.ID != "x" || saved.Placements != 1 {
		t.Fatalf("SavePlan() = %#v", msg)
	}

	repo.saveErr = errors.New("disk full")
	msg = SavePlan(repo, p)()
	if errMsg, ok := msg.(ErrMsg); !ok || !strings.Contains(errMsg.Err.Error(), "disk full") {
		t.Fatalf("SavePlan() with error = %#v", msg)
	}
}

func TestListPlans(t *testing.T) {
	repo := &fakeRepo{plans: map[string]*plan.Plan{"a": {ID: "a"}}}
	msg := ListPlans(repo)()
	listed, ok := msg.(PlansListedMsg)
	if !ok || len(listed.Plans) != 1 {
		t.Fatalf("ListPlans() = %#v", msg)
	}
}

func newBoard(t *testing.T) *board.Board {
	t.Helper()
	tl, err := timeline.Load("sample-boss")
	if err != nil {
		t.Fatal(err)
	}
	return board.New(catalog.MustLoad(), tl, catalog.DefaultParty())
}

func TestSuggest(t *testing.T) {
	client := &fakeClient{reply: `{"placements":[{"slot":"tank1","ability_id":"rampart","start":8,"reason":"buster"}],"notes":["ok"]}`}
	adv := advisor.New(client, "ollama", newBoard(t), zerolog.Nop())

	msg := Suggest(adv, "cover the buster", false, 1)()
	res, ok := msg.(SuggestResultMsg)
	if !ok {
		t.Fatalf("Suggest() = %#v", msg)
	}
	if len(res.Result.Accepted) != 1 || res.Result.Accepted[0].AbilityID != "rampart" {
		t.Fatalf("Accepted = %+v", res.Result.Accepted)
	}

	msg = Suggest(adv, "and again", true, 1)()
	if _, ok := msg.(SuggestResultMsg); !ok {
		t.Fatalf("Suggest(followUp) = %#v", msg)
	}

	fresh := advisor.New(client, "ollama", newBoard(t), zerolog.Nop())
	msg = Suggest(fresh, "more", true, 1)()
	if errMsg, ok := msg.(ErrMsg); !ok || !errors.Is(errMsg.Err, advisor.ErrNoSession) {
		t.Fatalf("Suggest(followUp) without session = %#v", msg)
	}
}

func TestReview(t *testing.T) {
	s := summary.Summarize(newBoard(t))

	msg := Review(&fakeClient{reply: "  Add a raidwide cooldown at 0:25.  "}, s)()
	insight, ok := msg.(InsightMsg)
	if !ok || insight.Text != "Add a raidwide cooldown at 0:25." {
		t.Fatalf("Review() = %#v", msg)
	}

	msg = Review(&fakeClient{err: errors.New("offline")}, s)()
	if _, ok := msg.(ErrMsg); !ok {
		t.Fatalf("Review() with error = %#v", msg)
	}
}
