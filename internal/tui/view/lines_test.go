package view

import (
	"strings"
	"testing"

	"github.com/javiermolinar/mitplan/internal/advisor"
	"github.com/javiermolinar/mitplan/internal/board"
	"github.com/javiermolinar/mitplan/internal/catalog"
	"github.com/javiermolinar/mitplan/internal/summary"
	"github.com/javiermolinar/mitplan/internal/timeline"
)

func TestRenderLinesWrapsAndStyles(t *testing.T) {
	lines := []Line{
		{Text: "PLACEMENTS", Style: LineSection},
		{Text: "one two three four", Style: LineBody},
	}
	styles := LineStyles{Body: markRenderer("b:"), Section: markRenderer("s:")}

	out := RenderLines(lines, styles, 10)
	want := "s:PLACEMENTS\nb:one two\nb:three four"
	if out != want {
		t.Fatalf("RenderLines() = %q, want %q", out, want)
	}
}

func TestLinesText(t *testing.T) {
	got := LinesText([]Line{{Text: "a"}, {Text: ""}, {Text: "b", Style: LineMeta}})
	if got != "a\n\nb" {
		t.Fatalf("LinesText() = %q", got)
	}
}

func sampleBoard(t *testing.T) *board.Board {
	t.Helper()
	tl, err := timeline.Load("sample-boss")
	if err != nil {
		t.Fatal(err)
	}
	return board.New(catalog.MustLoad(), tl, catalog.DefaultParty())
}

func TestBuildCoverageLines(t *testing.T) {
	b := sampleBoard(t)
	reprisal, err := b.Ability("tank1", "reprisal")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Place(reprisal, 20); err != nil {
		t.Fatal(err)
	}
	s := summary.Summarize(b)
	s.Insight = "Cover 0:45."

	text := LinesText(BuildCoverageLines(s))
	for _, want := range []string{"Covered 1/9 attacks with 1 placement(s)", "PARTY", "INSIGHT", "Cover 0:45."} {
		if !strings.Contains(text, want) {
			t.Errorf("coverage lines missing %q:\n%s", want, text)
		}
	}

	table := RenderCoverageTable(s, 0, CoverageStyles{})
	for _, want := range []string{"Attack", "Reprisal", "none"} {
		if !strings.Contains(table, want) {
			t.Errorf("coverage table missing %q:\n%s", want, table)
		}
	}
}

func TestBuildSuggestLines(t *testing.T) {
	r := &advisor.Result{
		Accepted: []advisor.Suggestion{{Slot: "tank1", AbilityName: "Rampart", JobID: "PLD", Start: 8, Reason: "buster"}},
		Notes:    []string{"Keep reprisal for 0:25"},
		ValidationErrors: []advisor.ValidationError{
			{Index: 1, Field: "cooldown", Message: "rampart is on cooldown"},
		},
		Attempts: 2,
	}

	text := LinesText(BuildSuggestLines(r, "cover the buster"))
	for _, want := range []string{`"cover the buster" (2 attempt(s))`, "REJECTED", "Placement 1: cooldown", "0:08  tank1  Rampart (PLD) - buster", "NOTES"} {
		if !strings.Contains(text, want) {
			t.Errorf("suggest lines missing %q:\n%s", want, text)
		}
	}
}
