package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestScaleColAndSpan(t *testing.T) {
	s := Scale{Offset: 10, SecondsPerCol: 2, Cols: 20}

	tests := []struct {
		name   string
		t      int
		wantC  int
		wantOK bool
	}{
		{name: "before_offset", t: 5, wantC: -1, wantOK: false},
		{name: "first", t: 10, wantC: 0, wantOK: true},
		{name: "odd_second_floors", t: 13, wantC: 1, wantOK: true},
		{name: "last", t: 49, wantC: 19, wantOK: true},
		{name: "past_end", t: 50, wantC: 20, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := s.Col(tt.t)
			if c != tt.wantC || ok != tt.wantOK {
				t.Fatalf("Col(%d) = %d, %v; want %d, %v", tt.t, c, ok, tt.wantC, tt.wantOK)
			}
		})
	}

	spans := []struct {
		start, end       int
		wantFrom, wantTo int
	}{
		{start: 10, end: 20, wantFrom: 0, wantTo: 5},
		{start: 11, end: 14, wantFrom: 0, wantTo: 2},
		{start: 0, end: 12, wantFrom: 0, wantTo: 1},
		{start: 40, end: 90, wantFrom: 15, wantTo: 20},
		{start: 0, end: 10, wantFrom: 0, wantTo: 0},
		{start: 60, end: 70, wantFrom: 0, wantTo: 0},
	}
	for _, sp := range spans {
		from, to := s.Span(sp.start, sp.end)
		if from != sp.wantFrom || to != sp.wantTo {
			t.Errorf("Span(%d, %d) = %d, %d; want %d, %d", sp.start, sp.end, from, to, sp.wantFrom, sp.wantTo)
		}
	}

	if got := s.Second(3); got != 16 {
		t.Errorf("Second(3) = %d, want 16", got)
	}
}

func TestRowWriteClips(t *testing.T) {
	r := NewRow(6, 0)
	r.Fill(1, 3, '=', 1)
	r.Write(4, "abc", 2)
	r.Write(-1, "xy", 3)
	if got := r.String(); got != "y== ab" {
		t.Fatalf("row = %q, want %q", got, "y== ab")
	}
}

func TestRowRenderGroupsRuns(t *testing.T) {
	prevProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prevProfile)
	})

	styles := []lipgloss.Style{
		lipgloss.NewStyle(),
		lipgloss.NewStyle().Background(lipgloss.Color("#112233")),
	}
	r := NewRow(5, 0)
	r.Fill(1, 4, '#', 1)

	out := r.Render(styles)
	bgSeq := "\x1b[48;2;17;34;51m"
	if strings.Count(out, bgSeq) != 1 {
		t.Fatalf("expected one styled run, got %q", out)
	}
	if !strings.Contains(out, bgSeq+"###") {
		t.Fatalf("expected run of three cells, got %q", out)
	}
}

func TestRuler(t *testing.T) {
	r := Ruler(Scale{Offset: 0, SecondsPerCol: 1, Cols: 40}, 0).String()
	if !strings.HasPrefix(r, "|0:00") {
		t.Fatalf("ruler = %q, want leading 0:00", r)
	}
	if !strings.Contains(r, "|0:10") || !strings.Contains(r, "|0:30") {
		t.Fatalf("ruler = %q, want 10s ticks", r)
	}
	if strings.Contains(r, "|0:05") {
		t.Fatalf("ruler = %q, ticks too dense", r)
	}

	zoomed := Ruler(Scale{Offset: 60, SecondsPerCol: 10, Cols: 30}, 0).String()
	if !strings.Contains(zoomed, "|2:00") || !strings.Contains(zoomed, "|4:00") || strings.Contains(zoomed, "|3:00") {
		t.Fatalf("zoomed ruler = %q", zoomed)
	}
}

func TestMarkerRowsStackCollidingNames(t *testing.T) {
	s := Scale{Offset: 0, SecondsPerCol: 1, Cols: 60}
	rows := MarkerRows([]Marker{
		{Time: 10, Name: "Tankbuster"},
		{Time: 12, Name: "Raidwide"},
		{Time: 40, Name: "Enrage"},
	}, s, 0)

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if !strings.Contains(rows[0].String(), "Tankbuster") || !strings.Contains(rows[0].String(), "Enrage") {
		t.Errorf("row 0 = %q", rows[0].String())
	}
	if !strings.Contains(rows[1].String(), "Raidwide") {
		t.Errorf("row 1 = %q", rows[1].String())
	}
	if got := strings.Index(rows[0].String(), "Tankbuster"); got != 5 {
		t.Errorf("Tankbuster starts at %d, want 5", got)
	}
}
