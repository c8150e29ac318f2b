package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/mitplan/internal/layout"
	"github.com/javiermolinar/mitplan/internal/timefmt"
)

// Scale maps fight seconds onto grid columns.
type Scale struct {
	Offset        int // first visible second
	SecondsPerCol int
	Cols          int
}

func (s Scale) step() int {
	return max(s.SecondsPerCol, 1)
}

// Col returns the column showing second t and whether it is on screen.
func (s Scale) Col(t int) (int, bool) {
	if t < s.Offset {
		return -1, false
	}
	c := (t - s.Offset) / s.step()
	return c, c < s.Cols
}

// Second returns the first second shown in column c.
func (s Scale) Second(c int) int {
	return s.Offset + c*s.step()
}

// End returns the first second past the visible window.
func (s Scale) End() int {
	return s.Second(s.Cols)
}

// Span returns the half-open column range covering [start, end), clipped
// to the screen. An empty range has from == to.
func (s Scale) Span(start, end int) (from, to int) {
	if end <= start || end <= s.Offset || start >= s.End() {
		return 0, 0
	}
	step := s.step()
	from = (max(start, s.Offset) - s.Offset) / step
	to = (min(end, s.End()) - s.Offset + step - 1) / step
	return from, min(to, s.Cols)
}

// Cell is one grid column: a rune and an index into a style table.
type Cell struct {
	Ch    rune
	Style int
}

// Row is one terminal line of the grid.
type Row []Cell

// NewRow returns a blank row of width cells.
func NewRow(width, style int) Row {
	r := make(Row, max(width, 0))
	r.Fill(0, len(r), ' ', style)
	return r
}

// Fill sets columns [from, to) to ch in style.
func (r Row) Fill(from, to int, ch rune, style int) {
	for c := max(from, 0); c < min(to, len(r)); c++ {
		r[c] = Cell{Ch: ch, Style: style}
	}
}

// Paint restyles columns [from, to) and keeps their runes.
func (r Row) Paint(from, to, style int) {
	for c := max(from, 0); c < min(to, len(r)); c++ {
		r[c].Style = style
	}
}

// Write puts text at column at, clipped to the row.
func (r Row) Write(at int, text string, style int) {
	for i, ch := range []rune(text) {
		if c := at + i; c >= 0 && c < len(r) {
			r[c] = Cell{Ch: ch, Style: style}
		}
	}
}

// Render renders runs of equally styled cells with the style table.
func (r Row) Render(styles []lipgloss.Style) string {
	var b strings.Builder
	for i := 0; i < len(r); {
		j := i
		var run strings.Builder
		for j < len(r) && r[j].Style == r[i].Style {
			run.WriteRune(r[j].Ch)
			j++
		}
		style := lipgloss.NewStyle()
		if s := r[i].Style; s >= 0 && s < len(styles) {
			style = styles[s]
		}
		b.WriteString(style.Render(run.String()))
		i = j
	}
	return b.String()
}

// String returns the row's runes without styling.
func (r Row) String() string {
	runes := make([]rune, len(r))
	for i, c := range r {
		runes[i] = c.Ch
	}
	return string(runes)
}

var rulerTicks = []int{5, 10, 15, 30, 60, 120, 300}

// Ruler returns a row of time labels. Ticks are spaced so that labels
// never touch.
func Ruler(s Scale, style int) Row {
	row := NewRow(s.Cols, style)
	tick := rulerTicks[len(rulerTicks)-1]
	for _, t := range rulerTicks {
		if t/s.step() >= 7 {
			tick = t
			break
		}
	}

	first := (s.Offset + tick - 1) / tick * tick
	for t := first; t < s.End(); t += tick {
		c, _ := s.Col(t)
		label := "|" + timefmt.Format(t)
		if c+len(label) > s.Cols {
			break
		}
		row.Write(c, label, style)
	}
	return row
}

// Marker is a named point on the grid, such as a boss attack.
type Marker struct {
	Time  int
	Name  string
	Style int
}

// MarkerRows stacks marker names centred on their column so that no two
// names on the same row collide. Markers off screen are skipped.
func MarkerRows(markers []Marker, s Scale, blank int) []Row {
	labels := make([]layout.Label, len(markers))
	for i, m := range markers {
		labels[i] = layout.Label{Time: m.Time, Name: m.Name}
	}
	perSecond := 1 / float64(s.step())
	lanes, total := layout.AssignLabelLanes(labels, perSecond, -float64(s.Offset)*perSecond, layout.CellMetrics)

	rows := make([]Row, max(total, 1))
	for i := range rows {
		rows[i] = NewRow(s.Cols, blank)
	}
	for i, l := range lanes {
		c, ok := s.Col(l.Time)
		if !ok {
			continue
		}
		name := []rune(l.Name)
		rows[l.Lane].Write(c-len(name)/2, l.Name, markers[i].Style)
	}
	return rows
}
