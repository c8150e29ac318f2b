package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/mitplan/internal/board"
	"github.com/javiermolinar/mitplan/internal/cooldown"
	"github.com/javiermolinar/mitplan/internal/timefmt"
	"github.com/javiermolinar/mitplan/internal/timeline"
	"github.com/javiermolinar/mitplan/internal/tui/view"
)

// gridTop is the number of lines above the attack markers: title and ruler.
const gridTop = 2

// gridLayout is what the board area shows for the current state.
type gridLayout struct {
	scale   view.Scale
	markers []view.Row
	slots   []slotLayout
}

type slotLayout struct {
	slot  string
	lanes int  // lines of effect bars
	zone  bool // a zone line follows the bars
}

func (s slotLayout) height() int {
	if s.zone {
		return s.lanes + 1
	}
	return s.lanes
}

func (m Model) gridCols() int {
	w := m.width
	if w == 0 {
		w = 80
	}
	return max(w-m.styles.AppStyle.GetHorizontalFrameSize()-rowHeaderWidth, 0)
}

func (m Model) scale() view.Scale {
	return view.Scale{Offset: m.offset, SecondsPerCol: m.secondsPerCol(), Cols: m.gridCols()}
}

func (m Model) markers() []view.Marker {
	attacks := m.board.Timeline.Attacks
	out := make([]view.Marker, len(attacks))
	for i, a := range attacks {
		style := cellPhysical
		if a.Type == timeline.Magical {
			style = cellMagical
		}
		out[i] = view.Marker{Time: a.Time, Name: a.Name, Style: style}
	}
	return out
}

func (m Model) gridLayout() gridLayout {
	s := m.scale()
	l := gridLayout{
		scale:   s,
		markers: view.MarkerRows(m.markers(), s, cellEmpty),
		slots:   make([]slotLayout, len(m.catalog.Slots)),
	}
	placing := m.mode == ModePlace || m.mode == ModeMove
	for i, slot := range m.catalog.Slots {
		lanes := 1
		if ls := m.board.Lanes(slot); len(ls) > 0 {
			lanes = ls[0].TotalLanes
		}
		l.slots[i] = slotLayout{slot: slot, lanes: lanes, zone: placing && i == m.row}
	}
	return l
}

// hit maps a terminal cell to a slot row and a fight second.
func (m Model) hit(x, y int) (row, second int, ok bool) {
	l := m.gridLayout()
	col := x - m.styles.AppStyle.GetPaddingLeft() - rowHeaderWidth
	if col < 0 || col >= l.scale.Cols {
		return 0, 0, false
	}
	second = min(l.scale.Second(col), m.board.Timeline.Duration)

	line := y - m.styles.AppStyle.GetPaddingTop() - gridTop - len(l.markers)
	if line < 0 {
		return 0, 0, false
	}
	for i, s := range l.slots {
		if line < s.height() {
			return i, second, true
		}
		line -= s.height()
	}
	return 0, 0, false
}

// renderGrid renders the ruler, the attack markers and the slot rows.
func (m Model) renderGrid(l gridLayout) []string {
	colors := make([]string, 0, len(m.catalog.Slots))
	for _, slot := range m.catalog.Slots {
		if j, err := m.catalog.Job(m.board.Party[slot]); err == nil {
			colors = append(colors, j.Color)
		}
	}
	table, jobStyles := m.styles.cellTable(colors)

	cursorCol, cursorOn := l.scale.Col(m.cursor)
	header := func(text string, active bool) string {
		style := m.styles.RowHeaderStyle
		if active {
			style = m.styles.RowActiveStyle
		}
		return style.Render(ansi.Truncate(text, rowHeaderWidth-1, "…"))
	}

	ruler := view.Ruler(l.scale, cellRuler)
	if cursorOn {
		ruler.Paint(cursorCol, cursorCol+1, cellCursor)
	}
	lines := []string{header("", false) + ruler.Render(table)}
	for i, r := range l.markers {
		label := ""
		if i == 0 {
			label = "boss"
		}
		lines = append(lines, header(label, false)+r.Render(table))
	}

	conflicts := make(map[string]bool)
	for _, id := range m.board.Conflicts() {
		conflicts[id] = true
	}
	for i, s := range l.slots {
		rows := m.slotRows(s, l.scale, jobStyles, conflicts)
		active := i == m.row
		if active && cursorOn {
			target := rows[0]
			if s.zone {
				target = rows[len(rows)-1]
			}
			markCursor(target, cursorCol)
		}
		for j, r := range rows {
			text := ""
			if j == 0 {
				text = m.catalog.SlotLabel(s.slot) + " " + m.board.Party[s.slot]
			}
			lines = append(lines, header(text, active)+r.Render(table))
		}
	}
	return lines
}

// slotRows draws the effect bars of one slot, lane by lane, with the
// cooldown of single-charge abilities trailing each bar.
func (m Model) slotRows(s slotLayout, sc view.Scale, jobStyles map[string]int, conflicts map[string]bool) []view.Row {
	rows := make([]view.Row, s.height())
	for i := range rows {
		rows[i] = view.NewRow(sc.Cols, cellEmpty)
	}

	entries := m.board.SlotEntries(s.slot)
	lanes := m.board.Lanes(s.slot)
	for i, e := range entries {
		if e.Ability.MaxCharges() == 1 {
			from, to := sc.Span(e.End(), e.Start+e.Ability.Cooldown)
			rows[lanes[i].Lane].Fill(from, to, '─', cellCooldown)
		}
	}
	for i, e := range entries {
		style := jobStyles[e.Ability.Color] + i%2
		switch {
		case e.ID == m.movingID:
			style = cellCooldown
		case conflicts[e.ID]:
			style = cellPreviewBad
		}
		drawBar(rows[lanes[i].Lane], sc, e.Start, e.End(), e.Ability.Name, style)
	}

	if s.zone {
		drawZones(rows[len(rows)-1], sc, m.preview)
		style := cellPreview
		if !m.preview.Valid() {
			style = cellPreviewBad
		}
		drawBar(rows[len(rows)-1], sc, m.preview.Start, m.preview.Start+m.pending.Duration, m.pending.Name, style)
	}
	return rows
}

func drawBar(r view.Row, sc view.Scale, start, end int, name string, style int) {
	from, to := sc.Span(start, end)
	if from == to {
		return
	}
	r.Fill(from, to, ' ', style)
	if to-from > 2 {
		r.Write(from+1, ansi.Truncate(name, to-from-2, ""), style)
	}
}

// drawZones shades each column by whether its first second is a legal start.
func drawZones(r view.Row, sc view.Scale, p board.Preview) {
	for c := range r {
		if cooldown.InAny(p.Zones, sc.Second(c)) {
			r[c] = view.Cell{Ch: '·', Style: cellValid}
		} else {
			r[c] = view.Cell{Ch: ' ', Style: cellBlocked}
		}
	}
}

func markCursor(r view.Row, col int) {
	if col < 0 || col >= len(r) {
		return
	}
	if r[col].Ch == ' ' {
		r[col].Ch = '│'
	}
	r[col].Style = cellCursor
}

// renderTitle renders the plan name, the fight and the cursor position.
func (m Model) renderTitle(width int) string {
	st := m.styles
	name := st.TitleStyle.Render("mitplan " + m.plan.Name)
	if m.dirty {
		name += st.DirtyStyle.Render(" *")
	}
	tl := m.board.Timeline
	meta := st.TitleMetaStyle.Render(fmt.Sprintf("  %s (%s)  cursor %s  %ds/col",
		tl.Name, timefmt.Format(tl.Duration), timefmt.Format(m.cursor), m.secondsPerCol()))
	return lipgloss.NewStyle().Width(width).Background(st.colorBg).Render(ansi.Truncate(name+meta, width, "…"))
}
