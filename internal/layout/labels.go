package layout

// Label is a named marker at a point in time, such as a boss attack.
type Label struct {
	Time int
	Name string
}

// LabelLane is a label annotated with its display lane.
type LabelLane struct {
	Label
	Lane int
}

// Metrics estimates how wide a label renders.
type Metrics struct {
	CharWidth float64
	Padding   float64
}

// PixelMetrics matches a proportional font in a browser-like canvas.
var PixelMetrics = Metrics{CharWidth: 7, Padding: 16}

// CellMetrics measures labels in terminal cells.
var CellMetrics = Metrics{CharWidth: 1, Padding: 1}

// Width returns the estimated width of name.
func (m Metrics) Width(name string) float64 {
	return float64(len(name))*m.CharWidth + m.Padding
}

// AssignLabelLanes stacks labels centred on their time so that no two labels
// in the same lane collide. unitsPerSecond scales time to the same units as
// the metrics and offset shifts every label, e.g. past a row header.
func AssignLabelLanes(labels []Label, unitsPerSecond, offset float64, m Metrics) ([]LabelLane, int) {
	type extent struct{ left, right float64 }

	var lanes [][]extent
	out := make([]LabelLane, len(labels))
	for i, l := range labels {
		centre := float64(l.Time)*unitsPerSecond + offset
		half := m.Width(l.Name) / 2
		e := extent{left: centre - half, right: centre + half}

		lane := len(lanes)
		for j, members := range lanes {
			free := true
			for _, o := range members {
				if !(e.right <= o.left || e.left >= o.right) {
					free = false
					break
				}
			}
			if free {
				lane = j
				break
			}
		}
		if lane == len(lanes) {
			lanes = append(lanes, nil)
		}
		lanes[lane] = append(lanes[lane], e)
		out[i] = LabelLane{Label: l, Lane: lane}
	}
	return out, len(lanes)
}
