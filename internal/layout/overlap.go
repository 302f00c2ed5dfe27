package layout

import (
	"fmt"

	"github.com/chewxy/math32"
)

// OverlapKind says what a figure collides with.
type OverlapKind int

const (
	// OverlapFigure is two figures on the same shelf sharing horizontal span.
	OverlapFigure OverlapKind = iota
	// OverlapPanel is a figure box cutting into a panel, usually the shelf above.
	OverlapPanel
	// OverlapOutside is a figure reaching above the top of the bookcase, such as anything
	// standing on the top shelf.
	OverlapOutside
)

func (k OverlapKind) String() string {
	switch k {
	case OverlapFigure:
		return "figure"
	case OverlapPanel:
		return "panel"
	case OverlapOutside:
		return "outside"
	}
	return fmt.Sprintf("OverlapKind(%d)", int(k))
}

// Overlap is one collision found in a layout. A and B are shelf indexes (Placement.Index) on Row;
// B is only set for OverlapFigure and is -1 otherwise. Panel is set for OverlapPanel. Depth is
// how far the boxes interpenetrate, or for OverlapOutside how far the figure rises above the case.
type Overlap struct {
	Kind  OverlapKind
	Row   int
	A, B  int
	Panel Panel
	Depth float32
}

// MaxFigureHeight is the tallest box that fits between a shelf and the one above it.
func MaxFigureHeight(b Bookcase) float32 {
	return Spacing(b) - ShelfThickness/2 - Clearance
}

// CaseTop is the height of the top surface of the highest shelf.
func CaseTop(b Bookcase) float32 {
	return ShelfY(b, 0) + ShelfThickness/2
}

// Overlaps lists every collision in the layout: same-shelf figures that intersect on X, figures
// that cut into a panel, and figures that rise above the case. A catalog where every figure's
// BoxWidth fits in ShiftOverride+Gap, every BoxHeight is at most MaxFigureHeight and no figure
// stands on row 0 produces none.
func (l *Layout) Overlaps() []Overlap {
	var out []Overlap
	for i := 0; i < len(l.Figures); i++ {
		a := l.Figures[i]
		for j := i + 1; j < len(l.Figures); j++ {
			b := l.Figures[j]
			if a.Row != b.Row || !a.Box.IntersectsX(b.Box) {
				continue
			}
			x, _, _ := overlap(a.Box, b.Box)
			out = append(out, Overlap{Kind: OverlapFigure, Row: a.Row, A: a.Index, B: b.Index, Depth: x})
		}
	}

	top := CaseTop(l.Bookcase)
	for _, f := range l.Figures {
		for _, p := range l.Panels {
			if !f.Box.Intersects(p.Box) {
				continue
			}
			out = append(out, Overlap{Kind: OverlapPanel, Row: f.Row, A: f.Index, B: -1, Panel: p, Depth: penetration(f.Box, p.Box)})
		}
		if above := f.Box.Max().Y - top; above > touchEpsilon {
			out = append(out, Overlap{Kind: OverlapOutside, Row: f.Row, A: f.Index, B: -1, Depth: above})
		}
	}
	return out
}

// penetration is the shallowest axis of overlap, the distance needed to separate the boxes.
func penetration(a, b Box) float32 {
	x, y, z := overlap(a, b)
	return math32.Min(x, math32.Min(y, z))
}
