// Package layout turns a bookcase description and its figure catalog into positioned boxes:
// shelf panels, two side panels, one back panel, and one box per figure.
//
// Layout is a pure function of Config. Building the same config twice yields identical
// coordinates, and nothing here touches a window or GPU.
//
// # Rows
//
// Shelf rows are 0-based and counted from the top: row 0 is the highest shelf and row
// Shelves-1 sits on the floor at y = 0. Figures are attached to the row of the shelf that
// lists them, so catalog order and render order agree.
//
// # Horizontal placement
//
// A figure's horizontal position is the left edge of its box. The first figure on a shelf
// starts EdgeInset from the bookcase's left edge; every later figure starts at the previous
// position plus the previous figure's ShiftOverride plus Gap. A figure's own ShiftOverride
// therefore only moves the figures after it.
package layout

import (
	"fmt"

	"github.com/jinzhu/copier"
)

const (
	// ShelfThickness is the panel thickness and the part of Height that is not usable span.
	ShelfThickness float32 = 0.1
	// ShelfZ is the depth center of shelves and side panels.
	ShelfZ float32 = -0.55
	// SideThickness is the width of the side panels.
	SideThickness float32 = 0.1
	// BackThickness is the depth of the back panel.
	BackThickness float32 = 0.05

	// Clearance lifts figures off the shelf center plane so they rest on its top surface.
	Clearance float32 = 0.05
	// Gap is the fixed space added between consecutive figures on a shelf.
	Gap float32 = 0.1
	// EdgeInset is the distance from the bookcase's left edge to the first figure.
	EdgeInset float32 = 0.15

	// DepthThreshold splits figures into the two depth buckets.
	DepthThreshold float32 = 0.3
	// ThinFigureZ is the depth of figures with BoxDepth < DepthThreshold (pushed to the back).
	ThinFigureZ float32 = -1.3
	// DeepFigureZ is the depth of all other figures.
	DeepFigureZ float32 = -0.9
)

// PanelKind names a structural slab of the bookcase.
type PanelKind int

const (
	PanelShelf PanelKind = iota
	PanelLeft
	PanelRight
	PanelBack
)

func (k PanelKind) String() string {
	switch k {
	case PanelShelf:
		return "shelf"
	case PanelLeft:
		return "left"
	case PanelRight:
		return "right"
	case PanelBack:
		return "back"
	}
	return fmt.Sprintf("PanelKind(%d)", int(k))
}

// Panel is one wooden slab. Row is the shelf row for PanelShelf and -1 otherwise.
// Outline requests an edge wireframe at the same position.
type Panel struct {
	Kind    PanelKind
	Row     int
	Box     Box
	Outline bool
}

// Placement is a figure positioned on its shelf.
type Placement struct {
	Row    int
	Index  int
	X      float32
	Figure Figure
	Box    Box
	Faces  [FaceCount]Face
}

// Layout is the result of Build.
type Layout struct {
	Bookcase Bookcase
	Panels   []Panel
	Figures  []Placement

	config Config
}

// Config returns the snapshot of the configuration the layout was built from.
func (l *Layout) Config() Config {
	return l.config
}

// UsableHeight is the vertical span shelves are distributed over.
func UsableHeight(b Bookcase) float32 {
	return b.Height - ShelfThickness
}

// Spacing is the vertical distance between adjacent shelves.
func Spacing(b Bookcase) float32 {
	return UsableHeight(b) / float32(b.Shelves-1)
}

// ShelfY is the height of the shelf in the given row. It multiplies before dividing (in float64)
// so the top row lands exactly on the usable height and no error accumulates across rows.
func ShelfY(b Bookcase, row int) float32 {
	steps := float64(b.Shelves - 1 - row)
	return float32(float64(UsableHeight(b)) * steps / float64(b.Shelves-1))
}

// Center is the middle of the bookcase's usable span; the camera looks at it.
func Center(b Bookcase) Vec3 {
	return Vec3{0, UsableHeight(b) / 2, ShelfZ}
}

// FigureZ returns the depth bucket for a figure.
func FigureZ(boxDepth float32) float32 {
	if boxDepth < DepthThreshold {
		return ThinFigureZ
	}
	return DeepFigureZ
}

// Build validates cfg and computes every panel and figure placement. The config is deep-copied
// first so later changes to the caller's slices never reach the returned Layout.
func Build(cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var snap Config
	if err := copier.CopyWithOption(&snap, &cfg, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("layout: copy config: %w", err)
	}

	b := snap.Bookcase
	l := &Layout{
		Bookcase: b,
		Panels:   buildPanels(b),
		Figures:  make([]Placement, 0, snap.FigureCount()),
		config:   snap,
	}
	for _, s := range snap.Shelves {
		l.Figures = append(l.Figures, placeShelf(b, s)...)
	}
	return l, nil
}

func buildPanels(b Bookcase) []Panel {
	usable := UsableHeight(b)
	panels := make([]Panel, 0, b.Shelves+3)
	for row := 0; row < b.Shelves; row++ {
		panels = append(panels, Panel{
			Kind:    PanelShelf,
			Row:     row,
			Box:     Box{Center: Vec3{0, ShelfY(b, row), ShelfZ}, Size: Vec3{b.Width, ShelfThickness, b.Depth}},
			Outline: true,
		})
	}

	// Sides drop by half a shelf thickness so their bottom is flush with the floor shelf.
	sideY := b.Height/2 - ShelfThickness/2
	sideSize := Vec3{SideThickness, b.Height, b.Depth}
	panels = append(panels,
		Panel{Kind: PanelLeft, Row: -1, Box: Box{Center: Vec3{-b.Width / 2, sideY, ShelfZ}, Size: sideSize}, Outline: true},
		Panel{Kind: PanelRight, Row: -1, Box: Box{Center: Vec3{b.Width / 2, sideY, ShelfZ}, Size: sideSize}, Outline: true},
	)

	backZ := ShelfZ - b.Depth/2 + BackThickness/2
	panels = append(panels, Panel{
		Kind:    PanelBack,
		Row:     -1,
		Box:     Box{Center: Vec3{0, usable / 2, backZ}, Size: Vec3{b.Width, usable, BackThickness}},
		Outline: true,
	})
	return panels
}

func placeShelf(b Bookcase, s Shelf) []Placement {
	out := make([]Placement, 0, len(s.Figures))
	shelfY := ShelfY(b, s.Row)
	x := -b.Width/2 + EdgeInset
	for i, f := range s.Figures {
		if i > 0 {
			prev := s.Figures[i-1]
			x += prev.ShiftOverride + Gap
		}
		size := Vec3{f.BoxWidth, f.BoxHeight, f.BoxDepth}
		center := Vec3{
			X: x + f.BoxWidth/2,
			Y: shelfY + f.BoxHeight/2 + Clearance,
			Z: FigureZ(f.BoxDepth),
		}
		out = append(out, Placement{
			Row:    s.Row,
			Index:  i,
			X:      x,
			Figure: f,
			Box:    Box{Center: center, Size: size},
			Faces:  figureFaces(f),
		})
	}
	return out
}

// Bounds returns the box enclosing every panel and figure.
func (l *Layout) Bounds() Box {
	var out Box
	first := true
	grow := func(b Box) {
		if first {
			out, first = b, false
			return
		}
		out = out.Union(b)
	}
	for _, p := range l.Panels {
		grow(p.Box)
	}
	for _, f := range l.Figures {
		grow(f.Box)
	}
	return out
}

// Shelf returns the placements on one row in catalog order.
func (l *Layout) Shelf(row int) []Placement {
	var out []Placement
	for _, p := range l.Figures {
		if p.Row == row {
			out = append(out, p)
		}
	}
	return out
}
