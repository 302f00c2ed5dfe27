package layout

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	// ErrInvalidBookcase is returned when bookcase dimensions or shelf count are out of range.
	ErrInvalidBookcase = errors.New("invalid bookcase")
	// ErrShelfRow is returned when a shelf row is outside [0, Shelves) or used twice.
	ErrShelfRow = errors.New("invalid shelf row")
	// ErrInvalidFigure is returned when a figure box has a non-positive dimension.
	ErrInvalidFigure = errors.New("invalid figure")
)

// Bookcase holds the fixed outer dimensions of the case. Shelves is the number of shelf panels,
// including the floor and the top.
type Bookcase struct {
	Shelves int
	Height  float32
	Width   float32
	Depth   float32
}

// Figure is one catalog item drawn as a box. Image is an opaque asset reference (file path or URL);
// Color is used on every face that is not textured. ShiftOverride is the horizontal room this figure
// reserves before the next figure on the same shelf.
type Figure struct {
	Name          string
	Image         string
	Color         color.RGBA
	BoxWidth      float32
	BoxHeight     float32
	BoxDepth      float32
	ShiftOverride float32
}

// Shelf is one row of figures. Row is 0-based counted from the top of the bookcase.
type Shelf struct {
	Row     int
	Figures []Figure
}

// Config is the complete static input of the layout engine.
type Config struct {
	Bookcase Bookcase
	Shelves  []Shelf
}

// Validate reports the first problem with the bookcase, a shelf row or a figure box.
func (c Config) Validate() error {
	b := c.Bookcase
	if b.Shelves < 2 {
		return fmt.Errorf("%w: shelf count %d, need at least 2", ErrInvalidBookcase, b.Shelves)
	}
	if b.Height <= 0 || b.Width <= 0 || b.Depth <= 0 {
		return fmt.Errorf("%w: dimensions %gx%gx%g must be positive", ErrInvalidBookcase, b.Width, b.Height, b.Depth)
	}
	if b.Height <= ShelfThickness {
		return fmt.Errorf("%w: height %g leaves no usable span", ErrInvalidBookcase, b.Height)
	}
	seen := make(map[int]bool, len(c.Shelves))
	for _, s := range c.Shelves {
		if s.Row < 0 || s.Row >= b.Shelves {
			return fmt.Errorf("%w: row %d not in [0, %d)", ErrShelfRow, s.Row, b.Shelves)
		}
		if seen[s.Row] {
			return fmt.Errorf("%w: row %d listed twice", ErrShelfRow, s.Row)
		}
		seen[s.Row] = true
		for i, f := range s.Figures {
			if f.BoxWidth <= 0 || f.BoxHeight <= 0 || f.BoxDepth <= 0 {
				return fmt.Errorf("%w: row %d figure %d (%q) has box %gx%gx%g", ErrInvalidFigure, s.Row, i, f.Name, f.BoxWidth, f.BoxHeight, f.BoxDepth)
			}
		}
	}
	return nil
}

// FigureCount returns the total number of figures across all shelves.
func (c Config) FigureCount() int {
	n := 0
	for _, s := range c.Shelves {
		n += len(s.Figures)
	}
	return n
}
