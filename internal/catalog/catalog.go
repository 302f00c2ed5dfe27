// Package catalog reads the bookcase and figure tables from YAML.
//
// A catalog looks like:
//
//	bookcase: {shelves: 6, height: 5, width: 7, depth: 2}
//	shelves:
//	  - row: 1
//	    figures:
//	      - name: knight
//	        image: figures/knight.png
//	        color: "#6b4f2a"
//	        boxWidth: 0.6
//	        boxHeight: 0.8
//	        boxDepth: 0.4
//	        shiftOverride: 0.7
//
// Rows are 0-based from the top shelf. Row 0 is the roof of the case, so figures normally start
// on row 1. Relative image paths are resolved against the directory
// of the catalog file; http(s) URLs are kept as they are.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"figure-shelf/internal/download"
	"figure-shelf/internal/layout"
)

//go:embed default.yaml
var defaultCatalog []byte

// DefaultColor fills faces of figures that do not declare a color.
var DefaultColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}

type document struct {
	Bookcase bookcaseDoc `yaml:"bookcase"`
	Shelves  []shelfDoc  `yaml:"shelves"`
}

type bookcaseDoc struct {
	Shelves int     `yaml:"shelves"`
	Height  float32 `yaml:"height"`
	Width   float32 `yaml:"width"`
	Depth   float32 `yaml:"depth"`
}

type shelfDoc struct {
	Row     int         `yaml:"row"`
	Figures []figureDoc `yaml:"figures"`
}

type figureDoc struct {
	Name          string  `yaml:"name"`
	Image         string  `yaml:"image"`
	Color         string  `yaml:"color,omitempty"`
	BoxWidth      float32 `yaml:"boxWidth"`
	BoxHeight     float32 `yaml:"boxHeight"`
	BoxDepth      float32 `yaml:"boxDepth"`
	ShiftOverride float32 `yaml:"shiftOverride"`
}

// Default returns the catalog compiled into the binary. Its image paths are relative to the
// working directory.
func Default() (layout.Config, error) {
	cfg, err := Parse(defaultCatalog, "")
	if err != nil {
		return layout.Config{}, fmt.Errorf("catalog: default: %w", err)
	}
	return cfg, nil
}

// Load reads and validates the catalog at path.
func Load(path string) (layout.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.Config{}, fmt.Errorf("catalog: %w", err)
	}
	cfg, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return layout.Config{}, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML catalog. Unknown keys are rejected. baseDir is prepended to relative
// image paths; pass "" to keep them as written.
func Parse(data []byte, baseDir string) (layout.Config, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return layout.Config{}, errors.New("empty catalog")
		}
		return layout.Config{}, err
	}

	cfg := layout.Config{
		Bookcase: layout.Bookcase{
			Shelves: doc.Bookcase.Shelves,
			Height:  doc.Bookcase.Height,
			Width:   doc.Bookcase.Width,
			Depth:   doc.Bookcase.Depth,
		},
		Shelves: make([]layout.Shelf, 0, len(doc.Shelves)),
	}
	for _, s := range doc.Shelves {
		shelf := layout.Shelf{Row: s.Row, Figures: make([]layout.Figure, 0, len(s.Figures))}
		for _, f := range s.Figures {
			c, err := ParseColor(f.Color)
			if err != nil {
				return layout.Config{}, fmt.Errorf("row %d figure %q: %w", s.Row, f.Name, err)
			}
			shelf.Figures = append(shelf.Figures, layout.Figure{
				Name:          f.Name,
				Image:         resolveImage(baseDir, f.Image),
				Color:         c,
				BoxWidth:      f.BoxWidth,
				BoxHeight:     f.BoxHeight,
				BoxDepth:      f.BoxDepth,
				ShiftOverride: f.ShiftOverride,
			})
		}
		cfg.Shelves = append(cfg.Shelves, shelf)
	}
	if err := cfg.Validate(); err != nil {
		return layout.Config{}, err
	}
	return cfg, nil
}

// ParseColor accepts "#rrggbb", "#rgb", or "" (DefaultColor).
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultColor, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func resolveImage(baseDir, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || baseDir == "" || download.IsRemote(ref) || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(baseDir, ref)
}
