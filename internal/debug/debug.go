package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Stats is the scene information shown under the FPS counter.
type Stats struct {
	IntroDone      bool
	TexturesLoaded int
	TexturesTotal  int
}

// Overlay draws runtime information in the top-right corner. All lines are off by default.
type Overlay struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowScene    bool

	frameCount uint32
	lines      []string
	memStats   runtime.MemStats
}

// New returns an overlay with everything hidden.
func New() *Overlay {
	return &Overlay{}
}

// Enabled reports whether any line is shown.
func (o *Overlay) Enabled() bool {
	return o.ShowFPS || o.ShowMemAlloc || o.ShowScene
}

// Draw renders the enabled lines. Call after EndMode3D. Text is rebuilt every updateInterval
// frames.
func (o *Overlay) Draw(s Stats) {
	if !o.Enabled() {
		return
	}
	o.frameCount++
	if o.lines == nil || o.frameCount%updateInterval == 0 {
		o.lines = o.text(s)
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, line := range o.lines {
		w := rl.MeasureText(line, fontSize)
		rl.DrawText(line, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}

func (o *Overlay) text(s Stats) []string {
	lines := make([]string, 0, 4)
	if o.ShowFPS {
		lines = append(lines, fmt.Sprintf("FPS: %d", rl.GetFPS()))
	}
	if o.ShowMemAlloc {
		runtime.ReadMemStats(&o.memStats)
		lines = append(lines, fmt.Sprintf("Mem: %.2f MiB", float64(o.memStats.Alloc)/(1024*1024)))
	}
	if o.ShowScene {
		lines = append(lines, SceneLines(s)...)
	}
	return lines
}

// SceneLines formats the scene part of the overlay.
func SceneLines(s Stats) []string {
	intro := "panning"
	if s.IntroDone {
		intro = "done"
	}
	return []string{
		"Intro: " + intro,
		fmt.Sprintf("Textures: %d/%d", s.TexturesLoaded, s.TexturesTotal),
	}
}
