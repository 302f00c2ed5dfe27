// Package camera holds the viewer's camera state: the orbit controls, the intro pan, and the
// viewport. Nothing here draws; graphics reads a View each frame.
package camera

import "figure-shelf/internal/layout"

// DefaultFovy is the vertical field of view in degrees.
const DefaultFovy float32 = 75

// Viewport is the size of the render surface in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Aspect returns width/height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// View is everything a renderer needs to set up the projection for one frame.
type View struct {
	Position layout.Vec3
	Target   layout.Vec3
	Up       layout.Vec3
	Fovy     float32
	Aspect   float32
	Viewport Viewport
}

// Rig combines the orbit controls with the intro pan. While the intro runs it owns the camera
// height and user input is dropped; afterwards the orbit controls have full control.
type Rig struct {
	Orbit    *Orbit
	Intro    *Intro
	Viewport Viewport
	Fovy     float32
}

// NewRig places the camera in front of the bookcase, IntroLift above its center, looking at the
// center, and prepares the pan up to IntroStopBelowTop under the top.
func NewRig(b layout.Bookcase, vp Viewport, panSpeed float32) *Rig {
	center := layout.Center(b)
	start := layout.Vec3{X: 0, Y: center.Y + IntroLift, Z: b.Width}

	orbit := NewOrbit(center)
	orbit.SetPosition(start)

	return &Rig{
		Orbit:    orbit,
		Intro:    NewIntro(start.Y, b.Height-IntroStopBelowTop, panSpeed),
		Viewport: vp,
		Fovy:     DefaultFovy,
	}
}

// Tick advances the camera by dt seconds.
func (r *Rig) Tick(dt float32) {
	if !r.Intro.Done() {
		p := r.Orbit.Position()
		p.Y = r.Intro.Update(dt)
		r.Orbit.Discard()
		r.Orbit.SetPosition(p)
		return
	}
	r.Orbit.Update()
}

// SkipIntro ends the pan at once, moving the camera to the end height.
func (r *Rig) SkipIntro() {
	if r.Intro.Done() {
		return
	}
	r.Intro.Skip()
	p := r.Orbit.Position()
	p.Y = r.Intro.Value()
	r.Orbit.SetPosition(p)
}

// Resize replaces the viewport. Position, target and intro state are untouched.
func (r *Rig) Resize(width, height int) {
	r.Viewport = Viewport{Width: width, Height: height}
}

// View returns the camera for the current frame.
func (r *Rig) View() View {
	return View{
		Position: r.Orbit.Position(),
		Target:   r.Orbit.Target,
		Up:       layout.Vec3{Y: 1},
		Fovy:     r.Fovy,
		Aspect:   r.Viewport.Aspect(),
		Viewport: r.Viewport,
	}
}

// Dispose releases the orbit controls.
func (r *Rig) Dispose() {
	r.Orbit.Dispose()
}
