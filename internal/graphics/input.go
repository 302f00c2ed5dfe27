package graphics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"figure-shelf/internal/camera"
)

// zoomStep is the distance factor for one wheel notch.
const zoomStep float32 = 0.95

// feedOrbit reads mouse input for this frame into o: left drag rotates, right drag pans (ignored
// unless enabled on o), wheel zooms. A full screen-height drag turns the camera once around.
func feedOrbit(o *camera.Orbit) {
	if o == nil {
		return
	}
	h := float32(rl.GetScreenHeight())
	if h <= 0 {
		return
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		o.Rotate(2*math32.Pi*d.X/h, 2*math32.Pi*d.Y/h)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		scale := o.Distance() / h
		o.Pan(-d.X*scale, d.Y*scale)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		o.Zoom(math32.Pow(zoomStep, wheel))
	}
}
