package camera

import (
	"github.com/chewxy/math32"

	"figure-shelf/internal/layout"
)

// polarMargin keeps the polar angle off the poles so the up vector never flips.
const polarMargin float32 = 1e-3

// Orbit rotates a camera around a target on a sphere. Input calls only accumulate deltas;
// Update applies them once per frame. After Dispose every input call is ignored.
type Orbit struct {
	Target layout.Vec3

	EnableZoom  bool
	EnablePan   bool
	MinPolar    float32
	MaxPolar    float32
	MinDistance float32
	MaxDistance float32

	radius float32
	theta  float32 // azimuth around +Y, 0 looking from +Z
	phi    float32 // polar angle from +Y

	dTheta   float32
	dPhi     float32
	scale    float32
	panRight float32
	panUp    float32

	disposed bool
}

// NewOrbit returns controls looking at target with zoom on, pan off, and the polar angle free
// over [0, π].
func NewOrbit(target layout.Vec3) *Orbit {
	return &Orbit{
		Target:      target,
		EnableZoom:  true,
		EnablePan:   false,
		MinPolar:    0,
		MaxPolar:    math32.Pi,
		MinDistance: 0.5,
		MaxDistance: 50,
		radius:      1,
		phi:         math32.Pi / 2,
		scale:       1,
	}
}

// SetPosition moves the camera to p, keeping the target.
func (o *Orbit) SetPosition(p layout.Vec3) {
	d := layout.Vec3{X: p.X - o.Target.X, Y: p.Y - o.Target.Y, Z: p.Z - o.Target.Z}
	r := math32.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
	if r == 0 {
		return
	}
	o.radius = r
	o.phi = math32.Acos(clamp(d.Y/r, -1, 1))
	o.theta = math32.Atan2(d.X, d.Z)
}

// Position returns the camera position for the current angles and distance.
func (o *Orbit) Position() layout.Vec3 {
	sinPhi := math32.Sin(o.phi)
	return layout.Vec3{
		X: o.Target.X + o.radius*sinPhi*math32.Sin(o.theta),
		Y: o.Target.Y + o.radius*math32.Cos(o.phi),
		Z: o.Target.Z + o.radius*sinPhi*math32.Cos(o.theta),
	}
}

// Distance returns the camera's distance from the target.
func (o *Orbit) Distance() float32 { return o.radius }

// Polar returns the polar angle from +Y in radians.
func (o *Orbit) Polar() float32 { return o.phi }

// Azimuth returns the angle around +Y in radians.
func (o *Orbit) Azimuth() float32 { return o.theta }

// Rotate queues a rotation in radians: azimuth turns around the target, polar tilts toward the
// poles. Positive values move the camera left and up, matching a drag to the right and down.
func (o *Orbit) Rotate(azimuth, polar float32) {
	if o.disposed {
		return
	}
	o.dTheta += azimuth
	o.dPhi += polar
}

// Zoom queues a distance multiplier; values below 1 move closer.
func (o *Orbit) Zoom(factor float32) {
	if o.disposed || !o.EnableZoom || factor <= 0 {
		return
	}
	o.scale *= factor
}

// Pan queues a target shift in the camera's right/up plane.
func (o *Orbit) Pan(right, up float32) {
	if o.disposed || !o.EnablePan {
		return
	}
	o.panRight += right
	o.panUp += up
}

// Discard drops queued input without applying it.
func (o *Orbit) Discard() {
	o.dTheta, o.dPhi = 0, 0
	o.scale = 1
	o.panRight, o.panUp = 0, 0
}

// Update applies queued input and reports whether the camera moved.
func (o *Orbit) Update() bool {
	if o.disposed {
		return false
	}
	moved := o.dTheta != 0 || o.dPhi != 0 || o.scale != 1 || o.panRight != 0 || o.panUp != 0

	o.theta -= o.dTheta
	o.phi = clamp(o.phi-o.dPhi,
		math32.Max(o.MinPolar, polarMargin),
		math32.Min(o.MaxPolar, math32.Pi-polarMargin))
	o.radius = clamp(o.radius*o.scale, o.MinDistance, o.MaxDistance)

	if o.panRight != 0 || o.panUp != 0 {
		// Right is the horizontal tangent of the azimuth; up stays world +Y.
		o.Target.X += o.panRight * math32.Cos(o.theta)
		o.Target.Z -= o.panRight * math32.Sin(o.theta)
		o.Target.Y += o.panUp
	}

	o.Discard()
	return moved
}

// Dispose releases the controls. The camera keeps its last position.
func (o *Orbit) Dispose() {
	o.Discard()
	o.disposed = true
}

// Disposed reports whether Dispose was called.
func (o *Orbit) Disposed() bool { return o.disposed }

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
