package layout

import "github.com/chewxy/math32"

// Vec3 is a point or extent in render space (Y up, camera looking down -Z).
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Box is an axis-aligned box given by its center and full size.
type Box struct {
	Center Vec3
	Size   Vec3
}

// Min returns the lowest corner.
func (b Box) Min() Vec3 {
	return b.Center.Add(b.Size.Scale(-0.5))
}

// Max returns the highest corner.
func (b Box) Max() Vec3 {
	return b.Center.Add(b.Size.Scale(0.5))
}

// touchEpsilon absorbs float32 rounding so boxes that share a face are not reported as overlapping.
const touchEpsilon = 1e-5

// overlap returns the penetration of two boxes on each axis. A non-positive value means the boxes
// are separated (or only touch) on that axis.
func overlap(a, b Box) (x, y, z float32) {
	amin, amax := a.Min(), a.Max()
	bmin, bmax := b.Min(), b.Max()
	x = math32.Min(amax.X, bmax.X) - math32.Max(amin.X, bmin.X)
	y = math32.Min(amax.Y, bmax.Y) - math32.Max(amin.Y, bmin.Y)
	z = math32.Min(amax.Z, bmax.Z) - math32.Max(amin.Z, bmin.Z)
	return x, y, z
}

// Intersects reports whether the two boxes share interior volume.
func (b Box) Intersects(o Box) bool {
	x, y, z := overlap(b, o)
	return x > touchEpsilon && y > touchEpsilon && z > touchEpsilon
}

// IntersectsX reports whether the boxes share an interior span on the X axis.
func (b Box) IntersectsX(o Box) bool {
	x, _, _ := overlap(b, o)
	return x > touchEpsilon
}

// Union returns the smallest box containing both.
func (b Box) Union(o Box) Box {
	amin, amax := b.Min(), b.Max()
	bmin, bmax := o.Min(), o.Max()
	lo := Vec3{math32.Min(amin.X, bmin.X), math32.Min(amin.Y, bmin.Y), math32.Min(amin.Z, bmin.Z)}
	hi := Vec3{math32.Max(amax.X, bmax.X), math32.Max(amax.Y, bmax.Y), math32.Max(amax.Z, bmax.Z)}
	return Box{
		Center: lo.Add(hi).Scale(0.5),
		Size:   Vec3{hi.X - lo.X, hi.Y - lo.Y, hi.Z - lo.Z},
	}
}
