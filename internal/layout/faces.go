package layout

import "image/color"

// Face indices follow the usual box material order: +X, -X, +Y, -Y, +Z, -Z.
// The viewer looks down -Z, so +Z is the front.
const (
	FaceRight = iota
	FaceLeft
	FaceTop
	FaceBottom
	FaceFront
	FaceBack
	FaceCount
)

// Face is the material of one side of a figure box. A textured face shows Image; every other face
// is filled with Color. Textured faces also carry Color so the renderer has something to draw
// until (or unless) the image loads.
type Face struct {
	Textured bool
	Image    string
	Color    color.RGBA
}

func figureFaces(f Figure) [FaceCount]Face {
	var faces [FaceCount]Face
	for i := range faces {
		faces[i] = Face{Color: f.Color}
	}
	faces[FaceFront] = Face{Textured: true, Image: f.Image, Color: f.Color}
	return faces
}

// Quad is one face of a box as four corners ordered bottom-left, bottom-right, top-right,
// top-left when seen from outside, so the winding is counter-clockwise.
type Quad struct {
	Corners [4]Vec3
	Normal  Vec3
}

// QuadUV holds the texture coordinates matching Quad.Corners, with v = 0 at the top of an image.
var QuadUV = [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

// faceSigns gives, per face, the corner signs (BL, BR, TR, TL) relative to the box center in
// units of the half size, followed by the outward normal.
var faceSigns = [FaceCount][5]Vec3{
	FaceRight:  {{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, 0, 0}},
	FaceLeft:   {{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}, {-1, 0, 0}},
	FaceTop:    {{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}, {0, 1, 0}},
	FaceBottom: {{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}, {0, -1, 0}},
	FaceFront:  {{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}, {0, 0, 1}},
	FaceBack:   {{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {0, 0, -1}},
}

// FaceQuad returns face f of b. f must be in [0, FaceCount).
func FaceQuad(b Box, f int) Quad {
	s := faceSigns[f]
	half := b.Size.Scale(0.5)
	var q Quad
	for i := range q.Corners {
		q.Corners[i] = b.Center.Add(Vec3{s[i].X * half.X, s[i].Y * half.Y, s[i].Z * half.Z})
	}
	q.Normal = s[4]
	return q
}
