package graphics

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"figure-shelf/internal/assets"
	"figure-shelf/internal/camera"
	"figure-shelf/internal/layout"
)

// Lighting for figure faces: a flat ambient term plus one point light in front of the bookcase.
const ambientLight float32 = 0.5

var pointLight = layout.Vec3{X: 0, Y: 1, Z: 5}

var outlineColor = rl.Black

// texture is the GPU side of one image reference.
type texture struct {
	handle   *assets.Handle
	tex      rl.Texture2D
	uploaded bool
	failed   bool
}

// Renderer draws a layout with raylib. Build, Render and Release must run on the thread that
// owns the window.
type Renderer struct {
	loader *assets.Loader
	log    *log.Logger

	layout   *layout.Layout
	mesh     rl.Mesh
	mtl      rl.Material
	textures map[string]*texture
	built    bool
}

// NewRenderer returns a renderer that resolves front-face images through loader.
func NewRenderer(loader *assets.Loader, lg *log.Logger) *Renderer {
	if lg == nil {
		lg = log.Default()
	}
	return &Renderer{loader: loader, log: lg, textures: make(map[string]*texture)}
}

// Build creates the panel mesh and material and queues every front-face image for loading.
func (r *Renderer) Build(l *layout.Layout) error {
	r.layout = l
	r.mesh = rl.GenMeshCube(1, 1, 1)
	r.mtl = rl.LoadMaterialDefault()
	if shader := loadWoodShader(); rl.IsShaderValid(shader) {
		r.mtl.Shader = shader
		setWoodUniforms(shader)
	} else {
		r.log.Warn("wood shader failed to compile, panels use the default material")
		if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
			albedo.Color = rl.NewColor(0x8B, 0x45, 0x13, 255)
		}
	}
	r.built = true

	for _, p := range l.Figures {
		face := p.Faces[layout.FaceFront]
		if !face.Textured || face.Image == "" {
			continue
		}
		if _, ok := r.textures[face.Image]; ok || r.loader == nil {
			continue
		}
		r.textures[face.Image] = &texture{handle: r.loader.Load(face.Image)}
	}
	return nil
}

// Render draws one frame of the layout from v. Call between BeginDrawing and EndDrawing.
func (r *Renderer) Render(v camera.View) {
	if r.layout == nil {
		return
	}
	r.uploadReady()

	rl.BeginMode3D(toCamera(v))
	for _, p := range r.layout.Panels {
		r.drawPanel(p)
	}
	for _, p := range r.layout.Figures {
		r.drawFigure(p)
	}
	rl.EndMode3D()
}

// uploadReady turns finished image loads into textures. Decoding happens off-thread; only the
// upload runs here.
func (r *Renderer) uploadReady() {
	for ref, t := range r.textures {
		if t.uploaded || t.failed || !t.handle.Ready() {
			continue
		}
		img, ok := t.handle.Image()
		if !ok {
			t.failed = true
			continue
		}
		rlImg := rl.NewImageFromImage(img)
		t.tex = rl.LoadTextureFromImage(rlImg)
		rl.UnloadImage(rlImg)
		if !rl.IsTextureValid(t.tex) {
			r.log.Warn("texture upload failed", "ref", ref)
			t.failed = true
			continue
		}
		rl.SetTextureFilter(t.tex, rl.FilterBilinear)
		t.uploaded = true
	}
}

func (r *Renderer) drawPanel(p layout.Panel) {
	c, s := p.Box.Center, p.Box.Size
	scaleM := rl.MatrixScale(s.X, s.Y, s.Z)
	transM := rl.MatrixTranslate(c.X, c.Y, c.Z)
	rl.DrawMesh(r.mesh, r.mtl, rl.MatrixMultiply(scaleM, transM))
	if p.Outline {
		rl.DrawCubeWiresV(vec(c), vec(s), outlineColor)
	}
}

func (r *Renderer) drawFigure(p layout.Placement) {
	for f, face := range p.Faces {
		q := layout.FaceQuad(p.Box, f)
		shade := faceShade(q.Normal, p.Box.Center)
		if face.Textured {
			if t, ok := r.textures[face.Image]; ok && t.uploaded {
				drawQuad(q, t.tex.ID, color.RGBA{255, 255, 255, 255}, shade)
				continue
			}
		}
		drawQuad(q, 0, face.Color, shade)
	}
}

// drawQuad emits one face through the immediate-mode batch. texID 0 draws untextured.
func drawQuad(q layout.Quad, texID uint32, c color.RGBA, shade float32) {
	if texID != 0 {
		rl.SetTexture(texID)
	}
	rl.Begin(rl.Quads)
	rl.Color4ub(scaleChannel(c.R, shade), scaleChannel(c.G, shade), scaleChannel(c.B, shade), c.A)
	rl.Normal3f(q.Normal.X, q.Normal.Y, q.Normal.Z)
	for i, corner := range q.Corners {
		uv := layout.QuadUV[i]
		rl.TexCoord2f(uv[0], uv[1])
		rl.Vertex3f(corner.X, corner.Y, corner.Z)
	}
	rl.End()
	if texID != 0 {
		rl.SetTexture(0)
	}
}

// faceShade returns the light factor for a face with normal n on a box centered at center.
func faceShade(n, center layout.Vec3) float32 {
	d := pointLight.Add(center.Scale(-1))
	length := math32.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
	if length == 0 {
		return 1
	}
	diffuse := math32.Max(0, (n.X*d.X+n.Y*d.Y+n.Z*d.Z)/length)
	return math32.Min(1, ambientLight+(1-ambientLight)*diffuse)
}

func scaleChannel(v uint8, f float32) uint8 {
	return uint8(math32.Round(float32(v) * f))
}

// Release unloads every GPU resource created by Build and Render.
func (r *Renderer) Release() {
	for _, t := range r.textures {
		if t.uploaded {
			rl.UnloadTexture(t.tex)
		}
	}
	r.textures = make(map[string]*texture)
	if r.built {
		rl.UnloadMaterial(r.mtl)
		rl.UnloadMesh(&r.mesh)
		r.built = false
	}
	r.layout = nil
}

// TextureStats reports uploaded textures out of those requested.
func (r *Renderer) TextureStats() (uploaded, total int) {
	for _, t := range r.textures {
		if t.uploaded {
			uploaded++
		}
	}
	return uploaded, len(r.textures)
}

func toCamera(v camera.View) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec(v.Position),
		Target:     vec(v.Target),
		Up:         vec(v.Up),
		Fovy:       v.Fovy,
		Projection: rl.CameraPerspective,
	}
}

func vec(v layout.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}
