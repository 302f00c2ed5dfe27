package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Wood gradient colors: top of each face to bottom.
var (
	woodTop    = [3]float32{0x8B / 255.0, 0x45 / 255.0, 0x13 / 255.0}
	woodBottom = [3]float32{0x55 / 255.0, 0x22 / 255.0, 0x11 / 255.0}
)

// loadWoodShader returns the unlit panel shader. Same vertex attributes as raylib meshes.
func loadWoodShader() rl.Shader {
	return rl.LoadShaderFromMemory(woodVS, woodFS)
}

const (
	woodVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec2 fragTexCoord;
void main() {
  fragTexCoord = vertexTexCoord;
  gl_Position = matProjection * matView * matModel * vec4(vertexPosition, 1.0);
}
`
	// woodFS mixes the two colors by the face's vertical texture coordinate.
	woodFS = `#version 330
in vec2 fragTexCoord;
uniform vec3 topColor;
uniform vec3 bottomColor;
out vec4 finalColor;
void main() {
  finalColor = vec4(mix(bottomColor, topColor, fragTexCoord.y), 1.0);
}
`
)

// setWoodUniforms uploads the gradient colors (cgo-safe: local arrays).
func setWoodUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	top := [3]float32{woodTop[0], woodTop[1], woodTop[2]}
	bottom := [3]float32{woodBottom[0], woodBottom[1], woodBottom[2]}
	if loc := rl.GetShaderLocation(shader, "topColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, top[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "bottomColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, bottom[:], rl.ShaderUniformVec3, 1)
	}
}
