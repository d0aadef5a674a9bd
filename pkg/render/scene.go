package render

import (
	"embed"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/opal/internal/openglhelper"
)

//go:embed shaders
var shaderFS embed.FS

// DirectionalLight shines uniformly along Direction.
type DirectionalLight struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Ambient   float32
}

// Scene is the demo content: a single cube lit by one directional light.
type Scene struct {
	shader *openglhelper.Shader
	cube   *openglhelper.Mesh

	Model      mgl32.Mat4
	Color      mgl32.Vec3
	Light      DirectionalLight
	Background mgl32.Vec4
}

// NewScene compiles the scene shader and uploads the cube. A GL context
// must be current.
func NewScene() (*Scene, error) {
	shader, err := openglhelper.LoadShaderFS(shaderFS, "shaders/scene.vert", "shaders/scene.frag")
	if err != nil {
		return nil, fmt.Errorf("failed to load scene shader: %w", err)
	}

	return &Scene{
		shader: shader,
		cube:   openglhelper.NewCube(),
		Model:  mgl32.Ident4(),
		Color:  mgl32.Vec3{0.85, 0.45, 0.2},
		Light: DirectionalLight{
			Direction: mgl32.Vec3{-0.4, -1, -0.6}.Normalize(),
			Color:     mgl32.Vec3{1, 1, 1},
			Ambient:   0.15,
		},
		Background: mgl32.Vec4{0.05, 0.05, 0.1, 1},
	}, nil
}

// Draw renders the scene from eye with the given view and projection.
func (s *Scene) Draw(view, projection mgl32.Mat4, eye mgl32.Vec3) {
	s.shader.Use()
	s.shader.SetMat4("model", s.Model)
	s.shader.SetMat4("view", view)
	s.shader.SetMat4("projection", projection)
	s.shader.SetVec3("objectColor", s.Color)
	s.shader.SetVec3("lightDir", s.Light.Direction)
	s.shader.SetVec3("lightColor", s.Light.Color)
	s.shader.SetFloat("ambient", s.Light.Ambient)
	s.shader.SetVec3("viewPos", eye)

	s.cube.Draw()
}

func (s *Scene) Delete() {
	s.cube.Delete()
	s.shader.Delete()
}
