package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertices are interleaved as position (3), normal (3), texture
// coordinates (2).
const vertexStride = 8 * 4

// Mesh is an indexed triangle list uploaded to the GPU.
type Mesh struct {
	vao        *VertexArrayObject
	vbo        *BufferObject
	ebo        *BufferObject
	indexCount int32
}

// NewMesh uploads interleaved vertices and their indices. Attribute 0 is
// the position, 1 the normal and 2 the texture coordinates.
func NewMesh(vertices []float32, indices []uint32) *Mesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(vertices)
	ebo := NewEBO(indices)

	vao.SetVertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, 0)
	vao.SetVertexAttribPointer(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	vao.SetVertexAttribPointer(2, 2, gl.FLOAT, false, vertexStride, 6*4)

	vao.Unbind()

	return &Mesh{
		vao:        vao,
		vbo:        vbo,
		ebo:        ebo,
		indexCount: int32(len(indices)),
	}
}

// Draw issues the draw call; the caller binds the shader and sets its
// uniforms.
func (m *Mesh) Draw() {
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	m.vao.Unbind()
}

func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}

// CubeGeometry returns the vertices and indices of a unit cube centred on
// the origin. Each face has its own four vertices so normals stay flat,
// and triangles wind counter-clockwise seen from outside.
func CubeGeometry() ([]float32, []uint32) {
	normals := [6]mgl32.Vec3{
		{0, 0, 1}, {0, 0, -1},
		{0, 1, 0}, {0, -1, 0},
		{1, 0, 0}, {-1, 0, 0},
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	vertices := make([]float32, 0, 6*4*8)
	indices := make([]uint32, 0, 6*6)
	for face, n := range normals {
		// u × v = n, so the corner order below runs counter-clockwise.
		u := mgl32.Vec3{n.Z(), 0, -n.X()}
		if n.Y() != 0 {
			u = mgl32.Vec3{1, 0, 0}
		}
		v := n.Cross(u)

		for _, c := range corners {
			p := n.Add(u.Mul(c[0])).Add(v.Mul(c[1])).Mul(0.5)
			vertices = append(vertices,
				p.X(), p.Y(), p.Z(),
				n.X(), n.Y(), n.Z(),
				(c[0]+1)/2, (c[1]+1)/2)
		}
		base := uint32(face * 4)
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return vertices, indices
}

// NewCube creates a unit cube mesh
func NewCube() *Mesh {
	return NewMesh(CubeGeometry())
}
