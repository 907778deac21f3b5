package renderer

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/carousel3d/internal/engine/model"
)

// ErrEmptyMesh is returned when uploading a mesh with no triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

const vertexStride = int32(unsafe.Sizeof(model.Vertex{}))

// GPUMesh is a mesh uploaded to VAO/VBO/EBO.
type GPUMesh struct {
	Name   string
	vao    uint32
	vbo    uint32
	ebo    uint32
	groups []model.Group
	bounds model.Bounds
}

// Upload copies a mesh to GPU buffers. Must run on the GL thread.
func Upload(m *model.Mesh) (*GPUMesh, error) {
	if m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return nil, ErrEmptyMesh
	}

	g := &GPUMesh{Name: m.Name, groups: m.Groups, bounds: m.Bounds}
	if len(g.groups) == 0 {
		g.groups = []model.Group{{
			BaseColor:  [4]float32{1, 1, 1, 1},
			IndexCount: int32(len(m.Indices)),
		}}
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(vertexStride), unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return g, nil
}

// Groups returns the material groups drawn for this mesh.
func (g *GPUMesh) Groups() []model.Group {
	return g.groups
}

// Bounds returns the mesh bounds in model space.
func (g *GPUMesh) Bounds() model.Bounds {
	return g.bounds
}

// Delete releases the GPU buffers.
func (g *GPUMesh) Delete() {
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
	g.vao, g.vbo, g.ebo = 0, 0, 0
}
