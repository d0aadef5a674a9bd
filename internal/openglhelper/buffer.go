// Package openglhelper provides utilities for working with OpenGL buffers and other resources.
// It wraps the low-level OpenGL functions in a more Go-friendly API.
package openglhelper

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// BufferObject represents an OpenGL buffer object (VBO, EBO, etc.)
type BufferObject struct {
	ID    uint32
	Type  uint32 // GL_ARRAY_BUFFER, GL_ELEMENT_ARRAY_BUFFER, ...
	Size  int    // Size of the buffer in bytes
	Usage uint32
}

// BufferUsage represents different buffer usage patterns for OpenGL buffers.
type BufferUsage uint32

const (
	// StaticDraw: specified once, drawn many times
	StaticDraw BufferUsage = gl.STATIC_DRAW
	// DynamicDraw: changed often, drawn many times
	DynamicDraw BufferUsage = gl.DYNAMIC_DRAW
	// StreamDraw: respecified every frame, drawn a few times
	StreamDraw BufferUsage = gl.STREAM_DRAW
)

// VertexArrayObject stores vertex attribute configurations.
type VertexArrayObject struct {
	ID uint32
}

// NewBufferObject creates a buffer of the given type and fills it with
// sizeInBytes bytes from data, which may be nil to only allocate.
func NewBufferObject(bufferType uint32, sizeInBytes int, data unsafe.Pointer, usage BufferUsage) *BufferObject {
	var bufferID uint32
	gl.GenBuffers(1, &bufferID)

	buffer := &BufferObject{
		ID:    bufferID,
		Type:  bufferType,
		Size:  sizeInBytes,
		Usage: uint32(usage),
	}

	buffer.Bind()
	gl.BufferData(bufferType, sizeInBytes, data, uint32(usage))

	return buffer
}

// NewVBO creates a static vertex buffer holding vertices.
func NewVBO(vertices []float32) *BufferObject {
	return NewBufferObject(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), StaticDraw)
}

// NewEBO creates a static index buffer holding indices.
func NewEBO(indices []uint32) *BufferObject {
	return NewBufferObject(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), StaticDraw)
}

func (bo *BufferObject) Bind() {
	gl.BindBuffer(bo.Type, bo.ID)
}

func (bo *BufferObject) Unbind() {
	gl.BindBuffer(bo.Type, 0)
}

// Upload replaces the buffer's contents with size bytes from data. The
// store is reallocated (orphaned) so the driver need not wait for draws
// still reading the old contents.
func (bo *BufferObject) Upload(size int, data unsafe.Pointer) {
	bo.Bind()
	gl.BufferData(bo.Type, size, data, bo.Usage)
	bo.Size = size
}

// UpdateSubData updates a portion of the buffer with new data.
// The offset is in bytes from the start of the buffer.
func (bo *BufferObject) UpdateSubData(offset int, size int, data unsafe.Pointer) {
	bo.Bind()
	gl.BufferSubData(bo.Type, offset, size, data)
}

func (bo *BufferObject) Delete() {
	gl.DeleteBuffers(1, &bo.ID)
}

func NewVAO() *VertexArrayObject {
	var vaoID uint32
	gl.GenVertexArrays(1, &vaoID)

	return &VertexArrayObject{
		ID: vaoID,
	}
}

func (vao *VertexArrayObject) Bind() {
	gl.BindVertexArray(vao.ID)
}

func (vao *VertexArrayObject) Unbind() {
	gl.BindVertexArray(0)
}

func (vao *VertexArrayObject) Delete() {
	gl.DeleteVertexArrays(1, &vao.ID)
}

// SetVertexAttribPointer sets up a vertex attribute pointer and enables the attribute.
// The VAO and the source buffer must be bound.
func (vao *VertexArrayObject) SetVertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
	gl.EnableVertexAttribArray(index)
}
