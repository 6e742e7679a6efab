package sprig

import (
	"image/color"

	"github.com/db47h/sprig/texture"
)

// Device is the graphics device a Context renders to. Handles for programs,
// buffers and textures are opaque non-zero values. Buffer sizes and offsets
// are expressed in float32 units.
//
// github.com/db47h/sprig/gl provides an OpenGL 2.1 implementation.
//
type Device interface {
	texture.Uploader

	// MaxTextureUnits returns the number of texture units available to the
	// fragment shader.
	MaxTextureUnits() int

	NewProgram(vertexSrc, fragmentSrc string) (uint32, error)
	DeleteProgram(p uint32)
	UseProgram(p uint32)
	AttribLocation(p uint32, name string) (uint32, error)
	UniformLocation(p uint32, name string) int32
	UniformMatrix4(loc int32, m *[16]float32)
	UniformInts(loc int32, v []int32)

	// VertexAttrib enables the float attribute at loc and points it to the
	// currently bound buffer.
	VertexAttrib(loc uint32, size, stride, offset int)

	NewBuffer(size int) uint32
	BindBuffer(b uint32)
	BufferSubData(offset int, data []float32)
	DeleteBuffer(b uint32)

	BindTexture(unit int, tex uint32)

	Viewport(x, y, width, height int)
	Clear(c color.Color)

	// DrawTriangles draws count vertices from the bound buffer as a
	// triangle list.
	DrawTriangles(first, count int)
}
