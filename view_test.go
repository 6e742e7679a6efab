package sprig

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func project(m mgl32.Mat4, x, y float32) mgl32.Vec2 {
	return m.Mul4x1(mgl32.Vec4{x, y, 0, 1}).Vec2()
}

func TestProjection(t *testing.T) {
	v := View{Bounds: image.Rect(0, 0, 800, 600), Zoom: 1}
	m := v.ProjectionMatrix()
	assert.True(t, project(m, 0, 0).ApproxEqual(mgl32.Vec2{-1, 1}))
	assert.True(t, project(m, 800, 600).ApproxEqual(mgl32.Vec2{1, -1}))

	v.Zoom = 2
	v.CenterOn(100, 100)
	assert.Equal(t, [2]float32{-100, -50}, v.Origin)
	m = v.ProjectionMatrix()
	assert.True(t, project(m, 100, 100).ApproxEqual(mgl32.Vec2{0, 0}))
	assert.True(t, project(m, 300, 250).ApproxEqual(mgl32.Vec2{1, -1}))
}

func TestProjectionEmptyViewport(t *testing.T) {
	var v View
	m := v.ProjectionMatrix()
	assert.True(t, project(m, 0, 0).ApproxEqual(mgl32.Vec2{-1, 1}))
	assert.True(t, project(m, 1, 1).ApproxEqual(mgl32.Vec2{1, -1}))

	v.Bounds = image.Rect(0, 0, 0, 100)
	m = v.ProjectionMatrix()
	assert.True(t, project(m, 1, 100).ApproxEqual(mgl32.Vec2{1, -1}))
}

func TestProjectionDepth(t *testing.T) {
	v := View{Bounds: image.Rect(0, 0, 800, 600), Zoom: 1}
	m := v.ProjectionMatrix()
	depth := func(z float32) float32 {
		return m.Mul4x1(mgl32.Vec4{0, 0, z, 1}).Z()
	}
	assert.InDelta(t, -1, depth(MaxZ), 1e-5)
	assert.InDelta(t, 1, depth(-MaxZ), 1e-5)
	assert.Greater(t, float32(-1), depth(MaxZ+100), "clipped beyond MaxZ")
}
