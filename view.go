package sprig

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxZ bounds the depth of drawn sprites: anything with a Z outside
// [-MaxZ, MaxZ] is clipped.
//
const MaxZ = 1 << 16

// A View maps world coordinates to the viewport.
//
type View struct {
	Bounds image.Rectangle // viewport, in frame buffer pixels
	Origin [2]float32      // world coordinates of the top-left corner
	Zoom   float32
}

// CenterOn sets the view origin so that the world point (x, y) is at the
// center of the viewport.
//
func (v *View) CenterOn(x, y float32) {
	v.Origin[0] = x - float32(v.Bounds.Dx())/(2*v.Zoom)
	v.Origin[1] = y - float32(v.Bounds.Dy())/(2*v.Zoom)
}

// ProjectionMatrix returns the orthographic projection for v. Y points down:
// Origin maps to the top-left corner of the viewport. An empty viewport is
// projected as a single pixel.
//
func (v *View) ProjectionMatrix() mgl32.Mat4 {
	z := v.Zoom
	if z == 0 {
		z = 1
	}
	w := float32(max(v.Bounds.Dx(), 1)) / z
	h := float32(max(v.Bounds.Dy(), 1)) / z
	l, t := v.Origin[0], v.Origin[1]
	return mgl32.Ortho(l, l+w, t+h, t, -MaxZ, MaxZ)
}
