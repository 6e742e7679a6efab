package sprig

import (
	"image/color"

	"github.com/db47h/sprig/texture"
)

// DefaultMaxDrawingsPerBatch is the default value for MaxDrawingsPerBatch.
//
const DefaultMaxDrawingsPerBatch = 2000

type config struct {
	maxDrawings   int
	maxTextures   int
	snap          bool
	bg            color.Color
	texCapacity   int
	minFilter     texture.FilterMode
	magFilter     texture.FilterMode
	width, height int
}

// Option is implemented by functions configuring a Context. See New.
//
type Option func(*config)

// MaxDrawingsPerBatch sets the maximum number of sprites drawn with a single
// draw call. It also sets the size of the vertex buffer. The default is
// DefaultMaxDrawingsPerBatch.
//
func MaxDrawingsPerBatch(n int) Option {
	return func(c *config) { c.maxDrawings = n }
}

// MaxGPUTextures sets the maximum number of distinct textures referenced by a
// single draw call. It defaults to the number of texture units reported by
// the device; larger values are clamped to that number.
//
func MaxGPUTextures(n int) Option {
	return func(c *config) { c.maxTextures = n }
}

// SnapToPixel enables truncation of vertex coordinates to integer values.
// This reduces shimmering of slow moving sprites.
//
func SnapToPixel(enable bool) Option {
	return func(c *config) { c.snap = enable }
}

// Background sets the color used by Clear.
//
func Background(bg color.Color) Option {
	return func(c *config) { c.bg = bg }
}

// TextureCapacity sets the maximum number of textures kept on the GPU. See
// texture.Capacity.
//
func TextureCapacity(n int) Option {
	return func(c *config) { c.texCapacity = n }
}

// TextureFilter sets the minification and magnification filters of textures.
//
func TextureFilter(min, mag texture.FilterMode) Option {
	return func(c *config) {
		c.minFilter = min
		c.magFilter = mag
	}
}

// Viewport sets the initial viewport size. Equivalent to calling Resize right
// after New.
//
func Viewport(width, height int) Option {
	return func(c *config) {
		c.width = width
		c.height = height
	}
}
