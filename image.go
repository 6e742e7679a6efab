package sprig

import (
	"image"
	"sync/atomic"
)

// A Drawable is anything that can be drawn with Context.DrawImage. Drawables
// only need to expose their backing image; several drawables may share the
// same Image, in which case they share the same GPU texture.
//
type Drawable interface {
	Image() *Image
}

var lastImageID atomic.Uint64

// An Image is a source image registered for drawing. It is identified by a
// process-unique ID assigned at creation, which is also the key of its GPU
// texture.
//
// An Image is itself a Drawable.
//
type Image struct {
	id  uint64
	src image.Image
}

// NewImage registers img for drawing. The pixels of img must not change once
// the image has been drawn since they are uploaded to the GPU only once.
//
func NewImage(img image.Image) *Image {
	return &Image{id: lastImageID.Add(1), src: img}
}

// Image implements Drawable.
//
func (i *Image) Image() *Image { return i }

// ID returns the image's unique identifier.
//
func (i *Image) ID() uint64 { return i.id }

// Size returns the image size in pixels.
//
func (i *Image) Size() image.Point { return i.src.Bounds().Size() }

// Pixels returns the source image.
//
func (i *Image) Pixels() image.Image { return i.src }
