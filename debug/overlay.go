package debug

import (
	"image"
	"image/color"
	"slices"

	"github.com/db47h/sprig"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

// DefaultFace returns a Go Mono font face of the given size in points.
//
func DefaultFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse gomono")
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}

// An Overlay renders lines of text into an image drawn as a regular sprite.
// The image is rendered again only when the text changes.
//
type Overlay struct {
	Foreground color.Color
	Background color.Color
	Padding    int

	face  font.Face
	lines []string
	img   *sprig.Image
}

// NewOverlay returns a new Overlay rendering text with face, white on a
// translucent black background.
//
func NewOverlay(face font.Face) *Overlay {
	return &Overlay{
		Foreground: color.White,
		Background: color.RGBA{A: 0xc0},
		Padding:    2,
		face:       face,
	}
}

// Render returns an image of the given lines of text. It returns the previous
// image if lines did not change. The second return value reports whether a
// new image was rendered.
//
func (o *Overlay) Render(lines ...string) (*sprig.Image, bool) {
	if o.img != nil && slices.Equal(o.lines, lines) {
		return o.img, false
	}
	o.lines = append(o.lines[:0], lines...)

	m := o.face.Metrics()
	lh := m.Height.Ceil()
	var w fixed.Int26_6
	for _, l := range lines {
		w = max(w, font.MeasureString(o.face, l))
	}
	dst := image.NewRGBA(image.Rect(0, 0, w.Ceil()+2*o.Padding, lh*len(lines)+2*o.Padding))
	draw.Draw(dst, dst.Rect, image.NewUniform(o.Background), image.Point{}, draw.Src)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(o.Foreground),
		Face: o.face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(o.Padding, o.Padding+i*lh+m.Ascent.Ceil())
		d.DrawString(l)
	}
	o.img = sprig.NewImage(dst)
	return o.img, true
}

// Draw draws lines at (x, y). The texture of a previously rendered image is
// released when the text changes.
//
func (o *Overlay) Draw(ctx *sprig.Context, x, y float32, lines ...string) {
	prev := o.img
	img, changed := o.Render(lines...)
	if changed && prev != nil {
		ctx.Textures().Delete(prev)
	}
	ctx.DrawImage(img, x, y)
}
