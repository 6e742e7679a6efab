package texture_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/db47h/sprig/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	next     uint32
	uploaded []*image.RGBA
	params   []texture.Params
	deleted  []uint32
}

func (u *fakeUploader) NewTexture(img *image.RGBA, p texture.Params) uint32 {
	u.next++
	u.uploaded = append(u.uploaded, img)
	u.params = append(u.params, p)
	return u.next
}

func (u *fakeUploader) DeleteTexture(id uint32) {
	u.deleted = append(u.deleted, id)
}

type src struct {
	id  uint64
	img image.Image
}

func (s *src) ID() uint64          { return s.id }
func (s *src) Size() image.Point   { return s.img.Bounds().Size() }
func (s *src) Pixels() image.Image { return s.img }

func newSrc(id uint64, w, h int) *src {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	return &src{id: id, img: img}
}

func TestNextPow2(t *testing.T) {
	for _, tc := range []struct{ in, want int }{
		{-3, 1}, {0, 1}, {1, 1}, {2, 2}, {3, 4}, {37, 64}, {64, 64}, {100, 128}, {1025, 2048},
	} {
		assert.Equal(t, tc.want, texture.NextPow2(tc.in), "NextPow2(%d)", tc.in)
	}
}

func TestPad(t *testing.T) {
	s := newSrc(1, 100, 37)
	dst := texture.Pad(s.img)
	require.Equal(t, image.Rect(0, 0, 128, 64), dst.Rect)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, dst.RGBAAt(99, 36))
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(100, 36), "padding must be transparent")
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(99, 37), "padding must be transparent")
}

func TestPadOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 13, 22))
	img.SetRGBA(10, 20, color.RGBA{G: 255, A: 255})
	dst := texture.Pad(img)
	require.Equal(t, image.Rect(0, 0, 4, 2), dst.Rect)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, dst.RGBAAt(0, 0))
}

func TestPadNoCopy(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	assert.Same(t, img, texture.Pad(img))
}

func TestManagerGet(t *testing.T) {
	up := new(fakeUploader)
	m := texture.NewManager(up, texture.Filter(texture.Nearest, texture.Linear))
	s := newSrc(7, 100, 37)

	assert.False(t, m.Has(s))
	tex := m.Get(s)
	assert.True(t, m.Has(s))
	assert.Equal(t, texture.Texture{ID: 1, Width: 128, Height: 64, SrcW: 100, SrcH: 37}, tex)
	require.Len(t, up.uploaded, 1)
	assert.Equal(t, texture.Nearest, up.params[0].MinFilter)
	assert.Equal(t, texture.Linear, up.params[0].MagFilter)

	u, v := tex.UV(100, 37)
	assert.InDelta(t, 100.0/128, u, 1e-6)
	assert.InDelta(t, 37.0/64, v, 1e-6)

	// cached: no second upload
	assert.Equal(t, tex, m.Get(s))
	assert.Len(t, up.uploaded, 1)
	assert.Equal(t, 1, m.Len())
}

func TestManagerSharedSource(t *testing.T) {
	up := new(fakeUploader)
	m := texture.NewManager(up)
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	a, b := &src{id: 3, img: img}, &src{id: 3, img: img}
	assert.Equal(t, m.Get(a), m.Get(b))
	assert.Len(t, up.uploaded, 1)
}

func TestManagerNoEvictionByDefault(t *testing.T) {
	up := new(fakeUploader)
	m := texture.NewManager(up)
	for i := 0; i < 100; i++ {
		m.Get(newSrc(uint64(i), 2, 2))
	}
	assert.Equal(t, 100, m.Len())
	assert.Equal(t, 0, m.Collect())
	assert.Empty(t, up.deleted)
}

func TestManagerEviction(t *testing.T) {
	up := new(fakeUploader)
	m := texture.NewManager(up, texture.Capacity(2))
	a, b, c := newSrc(1, 2, 2), newSrc(2, 2, 2), newSrc(3, 2, 2)
	ta := m.Get(a)
	m.Get(b)
	m.Get(a) // a is now most recently used
	m.Get(c) // evicts b

	assert.True(t, m.Has(a))
	assert.False(t, m.Has(b))
	assert.True(t, m.Has(c))
	assert.Empty(t, up.deleted, "evicted textures are released by Collect only")

	assert.Equal(t, 1, m.Collect())
	assert.Equal(t, []uint32{2}, up.deleted)

	assert.True(t, m.Delete(a))
	assert.False(t, m.Delete(a))
	assert.Equal(t, 1, m.Collect())
	assert.Equal(t, []uint32{2, ta.ID}, up.deleted)
}

func TestManagerPurge(t *testing.T) {
	up := new(fakeUploader)
	m := texture.NewManager(up)
	m.Get(newSrc(1, 2, 2))
	m.Get(newSrc(2, 2, 2))
	m.Purge()
	assert.Equal(t, 0, m.Len())
	assert.ElementsMatch(t, []uint32{1, 2}, up.deleted)
}
