// Package texture manages GPU textures for sprite drawing.
//
// A Manager caches one GPU texture per source image, keyed by the source's
// stable identifier. Textures are always allocated with power-of-two
// dimensions; the source pixels occupy the top-left corner and the
// remaining area is transparent.
//
package texture

import (
	"image"
	"log/slog"
	"math"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"golang.org/x/image/draw"
)

// FilterMode selects how to filter textures when minifying or magnifying.
//
type FilterMode int32

// FilterMode values.
//
const (
	Linear FilterMode = iota
	Nearest
)

// WrapMode selects how textures wrap when texture coordinates get outside of
// the range [0, 1].
//
// Since textures are padded to a power of two, the only setting that makes
// sense for sprites is ClampToEdge (the default).
//
type WrapMode int32

// WrapMode values.
//
const (
	ClampToEdge WrapMode = iota
	Repeat
	MirroredRepeat
)

// Params holds the texture parameters applied on upload.
//
type Params struct {
	MinFilter, MagFilter FilterMode
	WrapS, WrapT         WrapMode
}

// Source is implemented by images that can be uploaded as a texture. ID must
// be stable for the lifetime of the source and unique among all sources
// given to the same Manager.
//
type Source interface {
	ID() uint64
	Size() image.Point
	Pixels() image.Image
}

// Uploader is the subset of a graphics device a Manager needs.
//
type Uploader interface {
	NewTexture(img *image.RGBA, p Params) uint32
	DeleteTexture(id uint32)
}

// A Texture describes an uploaded texture.
//
type Texture struct {
	ID            uint32 // native handle
	Width, Height int    // padded size
	SrcW, SrcH    int    // size of the source image
}

// UV maps the point (x, y), in source image pixels, to texture coordinates.
// Coordinates are normalized against the padded size.
//
func (t Texture) UV(x, y float32) (u, v float32) {
	return x / float32(t.Width), y / float32(t.Height)
}

type config struct {
	params   Params
	capacity int
	log      *slog.Logger
}

// Option is implemented by functions configuring a Manager. See NewManager.
//
type Option interface {
	set(*config)
}

type optionFunc func(*config)

func (f optionFunc) set(cfg *config) {
	f(cfg)
}

// Filter sets the minification and magnification filters of new textures.
//
func Filter(min, mag FilterMode) Option {
	return optionFunc(func(cfg *config) {
		cfg.params.MinFilter = min
		cfg.params.MagFilter = mag
	})
}

// Wrap sets the wrap modes of new textures.
//
func Wrap(wrapS, wrapT WrapMode) Option {
	return optionFunc(func(cfg *config) {
		cfg.params.WrapS = wrapS
		cfg.params.WrapT = wrapT
	})
}

// Capacity sets the maximum number of cached textures. When the cache is
// full, the least recently used texture is evicted. A capacity <= 0 (the
// default) disables eviction.
//
func Capacity(n int) Option {
	return optionFunc(func(cfg *config) {
		cfg.capacity = n
	})
}

// WithLogger sets the logger used to trace uploads and evictions.
//
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(cfg *config) {
		cfg.log = l
	})
}

// A Manager caches GPU textures by source ID.
//
// Evicted or deleted textures are not released immediately: they may still be
// referenced by pending draw calls. They are queued and released by Collect.
//
type Manager struct {
	up      Uploader
	params  Params
	cache   *simplelru.LRU[uint64, Texture]
	evicted []uint32
	log     *slog.Logger
}

// NewManager returns a new Manager that uploads textures with up.
//
func NewManager(up Uploader, opts ...Option) *Manager {
	var cfg config
	for _, o := range opts {
		o.set(&cfg)
	}
	size := cfg.capacity
	if size <= 0 {
		size = math.MaxInt32
	}
	m := &Manager{up: up, params: cfg.params, log: cfg.log}
	// NewLRU only fails on size <= 0
	m.cache, _ = simplelru.NewLRU[uint64, Texture](size, m.onEvict)
	return m
}

func (m *Manager) onEvict(_ uint64, t Texture) {
	m.evicted = append(m.evicted, t.ID)
}

// Has reports whether a texture for src is cached. It does not affect
// eviction order.
//
func (m *Manager) Has(src Source) bool {
	return m.cache.Contains(src.ID())
}

// Get returns the texture for src, uploading it on first use.
//
func (m *Manager) Get(src Source) Texture {
	id := src.ID()
	if t, ok := m.cache.Get(id); ok {
		return t
	}
	img := Pad(src.Pixels())
	sz := src.Size()
	t := Texture{
		ID:     m.up.NewTexture(img, m.params),
		Width:  img.Rect.Dx(),
		Height: img.Rect.Dy(),
		SrcW:   sz.X,
		SrcH:   sz.Y,
	}
	m.cache.Add(id, t)
	if m.log != nil {
		m.log.Debug("texture uploaded",
			"source", id, "texture", t.ID, "width", t.Width, "height", t.Height)
	}
	return t
}

// Delete removes the texture for src from the cache. The GPU texture is
// released by the next call to Collect.
//
func (m *Manager) Delete(src Source) bool {
	return m.cache.Remove(src.ID())
}

// Len returns the number of cached textures.
//
func (m *Manager) Len() int {
	return m.cache.Len()
}

// Collect releases evicted textures and returns how many were released.
//
func (m *Manager) Collect() int {
	n := len(m.evicted)
	for _, id := range m.evicted {
		m.up.DeleteTexture(id)
	}
	m.evicted = m.evicted[:0]
	return n
}

// Purge releases all textures.
//
func (m *Manager) Purge() {
	m.cache.Purge()
	m.Collect()
}

// NextPow2 returns the smallest power of two >= n. It returns 1 for n <= 1.
//
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Pad returns an RGBA copy of src whose dimensions are rounded up to the next
// power of two. The source pixels are copied to the top-left corner. If src
// is already an RGBA image with power-of-two dimensions at the origin, it is
// returned as is.
//
func Pad(src image.Image) *image.RGBA {
	sr := src.Bounds()
	w, h := NextPow2(sr.Dx()), NextPow2(sr.Dy())
	if i, ok := src.(*image.RGBA); ok && sr.Min == (image.Point{}) && sr.Dx() == w && sr.Dy() == h {
		return i
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Copy(dst, image.Point{}, src, sr, draw.Src, nil)
	return dst
}
