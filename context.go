// Package sprig is an immediate mode 2D sprite renderer.
//
// Draw calls are queued in batches that fit in a single GPU draw call: each
// batch holds a bounded number of sprites referencing at most as many distinct
// textures as the GPU has texture units. Batches are drawn in submission
// order when the Context is flushed.
//
// A Context is not safe for concurrent use and must be used from the thread
// that owns the graphics context.
//
package sprig

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/db47h/sprig/pool"
	"github.com/db47h/sprig/texture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// A Context draws sprites.
//
type Context struct {
	dev    Device
	log    *slog.Logger
	cfg    config
	shader *shader
	vbo    uint32

	vertices []float32
	samplers []int32
	textures *texture.Manager
	commands *pool.Pool[drawImageCommand]
	batches  *pool.Pool[batch]
	queue    []pool.Handle // batches, in submission order
	open     *batch

	matrix *MatrixStack
	state  *StateStack
	view   View

	diag   Diagnostics
	unique map[uint32]struct{}

	stubLogged     bool
	viewportLogged bool
}

// New returns a new Context drawing to dev.
//
func New(dev Device, opts ...Option) (*Context, error) {
	cfg := config{
		maxDrawings: DefaultMaxDrawingsPerBatch,
		bg:          color.Black,
	}
	for _, o := range opts {
		o(&cfg)
	}
	log := Logger()

	units := dev.MaxTextureUnits()
	if units < 1 {
		return nil, errors.Errorf("device has no texture units")
	}
	if cfg.maxDrawings <= 0 {
		return nil, errors.Errorf("invalid MaxDrawingsPerBatch value: %d", cfg.maxDrawings)
	}
	switch {
	case cfg.maxTextures < 0:
		return nil, errors.Errorf("invalid MaxGPUTextures value: %d", cfg.maxTextures)
	case cfg.maxTextures == 0:
		cfg.maxTextures = units
	case cfg.maxTextures > units:
		log.Warn("MaxGPUTextures exceeds device texture units", "requested", cfg.maxTextures, "units", units)
		cfg.maxTextures = units
	}
	if cfg.texCapacity < 0 {
		return nil, errors.Errorf("invalid TextureCapacity value: %d", cfg.texCapacity)
	}
	if cfg.width < 0 || cfg.height < 0 {
		return nil, errors.Errorf("invalid viewport size %dx%d", cfg.width, cfg.height)
	}

	sh, err := newShader(dev, vertexShader, fragmentShader(cfg.maxTextures))
	if err != nil {
		return nil, errors.Wrap(err, "create shader")
	}
	for _, a := range []struct {
		name string
		size int
	}{
		{"aVertex", 3},
		{"aRegion", 2},
		{"aTextureId", 1},
		{"aOpacity", 1},
	} {
		if err = sh.addAttribute(a.name, a.size); err != nil {
			sh.delete()
			return nil, err
		}
	}

	c := &Context{
		dev:      dev,
		log:      log,
		cfg:      cfg,
		shader:   sh,
		vertices: make([]float32, cfg.maxDrawings*floatsPerQuad),
		samplers: make([]int32, cfg.maxTextures),
		textures: texture.NewManager(dev,
			texture.Filter(cfg.minFilter, cfg.magFilter),
			texture.Capacity(cfg.texCapacity),
			texture.WithLogger(log)),
		commands: pool.New(func() *drawImageCommand { return new(drawImageCommand) },
			(*drawImageCommand).reset, cfg.maxDrawings),
		batches: pool.New(func() *batch { return newBatch(cfg.maxDrawings, cfg.maxTextures) },
			(*batch).reset, 1),
		matrix: NewMatrixStack(),
		state:  NewStateStack(),
		view:   View{Zoom: 1},
		unique: make(map[uint32]struct{}),
	}
	for i := range c.samplers {
		c.samplers[i] = int32(i)
	}
	c.vbo = dev.NewBuffer(len(c.vertices))
	if cfg.width > 0 && cfg.height > 0 {
		c.Resize(cfg.width, cfg.height)
	}
	log.Info("context created",
		"maxDrawingsPerBatch", cfg.maxDrawings, "maxGPUTextures", cfg.maxTextures, "snapToPixel", cfg.snap)
	return c, nil
}

func (c *Context) image(d Drawable) *Image {
	if d == nil {
		c.log.Warn("DrawImage: nil drawable")
		return nil
	}
	img := d.Image()
	if img == nil || img.src == nil {
		c.log.Warn("DrawImage: drawable has no image")
		return nil
	}
	return img
}

// DrawImage draws d at (x, y) at its natural size.
//
func (c *Context) DrawImage(d Drawable, x, y float32) {
	img := c.image(d)
	if img == nil {
		return
	}
	sz := img.Size()
	w, h := float32(sz.X), float32(sz.Y)
	c.drawImage(img, 0, 0, w, h, x, y, w, h)
}

// DrawImageScaled draws d scaled to fill the rectangle (dx, dy, dw, dh).
//
func (c *Context) DrawImageScaled(d Drawable, dx, dy, dw, dh float32) {
	img := c.image(d)
	if img == nil {
		return
	}
	sz := img.Size()
	c.drawImage(img, 0, 0, float32(sz.X), float32(sz.Y), dx, dy, dw, dh)
}

// DrawImageRegion draws the region (sx, sy, sw, sh) of d, in image pixels,
// into the rectangle (dx, dy, dw, dh).
//
func (c *Context) DrawImageRegion(d Drawable, sx, sy, sw, sh, dx, dy, dw, dh float32) {
	img := c.image(d)
	if img == nil {
		return
	}
	c.drawImage(img, sx, sy, sw, sh, dx, dy, dw, dh)
}

func (c *Context) drawImage(img *Image, sx, sy, sw, sh, dx, dy, dw, dh float32) {
	tex := c.textures.Get(img)
	h, cmd := c.commands.Get()
	m := c.matrix.Current()
	cmd.init(img, tex, sx, sy, sw, sh, dx, dy, dw, dh, &m, *c.state.Current())

	if c.open != nil && c.open.maybeAdd(h, tex) {
		return
	}
	bh, b := c.batches.Get()
	b.add(h, tex)
	c.queue = append(c.queue, bh)
	c.open = b
}

// Save pushes the current transform and state.
//
func (c *Context) Save() {
	c.matrix.Save()
	c.state.Save()
}

// Restore pops the transform and state saved by the last call to Save. It
// does nothing if there is no saved state.
//
func (c *Context) Restore() {
	if c.matrix.Restore() {
		c.state.Restore()
	}
}

// Scoped calls fn between Save and Restore. The state is restored even if fn
// panics.
//
func (c *Context) Scoped(fn func()) {
	c.Save()
	defer c.Restore()
	fn()
}

func (c *Context) Translate(x, y float32) { c.matrix.Translate(x, y) }
func (c *Context) Rotate(angle float32)   { c.matrix.Rotate(angle) }
func (c *Context) Scale(x, y float32)     { c.matrix.Scale(x, y) }

// Transform replaces the current transform with m.
//
func (c *Context) Transform(m mgl32.Mat3) { c.matrix.SetTransform(m) }

// CurrentTransform returns the current transform.
//
func (c *Context) CurrentTransform() mgl32.Mat3 { return c.matrix.Current() }

func (c *Context) Opacity() float32 { return c.state.Current().Opacity }

// SetOpacity sets the opacity of subsequent draw calls. Values outside of
// [0, 1] are kept as is and clamped when drawn.
//
func (c *Context) SetOpacity(v float32) {
	c.state.Current().Opacity = v
}

func (c *Context) Z() float32 { return c.state.Current().Z }

// SetZ sets the depth of subsequent draw calls. Sprites with a depth outside
// of [-MaxZ, MaxZ] are clipped.
//
func (c *Context) SetZ(v float32) { c.state.Current().Z = v }

// SetBackgroundColor sets the color used by Clear.
//
func (c *Context) SetBackgroundColor(bg color.Color) { c.cfg.bg = bg }

func (c *Context) BackgroundColor() color.Color { return c.cfg.bg }

// Clear clears the frame buffer to the background color.
//
func (c *Context) Clear() {
	c.dev.Clear(c.cfg.bg)
}

// Resize sets the viewport size. The view origin and zoom are preserved.
//
func (c *Context) Resize(width, height int) {
	c.view.Bounds = image.Rect(0, 0, width, height)
	c.viewportLogged = false
	c.dev.Viewport(0, 0, width, height)
}

// View returns the view used to compute the projection matrix. Client code
// may change the view Origin and Zoom.
//
func (c *Context) View() *View { return &c.view }

// Textures returns the texture cache.
//
func (c *Context) Textures() *texture.Manager { return c.textures }

// Diag returns statistics about the last call to Flush.
//
func (c *Context) Diag() Diagnostics { return c.diag }

// Flush clears the frame buffer and draws all queued batches. Batches are
// drawn in submission order with one draw call each.
//
func (c *Context) Flush() {
	c.diag = Diagnostics{}
	c.Clear()
	if c.view.Bounds.Empty() && !c.viewportLogged {
		c.log.Warn("Flush: empty viewport, use the Viewport option or call Resize")
		c.viewportLogged = true
	}

	proj := c.view.ProjectionMatrix()
	c.shader.use()
	c.shader.setMatrix("uProjection", (*[16]float32)(&proj))
	c.shader.setInts("uSampler", c.samplers)
	c.shader.bindAttributes(c.vbo)

	for _, bh := range c.queue {
		b := c.batches.Value(bh)
		if b == nil {
			c.log.Error("Flush: stale batch handle")
			continue
		}
		n := c.drawBatch(b)
		c.diag.Quads += n
		if n > 0 {
			c.diag.Batches++
			c.diag.MaxTexturesPerDraw = max(c.diag.MaxTexturesPerDraw, len(b.textures))
			for _, t := range b.textures {
				c.unique[t.ID] = struct{}{}
			}
		}
		c.batches.Free(bh)
	}

	c.diag.UniqueTextures = len(c.unique)
	clear(c.unique)
	c.queue = c.queue[:0]
	c.open = nil
	if n := c.textures.Collect(); n > 0 {
		c.log.Debug("released evicted textures", "count", n)
	}
}

// drawBatch packs, uploads and draws the commands of b, then frees them. It
// returns the number of quads drawn.
//
func (c *Context) drawBatch(b *batch) int {
	n := 0
	for _, h := range b.cmds {
		cmd := c.commands.Value(h)
		if cmd == nil {
			c.log.Error("Flush: stale draw command handle")
			continue
		}
		slot, ok := b.slot(cmd.tex.ID)
		if !ok {
			c.log.Error("Flush: texture not registered in batch", "texture", cmd.tex.ID)
			c.commands.Free(h)
			continue
		}
		cmd.pack(c.vertices[n*floatsPerQuad:], slot, c.cfg.snap)
		c.commands.Free(h)
		n++
	}
	if n == 0 {
		return 0
	}
	c.dev.BufferSubData(0, c.vertices[:n*floatsPerQuad])
	b.bindTextures(c.dev)
	c.dev.DrawTriangles(0, n*verticesPerQuad)
	return n
}

// DrawLine is not implemented.
//
func (c *Context) DrawLine(x0, y0, x1, y1 float32) {
	c.logStub("DrawLine")
}

// DrawDebugRect is not implemented.
//
func (c *Context) DrawDebugRect(x, y, w, h float32) {
	c.logStub("DrawDebugRect")
}

func (c *Context) logStub(name string) {
	if !c.stubLogged {
		c.log.Debug("unimplemented drawing primitive", "func", name)
		c.stubLogged = true
	}
}

// Close discards any queued draw call and releases all GPU resources held by
// the Context.
//
func (c *Context) Close() {
	for _, bh := range c.queue {
		if b := c.batches.Value(bh); b != nil {
			for _, h := range b.cmds {
				c.commands.Free(h)
			}
		}
		c.batches.Free(bh)
	}
	c.queue = c.queue[:0]
	c.open = nil
	c.textures.Purge()
	if c.vbo != 0 {
		c.dev.DeleteBuffer(c.vbo)
		c.vbo = 0
	}
	c.shader.delete()
}
