package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/db47h/sprig"
	"github.com/db47h/sprig/app"
	"github.com/db47h/sprig/app/event"
	"github.com/db47h/sprig/asset"
	"github.com/db47h/sprig/debug"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

type sprite struct {
	img        *sprig.Image
	x, y       float32
	vx, vy     float32 // pixels per second
	angle, rot float32 // radians, radians per second
	opacity    float32
}

// scene bounces sprites around the window.
//
type scene struct {
	cfg     *Config
	mgr     *asset.Manager
	images  []*sprig.Image
	sprites []sprite
	rnd     *rand.Rand
	w, h    float32
	paused  bool

	timer   debug.Timer
	overlay *debug.Overlay
}

func newScene(cfg *Config, mgr *asset.Manager) *scene {
	return &scene{cfg: cfg, mgr: mgr, rnd: rand.New(rand.NewSource(1))}
}

// generated returns sprite images used when no image is configured.
// Sizes are deliberately not powers of two.
//
func generated() []*sprig.Image {
	specs := []struct {
		w, h int
		c    color.RGBA
	}{
		{24, 24, color.RGBA{0xe0, 0x40, 0x40, 0xff}},
		{32, 20, color.RGBA{0x40, 0xe0, 0x40, 0xff}},
		{100, 37, color.RGBA{0x40, 0x40, 0xe0, 0xff}},
		{17, 45, color.RGBA{0xe0, 0xe0, 0x40, 0xff}},
		{50, 50, color.RGBA{0x80, 0x20, 0x80, 0x80}},
	}
	imgs := make([]*sprig.Image, len(specs))
	for i, s := range specs {
		dst := image.NewRGBA(image.Rect(0, 0, s.w, s.h))
		draw.Draw(dst, dst.Rect, image.NewUniform(s.c), image.Point{}, draw.Src)
		// 1px border
		inner := dst.Rect.Inset(1)
		draw.Draw(dst, inner, image.NewUniform(color.RGBA{s.c.R / 2, s.c.G / 2, s.c.B / 2, s.c.A}), image.Point{}, draw.Src)
		imgs[i] = sprig.NewImage(dst)
	}
	return imgs
}

func (s *scene) Init(w *app.Window, ctx *sprig.Context) error {
	for _, name := range s.cfg.Scene.Images {
		img, err := s.mgr.Image(name)
		if err != nil {
			sprig.Logger().Warn("image not available", "name", name, "err", err)
			continue
		}
		s.images = append(s.images, img)
	}
	if len(s.images) == 0 {
		s.images = generated()
	}
	fw, fh := w.FrameBufferSize()
	s.w, s.h = float32(fw), float32(fh)
	s.resize(s.cfg.Scene.Sprites)

	if s.cfg.Scene.Overlay {
		face, err := debug.DefaultFace(14)
		if err != nil {
			return err
		}
		s.overlay = debug.NewOverlay(face)
	}
	return nil
}

func (s *scene) resize(n int) {
	n = max(n, 0)
	for len(s.sprites) < n {
		speed := 50 + s.rnd.Float32()*200
		dir := s.rnd.Float64() * 2 * math.Pi
		s.sprites = append(s.sprites, sprite{
			img:     s.images[s.rnd.Intn(len(s.images))],
			x:       s.rnd.Float32() * s.w,
			y:       s.rnd.Float32() * s.h,
			vx:      speed * float32(math.Cos(dir)),
			vy:      speed * float32(math.Sin(dir)),
			rot:     (s.rnd.Float32() - 0.5) * 4,
			opacity: 0.5 + s.rnd.Float32()/2,
		})
	}
	s.sprites = s.sprites[:n]
}

func (s *scene) Update(dt time.Duration) {
	t := float32(dt.Seconds())
	for i := range s.sprites {
		sp := &s.sprites[i]
		sp.x += sp.vx * t
		sp.y += sp.vy * t
		if sp.x < 0 || sp.x > s.w {
			sp.vx = -sp.vx
			sp.x = mgl32.Clamp(sp.x, 0, s.w)
		}
		if sp.y < 0 || sp.y > s.h {
			sp.vy = -sp.vy
			sp.y = mgl32.Clamp(sp.y, 0, s.h)
		}
		if !s.paused {
			sp.angle += sp.rot * t
		}
	}
}

func (s *scene) Draw(ctx *sprig.Context, frameTime, _ time.Duration) {
	s.timer.Add(frameTime)
	// Diag reports the previous frame
	diag := ctx.Diag()

	for i := range s.sprites {
		sp := &s.sprites[i]
		sz := sp.img.Size()
		ctx.Save()
		ctx.Translate(sp.x, sp.y)
		ctx.Rotate(sp.angle)
		ctx.SetOpacity(sp.opacity)
		ctx.SetZ(spriteZ(i, len(s.sprites)))
		ctx.DrawImage(sp.img, -float32(sz.X)/2, -float32(sz.Y)/2)
		ctx.Restore()
	}

	if s.overlay != nil {
		ctx.Scoped(func() {
			ctx.Transform(mgl32.Ident3())
			ctx.SetOpacity(1)
			ctx.SetZ(sprig.MaxZ - 1)
			s.overlay.Draw(ctx, 4, 4,
				fmt.Sprintf("%.0f fps, %d sprites", s.timer.AveragePerSecond(), len(s.sprites)),
				diag.String())
		})
	}
}

// spriteZ spreads the depth of n sprites over [0, sprig.MaxZ), in drawing
// order.
//
func spriteZ(i, n int) float32 {
	if n <= 0 {
		return 0
	}
	return float32(float64(i) * sprig.MaxZ / float64(n))
}

func (s *scene) HandleEvent(w *app.Window, e event.Interface) {
	switch e := e.(type) {
	case event.KeyDown:
		switch e.Key {
		case glfw.KeyEscape:
			w.Close()
		case glfw.KeySpace:
			s.paused = !s.paused
		case glfw.KeyKPAdd, glfw.KeyEqual:
			s.resize(len(s.sprites) + 1000)
		case glfw.KeyKPSubtract, glfw.KeyMinus:
			s.resize(len(s.sprites) - 1000)
		}
	case event.FrameBufferSize:
		s.w, s.h = float32(e.Width), float32(e.Height)
	}
}

func (s *scene) Terminate() error {
	sprig.Logger().Info("terminating", "sprites", len(s.sprites), "images", s.mgr.Len())
	return nil
}
