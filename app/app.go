// Package app runs sprig applications in a glfw window.
//
package app

import (
	"runtime"
	"time"

	"github.com/db47h/sprig"
	"github.com/db47h/sprig/app/event"
)

func init() {
	// glfw and OpenGL calls must be made from the main thread.
	runtime.LockOSThread()
}

// Interface is implemented by applications run by Main.
//
// Update is called at a fixed rate (see TimeStep). Draw is called once per
// frame; the Context is flushed after Draw returns.
//
type Interface interface {
	Init(w *Window, ctx *sprig.Context) error
	Update(dt time.Duration)
	Draw(ctx *sprig.Context, frameTime, partialTimestep time.Duration)
	Terminate() error
}

// EventHandler is implemented by applications that want to receive window
// events.
//
type EventHandler interface {
	HandleEvent(w *Window, e event.Interface)
}

type WindowOption interface {
	set(*winCfg)
}

type winCfg struct {
	fullScreen bool
	hidden     bool
	x, y, w, h int
	title      string
	vsync      int
	dt         time.Duration
	renderer   []sprig.Option
}

type winOption func(*winCfg)

func (f winOption) set(cfg *winCfg) {
	f(cfg)
}

func newConfig(opts ...WindowOption) winCfg {
	cfg := winCfg{title: "sprig", x: -1, y: -1, w: 800, h: 600, vsync: 1}
	for _, o := range opts {
		o.set(&cfg)
	}
	return cfg
}

func Title(title string) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.title = title
	})
}

// Pos sets the window position. Negative values let the window manager
// decide.
//
func Pos(x, y int) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.x, cfg.y = x, y
	})
}

func Size(w, h int) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.w, cfg.h = w, h
	})
}

// FullScreen opens the window full screen on the primary monitor, using the
// monitor's current video mode.
//
func FullScreen() WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.fullScreen = true
	})
}

func Visible(b bool) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.hidden = !b
	})
}

// VSync sets the swap interval. 0 disables vertical sync.
//
func VSync(interval int) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.vsync = interval
	})
}

// TimeStep sets the update timestep. See loop.FixedStep.
//
func TimeStep(dt time.Duration) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.dt = dt
	})
}

// Renderer sets the options of the sprig.Context created by Main. The
// viewport is always set to the frame buffer size.
//
func Renderer(opts ...sprig.Option) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.renderer = append(cfg.renderer, opts...)
	})
}
