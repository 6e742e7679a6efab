package app

import (
	"fmt"
	"time"

	"github.com/db47h/sprig"
	"github.com/db47h/sprig/app/event"
	"github.com/db47h/sprig/gl"
	"github.com/db47h/sprig/loop"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// DriverVersion returns the glfw and OpenGL versions. It must be called from
// a running application.
//
func DriverVersion() string {
	return fmt.Sprintf("GLFW %s - OpenGL %s", glfw.GetVersionString(), gl.Version())
}

// Main creates a window with an OpenGL 2.1 context, runs a and returns when
// the window is closed.
//
func Main(a Interface, opts ...WindowOption) (err error) {
	cfg := newConfig(opts...)
	if err = glfw.Init(); err != nil {
		return errors.Wrap(err, "initialize glfw")
	}
	defer glfw.Terminate()

	w, err := createWindow(&cfg)
	if err != nil {
		return err
	}
	defer w.glfw.Destroy()

	dev, err := gl.NewDevice()
	if err != nil {
		return err
	}
	fw, fh := w.glfw.GetFramebufferSize()
	ctx, err := sprig.New(dev, append(cfg.renderer, sprig.Viewport(fw, fh))...)
	if err != nil {
		return err
	}
	defer ctx.Close()
	w.ctx = ctx
	if h, ok := a.(EventHandler); ok {
		w.handler = h
	}
	w.setCallbacks()

	sprig.Logger().Info("application started", "driver", DriverVersion(), "width", fw, "height", fh)
	if err = a.Init(w, ctx); err != nil {
		return err
	}
	l := loop.FixedStep{DT: cfg.dt}
	l.Run(&runner{a: a, w: w})
	st := l.Stats()
	sprig.Logger().Info("application stopped", "frames", st.Frames, "updates", st.Updates, "dropped", st.Dropped)
	return a.Terminate()
}

func createWindow(cfg *winCfg) (*Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	var (
		monitor *glfw.Monitor
		width   = cfg.w
		height  = cfg.h
	)
	if cfg.fullScreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		glfw.WindowHint(glfw.RedBits, mode.RedBits)
		glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
		glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
		width = mode.Width
		height = mode.Height
	}
	positioned := !cfg.fullScreen && cfg.x >= 0 && cfg.y >= 0
	if cfg.hidden || positioned {
		glfw.WindowHint(glfw.Visible, glfw.False)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.True)
	}
	w, err := glfw.CreateWindow(width, height, cfg.title, monitor, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}
	if positioned {
		w.SetPos(cfg.x, cfg.y)
		if !cfg.hidden {
			w.Show()
		}
	}
	w.MakeContextCurrent()
	glfw.SwapInterval(cfg.vsync)
	return &Window{glfw: w}, nil
}

// A Window is an application window.
//
type Window struct {
	glfw    *glfw.Window
	ctx     *sprig.Context
	handler EventHandler
}

// GLFW returns the underlying glfw window.
//
func (w *Window) GLFW() *glfw.Window { return w.glfw }

// Close requests the window to close. The application terminates at the end
// of the current frame.
//
func (w *Window) Close() { w.glfw.SetShouldClose(true) }

func (w *Window) SetTitle(title string) { w.glfw.SetTitle(title) }

// FrameBufferSize returns the size of the frame buffer in pixels.
//
func (w *Window) FrameBufferSize() (width, height int) { return w.glfw.GetFramebufferSize() }

func (w *Window) setCallbacks() {
	w.glfw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.ctx.Resize(width, height)
		w.send(event.FrameBufferSize{Width: width, Height: height})
	})
	w.glfw.SetCloseCallback(func(*glfw.Window) {
		w.send(event.WindowClose{})
	})
	w.glfw.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		w.send(event.FromKey(key, action, mods))
	})
}

func (w *Window) send(e event.Interface) {
	if w.handler != nil {
		w.handler.HandleEvent(w, e)
	}
}

// runner adapts an Interface to loop.FixedStepUpdater.
//
var _ loop.Presenter = (*runner)(nil)

type runner struct {
	a Interface
	w *Window
}

func (r *runner) ProcessEvents() bool {
	glfw.PollEvents()
	return r.w.glfw.ShouldClose()
}

func (r *runner) Update(dt time.Duration) { r.a.Update(dt) }

func (r *runner) Draw(frameTime, partial time.Duration) {
	r.a.Draw(r.w.ctx, frameTime, partial)
}

// Present flushes the frame's draw calls and shows it.
//
func (r *runner) Present() {
	r.w.ctx.Flush()
	r.w.glfw.SwapBuffers()
}
