package asset

import (
	"context"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"path"
	"runtime"
	"sync"

	"github.com/db47h/sprig"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type config struct {
	imagePath string
	workers   int
}

// Option is implemented by option functions passed as arguments to NewManager.
//
type Option interface {
	set(*config)
}

type cfn func(*config)

func (f cfn) set(cfg *config) {
	f(cfg)
}

// ImagePath returns an Option that sets the directory images are loaded from.
//
func ImagePath(name string) Option {
	return cfn(func(cfg *config) {
		cfg.imagePath = name
	})
}

// Workers returns an Option that sets the maximum number of images decoded
// concurrently by Preload. The default is twice the number of CPUs.
//
func Workers(n int) Option {
	return cfn(func(cfg *config) {
		cfg.workers = n
	})
}

// A Manager loads and caches images. It is safe for concurrent use.
//
type Manager struct {
	fs      FileSystem
	cfg     config
	m       sync.Mutex
	cond    *sync.Cond
	images  map[string]*sprig.Image
	pending map[string]struct{}
}

// NewManager returns a new asset Manager.
//
func NewManager(fs FileSystem, options ...Option) *Manager {
	var cfg config
	for _, o := range options {
		o.set(&cfg)
	}
	if cfg.workers <= 0 {
		cfg.workers = 2 * runtime.NumCPU()
	}
	m := &Manager{
		fs:      fs,
		cfg:     cfg,
		images:  make(map[string]*sprig.Image),
		pending: make(map[string]struct{}),
	}
	m.cond = sync.NewCond(&m.m)
	return m
}

func (m *Manager) decode(name string) (*sprig.Image, error) {
	r, err := m.fs.Open(path.Join(m.cfg.imagePath, name))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return sprig.NewImage(img), nil
}

// Image returns the named image, loading it if necessary. If the image is
// being loaded by another goroutine, Image waits for it.
//
func (m *Manager) Image(name string) (*sprig.Image, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for {
		if img, ok := m.images[name]; ok {
			return img, nil
		}
		if _, ok := m.pending[name]; !ok {
			break
		}
		m.cond.Wait()
	}
	m.pending[name] = struct{}{}
	m.m.Unlock()
	img, err := m.decode(name)
	m.m.Lock()
	m.done(name, img, err)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", name)
	}
	return img, nil
}

// done records the result of a load. m.m must be held.
//
func (m *Manager) done(name string, img *sprig.Image, err error) {
	delete(m.pending, name)
	if err == nil {
		m.images[name] = img
	}
	m.cond.Broadcast()
}

// Preload loads the named images concurrently. Images already loaded or being
// loaded are skipped. It returns once all images are loaded or have failed,
// or ctx is done. All load errors are returned.
//
func (m *Manager) Preload(ctx context.Context, names ...string) error {
	m.m.Lock()
	todo := make([]string, 0, len(names))
	for _, n := range names {
		_, loaded := m.images[n]
		_, pending := m.pending[n]
		if loaded || pending {
			continue
		}
		m.pending[n] = struct{}{}
		todo = append(todo, n)
	}
	m.m.Unlock()

	var (
		g    errgroup.Group
		emu  sync.Mutex
		errs errorList
	)
	g.SetLimit(m.cfg.workers)
	for _, n := range todo {
		n := n
		g.Go(func() error {
			var (
				img *sprig.Image
				err = ctx.Err()
			)
			if err == nil {
				img, err = m.decode(n)
			}
			m.m.Lock()
			m.done(n, img, err)
			m.m.Unlock()
			if err != nil {
				emu.Lock()
				errs = append(errs, errors.Wrapf(err, "preload %s", n))
				emu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	sprig.Logger().Debug("assets preloaded", "requested", len(names), "loaded", len(todo)-len(errs), "errors", len(errs))
	if errs != nil {
		return errs
	}
	return nil
}

// Discard removes the named image from the cache and returns it, so that the
// caller can release its texture with sprig.Context.Textures().Delete.
//
func (m *Manager) Discard(name string) (*sprig.Image, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for {
		if img, ok := m.images[name]; ok {
			delete(m.images, name)
			return img, nil
		}
		if _, ok := m.pending[name]; !ok {
			return nil, errors.Wrapf(errMissingAsset, "discard %s", name)
		}
		m.cond.Wait()
	}
}

// Len returns the number of loaded images.
//
func (m *Manager) Len() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.images)
}
