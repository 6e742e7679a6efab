package main

import (
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/db47h/sprig"
	"github.com/db47h/sprig/app"
	"github.com/db47h/sprig/texture"
	"github.com/pkg/errors"
)

// Config is the demo configuration, read from a TOML file.
//
type Config struct {
	Window struct {
		Title      string `toml:"title"`
		Width      int    `toml:"width"`
		Height     int    `toml:"height"`
		FullScreen bool   `toml:"fullscreen"`
		VSync      int    `toml:"vsync"`
	} `toml:"window"`

	Renderer struct {
		MaxDrawingsPerBatch int    `toml:"max_drawings_per_batch"`
		MaxGPUTextures      int    `toml:"max_gpu_textures"`
		SnapToPixel         bool   `toml:"snap_to_pixel"`
		TextureCapacity     int    `toml:"texture_capacity"`
		Nearest             bool   `toml:"nearest"`
		Background          string `toml:"background"`
	} `toml:"renderer"`

	Scene struct {
		Sprites   int      `toml:"sprites"`
		AssetDirs []string `toml:"asset_dirs"`
		Images    []string `toml:"images"`
		Overlay   bool     `toml:"overlay"`
	} `toml:"scene"`

	Log struct {
		File       string `toml:"file"`
		Level      string `toml:"level"`
		MaxSizeMB  int    `toml:"max_size_mb"`
		MaxBackups int    `toml:"max_backups"`
	} `toml:"log"`
}

func defaultConfig() Config {
	var c Config
	c.Window.Title = "sprig demo"
	c.Window.Width, c.Window.Height = 1024, 768
	c.Window.VSync = 1
	c.Renderer.MaxDrawingsPerBatch = sprig.DefaultMaxDrawingsPerBatch
	c.Renderer.Background = "#203040"
	c.Scene.Sprites = 5000
	c.Scene.AssetDirs = []string{"assets", "cmd/demo/assets"}
	c.Scene.Overlay = true
	c.Log.Level = "info"
	c.Log.MaxSizeMB = 10
	c.Log.MaxBackups = 3
	return c
}

// parseConfig decodes data on top of the default configuration.
//
func parseConfig(data string) (Config, error) {
	c := defaultConfig()
	md, err := toml.Decode(data, &c)
	if err != nil {
		return c, errors.Wrap(err, "decode config")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		ks := make([]string, len(keys))
		for i, k := range keys {
			ks[i] = k.String()
		}
		return c, errors.Errorf("unknown configuration keys: %s", strings.Join(ks, ", "))
	}
	return c, nil
}

func loadConfig(name string) (Config, error) {
	if name == "" {
		return defaultConfig(), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	return parseConfig(string(data))
}

// parseColor parses colors in the #rgb, #rrggbb or #rrggbbaa formats.
//
func parseColor(s string) (color.Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return nil, errors.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid color %q", s)
	}
	c := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return c, nil
}

func (c *Config) rendererOptions() ([]sprig.Option, error) {
	bg, err := parseColor(c.Renderer.Background)
	if err != nil {
		return nil, err
	}
	filter := texture.Linear
	if c.Renderer.Nearest {
		filter = texture.Nearest
	}
	return []sprig.Option{
		sprig.MaxDrawingsPerBatch(c.Renderer.MaxDrawingsPerBatch),
		sprig.MaxGPUTextures(c.Renderer.MaxGPUTextures),
		sprig.SnapToPixel(c.Renderer.SnapToPixel),
		sprig.TextureCapacity(c.Renderer.TextureCapacity),
		sprig.TextureFilter(filter, filter),
		sprig.Background(bg),
	}, nil
}

func (c *Config) windowOptions() ([]app.WindowOption, error) {
	ropts, err := c.rendererOptions()
	if err != nil {
		return nil, err
	}
	opts := []app.WindowOption{
		app.Title(c.Window.Title),
		app.Size(c.Window.Width, c.Window.Height),
		app.VSync(c.Window.VSync),
		app.Renderer(ropts...),
	}
	if c.Window.FullScreen {
		opts = append(opts, app.FullScreen())
	}
	return opts, nil
}
