package app

import (
	"testing"
	"time"

	"github.com/db47h/sprig"
	"github.com/stretchr/testify/assert"
)

func TestWindowOptions(t *testing.T) {
	cfg := newConfig()
	assert.Equal(t, winCfg{title: "sprig", x: -1, y: -1, w: 800, h: 600, vsync: 1}, cfg)

	cfg = newConfig(
		Title("demo"),
		Pos(10, 20),
		Size(1024, 768),
		FullScreen(),
		Visible(false),
		VSync(0),
		TimeStep(time.Second/60),
		Renderer(sprig.SnapToPixel(true)),
		Renderer(sprig.MaxGPUTextures(4)),
	)
	assert.Equal(t, "demo", cfg.title)
	assert.Equal(t, [4]int{10, 20, 1024, 768}, [4]int{cfg.x, cfg.y, cfg.w, cfg.h})
	assert.True(t, cfg.fullScreen)
	assert.True(t, cfg.hidden)
	assert.Equal(t, 0, cfg.vsync)
	assert.Equal(t, time.Second/60, cfg.dt)
	assert.Len(t, cfg.renderer, 2)
}
