// Command demo is a sprite stress test for sprig.
//
// Usage:
//
//	demo [-config demo.toml] [-log demo.log] [-sprites n]
//
// Press Escape to quit, Space to pause rotations, + and - to change the
// sprite count.
//
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/db47h/ofs"
	"github.com/db47h/sprig"
	"github.com/db47h/sprig/app"
	"github.com/db47h/sprig/asset"
)

var (
	configFile = flag.String("config", "", "TOML configuration `file`")
	logFile    = flag.String("log", "", "write JSON logs to `file` instead of stderr")
	sprites    = flag.Int("sprites", 0, "number of sprites (overrides configuration)")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *sprites > 0 {
		cfg.Scene.Sprites = *sprites
	}

	log, closer, err := newLogger(cfg.Log.File, cfg.Log.Level, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	if err != nil {
		return err
	}
	defer closer.Close()
	sprig.SetLogger(log)

	var ovl ofs.Overlay
	for _, dir := range cfg.Scene.AssetDirs {
		if err := ovl.Add(false, dir); err != nil {
			log.Warn("asset directory skipped", "dir", dir, "err", err)
		}
	}
	mgr := asset.NewManager(asset.OFS(&ovl), asset.ImagePath("images"))
	if err := mgr.Preload(context.Background(), cfg.Scene.Images...); err != nil {
		// missing images are replaced with generated ones
		log.Warn("preload failed", "err", err)
	}

	opts, err := cfg.windowOptions()
	if err != nil {
		return err
	}
	return app.Main(newScene(&cfg, mgr), opts...)
}
