package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"lookbook/internal/app"
	"lookbook/internal/debug"
	"lookbook/internal/engineconfig"
	"lookbook/internal/env"
	"lookbook/internal/gallery"
	"lookbook/internal/graphics"
	"lookbook/internal/input"
	"lookbook/internal/logger"
	"lookbook/internal/primitives"
)

func main() {
	configPath := flag.String("config", engineconfig.ConfigPath, "viewer preferences (JSON)")
	galleryPath := flag.String("gallery", gallery.DescriptorPath, "gallery descriptors (YAML); built-in garments when missing")
	headless := flag.Bool("headless", false, "run without a window")
	frames := flag.Int("frames", 0, "headless: frames to run before exiting (0 = until interrupted)")
	logPath := flag.String("log", "", "log file (overrides config and LOOKBOOK_LOG)")
	flag.Parse()

	if err := run(*configPath, *galleryPath, *logPath, *headless, *frames); err != nil {
		fmt.Fprintln(os.Stderr, "lookbook:", err)
		os.Exit(1)
	}
}

func run(configPath, galleryPath, logPath string, headless bool, frames int) error {
	if _, err := env.Load(".env"); err != nil {
		return err
	}
	prefs, cfgErr := engineconfig.Load(configPath)
	envErr := prefs.ApplyEnv(os.LookupEnv)
	if logPath != "" {
		prefs.LogPath = logPath
	}

	log := logger.New(prefs.LogPath, os.Stderr)
	if cfgErr != nil {
		log.Logf("config: %v (using defaults)", cfgErr)
	}
	if envErr != nil {
		log.Logf("config: %v", envErr)
	}

	descs, err := gallery.Load(galleryPath)
	if err != nil {
		return err
	}

	if headless {
		a := app.New(prefs, log, descs, nil)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return a.RunHeadless(ctx, frames)
	}

	surfaces := graphics.NewSurfaces(graphics.NewRegistry())
	surfaces.GridVisible = prefs.GridVisible
	a := app.New(prefs, log, descs, surfaces.Factory)

	overlay := debug.New(prefs.ShowFPS, prefs.ShowMemAlloc)
	if prefs.ShowFPS || prefs.ShowMemAlloc {
		overlay.Status = a.Status
	}
	console := debug.NewConsole(log, prefs.ShowConsole)
	drawOverlay := func() {
		overlay.Draw()
		console.Draw()
	}
	shutdown := func() {
		a.Report()
		a.Close()
	}
	bg, _ := primitives.ParseHexColor(prefs.Background)

	graphics.Run(graphics.Config{
		Width:      prefs.Window.Width,
		Height:     prefs.Window.Height,
		Title:      prefs.Window.Title,
		TargetFPS:  prefs.Window.TargetFPS,
		Background: bg,
	}, graphics.Loop{
		Page:      a.Page,
		Scheduler: a.Scheduler,
		Surfaces:  surfaces,
		Input:     input.NewRouter(a.Page, a.Target),
		Update:    console.Update,
		Overlay:   drawOverlay,
		Ready:     a.Page.Load,
		Done:      shutdown,
	})
	return nil
}
