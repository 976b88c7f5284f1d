package app

import (
	"context"
	"errors"
	"fmt"

	"lookbook/internal/asset"
	"lookbook/internal/engineconfig"
	"lookbook/internal/frame"
	"lookbook/internal/gallery"
	"lookbook/internal/input"
	"lookbook/internal/logger"
	"lookbook/internal/page"
	"lookbook/internal/render"
	"lookbook/internal/viewer"
)

// App is one gallery page with everything it runs on. The window driver (graphics) or
// RunHeadless decide when frames happen.
type App struct {
	Prefs       engineconfig.Prefs
	Log         *logger.Logger
	Page        *page.Page
	Scheduler   *frame.Scheduler
	Loader      *asset.Loader
	Gallery     *gallery.Gallery
	Descriptors []gallery.Descriptor
}

// New lays out one canvas per descriptor and prepares the gallery; viewers are built on
// the first frame after Start. renderers nil selects the headless renderer.
func New(prefs engineconfig.Prefs, log *logger.Logger, descs []gallery.Descriptor, renderers render.Factory) *App {
	if log == nil {
		log = logger.Discard()
	}
	p := page.New(page.GridLayout{Columns: prefs.Window.Columns, Gap: prefs.Window.Gap})
	gallery.AddCanvases(p, descs)
	sched := frame.New()
	loader := asset.NewLoader(prefs.Assets.BaseDir, prefs.Assets.CacheDir, prefs.Assets.Parallel)
	g := gallery.Init(p, descs, viewer.Options{
		Prefs:     prefs,
		Log:       log,
		Scheduler: sched,
		Renderers: renderers,
		Loader:    loader,
		Resize:    p,
	})
	return &App{
		Prefs:       prefs,
		Log:         log,
		Page:        p,
		Scheduler:   sched,
		Loader:      loader,
		Gallery:     g,
		Descriptors: descs,
	}
}

// Start gives the page its size and fires load, which schedules the gallery build.
func (a *App) Start(width, height int) {
	a.Page.Resize(width, height)
	a.Page.Load()
}

// Target maps a canvas to the viewer receiving its pointer input.
func (a *App) Target(canvasID string) input.Target {
	if v := a.Gallery.Viewer(canvasID); v != nil {
		return v
	}
	return nil
}

// Status summarizes viewer load progress, e.g.
// "6 viewers: 4 loaded, 1 loading, 1 failed, 0 placeholder".
func (a *App) Status() string {
	var counts [4]int
	viewers := a.Gallery.Viewers()
	for _, v := range viewers {
		state, _ := v.LoadState()
		if int(state) < len(counts) {
			counts[state]++
		}
	}
	return fmt.Sprintf("%d viewers: %d loaded, %d loading, %d failed, %d placeholder",
		len(viewers), counts[viewer.LoadDone], counts[viewer.LoadPending], counts[viewer.LoadFailed], counts[viewer.LoadNone])
}

// Report logs one line per viewer with its frame count and load state.
func (a *App) Report() {
	for _, v := range a.Gallery.Viewers() {
		state, err := v.LoadState()
		line := fmt.Sprintf("viewer %s: %d frames, %s", v.Canvas().ID, v.Frames(), state)
		if err != nil {
			line += ": " + err.Error()
		}
		a.Log.Log(line)
	}
	a.Log.Log(a.Status())
}

// RunHeadless runs the page without a window at the configured frame rate for frames
// frames (until ctx is done when frames <= 0), then reports and closes every viewer.
func (a *App) RunHeadless(ctx context.Context, frames int) error {
	a.Start(a.Prefs.Window.Width, a.Prefs.Window.Height)
	err := frame.RunTicker(ctx, a.Scheduler, a.Prefs.Window.TargetFPS, frames)
	a.Report()
	a.Close()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close closes the gallery.
func (a *App) Close() {
	a.Gallery.Close()
}
