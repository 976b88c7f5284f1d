package gallery

import (
	"time"

	"lookbook/internal/frame"
	"lookbook/internal/logger"
	"lookbook/internal/page"
	"lookbook/internal/viewer"
)

// Gallery owns the viewers of one page, built from a descriptor list once the page has
// loaded.
type Gallery struct {
	page  *page.Page
	descs []Descriptor
	opts  viewer.Options
	log   *logger.Logger

	unsubscribe func()
	buildID     frame.ID
	built       bool
	closed      bool
	viewers     []*viewer.Viewer
}

// Init waits for the page load event and then, on the next animation frame, builds one
// viewer per descriptor. Descriptors whose viewer fails to build are logged and skipped;
// the rest of the page is unaffected. opts is the template every viewer is built with;
// its Scheduler must be set and also runs the build frame.
func Init(p *page.Page, descs []Descriptor, opts viewer.Options) *Gallery {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
		opts.Log = log
	}
	g := &Gallery{page: p, descs: append([]Descriptor(nil), descs...), opts: opts, log: log}
	if p.Loaded() {
		g.scheduleBuild()
		return g
	}
	g.unsubscribe = p.OnLoad(g.scheduleBuild)
	return g
}

func (g *Gallery) scheduleBuild() {
	if g.closed || g.built || g.buildID != 0 {
		return
	}
	if g.opts.Scheduler == nil {
		g.log.Logf("gallery: no scheduler, nothing built")
		return
	}
	g.buildID = g.opts.Scheduler.RequestFrame(g.build)
}

func (g *Gallery) build(time.Duration) {
	g.buildID = 0
	if g.closed || g.built {
		return
	}
	g.built = true
	for _, d := range g.descs {
		vd, err := d.Viewer()
		if err != nil {
			g.log.Log(err.Error())
			continue
		}
		v, err := viewer.New(g.page.Canvas(d.CanvasID), vd, g.opts)
		if err != nil {
			continue
		}
		g.viewers = append(g.viewers, v)
	}
	g.log.Logf("gallery: %d of %d viewers started", len(g.viewers), len(g.descs))
}

// Built reports whether the build frame has run.
func (g *Gallery) Built() bool { return g.built }

// Viewers returns the viewers built so far, in descriptor order.
func (g *Gallery) Viewers() []*viewer.Viewer {
	return append([]*viewer.Viewer(nil), g.viewers...)
}

// Viewer finds the viewer drawing into the given canvas.
func (g *Gallery) Viewer(canvasID string) *viewer.Viewer {
	for _, v := range g.viewers {
		if v.Canvas().ID == canvasID {
			return v
		}
	}
	return nil
}

// Start resumes every viewer's render loop.
func (g *Gallery) Start() {
	for _, v := range g.viewers {
		v.Start()
	}
}

// Stop pauses every viewer's render loop.
func (g *Gallery) Stop() {
	for _, v := range g.viewers {
		v.Stop()
	}
}

// Close closes every viewer and cancels a build that has not run yet.
func (g *Gallery) Close() {
	if g.closed {
		return
	}
	g.closed = true
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
	if g.buildID != 0 && g.opts.Scheduler != nil {
		g.opts.Scheduler.CancelFrame(g.buildID)
		g.buildID = 0
	}
	for _, v := range g.viewers {
		v.Close()
	}
}
