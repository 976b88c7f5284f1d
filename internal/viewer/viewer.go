package viewer

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"lookbook/internal/asset"
	"lookbook/internal/camera"
	"lookbook/internal/controls"
	"lookbook/internal/engineconfig"
	"lookbook/internal/frame"
	"lookbook/internal/logger"
	"lookbook/internal/page"
	"lookbook/internal/primitives"
	"lookbook/internal/render"
	"lookbook/internal/scene"
)

// ErrNoCanvas is returned by New when the canvas or its container is missing or has no size.
var ErrNoCanvas = errors.New("viewer: canvas missing or zero-sized")

// maxFrameStep caps the time step fed to the controls after a stall (window drag, debugger).
const maxFrameStep = 0.1

// Scheduler runs frame callbacks and posted tasks on the main loop.
type Scheduler interface {
	RequestFrame(cb frame.Callback) frame.ID
	CancelFrame(id frame.ID)
	Post(fn func())
}

// Loader turns an asset reference into a parsed model. It is called off the main loop.
type Loader interface {
	Load(ctx context.Context, ref string) (*asset.Model, error)
}

// ResizeSource raises window resize events.
type ResizeSource interface {
	OnResize(fn func()) (unsubscribe func())
}

// Descriptor says what one canvas shows: the asset at Asset when set, otherwise a
// placeholder built from Geometry and Material.
type Descriptor struct {
	CanvasID string
	Asset    string
	Geometry *primitives.Geometry
	Material primitives.Standard
}

// Options carries a viewer's collaborators and settings.
type Options struct {
	Prefs     engineconfig.Prefs
	Log       *logger.Logger
	Scheduler Scheduler
	Renderers render.Factory
	Loader    Loader
	Resize    ResizeSource
	// Manual leaves the render loop stopped after construction; call Start to run it.
	Manual bool
}

// LoadState tracks the asynchronous model load.
type LoadState int

const (
	LoadNone LoadState = iota // placeholder viewer, nothing to load
	LoadPending
	LoadDone
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadNone:
		return "placeholder"
	case LoadPending:
		return "loading"
	case LoadDone:
		return "loaded"
	case LoadFailed:
		return "failed"
	}
	return fmt.Sprintf("LoadState(%d)", int(s))
}

// Viewer is one interactive preview: a scene, camera, orbit controls and renderer bound to
// a canvas, redrawn every frame. All methods must be called from the main loop.
type Viewer struct {
	Scene    *scene.Scene
	Camera   *camera.Perspective
	Controls *controls.Orbit

	canvas   *page.Canvas
	desc     Descriptor
	opts     Options
	log      *logger.Logger
	renderer render.Renderer

	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe func()

	running   bool
	closed    bool
	frameID   frame.ID
	lastFrame time.Duration
	hasLast   bool
	frames    int

	loadState LoadState
	loadErr   error
	fit       scene.Fit
}

// New builds the viewer for canvas and starts its render loop (unless opts.Manual).
// It fails with ErrNoCanvas, logging the canvas id, when the canvas or its container is
// missing or zero-sized; in that case nothing is created or scheduled.
func New(canvas *page.Canvas, desc Descriptor, opts Options) (*Viewer, error) {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	id := desc.CanvasID
	if canvas != nil && id == "" {
		id = canvas.ID
	}
	c := canvas.Container()
	if c == nil || c.Width() <= 0 || c.Height() <= 0 {
		log.Logf("viewer %s: canvas missing or zero-sized", id)
		return nil, fmt.Errorf("%w: %s", ErrNoCanvas, id)
	}
	if opts.Scheduler == nil {
		log.Logf("viewer %s: no scheduler", id)
		return nil, fmt.Errorf("viewer %s: no scheduler", id)
	}
	if opts.Renderers == nil {
		opts.Renderers = render.HeadlessFactory
	}
	w, h := c.Width(), c.Height()
	prefs := opts.Prefs

	r, err := opts.Renderers(canvas, w, h)
	if err != nil {
		log.Logf("viewer %s: renderer: %v", id, err)
		return nil, fmt.Errorf("viewer %s: renderer: %w", id, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	v := &Viewer{
		Scene:    scene.New(),
		canvas:   canvas,
		desc:     desc,
		opts:     opts,
		log:      log,
		renderer: r,
		ctx:      ctx,
		cancel:   cancel,
	}
	v.desc.CanvasID = id
	if bg, ok := primitives.ParseHexColor(prefs.Background); ok {
		v.Scene.Background = bg
	}

	v.Camera = camera.NewPerspective(prefs.Camera.Fovy, float32(w)/float32(h), prefs.Camera.Near, prefs.Camera.Far)
	v.Camera.Position = mgl32.Vec3(prefs.Camera.Position)
	v.Camera.LookAt(mgl32.Vec3{})

	v.Controls = controls.NewOrbit(v.Camera)
	v.Controls.EnableDamping = prefs.Controls.Damping
	v.Controls.DampingFactor = prefs.Controls.DampingFactor
	v.Controls.AutoRotate = prefs.Controls.AutoRotate
	v.Controls.AutoRotateSpeed = prefs.Controls.AutoRotateSpeed
	v.Controls.MinDistance = prefs.Controls.MinDistance
	v.Controls.MaxDistance = prefs.Controls.MaxDistance

	v.addLights()
	v.populate()

	if opts.Resize != nil {
		v.unsubscribe = opts.Resize.OnResize(v.handleResize)
	}
	if !opts.Manual {
		v.Start()
	}
	return v, nil
}

func (v *Viewer) addLights() {
	l := v.opts.Prefs.Lights
	v.Scene.AddAmbient(&scene.AmbientLight{
		Color:     colorOr(l.AmbientColor, color.RGBA{255, 255, 255, 255}),
		Intensity: l.AmbientIntensity,
	})
	v.Scene.AddDirectional(&scene.DirectionalLight{
		Color:     colorOr(l.DirectionalColor, color.RGBA{255, 255, 255, 255}),
		Intensity: l.DirectionalIntensity,
		Position:  mgl32.Vec3(l.DirectionalPosition),
	})
}

func colorOr(s string, fallback color.RGBA) color.RGBA {
	if c, ok := primitives.ParseHexColor(s); ok {
		return c
	}
	return fallback
}

// populate adds the placeholder mesh right away, or starts loading the asset.
func (v *Viewer) populate() {
	switch {
	case v.desc.Asset != "":
		v.load(v.desc.Asset)
	case v.desc.Geometry != nil:
		mesh := primitives.NewMesh(*v.desc.Geometry, v.desc.Material)
		if err := v.Scene.Add(scene.NewNode(string(mesh.Geometry.Kind), mesh)); err != nil {
			v.log.Logf("viewer %s: %v", v.desc.CanvasID, err)
		}
	default:
		v.log.Logf("viewer %s: descriptor has neither asset nor geometry", v.desc.CanvasID)
	}
}

// load fetches and parses ref in the background; the result is handed back through the
// scheduler so the scene is only touched on the main loop.
func (v *Viewer) load(ref string) {
	v.loadState = LoadPending
	if v.opts.Loader == nil {
		v.finishLoad(ref, nil, errors.New("no asset loader configured"))
		return
	}
	ctx := v.ctx
	go func() {
		m, err := v.opts.Loader.Load(ctx, ref)
		v.opts.Scheduler.Post(func() { v.finishLoad(ref, m, err) })
	}()
}

func (v *Viewer) finishLoad(ref string, m *asset.Model, err error) {
	if v.closed {
		return
	}
	if err != nil {
		v.loadState = LoadFailed
		v.loadErr = err
		v.log.Logf("viewer %s: failed to load %s: %v", v.desc.CanvasID, ref, err)
		return
	}
	name := m.Name
	if name == "" {
		name = ref
	}
	node := scene.NewNode(name, m)
	v.fit = scene.Normalize(node, v.opts.Prefs.Model.TargetSize, v.opts.Prefs.Model.YOffset)
	if err := v.Scene.Add(node); err != nil {
		v.loadState = LoadFailed
		v.loadErr = err
		v.log.Logf("viewer %s: %v", v.desc.CanvasID, err)
		return
	}
	v.loadState = LoadDone
	v.log.Logf("viewer %s: loaded %s (scale %.4g)", v.desc.CanvasID, ref, v.fit.Scale)
}

// handleResize re-measures the container. Zero-sized containers are ignored.
func (v *Viewer) handleResize() {
	c := v.canvas.Container()
	if c == nil {
		return
	}
	w, h := c.Width(), c.Height()
	if w <= 0 || h <= 0 {
		return
	}
	v.Camera.Aspect = float32(w) / float32(h)
	v.Camera.UpdateProjectionMatrix()
	v.renderer.SetSize(w, h)
}

// Start runs the render loop: one controls update and one render per frame. Calling Start
// on a running or closed viewer does nothing.
func (v *Viewer) Start() {
	if v.running || v.closed {
		return
	}
	v.running = true
	v.hasLast = false
	v.frameID = v.opts.Scheduler.RequestFrame(v.tick)
}

// Stop pauses the render loop. Start resumes it.
func (v *Viewer) Stop() {
	if !v.running {
		return
	}
	v.running = false
	v.opts.Scheduler.CancelFrame(v.frameID)
	v.frameID = 0
}

// Close stops the loop for good: pending loads are cancelled (and their results dropped),
// the resize subscription is removed and the renderer released.
func (v *Viewer) Close() {
	if v.closed {
		return
	}
	v.Stop()
	v.closed = true
	v.cancel()
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
	v.renderer.Close()
}

func (v *Viewer) tick(now time.Duration) {
	if !v.running {
		return
	}
	dt := float32(1.0 / 60)
	if v.hasLast {
		dt = float32((now - v.lastFrame).Seconds())
		if dt < 0 {
			dt = 0
		}
		if dt > maxFrameStep {
			dt = maxFrameStep
		}
	}
	v.lastFrame, v.hasLast = now, true

	v.Controls.Update(dt)
	v.renderer.Render(v.Scene, v.Camera)
	v.frames++
	v.frameID = v.opts.Scheduler.RequestFrame(v.tick)
}

// Drag rotates the camera for a pointer drag of (dx, dy) pixels over the canvas.
func (v *Viewer) Drag(dx, dy float32) {
	if c := v.canvas.Container(); c != nil {
		v.Controls.Rotate(dx, dy, float32(c.Height()))
	}
}

// Wheel zooms by wheel notches; positive moves closer.
func (v *Viewer) Wheel(steps float32) {
	v.Controls.Zoom(steps)
}

// Canvas is the canvas the viewer draws into.
func (v *Viewer) Canvas() *page.Canvas { return v.canvas }

// Descriptor is the descriptor the viewer was built from.
func (v *Viewer) Descriptor() Descriptor { return v.desc }

// Renderer is the viewer's renderer.
func (v *Viewer) Renderer() render.Renderer { return v.renderer }

// Running reports whether the render loop is scheduled.
func (v *Viewer) Running() bool { return v.running }

// Closed reports whether Close was called.
func (v *Viewer) Closed() bool { return v.closed }

// Frames is the number of frames rendered.
func (v *Viewer) Frames() int { return v.frames }

// LoadState reports the model load progress and, after a failure, its error.
func (v *Viewer) LoadState() (LoadState, error) { return v.loadState, v.loadErr }

// Fit reports how the loaded model was normalized. Zero until a model is loaded.
func (v *Viewer) Fit() scene.Fit { return v.fit }
