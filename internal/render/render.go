package render

import (
	"sync"

	"lookbook/internal/camera"
	"lookbook/internal/page"
	"lookbook/internal/scene"
)

// Renderer draws a scene from a camera into the output buffer of one canvas.
type Renderer interface {
	SetSize(width, height int)
	Size() (width, height int)
	Render(s *scene.Scene, cam *camera.Perspective)
	Close()
}

// Factory creates the renderer bound to canvas with an initial output size.
type Factory func(canvas *page.Canvas, width, height int) (Renderer, error)

// Headless is a Renderer without a GPU. It records what it was asked to draw, which lets
// the viewer lifecycle run in tests and CI.
type Headless struct {
	mu       sync.Mutex
	canvasID string
	width    int
	height   int
	frames   int
	lastLen  int
	lastCam  camera.Perspective
	closed   bool
}

// NewHeadless returns a headless renderer of the given size.
func NewHeadless(canvasID string, width, height int) *Headless {
	return &Headless{canvasID: canvasID, width: width, height: height}
}

// HeadlessFactory is a Factory producing Headless renderers.
func HeadlessFactory(canvas *page.Canvas, width, height int) (Renderer, error) {
	return NewHeadless(canvas.ID, width, height), nil
}

// SetSize implements Renderer.
func (h *Headless) SetSize(width, height int) {
	h.mu.Lock()
	h.width, h.height = width, height
	h.mu.Unlock()
}

// Size implements Renderer.
func (h *Headless) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// Render implements Renderer. Rendering after Close is ignored.
func (h *Headless) Render(s *scene.Scene, cam *camera.Perspective) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.frames++
	h.lastLen = s.Len()
	h.lastCam = *cam
}

// Close implements Renderer.
func (h *Headless) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

// CanvasID is the id of the canvas this renderer was created for.
func (h *Headless) CanvasID() string {
	return h.canvasID
}

// Frames is the number of frames rendered.
func (h *Headless) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// LastObjects is the scene node count seen by the last Render.
func (h *Headless) LastObjects() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastLen
}

// LastCamera is a copy of the camera used by the last Render.
func (h *Headless) LastCamera() camera.Perspective {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastCam
}

// Closed reports whether Close was called.
func (h *Headless) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}
