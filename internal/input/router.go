package input

import "lookbook/internal/page"

// Target receives pointer gestures for one canvas. *viewer.Viewer implements it.
type Target interface {
	Drag(dx, dy float32)
	Wheel(steps float32)
}

// State is the pointer as sampled once per frame by the window driver.
type State struct {
	X, Y   int     // cursor position in window pixels
	DX, DY float32 // movement since the previous frame
	Down   bool    // primary button held
	Wheel  float32 // wheel notches this frame, positive away from the user
}

// Router sends pointer input to the canvas under the cursor. A drag stays with the canvas
// it started on until the button is released, even when the cursor leaves it.
type Router struct {
	page   *page.Page
	lookup func(canvasID string) Target

	dragging string
	wasDown  bool
}

// NewRouter returns a router hit-testing p; lookup maps a canvas id to its target and
// returns nil for canvases without one.
func NewRouter(p *page.Page, lookup func(canvasID string) Target) *Router {
	return &Router{page: p, lookup: lookup}
}

// Update applies one frame of pointer state.
func (r *Router) Update(s State) {
	switch {
	case s.Down && !r.wasDown:
		r.dragging = ""
		if c := r.page.CanvasAt(s.X, s.Y); c != nil {
			r.dragging = c.ID
		}
	case !s.Down:
		r.dragging = ""
	}
	r.wasDown = s.Down

	if r.dragging != "" && (s.DX != 0 || s.DY != 0) {
		if t := r.lookup(r.dragging); t != nil {
			t.Drag(s.DX, s.DY)
		}
	}
	if s.Wheel != 0 {
		if c := r.page.CanvasAt(s.X, s.Y); c != nil {
			if t := r.lookup(c.ID); t != nil {
				t.Wheel(s.Wheel)
			}
		}
	}
}

// Dragging is the id of the canvas being dragged, or "".
func (r *Router) Dragging() string {
	return r.dragging
}
