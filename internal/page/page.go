package page

import (
	"slices"
	"sync"
)

// Rect is a region of the window in pixels.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// Container is the sized box a canvas sits in. Its size is set by the page layout.
type Container struct {
	mu   sync.RWMutex
	rect Rect
}

// NewContainer returns a container of the given size at the window origin.
func NewContainer(width, height int) *Container {
	return &Container{rect: Rect{Width: width, Height: height}}
}

// Width is the measured width in pixels.
func (c *Container) Width() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rect.Width
}

// Height is the measured height in pixels.
func (c *Container) Height() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rect.Height
}

// Rect is the container's region of the window.
func (c *Container) Rect() Rect {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rect
}

// SetRect moves and resizes the container.
func (c *Container) SetRect(r Rect) {
	c.mu.Lock()
	c.rect = r
	c.mu.Unlock()
}

// Canvas is a drawing surface identified by ID. A canvas without a container has nowhere
// to be shown.
type Canvas struct {
	ID        string
	container *Container
}

// NewCanvas returns a canvas nested in c (which may be nil).
func NewCanvas(id string, c *Container) *Canvas {
	return &Canvas{ID: id, container: c}
}

// Container returns the enclosing container, or nil.
func (c *Canvas) Container() *Container {
	if c == nil {
		return nil
	}
	return c.container
}

// Page is the window seen as a document: canvases by id, laid out in containers, plus the
// load and resize events.
type Page struct {
	mu       sync.Mutex
	layout   Layout
	order    []string
	canvases map[string]*Canvas
	width    int
	height   int
	loaded   bool
	nextSub  int
	onLoad   map[int]func()
	onResize map[int]func()
}

// New returns an empty page arranged by layout (GridLayout when nil).
func New(layout Layout) *Page {
	if layout == nil {
		layout = GridLayout{}
	}
	return &Page{
		layout:   layout,
		canvases: make(map[string]*Canvas),
		onLoad:   make(map[int]func()),
		onResize: make(map[int]func()),
	}
}

// AddCanvas creates a canvas in its own container. Adding an existing id returns the
// existing canvas.
func (p *Page) AddCanvas(id string) *Canvas {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.canvases[id]; ok {
		return c
	}
	c := NewCanvas(id, &Container{})
	p.canvases[id] = c
	p.order = append(p.order, id)
	p.arrangeLocked()
	return c
}

// Canvas looks up a canvas by id; nil when the page has none.
func (p *Page) Canvas(id string) *Canvas {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.canvases[id]
}

// Canvases returns every canvas in the order they were added.
func (p *Page) Canvases() []*Canvas {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Canvas, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.canvases[id])
	}
	return out
}

// CanvasAt returns the canvas whose container covers (x, y), or nil.
func (p *Page) CanvasAt(x, y int) *Canvas {
	for _, c := range p.Canvases() {
		if c.Container().Rect().Contains(x, y) {
			return c
		}
	}
	return nil
}

// Size is the current window size.
func (p *Page) Size() (width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height
}

// OnLoad subscribes fn to the load event. The returned func unsubscribes.
func (p *Page) OnLoad(fn func()) (unsubscribe func()) {
	return p.subscribe(p.onLoad, fn)
}

// OnResize subscribes fn to resize events. The returned func unsubscribes.
func (p *Page) OnResize(fn func()) (unsubscribe func()) {
	return p.subscribe(p.onResize, fn)
}

func (p *Page) subscribe(set map[int]func(), fn func()) func() {
	p.mu.Lock()
	p.nextSub++
	id := p.nextSub
	set[id] = fn
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		delete(set, id)
		p.mu.Unlock()
	}
}

// Loaded reports whether Load has fired.
func (p *Page) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Load fires the load event. Only the first call has an effect.
func (p *Page) Load() {
	p.mu.Lock()
	if p.loaded {
		p.mu.Unlock()
		return
	}
	p.loaded = true
	subs := snapshot(p.onLoad)
	p.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Resize records the new window size, lays the containers out again and fires resize.
func (p *Page) Resize(width, height int) {
	p.mu.Lock()
	p.width, p.height = width, height
	p.arrangeLocked()
	subs := snapshot(p.onResize)
	p.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

func (p *Page) arrangeLocked() {
	rects := p.layout.Arrange(p.order, p.width, p.height)
	for _, id := range p.order {
		p.canvases[id].container.SetRect(rects[id])
	}
}

// snapshot returns the subscribers in subscription order.
func snapshot(set map[int]func()) []func() {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]func(), 0, len(ids))
	for _, id := range ids {
		out = append(out, set[id])
	}
	return out
}
