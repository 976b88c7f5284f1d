package scene

import (
	"errors"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"lookbook/internal/geom"
)

// ErrOccupied is returned by Add when the scene already shows an object.
var ErrOccupied = errors.New("scene: already holds a visible object")

// Object is anything a node can display: a placeholder mesh or a loaded model.
// Bounds is in the object's own coordinates.
type Object interface {
	Bounds() geom.Box
}

// AmbientLight lights every surface evenly.
type AmbientLight struct {
	Color     color.RGBA
	Intensity float32
}

// DirectionalLight shines from Position towards Target (the origin by default).
type DirectionalLight struct {
	Color     color.RGBA
	Intensity float32
	Position  mgl32.Vec3
	Target    mgl32.Vec3
}

// Direction returns the normalized direction from the lit surface towards the light.
func (l *DirectionalLight) Direction() mgl32.Vec3 {
	d := l.Position.Sub(l.Target)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return d.Normalize()
}

// Scene is a flat scene graph: lights plus top-level nodes. A preview scene shows at
// most one visible object; lights are not nodes and do not count.
type Scene struct {
	Background  color.RGBA
	Ambient     *AmbientLight
	Directional []*DirectionalLight

	nodes []*Node
}

// New returns an empty scene with a transparent background and no lights.
func New() *Scene {
	return &Scene{}
}

// AddAmbient sets the ambient light.
func (s *Scene) AddAmbient(l *AmbientLight) {
	s.Ambient = l
}

// AddDirectional appends a directional light.
func (s *Scene) AddDirectional(l *DirectionalLight) {
	s.Directional = append(s.Directional, l)
}

// Add appends n as a top-level node. It fails with ErrOccupied when n is visible and
// another visible node is already present.
func (s *Scene) Add(n *Node) error {
	if n.Visible && s.Visible() != nil {
		return ErrOccupied
	}
	s.nodes = append(s.nodes, n)
	return nil
}

// Remove detaches n. It reports whether n was present.
func (s *Scene) Remove(n *Node) bool {
	for i, c := range s.nodes {
		if c == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			return true
		}
	}
	return false
}

// Nodes returns a copy of the top-level nodes in insertion order.
func (s *Scene) Nodes() []*Node {
	out := make([]*Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Len is the number of top-level nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Visible returns the visible node, or nil when the scene shows nothing yet.
func (s *Scene) Visible() *Node {
	for _, n := range s.nodes {
		if n.Visible {
			return n
		}
	}
	return nil
}

// Bounds is the world-space box around every visible node.
func (s *Scene) Bounds() geom.Box {
	b := geom.Empty()
	for _, n := range s.nodes {
		if n.Visible {
			b = b.Union(n.WorldBounds())
		}
	}
	return b
}
