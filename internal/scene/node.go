package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"lookbook/internal/geom"
)

// Node places an Object in the world. The object is first shifted by Pivot in its own
// space, then scaled, then moved to Position, so scaling happens around the pivot.
type Node struct {
	Name     string
	Object   Object
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Pivot    mgl32.Vec3
	Visible  bool
}

// NewNode returns a visible node with an identity transform.
func NewNode(name string, obj Object) *Node {
	return &Node{
		Name:    name,
		Object:  obj,
		Scale:   mgl32.Vec3{1, 1, 1},
		Visible: true,
	}
}

// SetScalar sets a uniform scale.
func (n *Node) SetScalar(s float32) {
	n.Scale = mgl32.Vec3{s, s, s}
}

// Matrix returns the object-to-world transform.
func (n *Node) Matrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	s := mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	p := mgl32.Translate3D(n.Pivot[0], n.Pivot[1], n.Pivot[2])
	return t.Mul4(s).Mul4(p)
}

// WorldBounds returns the object's bounding box after the node transform.
func (n *Node) WorldBounds() geom.Box {
	if n.Object == nil {
		return geom.Empty()
	}
	return n.Object.Bounds().Transform(n.Matrix())
}
