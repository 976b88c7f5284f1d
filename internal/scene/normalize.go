package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Fit describes how Normalize placed a node.
type Fit struct {
	Center mgl32.Vec3 // original bounding-box center, object space
	Size   mgl32.Vec3 // original bounding-box size
	Scale  float32    // uniform scale applied; 1 when the object is degenerate
}

// Center moves n so its bounding-box center sits at (0, yOffset, 0). It resets the node
// transform: any previous position, pivot or scale is discarded.
func Center(n *Node, yOffset float32) mgl32.Vec3 {
	b := n.Object.Bounds()
	c := b.Center()
	n.Pivot = c.Mul(-1)
	n.Scale = mgl32.Vec3{1, 1, 1}
	n.Position = mgl32.Vec3{0, yOffset, 0}
	return c
}

// ScaleTo uniformly scales n around its pivot so the largest bounding-box dimension equals
// targetSize. A degenerate object (largest dimension 0) keeps scale 1.
func ScaleTo(n *Node, targetSize float32) float32 {
	maxDim := n.Object.Bounds().MaxDim()
	s := float32(1)
	if maxDim > 0 {
		s = targetSize / maxDim
	}
	n.SetScalar(s)
	return s
}

// Normalize recenters n at the origin, lifts it by yOffset and scales it so its largest
// dimension equals targetSize.
func Normalize(n *Node, targetSize, yOffset float32) Fit {
	size := n.Object.Bounds().Size()
	c := Center(n, yOffset)
	s := ScaleTo(n, targetSize)
	return Fit{Center: c, Size: size, Scale: s}
}
