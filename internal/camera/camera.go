package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Perspective is a perspective camera with a fixed vertical field of view.
// Projection is only recomputed by UpdateProjectionMatrix, so callers that
// change Fovy, Aspect, Near or Far must call it afterwards.
type Perspective struct {
	Fovy   float32 // vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	Projection mgl32.Mat4
}

// NewPerspective returns a camera at the origin looking down -Z with the projection already computed.
func NewPerspective(fovy, aspect, near, far float32) *Perspective {
	c := &Perspective{
		Fovy:   fovy,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: mgl32.Vec3{0, 0, -1},
		Up:     mgl32.Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix rebuilds Projection from Fovy, Aspect, Near and Far.
func (c *Perspective) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fovy), aspect, c.Near, c.Far)
}

// LookAt points the camera at target.
func (c *Perspective) LookAt(target mgl32.Vec3) {
	c.Target = target
}

// View returns the world-to-camera matrix.
func (c *Perspective) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}
