package controls

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"lookbook/internal/camera"
)

const (
	// polarEpsilon keeps the camera off the poles so the look-at up vector stays valid.
	polarEpsilon = 1e-6
	// zoomBase is the dolly factor for one wheel step.
	zoomBase = 0.95
	// referenceFPS is the frame rate at which AutoRotateSpeed 2.0 gives one orbit per 30 s.
	referenceFPS = 60
)

// Orbit rotates a camera around a target point on a sphere. Input (Rotate, Zoom) and
// auto-rotation accumulate into pending deltas, which Update applies, optionally with
// inertia (damping). The camera is only written by Update.
type Orbit struct {
	Camera *camera.Perspective
	Target mgl32.Vec3

	EnableDamping   bool
	DampingFactor   float32
	AutoRotate      bool
	AutoRotateSpeed float32
	RotateSpeed     float32
	MinDistance     float32
	MaxDistance     float32

	theta, phi, radius float32
	deltaTheta         float32
	deltaPhi           float32
	scale              float32
}

// NewOrbit returns controls for cam orbiting the origin, starting from the camera's current position.
// Damping and auto-rotate are off and distance is unclamped until configured.
func NewOrbit(cam *camera.Perspective) *Orbit {
	o := &Orbit{
		Camera:          cam,
		DampingFactor:   0.05,
		AutoRotateSpeed: 2,
		RotateSpeed:     1,
		MinDistance:     0,
		MaxDistance:     math32.Inf(1),
		scale:           1,
	}
	o.Sync()
	return o
}

// Sync re-reads the spherical position from the camera, e.g. after moving the camera by hand.
func (o *Orbit) Sync() {
	off := o.Camera.Position.Sub(o.Target)
	o.radius = off.Len()
	if o.radius == 0 {
		o.theta, o.phi = 0, math32.Pi/2
		return
	}
	o.theta = math32.Atan2(off[0], off[2])
	o.phi = math32.Acos(mgl32.Clamp(off[1]/o.radius, -1, 1))
}

// Rotate queues a rotation from a pointer drag of (dx, dy) pixels over an element of the given height.
// A drag across the full height turns the camera by one full orbit.
func (o *Orbit) Rotate(dx, dy, height float32) {
	if height <= 0 {
		return
	}
	o.deltaTheta -= 2 * math32.Pi * dx / height * o.RotateSpeed
	o.deltaPhi -= 2 * math32.Pi * dy / height * o.RotateSpeed
}

// Zoom queues a dolly of steps wheel notches. Positive steps move the camera closer.
func (o *Orbit) Zoom(steps float32) {
	o.scale *= math32.Pow(zoomBase, steps)
}

// Distance is the current camera distance from the target.
func (o *Orbit) Distance() float32 {
	return o.radius
}

// Azimuth is the current horizontal angle around the target, in radians.
func (o *Orbit) Azimuth() float32 {
	return o.theta
}

// Update advances the controls by dt seconds and writes the camera position.
// It reports whether the camera moved.
func (o *Orbit) Update(dt float32) bool {
	if o.AutoRotate {
		o.deltaTheta -= 2 * math32.Pi / referenceFPS * o.AutoRotateSpeed * dt
	}

	prevTheta, prevPhi, prevRadius := o.theta, o.phi, o.radius
	if o.EnableDamping {
		o.theta += o.deltaTheta * o.DampingFactor
		o.phi += o.deltaPhi * o.DampingFactor
	} else {
		o.theta += o.deltaTheta
		o.phi += o.deltaPhi
	}
	o.phi = mgl32.Clamp(o.phi, polarEpsilon, math32.Pi-polarEpsilon)
	o.radius = mgl32.Clamp(o.radius*o.scale, o.MinDistance, o.MaxDistance)

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
	}
	o.scale = 1

	sinPhi := math32.Sin(o.phi)
	offset := mgl32.Vec3{
		o.radius * sinPhi * math32.Sin(o.theta),
		o.radius * math32.Cos(o.phi),
		o.radius * sinPhi * math32.Cos(o.theta),
	}
	o.Camera.Position = o.Target.Add(offset)
	o.Camera.LookAt(o.Target)

	return o.theta != prevTheta || o.phi != prevPhi || o.radius != prevRadius
}
