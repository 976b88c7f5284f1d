package controls

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookbook/internal/camera"
)

func newTestOrbit(pos mgl32.Vec3) *Orbit {
	cam := camera.NewPerspective(45, 1, 0.1, 100)
	cam.Position = pos
	return NewOrbit(cam)
}

func TestSyncReadsCameraPosition(t *testing.T) {
	o := newTestOrbit(mgl32.Vec3{0, 0, 4})
	assert.InDelta(t, 4, o.Distance(), 1e-5)
	assert.InDelta(t, 0, o.Azimuth(), 1e-5)

	// Update without input keeps the camera where it was.
	moved := o.Update(1.0 / 60)
	assert.False(t, moved)
	assert.InDelta(t, 4, o.Camera.Position[2], 1e-4)
	assert.Equal(t, mgl32.Vec3{}, o.Camera.Target)
}

func TestAutoRotateFullOrbitInThirtySeconds(t *testing.T) {
	o := newTestOrbit(mgl32.Vec3{0, 0, 4})
	o.AutoRotate = true
	o.AutoRotateSpeed = 2

	// 15 s at 60 fps is half an orbit.
	for i := 0; i < 15*60; i++ {
		o.Update(1.0 / 60)
	}
	assert.InDelta(t, -math32.Pi, o.Azimuth(), 1e-2)
	assert.InDelta(t, -4, o.Camera.Position[2], 1e-2)
	assert.InDelta(t, 4, o.Distance(), 1e-4)
}

func TestDampingSpreadsRotationOverFrames(t *testing.T) {
	o := newTestOrbit(mgl32.Vec3{0, 0, 4})
	o.EnableDamping = true
	o.DampingFactor = 0.1

	o.Rotate(-100, 0, 1000) // +0.2π
	first := o.Update(1.0 / 60)
	require.True(t, first)
	afterOne := o.Azimuth()
	assert.InDelta(t, 0.02*math32.Pi, afterOne, 1e-5)

	for i := 0; i < 500; i++ {
		o.Update(1.0 / 60)
	}
	assert.InDelta(t, 0.2*math32.Pi, o.Azimuth(), 1e-3)
}

func TestWithoutDampingRotationAppliesAtOnce(t *testing.T) {
	o := newTestOrbit(mgl32.Vec3{0, 0, 4})
	o.Rotate(-250, 0, 1000)
	o.Update(1.0 / 60)
	assert.InDelta(t, 0.5*math32.Pi, o.Azimuth(), 1e-5)
	assert.InDelta(t, 4, o.Camera.Position[0], 1e-4)

	o.Update(1.0 / 60)
	assert.InDelta(t, 0.5*math32.Pi, o.Azimuth(), 1e-5)
}

func TestZoomClampsDistance(t *testing.T) {
	o := newTestOrbit(mgl32.Vec3{0, 0, 4})
	o.MinDistance = 2
	o.MaxDistance = 10

	o.Zoom(100)
	o.Update(0)
	assert.InDelta(t, 2, o.Distance(), 1e-5)

	o.Zoom(-1000)
	o.Update(0)
	assert.InDelta(t, 10, o.Distance(), 1e-5)
	assert.InDelta(t, 10, o.Camera.Position.Len(), 1e-4)
}

func TestPolarAngleStaysOffThePoles(t *testing.T) {
	o := newTestOrbit(mgl32.Vec3{0, 0, 4})
	o.Rotate(0, 5000, 100)
	o.Update(0)
	assert.InDelta(t, 4, o.Camera.Position[1], 1e-4)
	assert.False(t, math32.IsNaN(o.Camera.Position[0]))

	o.Rotate(0, -5000, 100)
	o.Update(0)
	assert.InDelta(t, -4, o.Camera.Position[1], 1e-4)
	assert.InDelta(t, 4, o.Distance(), 1e-5)
}

func TestRotateIgnoresZeroHeight(t *testing.T) {
	o := newTestOrbit(mgl32.Vec3{0, 0, 4})
	o.Rotate(100, 100, 0)
	assert.False(t, o.Update(0))
}
