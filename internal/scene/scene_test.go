package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookbook/internal/geom"
)

type boxObject geom.Box

func (b boxObject) Bounds() geom.Box { return geom.Box(b) }

func box(min, max mgl32.Vec3) boxObject {
	return boxObject(geom.NewBox(min, max))
}

func TestAddAllowsOneVisibleObject(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(NewNode("a", box(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}))))

	err := s.Add(NewNode("b", box(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})))
	assert.ErrorIs(t, err, ErrOccupied)
	assert.Equal(t, 1, s.Len())

	hidden := NewNode("helper", box(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}))
	hidden.Visible = false
	require.NoError(t, s.Add(hidden))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "a", s.Visible().Name)
}

func TestRemove(t *testing.T) {
	s := New()
	n := NewNode("a", box(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}))
	require.NoError(t, s.Add(n))
	assert.True(t, s.Remove(n))
	assert.False(t, s.Remove(n))
	assert.Nil(t, s.Visible())
	assert.True(t, s.Bounds().IsEmpty())
}

func TestLightsAreNotNodes(t *testing.T) {
	s := New()
	s.AddAmbient(&AmbientLight{Intensity: 0.6})
	s.AddDirectional(&DirectionalLight{Intensity: 1, Position: mgl32.Vec3{5, 10, 7.5}})
	assert.Equal(t, 0, s.Len())
	require.Len(t, s.Directional, 1)

	d := s.Directional[0].Direction()
	assert.InDelta(t, 1, d.Len(), 1e-6)
	assert.Greater(t, d[1], float32(0))
}

func TestNodeMatrixScalesAroundPivot(t *testing.T) {
	n := NewNode("n", box(mgl32.Vec3{2, 2, 2}, mgl32.Vec3{4, 4, 4}))
	n.Pivot = mgl32.Vec3{-3, -3, -3}
	n.SetScalar(10)
	n.Position = mgl32.Vec3{1, 0, 0}

	b := n.WorldBounds()
	assert.True(t, b.Center().ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-4))
	assert.InDelta(t, 20, b.MaxDim(), 1e-4)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		min    mgl32.Vec3
		max    mgl32.Vec3
		target float32
		lift   float32
		scale  float32
	}{
		{"offset tall garment", mgl32.Vec3{10, 0, -3}, mgl32.Vec3{12, 40, 1}, 2, 0.8, 0.05},
		{"tiny model", mgl32.Vec3{-0.01, -0.01, -0.01}, mgl32.Vec3{0.01, 0.01, 0.01}, 2, 0.8, 100},
		{"already fitted", mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}, 2, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNode(tt.name, box(tt.min, tt.max))

			Center(n, tt.lift)
			centered := n.WorldBounds().Center()
			assert.True(t, centered.ApproxEqualThreshold(mgl32.Vec3{0, tt.lift, 0}, 1e-4), "center %v", centered)

			s := ScaleTo(n, tt.target)
			assert.InDelta(t, tt.scale, s, 1e-4)
			assert.InDelta(t, tt.target, n.Object.Bounds().MaxDim()*s, 1e-4)

			world := n.WorldBounds()
			assert.InDelta(t, tt.target, world.MaxDim(), 1e-3)
			assert.True(t, world.Center().ApproxEqualThreshold(mgl32.Vec3{0, tt.lift, 0}, 1e-3))
			assert.Equal(t, tt.lift, n.Position[1])
		})
	}
}

func TestNormalizeDegenerateKeepsUnitScale(t *testing.T) {
	n := NewNode("point", box(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{5, 5, 5}))
	fit := Normalize(n, 2, 0.8)
	assert.Equal(t, float32(1), fit.Scale)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, n.Scale)
	assert.True(t, n.WorldBounds().Center().ApproxEqualThreshold(mgl32.Vec3{0, 0.8, 0}, 1e-4))

	empty := NewNode("empty", boxObject(geom.Empty()))
	fit = Normalize(empty, 2, 0.8)
	assert.Equal(t, float32(1), fit.Scale)
	assert.Equal(t, mgl32.Vec3{0, 0.8, 0}, empty.Position)
}

func TestNormalizeReportsOriginalBox(t *testing.T) {
	n := NewNode("n", box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{4, 2, 1}))
	fit := Normalize(n, 2, 0.8)
	assert.Equal(t, mgl32.Vec3{2, 1, 0.5}, fit.Center)
	assert.Equal(t, mgl32.Vec3{4, 2, 1}, fit.Size)
	assert.InDelta(t, 0.5, fit.Scale, 1e-6)
}
