package primitives

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(list []float32, i int) mgl32.Vec3 {
	return mgl32.Vec3{list[3*i], list[3*i+1], list[3*i+2]}
}

// checkFaces asserts unit normals and counter-clockwise winding that agrees with them.
func checkFaces(t *testing.T, name string, pos, nrm []float32) {
	t.Helper()
	require.Equal(t, len(pos), len(nrm), name)
	require.Zero(t, len(pos)%9, name)
	for i := 0; i < len(pos)/3; i++ {
		require.InDelta(t, 1, vec(nrm, i).Len(), 1e-4, "%s: normal %d", name, i)
	}
	for f := 0; f < len(pos)/9; f++ {
		a, b, c := vec(pos, 3*f), vec(pos, 3*f+1), vec(pos, 3*f+2)
		face := b.Sub(a).Cross(c.Sub(a))
		if face.Len() < 1e-6 {
			continue // collapsed at a pole
		}
		avg := vec(nrm, 3*f).Add(vec(nrm, 3*f+1)).Add(vec(nrm, 3*f+2))
		require.Greater(t, face.Dot(avg), float32(0), "%s: face %d winds against its normals", name, f)
	}
}

func TestPolyhedra(t *testing.T) {
	golden := (1 + math32.Sqrt(5)) / 2
	tests := []struct {
		kind  Kind
		faces int
		half  float32
	}{
		{Icosahedron, 20, golden / math32.Sqrt(1+golden*golden)},
		{Octahedron, 8, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			g := Geometry{Kind: tt.kind, Radius: 1}.WithDefaults()
			pos, nrm, ok := g.Triangles()
			require.True(t, ok)
			require.Len(t, pos, tt.faces*9)
			checkFaces(t, string(tt.kind), pos, nrm)

			for i := 0; i < len(pos)/3; i++ {
				p := vec(pos, i)
				assert.InDelta(t, 1, p.Len(), 1e-5)
				assert.Greater(t, p.Dot(vec(nrm, i)), float32(0), "faces point outward")
			}

			b := g.Bounds()
			assert.True(t, b.Center().ApproxEqualThreshold(mgl32.Vec3{}, 1e-5))
			assert.InDelta(t, 2*tt.half, b.Size()[0], 1e-5)
			assert.InDelta(t, 2*tt.half, b.Size()[1], 1e-5)
		})
	}
}

func TestCapsule(t *testing.T) {
	g := Geometry{Kind: Capsule, Radius: 0.6, Height: 0.6, Sides: 4, Segments: 8}.WithDefaults()
	pos, nrm, ok := g.Triangles()
	require.True(t, ok)
	// 8 lathe steps around a profile of 10 points.
	require.Len(t, pos, 8*9*2*9)
	checkFaces(t, "capsule", pos, nrm)

	for i := 0; i < len(pos)/3; i++ {
		assert.Greater(t, vec(pos, i).Dot(vec(nrm, i)), float32(0))
	}

	b := g.Bounds()
	assert.InDelta(t, 1.2, b.Size()[0], 1e-4)
	assert.InDelta(t, 1.8, b.Size()[1], 1e-4)
	assert.InDelta(t, 1.2, b.Size()[2], 1e-4)
	assert.True(t, b.Center().ApproxEqualThreshold(mgl32.Vec3{}, 1e-4))
}

func TestTorusKnot(t *testing.T) {
	g := Geometry{Kind: Knot, Radius: 0.7, Tube: 0.2, Segments: 100, Sides: 16}.WithDefaults()
	pos, nrm, ok := g.Triangles()
	require.True(t, ok)
	require.Len(t, pos, 100*16*6*3)
	checkFaces(t, "knot", pos, nrm)

	b := g.Bounds()
	assert.InDelta(t, 1.5*0.7+0.2, b.Max[0], 0.02)
	assert.InDelta(t, 0.5*0.7+0.2, b.Max[2], 0.02)
	assert.InDelta(t, -b.Min[2], b.Max[2], 0.02)
}

func TestTessellatedDefaults(t *testing.T) {
	for _, k := range []Kind{Icosahedron, Octahedron, Knot, Capsule} {
		g := Geometry{Kind: k}.WithDefaults()
		require.NoError(t, g.Validate(), k)
		b := g.Bounds()
		assert.False(t, b.IsEmpty(), k)
		assert.InDelta(t, 1, b.MaxDim(), 0.3, "%s is about one unit across", k)
	}

	_, _, ok := Geometry{Kind: Sphere}.WithDefaults().Triangles()
	assert.False(t, ok, "raylib generates spheres")
}
