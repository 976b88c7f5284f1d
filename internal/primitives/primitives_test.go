package primitives

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"box":         Box,
		"Cube":        Box,
		" sphere ":    Sphere,
		"CYLINDER":    Cylinder,
		"cone":        Cone,
		"torus":       Torus,
		"plane":       Plane,
		"icosahedron": Icosahedron,
		"Octahedron":  Octahedron,
		"torus-knot":  Knot,
		"torusknot":   Knot,
		"capsule":     Capsule,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("teapot")
	assert.Error(t, err)
}

func TestBoundsAreCenteredAndUnitSized(t *testing.T) {
	for _, k := range []Kind{Box, Sphere, Cylinder, Cone} {
		b := Geometry{Kind: k}.Bounds()
		assert.Equal(t, mgl32.Vec3{}, b.Center(), k)
		assert.InDelta(t, 1, b.MaxDim(), 1e-6, k)
	}

	torus := Geometry{Kind: Torus}.Bounds()
	assert.InDelta(t, 1, torus.Size()[0], 1e-6)
	assert.InDelta(t, 0.3, torus.Size()[2], 1e-6)

	plane := Geometry{Kind: Plane, Size: [3]float32{2, 5, 3}}.Bounds()
	assert.Equal(t, mgl32.Vec3{2, 0, 3}, plane.Size())
}

func TestBoundsHonorExplicitSize(t *testing.T) {
	b := Geometry{Kind: Box, Size: [3]float32{2, 0, 4}}.Bounds()
	assert.Equal(t, mgl32.Vec3{2, 1, 4}, b.Size())

	c := Geometry{Kind: Cylinder, Radius: 1, Height: 3}.Bounds()
	assert.Equal(t, mgl32.Vec3{2, 3, 2}, c.Size())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Geometry{Kind: Sphere, Radius: 2}.Validate())
	assert.Error(t, Geometry{Kind: Sphere, Radius: -1}.Validate())
	assert.Error(t, Geometry{Kind: "blob"}.Validate())
}

func TestGeometryYAML(t *testing.T) {
	var g Geometry
	require.NoError(t, yaml.Unmarshal([]byte("type: Cylinder\nradius: 0.4\nheight: 1.2\n"), &g))
	assert.Equal(t, Cylinder, g.Kind)
	assert.Equal(t, float32(0.4), g.Radius)
	assert.Equal(t, float32(1.2), g.Height)
	assert.Equal(t, defaultSegments, g.WithDefaults().Segments)

	assert.Error(t, yaml.Unmarshal([]byte("type: teapot\n"), &g))
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#ff8800", color.RGBA{255, 136, 0, 255}, true},
		{"0x3366CC", color.RGBA{0x33, 0x66, 0xcc, 255}, true},
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"#12345", DefaultColor, false},
		{"#gg0000", DefaultColor, false},
		{"red", DefaultColor, false},
	}
	for _, tt := range tests {
		got, ok := ParseHexColor(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNewMeshAppliesDefaults(t *testing.T) {
	m := NewMesh(Geometry{Kind: Sphere}, NewStandard(DefaultColor))
	assert.Equal(t, float32(0.5), m.Geometry.Radius)
	assert.Equal(t, float32(DefaultMetalness), m.Material.Metalness)
	assert.Equal(t, float32(DefaultRoughness), m.Material.Roughness)
	assert.InDelta(t, 1, m.Bounds().MaxDim(), 1e-6)
}

func TestPhong(t *testing.T) {
	mirror := Standard{Metalness: 1, Roughness: 0}
	chalk := Standard{Metalness: 0, Roughness: 1}

	mp, ms, md := mirror.Phong()
	cp, cs, cd := chalk.Phong()
	assert.Greater(t, mp, cp, "smooth surfaces have tighter highlights")
	assert.Greater(t, ms, cs, "metals reflect more")
	assert.Less(t, md, cd, "metals have less diffuse")
	assert.Equal(t, float32(1), cd)

	// Out of range values are clamped.
	p, s, d := Standard{Metalness: 3, Roughness: -1}.Phong()
	assert.Equal(t, mp, p)
	assert.Equal(t, ms, s)
	assert.Equal(t, md, d)
}
