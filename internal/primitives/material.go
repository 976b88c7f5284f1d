package primitives

import (
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"lookbook/internal/geom"
)

// Default surface parameters for placeholder meshes.
const (
	DefaultMetalness = 0.1
	DefaultRoughness = 0.5
)

// DefaultColor is the albedo used when a descriptor gives none.
var DefaultColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// Standard is a metalness/roughness surface. Metalness and roughness are in 0..1.
type Standard struct {
	Color     color.RGBA
	Metalness float32
	Roughness float32
}

// NewStandard returns a material with the given color and the default surface parameters.
func NewStandard(c color.RGBA) Standard {
	return Standard{Color: c, Metalness: DefaultMetalness, Roughness: DefaultRoughness}
}

// Phong maps the material onto Blinn-Phong terms for the lit shader: rough surfaces spread
// the highlight, metals strengthen it and darken the diffuse. Values outside 0..1 are clamped.
func (m Standard) Phong() (power, strength, diffuse float32) {
	rough := mgl32.Clamp(m.Roughness, 0, 1)
	metal := mgl32.Clamp(m.Metalness, 0, 1)
	power = 4 + (1-rough)*(1-rough)*124
	strength = (0.08 + 0.6*metal) * (1 - 0.7*rough)
	diffuse = 1 - 0.6*metal
	return power, strength, diffuse
}

// Mesh is a placeholder shape with its material, ready to be added to a scene.
type Mesh struct {
	Geometry Geometry
	Material Standard
}

// NewMesh returns a mesh with defaults applied to geometry.
func NewMesh(g Geometry, m Standard) *Mesh {
	return &Mesh{Geometry: g.WithDefaults(), Material: m}
}

// Bounds returns the local bounding box of the mesh geometry.
func (m *Mesh) Bounds() geom.Box {
	return m.Geometry.Bounds()
}

// ParseHexColor parses #RGB, #RRGGBB or 0xRRGGBB into an opaque color.
// Returns DefaultColor and false on parse error.
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	var hex string
	switch {
	case strings.HasPrefix(s, "#"):
		hex = s[1:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		hex = s[2:]
	default:
		return DefaultColor, false
	}
	for i := 0; i < len(hex); i++ {
		if _, ok := hexByte(hex[i]); !ok {
			return DefaultColor, false
		}
	}
	var r, g, b uint8
	switch len(hex) {
	case 3:
		// #RGB -> RR GG BB
		r = mustHex(hex[0]) * 17
		g = mustHex(hex[1]) * 17
		b = mustHex(hex[2]) * 17
	case 6:
		r = mustHex(hex[0])<<4 + mustHex(hex[1])
		g = mustHex(hex[2])<<4 + mustHex(hex[3])
		b = mustHex(hex[4])<<4 + mustHex(hex[5])
	default:
		return DefaultColor, false
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, true
}

func hexByte(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func mustHex(c byte) uint8 {
	v, _ := hexByte(c)
	return v
}
