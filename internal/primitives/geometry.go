package primitives

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"lookbook/internal/geom"
)

// Kind names a placeholder primitive shape.
type Kind string

const (
	Box      Kind = "box"
	Sphere   Kind = "sphere"
	Cylinder Kind = "cylinder"
	Cone     Kind = "cone"
	Torus    Kind = "torus"
	Plane    Kind = "plane"

	Icosahedron Kind = "icosahedron"
	Octahedron  Kind = "octahedron"
	Knot        Kind = "torusknot"
	Capsule     Kind = "capsule"
)

// defaultSegments controls round mesh resolution (sphere rings/slices, cylinder slices...).
const defaultSegments = 32

// Geometry is the YAML definition of a placeholder shape (e.g. in config/gallery.yaml).
// Zero fields take the defaults from WithDefaults: every shape is about one unit across,
// the same size as the default cube.
type Geometry struct {
	Kind     Kind       `yaml:"type"`
	Size     [3]float32 `yaml:"size,omitempty"`   // box: width, height, depth; plane: width, _, depth
	Radius   float32    `yaml:"radius,omitempty"` // round shapes, polyhedra; torus and knot ring radius
	Height   float32    `yaml:"height,omitempty"` // cylinder, cone; capsule straight section
	Tube     float32    `yaml:"tube,omitempty"`   // torus and knot tube radius
	Segments int        `yaml:"segments,omitempty"`
	Sides    int        `yaml:"sides,omitempty"` // knot tube sides; capsule cap rings
}

// ParseKind accepts shape names case-insensitively; "cube" is an alias for box.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Box, Sphere, Cylinder, Cone, Torus, Plane, Icosahedron, Octahedron, Knot, Capsule:
		return k, nil
	case "cube":
		return Box, nil
	case "knot", "torus-knot", "torus_knot":
		return Knot, nil
	}
	return "", fmt.Errorf("primitives: unknown geometry %q", s)
}

// UnmarshalYAML accepts any spelling ParseKind accepts.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// WithDefaults returns a copy of g with unset dimensions filled in.
func (g Geometry) WithDefaults() Geometry {
	if g.Segments <= 0 {
		g.Segments = defaultSegments
	}
	switch g.Kind {
	case Box:
		for i := range g.Size {
			if g.Size[i] == 0 {
				g.Size[i] = 1
			}
		}
	case Plane:
		if g.Size[0] == 0 {
			g.Size[0] = 1
		}
		if g.Size[2] == 0 {
			g.Size[2] = 1
		}
		g.Size[1] = 0
	case Sphere:
		if g.Radius == 0 {
			g.Radius = 0.5
		}
	case Cylinder, Cone:
		if g.Radius == 0 {
			g.Radius = 0.5
		}
		if g.Height == 0 {
			g.Height = 1
		}
	case Torus:
		if g.Radius == 0 {
			g.Radius = 0.35
		}
		if g.Tube == 0 {
			g.Tube = 0.15
		}
	case Icosahedron, Octahedron:
		if g.Radius == 0 {
			g.Radius = 0.5
		}
	case Knot:
		if g.Radius == 0 {
			g.Radius = 0.35
		}
		if g.Tube == 0 {
			g.Tube = 0.1
		}
		if g.Sides <= 0 {
			g.Sides = 8
		}
	case Capsule:
		if g.Radius == 0 {
			g.Radius = 0.25
		}
		if g.Height == 0 {
			g.Height = 0.5
		}
		if g.Sides <= 0 {
			g.Sides = 4
		}
	}
	return g
}

// Validate reports an unknown kind or negative dimensions.
func (g Geometry) Validate() error {
	if k, err := ParseKind(string(g.Kind)); err != nil || k != g.Kind {
		return fmt.Errorf("primitives: unknown geometry %q", g.Kind)
	}
	for _, v := range []float32{g.Size[0], g.Size[1], g.Size[2], g.Radius, g.Height, g.Tube} {
		if v < 0 {
			return fmt.Errorf("primitives: %s has a negative dimension", g.Kind)
		}
	}
	return nil
}

// Bounds returns the local bounding box of the shape. Every shape is centered on the origin
// except the torus knot, whose box is that of its tessellation.
func (g Geometry) Bounds() geom.Box {
	g = g.WithDefaults()
	var half mgl32.Vec3
	switch g.Kind {
	case Box, Plane:
		half = mgl32.Vec3{g.Size[0] / 2, g.Size[1] / 2, g.Size[2] / 2}
	case Sphere:
		half = mgl32.Vec3{g.Radius, g.Radius, g.Radius}
	case Cylinder, Cone:
		half = mgl32.Vec3{g.Radius, g.Height / 2, g.Radius}
	case Torus:
		outer := g.Radius + g.Tube
		half = mgl32.Vec3{outer, outer, g.Tube}
	case Icosahedron, Octahedron, Knot, Capsule:
		pos, _, _ := g.Triangles()
		return boundsOf(pos)
	default:
		return geom.Empty()
	}
	return geom.NewBox(half.Mul(-1), half)
}
