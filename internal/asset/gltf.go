package asset

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"lookbook/internal/geom"
)

// maxNodeDepth bounds the node hierarchy walk; deeper (or cyclic) graphs are rejected.
const maxNodeDepth = 64

// Model is a parsed glTF asset on local disk.
type Model struct {
	Source string // reference the model was requested by (URL or path)
	Path   string // local .glb/.gltf file
	Name   string
	Meshes int // mesh instances in the default scene

	bounds geom.Box
}

// NewModel returns a model with known bounds, for callers that measured it themselves.
func NewModel(source, path, name string, bounds geom.Box) *Model {
	return &Model{Source: source, Path: path, Name: name, Meshes: 1, bounds: bounds}
}

// Bounds is the bounding box of every mesh in the default scene, in model space.
func (m *Model) Bounds() geom.Box {
	return m.bounds
}

// parseFile decodes the glTF or GLB at path and measures it.
func parseFile(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	b, meshes, err := documentBounds(doc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	name := ""
	if len(doc.Scenes) > 0 {
		name = doc.Scenes[defaultScene(doc)].Name
	}
	return &Model{Path: path, Name: name, Meshes: meshes, bounds: b}, nil
}

func defaultScene(doc *gltf.Document) int {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		return *doc.Scene
	}
	return 0
}

// rootNodes returns the nodes of the default scene, or every parentless node when the
// document declares no scene.
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		return doc.Scenes[defaultScene(doc)].Nodes
	}
	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// documentBounds walks the default scene and unions the POSITION bounds of every mesh
// primitive, transformed through the node hierarchy.
func documentBounds(doc *gltf.Document) (geom.Box, int, error) {
	box := geom.Empty()
	meshes := 0
	var walk func(idx int, parent mgl32.Mat4, depth int) error
	walk = func(idx int, parent mgl32.Mat4, depth int) error {
		if depth > maxNodeDepth {
			return fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
		}
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("node %d out of range", idx)
		}
		n := doc.Nodes[idx]
		world := parent.Mul4(nodeMatrix(n))
		if n.Mesh != nil {
			mb, err := meshBounds(doc, *n.Mesh)
			if err != nil {
				return err
			}
			box = box.Union(mb.Transform(world))
			meshes++
		}
		for _, c := range n.Children {
			if err := walk(c, world, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range rootNodes(doc) {
		if err := walk(r, mgl32.Ident4(), 0); err != nil {
			return geom.Empty(), 0, err
		}
	}
	return box, meshes, nil
}

func meshBounds(doc *gltf.Document, meshIdx int) (geom.Box, error) {
	if meshIdx < 0 || meshIdx >= len(doc.Meshes) {
		return geom.Empty(), fmt.Errorf("mesh %d out of range", meshIdx)
	}
	box := geom.Empty()
	for _, p := range doc.Meshes[meshIdx].Primitives {
		accIdx, ok := p.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if accIdx < 0 || accIdx >= len(doc.Accessors) {
			return geom.Empty(), fmt.Errorf("accessor %d out of range", accIdx)
		}
		pb, err := accessorBounds(doc, doc.Accessors[accIdx])
		if err != nil {
			return geom.Empty(), err
		}
		box = box.Union(pb)
	}
	return box, nil
}

// accessorBounds prefers the accessor's declared min/max and falls back to reading the
// positions when an exporter left them out.
func accessorBounds(doc *gltf.Document, acc *gltf.Accessor) (geom.Box, error) {
	if len(acc.Min) >= 3 && len(acc.Max) >= 3 {
		return geom.NewBox(
			mgl32.Vec3{float32(acc.Min[0]), float32(acc.Min[1]), float32(acc.Min[2])},
			mgl32.Vec3{float32(acc.Max[0]), float32(acc.Max[1]), float32(acc.Max[2])},
		), nil
	}
	pos, err := modeler.ReadPosition(doc, acc, nil)
	if err != nil {
		return geom.Empty(), err
	}
	box := geom.Empty()
	for _, p := range pos {
		box = box.ExpandPoint(mgl32.Vec3(p))
	}
	return box, nil
}

// nodeMatrix returns the local transform of n: its matrix when set, else T * R * S.
func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	if n.Matrix != [16]float64{} && n.Matrix != gltf.DefaultMatrix {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}
	t := n.Translation
	m := mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2]))
	if r := n.Rotation; r != [4]float64{} {
		q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
		m = m.Mul4(q.Normalize().Mat4())
	}
	if s := n.Scale; s != [3]float64{} {
		m = m.Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
	}
	return m
}
