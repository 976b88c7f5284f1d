package primitives

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"lookbook/internal/geom"
)

// knot winding numbers: the curve wraps p times around the axis and q times through the hole.
const (
	knotP = 2
	knotQ = 3
)

// Triangles tessellates shapes raylib has no generator for (icosahedron, octahedron, torus
// knot, capsule) into flat triangle lists, three floats per vertex, counter-clockwise front
// faces. ok is false for every other kind. g should already have its defaults applied.
func (g Geometry) Triangles() (positions, normals []float32, ok bool) {
	var t triangles
	switch g.Kind {
	case Icosahedron:
		t.polyhedron(icosahedronVertices(), icosahedronFaces, g.Radius)
	case Octahedron:
		t.polyhedron(octahedronVertices, octahedronFaces, g.Radius)
	case Knot:
		t.torusKnot(g.Radius, g.Tube, g.Segments, g.Sides)
	case Capsule:
		t.capsule(g.Radius, g.Height, g.Sides, g.Segments)
	default:
		return nil, nil, false
	}
	return t.pos, t.nrm, true
}

type triangles struct {
	pos []float32
	nrm []float32
}

func (t *triangles) vertex(p, n mgl32.Vec3) {
	t.pos = append(t.pos, p[0], p[1], p[2])
	t.nrm = append(t.nrm, n[0], n[1], n[2])
}

func (t *triangles) flat(a, b, c mgl32.Vec3) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() > 0 {
		n = n.Normalize()
	}
	t.vertex(a, n)
	t.vertex(b, n)
	t.vertex(c, n)
}

// polyhedron projects the vertices onto a sphere of radius r, one flat-shaded face per triple.
func (t *triangles) polyhedron(verts []mgl32.Vec3, faces [][3]int, r float32) {
	for _, f := range faces {
		a := verts[f[0]].Normalize().Mul(r)
		b := verts[f[1]].Normalize().Mul(r)
		c := verts[f[2]].Normalize().Mul(r)
		t.flat(a, b, c)
	}
}

// grid emits two triangles per cell of a (rows+1) x (cols+1) vertex grid, rows major.
func (t *triangles) grid(pts, nrm []mgl32.Vec3, rows, cols int) {
	at := func(i, j int) int { return i*(cols+1) + j }
	for i := 1; i <= rows; i++ {
		for j := 1; j <= cols; j++ {
			a, b, c, d := at(i-1, j-1), at(i, j-1), at(i, j), at(i-1, j)
			for _, k := range [6]int{a, b, d, b, c, d} {
				t.vertex(pts[k], nrm[k])
			}
		}
	}
}

func knotCurve(u, radius float32) mgl32.Vec3 {
	quOverP := float32(knotQ) / knotP * u
	cs := math32.Cos(quOverP)
	return mgl32.Vec3{
		radius * (2 + cs) * 0.5 * math32.Cos(u),
		radius * (2 + cs) * 0.5 * math32.Sin(u),
		radius * math32.Sin(quOverP) * 0.5,
	}
}

// torusKnot sweeps a tube of radius tube along a (2,3) knot curve of radius radius.
func (t *triangles) torusKnot(radius, tube float32, tubular, radial int) {
	var pts, nrm []mgl32.Vec3
	for i := 0; i <= tubular; i++ {
		u := float32(i) / float32(tubular) * knotP * 2 * math32.Pi
		p1 := knotCurve(u, radius)
		p2 := knotCurve(u+0.01, radius)
		tangent := p2.Sub(p1)
		n := p2.Add(p1)
		b := tangent.Cross(n).Normalize()
		n = b.Cross(tangent).Normalize()
		for j := 0; j <= radial; j++ {
			v := float32(j) / float32(radial) * 2 * math32.Pi
			cx := -tube * math32.Cos(v)
			cy := tube * math32.Sin(v)
			p := p1.Add(n.Mul(cx)).Add(b.Mul(cy))
			pts = append(pts, p)
			nrm = append(nrm, p.Sub(p1).Normalize())
		}
	}
	t.grid(pts, nrm, tubular, radial)
}

// capsule lathes a profile of two quarter circles joined by a straight side of length
// length around the Y axis. The shape is centered on the origin.
func (t *triangles) capsule(radius, length float32, capSegments, radial int) {
	half := length / 2
	var profile []mgl32.Vec2
	for i := 0; i <= capSegments; i++ {
		a := -math32.Pi/2 + float32(i)/float32(capSegments)*math32.Pi/2
		profile = append(profile, mgl32.Vec2{radius * math32.Cos(a), -half + radius*math32.Sin(a)})
	}
	for i := 0; i <= capSegments; i++ {
		if i == 0 && length == 0 {
			continue
		}
		a := float32(i) / float32(capSegments) * math32.Pi / 2
		profile = append(profile, mgl32.Vec2{radius * math32.Cos(a), half + radius*math32.Sin(a)})
	}

	var pts, nrm []mgl32.Vec3
	for i := 0; i <= radial; i++ {
		phi := float32(i) / float32(radial) * 2 * math32.Pi
		sin, cos := math32.Sincos(phi)
		for _, p := range profile {
			pts = append(pts, mgl32.Vec3{p[0] * sin, p[1], p[0] * cos})
			n := mgl32.Vec2{p[0], p[1] - mgl32.Clamp(p[1], -half, half)}
			if n.Len() > 0 {
				n = n.Normalize()
			}
			nrm = append(nrm, mgl32.Vec3{n[0] * sin, n[1], n[0] * cos})
		}
	}
	t.grid(pts, nrm, radial, len(profile)-1)
}

// boundsOf returns the box around a flat xyz list.
func boundsOf(positions []float32) geom.Box {
	b := geom.Empty()
	for i := 0; i+2 < len(positions); i += 3 {
		b = b.ExpandPoint(mgl32.Vec3{positions[i], positions[i+1], positions[i+2]})
	}
	return b
}

func icosahedronVertices() []mgl32.Vec3 {
	t := (1 + math32.Sqrt(5)) / 2
	return []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
}

var icosahedronFaces = [][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

var octahedronVertices = []mgl32.Vec3{
	{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
}

var octahedronFaces = [][3]int{
	{0, 2, 4}, {0, 4, 3}, {0, 3, 5}, {0, 5, 2},
	{1, 2, 5}, {1, 5, 3}, {1, 3, 4}, {1, 4, 2},
}
