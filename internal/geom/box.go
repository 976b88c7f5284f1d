package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis-aligned bounding box. The zero-size box at the origin is a
// valid (degenerate) box; use Empty for a box that contains nothing.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Empty returns a box that contains no points. Expanding it by any point yields
// a box of zero size at that point.
func Empty() Box {
	inf := math32.Inf(1)
	return Box{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// NewBox returns the box spanning min and max (components are sorted per axis).
func NewBox(min, max mgl32.Vec3) Box {
	b := Empty()
	b = b.ExpandPoint(min)
	return b.ExpandPoint(max)
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// ExpandPoint returns the smallest box containing b and p.
func (b Box) ExpandPoint(p mgl32.Vec3) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	if o.IsEmpty() {
		return b
	}
	return b.ExpandPoint(o.Min).ExpandPoint(o.Max)
}

// Center returns the middle of the box. Empty boxes report the origin.
func (b Box) Center() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent along each axis. Empty boxes report zero.
func (b Box) Size() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// MaxDim returns the largest component of Size.
func (b Box) MaxDim() float32 {
	s := b.Size()
	return math32.Max(s[0], math32.Max(s[1], s[2]))
}

// Corners returns the eight corners of the box.
func (b Box) Corners() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := 0; i < 8; i++ {
		out[i] = mgl32.Vec3{
			pick(i&1 != 0, b.Max[0], b.Min[0]),
			pick(i&2 != 0, b.Max[1], b.Min[1]),
			pick(i&4 != 0, b.Max[2], b.Min[2]),
		}
	}
	return out
}

// Transform returns the axis-aligned box enclosing b after applying m.
func (b Box) Transform(m mgl32.Mat4) Box {
	if b.IsEmpty() {
		return b
	}
	out := Empty()
	for _, c := range b.Corners() {
		out = out.ExpandPoint(mgl32.TransformCoordinate(c, m))
	}
	return out
}

func pick(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}
