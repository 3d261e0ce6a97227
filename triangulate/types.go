// Package triangulate implements the two Delaunay triangulators used to
// fill a planar cut face: an unconstrained Bowyer-Watson triangulator for
// convex cut faces (§4.4) and a constrained extension that additionally
// enforces edge constraints and flood-fills the boundary for non-convex
// cut faces with holes (§4.5).
//
// Both share the triangle-adjacency-by-index representation: triangles
// reference each other by integer id into a triangle table, never by
// pointer, matching the arena-style ownership the design notes call out
// as worth preserving.
package triangulate

import (
	"math"

	"github.com/soypat/fracture/geom"
)

// TriangulationPoint pairs a caller-facing index with the 2D coordinates
// used internally by the triangulators and the bin it was assigned for
// insertion-order sorting.
type TriangulationPoint struct {
	Index int
	Coords geom.Vec2
	Bin    int
}

// EdgeConstraint is the triangulator-facing view of a required edge. The
// T1/T2/T1Edge scratch fields are filled in during constrained
// triangulation bookkeeping and otherwise meaningless.
type EdgeConstraint struct {
	V1, V2         int
	T1, T2, T1Edge int
}

// Quad records the four vertices and two triangle ids describing a
// diamond of two triangles sharing an edge, used by diagonal-flip
// operations. Unused fields are left at their zero value when a flip
// does not need them.
type Quad struct {
	// A, B are the shared-edge endpoints; P is T1's opposite vertex, C is
	// T2's opposite vertex.
	A, B, P, C int
	T1, T2     int
}

// triangle is the internal per-triangle record: three CCW vertex indices
// and, for edge i = (v[i], v[(i+1)%3]), the id of the triangle sharing
// that edge (-1 if none).
type triangle struct {
	v     [3]int
	adj   [3]int
	alive bool
}

func edgeIndex(t triangle, a, b int) int {
	for i := 0; i < 3; i++ {
		if t.v[i] == a && t.v[(i+1)%3] == b {
			return i
		}
	}
	return -1
}

// hasVertex reports whether t references v.
func (t triangle) hasVertex(v int) bool {
	return t.v[0] == v || t.v[1] == v || t.v[2] == v
}

// Normalization holds the projection basis and scale used to map 3D
// coplanar points to 2D and back, so callers (the slicer) can reconstruct
// UV coordinates from 2D triangulation coordinates.
type Normalization struct {
	E1, E2, E3 geom.Vec3 // E2 is the supplied plane normal
	Origin     geom.Vec3
	// Scale is the normalization factor: max(x-range, y-range) of the
	// projected points, used to map projected coordinates into [0,1]^2.
	Scale float64
	Min   geom.Vec2
}

// Project3To2 computes the basis (first two distinct input vertices span
// e1; e2 is normal; e3 = e1 x e2) and projects every point to 2D
// (p.e1, p.e3), returning the points alongside the Normalization needed
// to invert the projection later (e.g. for UV reconstruction).
func Project3To2(points []geom.Vec3, normal geom.Vec3) ([]geom.Vec2, Normalization) {
	norm := Normalization{E2: normal}
	if len(points) == 0 {
		return nil, norm
	}
	norm.Origin = points[0]
	var e1 geom.Vec3
	for _, p := range points[1:] {
		d := p.Sub(points[0])
		if d.Len() > 1e-9 {
			e1 = d.Normalized()
			break
		}
	}
	if e1 == (geom.Vec3{}) {
		e1 = geom.Vec3{X: 1}
	}
	e3 := e1.Cross(normal).Normalized()
	norm.E1 = e1
	norm.E3 = e3

	out := make([]geom.Vec2, len(points))
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		rel := p.Sub(norm.Origin)
		x := rel.Dot(e1)
		y := rel.Dot(e3)
		out[i] = geom.Vec2{X: x, Y: y}
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	norm.Min = geom.Vec2{X: minX, Y: minY}
	scale := max(maxX-minX, maxY-minY)
	if scale < 1e-12 {
		scale = 1
	}
	norm.Scale = scale
	return out, norm
}
