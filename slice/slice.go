// Package slice implements the slicing primitive shared by the
// recursive fracture driver and the Voronoi carver: splitting a Fragment
// by an oriented plane, interpolating vertex attributes across cut
// edges, recording cut-face edge constraints, and delegating cut-face
// fill to one of the two triangulators in package triangulate.
package slice

import (
	"log/slog"

	"github.com/soypat/fracture/fragment"
	"github.com/soypat/fracture/geom"
)

// Options configures a single slice operation.
type Options struct {
	// Normal points toward the "top" slice.
	Normal geom.Vec3
	Origin geom.Vec3
	// Convex selects the unconstrained triangulator for cut-face fill
	// (fast, assumes the cut face has no holes); false selects the
	// constrained triangulator.
	Convex bool
	// TextureScale/TextureOffset map 2D cut-face triangulation
	// coordinates to cut-face UVs.
	TextureScale  geom.Vec2
	TextureOffset geom.Vec2

	Logger *slog.Logger
}

// DefaultOptions returns Options with unit texture scale and zero offset;
// Normal/Origin/Convex are still the caller's responsibility to set.
func DefaultOptions() Options {
	return Options{
		TextureScale: geom.Vec2{X: 1, Y: 1},
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Slice splits f by the oriented plane (opts.Normal, opts.Origin) into a
// top fragment (opts.Normal side) and a bottom fragment. triangulationFailed
// reports whether a cut face was left unfilled (spec §7 TriangulationFailure:
// log-only, not an error). See package doc and spec §4.6 for the full
// algorithm.
func Slice(f *fragment.Fragment, opts Options) (top, bottom *fragment.Fragment, triangulationFailed bool, err error) {
	n := opts.Normal
	if n.Len() < 1e-12 {
		// DegenerateGeometry: return the input unchanged on the top side,
		// empty on the bottom, rather than erroring.
		return f.Clone(), fragment.New(), false, nil
	}
	n = n.Normalized()
	o := opts.Origin

	top = fragment.New()
	bottom = fragment.New()

	vcount := f.VertexCount()
	side := make([]bool, vcount) // true = above/top
	for i := 0; i < vcount; i++ {
		v := f.VertexAt(i)
		above := geom.IsPointAbovePlane(v.Position, n, o)
		side[i] = above
		dest := bottom
		if above {
			dest = top
		}
		var newIdx int
		if f.IsCutIndex(i) {
			newIdx = dest.AddCutVertex(v)
		} else {
			newIdx = dest.AddVertex(v)
		}
		dest.IndexMap[i] = newIdx
	}
	// Carry forward vertex adjacency for cut vertices that survived
	// unsplit onto a single side, translating both the cut-local and the
	// referenced non-cut index into that side's local numbering.
	for cutLocal, nonCut := range f.VertexAdjacency {
		unifiedCut := len(f.Vertices) + cutLocal
		dest := bottom
		if side[unifiedCut] {
			dest = top
		}
		newCutUnified, ok1 := dest.IndexMap[unifiedCut]
		newNonCut, ok2 := dest.IndexMap[nonCut]
		if ok1 && ok2 {
			dest.VertexAdjacency[newCutUnified-len(dest.Vertices)] = newNonCut
		}
	}

	for sm := 0; sm < 2; sm++ {
		tris := f.Triangles[sm]
		for i := 0; i+2 < len(tris); i += 3 {
			a, b, c := tris[i], tris[i+1], tris[i+2]
			splitTriangle(f, top, bottom, side, sm, a, b, c, n, o)
		}
	}

	triangulationFailed = fillCutFace(top, bottom, n, opts)
	return top, bottom, triangulationFailed, nil
}

// addMapped appends a triangle to dest's submesh sm, translating unified
// source indices through dest.IndexMap.
func addMapped(dest *fragment.Fragment, sm int, a, b, c int) {
	dest.AddTriangle(sm, dest.IndexMap[a], dest.IndexMap[b], dest.IndexMap[c])
}

// splitTriangle classifies one source triangle and emits it (whole or
// subdivided) to top and/or bottom.
func splitTriangle(f, top, bottom *fragment.Fragment, side []bool, sm int, a, b, c int, n, o geom.Vec3) {
	sa, sb, sc := side[a], side[b], side[c]
	if sa == sb && sb == sc {
		dest := bottom
		if sa {
			dest = top
		}
		addMapped(dest, sm, a, b, c)
		return
	}

	// Rotate so that v1,v2 share a side and v3 is the singleton,
	// preserving original winding (a,b,c).
	var v1, v2, v3 int
	switch {
	case sa == sb:
		v1, v2, v3 = a, b, c
	case sb == sc:
		v1, v2, v3 = b, c, a
	default:
		v1, v2, v3 = c, a, b
	}
	twoSide := side[v1] // the side holding v1,v2

	p1, p2, p3 := f.VertexAt(v1), f.VertexAt(v2), f.VertexAt(v3)
	cut13, s13, ok13 := geom.LinePlaneIntersection(p1.Position, p3.Position, n, o)
	cut23, s23, ok23 := geom.LinePlaneIntersection(p2.Position, p3.Position, n, o)
	if !ok13 || !ok23 {
		// Numerical degeneracy: treat the whole triangle as belonging to
		// the majority side rather than producing a malformed cut.
		dest := bottom
		if twoSide {
			dest = top
		}
		addMapped(dest, sm, a, b, c)
		return
	}

	vert13 := fragment.MeshVertex{
		Position: cut13,
		Normal:   geom.Lerp3(p1.Normal, p3.Normal, s13),
		UV:       geom.Lerp2(p1.UV, p3.UV, s13),
	}
	vert23 := fragment.MeshVertex{
		Position: cut23,
		Normal:   geom.Lerp3(p2.Normal, p3.Normal, s23),
		UV:       geom.Lerp2(p2.UV, p3.UV, s23),
	}

	top13 := top.AddCutVertex(vert13)
	top23 := top.AddCutVertex(vert23)
	bot13 := bottom.AddCutVertex(vert13)
	bot23 := bottom.AddCutVertex(vert23)

	twoDest, oneDest := bottom, top
	twoLocal13, twoLocal23 := bot13, bot23
	oneLocal13, oneLocal23 := top13, top23
	if twoSide {
		twoDest, oneDest = top, bottom
		twoLocal13, twoLocal23 = top13, top23
		oneLocal13, oneLocal23 = bot13, bot23
	}

	v1New, v2New := twoDest.IndexMap[v1], twoDest.IndexMap[v2]
	twoDest.AddTriangle(sm, twoLocal23, twoLocal13, v2New)
	twoDest.AddTriangle(sm, twoLocal13, v1New, v2New)

	v3New := oneDest.IndexMap[v3]
	oneDest.AddTriangle(sm, v3New, oneLocal13, oneLocal23)

	// The piece holding v1,v2 bounds the cut edge as 23->13 and the piece
	// holding v3 as 13->23; each records the edge the other way round, so
	// each side's constraints form one loop around its cut face: CCW in
	// fillCutFace's projection (normal -n) on top, the reverse (+n) on
	// the bottom.
	recordConstraint(twoDest, twoLocal13, twoLocal23, true)
	recordConstraint(oneDest, oneLocal13, oneLocal23, false)
}

// recordConstraint appends an edge constraint between two cut vertices
// expressed as unified indices, converting to the cut-local numbering
// Fragment.Constraints uses. forward records the edge as A->B, otherwise
// as B->A.
func recordConstraint(dest *fragment.Fragment, unifiedA, unifiedB int, forward bool) {
	base := len(dest.Vertices)
	a, b := unifiedA-base, unifiedB-base
	c := fragment.EdgeConstraint{T1: -1, T2: -1, T1Edge: -1}
	if forward {
		c.V1, c.V2 = a, b
	} else {
		c.V1, c.V2 = b, a
	}
	dest.Constraints = append(dest.Constraints, c)
}
