package slice

import (
	"github.com/soypat/fracture/fragment"
	"github.com/soypat/fracture/geom"
	"github.com/soypat/fracture/triangulate"
)

// fillCutFace welds top's freshly created cut vertices (both sides share
// identical cut geometry at this point, only top and bottom's local
// numbering may differ), applies the same remap to bottom, triangulates
// once, and appends the mirrored triangle lists with opposite winding so
// top's cut face normal equals -n and bottom's equals +n.
//
// A triangulation failure (spec §7 TriangulationFailure) leaves the cut
// face unfilled and is not itself an error: surface triangles on both
// sides remain correct either way. The returned bool reports whether a
// failure occurred so callers can log it and count it in Stats.
func fillCutFace(top, bottom *fragment.Fragment, n geom.Vec3, opts Options) bool {
	remap := top.WeldCutFaceVertices(geom.DefaultTolerance)
	bottom.ApplyCutVertexRemap(remap, len(top.CutVertices))

	if len(top.CutVertices) < 3 {
		return false
	}

	positions := make([]geom.Vec3, len(top.CutVertices))
	for i, v := range top.CutVertices {
		positions[i] = v.Position
	}
	// Project3To2 builds its basis with e3 = e1 x n, so the triangulator's
	// CCW winding in that basis directly yields a face normal of -n for
	// the top side.
	coords2D, norm := triangulate.Project3To2(positions, n)

	var triIdx []int
	if opts.Convex {
		triIdx = triangulate.NewDelaunay(coords2D).Triangulate()
	} else {
		edges := make([]triangulate.EdgeConstraint, len(top.Constraints))
		for i, c := range top.Constraints {
			edges[i] = triangulate.EdgeConstraint{V1: c.V1, V2: c.V2, T1: -1, T2: -1, T1Edge: -1}
		}
		triIdx = triangulate.NewConstrained(coords2D, edges).Triangulate()
	}
	if len(triIdx) == 0 {
		opts.logger().Warn("slice: cut face triangulation produced no triangles, leaving it unfilled",
			"cut_vertices", len(top.CutVertices), "constraints", len(top.Constraints), "convex", opts.Convex)
		return true
	}

	for i := range top.CutVertices {
		uv := geom.Vec2{
			X: coords2D[i].X*opts.TextureScale.X*norm.Scale + opts.TextureOffset.X,
			Y: coords2D[i].Y*opts.TextureScale.Y*norm.Scale + opts.TextureOffset.Y,
		}
		top.CutVertices[i].Normal = n.Negate()
		top.CutVertices[i].UV = uv
		bottom.CutVertices[i].Normal = n
		bottom.CutVertices[i].UV = uv
	}

	topBase := len(top.Vertices)
	botBase := len(bottom.Vertices)
	for i := 0; i+2 < len(triIdx); i += 3 {
		a, b, c := triIdx[i], triIdx[i+1], triIdx[i+2]
		top.AddTriangle(1, topBase+a, topBase+b, topBase+c)
		// Reverse winding on the bottom side so its cut-face normal is +n.
		bottom.AddTriangle(1, botBase+a, botBase+c, botBase+b)
	}
	return false
}
