package fragment

import "github.com/soypat/fracture/geom"

// WeldCutFaceVertices merges CutVertices that share a position within
// tol into one, remaps every index of both Triangles submeshes,
// Constraints and VertexAdjacency to
// the post-weld indices, and drops any constraint whose endpoints
// collapsed onto the same vertex. Returns the local (0-based,
// CutVertices-relative) old-index -> new-index remap so a caller that
// shares cut geometry between two fragments (the slicer's top/bottom
// pair) can apply the identical remap to the other side.
func (f *Fragment) WeldCutFaceVertices(tol float64) map[int]int {
	base := len(f.Vertices)
	firstByHash := make(map[int64]int, len(f.CutVertices))
	remap := make(map[int]int, len(f.CutVertices)) // old local index -> new local index

	welded := make([]MeshVertex, 0, len(f.CutVertices))
	for i, v := range f.CutVertices {
		h := geom.Hash3(v.Position, tol)
		if existing, ok := firstByHash[h]; ok {
			remap[i] = existing
			continue
		}
		newIdx := len(welded)
		welded = append(welded, v)
		firstByHash[h] = newIdx
		remap[i] = newIdx
	}
	f.CutVertices = welded

	remapUnified := func(idx int) int {
		if idx < base {
			return idx
		}
		return base + remap[idx-base]
	}

	for sm := range f.Triangles {
		for i := range f.Triangles[sm] {
			f.Triangles[sm][i] = remapUnified(f.Triangles[sm][i])
		}
	}

	newConstraints := make([]EdgeConstraint, 0, len(f.Constraints))
	for _, c := range f.Constraints {
		c.V1 = remap[c.V1]
		c.V2 = remap[c.V2]
		if c.V1 == c.V2 {
			continue // degenerate: endpoints collapsed to the same vertex
		}
		newConstraints = append(newConstraints, c)
	}
	f.Constraints = newConstraints

	newAdjacency := make(map[int]int, len(f.VertexAdjacency))
	for cutLocal, nonCut := range f.VertexAdjacency {
		newAdjacency[remap[cutLocal]] = nonCut
	}
	f.VertexAdjacency = newAdjacency

	return remap
}

// ApplyCutVertexRemap rewrites this fragment's cut-face geometry using a
// remap computed by another fragment's WeldCutFaceVertices call (the
// slicer welds on the top side and shares the resulting index space with
// the bottom side, whose cut_vertices are geometrically identical).
func (f *Fragment) ApplyCutVertexRemap(remap map[int]int, weldedCount int) {
	base := len(f.Vertices)
	welded := make([]MeshVertex, weldedCount)
	seen := make([]bool, weldedCount)
	for oldIdx := range f.CutVertices {
		newIdx, ok := remap[oldIdx]
		if ok && !seen[newIdx] {
			welded[newIdx] = f.CutVertices[oldIdx]
			seen[newIdx] = true
		}
	}
	f.CutVertices = welded

	remapUnified := func(idx int) int {
		if idx < base {
			return idx
		}
		return base + remap[idx-base]
	}
	for sm := range f.Triangles {
		for i := range f.Triangles[sm] {
			f.Triangles[sm][i] = remapUnified(f.Triangles[sm][i])
		}
	}
	newConstraints := make([]EdgeConstraint, 0, len(f.Constraints))
	for _, c := range f.Constraints {
		c.V1 = remap[c.V1]
		c.V2 = remap[c.V2]
		if c.V1 == c.V2 {
			continue
		}
		newConstraints = append(newConstraints, c)
	}
	f.Constraints = newConstraints
	newAdjacency := make(map[int]int, len(f.VertexAdjacency))
	for cutLocal, nonCut := range f.VertexAdjacency {
		newAdjacency[remap[cutLocal]] = nonCut
	}
	f.VertexAdjacency = newAdjacency
}
