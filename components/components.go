// Package components implements the connected-component extractor: after
// a non-convex slice, a single Fragment may contain several disconnected
// islands of geometry (triangle adjacency plus positional welding and
// cut/non-cut vertex adjacency). Extract splits it into one Fragment per
// island.
package components

import (
	"github.com/soypat/fracture/fragment"
	"github.com/soypat/fracture/geom"
	"github.com/soypat/fracture/unionfind"
)

// Extract partitions f into its connected components. See spec §4.7:
//
//  1. a Union-Find over the unified vertex space (Vertices then CutVertices);
//  2. coincident Vertices (by position, within tol) are unioned — slicing
//     can duplicate vertices along a shared edge of neighbouring triangles;
//  3. each cut vertex is unioned with its VertexAdjacency partner, non-cut
//     index first, so a non-cut index stays the set's root on a tie;
//  4. every triangle's three vertices are unioned pairwise, in both
//     submeshes;
//  5. one new Fragment is built per distinct root, re-adding vertices,
//     cut vertices, adjacency, constraints and triangles under the new
//     fragment's local numbering.
func Extract(f *fragment.Fragment, tol float64) []*fragment.Fragment {
	base := len(f.Vertices)
	uf := unionfind.New(f.VertexCount())

	byHash := make(map[int64]int, len(f.Vertices))
	for i, v := range f.Vertices {
		h := geom.Hash3(v.Position, tol)
		if j, ok := byHash[h]; ok {
			uf.Union(j, i)
		} else {
			byHash[h] = i
		}
	}

	for cutLocal, nonCut := range f.VertexAdjacency {
		uf.Union(nonCut, base+cutLocal)
	}

	for sm := 0; sm < 2; sm++ {
		tris := f.Triangles[sm]
		for i := 0; i+2 < len(tris); i += 3 {
			a, b, c := tris[i], tris[i+1], tris[i+2]
			uf.Union(a, b)
			uf.Union(b, c)
		}
	}

	var out []*fragment.Fragment
	rootIndex := make(map[int]int, 8)
	remap := make(map[int]int, uf.Len()) // old unified index -> new unified index

	destFor := func(root int) *fragment.Fragment {
		idx, ok := rootIndex[root]
		if !ok {
			idx = len(out)
			rootIndex[root] = idx
			out = append(out, fragment.New())
		}
		return out[idx]
	}

	// Non-cut vertices are appended first for every root, then cut
	// vertices: AddCutVertex's len(Vertices)+len(CutVertices)-1 formula
	// (spec §9 Open Question 2) depends on that ordering to land on the
	// right unified index, so this loop order is not incidental.
	for i, v := range f.Vertices {
		dest := destFor(uf.Find(i))
		remap[i] = dest.AddVertex(v)
	}
	for i, v := range f.CutVertices {
		unified := base + i
		dest := destFor(uf.Find(unified))
		remap[unified] = dest.AddCutVertex(v)
	}

	for cutLocal, nonCut := range f.VertexAdjacency {
		unified := base + cutLocal
		newCut, ok1 := remap[unified]
		newNonCut, ok2 := remap[nonCut]
		if !ok1 || !ok2 {
			continue
		}
		dest := destFor(uf.Find(unified))
		dest.VertexAdjacency[newCut-len(dest.Vertices)] = newNonCut
	}

	for _, c := range f.Constraints {
		u1, u2 := base+c.V1, base+c.V2
		dest := destFor(uf.Find(u1))
		dest.Constraints = append(dest.Constraints, fragment.EdgeConstraint{
			V1: remap[u1] - len(dest.Vertices),
			V2: remap[u2] - len(dest.Vertices),
			T1: -1, T2: -1, T1Edge: -1,
		})
	}

	for sm := 0; sm < 2; sm++ {
		tris := f.Triangles[sm]
		for i := 0; i+2 < len(tris); i += 3 {
			a, b, c := tris[i], tris[i+1], tris[i+2]
			dest := destFor(uf.Find(a))
			dest.AddTriangle(sm, remap[a], remap[b], remap[c])
		}
	}

	return out
}
