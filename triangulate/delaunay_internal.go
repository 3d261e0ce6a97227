package triangulate

import (
	"math"

	"github.com/soypat/fracture/geom"
)

// buildDelaunay runs the same normalize/bin-sort/insert pipeline as
// Triangulate but leaves d.tris populated (including the super-triangle)
// for callers that need to post-process before extraction, such as the
// constrained triangulator. Returns the index of the first super-triangle
// vertex.
func (d *Delaunay) buildDelaunay() int {
	normPts, _, _ := normalizeUnitSquare(d.pts)
	allPts := make([]geom.Vec2, d.n+3)
	copy(allPts, normPts)
	superBase := d.n
	allPts[superBase] = superA
	allPts[superBase+1] = superB
	allPts[superBase+2] = superC

	d.tris = make([]triangle, 0, 2*d.n+1)
	// (superA, superC, superB) is the counter-clockwise order of the
	// super-triangle's corners.
	d.tris = append(d.tris, triangle{
		v:     [3]int{superBase, superBase + 2, superBase + 1},
		adj:   [3]int{-1, -1, -1},
		alive: true,
	})
	d.hint = 0

	binsPerAxis := int(math.Ceil(math.Sqrt(float64(d.n))))
	if binsPerAxis < 1 {
		binsPerAxis = 1
	}
	order := AssignBins(normPts, binsPerAxis)
	order = BinSort(order, binsPerAxis*binsPerAxis, len(order))
	d.normPts = allPts

	for _, tp := range order {
		d.insert(allPts, tp.Index)
	}
	return superBase
}
