package triangulate

import (
	"math"

	"github.com/soypat/fracture/geom"
)

// super-triangle coordinates, fixed far outside the normalized [0,1]^2
// domain per spec.
var (
	superA = geom.Vec2{X: -100, Y: -100}
	superB = geom.Vec2{X: 0, Y: 100}
	superC = geom.Vec2{X: 100, Y: -100}
)

// Delaunay is an unconstrained Bowyer-Watson Delaunay triangulator with
// bin-sorted insertion, for convex cut faces. Construct with
// NewDelaunay; Triangulate runs the algorithm once.
type Delaunay struct {
	pts     []geom.Vec2 // real input points in the caller's numbering, indices [0,n)
	n       int
	tris    []triangle
	hint    int       // last-created triangle id, used as a walk starting point
	normPts []geom.Vec2 // all points including super-triangle, post-normalization
}

// NewDelaunay prepares a triangulator over points, which are assumed
// coplanar; points are projected by the caller (see Project3To2) before
// being passed here in their 2D form.
func NewDelaunay(points []geom.Vec2) *Delaunay {
	return &Delaunay{pts: points, n: len(points)}
}

// Triangulate runs Bowyer-Watson insertion and returns the resulting
// triangle index list in the caller's original point numbering. Returns
// nil for fewer than 3 input points.
func (d *Delaunay) Triangulate() []int {
	if d.n < 3 {
		return nil
	}
	superBase := d.buildDelaunay()
	out := make([]int, 0, len(d.tris)*3)
	for _, t := range d.tris {
		if !t.alive {
			continue
		}
		if t.v[0] >= superBase || t.v[1] >= superBase || t.v[2] >= superBase {
			continue
		}
		out = append(out, t.v[0], t.v[1], t.v[2])
	}
	return out
}

// normalizeUnitSquare maps points into [0,1]^2 using a single uniform
// scale factor (max of the x and y ranges), as required so the
// super-triangle's fixed coordinates safely enclose every input point.
func normalizeUnitSquare(points []geom.Vec2) (out []geom.Vec2, scale float64, min geom.Vec2) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = mathMin(minX, p.X), mathMax(maxX, p.X)
		minY, maxY = mathMin(minY, p.Y), mathMax(maxY, p.Y)
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	s := mathMax(rangeX, rangeY)
	if s < 1e-12 {
		s = 1
	}
	out = make([]geom.Vec2, len(points))
	for i, p := range points {
		out[i] = geom.Vec2{X: (p.X - minX) / s, Y: (p.Y - minY) / s}
	}
	return out, s, geom.Vec2{X: minX, Y: minY}
}

func mathMin(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func mathMax(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// insert locates the triangle containing pts[pointIdx], splits it into
// three, and legalizes the affected edges via the diagonal-swap stack.
func (d *Delaunay) insert(pts []geom.Vec2, pointIdx int) {
	p := pts[pointIdx]
	home := d.locate(pts, p, d.hint)
	id0, id1, id2 := d.split(home, pointIdx)
	d.hint = id0

	type edgePair struct{ newTri, neighbor int }
	stack := []edgePair{
		{id0, d.tris[id0].adj[0]},
		{id1, d.tris[id1].adj[0]},
		{id2, d.tris[id2].adj[0]},
	}

	const maxSwaps = 100000
	swaps := 0
	for len(stack) > 0 && swaps < maxSwaps {
		swaps++
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.neighbor == -1 || !d.tris[e.neighbor].alive || !d.tris[e.newTri].alive {
			continue
		}
		t1 := d.tris[e.newTri]
		// Find the shared edge from t1's perspective (the one adjacent to e.neighbor).
		shared := -1
		for i := 0; i < 3; i++ {
			if t1.adj[i] == e.neighbor {
				shared = i
				break
			}
		}
		if shared == -1 {
			continue
		}
		a, b := t1.v[shared], t1.v[(shared+1)%3]
		pp := t1.v[(shared+2)%3]
		t2 := d.tris[e.neighbor]
		i2 := edgeIndex(t2, b, a)
		if i2 == -1 {
			continue
		}
		c := t2.v[(i2+2)%3]
		if !inCircumcircle(pts[a], pts[b], pts[pp], pts[c]) {
			continue
		}
		newID1, newID2 := d.flip(e.newTri, e.neighbor)
		// Push the two new edges not incident to the inserted point back
		// onto the stack.
		stack = append(stack,
			edgePair{newID1, d.tris[newID1].adj[0]},
			edgePair{newID2, d.tris[newID2].adj[0]},
		)
	}
}

// locate walks triangle adjacency starting at hint until it finds a
// triangle containing p, crossing whichever edge p lies to the right of.
func (d *Delaunay) locate(pts []geom.Vec2, p geom.Vec2, hint int) int {
	cur := hint
	if cur >= len(d.tris) || !d.tris[cur].alive {
		cur = 0
		for i, t := range d.tris {
			if t.alive {
				cur = i
				break
			}
		}
	}
	const maxSteps = 100000
	visited := 0
	for visited < maxSteps {
		visited++
		t := d.tris[cur]
		moved := false
		for i := 0; i < 3; i++ {
			a, b := pts[t.v[i]], pts[t.v[(i+1)%3]]
			if geom.IsPointOnRightSideOfLine(a, b, p) && t.adj[i] != -1 && d.tris[t.adj[i]].alive {
				cur = t.adj[i]
				moved = true
				break
			}
		}
		if !moved {
			return cur
		}
	}
	return cur
}

// split replaces triangle id (verts a,b,c) with three triangles
// (a,b,p),(b,c,p),(c,a,p), reusing id for the first and appending two
// more, fixing adjacency both internally and with external neighbors.
func (d *Delaunay) split(id, p int) (id0, id1, id2 int) {
	old := d.tris[id]
	a, b, c := old.v[0], old.v[1], old.v[2]
	adjAB, adjBC, adjCA := old.adj[0], old.adj[1], old.adj[2]

	id0 = id
	id1 = len(d.tris)
	id2 = id1 + 1

	d.tris[id0] = triangle{v: [3]int{a, b, p}, adj: [3]int{adjAB, id1, id2}, alive: true}
	d.tris = append(d.tris, triangle{v: [3]int{b, c, p}, adj: [3]int{adjBC, id2, id0}, alive: true})
	d.tris = append(d.tris, triangle{v: [3]int{c, a, p}, adj: [3]int{adjCA, id0, id1}, alive: true})

	d.rebind(adjAB, b, a, id0)
	d.rebind(adjBC, c, b, id1)
	d.rebind(adjCA, a, c, id2)
	return id0, id1, id2
}

// rebind updates neighbor's adjacency entry for the edge (from,to) (as
// seen from neighbor, i.e. the reverse of the edge as seen from the
// triangle that now owns it) to point at newID.
func (d *Delaunay) rebind(neighbor, from, to, newID int) {
	if neighbor == -1 {
		return
	}
	nt := d.tris[neighbor]
	idx := edgeIndex(nt, from, to)
	if idx == -1 {
		return
	}
	d.tris[neighbor].adj[idx] = newID
}

// flip swaps the shared diagonal of id1 (verts a,b,p in some rotation,
// opposite vertex p) and id2 (opposite vertex c) from edge (a,b) to edge
// (p,c), reusing both triangle ids. Returns the two resulting ids (same
// as id1, id2) for convenience at call sites.
func (d *Delaunay) flip(id1, id2 int) (int, int) {
	t1 := d.tris[id1]
	shared := -1
	for i := 0; i < 3; i++ {
		if t1.adj[i] == id2 {
			shared = i
			break
		}
	}
	a, b := t1.v[shared], t1.v[(shared+1)%3]
	p := t1.v[(shared+2)%3]
	adjBP := t1.adj[(shared+1)%3] // edge (b,p)
	adjPA := t1.adj[(shared+2)%3] // edge (p,a)

	t2 := d.tris[id2]
	i2 := edgeIndex(t2, b, a)
	c := t2.v[(i2+2)%3]
	adjAC := t2.adj[(i2+1)%3] // edge (a,c)
	adjCB := t2.adj[(i2+2)%3] // edge (c,b)

	d.tris[id1] = triangle{v: [3]int{a, c, p}, adj: [3]int{adjAC, id2, adjPA}, alive: true}
	d.tris[id2] = triangle{v: [3]int{c, b, p}, adj: [3]int{adjCB, adjBP, id1}, alive: true}

	d.rebind(adjAC, c, a, id1)
	d.rebind(adjBP, p, b, id2)
	return id1, id2
}

// inCircumcircle reports whether point d lies strictly inside the
// circumcircle of the CCW triangle (a,b,c). This is the robust
// cross/dot-product determinant expansion of the classic incircle
// predicate.
func inCircumcircle(a, b, c, pd geom.Vec2) bool {
	adx, ady := a.X-pd.X, a.Y-pd.Y
	bdx, bdy := b.X-pd.X, b.Y-pd.Y
	cdx, cdy := c.X-pd.X, c.Y-pd.Y
	adSq := adx*adx + ady*ady
	bdSq := bdx*bdx + bdy*bdy
	cdSq := cdx*cdx + cdy*cdy
	det := adx*(bdy*cdSq-cdy*bdSq) - ady*(bdx*cdSq-cdx*bdSq) + adSq*(bdx*cdy-cdx*bdy)
	return det > 1e-12
}
