package triangulate

import "github.com/soypat/fracture/geom"

// Constrained extends Delaunay with edge constraints, for non-convex cut
// faces with holes. After the unconstrained phase each constraint is
// enforced by swapping away intersecting edges and re-legalizing, then
// triangles outside the constrained region are discarded by a directed
// flood fill from the constraint boundary.
type Constrained struct {
	Delaunay
	edges []EdgeConstraint
}

// NewConstrained prepares a constrained triangulator. edges reference
// points by the same indices as points.
func NewConstrained(points []geom.Vec2, edges []EdgeConstraint) *Constrained {
	return &Constrained{
		Delaunay: Delaunay{pts: points, n: len(points)},
		edges:    edges,
	}
}

// Triangulate runs the unconstrained Bowyer-Watson pass, enforces every
// edge constraint, and discards triangles outside the constrained region
// via flood fill. Returns nil for fewer than 3 points.
func (c *Constrained) Triangulate() []int {
	if c.n < 3 {
		return nil
	}
	superBase := c.buildDelaunay()
	for _, e := range c.edges {
		c.enforceConstraint(e.V1, e.V2)
	}
	return c.extractConstrained(superBase)
}

type constraintKey [2]int

// findOwningTriangles returns the (up to two) alive triangle ids sharing
// undirected edge (a,b). Missing neighbors are -1.
func (c *Constrained) findOwningTriangles(a, b int) (t1, t2 int) {
	t1, t2 = -1, -1
	for id, t := range c.tris {
		if !t.alive {
			continue
		}
		if edgeIndex(t, a, b) != -1 {
			t1 = id
		} else if edgeIndex(t, b, a) != -1 {
			t2 = id
		}
	}
	return t1, t2
}

type queuedEdge struct {
	a, b   int
	t1, t2 int
}

// enforceConstraint makes sure vi-vj is an edge of the triangulation,
// following spec §4.5 steps 1-3: find intersecting edges, swap them away
// (re-queueing when the quad isn't convex or the new diagonal still
// crosses), then restore the Delaunay property on the newly introduced
// edges while respecting the constraint itself.
func (c *Constrained) enforceConstraint(vi, vj int) {
	if vi == vj {
		return
	}
	if t1, t2 := c.findOwningTriangles(vi, vj); t1 != -1 || t2 != -1 {
		return // already an edge, nothing to do
	}
	pts := c.normPts
	a, b := pts[vi], pts[vj]

	var queue []queuedEdge
	for id, t := range c.tris {
		if !t.alive {
			continue
		}
		for i := 0; i < 3; i++ {
			e1, e2 := t.v[i], t.v[(i+1)%3]
			if e1 == vi || e1 == vj || e2 == vi || e2 == vj {
				continue // edges incident to the constraint's own endpoints never cross it
			}
			if e1 > e2 {
				continue // dedup: only consider each undirected edge once, from the lower-first owner
			}
			if !geom.LinesIntersect(a, b, pts[e1], pts[e2], false) {
				continue
			}
			nb := t.adj[i]
			if nb == -1 {
				continue
			}
			queue = append(queue, queuedEdge{e1, e2, id, nb})
		}
	}

	var newEdges []queuedEdge
	const maxPasses = 4
	stall := 0
	for len(queue) > 0 && stall < len(queue)+maxPasses {
		e := queue[0]
		queue = queue[1:]
		if !c.tris[e.t1].alive || !c.tris[e.t2].alive {
			continue
		}
		quad, ok := c.makeQuad(e.t1, e.t2)
		if !ok {
			queue = append(queue, e)
			stall++
			continue
		}
		if !isConvexQuad(pts[quad.A], pts[quad.B], pts[quad.P], pts[quad.C]) {
			queue = append(queue, e)
			stall++
			continue
		}
		c.flip(e.t1, e.t2)
		stall = 0
		if geom.LinesIntersect(a, b, pts[quad.P], pts[quad.C], false) {
			queue = append(queue, queuedEdge{quad.P, quad.C, e.t1, e.t2})
		} else {
			newEdges = append(newEdges, queuedEdge{quad.P, quad.C, e.t1, e.t2})
		}
	}

	// Restore Delaunay property on newly introduced edges, skipping the
	// constraint edge itself and repeating until a full pass swaps
	// nothing.
	changed := true
	passes := 0
	for changed && passes < maxPasses+len(newEdges) {
		changed = false
		passes++
		for i, e := range newEdges {
			if (e.a == vi && e.b == vj) || (e.a == vj && e.b == vi) {
				continue
			}
			t1, t2 := c.findOwningTriangles(e.a, e.b)
			if t1 == -1 || t2 == -1 {
				continue
			}
			quad, ok := c.makeQuad(t1, t2)
			if !ok {
				continue
			}
			if !inCircumcircle(pts[quad.A], pts[quad.B], pts[quad.P], pts[quad.C]) {
				continue
			}
			c.flip(t1, t2)
			newEdges[i] = queuedEdge{quad.P, quad.C, t1, t2}
			changed = true
		}
	}
}

// makeQuad identifies the diamond of vertices A,B (shared edge),
// P (t1's opposite vertex), C (t2's opposite vertex) for triangles t1,t2.
func (c *Constrained) makeQuad(t1id, t2id int) (Quad, bool) {
	t1 := c.tris[t1id]
	shared := -1
	for i := 0; i < 3; i++ {
		if t1.adj[i] == t2id {
			shared = i
			break
		}
	}
	if shared == -1 {
		return Quad{}, false
	}
	a, b := t1.v[shared], t1.v[(shared+1)%3]
	p := t1.v[(shared+2)%3]
	t2 := c.tris[t2id]
	i2 := edgeIndex(t2, b, a)
	if i2 == -1 {
		return Quad{}, false
	}
	cc := t2.v[(i2+2)%3]
	return Quad{A: a, B: b, P: p, C: cc, T1: t1id, T2: t2id}, true
}

// isConvexQuad reports whether diagonals A-B and P-C of quadrilateral
// A,P,B,C cross, i.e. the quad is convex and the A-B diagonal can be
// legally swapped for the P-C diagonal.
func isConvexQuad(a, b, p, c geom.Vec2) bool {
	return geom.LinesIntersect(a, b, p, c, false)
}

// extractConstrained discards triangles outside the constrained region
// (via a directed flood fill seeded at boundary-adjacent triangles) and
// any triangle still touching a super-triangle vertex.
func (c *Constrained) extractConstrained(superBase int) []int {
	forward := make(map[constraintKey]bool, len(c.edges)*2)
	for _, e := range c.edges {
		forward[constraintKey{e.V1, e.V2}] = true
	}

	keep := make([]bool, len(c.tris))
	visited := make([]bool, len(c.tris))
	var queue []int
	for id, t := range c.tris {
		if !t.alive || visited[id] {
			continue
		}
		for i := 0; i < 3; i++ {
			a, b := t.v[i], t.v[(i+1)%3]
			if forward[constraintKey{a, b}] {
				visited[id] = true
				keep[id] = true
				queue = append(queue, id)
				break
			}
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		t := c.tris[id]
		for i := 0; i < 3; i++ {
			a, b := t.v[i], t.v[(i+1)%3]
			if forward[constraintKey{a, b}] || forward[constraintKey{b, a}] {
				continue // never cross a constraint edge during flood fill
			}
			nb := t.adj[i]
			if nb == -1 || nb >= len(c.tris) || visited[nb] || !c.tris[nb].alive {
				continue
			}
			visited[nb] = true
			keep[nb] = true
			queue = append(queue, nb)
		}
	}

	out := make([]int, 0, len(c.tris)*3)
	for id, t := range c.tris {
		if !t.alive || !keep[id] {
			continue
		}
		if t.v[0] >= superBase || t.v[1] >= superBase || t.v[2] >= superBase {
			continue
		}
		out = append(out, t.v[0], t.v[1], t.v[2])
	}
	return out
}
