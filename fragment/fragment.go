// Package fragment defines Fragment, the in-memory mesh representation
// specialized for slicing: separate surface and cut-face submeshes, cut
// face edge constraints, and the vertex-adjacency metadata the
// connected-component extractor uses to stitch cut and non-cut
// geometry back into single topological islands.
package fragment

import "github.com/soypat/fracture/geom"

// DefaultTolerance is the positional tolerance used for vertex identity
// throughout this package, matching geom.DefaultTolerance.
const DefaultTolerance = geom.DefaultTolerance

// MeshVertex is a single mesh vertex. Equality (see Equals) is defined by
// position hash under a fixed tolerance; normals and UVs do not
// participate in identity.
type MeshVertex struct {
	Position geom.Vec3
	Normal   geom.Vec3
	UV       geom.Vec2
}

// Equals reports whether v and o occupy the same position within tol.
func (v MeshVertex) Equals(o MeshVertex, tol float64) bool {
	return geom.Hash3(v.Position, tol) == geom.Hash3(o.Position, tol)
}

// Clone returns a deep copy (trivial for a value type with no pointer
// fields, kept as a named method so callers read intent at call sites
// that deep-copy a whole Fragment).
func (v MeshVertex) Clone() MeshVertex { return v }

// EdgeConstraint is a required edge over cut-face vertex indices.
// Directed for cut-face orientation, but Equal treats it as undirected.
// T1, T2 and T1Edge are triangulation scratch, -1 when unset.
type EdgeConstraint struct {
	V1, V2 int
	T1     int
	T2     int
	T1Edge int
}

// Equal reports undirected equality.
func (e EdgeConstraint) Equal(o EdgeConstraint) bool {
	return (e.V1 == o.V1 && e.V2 == o.V2) || (e.V1 == o.V2 && e.V2 == o.V1)
}

// Fragment is the central mesh data structure shared by the slicer, the
// connected-component extractor and the Voronoi carver. See the package
// doc and spec §3 for the full invariant list; in short:
//
//  1. every index in Triangles is in range of the unified vertex space
//     (Vertices then CutVertices);
//  2. Triangles[0] winds CCW w.r.t. outward surface normals, Triangles[1]
//     winds so its face normal matches this fragment's side of the last
//     cut;
//  3. after WeldCutFaceVertices, no two CutVertices share a position;
//  4. VertexAdjacency[i] (if present) names a non-cut vertex at the same
//     position as CutVertices[i].
type Fragment struct {
	Vertices    []MeshVertex
	CutVertices []MeshVertex
	// VertexAdjacency maps a cut-vertex index to the index (within
	// Vertices) of a coincident non-cut vertex.
	VertexAdjacency map[int]int
	// Triangles[0] is the original surface submesh, Triangles[1] is the
	// cut-face submesh. Indices address the unified space: [0,len(Vertices))
	// refer to Vertices, the rest to CutVertices.
	Triangles [2][]int
	// Constraints directs the constrained triangulator's cut-face fill.
	Constraints []EdgeConstraint
	// IndexMap is scratch used by the slicer while splitting a source
	// fragment: source-fragment unified index -> this fragment's index.
	IndexMap map[int]int
}

// New returns an empty Fragment with its scratch maps initialized.
func New() *Fragment {
	return &Fragment{
		VertexAdjacency: make(map[int]int),
		IndexMap:        make(map[int]int),
	}
}

// VertexCount returns the unified vertex space size.
func (f *Fragment) VertexCount() int {
	return len(f.Vertices) + len(f.CutVertices)
}

// VertexAt returns the vertex at a unified index, whether it lives in
// Vertices or CutVertices.
func (f *Fragment) VertexAt(idx int) MeshVertex {
	if idx < len(f.Vertices) {
		return f.Vertices[idx]
	}
	return f.CutVertices[idx-len(f.Vertices)]
}

// IsCutIndex reports whether idx addresses CutVertices.
func (f *Fragment) IsCutIndex(idx int) bool {
	return idx >= len(f.Vertices)
}

// Clone returns a deep copy: every slice and map is independently
// allocated so the clone and original never share backing storage.
func (f *Fragment) Clone() *Fragment {
	out := &Fragment{
		Vertices:        append([]MeshVertex(nil), f.Vertices...),
		CutVertices:     append([]MeshVertex(nil), f.CutVertices...),
		VertexAdjacency: make(map[int]int, len(f.VertexAdjacency)),
		Constraints:     append([]EdgeConstraint(nil), f.Constraints...),
		IndexMap:        make(map[int]int, len(f.IndexMap)),
	}
	for k, v := range f.VertexAdjacency {
		out.VertexAdjacency[k] = v
	}
	for k, v := range f.IndexMap {
		out.IndexMap[k] = v
	}
	out.Triangles[0] = append([]int(nil), f.Triangles[0]...)
	out.Triangles[1] = append([]int(nil), f.Triangles[1]...)
	return out
}

// Bounds recomputes the axis-aligned bounding box from Vertices (not
// CutVertices: cut geometry never extends the original surface bounds).
func (f *Fragment) Bounds() geom.Box3 {
	bb := geom.EmptyBox3()
	for _, v := range f.Vertices {
		bb = bb.ExtendBy(v.Position)
	}
	return bb
}

// AddVertex appends v to Vertices and returns its new unified index.
func (f *Fragment) AddVertex(v MeshVertex) int {
	f.Vertices = append(f.Vertices, v)
	return len(f.Vertices) - 1
}

// AddCutVertex appends v to CutVertices and returns its new unified
// index (offset by len(Vertices) per the unified indexing scheme).
func (f *Fragment) AddCutVertex(v MeshVertex) int {
	f.CutVertices = append(f.CutVertices, v)
	return len(f.Vertices) + len(f.CutVertices) - 1
}

// AddTriangle appends a triangle (three unified indices) to submesh sm
// (0=surface, 1=cut-face).
func (f *Fragment) AddTriangle(sm int, a, b, c int) {
	f.Triangles[sm] = append(f.Triangles[sm], a, b, c)
}
