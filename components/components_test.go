package components

import (
	"testing"

	"github.com/soypat/fracture/fragment"
	"github.com/soypat/fracture/geom"
)

// Two disjoint triangles sharing no geometry: Extract must produce two
// single-triangle fragments.
func TestExtractTwoIslands(t *testing.T) {
	f := fragment.New()
	f.AddVertex(fragment.MeshVertex{Position: geom.Vec3{X: 0, Y: 0, Z: 0}})
	f.AddVertex(fragment.MeshVertex{Position: geom.Vec3{X: 1, Y: 0, Z: 0}})
	f.AddVertex(fragment.MeshVertex{Position: geom.Vec3{X: 0, Y: 1, Z: 0}})
	f.AddTriangle(0, 0, 1, 2)

	f.AddVertex(fragment.MeshVertex{Position: geom.Vec3{X: 10, Y: 0, Z: 0}})
	f.AddVertex(fragment.MeshVertex{Position: geom.Vec3{X: 11, Y: 0, Z: 0}})
	f.AddVertex(fragment.MeshVertex{Position: geom.Vec3{X: 10, Y: 1, Z: 0}})
	f.AddTriangle(0, 3, 4, 5)

	out := Extract(f, fragment.DefaultTolerance)
	if len(out) != 2 {
		t.Fatalf("expected 2 components, got %d", len(out))
	}
	for _, c := range out {
		if len(c.Vertices) != 3 || len(c.Triangles[0]) != 3 {
			t.Fatalf("expected each component to keep exactly one triangle, got %d verts / %d tri indices", len(c.Vertices), len(c.Triangles[0]))
		}
	}
}

// Two triangles sharing an edge (positionally welded, duplicate indices)
// must stay in a single component.
func TestExtractWeldedSingleIsland(t *testing.T) {
	f := fragment.New()
	shared := []geom.Vec3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
	}
	f.AddVertex(fragment.MeshVertex{Position: shared[0]})
	f.AddVertex(fragment.MeshVertex{Position: shared[1]})
	f.AddVertex(fragment.MeshVertex{Position: geom.Vec3{X: 0, Y: 1, Z: 0}})
	f.AddTriangle(0, 0, 1, 2)

	// Second triangle re-declares the same two shared positions as new
	// vertex entries, as slicing can do along a shared edge.
	f.AddVertex(fragment.MeshVertex{Position: shared[0]})
	f.AddVertex(fragment.MeshVertex{Position: shared[1]})
	f.AddVertex(fragment.MeshVertex{Position: geom.Vec3{X: 1, Y: -1, Z: 0}})
	f.AddTriangle(0, 3, 4, 5)

	out := Extract(f, fragment.DefaultTolerance)
	if len(out) != 1 {
		t.Fatalf("expected 1 welded component, got %d", len(out))
	}
	if len(out[0].Triangles[0]) != 6 {
		t.Fatalf("expected both triangles in the single component, got %d tri indices", len(out[0].Triangles[0]))
	}
}

// A cut vertex stitched to its non-cut counterpart via VertexAdjacency
// must pull an otherwise-isolated cut-face triangle into the same
// component as the surface geometry it touches.
func TestExtractCutVertexAdjacencyStitches(t *testing.T) {
	f := fragment.New()
	f.AddVertex(fragment.MeshVertex{Position: geom.Vec3{X: 0, Y: 0, Z: 0}})
	f.AddVertex(fragment.MeshVertex{Position: geom.Vec3{X: 1, Y: 0, Z: 0}})
	f.AddVertex(fragment.MeshVertex{Position: geom.Vec3{X: 0, Y: 1, Z: 0}})
	f.AddTriangle(0, 0, 1, 2)

	c0 := f.AddCutVertex(fragment.MeshVertex{Position: geom.Vec3{X: 5, Y: 5, Z: 5}})
	c1 := f.AddCutVertex(fragment.MeshVertex{Position: geom.Vec3{X: 6, Y: 5, Z: 5}})
	c2 := f.AddCutVertex(fragment.MeshVertex{Position: geom.Vec3{X: 5, Y: 6, Z: 5}})
	f.AddTriangle(1, c0, c1, c2)
	f.VertexAdjacency[c0-len(f.Vertices)] = 0

	out := Extract(f, fragment.DefaultTolerance)
	if len(out) != 1 {
		t.Fatalf("expected adjacency to stitch cut face and surface into 1 component, got %d", len(out))
	}
	if len(out[0].CutVertices) != 3 {
		t.Fatalf("expected the cut face's 3 vertices to survive, got %d", len(out[0].CutVertices))
	}
}
