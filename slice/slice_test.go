package slice

import (
	"testing"

	"github.com/soypat/fracture/fragment"
	"github.com/soypat/fracture/geom"
)

func cubeFragment() *fragment.Fragment {
	f := fragment.New()
	// 8 corners of a unit cube centred at the origin.
	positions := []geom.Vec3{
		{X: -0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: -0.5},
		{X: 0.5, Y: 0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: -0.5},
		{X: -0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: 0.5},
		{X: 0.5, Y: 0.5, Z: 0.5}, {X: -0.5, Y: 0.5, Z: 0.5},
	}
	for _, p := range positions {
		f.AddVertex(fragment.MeshVertex{Position: p, Normal: p.Normalized()})
	}
	quads := [][4]int{
		{0, 1, 2, 3}, {5, 4, 7, 6}, {4, 0, 3, 7},
		{1, 5, 6, 2}, {3, 2, 6, 7}, {4, 5, 1, 0},
	}
	for _, q := range quads {
		f.AddTriangle(0, q[0], q[1], q[2])
		f.AddTriangle(0, q[0], q[2], q[3])
	}
	return f
}

// S1 — Unit cube convex slice along Y=0.
func TestSliceUnitCube(t *testing.T) {
	f := cubeFragment()
	opts := DefaultOptions()
	opts.Normal = geom.Vec3{X: 0, Y: 1, Z: 0}
	opts.Origin = geom.Vec3{}
	opts.Convex = true

	top, bottom, triFailed, err := Slice(f, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if triFailed {
		t.Fatalf("unexpected triangulation failure")
	}
	if got := len(top.Triangles[0]) / 3; got < 10 || got > 14 {
		t.Fatalf("expected 10-14 top surface triangles, got %d", got)
	}
	if got := len(bottom.Triangles[0]) / 3; got < 10 || got > 14 {
		t.Fatalf("expected 10-14 bottom surface triangles, got %d", got)
	}
	if got := len(top.Triangles[1]) / 3; got != 2 {
		t.Fatalf("expected 2 top cut-face triangles, got %d", got)
	}
	if got := len(bottom.Triangles[1]) / 3; got != 2 {
		t.Fatalf("expected 2 bottom cut-face triangles, got %d", got)
	}
	if len(top.CutVertices) != 4 || len(bottom.CutVertices) != 4 {
		t.Fatalf("expected 4 cut vertices per side, got top=%d bottom=%d", len(top.CutVertices), len(bottom.CutVertices))
	}
	for i, v := range top.CutVertices {
		if v.Position.Y != 0 {
			t.Fatalf("cut vertex %d not on the cutting plane: %v", i, v.Position)
		}
		if abs(v.Position.X) != 0.5 || abs(v.Position.Z) != 0.5 {
			t.Fatalf("cut vertex %d not at expected cube cross-section corner: %v", i, v.Position)
		}
	}
}

// Property 2 — cut-face mirror symmetry.
func TestSliceCutFaceMirror(t *testing.T) {
	f := cubeFragment()
	opts := DefaultOptions()
	opts.Normal = geom.Vec3{X: 0, Y: 1, Z: 0}
	opts.Convex = true
	top, bottom, _, _ := Slice(f, opts)

	if len(top.CutVertices) != len(bottom.CutVertices) {
		t.Fatalf("cut vertex counts differ: top=%d bottom=%d", len(top.CutVertices), len(bottom.CutVertices))
	}
	for i := range top.CutVertices {
		tp, bp := top.CutVertices[i], bottom.CutVertices[i]
		if tp.Position != bp.Position {
			t.Fatalf("cut vertex %d position mismatch: %v vs %v", i, tp.Position, bp.Position)
		}
		if tp.Normal != bp.Normal.Negate() {
			t.Fatalf("cut vertex %d normals are not exact negatives: %v vs %v", i, tp.Normal, bp.Normal)
		}
		if tp.UV != bp.UV {
			t.Fatalf("cut vertex %d uv mismatch: %v vs %v", i, tp.UV, bp.UV)
		}
	}
}

// S2 — Coplanar-vertex slice: all three triangle vertices land "above"
// under the >= bias, so top equals the input and bottom is empty.
func TestSliceCoplanarVertex(t *testing.T) {
	f := fragment.New()
	f.AddVertex(fragment.MeshVertex{Position: geom.Vec3{X: 0, Y: 0, Z: 0}})
	f.AddVertex(fragment.MeshVertex{Position: geom.Vec3{X: 1, Y: 0, Z: 0}})
	f.AddVertex(fragment.MeshVertex{Position: geom.Vec3{X: 0, Y: 0, Z: 1}})
	f.AddTriangle(0, 0, 1, 2)

	opts := DefaultOptions()
	opts.Normal = geom.Vec3{X: 0, Y: 1, Z: 0}
	opts.Convex = true
	top, bottom, _, err := Slice(f, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top.Vertices) != 3 || len(top.Triangles[0]) != 3 {
		t.Fatalf("expected top to equal the input, got %d vertices / %d tri indices", len(top.Vertices), len(top.Triangles[0]))
	}
	if len(bottom.Vertices) != 0 || len(bottom.Triangles[0]) != 0 {
		t.Fatalf("expected bottom to be empty, got %d vertices / %d tri indices", len(bottom.Vertices), len(bottom.Triangles[0]))
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
