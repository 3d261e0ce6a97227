package fragment

import (
	"testing"

	"github.com/soypat/fracture/geom"
)

func TestMeshVertexEqualsIgnoresNormalUV(t *testing.T) {
	p := geom.Vec3{X: 1, Y: 2, Z: 3}
	a := MeshVertex{Position: p, Normal: geom.Vec3{X: 1}, UV: geom.Vec2{X: 1}}
	b := MeshVertex{Position: p, Normal: geom.Vec3{X: -1}, UV: geom.Vec2{Y: 1}}
	if !a.Equals(b, DefaultTolerance) {
		t.Fatalf("expected vertices at the same position to be equal regardless of normal/uv")
	}
}

func TestWeldCutFaceVertices(t *testing.T) {
	f := New()
	f.AddVertex(MeshVertex{Position: geom.Vec3{X: 0, Y: 0, Z: 0}})
	p := geom.Vec3{X: 1, Y: 1, Z: 1}
	i0 := f.AddCutVertex(MeshVertex{Position: p})
	i1 := f.AddCutVertex(MeshVertex{Position: geom.Vec3{X: 1.0000001, Y: 1, Z: 1}})
	i2 := f.AddCutVertex(MeshVertex{Position: geom.Vec3{X: 5, Y: 5, Z: 5}})
	f.AddTriangle(1, 0, i0, i2)
	f.Constraints = []EdgeConstraint{
		{V1: i0 - len(f.Vertices), V2: i1 - len(f.Vertices), T1: -1, T2: -1, T1Edge: -1},
		{V1: i0 - len(f.Vertices), V2: i2 - len(f.Vertices), T1: -1, T2: -1, T1Edge: -1},
	}

	f.WeldCutFaceVertices(DefaultTolerance)

	if len(f.CutVertices) != 2 {
		t.Fatalf("expected 2 welded cut vertices, got %d", len(f.CutVertices))
	}
	if len(f.Constraints) != 1 {
		t.Fatalf("expected the degenerate constraint to be dropped, got %d constraints", len(f.Constraints))
	}
	seen := map[int64]bool{}
	for _, v := range f.CutVertices {
		h := geom.Hash3(v.Position, DefaultTolerance)
		if seen[h] {
			t.Fatalf("two cut vertices share a position after welding")
		}
		seen[h] = true
	}
}

func TestFragmentClone(t *testing.T) {
	f := New()
	f.AddVertex(MeshVertex{Position: geom.Vec3{X: 1}})
	clone := f.Clone()
	clone.AddVertex(MeshVertex{Position: geom.Vec3{X: 2}})
	if len(f.Vertices) != 1 {
		t.Fatalf("mutating the clone must not affect the original")
	}
}
