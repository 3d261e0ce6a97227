package voronoi

import (
	"context"
	"testing"

	"github.com/soypat/fracture/fragment"
	"github.com/soypat/fracture/geom"
)

func boxFragment(min, max geom.Vec3) *fragment.Fragment {
	f := fragment.New()
	positions := []geom.Vec3{
		{X: min.X, Y: min.Y, Z: min.Z}, {X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z}, {X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z}, {X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z}, {X: min.X, Y: max.Y, Z: max.Z},
	}
	for _, p := range positions {
		f.AddVertex(fragment.MeshVertex{Position: p})
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

// S6 — Voronoi cube with 3 seeds: carving yields one cell per seed and
// every cell is non-empty.
func TestCarveCubeThreeSeeds(t *testing.T) {
	f := boxFragment(geom.Vec3{X: -1, Y: -1, Z: -1}, geom.Vec3{X: 1, Y: 1, Z: 1})
	seeds := []geom.Vec3{
		{X: -0.5, Y: 0, Z: 0},
		{X: 0.5, Y: 0, Z: 0.3},
		{X: 0, Y: 0.6, Z: -0.4},
	}
	opts := DefaultOptions()
	cells, _, err := Carve(context.Background(), f, seeds, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
	for i, c := range cells {
		if len(c.Vertices) == 0 {
			t.Fatalf("cell %d is empty", i)
		}
	}
}

// Parallel carve (Workers>1) must produce identical results to the
// sequential path, in the same seed order.
func TestCarveParallelMatchesSequential(t *testing.T) {
	f := boxFragment(geom.Vec3{X: -1, Y: -1, Z: -1}, geom.Vec3{X: 1, Y: 1, Z: 1})
	seeds := []geom.Vec3{
		{X: -0.5, Y: 0, Z: 0},
		{X: 0.5, Y: 0, Z: 0.3},
		{X: 0, Y: 0.6, Z: -0.4},
	}
	seq, _, err := Carve(context.Background(), f, seeds, DefaultOptions())
	if err != nil {
		t.Fatalf("sequential carve failed: %v", err)
	}
	parOpts := DefaultOptions()
	parOpts.Workers = 4
	par, _, err := Carve(context.Background(), f, seeds, parOpts)
	if err != nil {
		t.Fatalf("parallel carve failed: %v", err)
	}
	if len(seq) != len(par) {
		t.Fatalf("cell count mismatch: sequential=%d parallel=%d", len(seq), len(par))
	}
	for i := range seq {
		if len(seq[i].Vertices) != len(par[i].Vertices) {
			t.Fatalf("cell %d vertex count mismatch: sequential=%d parallel=%d", i, len(seq[i].Vertices), len(par[i].Vertices))
		}
	}
}

// twoBoxesFragment merges two disjoint boxes into a single Fragment (no
// shared vertices, no shared triangles) so components.Extract has two
// islands to find.
func twoBoxesFragment(a, b *fragment.Fragment) *fragment.Fragment {
	f := fragment.New()
	offset := len(a.Vertices)
	f.Vertices = append(f.Vertices, a.Vertices...)
	f.Vertices = append(f.Vertices, b.Vertices...)
	f.Triangles[0] = append(f.Triangles[0], a.Triangles[0]...)
	for _, idx := range b.Triangles[0] {
		f.Triangles[0] = append(f.Triangles[0], offset+idx)
	}
	return f
}

// A single seed whose cell carves out two disconnected boxes must yield
// both islands when SplitIsolatedFragments is set, not just the larger
// one: spec property 8 treats a disconnected split as more fragments, not
// fewer.
func TestCarveSplitIsolatedFragmentsKeepsAllIslands(t *testing.T) {
	small := boxFragment(geom.Vec3{X: -1, Y: -1, Z: -1}, geom.Vec3{X: -0.5, Y: -0.5, Z: -0.5})
	big := boxFragment(geom.Vec3{X: 1, Y: 1, Z: 1}, geom.Vec3{X: 3, Y: 3, Z: 3})
	f := twoBoxesFragment(small, big)

	seeds := []geom.Vec3{{X: 0, Y: 0, Z: 0}}
	opts := DefaultOptions()
	opts.Convex = false
	opts.SplitIsolatedFragments = true

	cells, _, err := Carve(context.Background(), f, seeds, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 2 {
		t.Fatalf("expected both disconnected islands to survive as separate cells, got %d", len(cells))
	}
	total := len(cells[0].Vertices) + len(cells[1].Vertices)
	if total != len(small.Vertices)+len(big.Vertices) {
		t.Fatalf("expected no vertices dropped across islands, got %d want %d", total, len(small.Vertices)+len(big.Vertices))
	}
}

// Property 10 — isotropic bisecting plane: equidistant origin, normal
// points from si toward sj.
func TestBisectingPlaneIsotropic(t *testing.T) {
	si := geom.Vec3{X: 0, Y: 0, Z: 0}
	sj := geom.Vec3{X: 4, Y: 0, Z: 0}
	n, o := bisectingPlane(si, sj, geom.Vec3{}, 1)
	want := geom.Vec3{X: 2, Y: 0, Z: 0}
	if o != want {
		t.Fatalf("expected origin %v, got %v", want, o)
	}
	if n.Dot(sj.Sub(si)) <= 0 {
		t.Fatalf("expected normal to point toward sj, got %v", n)
	}
}

// Property 11 — anisotropy=1 reduces to the isotropic plane.
func TestBisectingPlaneAnisotropyOneIsIsotropic(t *testing.T) {
	si := geom.Vec3{X: 0, Y: 0, Z: 0}
	sj := geom.Vec3{X: 1, Y: 2, Z: 3}
	grain := geom.Vec3{X: 0, Y: 1, Z: 0}
	n1, o1 := bisectingPlane(si, sj, geom.Vec3{}, 1)
	n2, o2 := bisectingPlane(si, sj, grain, 1)
	if o1 != o2 {
		t.Fatalf("origin should not depend on anisotropy: %v vs %v", o1, o2)
	}
	if n1 != n2 {
		t.Fatalf("anisotropy=1 should reduce to the isotropic normal: %v vs %v", n1, n2)
	}
}

func TestBisectingPlaneAnisotropicStretchesAlongGrain(t *testing.T) {
	si := geom.Vec3{X: 0, Y: 0, Z: 0}
	sj := geom.Vec3{X: 1, Y: 1, Z: 0}
	grain := geom.Vec3{X: 0, Y: 1, Z: 0}
	n, _ := bisectingPlane(si, sj, grain, 4)
	isoN, _ := bisectingPlane(si, sj, geom.Vec3{}, 1)
	if n == isoN {
		t.Fatalf("anisotropic normal should differ from the isotropic one when A>1")
	}
}
