package fracture

import (
	"context"

	"github.com/soypat/fracture/geom"
	"github.com/soypat/fracture/seed"
	"github.com/soypat/fracture/voronoi"
)

// VoronoiFracture implements spec §4.9+§4.10: generate (or accept) seed
// points over the mesh's bounds, then carve one cell per seed.
func VoronoiFracture(mesh HostMesh, opts VoronoiOptions) ([]HostMeshOut, Stats, error) {
	f, err := FromHostMesh(mesh)
	if err != nil {
		return nil, Stats{}, err
	}

	rng := seed.NewRandomLCG()
	if opts.Seed != nil {
		rng = seed.NewLCG(*opts.Seed)
	}

	seedPoints := opts.SeedPoints
	if len(seedPoints) == 0 {
		seedPoints = generateSeeds(f.Bounds(), opts, rng)
	}

	carveOpts := voronoi.DefaultOptions()
	carveOpts.Convex = opts.FractureMode == Convex
	carveOpts.SplitIsolatedFragments = opts.DetectIsolatedFragments
	carveOpts.UseApproximation = opts.UseApproximation
	carveOpts.K = opts.KNeighbors
	carveOpts.GrainDirection = opts.GrainDirection
	carveOpts.Anisotropy = opts.Anisotropy
	carveOpts.Workers = opts.Workers
	carveOpts.Logger = opts.logger()

	cells, triFailures, err := voronoi.Carve(context.Background(), f, seedPoints, carveOpts)
	if err != nil {
		return nil, Stats{}, err
	}

	var stats Stats
	stats.TriangulationFailures = triFailures
	out := make([]HostMeshOut, 0, len(cells))
	for _, c := range cells {
		if c == nil || c.VertexCount() == 0 {
			stats.EmptyCellsSkipped++
			continue
		}
		out = append(out, ToHostMesh(c))
	}
	stats.FragmentsProduced = len(out)
	return out, stats, nil
}

func generateSeeds(bb geom.Box3, opts VoronoiOptions, rng *seed.LCG) []geom.Vec3 {
	axis := seed.Axis(opts.ProjectionAxis)
	if !opts.HasProjectionAxis {
		axis = seed.AutoAxis(bb)
	}
	switch {
	case opts.Mode == Planar2_5D && opts.HasImpact:
		return seed.Planar2_5DImpactBased(bb, opts.FragmentCount, opts.ImpactPoint, opts.ImpactRadius, axis, rng)
	case opts.Mode == Planar2_5D:
		return seed.Planar2_5D(bb, opts.FragmentCount, axis, rng)
	case opts.HasImpact:
		return seed.ImpactBased(bb, opts.FragmentCount, opts.ImpactPoint, opts.ImpactRadius, rng)
	default:
		return seed.Uniform(bb, opts.FragmentCount, rng)
	}
}
