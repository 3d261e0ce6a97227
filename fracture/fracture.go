package fracture

import (
	"fmt"

	"github.com/soypat/fracture/components"
	"github.com/soypat/fracture/fracerr"
	"github.com/soypat/fracture/fragment"
	"github.com/soypat/fracture/geom"
	"github.com/soypat/fracture/seed"
	"github.com/soypat/fracture/slice"
)

// Fracture implements the recursive fracture driver of spec §4.8: a FIFO
// queue seeded with the whole input mesh, repeatedly popping the front
// Fragment, slicing it by a random plane restricted to the enabled axes,
// and pushing the results back, until the queue holds at least
// FragmentCount fragments.
func Fracture(mesh HostMesh, opts FractureOptions) ([]HostMeshOut, Stats, error) {
	f, err := FromHostMesh(mesh)
	if err != nil {
		return nil, Stats{}, err
	}
	if opts.FragmentCount < 1 {
		opts.FragmentCount = 1
	}
	if !opts.FracturePlanes.X && !opts.FracturePlanes.Y && !opts.FracturePlanes.Z {
		return nil, Stats{}, fmt.Errorf("%w: fracture_planes must enable at least one axis", fracerr.InvalidInput)
	}

	rng := seed.NewRandomLCG()
	if opts.Seed != nil {
		rng = seed.NewLCG(*opts.Seed)
	}

	queue := []*fragment.Fragment{f}
	var stats Stats

	sliceOpts := slice.DefaultOptions()
	sliceOpts.Convex = opts.FractureMode == Convex
	sliceOpts.TextureScale = opts.TextureScale
	sliceOpts.TextureOffset = opts.TextureOffset
	sliceOpts.Logger = opts.logger()

	// maxIterations bounds worst-case runtime against a pathologically
	// degenerate mesh (e.g. a single point) that can never actually
	// split, mirroring the constrained triangulator's stall counters.
	maxIterations := 10*opts.FragmentCount + 1000
	for iter := 0; len(queue) < opts.FragmentCount && len(queue) > 0 && iter < maxIterations; iter++ {
		cur := queue[0]
		queue = queue[1:]

		bb := cur.Bounds()
		sliceOpts.Normal = randomPlaneNormal(rng, opts.FracturePlanes)
		sliceOpts.Origin = bb.Center()

		top, bottom, triFailed, err := slice.Slice(cur, sliceOpts)
		if err != nil {
			opts.logger().Warn("fracture: slice failed on a fragment, keeping it whole", "error", err)
			queue = append(queue, cur)
			continue
		}
		if triFailed {
			stats.TriangulationFailures++
		}

		halves := [2]*fragment.Fragment{top, bottom}
		if opts.FractureMode == Convex {
			for _, h := range halves {
				if h.VertexCount() > 0 {
					queue = append(queue, h)
				}
			}
		} else {
			for _, h := range halves {
				if h.VertexCount() == 0 {
					continue
				}
				queue = append(queue, components.Extract(h, fragment.DefaultTolerance)...)
			}
		}
	}

	stats.FragmentsProduced = len(queue)
	out := make([]HostMeshOut, len(queue))
	for i, frag := range queue {
		out[i] = ToHostMesh(frag)
	}
	return out, stats, nil
}

// randomPlaneNormal draws a direction with components restricted to the
// enabled axes. A near-zero draw (vanishingly unlikely, but possible)
// falls back to the first enabled axis rather than normalizing a
// zero vector.
func randomPlaneNormal(rng *seed.LCG, planes FracturePlanes) geom.Vec3 {
	var n geom.Vec3
	if planes.X {
		n.X = rng.Range(-1, 1)
	}
	if planes.Y {
		n.Y = rng.Range(-1, 1)
	}
	if planes.Z {
		n.Z = rng.Range(-1, 1)
	}
	if n.Len() < 1e-9 {
		switch {
		case planes.X:
			n = geom.Vec3{X: 1}
		case planes.Y:
			n = geom.Vec3{Y: 1}
		default:
			n = geom.Vec3{Z: 1}
		}
	}
	return n.Normalized()
}
