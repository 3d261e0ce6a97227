// Package voronoi carves a Fragment into Voronoi cells around a set of
// seed points: for each seed, a deep clone of the input is successively
// sliced against the bisecting plane toward every neighbour seed, until
// only the region closer to that seed survives. See spec §4.10.
package voronoi

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/soypat/fracture/components"
	"github.com/soypat/fracture/fragment"
	"github.com/soypat/fracture/geom"
	"github.com/soypat/fracture/slice"
)

// Options configures a carve.
type Options struct {
	// Convex selects the unconstrained triangulator when the slicer fills
	// cut faces (fast; assumes no holes).
	Convex bool
	// SplitIsolatedFragments runs the connected-component extractor on
	// each cell after carving (non-convex mode only: a cell carved from a
	// non-convex input may fall apart into disjoint islands).
	SplitIsolatedFragments bool

	// UseApproximation enables K-nearest-neighbour bisecting instead of
	// bisecting against every other seed; K neighbours approximate the
	// true Voronoi cell and can leave overlapping fragments (a warning is
	// logged once per carve when this is set).
	UseApproximation bool
	K                int

	// GrainDirection and Anisotropy (>1) stretch cells along a direction;
	// Anisotropy<=1 reduces to the isotropic bisecting plane.
	GrainDirection geom.Vec3
	Anisotropy     float64

	// Workers, when >1, fans the per-seed carve out over an errgroup with
	// SetLimit(Workers); results are still reduced in seed order so
	// output is identical to the sequential path. Workers<=1 (default)
	// carves sequentially, matching spec §5's single-threaded default.
	Workers int

	Tolerance float64
	Logger    *slog.Logger
}

// DefaultOptions returns isotropic, sequential, convex-mode options.
func DefaultOptions() Options {
	return Options{
		Convex:     true,
		Anisotropy: 1,
		Tolerance:  fragment.DefaultTolerance,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Carve returns the Fragments carved from f around seeds: each seed
// contributes at least one cell (the subset of f closer to that seed than
// to any, or any K in approximation mode, other seed), in seed order.
// When opts.SplitIsolatedFragments detects a cell fell apart into disjoint
// islands, every island is returned as its own Fragment rather than being
// collapsed into one, so a single seed can contribute more than one entry;
// triangulationFailures counts how many slices along the way left a cut
// face unfilled (spec §7 TriangulationFailure), for the caller's Stats.
func Carve(ctx context.Context, f *fragment.Fragment, seeds []geom.Vec3, opts Options) (cells []*fragment.Fragment, triangulationFailures int, err error) {
	if len(seeds) == 0 {
		return nil, 0, nil
	}
	neighbors := neighborSets(seeds, opts)
	if opts.UseApproximation {
		opts.logger().Warn("voronoi: K-NN approximation enabled, fragments may overlap", "k", opts.K, "seeds", len(seeds))
	}

	perSeed := make([][]*fragment.Fragment, len(seeds))
	failCounts := make([]int, len(seeds))
	carveOne := func(i int) error {
		pieces, failed, err := carveCell(f, seeds, i, neighbors[i], opts)
		if err != nil {
			return fmt.Errorf("voronoi: seed %d: %w", i, err)
		}
		perSeed[i] = pieces
		failCounts[i] = failed
		return nil
	}

	if opts.Workers <= 1 {
		for i := range seeds {
			if err := carveOne(i); err != nil {
				return nil, 0, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i := range seeds {
			i := i
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				return carveOne(i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, 0, err
		}
	}

	for i := range seeds {
		cells = append(cells, perSeed[i]...)
		triangulationFailures += failCounts[i]
	}
	return cells, triangulationFailures, nil
}

// carveCell carves the cell(s) belonging to seeds[i]. A single seed yields
// more than one Fragment when SplitIsolatedFragments finds the carved cell
// is disconnected; every island is returned rather than only the largest,
// matching the non-convex fracture driver's own components.Extract usage.
func carveCell(f *fragment.Fragment, seeds []geom.Vec3, i int, neighborIdx []int, opts Options) (pieces []*fragment.Fragment, triangulationFailures int, err error) {
	cell := f.Clone()
	si := seeds[i]
	sliceOpts := slice.DefaultOptions()
	sliceOpts.Convex = opts.Convex
	sliceOpts.Logger = opts.logger()

	for _, j := range neighborIdx {
		sj := seeds[j]
		normal, origin := bisectingPlane(si, sj, opts.GrainDirection, opts.Anisotropy)
		sliceOpts.Normal = normal
		sliceOpts.Origin = origin

		// The slicer's "top" half is the opts.Normal side; the normal
		// points toward sj, so the half closer to si is "bottom".
		_, bottom, triFailed, err := slice.Slice(cell, sliceOpts)
		if err != nil {
			return nil, triangulationFailures, err
		}
		if triFailed {
			triangulationFailures++
		}
		if len(bottom.Vertices)+len(bottom.CutVertices) == 0 {
			// Abandon: si's cell is empty once clipped against sj. Still
			// return one (empty) piece so the caller counts it as a
			// skipped empty cell rather than silently dropping the seed.
			return []*fragment.Fragment{fragment.New()}, triangulationFailures, nil
		}
		cell = bottom
	}

	if opts.SplitIsolatedFragments && !opts.Convex {
		return components.Extract(cell, opts.Tolerance), triangulationFailures, nil
	}
	return []*fragment.Fragment{cell}, triangulationFailures, nil
}

// bisectingPlane computes the plane equidistant from si and sj, isotropic
// unless a nonzero grain direction and anisotropy>1 are given.
func bisectingPlane(si, sj, grain geom.Vec3, anisotropy float64) (normal, origin geom.Vec3) {
	origin = si.Add(sj).Scale(0.5)
	d := sj.Sub(si)
	if anisotropy <= 1 || grain == (geom.Vec3{}) {
		return d.Normalized(), origin
	}
	g := grain.Normalized()
	factor := 1 - 1/(anisotropy*anisotropy)
	modified := d.Sub(g.Scale(factor * d.Dot(g)))
	return modified.Normalized(), origin
}

// neighborSets returns, for every seed, the indices of the seeds it must
// bisect against: all others by default, or the K nearest when
// UseApproximation is set.
func neighborSets(seeds []geom.Vec3, opts Options) [][]int {
	n := len(seeds)
	out := make([][]int, n)
	if !opts.UseApproximation {
		for i := range seeds {
			idx := make([]int, 0, n-1)
			for j := range seeds {
				if j != i {
					idx = append(idx, j)
				}
			}
			out[i] = idx
		}
		return out
	}

	k := opts.K
	if k > n-1 {
		k = n - 1
	}
	type distIdx struct {
		d   float64
		idx int
	}
	for i := range seeds {
		dists := make([]distIdx, 0, n-1)
		for j := range seeds {
			if j == i {
				continue
			}
			diff := seeds[j].Sub(seeds[i])
			dists = append(dists, distIdx{d: diff.Dot(diff), idx: j})
		}
		sort.Slice(dists, func(a, b int) bool { return dists[a].d < dists[b].d })
		idx := make([]int, k)
		for m := 0; m < k; m++ {
			idx[m] = dists[m].idx
		}
		out[i] = idx
	}
	return out
}
