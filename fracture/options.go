package fracture

import (
	"log/slog"

	"github.com/soypat/fracture/geom"
)

// FractureMode selects between the fast unconstrained cut-face
// triangulator (Convex, assumes no holes) and the constrained one
// (NonConvex, handles holes but costs a post-pass connected-component
// split since a non-convex half may fall apart).
type FractureMode int

const (
	Convex FractureMode = iota
	NonConvex
)

// FracturePlanes restricts which axes random plane normals may draw
// components from; at least one must be set.
type FracturePlanes struct {
	X, Y, Z bool
}

// FractureOptions configures Fracture (spec §6, §4.8).
type FractureOptions struct {
	FragmentCount  int
	FracturePlanes FracturePlanes
	FractureMode   FractureMode
	TextureScale   geom.Vec2
	TextureOffset  geom.Vec2
	// Seed, if non-nil, makes the recursive driver's plane selection
	// reproducible (spec §4.8 Determinism).
	Seed   *uint32
	Logger *slog.Logger
}

// DefaultFractureOptions returns convex mode, 2 fragments, all three axes
// enabled, unit texture scale, and no seed (non-deterministic).
func DefaultFractureOptions() FractureOptions {
	return FractureOptions{
		FragmentCount:  2,
		FracturePlanes: FracturePlanes{X: true, Y: true, Z: true},
		FractureMode:   Convex,
		TextureScale:   geom.Vec2{X: 1, Y: 1},
	}
}

func (o FractureOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// VoronoiMode selects full 3D seed generation/carving or a 2.5D variant
// constrained to a plane through the mesh's bounds.
type VoronoiMode int

const (
	Full3D VoronoiMode = iota
	Planar2_5D
)

// VoronoiOptions configures VoronoiFracture (spec §6, §4.9, §4.10).
type VoronoiOptions struct {
	FragmentCount int
	TextureScale  geom.Vec2
	TextureOffset geom.Vec2
	Seed          *uint32

	Mode VoronoiMode
	// SeedPoints, if non-empty, overrides generation entirely.
	SeedPoints []geom.Vec3
	// ImpactPoint/ImpactRadius select the impact-biased generator when
	// HasImpact is set; otherwise the mode's plain generator (Uniform, or
	// Planar2_5D in Planar2_5D mode) is used.
	HasImpact    bool
	ImpactPoint  geom.Vec3
	ImpactRadius float64
	// ProjectionAxis is used in Planar2_5D mode when
	// HasProjectionAxis is set; otherwise the axis is auto-selected
	// (smallest bounds extent).
	HasProjectionAxis bool
	ProjectionAxis    int // 0=X, 1=Y, 2=Z; see seed.Axis

	UseApproximation bool
	KNeighbors       int

	FractureMode            FractureMode
	DetectIsolatedFragments bool

	GrainDirection geom.Vec3
	Anisotropy     float64

	// Workers enables errgroup-parallel carving when >1 (§5).
	Workers int
	Logger  *slog.Logger
}

// DefaultVoronoiOptions returns convex, full-3D, isotropic, K=12,
// sequential options with unit texture scale and no explicit seed.
func DefaultVoronoiOptions() VoronoiOptions {
	return VoronoiOptions{
		FragmentCount: 2,
		TextureScale:  geom.Vec2{X: 1, Y: 1},
		Mode:          Full3D,
		KNeighbors:    12,
		FractureMode:  Convex,
		Anisotropy:    1,
	}
}

func (o VoronoiOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
