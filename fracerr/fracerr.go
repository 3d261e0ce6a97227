// Package fracerr defines the sentinel error kinds of spec §7: callers
// can test a returned error against one of these with errors.Is, and
// wrapped context travels along via fmt.Errorf("...: %w", ...).
package fracerr

import "errors"

var (
	// InvalidInput: input mesh missing positions/normals/UVs,
	// non-triangle-count indices, or empty. Surfaced to the caller
	// immediately.
	InvalidInput = errors.New("fracture: invalid input")

	// DegenerateGeometry: slicing with a zero plane normal, or a plane
	// that passes through no triangle. Never returned as an error by this
	// module's own Slice/Carve calls (policy: return one side unchanged,
	// the other empty) — kept for callers building on top of these
	// primitives who want to classify a condition they detected
	// themselves.
	DegenerateGeometry = errors.New("fracture: degenerate geometry")

	// TriangulationFailure: the constrained triangulator could not
	// resolve every constraint within its iteration budget. Logged, not
	// returned; kept here so a caller inspecting Stats or a log record
	// can compare against it.
	TriangulationFailure = errors.New("fracture: triangulation failure")

	// EmptyCell: a Voronoi cell carved down to zero vertices. Skipped
	// silently by Carve/VoronoiFracture; exposed for Stats/log records.
	EmptyCell = errors.New("fracture: empty cell")

	// ApproximationWarning: K-NN approximation was requested; fragments
	// may overlap. Logged once per carve, not returned as an error.
	ApproximationWarning = errors.New("fracture: k-nearest-neighbor approximation enabled")
)
