// Package geom provides the vector arithmetic, tolerance-floored hashing
// and segment/plane tests shared by every other package in this module.
//
// Positions are compared by a fixed-tolerance hash rather than exact
// floating point equality throughout this module: coincident vertices
// produced independently by two neighbouring triangles during slicing
// will differ in the low mantissa bits, and the component extractor and
// cut-face welder both depend on such vertices hashing identically.
package geom

import "math"

// DefaultTolerance is the positional tolerance used by hash3/hash2 unless
// a caller supplies its own.
const DefaultTolerance = 1e-6

// Vec2 is a 2D point or direction.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D point or direction.
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64   { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }
func (a Vec2) Len() float64         { return math.Sqrt(a.Dot(a)) }

func (a Vec3) Add(b Vec3) Vec3      { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3      { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Negate() Vec3         { return Vec3{-a.X, -a.Y, -a.Z} }
func (a Vec3) Dot(b Vec3) float64   { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Len() float64 { return math.Sqrt(a.Dot(a)) }

// Normalized returns a, scaled to unit length. Returns the zero vector if
// a is (numerically) the zero vector.
func (a Vec3) Normalized() Vec3 {
	l := a.Len()
	if l < 1e-20 {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

// Lerp3 returns a + s*(b-a).
func Lerp3(a, b Vec3, s float64) Vec3 {
	return a.Add(b.Sub(a).Scale(s))
}

func Lerp2(a, b Vec2, s float64) Vec2 {
	return a.Add(b.Sub(a).Scale(s))
}

// Box3 is an axis-aligned bounding box. A zero-value Box3 is NOT empty;
// callers should start folding points into EmptyBox3().
type Box3 struct {
	Min, Max Vec3
}

// EmptyBox3 returns a box with Min at +inf and Max at -inf, ready to be
// grown by repeated calls to ExtendBy.
func EmptyBox3() Box3 {
	return Box3{
		Min: Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// ExtendBy grows the box, if needed, to contain p.
func (b Box3) ExtendBy(p Vec3) Box3 {
	return Box3{
		Min: Vec3{min(b.Min.X, p.X), min(b.Min.Y, p.Y), min(b.Min.Z, p.Z)},
		Max: Vec3{max(b.Max.X, p.X), max(b.Max.Y, p.Y), max(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing both b and o.
func (b Box3) Union(o Box3) Box3 {
	return Box3{
		Min: Vec3{min(b.Min.X, o.Min.X), min(b.Min.Y, o.Min.Y), min(b.Min.Z, o.Min.Z)},
		Max: Vec3{max(b.Max.X, o.Max.X), max(b.Max.Y, o.Max.Y), max(b.Max.Z, o.Max.Z)},
	}
}

// Size returns Max-Min componentwise.
func (b Box3) Size() Vec3 { return b.Max.Sub(b.Min) }

// Center returns the box midpoint.
func (b Box3) Center() Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

// Empty reports whether the box has never been extended.
func (b Box3) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// floorToMultiple floors v to the nearest multiple of tol below it, then
// rescales to an integer grid coordinate.
func floorToMultiple(v, tol float64) int64 {
	return int64(math.Floor(v / tol))
}

// cantorPair implements the standard Cantor pairing function extended to
// accept negative integers by zig-zag encoding them to naturals first.
func cantorPair(a, b int64) int64 {
	za := zigzag(a)
	zb := zigzag(b)
	return (za+zb)*(za+zb+1)/2 + zb
}

func zigzag(n int64) int64 {
	if n >= 0 {
		return n * 2
	}
	return -n*2 - 1
}

// Hash3 yields a deterministic integer identity for a 3D position,
// flooring each component to a multiple of tol and Cantor-pairing the
// three resulting integers. Two positions within tol of each other on
// each axis (and aligned to the same grid cell) hash identically.
func Hash3(v Vec3, tol float64) int64 {
	x := floorToMultiple(v.X, tol)
	y := floorToMultiple(v.Y, tol)
	z := floorToMultiple(v.Z, tol)
	return cantorPair(cantorPair(x, y), z)
}

// Hash2 is the 2D analogue of Hash3.
func Hash2(v Vec2, tol float64) int64 {
	x := floorToMultiple(v.X, tol)
	y := floorToMultiple(v.Y, tol)
	return cantorPair(x, y)
}

// IsPointAbovePlane returns true iff n.(p-o) >= 0. On-plane points count
// as above; the >= bias is load-bearing for the slicer, which must
// classify triangle vertices exactly on the cutting plane without
// producing degenerate zero-area cut geometry.
func IsPointAbovePlane(p, n, o Vec3) bool {
	return n.Dot(p.Sub(o)) >= 0
}

// LinePlaneIntersection solves x = a + s*(b-a) for s in [0,1] such that x
// lies on the plane (n, o). Returns ok=false for degenerate input: a==b,
// or a zero normal, or a segment that does not cross the plane.
func LinePlaneIntersection(a, b, n, o Vec3) (x Vec3, s float64, ok bool) {
	d := b.Sub(a)
	if d.Dot(d) < 1e-24 {
		return Vec3{}, 0, false
	}
	denom := n.Dot(d)
	if math.Abs(denom) < 1e-12 {
		return Vec3{}, 0, false
	}
	s = n.Dot(o.Sub(a)) / denom
	if s < -1e-9 || s > 1+1e-9 {
		return Vec3{}, 0, false
	}
	s = clamp01(s)
	return Lerp3(a, b, s), s, true
}

func clamp01(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// IsPointOnRightSideOfLine uses the signed 2D cross product of (b-a) and
// (p-a); <= 0 means p is on the right, consistent with this module's CCW
// triangle winding convention.
func IsPointOnRightSideOfLine(a, b, p Vec2) bool {
	d := b.Sub(a)
	return d.Cross(p.Sub(a)) <= 0
}

func sign(v float64) int {
	switch {
	case v > 1e-12:
		return 1
	case v < -1e-12:
		return -1
	default:
		return 0
	}
}

// LinesIntersect returns true iff closed segments a1-a2 and b1-b2
// intersect, using the signs of four cross products. When the segments
// share an endpoint, the result is include_shared: true distinguishes
// the diagonals of a convex quadrilateral (which do cross) from two
// unrelated edges that merely touch at a shared vertex.
func LinesIntersect(a1, a2, b1, b2 Vec2, includeShared bool) bool {
	d1 := sign(b2.Sub(b1).Cross(a1.Sub(b1)))
	d2 := sign(b2.Sub(b1).Cross(a2.Sub(b1)))
	d3 := sign(a2.Sub(a1).Cross(b1.Sub(a1)))
	d4 := sign(a2.Sub(a1).Cross(b2.Sub(a1)))

	if d1 != d2 && d3 != d4 && d1 != 0 && d2 != 0 && d3 != 0 && d4 != 0 {
		return true
	}
	if !includeShared {
		return false
	}
	// Degenerate/collinear or shared-endpoint cases: treat touching as
	// intersecting only when explicitly requested.
	if d1 == 0 && onSegment(b1, b2, a1) {
		return true
	}
	if d2 == 0 && onSegment(b1, b2, a2) {
		return true
	}
	if d3 == 0 && onSegment(a1, a2, b1) {
		return true
	}
	if d4 == 0 && onSegment(a1, a2, b2) {
		return true
	}
	return false
}

func onSegment(a, b, p Vec2) bool {
	return p.X >= min(a.X, b.X)-1e-9 && p.X <= max(a.X, b.X)+1e-9 &&
		p.Y >= min(a.Y, b.Y)-1e-9 && p.Y <= max(a.Y, b.Y)+1e-9
}
