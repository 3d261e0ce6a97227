// Package seed generates Voronoi seed points over a bounding box: a
// uniform sampler, an impact-based sampler biased toward a point of
// impact, and axis-constrained 2D variants of both for planar fracture
// patterns. See spec §4.9.
package seed

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/soypat/fracture/geom"
)

// LCG is a reproducible 32-bit linear congruential generator, used
// instead of math/rand so that fracture results are bit-for-bit
// reproducible across Go versions (math/rand's algorithm is not part of
// its compatibility guarantee; this one is fixed by spec §4.8).
type LCG struct {
	state uint32
}

// NewLCG seeds a generator. Two LCGs built from the same seed produce
// identical sequences.
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// NewRandomLCG seeds an LCG from math/rand/v2 for callers with no
// explicit seed to reproduce (spec §4.8: "a seed may be supplied" implies
// an unsupplied seed still needs a source of entropy, just not a
// reproducible one).
func NewRandomLCG() *LCG {
	return NewLCG(rand.Uint32())
}

// Float64 returns the next output in [0, 1), advancing the generator.
func (l *LCG) Float64() float64 {
	l.state = 1664525*l.state + 1013904223
	return float64(l.state) / 4294967296.0
}

// Range returns the next output linearly mapped to [lo, hi).
func (l *LCG) Range(lo, hi float64) float64 {
	return lo + l.Float64()*(hi-lo)
}

// Axis identifies a coordinate axis of a Box3.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// AutoAxis picks the axis along which b is thinnest, the axis a 2.5D
// sampler should be constrained to when the caller does not specify one.
func AutoAxis(b geom.Box3) Axis {
	size := b.Size()
	axis := AxisX
	smallest := size.X
	if size.Y < smallest {
		axis, smallest = AxisY, size.Y
	}
	if size.Z < smallest {
		axis = AxisZ
	}
	return axis
}

// Uniform generates n points with coordinates independently uniform on
// each axis of b.
func Uniform(b geom.Box3, n int, rng *LCG) []geom.Vec3 {
	out := make([]geom.Vec3, n)
	for i := range out {
		out[i] = geom.Vec3{
			X: rng.Range(b.Min.X, b.Max.X),
			Y: rng.Range(b.Min.Y, b.Max.Y),
			Z: rng.Range(b.Min.Z, b.Max.Z),
		}
	}
	return out
}

// ImpactBased generates floor(0.6n) points via a power-distribution
// spherical sample centred at p (radius r*u^2, spherical angles uniform),
// clamped to b, then fills the remainder with Uniform samples.
func ImpactBased(b geom.Box3, n int, p geom.Vec3, r float64, rng *LCG) []geom.Vec3 {
	impactCount := int(0.6 * float64(n))
	out := make([]geom.Vec3, 0, n)
	center := clampToBox(p, b)
	for i := 0; i < impactCount; i++ {
		u := rng.Float64()
		radius := r * u * u
		theta := float32(rng.Range(0, 2*math32.Pi))
		phi := float32(rng.Range(0, math32.Pi))
		sinPhi, cosPhi := math32.Sin(phi), math32.Cos(phi)
		sinTheta, cosTheta := math32.Sin(theta), math32.Cos(theta)
		offset := geom.Vec3{
			X: radius * float64(sinPhi*cosTheta),
			Y: radius * float64(sinPhi*sinTheta),
			Z: radius * float64(cosPhi),
		}
		out = append(out, clampToBox(center.Add(offset), b))
	}
	out = append(out, Uniform(b, n-impactCount, rng)...)
	return out
}

// Planar2_5D is the 2D analogue of Uniform: n samples on the plane
// through b's centre perpendicular to axis, uniform over the other two
// coordinates within b's bounds.
func Planar2_5D(b geom.Box3, n int, axis Axis, rng *LCG) []geom.Vec3 {
	out := make([]geom.Vec3, n)
	for i := range out {
		out[i] = planarPoint(b, axis, rng.Range(0, 1), rng.Range(0, 1))
	}
	return out
}

// Planar2_5DImpactBased is the 2D analogue of ImpactBased: a power-
// distribution disk sample around p's projection onto the constrained
// plane, plus uniform fill.
func Planar2_5DImpactBased(b geom.Box3, n int, p geom.Vec3, r float64, axis Axis, rng *LCG) []geom.Vec3 {
	impactCount := int(0.6 * float64(n))
	out := make([]geom.Vec3, 0, n)
	center := projectOntoPlane(clampToBox(p, b), b, axis)
	for i := 0; i < impactCount; i++ {
		u := rng.Float64()
		radius := r * u * u
		theta := float32(rng.Range(0, 2*math32.Pi))
		offset2D := geom.Vec2{X: radius * float64(math32.Cos(theta)), Y: radius * float64(math32.Sin(theta))}
		out = append(out, clampToBox(applyOffset(center, axis, offset2D), b))
	}
	for i := 0; i < n-impactCount; i++ {
		out = append(out, planarPoint(b, axis, rng.Float64(), rng.Float64()))
	}
	return out
}

func planarPoint(b geom.Box3, axis Axis, u, v float64) geom.Vec3 {
	c := b.Center()
	switch axis {
	case AxisX:
		return geom.Vec3{X: c.X, Y: b.Min.Y + u*(b.Max.Y-b.Min.Y), Z: b.Min.Z + v*(b.Max.Z-b.Min.Z)}
	case AxisY:
		return geom.Vec3{X: b.Min.X + u*(b.Max.X-b.Min.X), Y: c.Y, Z: b.Min.Z + v*(b.Max.Z-b.Min.Z)}
	default:
		return geom.Vec3{X: b.Min.X + u*(b.Max.X-b.Min.X), Y: b.Min.Y + v*(b.Max.Y-b.Min.Y), Z: c.Z}
	}
}

func projectOntoPlane(p geom.Vec3, b geom.Box3, axis Axis) geom.Vec3 {
	c := b.Center()
	switch axis {
	case AxisX:
		return geom.Vec3{X: c.X, Y: p.Y, Z: p.Z}
	case AxisY:
		return geom.Vec3{X: p.X, Y: c.Y, Z: p.Z}
	default:
		return geom.Vec3{X: p.X, Y: p.Y, Z: c.Z}
	}
}

func applyOffset(center geom.Vec3, axis Axis, offset geom.Vec2) geom.Vec3 {
	switch axis {
	case AxisX:
		return geom.Vec3{X: center.X, Y: center.Y + offset.X, Z: center.Z + offset.Y}
	case AxisY:
		return geom.Vec3{X: center.X + offset.X, Y: center.Y, Z: center.Z + offset.Y}
	default:
		return geom.Vec3{X: center.X + offset.X, Y: center.Y + offset.Y, Z: center.Z}
	}
}

func clampToBox(p geom.Vec3, b geom.Box3) geom.Vec3 {
	return geom.Vec3{
		X: clamp(p.X, b.Min.X, b.Max.X),
		Y: clamp(p.Y, b.Min.Y, b.Max.Y),
		Z: clamp(p.Z, b.Min.Z, b.Max.Z),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
