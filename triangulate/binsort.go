package triangulate

import "github.com/soypat/fracture/geom"

// GetBinNumber implements snake ordering over an n x n grid: row-major
// for even rows, reversed for odd rows. Snake ordering makes successive
// inserted points spatially adjacent, which accelerates the edge-walk
// point location used by the triangulators.
func GetBinNumber(i, j, n int) int {
	if i%2 == 0 {
		return i*n + j
	}
	return i*n + (n - 1 - j)
}

// BinSort performs a counting sort of points[:lastIndex] by their Bin
// field into a new slice in snake-bin order; points[lastIndex:] is
// appended unchanged. The input slice is not mutated.
func BinSort(points []TriangulationPoint, binCount, lastIndex int) []TriangulationPoint {
	if lastIndex > len(points) {
		lastIndex = len(points)
	}
	counts := make([]int, binCount+1)
	for _, p := range points[:lastIndex] {
		counts[p.Bin+1]++
	}
	for b := 1; b <= binCount; b++ {
		counts[b] += counts[b-1]
	}
	out := make([]TriangulationPoint, len(points))
	cursor := append([]int(nil), counts...)
	for _, p := range points[:lastIndex] {
		out[cursor[p.Bin]] = p
		cursor[p.Bin]++
	}
	copy(out[lastIndex:], points[lastIndex:])
	return out
}

// AssignBins computes bin indices for each 2D point assumed normalized
// to [0,1]^2, using a binsPerAxis x binsPerAxis grid in snake order.
func AssignBins(points []geom.Vec2, binsPerAxis int) []TriangulationPoint {
	out := make([]TriangulationPoint, len(points))
	for idx, p := range points {
		i := clampBin(int(p.Y*float64(binsPerAxis)), binsPerAxis)
		j := clampBin(int(p.X*float64(binsPerAxis)), binsPerAxis)
		out[idx] = TriangulationPoint{
			Index:  idx,
			Coords: p,
			Bin:    GetBinNumber(i, j, binsPerAxis),
		}
	}
	return out
}

func clampBin(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
