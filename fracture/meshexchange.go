package fracture

import (
	"fmt"

	"github.com/soypat/fracture/fracerr"
	"github.com/soypat/fracture/fragment"
	"github.com/soypat/fracture/geom"
)

// HostMesh is the flat, host-runtime-facing mesh layout MeshExchange
// converts to and from a Fragment: parallel position/normal/UV arrays
// plus a triangle index buffer.
type HostMesh struct {
	Positions []geom.Vec3
	Normals   []geom.Vec3
	UVs       []geom.Vec2
	Indices   []int
}

// HostMeshOut is a HostMesh as produced by Fracture/VoronoiFracture:
// Indices holds both submeshes back to back, and SurfaceTriangleCount
// names the boundary between them. [0, SurfaceTriangleCount) triangles
// use the host's surface material slot; the rest use the cut-face slot.
type HostMeshOut struct {
	HostMesh
	SurfaceTriangleCount int
}

// Validate checks a HostMesh's buffer shapes without converting it,
// surfacing fracerr.InvalidInput on the first problem found.
func Validate(m HostMesh) error {
	if len(m.Positions) == 0 {
		return fmt.Errorf("%w: mesh has no vertices", fracerr.InvalidInput)
	}
	if len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("%w: %d normals for %d positions", fracerr.InvalidInput, len(m.Normals), len(m.Positions))
	}
	if len(m.UVs) != len(m.Positions) {
		return fmt.Errorf("%w: %d uvs for %d positions", fracerr.InvalidInput, len(m.UVs), len(m.Positions))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", fracerr.InvalidInput, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Positions) {
			return fmt.Errorf("%w: index %d at position %d out of range [0,%d)", fracerr.InvalidInput, idx, i, len(m.Positions))
		}
	}
	return nil
}

// FromHostMesh converts a host mesh into a fresh Fragment with an empty
// cut-face submesh, after validating its buffer shapes.
func FromHostMesh(m HostMesh) (*fragment.Fragment, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}
	f := fragment.New()
	for i := range m.Positions {
		f.AddVertex(fragment.MeshVertex{
			Position: m.Positions[i],
			Normal:   m.Normals[i],
			UV:       m.UVs[i],
		})
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		f.AddTriangle(0, m.Indices[i], m.Indices[i+1], m.Indices[i+2])
	}
	return f, nil
}

// ToHostMesh flattens a Fragment back into host layout, appending
// Triangles[1] (cut-face) after Triangles[0] (surface) and recording the
// boundary between them.
func ToHostMesh(f *fragment.Fragment) HostMeshOut {
	n := f.VertexCount()
	positions := make([]geom.Vec3, n)
	normals := make([]geom.Vec3, n)
	uvs := make([]geom.Vec2, n)
	for i := 0; i < n; i++ {
		v := f.VertexAt(i)
		positions[i] = v.Position
		normals[i] = v.Normal
		uvs[i] = v.UV
	}
	indices := make([]int, 0, len(f.Triangles[0])+len(f.Triangles[1]))
	indices = append(indices, f.Triangles[0]...)
	surfaceTris := len(f.Triangles[0]) / 3
	indices = append(indices, f.Triangles[1]...)
	return HostMeshOut{
		HostMesh: HostMesh{
			Positions: positions,
			Normals:   normals,
			UVs:       uvs,
			Indices:   indices,
		},
		SurfaceTriangleCount: surfaceTris,
	}
}
