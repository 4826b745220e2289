// Package geometry builds CPU-side triangle surfaces: primitives, imported
// meshes and the utilities that combine them. Surfaces are turned into
// drawable meshes by the mesh package.
package geometry

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoGeometry is returned for surfaces without vertices or triangles.
var ErrNoGeometry = errors.New("geometry: surface has no geometry")

// TriangleMesh is an indexed triangle surface.
//
// Normals, when present, hold one entry per vertex. TriangleUVs, when
// present, hold one entry per triangle corner (3 per triangle).
type TriangleMesh struct {
	Vertices    []mgl32.Vec3
	Normals     []mgl32.Vec3
	Triangles   [][3]uint32
	TriangleUVs []mgl32.Vec2
}

// HasNormals reports whether every vertex has a normal.
func (m *TriangleMesh) HasNormals() bool {
	return len(m.Vertices) > 0 && len(m.Normals) == len(m.Vertices)
}

// HasTriangleUVs reports whether per-corner UVs are present.
func (m *TriangleMesh) HasTriangleUVs() bool {
	return len(m.TriangleUVs) > 0
}

// Validate checks that the surface is non-empty and every index is in range.
func (m *TriangleMesh) Validate() error {
	if len(m.Vertices) == 0 || len(m.Triangles) == 0 {
		return ErrNoGeometry
	}
	n := uint32(len(m.Vertices))
	for i, tri := range m.Triangles {
		for _, idx := range tri {
			if idx >= n {
				return fmt.Errorf("triangle %d: index %d out of range (%d vertices)", i, idx, n)
			}
		}
	}
	return nil
}

// ComputeVertexNormals replaces Normals with area-weighted averages of the
// incident face normals. Vertices without a non-degenerate face get +Y.
func (m *TriangleMesh) ComputeVertexNormals() {
	normals := make([]mgl32.Vec3, len(m.Vertices))
	for _, tri := range m.Triangles {
		if int(tri[0]) >= len(m.Vertices) || int(tri[1]) >= len(m.Vertices) || int(tri[2]) >= len(m.Vertices) {
			continue
		}
		v0 := m.Vertices[tri[0]]
		e1 := m.Vertices[tri[1]].Sub(v0)
		e2 := m.Vertices[tri[2]].Sub(v0)
		// unnormalized: length is twice the triangle area
		n := e1.Cross(e2)
		for _, idx := range tri {
			normals[idx] = normals[idx].Add(n)
		}
	}
	for i, n := range normals {
		normals[i] = normalizeOr(n, mgl32.Vec3{0, 1, 0})
	}
	m.Normals = normals
}

// Clone returns a deep copy.
func (m *TriangleMesh) Clone() *TriangleMesh {
	return &TriangleMesh{
		Vertices:    append([]mgl32.Vec3(nil), m.Vertices...),
		Normals:     append([]mgl32.Vec3(nil), m.Normals...),
		Triangles:   append([][3]uint32(nil), m.Triangles...),
		TriangleUVs: append([]mgl32.Vec2(nil), m.TriangleUVs...),
	}
}

// Bounds returns the axis-aligned bounding box.
func (m *TriangleMesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return lo, hi
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v[k])
			hi[k] = max(hi[k], v[k])
		}
	}
	return lo, hi
}

func normalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return fallback
	}
	return v.Mul(1 / l)
}
