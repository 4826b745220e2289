package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Merge concatenates surfaces into one. Normals and UVs survive only when
// every input carries them; otherwise normals are recomputed and UVs
// dropped.
func Merge(surfaces ...*TriangleMesh) (*TriangleMesh, error) {
	if len(surfaces) == 0 {
		return nil, ErrNoGeometry
	}
	allNormals, allUVs := true, true
	for _, s := range surfaces {
		allNormals = allNormals && s.HasNormals()
		allUVs = allUVs && s.HasTriangleUVs()
	}

	out := &TriangleMesh{}
	for _, s := range surfaces {
		base := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, s.Vertices...)
		if allNormals {
			out.Normals = append(out.Normals, s.Normals...)
		}
		for _, tri := range s.Triangles {
			out.Triangles = append(out.Triangles, [3]uint32{tri[0] + base, tri[1] + base, tri[2] + base})
		}
		if allUVs {
			out.TriangleUVs = append(out.TriangleUVs, s.TriangleUVs...)
		}
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	if !allNormals {
		out.ComputeVertexNormals()
	}
	return out, nil
}

// Subdivide splits every triangle into four at its edge midpoints,
// iterations times. Shared edges share their midpoint vertex.
func Subdivide(s *TriangleMesh, iterations int) (*TriangleMesh, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	out := s.Clone()
	for it := 0; it < iterations; it++ {
		out = subdivideOnce(out)
	}
	if !out.HasNormals() {
		out.ComputeVertexNormals()
	}
	return out, nil
}

func subdivideOnce(s *TriangleMesh) *TriangleMesh {
	out := &TriangleMesh{
		Vertices: append([]mgl32.Vec3(nil), s.Vertices...),
	}
	hasNormals := s.HasNormals()
	if hasNormals {
		out.Normals = append([]mgl32.Vec3(nil), s.Normals...)
	}
	hasUVs := len(s.TriangleUVs) == 3*len(s.Triangles)

	midpoints := make(map[[2]uint32]uint32)
	mid := func(a, b uint32) uint32 {
		key := [2]uint32{min(a, b), max(a, b)}
		if idx, ok := midpoints[key]; ok {
			return idx
		}
		idx := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, s.Vertices[a].Add(s.Vertices[b]).Mul(0.5))
		if hasNormals {
			out.Normals = append(out.Normals, normalizeOr(s.Normals[a].Add(s.Normals[b]), s.Normals[a]))
		}
		midpoints[key] = idx
		return idx
	}

	for t, tri := range s.Triangles {
		a, b, c := tri[0], tri[1], tri[2]
		ab, bc, ca := mid(a, b), mid(b, c), mid(c, a)
		out.Triangles = append(out.Triangles,
			[3]uint32{a, ab, ca},
			[3]uint32{ab, b, bc},
			[3]uint32{ca, bc, c},
			[3]uint32{ab, bc, ca},
		)
		if hasUVs {
			ua, ub, uc := s.TriangleUVs[3*t], s.TriangleUVs[3*t+1], s.TriangleUVs[3*t+2]
			uab, ubc, uca := ua.Add(ub).Mul(0.5), ub.Add(uc).Mul(0.5), uc.Add(ua).Mul(0.5)
			out.TriangleUVs = append(out.TriangleUVs,
				ua, uab, uca,
				uab, ub, ubc,
				uca, ubc, uc,
				uab, ubc, uca,
			)
		}
	}
	return out
}

// HeightFunc returns the terrain height at (x, z).
type HeightFunc func(x, z float32) float32

// Terrain samples height over a resolution x resolution grid spanning
// width along X and length along Z, centered at the origin.
func Terrain(width, length float32, height HeightFunc, resolution int) (*TriangleMesh, error) {
	if width <= 0 || length <= 0 || resolution < 2 || height == nil {
		return nil, fmt.Errorf("terrain: invalid parameters width=%v length=%v resolution=%d", width, length, resolution)
	}
	step := float32(resolution - 1)
	m := &TriangleMesh{}
	for i := 0; i < resolution; i++ {
		z := -length/2 + length*float32(i)/step
		for j := 0; j < resolution; j++ {
			x := -width/2 + width*float32(j)/step
			m.Vertices = append(m.Vertices, mgl32.Vec3{x, height(x, z), z})
		}
	}
	uv := func(i, j int) mgl32.Vec2 { return mgl32.Vec2{float32(j) / step, float32(i) / step} }
	for i := 0; i < resolution-1; i++ {
		for j := 0; j < resolution-1; j++ {
			i1 := uint32(i*resolution + j)
			i2 := uint32(i*resolution + j + 1)
			i3 := uint32((i+1)*resolution + j)
			i4 := uint32((i+1)*resolution + j + 1)
			// wound so that flat ground faces +Y
			m.Triangles = append(m.Triangles, [3]uint32{i1, i3, i2}, [3]uint32{i2, i3, i4})
			m.TriangleUVs = append(m.TriangleUVs,
				uv(i, j), uv(i+1, j), uv(i, j+1),
				uv(i, j+1), uv(i+1, j), uv(i+1, j+1),
			)
		}
	}
	m.ComputeVertexNormals()
	return m, nil
}
