// Package mesh turns triangle surfaces into interleaved vertex data and
// owns the uploaded, immutable GPU representation.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/glint/internal/engine/geometry"
	"github.com/Faultbox/glint/internal/engine/gpu"
	"github.com/Faultbox/glint/internal/engine/shader"
	"github.com/Faultbox/glint/internal/engine/texture"
)

var (
	ErrEmptySurface     = errors.New("mesh: surface has no vertices or triangles")
	ErrIndexOutOfRange  = errors.New("mesh: index out of range")
	ErrUVCount          = errors.New("mesh: triangle UV count must be three per triangle")
	ErrVertexDataLength = errors.New("mesh: vertex data is not a whole number of vertices")
)

// VertexData is interleaved [px py pz nx ny nz u v] rows plus a flat
// triangle index list.
type VertexData struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertex rows.
func (d VertexData) VertexCount() int {
	return len(d.Vertices) / gpu.FloatsPerVertex
}

// Validate checks row length, emptiness and index range.
func (d VertexData) Validate() error {
	if len(d.Vertices)%gpu.FloatsPerVertex != 0 {
		return ErrVertexDataLength
	}
	n := d.VertexCount()
	if n == 0 || len(d.Indices) == 0 {
		return ErrEmptySurface
	}
	if len(d.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a triangle list", ErrIndexOutOfRange, len(d.Indices))
	}
	for i, idx := range d.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: indices[%d]=%d with %d vertices", ErrIndexOutOfRange, i, idx, n)
		}
	}
	return nil
}

// Build flattens s into vertex data. Missing normals are computed on a
// copy. Per-corner UVs are scattered onto shared vertices, the last corner
// to reference a vertex winning, so seams collapse to one coordinate.
func Build(s *geometry.TriangleMesh) (VertexData, error) {
	if s == nil || len(s.Vertices) == 0 || len(s.Triangles) == 0 {
		return VertexData{}, ErrEmptySurface
	}
	n := uint32(len(s.Vertices))
	for t, tri := range s.Triangles {
		for _, idx := range tri {
			if idx >= n {
				return VertexData{}, fmt.Errorf("%w: triangle %d references %d with %d vertices", ErrIndexOutOfRange, t, idx, n)
			}
		}
	}
	hasUVs := s.HasTriangleUVs()
	if hasUVs && len(s.TriangleUVs) != 3*len(s.Triangles) {
		return VertexData{}, fmt.Errorf("%w: %d UVs for %d triangles", ErrUVCount, len(s.TriangleUVs), len(s.Triangles))
	}

	normals := s.Normals
	if !s.HasNormals() {
		c := s.Clone()
		c.ComputeVertexNormals()
		normals = c.Normals
	}

	data := VertexData{
		Vertices: make([]float32, 0, len(s.Vertices)*gpu.FloatsPerVertex),
		Indices:  make([]uint32, 0, 3*len(s.Triangles)),
	}
	for i, p := range s.Vertices {
		nrm := normals[i]
		data.Vertices = append(data.Vertices, p[0], p[1], p[2], nrm[0], nrm[1], nrm[2], 0, 0)
	}
	for t, tri := range s.Triangles {
		for k, idx := range tri {
			data.Indices = append(data.Indices, idx)
			if hasUVs {
				uv := s.TriangleUVs[3*t+k]
				row := int(idx) * gpu.FloatsPerVertex
				data.Vertices[row+6] = uv[0]
				data.Vertices[row+7] = uv[1]
			}
		}
	}
	return data, nil
}

// Mesh is vertex data uploaded once to a device, plus its textures.
type Mesh struct {
	handle   gpu.MeshHandle
	vertices []float32
	indices  []uint32
	textures []texture.Texture
}

// New validates data and uploads it through dev.
func New(dev gpu.Device, data VertexData, textures ...texture.Texture) (*Mesh, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	h, err := dev.UploadMesh(data.Vertices, data.Indices)
	if err != nil {
		return nil, fmt.Errorf("uploading mesh: %w", err)
	}
	return &Mesh{
		handle:   h,
		vertices: append([]float32(nil), data.Vertices...),
		indices:  append([]uint32(nil), data.Indices...),
		textures: append([]texture.Texture(nil), textures...),
	}, nil
}

// FromSurface builds and uploads s in one step.
func FromSurface(dev gpu.Device, s *geometry.TriangleMesh, textures ...texture.Texture) (*Mesh, error) {
	data, err := Build(s)
	if err != nil {
		return nil, err
	}
	return New(dev, data, textures...)
}

// Draw binds each texture to the unit matching its position, points the
// material sampler of its kind at that unit and issues one indexed draw.
// Samplers are numbered per kind from 1: texture_diffuse1,
// texture_diffuse2, texture_specular1.
func (m *Mesh) Draw(u shader.Uniforms, dev gpu.Device) {
	counters := make(map[texture.Kind]int, 2)
	for i, tex := range m.textures {
		counters[tex.Kind]++
		u.SetInt(shader.Sampler(string(tex.Kind), counters[tex.Kind]), int32(i))
		dev.BindTexture(i, tex.Handle)
	}
	dev.DrawIndexed(m.handle, len(m.indices))
}

// Handle returns the device handle of the uploaded buffers.
func (m *Mesh) Handle() gpu.MeshHandle { return m.handle }

// Vertices returns a copy of the interleaved vertex data.
func (m *Mesh) Vertices() []float32 { return append([]float32(nil), m.vertices...) }

// Indices returns a copy of the index list.
func (m *Mesh) Indices() []uint32 { return append([]uint32(nil), m.indices...) }

// Textures returns a copy of the texture list.
func (m *Mesh) Textures() []texture.Texture { return append([]texture.Texture(nil), m.textures...) }

// HasTextures reports whether any texture is attached.
func (m *Mesh) HasTextures() bool { return len(m.textures) > 0 }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.vertices) / gpu.FloatsPerVertex }

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int { return len(m.indices) }
