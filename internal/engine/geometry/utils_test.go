package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	a, err := Box(1, 1, 1)
	require.NoError(t, err)
	b, err := Box(2, 2, 2)
	require.NoError(t, err)

	m, err := Merge(a, b)
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 48)
	assert.Len(t, m.Triangles, 24)
	assert.Len(t, m.TriangleUVs, 72)
	assert.Equal(t, [3]uint32{24, 25, 26}, m.Triangles[12])
	require.NoError(t, m.Validate())
}

func TestMergeDropsPartialUVs(t *testing.T) {
	box, err := Box(1, 1, 1)
	require.NoError(t, err)
	sphere, err := Sphere(1, 4)
	require.NoError(t, err)

	m, err := Merge(box, sphere)
	require.NoError(t, err)
	assert.False(t, m.HasTriangleUVs())
	assert.True(t, m.HasNormals())

	_, err = Merge()
	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestSubdivide(t *testing.T) {
	tri := &TriangleMesh{
		Vertices:    []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Triangles:   [][3]uint32{{0, 1, 2}},
		TriangleUVs: []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
	}
	m, err := Subdivide(tri, 2)
	require.NoError(t, err)
	assert.Len(t, m.Triangles, 16)
	assert.Len(t, m.Vertices, 15)
	assert.Len(t, m.TriangleUVs, 48)
	for _, n := range m.Normals {
		assert.InDelta(t, 1, n.Z(), 1e-6)
	}

	// the input is left untouched
	assert.Len(t, tri.Triangles, 1)
}

func TestSubdivideSharesEdgeMidpoints(t *testing.T) {
	box, err := Box(1, 1, 1)
	require.NoError(t, err)
	m, err := Subdivide(box, 1)
	require.NoError(t, err)
	// 24 corners + one midpoint per unique edge (4 outer + 1 diagonal per face)
	assert.Len(t, m.Vertices, 24+6*5)
	assertOutward(t, m)
}

func TestTerrainFacesUp(t *testing.T) {
	flat := func(x, z float32) float32 { return 0 }
	m, err := Terrain(10, 10, flat, 5)
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 25)
	assert.Len(t, m.Triangles, 32)
	assert.Len(t, m.TriangleUVs, 96)
	for _, n := range m.Normals {
		assert.InDelta(t, 1, n.Y(), 1e-6)
	}

	lo, hi := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-5, 0, -5}, lo)
	assert.Equal(t, mgl32.Vec3{5, 0, 5}, hi)

	_, err = Terrain(10, 10, flat, 1)
	assert.Error(t, err)
}
