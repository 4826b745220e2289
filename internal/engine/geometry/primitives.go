package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// All primitives are centered at the origin, wind counter-clockwise when
// seen from outside and carry computed vertex normals.

// Box builds a box of the given size with flat faces and per-face UVs.
func Box(width, height, depth float32) (*TriangleMesh, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("box: dimensions must be positive, got %vx%vx%v", width, height, depth)
	}
	hx, hy, hz := width/2, height/2, depth/2

	// corner, u edge, v edge; u x v points out of the face
	faces := [6][3]mgl32.Vec3{
		{{hx, -hy, hz}, {0, 0, -depth}, {0, height, 0}},   // +X
		{{-hx, -hy, -hz}, {0, 0, depth}, {0, height, 0}},  // -X
		{{-hx, hy, hz}, {width, 0, 0}, {0, 0, -depth}},    // +Y
		{{-hx, -hy, -hz}, {width, 0, 0}, {0, 0, depth}},   // -Y
		{{-hx, -hy, hz}, {width, 0, 0}, {0, height, 0}},   // +Z
		{{hx, -hy, -hz}, {-width, 0, 0}, {0, height, 0}},  // -Z
	}
	uv := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	m := &TriangleMesh{}
	for _, f := range faces {
		c, u, v := f[0], f[1], f[2]
		base := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, c, c.Add(u), c.Add(u).Add(v), c.Add(v))
		m.Triangles = append(m.Triangles,
			[3]uint32{base, base + 1, base + 2},
			[3]uint32{base, base + 2, base + 3},
		)
		m.TriangleUVs = append(m.TriangleUVs, uv[0], uv[1], uv[2], uv[0], uv[2], uv[3])
	}
	m.ComputeVertexNormals()
	return m, nil
}

// Sphere builds a UV sphere around the Z axis with resolution latitude
// bands and 2*resolution longitude segments.
func Sphere(radius float32, resolution int) (*TriangleMesh, error) {
	if radius <= 0 || resolution < 2 {
		return nil, fmt.Errorf("sphere: need radius > 0 and resolution >= 2, got %v, %d", radius, resolution)
	}
	segments := 2 * resolution
	m := &TriangleMesh{
		Vertices: []mgl32.Vec3{{0, 0, radius}, {0, 0, -radius}},
	}
	for i := 1; i < resolution; i++ {
		alpha := math32.Pi * float32(i) / float32(resolution)
		for j := 0; j < segments; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(segments)
			m.Vertices = append(m.Vertices, mgl32.Vec3{
				radius * math32.Sin(alpha) * math32.Cos(theta),
				radius * math32.Sin(alpha) * math32.Sin(theta),
				radius * math32.Cos(alpha),
			})
		}
	}
	ring := func(i int) uint32 { return uint32(2 + (i-1)*segments) }

	m.Triangles = append(m.Triangles, fan(0, ring(1), segments, false)...)
	for i := 1; i < resolution-1; i++ {
		m.Triangles = append(m.Triangles, band(ring(i), ring(i+1), segments)...)
	}
	m.Triangles = append(m.Triangles, fan(1, ring(resolution-1), segments, true)...)

	m.ComputeVertexNormals()
	return m, nil
}

// Cylinder builds a capped cylinder along the Z axis. split is the number
// of side bands between the caps.
func Cylinder(radius, height float32, resolution, split int) (*TriangleMesh, error) {
	if radius <= 0 || height <= 0 || resolution < 3 || split < 1 {
		return nil, fmt.Errorf("cylinder: invalid parameters radius=%v height=%v resolution=%d split=%d",
			radius, height, resolution, split)
	}
	m := &TriangleMesh{
		Vertices: []mgl32.Vec3{{0, 0, height / 2}, {0, 0, -height / 2}},
	}
	for i := 0; i <= split; i++ {
		z := height/2 - height*float32(i)/float32(split)
		m.Vertices = append(m.Vertices, circle(radius, z, resolution)...)
	}
	ring := func(i int) uint32 { return uint32(2 + i*resolution) }

	m.Triangles = append(m.Triangles, fan(0, ring(0), resolution, false)...)
	for i := 0; i < split; i++ {
		m.Triangles = append(m.Triangles, band(ring(i), ring(i+1), resolution)...)
	}
	m.Triangles = append(m.Triangles, fan(1, ring(split), resolution, true)...)

	m.ComputeVertexNormals()
	return m, nil
}

// Cone builds a cone along the Z axis with its base at -height/2 and the
// apex at +height/2.
func Cone(radius, height float32, resolution, split int) (*TriangleMesh, error) {
	if radius <= 0 || height <= 0 || resolution < 3 || split < 1 {
		return nil, fmt.Errorf("cone: invalid parameters radius=%v height=%v resolution=%d split=%d",
			radius, height, resolution, split)
	}
	m := &TriangleMesh{
		Vertices: []mgl32.Vec3{{0, 0, height / 2}, {0, 0, -height / 2}},
	}
	// ring 0 is the base rim, ring split-1 the one nearest the apex
	for i := 0; i < split; i++ {
		r := radius * float32(split-i) / float32(split)
		z := -height/2 + height*float32(i)/float32(split)
		m.Vertices = append(m.Vertices, circle(r, z, resolution)...)
	}
	ring := func(i int) uint32 { return uint32(2 + i*resolution) }

	m.Triangles = append(m.Triangles, fan(0, ring(split-1), resolution, false)...)
	for i := split - 1; i > 0; i-- {
		m.Triangles = append(m.Triangles, band(ring(i), ring(i-1), resolution)...)
	}
	m.Triangles = append(m.Triangles, fan(1, ring(0), resolution, true)...)

	m.ComputeVertexNormals()
	return m, nil
}

// Torus builds a torus lying in the XY plane.
func Torus(torusRadius, tubeRadius float32, radialResolution, tubularResolution int) (*TriangleMesh, error) {
	if torusRadius <= 0 || tubeRadius <= 0 || radialResolution < 3 || tubularResolution < 3 {
		return nil, fmt.Errorf("torus: invalid parameters R=%v r=%v radial=%d tubular=%d",
			torusRadius, tubeRadius, radialResolution, tubularResolution)
	}
	m := &TriangleMesh{}
	for i := 0; i < radialResolution; i++ {
		u := 2 * math32.Pi * float32(i) / float32(radialResolution)
		for j := 0; j < tubularResolution; j++ {
			v := 2 * math32.Pi * float32(j) / float32(tubularResolution)
			ring := torusRadius + tubeRadius*math32.Cos(v)
			m.Vertices = append(m.Vertices, mgl32.Vec3{
				ring * math32.Cos(u),
				ring * math32.Sin(u),
				tubeRadius * math32.Sin(v),
			})
		}
	}
	idx := func(i, j int) uint32 {
		return uint32((i%radialResolution)*tubularResolution + j%tubularResolution)
	}
	for i := 0; i < radialResolution; i++ {
		for j := 0; j < tubularResolution; j++ {
			a, b := idx(i, j), idx(i+1, j)
			c, d := idx(i, j+1), idx(i+1, j+1)
			m.Triangles = append(m.Triangles, [3]uint32{a, b, d}, [3]uint32{a, d, c})
		}
	}
	m.ComputeVertexNormals()
	return m, nil
}

// circle returns n points of a circle of radius r at height z, counter-
// clockwise seen from +Z.
func circle(r, z float32, n int) []mgl32.Vec3 {
	pts := make([]mgl32.Vec3, n)
	for j := range pts {
		theta := 2 * math32.Pi * float32(j) / float32(n)
		pts[j] = mgl32.Vec3{r * math32.Cos(theta), r * math32.Sin(theta), z}
	}
	return pts
}

// fan connects a pole vertex to a ring. Rings run counter-clockwise seen
// from +Z; flip produces a fan facing -Z.
func fan(pole, ring uint32, n int, flip bool) [][3]uint32 {
	tris := make([][3]uint32, 0, n)
	for j := 0; j < n; j++ {
		a := ring + uint32(j)
		b := ring + uint32((j+1)%n)
		if flip {
			tris = append(tris, [3]uint32{pole, b, a})
		} else {
			tris = append(tris, [3]uint32{pole, a, b})
		}
	}
	return tris
}

// band stitches an upper ring to a lower ring with outward-facing quads.
func band(upper, lower uint32, n int) [][3]uint32 {
	tris := make([][3]uint32, 0, 2*n)
	for j := 0; j < n; j++ {
		a := upper + uint32(j)
		b := upper + uint32((j+1)%n)
		c := lower + uint32(j)
		d := lower + uint32((j+1)%n)
		tris = append(tris, [3]uint32{a, c, d}, [3]uint32{a, d, b})
	}
	return tris
}
