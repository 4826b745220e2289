package model

import (
	"fmt"

	"github.com/Faultbox/glint/internal/engine/geometry"
	"github.com/Faultbox/glint/internal/engine/gpu"
	"github.com/Faultbox/glint/internal/engine/mesh"
	"github.com/Faultbox/glint/internal/engine/texture"
)

// FromSurface uploads s as a single-mesh model.
func FromSurface(dev gpu.Device, s *geometry.TriangleMesh, textures ...texture.Texture) (*Model, error) {
	msh, err := mesh.FromSurface(dev, s, textures...)
	if err != nil {
		return nil, err
	}
	return New(msh), nil
}

func fromPrimitive(dev gpu.Device, name string, s *geometry.TriangleMesh, err error) (*Model, error) {
	if err != nil {
		return nil, err
	}
	m, err := FromSurface(dev, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// Box creates a box model.
func Box(dev gpu.Device, width, height, depth float32) (*Model, error) {
	s, err := geometry.Box(width, height, depth)
	return fromPrimitive(dev, "box", s, err)
}

// Sphere creates a UV sphere model.
func Sphere(dev gpu.Device, radius float32, resolution int) (*Model, error) {
	s, err := geometry.Sphere(radius, resolution)
	return fromPrimitive(dev, "sphere", s, err)
}

// Cylinder creates a capped cylinder model.
func Cylinder(dev gpu.Device, radius, height float32, resolution, split int) (*Model, error) {
	s, err := geometry.Cylinder(radius, height, resolution, split)
	return fromPrimitive(dev, "cylinder", s, err)
}

// Cone creates a cone model.
func Cone(dev gpu.Device, radius, height float32, resolution, split int) (*Model, error) {
	s, err := geometry.Cone(radius, height, resolution, split)
	return fromPrimitive(dev, "cone", s, err)
}

// Torus creates a torus model.
func Torus(dev gpu.Device, torusRadius, tubeRadius float32, radialResolution, tubularResolution int) (*Model, error) {
	s, err := geometry.Torus(torusRadius, tubeRadius, radialResolution, tubularResolution)
	return fromPrimitive(dev, "torus", s, err)
}
