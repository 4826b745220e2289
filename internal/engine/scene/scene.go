// Package scene aggregates the camera, lights and models of one frame and
// renders them through an explicit device context.
package scene

import (
	"errors"

	"github.com/Faultbox/glint/internal/engine/camera"
	"github.com/Faultbox/glint/internal/engine/gpu"
	"github.com/Faultbox/glint/internal/engine/lighting"
	"github.com/Faultbox/glint/internal/engine/model"
	"github.com/Faultbox/glint/internal/engine/shader"
)

// ErrNoCamera is returned when rendering a scene without a camera.
var ErrNoCamera = errors.New("scene: camera not set")

// Scene holds models in draw order, lights in application order and at
// most one camera.
type Scene struct {
	models []*model.Model
	lights lighting.Set
	camera *camera.Camera
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// AddModel appends a model; models draw in insertion order.
func (s *Scene) AddModel(m *model.Model) {
	s.models = append(s.models, m)
}

// AddLight appends a light; point lights are indexed in insertion order.
func (s *Scene) AddLight(l lighting.Light) {
	s.lights.Add(l)
}

// SetCamera replaces the camera.
func (s *Scene) SetCamera(c *camera.Camera) {
	s.camera = c
}

// Camera returns the camera, or nil.
func (s *Scene) Camera() *camera.Camera { return s.camera }

// Models returns the models in draw order.
func (s *Scene) Models() []*model.Model { return append([]*model.Model(nil), s.models...) }

// Lights returns the lights in insertion order.
func (s *Scene) Lights() []lighting.Light { return s.lights.Lights() }

// ApplyView writes the camera's view, projection and eye position.
func (s *Scene) ApplyView(u shader.Uniforms, aspect float32) error {
	if s.camera == nil {
		return ErrNoCamera
	}
	u.SetMat4(shader.View, s.camera.ViewMatrix())
	u.SetMat4(shader.Projection, s.camera.ProjectionMatrix(aspect))
	u.SetVec3(shader.ViewPos, s.camera.Position())
	return nil
}

// Render applies every light, writes numPointLights and draws the models
// in order. Without a camera nothing is written or drawn.
func (s *Scene) Render(u shader.Uniforms, dev gpu.Device) error {
	if s.camera == nil {
		return ErrNoCamera
	}
	s.lights.Apply(u)
	for _, m := range s.models {
		m.Draw(u, dev)
	}
	return nil
}
