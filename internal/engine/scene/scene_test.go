package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/glint/internal/engine/camera"
	"github.com/Faultbox/glint/internal/engine/gpu"
	"github.com/Faultbox/glint/internal/engine/lighting"
	"github.com/Faultbox/glint/internal/engine/model"
	"github.com/Faultbox/glint/internal/engine/shader"
)

var white = mgl32.Vec3{1, 1, 1}

func TestRenderWithoutCamera(t *testing.T) {
	dev := gpu.NewRecorder()
	u := shader.NewRecorder()
	s := New()
	box, err := model.Box(dev, 1, 1, 1)
	require.NoError(t, err)
	s.AddModel(box)
	s.AddLight(lighting.NewPoint(white, white, white, white, lighting.DefaultAttenuation))

	assert.ErrorIs(t, s.Render(u, dev), ErrNoCamera)
	assert.ErrorIs(t, s.ApplyView(u, 1), ErrNoCamera)
	assert.Empty(t, u.Writes)
	assert.Empty(t, dev.Draws)
}

func TestRenderOrder(t *testing.T) {
	dev := gpu.NewRecorder()
	u := shader.NewRecorder()
	s := New()
	s.SetCamera(camera.New())

	first, err := model.Box(dev, 1, 1, 1)
	require.NoError(t, err)
	second, err := model.Sphere(dev, 1, 8)
	require.NoError(t, err)
	s.AddModel(first)
	s.AddModel(second)
	s.AddLight(lighting.NewDirectional(mgl32.Vec3{0, -1, 0}, white, white, white))
	s.AddLight(lighting.NewPoint(mgl32.Vec3{1, 1, 1}, white, white, white, lighting.DefaultAttenuation))

	require.NoError(t, s.Render(u, dev))

	require.Len(t, dev.Draws, 2)
	assert.Equal(t, first.Meshes()[0].Handle(), dev.Draws[0].Mesh)
	assert.Equal(t, second.Meshes()[0].Handle(), dev.Draws[1].Mesh)

	// lights, then the count, then per-model uniforms
	countAt, modelAt := -1, -1
	for i, w := range u.Writes {
		switch w.Name {
		case shader.NumPointLights:
			countAt = i
			assert.Equal(t, int32(1), w.Value)
		case shader.Model:
			if modelAt < 0 {
				modelAt = i
			}
		}
	}
	assert.Equal(t, 4+7, countAt)
	assert.Greater(t, modelAt, countAt)
}

func TestApplyView(t *testing.T) {
	u := shader.NewRecorder()
	s := New()
	cam := camera.New(camera.WithPosition(mgl32.Vec3{0, 2, 5}))
	s.SetCamera(cam)

	require.NoError(t, s.ApplyView(u, 800.0/600.0))

	v, _ := u.Value(shader.View)
	assert.Equal(t, cam.ViewMatrix(), v)
	v, _ = u.Value(shader.Projection)
	assert.Equal(t, cam.ProjectionMatrix(800.0/600.0), v)
	v, _ = u.Value(shader.ViewPos)
	assert.Equal(t, mgl32.Vec3{0, 2, 5}, v)
}

func TestAccessors(t *testing.T) {
	s := New()
	assert.Nil(t, s.Camera())
	s.AddLight(lighting.NewDirectional(white, white, white, white))
	s.AddModel(model.New())
	assert.Len(t, s.Lights(), 1)
	assert.Len(t, s.Models(), 1)
}
