// Package demo assembles the default scene: three spinning primitives,
// an imported model with a torus fallback, and the configured lights.
package demo

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/glint/internal/config"
	"github.com/Faultbox/glint/internal/engine/camera"
	"github.com/Faultbox/glint/internal/engine/gpu"
	"github.com/Faultbox/glint/internal/engine/model"
	"github.com/Faultbox/glint/internal/engine/scene"
	"github.com/Faultbox/glint/internal/game"
	"github.com/Faultbox/glint/internal/logger"
)

// Built is the assembled scene and the behaviors that animate it.
type Built struct {
	Scene     *scene.Scene
	Behaviors []game.Behavior
}

type primitive struct {
	name      string
	build     func(gpu.Device) (*model.Model, error)
	position  mgl32.Vec3
	color     mgl32.Vec3
	shininess float32
	axis      mgl32.Vec3
	rate      float32
}

var primitives = []primitive{
	{
		name:      "cube",
		build:     func(dev gpu.Device) (*model.Model, error) { return model.Box(dev, 1, 1, 1) },
		position:  mgl32.Vec3{-1.5, 0, 0},
		color:     mgl32.Vec3{1, 0, 0},
		shininess: 64,
		axis:      mgl32.Vec3{0, 1, 0},
		rate:      0.5,
	},
	{
		name:      "sphere",
		build:     func(dev gpu.Device) (*model.Model, error) { return model.Sphere(dev, 0.5, 32) },
		color:     mgl32.Vec3{0, 1, 0},
		shininess: 128,
		axis:      mgl32.Vec3{1, 1, 0},
		rate:      0.3,
	},
	{
		name:      "cylinder",
		build:     func(dev gpu.Device) (*model.Model, error) { return model.Cylinder(dev, 0.5, 1, 32, 1) },
		position:  mgl32.Vec3{1.5, 0, 0},
		color:     mgl32.Vec3{0, 0, 1},
		shininess: 32,
		axis:      mgl32.Vec3{0, 0, 1},
		rate:      0.7,
	},
}

// Build creates every model on dev and wires the camera, lights and
// controller from cfg.
func Build(dev gpu.Device, cfg *config.Config) (*Built, error) {
	log := logger.Named("demo")
	sc := scene.New()
	out := &Built{Scene: sc}

	sc.SetCamera(camera.New(cfg.Camera.CameraOptions()...))
	out.Behaviors = append(out.Behaviors, &game.FlyController{
		Speed:       cfg.Camera.Speed,
		Sensitivity: cfg.Camera.Sensitivity,
	})

	lights, err := cfg.Scene.BuildLights()
	if err != nil {
		return nil, err
	}
	for _, l := range lights {
		sc.AddLight(l)
	}

	for _, p := range primitives {
		m, err := p.build(dev)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", p.name, err)
		}
		m.SetPosition(p.position)
		m.SetColor(p.color)
		m.SetShininess(p.shininess)
		sc.AddModel(m)
		out.Behaviors = append(out.Behaviors, &game.Spinner{Model: m, Axis: p.axis, Rate: p.rate})
	}

	imported, err := importModel(dev, cfg.Scene.ModelPath)
	if err != nil {
		return nil, err
	}
	sc.AddModel(imported)

	log.Info("scene built",
		zap.Int("models", len(sc.Models())),
		zap.Int("lights", len(sc.Lights())),
	)
	return out, nil
}

// importModel loads path above the primitives, or a yellow torus when the
// file does not exist.
func importModel(dev gpu.Device, path string) (*model.Model, error) {
	if path != "" {
		m, err := model.Load(dev, path)
		switch {
		case err == nil:
			m.SetPosition(mgl32.Vec3{0, 1.5, 0})
			m.SetScale(mgl32.Vec3{0.5, 0.5, 0.5})
			return m, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
		logger.Named("demo").Info("model not found, showing a torus", zap.String("path", path))
	}

	m, err := model.Torus(dev, 0.5, 0.2, 30, 20)
	if err != nil {
		return nil, fmt.Errorf("building torus: %w", err)
	}
	m.SetPosition(mgl32.Vec3{0, 1.5, 0})
	m.SetColor(mgl32.Vec3{1, 1, 0})
	m.SetShininess(16)
	return m, nil
}
