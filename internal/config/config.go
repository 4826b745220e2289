// Package config handles viewer configuration loading and management.
package config

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glint/internal/engine/camera"
	"github.com/Faultbox/glint/internal/game"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Render   RenderConfig   `yaml:"render"`
	Scene    SceneConfig    `yaml:"scene"`
	Controls ControlsConfig `yaml:"controls"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Vec3 is a YAML-friendly three component vector.
type Vec3 [3]float32

// Vec returns v as an mgl32 vector.
func (v Vec3) Vec() mgl32.Vec3 { return mgl32.Vec3(v) }

// WindowConfig holds display settings.
type WindowConfig struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Fullscreen   bool   `yaml:"fullscreen"`
	VSync        bool   `yaml:"vsync"`
	CaptureMouse bool   `yaml:"capture_mouse"`
}

// CameraConfig holds the initial camera and fly-controller settings.
// A nil Target starts the camera from Yaw and Pitch instead.
type CameraConfig struct {
	Position    Vec3    `yaml:"position"`
	Target      *Vec3   `yaml:"target"`
	Yaw         float32 `yaml:"yaw"`
	Pitch       float32 `yaml:"pitch"`
	Zoom        float32 `yaml:"zoom"`
	Speed       float32 `yaml:"speed"`
	Sensitivity float32 `yaml:"sensitivity"`
}

// RenderConfig holds pipeline and loop settings.
type RenderConfig struct {
	ClearColor    [4]float32 `yaml:"clear_color"`
	CullFace      bool       `yaml:"cull_face"`
	ShaderDir     string     `yaml:"shader_dir"` // empty uses the embedded shaders
	ScreenshotDir string     `yaml:"screenshot_dir"`
	Headless      bool       `yaml:"headless"`
	MaxFrames     int        `yaml:"max_frames"` // 0 runs until closed
}

// SceneConfig holds scene content.
type SceneConfig struct {
	ModelPath string        `yaml:"model_path"`
	Lights    []LightConfig `yaml:"lights"`
}

// ControlsConfig maps actions to SDL key names.
type ControlsConfig struct {
	Forward    string `yaml:"forward"`
	Backward   string `yaml:"backward"`
	Left       string `yaml:"left"`
	Right      string `yaml:"right"`
	Up         string `yaml:"up"`
	Down       string `yaml:"down"`
	Quit       string `yaml:"quit"`
	Screenshot string `yaml:"screenshot"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:        "glint",
			Width:        1280,
			Height:       720,
			Fullscreen:   false,
			VSync:        true,
			CaptureMouse: true,
		},
		Camera: CameraConfig{
			Position:    Vec3{0, 2, 5},
			Target:      &Vec3{0, 0, 0},
			Yaw:         -90,
			Zoom:        camera.DefaultZoom,
			Speed:       6,
			Sensitivity: 0.2,
		},
		Render: RenderConfig{
			ClearColor:    [4]float32{0.1, 0.1, 0.1, 1},
			CullFace:      true,
			ScreenshotDir: "screenshots",
		},
		Scene: SceneConfig{
			ModelPath: "assets/cube.obj",
			Lights: []LightConfig{
				{
					Kind:      KindDirectional,
					Direction: Vec3{-0.2, -1, -0.3},
					Ambient:   Vec3{0.2, 0.2, 0.2},
					Diffuse:   Vec3{0.5, 0.5, 0.5},
					Specular:  Vec3{1, 1, 1},
				},
				{
					Kind:        KindPoint,
					Position:    Vec3{1, 1, 1},
					Ambient:     Vec3{0.1, 0.1, 0.1},
					Diffuse:     Vec3{0.8, 0.8, 0.8},
					Specular:    Vec3{1, 1, 1},
					Attenuation: &AttenuationConfig{Constant: 1, Linear: 0.09, Quadratic: 0.032},
				},
			},
		},
		Controls: ControlsConfig{
			Forward:    "W",
			Backward:   "S",
			Left:       "A",
			Right:      "D",
			Up:         "Space",
			Down:       "Left Shift",
			Quit:       "Escape",
			Screenshot: "F12",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// CameraOptions converts the camera section into constructor options.
func (c CameraConfig) CameraOptions() []camera.Option {
	opts := []camera.Option{
		camera.WithPosition(c.Position.Vec()),
		camera.WithAngles(c.Yaw, c.Pitch),
	}
	if c.Zoom > 0 {
		opts = append(opts, camera.WithZoom(c.Zoom))
	}
	if c.Target != nil {
		opts = append(opts, camera.WithTarget(c.Target.Vec()))
	} else {
		opts = append(opts, camera.WithoutTarget())
	}
	return opts
}

// Bindings returns the key name bound to each action. Empty names are
// left out.
func (c ControlsConfig) Bindings() map[game.Action]string {
	all := map[game.Action]string{
		game.MoveForward:  c.Forward,
		game.MoveBackward: c.Backward,
		game.MoveLeft:     c.Left,
		game.MoveRight:    c.Right,
		game.MoveUp:       c.Up,
		game.MoveDown:     c.Down,
		game.Quit:         c.Quit,
		game.Screenshot:   c.Screenshot,
	}
	for a, name := range all {
		if name == "" {
			delete(all, a)
		}
	}
	return all
}
