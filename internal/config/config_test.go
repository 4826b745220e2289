package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/glint/internal/engine/lighting"
	"github.com/Faultbox/glint/internal/game"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test window defaults
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test camera defaults
	if cfg.Camera.Position != (Vec3{0, 2, 5}) {
		t.Errorf("expected camera at (0,2,5), got %v", cfg.Camera.Position)
	}
	if cfg.Camera.Target == nil || *cfg.Camera.Target != (Vec3{}) {
		t.Errorf("expected camera target at origin, got %v", cfg.Camera.Target)
	}
	if cfg.Camera.Speed != 6 {
		t.Errorf("expected speed 6, got %f", cfg.Camera.Speed)
	}

	// Test render defaults
	if cfg.Render.ClearColor != [4]float32{0.1, 0.1, 0.1, 1} {
		t.Errorf("unexpected clear color %v", cfg.Render.ClearColor)
	}
	if !cfg.Render.CullFace {
		t.Error("expected back-face culling by default")
	}

	// Test scene defaults
	if len(cfg.Scene.Lights) != 2 {
		t.Fatalf("expected 2 default lights, got %d", len(cfg.Scene.Lights))
	}
	if cfg.Scene.Lights[0].Kind != KindDirectional || cfg.Scene.Lights[1].Kind != KindPoint {
		t.Errorf("unexpected default light kinds %q, %q", cfg.Scene.Lights[0].Kind, cfg.Scene.Lights[1].Kind)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

camera:
  position: [1, 2, 3]
  target: null
  yaw: 45
  pitch: -10

render:
  clear_color: [0, 0, 0, 1]
  cull_face: false
  shader_dir: "shaders"

scene:
  model_path: "assets/teapot.obj"
  lights:
    - kind: sun
      longitude: 30
      latitude: 45
      ambient: [0.1, 0.1, 0.1]
      diffuse: [0.9, 0.9, 0.9]
      specular: [1, 1, 1]

controls:
  forward: "Up"

logging:
  level: "debug"
  log_file: "glint.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Window.Title != "glint" {
		t.Errorf("expected untouched title to keep its default, got %q", cfg.Window.Title)
	}

	if cfg.Camera.Position != (Vec3{1, 2, 3}) {
		t.Errorf("expected camera at (1,2,3), got %v", cfg.Camera.Position)
	}
	if cfg.Camera.Target != nil {
		t.Errorf("expected null target to clear the default, got %v", *cfg.Camera.Target)
	}
	if cfg.Camera.Yaw != 45 || cfg.Camera.Pitch != -10 {
		t.Errorf("expected yaw 45 pitch -10, got %f %f", cfg.Camera.Yaw, cfg.Camera.Pitch)
	}

	if cfg.Render.CullFace {
		t.Error("expected cull_face to be false")
	}
	if cfg.Render.ShaderDir != "shaders" {
		t.Errorf("expected shader dir 'shaders', got %s", cfg.Render.ShaderDir)
	}

	if cfg.Scene.ModelPath != "assets/teapot.obj" {
		t.Errorf("expected model path 'assets/teapot.obj', got %s", cfg.Scene.ModelPath)
	}
	if len(cfg.Scene.Lights) != 1 || cfg.Scene.Lights[0].Kind != KindSun {
		t.Errorf("expected the file's single sun light to replace the defaults, got %+v", cfg.Scene.Lights)
	}

	if cfg.Controls.Forward != "Up" {
		t.Errorf("expected forward key 'Up', got %s", cfg.Controls.Forward)
	}
	if cfg.Controls.Backward != "S" {
		t.Errorf("expected backward key to keep default 'S', got %s", cfg.Controls.Backward)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "glint.log" {
		t.Errorf("expected log file 'glint.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "model flag",
			setup: func() {
				*flagModel = "bunny.stl"
			},
			verify: func(cfg *Config) {
				if cfg.Scene.ModelPath != "bunny.stl" {
					t.Errorf("expected model path bunny.stl, got %s", cfg.Scene.ModelPath)
				}
			},
			teardown: func() {
				*flagModel = ""
			},
		},
		{
			name: "headless and frames flags",
			setup: func() {
				*flagHeadless = true
				*flagFrames = 10
			},
			verify: func(cfg *Config) {
				if !cfg.Render.Headless {
					t.Error("expected headless with headless flag")
				}
				if cfg.Render.MaxFrames != 10 {
					t.Errorf("expected 10 frames, got %d", cfg.Render.MaxFrames)
				}
			},
			teardown: func() {
				*flagHeadless = false
				*flagFrames = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsBadLight(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	yamlContent := `
scene:
  lights:
    - kind: laser
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	_, err := Load()
	if !errors.Is(err, ErrUnknownLightKind) {
		t.Errorf("expected ErrUnknownLightKind, got %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Title = "saved"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Window.Title != "saved" {
		t.Errorf("expected title 'saved', got %q", loaded.Window.Title)
	}
	if len(loaded.Scene.Lights) != len(cfg.Scene.Lights) {
		t.Errorf("expected %d lights, got %d", len(cfg.Scene.Lights), len(loaded.Scene.Lights))
	}
}

func TestLightConfig(t *testing.T) {
	tests := []struct {
		name    string
		in      LightConfig
		kind    lighting.Kind
		att     lighting.Attenuation
		wantErr bool
	}{
		{
			name: "directional",
			in:   LightConfig{Kind: KindDirectional, Direction: Vec3{0, -1, 0}},
			kind: lighting.Directional,
		},
		{
			name: "sun",
			in:   LightConfig{Kind: KindSun, Longitude: 0, Latitude: 90},
			kind: lighting.Directional,
		},
		{
			name: "point with explicit attenuation",
			in: LightConfig{Kind: KindPoint, Attenuation: &AttenuationConfig{
				Constant: 1, Linear: 0.5, Quadratic: 0.25,
			}},
			kind: lighting.Point,
			att:  lighting.Attenuation{Constant: 1, Linear: 0.5, Quadratic: 0.25},
		},
		{
			name: "point with range",
			in:   LightConfig{Kind: KindPoint, Range: 50},
			kind: lighting.Point,
			att:  lighting.AttenuationForRange(50),
		},
		{
			name: "point with default falloff",
			in:   LightConfig{Kind: KindPoint},
			kind: lighting.Point,
			att:  lighting.DefaultAttenuation,
		},
		{
			name: "spot",
			in:   LightConfig{Kind: KindSpot, CutOff: 12.5, OuterCutOff: 17.5},
			kind: lighting.Spot,
			att:  lighting.DefaultAttenuation,
		},
		{
			name:    "spot with inverted cutoffs",
			in:      LightConfig{Kind: KindSpot, CutOff: 20, OuterCutOff: 10},
			wantErr: true,
		},
		{
			name:    "unknown",
			in:      LightConfig{Kind: "area"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := tt.in.Light()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if l.Kind != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, l.Kind)
			}
			if tt.kind != lighting.Directional && l.Attenuation != tt.att {
				t.Errorf("expected attenuation %+v, got %+v", tt.att, l.Attenuation)
			}
		})
	}
}

func TestBuildLights(t *testing.T) {
	lights, err := Default().Scene.BuildLights()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lights) != 2 {
		t.Fatalf("expected 2 lights, got %d", len(lights))
	}
	if lights[1].Position != (Vec3{1, 1, 1}).Vec() {
		t.Errorf("expected point light at (1,1,1), got %v", lights[1].Position)
	}
}

func TestBindings(t *testing.T) {
	c := Default().Controls
	c.Up = ""

	b := c.Bindings()
	if b[game.MoveForward] != "W" {
		t.Errorf("expected forward bound to W, got %q", b[game.MoveForward])
	}
	if b[game.Quit] != "Escape" {
		t.Errorf("expected quit bound to Escape, got %q", b[game.Quit])
	}
	if _, ok := b[game.MoveUp]; ok {
		t.Error("expected empty binding to be left out")
	}
}

func TestCameraOptions(t *testing.T) {
	c := Default().Camera
	if got := len(c.CameraOptions()); got != 4 {
		t.Errorf("expected 4 options, got %d", got)
	}
	c.Target = nil
	c.Zoom = 0
	if got := len(c.CameraOptions()); got != 3 {
		t.Errorf("expected 3 options without zoom, got %d", got)
	}
}
