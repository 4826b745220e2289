// Package main is the entry point for the glint scene viewer.
package main

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/glint/internal/config"
	"github.com/Faultbox/glint/internal/demo"
	"github.com/Faultbox/glint/internal/engine/capture"
	"github.com/Faultbox/glint/internal/engine/input"
	"github.com/Faultbox/glint/internal/engine/renderer"
	"github.com/Faultbox/glint/internal/engine/shader"
	"github.com/Faultbox/glint/internal/engine/window"
	"github.com/Faultbox/glint/internal/game"
	"github.com/Faultbox/glint/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== glint ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	if cfg.Render.Headless {
		return runHeadless(cfg)
	}

	win, err := window.New(window.Config{
		Title:        cfg.Window.Title,
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Fullscreen:   cfg.Window.Fullscreen,
		VSync:        cfg.Window.VSync,
		CaptureMouse: cfg.Window.CaptureMouse,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	width, height := win.DrawableSize()
	rend, err := renderer.New(renderer.Config{
		Width:    width,
		Height:   height,
		CullFace: cfg.Render.CullFace,
	})
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer func() {
		if err := rend.Close(); err != nil {
			logger.Warn("renderer teardown", zap.Error(err))
		}
	}()

	vs, fs, err := shader.Sources(cfg.Render.ShaderDir)
	if err != nil {
		return err
	}
	prog, err := rend.NewProgram(vs, fs)
	if err != nil {
		return fmt.Errorf("compiling shaders: %w", err)
	}

	bindings, err := input.ParseBindings(cfg.Controls.Bindings())
	if err != nil {
		return fmt.Errorf("controls: %w", err)
	}

	built, err := demo.Build(rend, cfg)
	if err != nil {
		return err
	}

	opts := append(options(cfg, built), game.WithAfterRender(screenshotHook(rend, cfg.Render.ScreenshotDir)))
	g := game.New(win, input.New(bindings), rend, prog, built.Scene, opts...)
	return g.Run()
}

// runHeadless drives the same scene through recording devices, which is
// useful for smoke-testing configs and models without a display.
func runHeadless(cfg *config.Config) error {
	rend := game.NewRecordingRenderer()
	prog := shader.NewRecorder()
	built, err := demo.Build(rend, cfg)
	if err != nil {
		return err
	}

	frames := cfg.Render.MaxFrames
	if frames == 0 {
		frames = 1
	}
	win := &game.HeadlessWindow{Width: cfg.Window.Width, Height: cfg.Window.Height}
	g := game.New(win, game.IdleInput{}, rend, prog, built.Scene, append(options(cfg, built), game.WithFrameLimit(frames))...)
	if err := g.Run(); err != nil {
		return err
	}

	logger.Info("headless run finished",
		zap.Int("frames", g.Frames()),
		zap.Int("draws_last_frame", len(rend.Draws)),
		zap.Int("meshes", len(rend.Meshes)),
		zap.Int("textures", len(rend.Textures)),
		zap.Int("uniform_writes", len(prog.Writes)),
	)
	return nil
}

// screenshotHook saves the drawn frame once per press of the screenshot key.
func screenshotHook(src capture.PixelSource, dir string) game.Hook {
	shots := capture.New(dir, "glint")
	held := false
	return func(g *game.Game) {
		down := g.Input().Pressed(game.Screenshot)
		if down && !held {
			path, err := shots.Frame(src)
			if err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			} else {
				logger.Info("screenshot saved", zap.String("path", path))
			}
		}
		held = down
	}
}

func options(cfg *config.Config, built *demo.Built) []game.Option {
	return []game.Option{
		game.WithClearColor(mgl32.Vec4(cfg.Render.ClearColor)),
		game.WithBehaviors(built.Behaviors...),
		game.WithFrameLimit(cfg.Render.MaxFrames),
	}
}
