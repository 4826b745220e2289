// Package game implements the frame loop that drives a scene: poll input,
// advance behaviors by the elapsed time, render and present.
package game

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/glint/internal/engine/gpu"
	"github.com/Faultbox/glint/internal/engine/scene"
	"github.com/Faultbox/glint/internal/engine/shader"
	"github.com/Faultbox/glint/internal/logger"
)

// Action is an input binding the loop and its behaviors react to.
type Action uint8

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	Quit
	Screenshot
)

// EventType identifies a platform event.
type EventType uint8

const (
	EventQuit EventType = iota + 1
	EventResize
)

// Event is a platform event reported by Input.Poll.
type Event struct {
	Type   EventType
	Width  int
	Height int
}

// Window is the presentation surface.
type Window interface {
	ShouldClose() bool
	SetShouldClose(bool)
	SwapBuffers()
	AspectRatio() float32
}

// Input reports the state gathered by the latest Poll.
type Input interface {
	Poll() []Event
	Pressed(a Action) bool
	// MouseDelta returns the motion since the previous poll, y up.
	MouseDelta() (dx, dy float32)
	ScrollDelta() float32
}

// Renderer is the device the scene draws through plus per-frame state.
type Renderer interface {
	gpu.Device
	Begin(clear mgl32.Vec4)
	Resize(width, height int)
}

// Behavior advances per-frame logic by dt seconds.
type Behavior interface {
	Update(g *Game, dt float32)
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(g *Game, dt float32)

// Update calls f.
func (f BehaviorFunc) Update(g *Game, dt float32) { f(g, dt) }

// DefaultClearColor is the background of every frame.
var DefaultClearColor = mgl32.Vec4{0.1, 0.1, 0.1, 1}

// Option configures a Game.
type Option func(*Game)

// WithClock replaces time.Now for delta time computation.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithClearColor sets the background color.
func WithClearColor(c mgl32.Vec4) Option {
	return func(g *Game) { g.clear = c }
}

// Hook runs once per frame.
type Hook func(g *Game)

// WithAfterRender adds hooks that run after the scene is drawn and before
// the frame is presented, while the back buffer still holds it.
func WithAfterRender(h ...Hook) Option {
	return func(g *Game) { g.afterRender = append(g.afterRender, h...) }
}

// WithFrameLimit stops the loop after n presented frames. Zero means no
// limit.
func WithFrameLimit(n int) Option {
	return func(g *Game) { g.maxFrames = n }
}

// WithBehaviors appends behaviors in update order.
func WithBehaviors(b ...Behavior) Option {
	return func(g *Game) { g.behaviors = append(g.behaviors, b...) }
}

// Game is the frame loop. It runs on the thread that owns the graphics
// context.
type Game struct {
	window    Window
	input     Input
	renderer  Renderer
	program   shader.Program
	scene     *scene.Scene
	behaviors []Behavior

	afterRender []Hook

	now       func() time.Time
	clear     mgl32.Vec4
	running   bool
	frames    int
	maxFrames int
	log       *zap.Logger
}

// New creates a game around already initialized platform pieces.
func New(win Window, in Input, r Renderer, prog shader.Program, sc *scene.Scene, opts ...Option) *Game {
	g := &Game{
		window:   win,
		input:    in,
		renderer: r,
		program:  prog,
		scene:    sc,
		now:      time.Now,
		clear:    DefaultClearColor,
		log:      logger.Named("game"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddBehavior appends a behavior after the existing ones.
func (g *Game) AddBehavior(b Behavior) {
	g.behaviors = append(g.behaviors, b)
}

// Run loops until Stop is called, the window wants to close or a frame
// fails to render.
func (g *Game) Run() error {
	g.running = true
	lastTime := g.now()
	fpsTimer := lastTime
	fpsFrames := 0

	g.log.Info("starting game loop", zap.Int("behaviors", len(g.behaviors)))

	for g.running && !g.window.ShouldClose() {
		// 1. Process input
		g.handleEvents(g.input.Poll())

		// 2. Delta time
		now := g.now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 3. Update
		for _, b := range g.behaviors {
			b.Update(g, dt)
		}

		// 4. Render
		if err := g.render(); err != nil {
			g.running = false
			return fmt.Errorf("render error: %w", err)
		}

		for _, h := range g.afterRender {
			h(g)
		}

		// 5. Present
		g.window.SwapBuffers()
		g.frames++
		if g.maxFrames > 0 && g.frames >= g.maxFrames {
			g.running = false
		}

		fpsFrames++
		if elapsed := now.Sub(fpsTimer); elapsed >= time.Second {
			g.log.Debug("fps",
				zap.Float64("fps", float64(fpsFrames)/elapsed.Seconds()),
				zap.Float32("dt_ms", dt*1000))
			fpsFrames = 0
			fpsTimer = now
		}
	}

	g.running = false
	g.log.Info("game loop stopped", zap.Int("frames", g.frames))
	return nil
}

// Stop ends the loop after the current iteration.
func (g *Game) Stop() {
	g.running = false
}

func (g *Game) handleEvents(events []Event) {
	for _, ev := range events {
		switch ev.Type {
		case EventQuit:
			g.window.SetShouldClose(true)
		case EventResize:
			g.renderer.Resize(ev.Width, ev.Height)
			g.log.Debug("resized", zap.Int("width", ev.Width), zap.Int("height", ev.Height))
		}
	}
}

func (g *Game) render() error {
	g.renderer.Begin(g.clear)
	g.program.Use()
	if err := g.scene.ApplyView(g.program, g.window.AspectRatio()); err != nil {
		return err
	}
	return g.scene.Render(g.program, g.renderer)
}

// Window returns the presentation window.
func (g *Game) Window() Window { return g.window }

// Input returns the input source.
func (g *Game) Input() Input { return g.input }

// Scene returns the rendered scene.
func (g *Game) Scene() *scene.Scene { return g.scene }

// Frames returns the number of presented frames.
func (g *Game) Frames() int { return g.frames }
