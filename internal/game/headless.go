package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glint/internal/engine/gpu"
)

// HeadlessWindow is a Window without a display. It asks to close after
// MaxFrames presented frames; zero means never.
type HeadlessWindow struct {
	Width     int
	Height    int
	MaxFrames int

	frames int
	closed bool
}

func (w *HeadlessWindow) ShouldClose() bool {
	return w.closed || (w.MaxFrames > 0 && w.frames >= w.MaxFrames)
}

func (w *HeadlessWindow) SetShouldClose(v bool) { w.closed = v }

func (w *HeadlessWindow) SwapBuffers() { w.frames++ }

// AspectRatio returns width / height, or 1 for an empty surface.
func (w *HeadlessWindow) AspectRatio() float32 {
	if w.Width <= 0 || w.Height <= 0 {
		return 1
	}
	return float32(w.Width) / float32(w.Height)
}

// Frames returns the number of presented frames.
func (w *HeadlessWindow) Frames() int { return w.frames }

// IdleInput never reports events, keys or motion.
type IdleInput struct{}

func (IdleInput) Poll() []Event                  { return nil }
func (IdleInput) Pressed(Action) bool            { return false }
func (IdleInput) MouseDelta() (float32, float32) { return 0, 0 }
func (IdleInput) ScrollDelta() float32           { return 0 }

// RecordingRenderer is a Renderer backed by a gpu.Recorder. Draws are kept
// for the current frame only.
type RecordingRenderer struct {
	*gpu.Recorder

	Frames     int
	ClearColor mgl32.Vec4
	Width      int
	Height     int
}

// NewRecordingRenderer creates a renderer with an empty recorder.
func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{Recorder: gpu.NewRecorder()}
}

// Begin starts a frame, dropping the previous frame's draws.
func (r *RecordingRenderer) Begin(clear mgl32.Vec4) {
	r.Recorder.Reset()
	r.ClearColor = clear
	r.Frames++
}

// Resize records the new drawable size.
func (r *RecordingRenderer) Resize(width, height int) {
	r.Width, r.Height = width, height
}
