package shader

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Write is a single recorded uniform write.
type Write struct {
	Name  string
	Value any
}

// Recorder is a Program that records every write instead of talking to a
// GPU. It backs headless runs and tests.
type Recorder struct {
	Writes []Write
	Uses   int

	last map[string]any
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{last: make(map[string]any)}
}

func (r *Recorder) record(name string, v any) {
	if r.last == nil {
		r.last = make(map[string]any)
	}
	r.Writes = append(r.Writes, Write{Name: name, Value: v})
	r.last[name] = v
}

// Use counts program binds.
func (r *Recorder) Use() { r.Uses++ }

// SetBool records a bool write.
func (r *Recorder) SetBool(name string, v bool) { r.record(name, v) }

// SetInt records an int write.
func (r *Recorder) SetInt(name string, v int32) { r.record(name, v) }

// SetFloat records a float write.
func (r *Recorder) SetFloat(name string, v float32) { r.record(name, v) }

// SetVec2 records a vec2 write.
func (r *Recorder) SetVec2(name string, v mgl32.Vec2) { r.record(name, v) }

// SetVec3 records a vec3 write.
func (r *Recorder) SetVec3(name string, v mgl32.Vec3) { r.record(name, v) }

// SetVec4 records a vec4 write.
func (r *Recorder) SetVec4(name string, v mgl32.Vec4) { r.record(name, v) }

// SetMat2 records a mat2 write.
func (r *Recorder) SetMat2(name string, m mgl32.Mat2) { r.record(name, m) }

// SetMat3 records a mat3 write.
func (r *Recorder) SetMat3(name string, m mgl32.Mat3) { r.record(name, m) }

// SetMat4 records a mat4 write.
func (r *Recorder) SetMat4(name string, m mgl32.Mat4) { r.record(name, m) }

// Value returns the last value written to name.
func (r *Recorder) Value(name string) (any, bool) {
	v, ok := r.last[name]
	return v, ok
}

// Count returns how many writes targeted a name starting with prefix.
func (r *Recorder) Count(prefix string) int {
	n := 0
	for _, w := range r.Writes {
		if strings.HasPrefix(w.Name, prefix) {
			n++
		}
	}
	return n
}

// Reset drops all recorded writes.
func (r *Recorder) Reset() {
	r.Writes = r.Writes[:0]
	r.Uses = 0
	r.last = make(map[string]any)
}
