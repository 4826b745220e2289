// Package camera provides the first-person camera.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glint/pkg/math"
)

// Clip planes of the perspective projection.
const (
	Near = 0.1
	Far  = 100.0
)

// Zoom limits, in degrees of vertical field of view.
const (
	MinZoom     = 1.0
	MaxZoom     = 45.0
	DefaultZoom = 45.0
)

// Direction is a camera-relative movement direction.
type Direction uint8

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

// Camera is a yaw/pitch camera. Front, right and up are recomputed from
// the angles whenever they change and always form a right-handed
// orthonormal basis.
type Camera struct {
	position mgl32.Vec3
	worldUp  mgl32.Vec3
	yaw      float32 // degrees
	pitch    float32 // degrees
	zoom     float32 // degrees

	front mgl32.Vec3
	right mgl32.Vec3
	up    mgl32.Vec3
}

type settings struct {
	position mgl32.Vec3
	target   *mgl32.Vec3
	worldUp  mgl32.Vec3
	yaw      float32
	pitch    float32
	zoom     float32
}

// Option configures New.
type Option func(*settings)

// WithPosition sets the eye position.
func WithPosition(p mgl32.Vec3) Option {
	return func(s *settings) { s.position = p }
}

// WithTarget derives yaw and pitch so the camera looks at target.
func WithTarget(target mgl32.Vec3) Option {
	return func(s *settings) { s.target = &target }
}

// WithoutTarget keeps the explicit angles.
func WithoutTarget() Option {
	return func(s *settings) { s.target = nil }
}

// WithAngles sets yaw and pitch in degrees. They are used when no target
// is set or the target coincides with the position.
func WithAngles(yaw, pitch float32) Option {
	return func(s *settings) { s.yaw, s.pitch = yaw, pitch }
}

// WithWorldUp sets the fixed world up vector.
func WithWorldUp(up mgl32.Vec3) Option {
	return func(s *settings) { s.worldUp = up }
}

// WithZoom sets the field of view in degrees, clamped like SetZoom.
func WithZoom(zoom float32) Option {
	return func(s *settings) { s.zoom = zoom }
}

// New creates a camera at (0,0,3) looking at the origin unless options
// say otherwise.
func New(opts ...Option) *Camera {
	origin := mgl32.Vec3{}
	s := settings{
		position: mgl32.Vec3{0, 0, 3},
		target:   &origin,
		worldUp:  mgl32.Vec3{0, 1, 0},
		yaw:      -90,
		pitch:    0,
		zoom:     DefaultZoom,
	}
	for _, opt := range opts {
		opt(&s)
	}

	c := &Camera{
		position: s.position,
		worldUp:  s.worldUp.Normalize(),
		yaw:      s.yaw,
		pitch:    s.pitch,
	}
	c.SetZoom(s.zoom)
	if s.target != nil {
		if yaw, pitch, ok := math.YawPitch(s.target.Sub(s.position)); ok {
			c.yaw = yaw
			c.pitch = math.Clamp(pitch, -math.PitchLimit, math.PitchLimit)
		}
	}
	c.updateVectors()
	return c
}

func (c *Camera) updateVectors() {
	c.front, c.right, c.up = math.Basis(c.yaw, c.pitch, c.worldUp)
}

// Move translates the camera along its own axes. Unknown directions are
// ignored.
func (c *Camera) Move(dir Direction, amount float32) {
	switch dir {
	case Forward:
		c.position = c.position.Add(c.front.Mul(amount))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(amount))
	case Left:
		c.position = c.position.Sub(c.right.Mul(amount))
	case Right:
		c.position = c.position.Add(c.right.Mul(amount))
	case Up:
		c.position = c.position.Add(c.up.Mul(amount))
	case Down:
		c.position = c.position.Sub(c.up.Mul(amount))
	}
}

// Rotate adds yaw and pitch offsets in degrees. With constrainPitch the
// pitch is clamped to ±89°.
func (c *Camera) Rotate(yawOffset, pitchOffset float32, constrainPitch bool) {
	c.yaw += yawOffset
	c.pitch += pitchOffset
	if constrainPitch {
		c.pitch = math.Clamp(c.pitch, -math.PitchLimit, math.PitchLimit)
	}
	c.updateVectors()
}

// SetZoom sets the field of view, clamped to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.zoom = math.Clamp(zoom, MinZoom, MaxZoom)
}

// SetPosition moves the eye without changing the angles.
func (c *Camera) SetPosition(p mgl32.Vec3) {
	c.position = p
	c.updateVectors()
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// ProjectionMatrix returns the perspective projection for aspect
// (width / height).
func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(math.Radians(c.zoom), aspect, Near, Far)
}

// Position returns the eye position in world space.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// Front returns the unit view direction.
func (c *Camera) Front() mgl32.Vec3 { return c.front }

// Right returns the unit right vector, front x worldUp.
func (c *Camera) Right() mgl32.Vec3 { return c.right }

// Up returns the camera's local unit up vector, right x front.
func (c *Camera) Up() mgl32.Vec3 { return c.up }

// WorldUp returns the fixed up reference used to derive Right.
func (c *Camera) WorldUp() mgl32.Vec3 { return c.worldUp }

// Yaw returns the heading in degrees.
func (c *Camera) Yaw() float32 { return c.yaw }

// Pitch returns the elevation in degrees, clamped to [-89, 89] when
// constrained.
func (c *Camera) Pitch() float32 { return c.pitch }

// Zoom returns the vertical field of view in degrees.
func (c *Camera) Zoom() float32 { return c.zoom }
