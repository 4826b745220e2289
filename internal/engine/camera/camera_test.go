package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/glint/pkg/math"
)

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "want %v, got %v", want, got)
	}
}

func assertMat(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "element %d: want %v, got %v", i, want, got)
	}
}

func TestDefaultLooksAtOrigin(t *testing.T) {
	c := New()
	assertVec(t, mgl32.Vec3{0, 0, -1}, c.Front())
	assertVec(t, mgl32.Vec3{1, 0, 0}, c.Right())
	assertVec(t, mgl32.Vec3{0, 1, 0}, c.Up())
	assert.InDelta(t, -90, c.Yaw(), 1e-4)
	assert.InDelta(t, 0, c.Pitch(), 1e-4)
	assert.Equal(t, float32(45), c.Zoom())
}

func TestTargetDerivesAngles(t *testing.T) {
	c := New(WithPosition(mgl32.Vec3{0, 2, 5}), WithTarget(mgl32.Vec3{}))
	want := mgl32.Vec3{0, -2, -5}.Normalize()
	assertVec(t, want, c.Front())

	// straight up is clamped so the basis stays defined
	c = New(WithPosition(mgl32.Vec3{}), WithTarget(mgl32.Vec3{0, 10, 0}))
	assert.Equal(t, float32(89), c.Pitch())
	assert.True(t, math.IsOrthonormal(c.Front(), c.Right(), c.Up(), 1e-4))
}

func TestDegenerateTargetUsesAngles(t *testing.T) {
	p := mgl32.Vec3{1, 1, 1}
	c := New(WithPosition(p), WithTarget(p), WithAngles(0, 30))
	assert.Equal(t, float32(0), c.Yaw())
	assert.Equal(t, float32(30), c.Pitch())

	c = New(WithoutTarget(), WithAngles(180, 0))
	assertVec(t, mgl32.Vec3{-1, 0, 0}, c.Front())
}

func TestBasisStaysOrthonormal(t *testing.T) {
	for yaw := float32(-360); yaw <= 360; yaw += 37 {
		for pitch := float32(-89); pitch <= 89; pitch += 11 {
			c := New(WithoutTarget(), WithAngles(yaw, pitch))
			assert.True(t, math.IsOrthonormal(c.Front(), c.Right(), c.Up(), 1e-4), "yaw=%v pitch=%v", yaw, pitch)
			// right-handed: right x up = -front
			assertVec(t, c.Front().Mul(-1), c.Right().Cross(c.Up()))
		}
	}
}

func TestRotateClampsPitch(t *testing.T) {
	c := New()
	c.Rotate(0, 120, true)
	assert.Equal(t, float32(89), c.Pitch())
	c.Rotate(0, -300, true)
	assert.Equal(t, float32(-89), c.Pitch())

	c.Rotate(720, 0, true)
	assert.InDelta(t, 630, c.Yaw(), 1e-3)

	c = New()
	c.Rotate(0, 95, false)
	assert.Equal(t, float32(95), c.Pitch())
}

func TestSetZoomClamps(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0.5, 1},
		{90, 45},
		{20, 20},
		{1, 1},
		{45, 45},
	}
	c := New()
	for _, tt := range tests {
		c.SetZoom(tt.in)
		assert.Equal(t, tt.want, c.Zoom(), "SetZoom(%v)", tt.in)
	}
	assert.Equal(t, float32(1), New(WithZoom(-3)).Zoom())
}

func TestMove(t *testing.T) {
	tests := []struct {
		dir  Direction
		want mgl32.Vec3
	}{
		{Forward, mgl32.Vec3{0, 0, 1}},
		{Backward, mgl32.Vec3{0, 0, 5}},
		{Left, mgl32.Vec3{-2, 0, 3}},
		{Right, mgl32.Vec3{2, 0, 3}},
		{Up, mgl32.Vec3{0, 2, 3}},
		{Down, mgl32.Vec3{0, -2, 3}},
		{Direction(42), mgl32.Vec3{0, 0, 3}},
	}
	for _, tt := range tests {
		c := New()
		c.Move(tt.dir, 2)
		assertVec(t, tt.want, c.Position())
		// moving never changes orientation
		assertVec(t, mgl32.Vec3{0, 0, -1}, c.Front())
	}
}

func TestMatrices(t *testing.T) {
	c := New()
	view := c.ViewMatrix()
	// the origin lies 3 units in front of the eye
	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -3, p.Z(), 1e-5)

	proj := c.ProjectionMatrix(4.0 / 3.0)
	want := mgl32.Perspective(mgl32.DegToRad(45), 4.0/3.0, Near, Far)
	assertMat(t, want, proj)

	c.SetPosition(mgl32.Vec3{1, 2, 3})
	assertVec(t, mgl32.Vec3{1, 2, 3}, c.Position())
	assertVec(t, mgl32.Vec3{0, 0, -1}, c.Front())
}
