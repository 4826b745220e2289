// Package math provides the orientation math shared by the camera and
// the geometry builders.
package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PitchLimit is the largest pitch magnitude, in degrees, that keeps the
// camera basis well defined against a vertical world-up.
const PitchLimit = 89.0

// Front returns the unit look direction for yaw and pitch in degrees.
// Yaw 0 looks down +X, yaw -90 looks down -Z.
func Front(yaw, pitch float32) mgl32.Vec3 {
	y := Radians(yaw)
	p := Radians(pitch)
	front := mgl32.Vec3{
		math32.Cos(y) * math32.Cos(p),
		math32.Sin(p),
		math32.Sin(y) * math32.Cos(p),
	}
	return front.Normalize()
}

// Basis derives the camera basis from yaw and pitch in degrees.
// right = normalize(front x worldUp), up = normalize(right x front).
func Basis(yaw, pitch float32, worldUp mgl32.Vec3) (front, right, up mgl32.Vec3) {
	front = Front(yaw, pitch)
	right = front.Cross(worldUp).Normalize()
	up = right.Cross(front).Normalize()
	return front, right, up
}

// YawPitch back-derives yaw and pitch, in degrees, from a direction.
// ok is false when dir has zero length.
func YawPitch(dir mgl32.Vec3) (yaw, pitch float32, ok bool) {
	l := dir.Len()
	if l == 0 || math32.IsNaN(l) {
		return 0, 0, false
	}
	d := dir.Mul(1 / l)
	yaw = Degrees(math32.Atan2(d[2], d[0]))
	pitch = Degrees(math32.Asin(Clamp(d[1], -1, 1)))
	return yaw, pitch, true
}

// IsOrthonormal reports whether a, b and c are pairwise orthogonal unit
// vectors within eps.
func IsOrthonormal(a, b, c mgl32.Vec3, eps float32) bool {
	for _, v := range []mgl32.Vec3{a, b, c} {
		if !ApproxEqual(v.Len(), 1, eps) {
			return false
		}
	}
	return ApproxEqual(a.Dot(b), 0, eps) &&
		ApproxEqual(b.Dot(c), 0, eps) &&
		ApproxEqual(a.Dot(c), 0, eps)
}
