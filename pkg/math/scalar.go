package math

import "github.com/chewxy/math32"

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * 180 / math32.Pi
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApproxEqual reports whether a and b differ by at most eps.
func ApproxEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}
