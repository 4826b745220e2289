package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// near compares per component with an absolute tolerance.
func near(a, b mgl32.Vec3, eps float32) bool {
	for i := range a {
		if !ApproxEqual(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

func TestFrontDefaultYaw(t *testing.T) {
	f := Front(-90, 0)
	want := mgl32.Vec3{0, 0, -1}
	if !near(f, want, 1e-6) {
		t.Errorf("Front(-90, 0) = %v, want %v", f, want)
	}

	f = Front(0, 0)
	want = mgl32.Vec3{1, 0, 0}
	if !near(f, want, 1e-6) {
		t.Errorf("Front(0, 0) = %v, want %v", f, want)
	}
}

func TestBasisOrthonormal(t *testing.T) {
	for yaw := float32(-720); yaw <= 720; yaw += 37.5 {
		for pitch := float32(-88.5); pitch <= 88.5; pitch += 7.375 {
			front, right, up := Basis(yaw, pitch, worldUp)
			if !IsOrthonormal(front, right, up, 1e-4) {
				t.Fatalf("basis not orthonormal at yaw=%v pitch=%v: %v %v %v", yaw, pitch, front, right, up)
			}
			// right-handed: right x up == -front for a camera looking down front
			if !near(right.Cross(up), front.Mul(-1), 1e-4) {
				t.Fatalf("basis not right-handed at yaw=%v pitch=%v", yaw, pitch)
			}
		}
	}
}

func TestBasisDefault(t *testing.T) {
	front, right, up := Basis(-90, 0, worldUp)
	tests := []struct {
		name string
		got  mgl32.Vec3
		want mgl32.Vec3
	}{
		{"front", front, mgl32.Vec3{0, 0, -1}},
		{"right", right, mgl32.Vec3{1, 0, 0}},
		{"up", up, mgl32.Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		if !near(tt.got, tt.want, 1e-6) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestYawPitch(t *testing.T) {
	tests := []struct {
		name      string
		dir       mgl32.Vec3
		yaw       float32
		pitch     float32
		shouldErr bool
	}{
		{"toward -z", mgl32.Vec3{0, 0, -3}, -90, 0, false},
		{"toward +x", mgl32.Vec3{2, 0, 0}, 0, 0, false},
		{"up 45", mgl32.Vec3{1, 1, 0}, 0, 45, false},
		{"zero", mgl32.Vec3{}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yaw, pitch, ok := YawPitch(tt.dir)
			if ok == tt.shouldErr {
				t.Fatalf("ok = %v, want %v", ok, !tt.shouldErr)
			}
			if !ok {
				return
			}
			if !ApproxEqual(yaw, tt.yaw, 1e-4) || !ApproxEqual(pitch, tt.pitch, 1e-4) {
				t.Errorf("YawPitch(%v) = (%v, %v), want (%v, %v)", tt.dir, yaw, pitch, tt.yaw, tt.pitch)
			}
		})
	}
}

func TestYawPitchRoundTrip(t *testing.T) {
	dir := mgl32.Vec3{0.3, -0.4, 0.8}.Normalize()
	yaw, pitch, ok := YawPitch(dir)
	if !ok {
		t.Fatal("YawPitch returned !ok")
	}
	if got := Front(yaw, pitch); !near(got, dir, 1e-5) {
		t.Errorf("Front(YawPitch(d)) = %v, want %v", got, dir)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(120, -89, 89); got != 89 {
		t.Errorf("Clamp(120) = %v, want 89", got)
	}
	if got := Clamp(-1e9, -89, 89); got != -89 {
		t.Errorf("Clamp(-1e9) = %v, want -89", got)
	}
	if got := Clamp(12.5, -89, 89); got != 12.5 {
		t.Errorf("Clamp(12.5) = %v, want 12.5", got)
	}
}

func TestRadiansDegrees(t *testing.T) {
	if got := Degrees(Radians(90)); !ApproxEqual(got, 90, 1e-4) {
		t.Errorf("Degrees(Radians(90)) = %v", got)
	}
}
