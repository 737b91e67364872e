package mathutil

import (
	"math"
	"testing"
)

func near(a, b Vec3) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func TestEulerYXZ(t *testing.T) {
	tests := []struct {
		name       string
		pitch, yaw float64
		want       Vec3
	}{
		{"identity", 0, 0, Vec3{0, 0, 1}},
		{"yaw right", 0, 90, Vec3{1, 0, 0}},
		{"pitch down", 90, 0, Vec3{0, -1, 0}},
		{"pitch up", -90, 0, Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EulerYXZ(tt.pitch, tt.yaw, 0).MulVec3(Vec3{0, 0, 1})
			if !near(got, tt.want) {
				t.Errorf("forward = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMat4Rows(t *testing.T) {
	m := Mat4Identity()
	m.SetRow(2, Vec4{1, 2, 3, 4})
	if got := m.Row(2); got != (Vec4{1, 2, 3, 4}) {
		t.Fatalf("Row(2) = %v", got)
	}
	if m == Mat4Identity() {
		t.Fatal("modified matrix reported as identity")
	}
}

func TestMulDirIgnoresTranslation(t *testing.T) {
	m := FromMat3Translation(Mat3Identity(), Vec3{5, 6, 7})
	if got := m.MulDir(Vec3{1, 0, 0}); got != (Vec3{1, 0, 0}) {
		t.Errorf("MulDir = %v", got)
	}
	if got := m.MulPoint(Vec3{1, 0, 0}); got != (Vec3{6, 6, 7}) {
		t.Errorf("MulPoint = %v", got)
	}
	if got := m.MulPoint(Vec3{}); got != (Vec3{5, 6, 7}) {
		t.Errorf("origin = %v, want translation", got)
	}
}

func TestEulerYXZRightHanded(t *testing.T) {
	m := EulerYXZ(30, -45, 10)
	x, y, z := m.Column(0), m.Column(1), m.Column(2)
	if got := x.Cross(y); !near(got, z) {
		t.Errorf("x cross y = %v, want %v", got, z)
	}
	if d := x.Dot(z); math.Abs(d) > 1e-9 {
		t.Errorf("x.z = %v, want 0", d)
	}
}
