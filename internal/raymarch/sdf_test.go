package raymarch

import (
	"math"
	"testing"

	"raymarch-renderer/internal/mathutil"
)

func TestPrimitives(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"sphere outside", sdSphere(mathutil.Vec3{3, 0, 0}, 1), 2},
		{"sphere inside", sdSphere(mathutil.Vec3{0, 0, 0}, 1), -1},
		{"box face", sdRoundBox(mathutil.Vec3{2, 0, 0}, mathutil.Vec3{1, 1, 1}, 0), 1},
		{"box rounded face", sdRoundBox(mathutil.Vec3{2, 0, 0}, mathutil.Vec3{1, 1, 1}, 0.25), 0.75},
		{"box corner", sdRoundBox(mathutil.Vec3{2, 2, 1}, mathutil.Vec3{1, 1, 1}, 0), math.Sqrt2},
		{"box inside", sdRoundBox(mathutil.Vec3{0.5, 0, 0}, mathutil.Vec3{1, 1, 1}, 0), -0.5},
		{"plane", sdPlane(mathutil.Vec3{0, 2, 5}, mathutil.Vec3{0, 1, 0}, 0), 2},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-12 {
			t.Errorf("%s = %g, want %g", tt.name, tt.got, tt.want)
		}
	}
}

func TestSmoothOpsReduceToHardOps(t *testing.T) {
	pairs := [][2]float64{{1, 2}, {-1, 0.5}, {3, -4}}
	for _, p := range pairs {
		if got := opSmoothSubtract(p[0], p[1], 0); got != math.Max(-p[0], p[1]) {
			t.Errorf("subtract %v = %g", p, got)
		}
		if got := opSmoothIntersect(p[0], p[1], 0); got != math.Max(p[0], p[1]) {
			t.Errorf("intersect %v = %g", p, got)
		}
	}
	// far apart, the smooth ops agree with the hard ones
	if got := opSmoothIntersect(10, -10, 0.5); math.Abs(got-10) > 1e-12 {
		t.Errorf("smooth intersect = %g", got)
	}
	if got := opSmoothSubtract(-10, 3, 0.5); math.Abs(got-10) > 1e-12 {
		t.Errorf("smooth subtract = %g", got)
	}
}

func TestRepeat(t *testing.T) {
	c := mathutil.Vec3{4, 0, 2}
	got := repeat(mathutil.Vec3{5, 7, -3}, c)
	want := mathutil.Vec3{1, 7, -1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("repeat = %v, want %v", got, want)
		}
	}
}
