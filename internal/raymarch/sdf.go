package raymarch

import (
	"math"

	"raymarch-renderer/internal/mathutil"
)

func sdSphere(p mathutil.Vec3, r float64) float64 {
	return p.Len() - r
}

// sdRoundBox is a box of half extents b with edges rounded by r.
func sdRoundBox(p, b mathutil.Vec3, r float64) float64 {
	q := p.Abs().Sub(b)
	return q.MaxScalar(0).Len() + math.Min(math.Max(q[0], math.Max(q[1], q[2])), 0) - r
}

// sdPlane is the distance to the plane dot(p, n) + h = 0 with unit n.
func sdPlane(p, n mathutil.Vec3, h float64) float64 {
	return p.Dot(n) + h
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

func opUnion(d1, d2 float64) float64 {
	return math.Min(d1, d2)
}

// opSmoothSubtract carves d1 out of d2.
func opSmoothSubtract(d1, d2, k float64) float64 {
	if k <= 0 {
		return math.Max(-d1, d2)
	}
	h := mathutil.Clamp(0.5-0.5*(d2+d1)/k, 0, 1)
	return mix(d2, -d1, h) + k*h*(1-h)
}

func opSmoothIntersect(d1, d2, k float64) float64 {
	if k <= 0 {
		return math.Max(d1, d2)
	}
	h := mathutil.Clamp(0.5-0.5*(d2-d1)/k, 0, 1)
	return mix(d2, d1, h) + k*h*(1-h)
}

// repeat folds p into the cell of size c centred on the origin, per axis.
// Axes with c <= 0 are left alone.
func repeat(p, c mathutil.Vec3) mathutil.Vec3 {
	for i := 0; i < 3; i++ {
		if c[i] > 0 {
			x := p[i] + 0.5*c[i]
			p[i] = x - c[i]*math.Floor(x/c[i]) - 0.5*c[i]
		}
	}
	return p
}
