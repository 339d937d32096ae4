package vgsurface

import (
	"math"

	"github.com/susji/lilchart/chart"
)

// affine is the 2x3 matrix
//
//	| a c e |
//	| b d f |
//
// applied to chart points before the y flip.
type affine struct {
	a, b, c, d, e, f float64
}

var identity = affine{a: 1, d: 1}

func translation(dx, dy float64) affine {
	return affine{a: 1, d: 1, e: dx, f: dy}
}

func rotation(degrees float64) affine {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return affine{a: cos, b: sin, c: -sin, d: cos}
}

// mul returns m followed by n in local coordinates, so that n is applied
// to points first.
func (m affine) mul(n affine) affine {
	return affine{
		a: m.a*n.a + m.c*n.b,
		b: m.b*n.a + m.d*n.b,
		c: m.a*n.c + m.c*n.d,
		d: m.b*n.c + m.d*n.d,
		e: m.a*n.e + m.c*n.f + m.e,
		f: m.b*n.e + m.d*n.f + m.f,
	}
}

func (m affine) apply(p chart.Point) chart.Point {
	return chart.Point{
		X: m.a*p.X + m.c*p.Y + m.e,
		Y: m.b*p.X + m.d*p.Y + m.f,
	}
}

// angle is the rotation of m in radians, clockwise on a y-down surface.
func (m affine) angle() float64 {
	return math.Atan2(m.b, m.a)
}
