package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world vertical axis. Hover and gravity own it; locomotion owns
// the plane orthogonal to it.
var Up = mgl64.Vec3{0, 1, 0}

// Down is the probe direction.
var Down = mgl64.Vec3{0, -1, 0}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Planar returns v with its vertical component removed.
func Planar(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

// WithPlanar replaces the planar components of v, keeping v[1] untouched.
func WithPlanar(v, planar mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{planar[0], v[1], planar[2]}
}

// DecayBlend is the interpolation factor of an exponential approach with the
// given rate over dt: 1 - e^(-rate*dt). Always in [0, 1).
func DecayBlend(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// NearZero reports whether every component of v is within eps of zero.
func NearZero(v mgl64.Vec2, eps float64) bool {
	return math.Abs(v[0]) <= eps && math.Abs(v[1]) <= eps
}
