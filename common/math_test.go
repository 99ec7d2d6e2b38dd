package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 0.5, 0, 1, 0.5},
		{"below", -3, -1, 1, -1},
		{"above", 7, -1, 1, 1},
		{"edge", 1, -1, 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Clamp(c.v, c.lo, c.hi))
		})
	}
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 2.0, Lerp(2, 6, 0))
	assert.Equal(t, 6.0, Lerp(2, 6, 1))
	assert.Equal(t, 5.0, Lerp(2, 6, 0.75))
}

func TestWithPlanarKeepsVerticalBits(t *testing.T) {
	v := mgl64.Vec3{3, -0.1 + 0.2, 4}
	out := WithPlanar(v, mgl64.Vec3{1, 99, 2})
	assert.Equal(t, math.Float64bits(v[1]), math.Float64bits(out[1]))
	assert.Equal(t, 1.0, out[0])
	assert.Equal(t, 2.0, out[2])
}

func TestDecayBlend(t *testing.T) {
	assert.Zero(t, DecayBlend(0, 0.02))
	assert.Zero(t, DecayBlend(10, 0))
	b := DecayBlend(10, 0.02)
	assert.InDelta(t, 1-math.Exp(-0.2), b, 1e-12)
	assert.Less(t, DecayBlend(1e6, 1), 1.0+1e-12)
}
