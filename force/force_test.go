package force

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var down = mgl64.Vec3{0, -1, 0}

func TestSpringForcePositiveAndMonotonicInStrength(t *testing.T) {
	displacements := []float64{0.01, 0.5, 3, 40}
	strengths := []float64{0, 1, 10, 50, 200}
	for _, d := range displacements {
		prev := -1.0
		for _, k := range strengths {
			f := SpringForce(2+d, 2, mgl64.Vec3{}, mgl64.Vec3{}, down, k, 10)
			if k > 0 {
				assert.Greater(t, f, 0.0, "displacement %v strength %v", d, k)
			}
			assert.Greater(t, f, prev, "displacement %v strength %v", d, k)
			prev = f
		}
	}
}

func TestSpringForceAtRideHeightIsDamperTerm(t *testing.T) {
	cases := []struct {
		name    string
		self    mgl64.Vec3
		surface mgl64.Vec3
		want    float64
	}{
		{"matched_velocities", mgl64.Vec3{0, -3, 0}, mgl64.Vec3{0, -3, 0}, 0},
		{"at_rest", mgl64.Vec3{}, mgl64.Vec3{}, 0},
		// falling at 2 m/s onto a static surface: closing speed 2, force -2*damper
		{"closing", mgl64.Vec3{0, -2, 0}, mgl64.Vec3{}, -20},
		{"separating", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{}, 10},
		{"planar_ignored", mgl64.Vec3{5, 0, -7}, mgl64.Vec3{}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SpringForce(2, 2, c.self, c.surface, down, 50, 10)
			assert.InDelta(t, c.want, got, 1e-12)
		})
	}
}

func TestSpringForceUnclamped(t *testing.T) {
	f := SpringForce(0, 1e6, mgl64.Vec3{}, mgl64.Vec3{}, down, 1e3, 0)
	assert.Equal(t, -1e9, f)
}

func TestPIDRejectsNonPositiveDeltaTime(t *testing.T) {
	for _, dt := range []float64{0, -0.016} {
		p := NewPID(DefaultPIDConfig())
		_, err := p.Output(dt, 1, 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
		assert.Equal(t, PIDState{}, p.State(), "state must be untouched")
	}
}

func TestPIDIntegralBounded(t *testing.T) {
	cfg := PIDConfig{Kp: 1, Ki: 5, Kd: 1, IntegralSaturation: 0.75, OutputMin: -1, OutputMax: 1, Power: 3}
	for _, target := range []float64{1e6, -1e6} {
		p := NewPID(cfg)
		for i := 0; i < 10000; i++ {
			out, err := p.Output(0.02, target, 0)
			require.NoError(t, err)
			st := p.State()
			require.LessOrEqual(t, st.Integral, cfg.IntegralSaturation)
			require.GreaterOrEqual(t, st.Integral, -cfg.IntegralSaturation)
			require.LessOrEqual(t, out, cfg.OutputMax*cfg.Power)
			require.GreaterOrEqual(t, out, cfg.OutputMin*cfg.Power)
		}
	}
}

func TestPIDOutputBounded(t *testing.T) {
	cfg := PIDConfig{Kp: 10, Ki: 10, Kd: 10, IntegralSaturation: 10, Derivative: DerivativeErrorRate, OutputMin: -0.5, OutputMax: 2, Power: 4}
	p := NewPID(cfg)
	current := 0.0
	for i := 0; i < 2000; i++ {
		// a wild signal: sawtooth with large jumps
		current = float64((i*37)%101) - 50
		out, err := p.Output(0.01, 3, current)
		require.NoError(t, err)
		require.GreaterOrEqual(t, out, -2.0)
		require.LessOrEqual(t, out, 8.0)
	}
}

func TestPIDDerivativeSuppressedOnFirstUpdate(t *testing.T) {
	modes := []DerivativeMode{DerivativeVelocity, DerivativeErrorRate}
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			cfg := PIDConfig{Kd: 1, OutputMin: -1e9, OutputMax: 1e9, Power: 1, Derivative: mode}
			p := NewPID(cfg)

			// a previous value of zero would yield a -500/0.02 spike
			out, err := p.Output(0.02, 0, 10)
			require.NoError(t, err)
			assert.Zero(t, out)
			assert.True(t, p.State().DerivativeInitialized)

			out, err = p.Output(0.02, 0, 11)
			require.NoError(t, err)
			assert.InDelta(t, -50.0, out, 1e-9)

			p.Reset()
			out, err = p.Output(0.02, 0, 42)
			require.NoError(t, err)
			assert.Zero(t, out)
		})
	}
}

func TestPIDObserveKeepsRateContinuous(t *testing.T) {
	p := NewPID(PIDConfig{Kd: 1, OutputMin: -1e9, OutputMax: 1e9, Power: 1})
	p.Observe(0, 10)
	out, err := p.Output(0.02, 0, 11)
	require.NoError(t, err)
	assert.InDelta(t, -50.0, out, 1e-9)
	assert.Zero(t, p.State().Integral, "observing does not integrate")
}

func TestPIDResetDerivativeKeepsIntegral(t *testing.T) {
	p := NewPID(PIDConfig{Ki: 1, Kd: 1, IntegralSaturation: 10, OutputMin: -1e9, OutputMax: 1e9, Power: 1})
	_, err := p.Output(1, 1, 0)
	require.NoError(t, err)
	require.True(t, p.State().DerivativeInitialized)

	p.ResetDerivative()
	st := p.State()
	assert.False(t, st.DerivativeInitialized)
	assert.Equal(t, 1.0, st.Integral)

	// without the reset the previous value of 0 would add a rate term of -100
	out, err := p.Output(0.01, 1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out, 1e-12)
}

func TestPIDStatePersistsAcrossCalls(t *testing.T) {
	cfg := PIDConfig{Ki: 1, IntegralSaturation: 100, OutputMin: -100, OutputMax: 100, Power: 1}
	p := NewPID(cfg)
	for i := 0; i < 5; i++ {
		_, err := p.Output(0.5, 1, 0)
		require.NoError(t, err)
	}
	assert.InDelta(t, 2.5, p.State().Integral, 1e-12)
	out, err := p.Output(0.5, 1, 0)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, out, 1e-12)
}

func TestLawSignConvention(t *testing.T) {
	// body below ride height and at rest: both laws must push away from the surface
	in := Sample{DeltaTime: 0.02, Distance: 1, RideHeight: 2, Down: down}
	for _, kind := range []Kind{KindSpring, KindPID} {
		t.Run(kind.String(), func(t *testing.T) {
			law := New(kind, SpringConfig{Strength: 50, Damper: 10}, DefaultPIDConfig())
			f, err := law.Compute(in)
			require.NoError(t, err)
			assert.Less(t, f, 0.0)
		})
	}
}

func TestLawPIDErrorPropagates(t *testing.T) {
	law := New(KindPID, SpringConfig{}, DefaultPIDConfig())
	_, err := law.Compute(Sample{DeltaTime: 0, Down: down})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	require.NotNil(t, PIDOf(law))
	assert.Nil(t, PIDOf(NewSpring(SpringConfig{})))
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("pid")
	assert.True(t, ok)
	assert.Equal(t, KindPID, k)
	k, ok = ParseKind("")
	assert.True(t, ok)
	assert.Equal(t, KindSpring, k)
	_, ok = ParseKind("magnet")
	assert.False(t, ok)
}
