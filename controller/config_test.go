package controller

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hoverkit/force"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigBuilderRejects(t *testing.T) {
	tests := []struct {
		name    string
		build   func(*ConfigBuilder) *ConfigBuilder
		message string
	}{
		{"zero_ride_height", func(b *ConfigBuilder) *ConfigBuilder { return b.RideHeight(0) }, "ride height"},
		{"detection_below_ride", func(b *ConfigBuilder) *ConfigBuilder { return b.RideHeight(3).DetectionHeight(2) }, "detection height"},
		{"negative_radius", func(b *ConfigBuilder) *ConfigBuilder { return b.ProbeRadius(-1) }, "probe radius"},
		{"negative_spring", func(b *ConfigBuilder) *ConfigBuilder { return b.Spring(-1, 0) }, "spring"},
		{"pid_inverted_range", func(b *ConfigBuilder) *ConfigBuilder {
			p := force.DefaultPIDConfig()
			p.OutputMin, p.OutputMax = 1, -1
			return b.PID(p)
		}, "inverted"},
		{"pid_low_power", func(b *ConfigBuilder) *ConfigBuilder {
			p := force.DefaultPIDConfig()
			p.Power = 0.5
			return b.PID(p)
		}, "power"},
		{"negative_ground_accel", func(b *ConfigBuilder) *ConfigBuilder {
			return b.Ground(GroundProfile{Speed: 1, Accel: -1})
		}, "ground profile"},
		{"negative_air_drag", func(b *ConfigBuilder) *ConfigBuilder {
			return b.Air(AirProfile{Drag: -0.1})
		}, "air profile"},
		{"zero_multiplier", func(b *ConfigBuilder) *ConfigBuilder { return b.SpeedMultiplier(0) }, "speed multiplier"},
		{"zero_sprint", func(b *ConfigBuilder) *ConfigBuilder { return b.Sprint(0) }, "sprint modifier"},
		{"ratio_strength_below_min", func(b *ConfigBuilder) *ConfigBuilder {
			return b.Ratio(RatioConfig{Enabled: true, MinAccelFraction: 0.5, Strength: 0.2})
		}, "ratio strength"},
		{"negative_jumps", func(b *ConfigBuilder) *ConfigBuilder { return b.Jumps(-1, 5) }, "max jumps"},
		{"look_clamp", func(b *ConfigBuilder) *ConfigBuilder {
			return b.Look(LookConfig{ClampAngle: 200})
		}, "clamp angle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build(NewConfigBuilder()).Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Hover.RideHeight = -1
	cfg.Locomotion.SprintModifier = 0
	cfg.Jump.Speed = -2

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 3)
	assert.Equal(t, 3, strings.Count(err.Error(), ErrInvalidConfig.Error()))
}

func TestConfigBuilderDisabledRatioSkipsChecks(t *testing.T) {
	_, err := NewConfigBuilder().Ratio(RatioConfig{MinAccelFraction: -1}).Build()
	assert.NoError(t, err)
}

func TestLookClampsPitchAndRotatesAxis(t *testing.T) {
	l := NewLook(LookConfig{HorizontalSpeed: 10, VerticalSpeed: 10, ClampAngle: 45})
	l.Apply(mgl64.Vec2{0, 100}, 1)
	assert.Equal(t, 45.0, l.Pitch())
	l.Apply(mgl64.Vec2{0, -1000}, 1)
	assert.Equal(t, -45.0, l.Pitch())

	assert.Equal(t, mgl64.Vec3{1, 0, 0}, l.Direction(mgl64.Vec2{1, 0}))

	l.Apply(mgl64.Vec2{18, 0}, 1)
	require.Equal(t, 180.0, l.Yaw())
	d := l.Direction(mgl64.Vec2{0, 1})
	assert.InDelta(t, 0, d[0], 1e-12)
	assert.InDelta(t, -1, d[2], 1e-12)
	assert.Zero(t, d[1])
}
