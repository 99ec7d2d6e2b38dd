package controller

import (
	"errors"
	"fmt"

	"github.com/milk9111/hoverkit/force"
)

type HoverConfig struct {
	// RideHeight is the steady-state distance kept between the body
	// position and the surface below it.
	RideHeight float64
	// DetectionHeight is the probe length. A hit within it counts as grounded.
	DetectionHeight float64
	// Radius of the probe sphere.
	Radius float64
	Law    force.Kind
	Spring force.SpringConfig
	PID    force.PIDConfig
	// DisableGravity turns body gravity off while the hover force is active.
	DisableGravity bool
	// PushSurface applies the opposite hover force to a dynamic surface body.
	PushSurface bool
}

type GroundProfile struct {
	Speed float64
	Accel float64
	Decel float64
	Drag  float64
}

type AirProfile struct {
	Speed float64
	Accel float64
	Drag  float64
}

// RatioConfig scales acceleration by target/current speed while the body
// moves faster than its target speed, so external overshoot decays instead of
// being cancelled in one tick.
type RatioConfig struct {
	Enabled          bool
	MinAccelFraction float64
	Strength         float64
}

type LocomotionConfig struct {
	Ground          GroundProfile
	Air             AirProfile
	SpeedMultiplier float64
	SprintModifier  float64
	Ratio           RatioConfig
	// CameraRelative rotates the move axis by the accumulated look yaw.
	CameraRelative bool
}

type JumpConfig struct {
	MaxJumps int
	Speed    float64
}

// LookConfig mirrors the POV camera tuning: degrees per unit of look delta
// per second, and the pitch limit in degrees.
type LookConfig struct {
	HorizontalSpeed float64
	VerticalSpeed   float64
	ClampAngle      float64
}

// Config is immutable once built. Use ConfigBuilder or call Validate.
type Config struct {
	Hover      HoverConfig
	Locomotion LocomotionConfig
	Jump       JumpConfig
	Look       LookConfig
}

func DefaultConfig() Config {
	return Config{
		Hover: HoverConfig{
			RideHeight:      1.5,
			DetectionHeight: 2.5,
			Radius:          0.25,
			Law:             force.KindSpring,
			Spring:          force.SpringConfig{Strength: 50, Damper: 10},
			PID:             force.DefaultPIDConfig(),
			PushSurface:     true,
		},
		Locomotion: LocomotionConfig{
			Ground:          GroundProfile{Speed: 6, Accel: 10, Decel: 12},
			Air:             AirProfile{Speed: 6, Accel: 3},
			SpeedMultiplier: 1,
			SprintModifier:  1.5,
			Ratio:           RatioConfig{MinAccelFraction: 0.1, Strength: 1},
		},
		Jump: JumpConfig{MaxJumps: 2, Speed: 8},
		Look: LookConfig{HorizontalSpeed: 10, VerticalSpeed: 10, ClampAngle: 90},
	}
}

// Validate reports every invalid field, each wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	h := c.Hover
	if h.RideHeight <= 0 {
		bad("ride height %v must be positive", h.RideHeight)
	}
	if h.DetectionHeight < h.RideHeight {
		bad("detection height %v below ride height %v", h.DetectionHeight, h.RideHeight)
	}
	if h.Radius < 0 {
		bad("probe radius %v is negative", h.Radius)
	}
	switch h.Law {
	case force.KindSpring:
		if h.Spring.Strength < 0 || h.Spring.Damper < 0 {
			bad("spring strength %v and damper %v must not be negative", h.Spring.Strength, h.Spring.Damper)
		}
	case force.KindPID:
		p := h.PID
		if p.IntegralSaturation < 0 {
			bad("pid integral saturation %v is negative", p.IntegralSaturation)
		}
		if p.OutputMin > p.OutputMax {
			bad("pid output range [%v, %v] is inverted", p.OutputMin, p.OutputMax)
		}
		if p.Power < 1 {
			bad("pid power %v must be at least 1", p.Power)
		}
	default:
		bad("unknown hover law %d", h.Law)
	}

	l := c.Locomotion
	if l.Ground.Speed < 0 || l.Ground.Accel < 0 || l.Ground.Decel < 0 || l.Ground.Drag < 0 {
		bad("ground profile %+v has negative fields", l.Ground)
	}
	if l.Air.Speed < 0 || l.Air.Accel < 0 || l.Air.Drag < 0 {
		bad("air profile %+v has negative fields", l.Air)
	}
	if l.SpeedMultiplier <= 0 {
		bad("speed multiplier %v must be positive", l.SpeedMultiplier)
	}
	if l.SprintModifier <= 0 {
		bad("sprint modifier %v must be positive", l.SprintModifier)
	}
	if l.Ratio.Enabled {
		if l.Ratio.MinAccelFraction <= 0 {
			bad("ratio min accel fraction %v must be positive", l.Ratio.MinAccelFraction)
		}
		if l.Ratio.Strength < l.Ratio.MinAccelFraction {
			bad("ratio strength %v below min accel fraction %v", l.Ratio.Strength, l.Ratio.MinAccelFraction)
		}
	}

	if c.Jump.MaxJumps < 0 {
		bad("max jumps %d is negative", c.Jump.MaxJumps)
	}
	if c.Jump.Speed < 0 {
		bad("jump speed %v is negative", c.Jump.Speed)
	}
	if c.Look.ClampAngle < 0 || c.Look.ClampAngle > 180 {
		bad("look clamp angle %v outside [0, 180]", c.Look.ClampAngle)
	}

	return errors.Join(errs...)
}

// ConfigBuilder assembles a Config from DefaultConfig. Build rejects invalid
// combinations instead of correcting them.
type ConfigBuilder struct {
	cfg Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: DefaultConfig()}
}

// From starts a builder from an existing config.
func From(cfg Config) *ConfigBuilder {
	return &ConfigBuilder{cfg: cfg}
}

func (b *ConfigBuilder) RideHeight(h float64) *ConfigBuilder {
	b.cfg.Hover.RideHeight = h
	return b
}

func (b *ConfigBuilder) DetectionHeight(h float64) *ConfigBuilder {
	b.cfg.Hover.DetectionHeight = h
	return b
}

func (b *ConfigBuilder) ProbeRadius(r float64) *ConfigBuilder {
	b.cfg.Hover.Radius = r
	return b
}

func (b *ConfigBuilder) Spring(strength, damper float64) *ConfigBuilder {
	b.cfg.Hover.Law = force.KindSpring
	b.cfg.Hover.Spring = force.SpringConfig{Strength: strength, Damper: damper}
	return b
}

func (b *ConfigBuilder) PID(cfg force.PIDConfig) *ConfigBuilder {
	b.cfg.Hover.Law = force.KindPID
	b.cfg.Hover.PID = cfg
	return b
}

func (b *ConfigBuilder) DisableGravityWhileHovering(v bool) *ConfigBuilder {
	b.cfg.Hover.DisableGravity = v
	return b
}

func (b *ConfigBuilder) PushSurface(v bool) *ConfigBuilder {
	b.cfg.Hover.PushSurface = v
	return b
}

func (b *ConfigBuilder) Ground(p GroundProfile) *ConfigBuilder {
	b.cfg.Locomotion.Ground = p
	return b
}

func (b *ConfigBuilder) Air(p AirProfile) *ConfigBuilder {
	b.cfg.Locomotion.Air = p
	return b
}

func (b *ConfigBuilder) SpeedMultiplier(m float64) *ConfigBuilder {
	b.cfg.Locomotion.SpeedMultiplier = m
	return b
}

func (b *ConfigBuilder) Sprint(modifier float64) *ConfigBuilder {
	b.cfg.Locomotion.SprintModifier = modifier
	return b
}

func (b *ConfigBuilder) Ratio(r RatioConfig) *ConfigBuilder {
	b.cfg.Locomotion.Ratio = r
	return b
}

func (b *ConfigBuilder) CameraRelative(v bool) *ConfigBuilder {
	b.cfg.Locomotion.CameraRelative = v
	return b
}

func (b *ConfigBuilder) Jumps(max int, speed float64) *ConfigBuilder {
	b.cfg.Jump = JumpConfig{MaxJumps: max, Speed: speed}
	return b
}

func (b *ConfigBuilder) Look(cfg LookConfig) *ConfigBuilder {
	b.cfg.Look = cfg
	return b
}

func (b *ConfigBuilder) Build() (Config, error) {
	if err := b.cfg.Validate(); err != nil {
		return Config{}, err
	}
	return b.cfg, nil
}
