// Package tuning loads controller and scene settings from YAML, embedded in
// the binary with on-disk overrides, and watches the overrides for edits.
package tuning

import (
	"errors"
	"fmt"

	"github.com/milk9111/hoverkit/controller"
	"github.com/milk9111/hoverkit/force"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownLaw        = errors.New("tuning: unknown hover law")
	ErrUnknownDerivative = errors.New("tuning: unknown pid derivative mode")
)

// LoadSpec reads name and decodes it over base, so fields the file omits
// keep the values base carries.
func LoadSpec[T any](name string, base T) (T, error) {
	data, err := Load(name)
	if err != nil {
		return base, fmt.Errorf("tuning: load %s: %w", name, err)
	}
	spec := base
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return base, fmt.Errorf("tuning: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

type SpringSpec struct {
	Strength float64 `yaml:"strength"`
	Damper   float64 `yaml:"damper"`
}

type PIDSpec struct {
	Kp                 float64 `yaml:"kp"`
	Ki                 float64 `yaml:"ki"`
	Kd                 float64 `yaml:"kd"`
	IntegralSaturation float64 `yaml:"integral_saturation"`
	Derivative         string  `yaml:"derivative"`
	OutputMin          float64 `yaml:"output_min"`
	OutputMax          float64 `yaml:"output_max"`
	Power              float64 `yaml:"power"`
}

type HoverSpec struct {
	RideHeight      float64    `yaml:"ride_height"`
	DetectionHeight float64    `yaml:"detection_height"`
	Radius          float64    `yaml:"radius"`
	Law             string     `yaml:"law"`
	Spring          SpringSpec `yaml:"spring"`
	PID             PIDSpec    `yaml:"pid"`
	DisableGravity  bool       `yaml:"disable_gravity"`
	PushSurface     bool       `yaml:"push_surface"`
}

type GroundSpec struct {
	Speed float64 `yaml:"speed"`
	Accel float64 `yaml:"accel"`
	Decel float64 `yaml:"decel"`
	Drag  float64 `yaml:"drag"`
}

type AirSpec struct {
	Speed float64 `yaml:"speed"`
	Accel float64 `yaml:"accel"`
	Drag  float64 `yaml:"drag"`
}

type RatioSpec struct {
	Enabled          bool    `yaml:"enabled"`
	MinAccelFraction float64 `yaml:"min_accel_fraction"`
	Strength         float64 `yaml:"strength"`
}

type LocomotionSpec struct {
	Ground          GroundSpec `yaml:"ground"`
	Air             AirSpec    `yaml:"air"`
	SpeedMultiplier float64    `yaml:"speed_multiplier"`
	SprintModifier  float64    `yaml:"sprint_modifier"`
	Ratio           RatioSpec  `yaml:"ratio"`
	CameraRelative  bool       `yaml:"camera_relative"`
}

type JumpSpec struct {
	MaxJumps int     `yaml:"max_jumps"`
	Speed    float64 `yaml:"speed"`
}

type LookSpec struct {
	HorizontalSpeed float64 `yaml:"horizontal_speed"`
	VerticalSpeed   float64 `yaml:"vertical_speed"`
	ClampAngle      float64 `yaml:"clamp_angle"`
}

// Spec is the YAML form of controller.Config.
type Spec struct {
	Name       string         `yaml:"name"`
	Hover      HoverSpec      `yaml:"hover"`
	Locomotion LocomotionSpec `yaml:"locomotion"`
	Jump       JumpSpec       `yaml:"jump"`
	Look       LookSpec       `yaml:"look"`
}

// DefaultSpec mirrors controller.DefaultConfig.
func DefaultSpec() Spec {
	return FromConfig("default", controller.DefaultConfig())
}

func FromConfig(name string, cfg controller.Config) Spec {
	h, l := cfg.Hover, cfg.Locomotion
	return Spec{
		Name: name,
		Hover: HoverSpec{
			RideHeight:      h.RideHeight,
			DetectionHeight: h.DetectionHeight,
			Radius:          h.Radius,
			Law:             h.Law.String(),
			Spring:          SpringSpec{Strength: h.Spring.Strength, Damper: h.Spring.Damper},
			PID: PIDSpec{
				Kp:                 h.PID.Kp,
				Ki:                 h.PID.Ki,
				Kd:                 h.PID.Kd,
				IntegralSaturation: h.PID.IntegralSaturation,
				Derivative:         h.PID.Derivative.String(),
				OutputMin:          h.PID.OutputMin,
				OutputMax:          h.PID.OutputMax,
				Power:              h.PID.Power,
			},
			DisableGravity: h.DisableGravity,
			PushSurface:    h.PushSurface,
		},
		Locomotion: LocomotionSpec{
			Ground:          GroundSpec(l.Ground),
			Air:             AirSpec(l.Air),
			SpeedMultiplier: l.SpeedMultiplier,
			SprintModifier:  l.SprintModifier,
			Ratio:           RatioSpec(l.Ratio),
			CameraRelative:  l.CameraRelative,
		},
		Jump: JumpSpec(cfg.Jump),
		Look: LookSpec(cfg.Look),
	}
}

// Config validates the spec through controller.ConfigBuilder.
func (s Spec) Config() (controller.Config, error) {
	kind, ok := force.ParseKind(s.Hover.Law)
	if !ok {
		return controller.Config{}, fmt.Errorf("%w %q in %s", ErrUnknownLaw, s.Hover.Law, s.Name)
	}
	deriv, ok := force.ParseDerivativeMode(s.Hover.PID.Derivative)
	if !ok {
		return controller.Config{}, fmt.Errorf("%w %q in %s", ErrUnknownDerivative, s.Hover.PID.Derivative, s.Name)
	}

	h, l := s.Hover, s.Locomotion
	b := controller.NewConfigBuilder().
		RideHeight(h.RideHeight).
		DetectionHeight(h.DetectionHeight).
		ProbeRadius(h.Radius).
		DisableGravityWhileHovering(h.DisableGravity).
		PushSurface(h.PushSurface).
		Ground(controller.GroundProfile(l.Ground)).
		Air(controller.AirProfile(l.Air)).
		SpeedMultiplier(l.SpeedMultiplier).
		Sprint(l.SprintModifier).
		Ratio(controller.RatioConfig(l.Ratio)).
		CameraRelative(l.CameraRelative).
		Jumps(s.Jump.MaxJumps, s.Jump.Speed).
		Look(controller.LookConfig(s.Look))

	pid := force.PIDConfig{
		Kp:                 h.PID.Kp,
		Ki:                 h.PID.Ki,
		Kd:                 h.PID.Kd,
		IntegralSaturation: h.PID.IntegralSaturation,
		Derivative:         deriv,
		OutputMin:          h.PID.OutputMin,
		OutputMax:          h.PID.OutputMax,
		Power:              h.PID.Power,
	}
	// Both laws stay configured so a reload can switch between them.
	b.PID(pid).Spring(h.Spring.Strength, h.Spring.Damper)
	if kind == force.KindPID {
		b.PID(pid)
	}

	cfg, err := b.Build()
	if err != nil {
		return controller.Config{}, fmt.Errorf("tuning: %s: %w", s.Name, err)
	}
	return cfg, nil
}

// LoadController loads name over DefaultSpec and converts it.
func LoadController(name string) (controller.Config, error) {
	spec, err := LoadSpec(name, DefaultSpec())
	if err != nil {
		return controller.Config{}, err
	}
	if spec.Name == "" || spec.Name == "default" {
		spec.Name = name
	}
	return spec.Config()
}
