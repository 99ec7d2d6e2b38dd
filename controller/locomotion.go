package controller

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hoverkit/common"
	"github.com/milk9111/hoverkit/physics"
)

type Mode int

const (
	ModeAir Mode = iota
	ModeGround
)

func (m Mode) String() string {
	if m == ModeGround {
		return "ground"
	}
	return "air"
}

// Locomotion drives the planar velocity. It never writes the vertical
// component: hover and gravity own that axis.
type Locomotion struct {
	cfg  LocomotionConfig
	mode Mode
}

// NewLocomotion starts in air mode; the first grounded edge switches it.
func NewLocomotion(cfg LocomotionConfig) *Locomotion {
	return &Locomotion{cfg: cfg, mode: ModeAir}
}

func (l *Locomotion) Mode() Mode { return l.mode }

func (l *Locomotion) SetGroundMode(body physics.Body) {
	l.mode = ModeGround
	body.SetDrag(l.cfg.Ground.Drag)
}

func (l *Locomotion) SetAirMode(body physics.Body) {
	l.mode = ModeAir
	body.SetDrag(l.cfg.Air.Drag)
}

// TargetSpeed is the planar speed the active profile aims for.
func (l *Locomotion) TargetSpeed(sprint bool) float64 {
	speed := l.cfg.Air.Speed
	if l.mode == ModeGround {
		speed = l.cfg.Ground.Speed
	}
	speed *= l.cfg.SpeedMultiplier
	if sprint {
		speed *= l.cfg.SprintModifier
	}
	return speed
}

func (l *Locomotion) accel() float64 {
	if l.mode == ModeGround {
		return l.cfg.Ground.Accel
	}
	return l.cfg.Air.Accel
}

// ratioAccel damps the correction while an external push keeps the body
// faster than target.
func (l *Locomotion) ratioAccel(accel, target, current float64) float64 {
	r := l.cfg.Ratio
	if !r.Enabled || current <= target || current <= 0 {
		return accel
	}
	return accel * common.Clamp(target/current, r.MinAccelFraction, r.Strength)
}

// ApplyMovement blends the planar velocity toward dir*target. dir is a planar
// direction; lengths above one are normalised, shorter ones scale the target.
func (l *Locomotion) ApplyMovement(body physics.Body, dir mgl64.Vec3, sprint bool, dt float64) {
	dir = common.Planar(dir)
	if n := dir.Len(); n > 1 {
		dir = dir.Mul(1 / n)
	}

	v := body.Velocity()
	planar := common.Planar(v)
	target := l.TargetSpeed(sprint)
	accel := l.ratioAccel(l.accel(), target, planar.Len())

	t := common.DecayBlend(accel, dt)
	desired := dir.Mul(target)
	next := planar.Add(desired.Sub(planar).Mul(t))
	body.SetVelocity(common.WithPlanar(v, next))
}

// Stop brakes the planar velocity toward zero in ground mode. In air mode it
// does nothing; drag alone shapes the trajectory.
func (l *Locomotion) Stop(body physics.Body, dt float64) {
	if l.mode != ModeGround {
		return
	}
	v := body.Velocity()
	planar := common.Planar(v)
	t := common.DecayBlend(l.cfg.Ground.Decel, dt)
	next := planar.Sub(planar.Mul(t))
	body.SetVelocity(common.WithPlanar(v, next))
}
