package controller

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hoverkit/common"
)

// Look accumulates yaw and pitch, in degrees, from look deltas.
type Look struct {
	cfg   LookConfig
	yaw   float64
	pitch float64
}

func NewLook(cfg LookConfig) *Look {
	return &Look{cfg: cfg}
}

func (l *Look) Yaw() float64   { return l.yaw }
func (l *Look) Pitch() float64 { return l.pitch }

func (l *Look) Apply(delta mgl64.Vec2, dt float64) {
	if delta[0] == 0 && delta[1] == 0 {
		return
	}
	l.yaw += delta[0] * l.cfg.HorizontalSpeed * dt
	l.pitch = common.Clamp(l.pitch+delta[1]*l.cfg.VerticalSpeed*dt, -l.cfg.ClampAngle, l.cfg.ClampAngle)
}

// Direction maps a move axis (x right, y forward) onto the horizontal plane,
// rotated by yaw about the vertical axis.
func (l *Look) Direction(axis mgl64.Vec2) mgl64.Vec3 {
	v := mgl64.Vec3{axis[0], 0, axis[1]}
	if l == nil || l.yaw == 0 {
		return v
	}
	return mgl64.Rotate3DY(mgl64.DegToRad(l.yaw)).Mul3x1(v)
}
