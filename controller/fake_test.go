package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hoverkit/input"
	"github.com/milk9111/hoverkit/physics"
)

const testGravity = -9.81

type pointForce struct {
	force, point mgl64.Vec3
}

// fakeBody integrates with semi-implicit Euler when step is called.
type fakeBody struct {
	pos, vel mgl64.Vec3
	mass     float64
	force    mgl64.Vec3
	gravity  bool
	drag     float64

	pointForces  []pointForce
	gravityCalls int
	dragCalls    int
}

func newFakeBody(pos mgl64.Vec3) *fakeBody {
	return &fakeBody{pos: pos, mass: 1, gravity: true}
}

func (b *fakeBody) Position() mgl64.Vec3     { return b.pos }
func (b *fakeBody) Velocity() mgl64.Vec3     { return b.vel }
func (b *fakeBody) SetVelocity(v mgl64.Vec3) { b.vel = v }
func (b *fakeBody) Mass() float64            { return b.mass }

func (b *fakeBody) AddForce(f mgl64.Vec3, mode physics.ForceMode) {
	switch mode {
	case physics.ForceModeForce:
		b.force = b.force.Add(f)
	case physics.ForceModeAcceleration:
		b.force = b.force.Add(f.Mul(b.mass))
	case physics.ForceModeImpulse:
		b.vel = b.vel.Add(f.Mul(1 / b.mass))
	case physics.ForceModeVelocityChange:
		b.vel = b.vel.Add(f)
	}
}

func (b *fakeBody) AddForceAtPoint(f, point mgl64.Vec3) {
	b.pointForces = append(b.pointForces, pointForce{force: f, point: point})
	b.force = b.force.Add(f)
}

func (b *fakeBody) SetGravityEnabled(enabled bool) {
	b.gravity = enabled
	b.gravityCalls++
}

func (b *fakeBody) SetDrag(drag float64) {
	b.drag = drag
	b.dragCalls++
}

func (b *fakeBody) step(dt float64) {
	acc := b.force.Mul(1 / b.mass)
	if b.gravity {
		acc = acc.Add(mgl64.Vec3{0, testGravity, 0})
	}
	b.vel = b.vel.Add(acc.Mul(dt))
	b.vel = b.vel.Mul(math.Max(0, 1-b.drag*dt))
	b.pos = b.pos.Add(b.vel.Mul(dt))
	b.force = mgl64.Vec3{}
}

// fakeWorld is an infinite floor at groundY, optionally owned by a body.
type fakeWorld struct {
	groundY float64
	surface physics.Body
	missAll bool
	casts   int
}

func (w *fakeWorld) CastDown(origin mgl64.Vec3, radius, maxDistance float64, ignore physics.Body) physics.CastHit {
	w.casts++
	if w.missAll {
		return physics.CastHit{}
	}
	d := origin[1] - radius - w.groundY
	if d < 0 {
		d = 0
	}
	if d > maxDistance {
		return physics.CastHit{}
	}
	return physics.CastHit{
		Hit:      true,
		Distance: d,
		Point:    mgl64.Vec3{origin[0], w.groundY, origin[2]},
		Normal:   mgl64.Vec3{0, 1, 0},
		Body:     w.surface,
	}
}

// scriptedSource replays one intent per Poll, then zero intents.
type scriptedSource struct {
	intents []input.Intent
}

func (s *scriptedSource) Poll() input.Intent {
	if len(s.intents) == 0 {
		return input.Intent{}
	}
	in := s.intents[0]
	s.intents = s.intents[1:]
	return in
}

func (s *scriptedSource) push(in input.Intent) {
	s.intents = append(s.intents, in)
}
