package cpworld

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hoverkit/physics"
)

// Body is a dynamic Chipmunk body seen through physics.Body.
type Body struct {
	body  *cp.Body
	shape *cp.Shape
	group uint

	gravity bool
	drag    float64

	width, height float64
}

var _ physics.Body = (*Body)(nil)

// Size is the box extent in world units.
func (b *Body) Size() (w, h float64) { return b.width, b.height }

// Angle is the rotation in radians, counter-clockwise in world space.
func (b *Body) Angle() float64 { return -b.body.Angle() }

func (b *Body) Position() mgl64.Vec3 { return fromCP(b.body.Position()) }
func (b *Body) Velocity() mgl64.Vec3 { return fromCP(b.body.Velocity()) }
func (b *Body) Mass() float64        { return b.body.Mass() }

func (b *Body) SetVelocity(v mgl64.Vec3) {
	b.body.SetVelocityVector(toCP(v))
}

// SetPosition teleports the body, leaving its velocity alone. The space's
// spatial index picks the new position up on the next step.
func (b *Body) SetPosition(p mgl64.Vec3) {
	b.body.SetPosition(toCP(p))
}

func (b *Body) AddForce(f mgl64.Vec3, mode physics.ForceMode) {
	at := b.body.Position()
	switch mode {
	case physics.ForceModeForce:
		b.body.ApplyForceAtWorldPoint(toCP(f), at)
	case physics.ForceModeAcceleration:
		b.body.ApplyForceAtWorldPoint(toCP(f.Mul(b.body.Mass())), at)
	case physics.ForceModeImpulse:
		b.body.ApplyImpulseAtWorldPoint(toCP(f), at)
	case physics.ForceModeVelocityChange:
		b.body.SetVelocityVector(b.body.Velocity().Add(toCP(f)))
	}
}

func (b *Body) AddForceAtPoint(f, point mgl64.Vec3) {
	b.body.ApplyForceAtWorldPoint(toCP(f), toCP(point))
}

func (b *Body) SetGravityEnabled(enabled bool) { b.gravity = enabled }
func (b *Body) GravityEnabled() bool           { return b.gravity }

func (b *Body) SetDrag(drag float64) { b.drag = drag }
func (b *Body) Drag() float64        { return b.drag }

// updateVelocity replaces the default integrator: gravity is skipped while
// disabled and linear drag scales the velocity by 1-drag*dt.
func (b *Body) updateVelocity(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
	if !b.gravity {
		gravity = cp.Vector{}
	}
	cp.BodyUpdateVelocity(body, gravity, damping, dt)
	if b.drag > 0 {
		body.SetVelocityVector(body.Velocity().Mult(math.Max(0, 1-b.drag*dt)))
	}
}

// contact is the body under a cast. Velocity reports the material point that
// was hit, not the body center.
type contact struct {
	*Body
	point cp.Vector
}

func (c *contact) Velocity() mgl64.Vec3 {
	return fromCP(c.body.VelocityAtWorldPoint(c.point))
}
