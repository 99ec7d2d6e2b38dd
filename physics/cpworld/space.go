// Package cpworld backs physics.World and physics.Body with a Chipmunk space.
//
// The space is a vertical slice of the 3D world: world X maps to cp X, world
// Y (up) maps to cp -Y so the space keeps the screen-down convention used by
// the renderer, and world Z is dropped.
package cpworld

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hoverkit/physics"
)

const (
	categoryStatic uint = 1 << iota
	categoryDynamic
	categoryCharacter
)

// Space owns the Chipmunk space and every body added through it.
type Space struct {
	space     *cp.Space
	bodies    map[*cp.Body]*Body
	order     []*Body
	nextGroup uint
}

// NewSpace creates a space pulling bodies down with gravity m/s^2.
func NewSpace(gravity float64) *Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &Space{
		space:  space,
		bodies: make(map[*cp.Body]*Body),
	}
}

// Bodies returns the dynamic bodies in the order they were added.
func (s *Space) Bodies() []*Body {
	return s.order
}

// AddGround adds a static segment between a and b.
func (s *Space) AddGround(a, b mgl64.Vec3, radius float64) {
	shape := cp.NewSegment(s.space.StaticBody, toCP(a), toCP(b), radius)
	shape.SetFriction(0.8)
	shape.SetFilter(cp.NewShapeFilter(0, categoryStatic, cp.ALL_CATEGORIES))
	s.space.AddShape(shape)
}

// AddPlatform adds a dynamic box pinned to the static body at its center, so
// it tilts like a see-saw under uneven load.
func (s *Space) AddPlatform(center mgl64.Vec3, w, h, mass float64) *Body {
	body := s.addBox(center, w, h, mass, cp.MomentForBox(mass, w, h), categoryDynamic)
	pivot := cp.NewPivotJoint(body.body, s.space.StaticBody, toCP(center))
	s.space.AddConstraint(pivot)
	return body
}

// AddCharacter adds a box that never rotates. Its shapes are skipped by casts
// that ignore it.
func (s *Space) AddCharacter(center mgl64.Vec3, w, h, mass float64) *Body {
	body := s.addBox(center, w, h, mass, math.Inf(1), categoryCharacter)
	body.shape.SetFriction(0)
	return body
}

func (s *Space) addBox(center mgl64.Vec3, w, h, mass, moment float64, category uint) *Body {
	s.nextGroup++
	cpBody := cp.NewBody(mass, moment)
	cpBody.SetAngle(0)
	cpBody.SetPosition(toCP(center))

	shape := cp.NewBox(cpBody, w, h, 0)
	shape.SetFriction(0.8)
	shape.SetFilter(cp.NewShapeFilter(s.nextGroup, category, cp.ALL_CATEGORIES))

	b := &Body{
		body:    cpBody,
		shape:   shape,
		group:   s.nextGroup,
		gravity: true,
		width:   w,
		height:  h,
	}
	cpBody.SetVelocityUpdateFunc(b.updateVelocity)

	s.space.AddBody(cpBody)
	s.space.AddShape(shape)
	s.bodies[cpBody] = b
	s.order = append(s.order, b)
	return b
}

// CastDown sweeps a circle of radius from origin straight down. Static
// geometry reports a nil Body.
func (s *Space) CastDown(origin mgl64.Vec3, radius, maxDistance float64, ignore physics.Body) physics.CastHit {
	if s == nil || maxDistance <= 0 {
		return physics.CastHit{}
	}

	filter := cp.NewShapeFilter(0, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
	if self, ok := ignore.(*Body); ok && self != nil {
		filter.Group = self.group
	}

	start := toCP(origin)
	end := toCP(origin.Add(mgl64.Vec3{0, -maxDistance, 0}))
	info := s.space.SegmentQueryFirst(start, end, radius, filter)
	if info.Shape == nil {
		return physics.CastHit{}
	}

	hit := physics.CastHit{
		Hit:      true,
		Distance: info.Alpha * maxDistance,
		Point:    fromCP(info.Point),
		Normal:   fromCP(info.Normal),
	}
	if owner := info.Shape.Body(); owner != nil && owner.GetType() != cp.BODY_STATIC {
		if b, ok := s.bodies[owner]; ok {
			hit.Body = &contact{Body: b, point: info.Point}
		}
	}
	return hit
}

// Step advances the simulation by dt seconds.
func (s *Space) Step(dt float64) {
	if s == nil || s.space == nil {
		return
	}
	s.space.Step(dt)
}

func toCP(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v[0], Y: -v[1]}
}

func fromCP(v cp.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, -v.Y, 0}
}
