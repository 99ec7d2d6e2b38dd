// Package physics declares the narrow collaborator contracts the controller
// consumes from a rigid-body engine. Implementations live in sub-packages.
package physics

import "github.com/go-gl/mathgl/mgl64"

// ForceMode selects how AddForce interprets its vector.
type ForceMode int

const (
	// ForceModeForce is a continuous force in mass*distance/time^2.
	ForceModeForce ForceMode = iota
	// ForceModeAcceleration ignores mass.
	ForceModeAcceleration
	// ForceModeImpulse is an instant change of momentum.
	ForceModeImpulse
	// ForceModeVelocityChange is an instant change of velocity, ignoring mass.
	ForceModeVelocityChange
)

func (m ForceMode) String() string {
	switch m {
	case ForceModeForce:
		return "force"
	case ForceModeAcceleration:
		return "acceleration"
	case ForceModeImpulse:
		return "impulse"
	case ForceModeVelocityChange:
		return "velocity_change"
	default:
		return "unknown"
	}
}

// Body is a handle to a rigid body owned by the engine.
type Body interface {
	Position() mgl64.Vec3
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	Mass() float64
	AddForce(f mgl64.Vec3, mode ForceMode)
	AddForceAtPoint(f, point mgl64.Vec3)
	SetGravityEnabled(enabled bool)
	SetDrag(drag float64)
}

// CastHit is the result of a downward shape query. Body is nil when the hit
// surface is static or when nothing was hit.
type CastHit struct {
	Hit      bool
	Distance float64
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Body     Body
}

// World answers read-only shape queries.
type World interface {
	// CastDown sweeps a sphere of the given radius from origin along -Y for
	// at most maxDistance. Shapes belonging to ignore are skipped.
	CastDown(origin mgl64.Vec3, radius, maxDistance float64, ignore Body) CastHit
}
