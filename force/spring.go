package force

import "github.com/go-gl/mathgl/mgl64"

// SpringConfig holds the ride spring constants.
type SpringConfig struct {
	Strength float64
	Damper   float64
}

// SpringForce returns the damped-spring force along down.
//
// displacement = distance - rideHeight, positive when the body is farther
// from the surface than desired. The damping term opposes the closing speed
// between the body and the surface measured along down. The result is not
// clamped.
func SpringForce(distance, rideHeight float64, selfVel, surfaceVel, down mgl64.Vec3, strength, damper float64) float64 {
	displacement := distance - rideHeight
	closing := down.Dot(selfVel) - down.Dot(surfaceVel)
	return displacement*strength - closing*damper
}

// Spring is the spring-damper Law.
type Spring struct {
	cfg SpringConfig
}

func NewSpring(cfg SpringConfig) *Spring {
	return &Spring{cfg: cfg}
}

func (s *Spring) Config() SpringConfig {
	return s.cfg
}

func (s *Spring) Compute(in Sample) (float64, error) {
	return SpringForce(in.Distance, in.RideHeight, in.SelfVelocity, in.SurfaceVelocity, in.Down, s.cfg.Strength, s.cfg.Damper), nil
}

// The spring keeps no memory.
func (s *Spring) Observe(Sample)   {}
func (s *Spring) ResetDerivative() {}
func (s *Spring) Reset()           {}
