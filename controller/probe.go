package controller

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hoverkit/physics"
)

// ProbeResult is produced fresh every tick and must not outlive it.
type ProbeResult struct {
	HasHit bool
	// HitDistance equals the probe height when nothing was hit.
	HitDistance     float64
	SurfaceVelocity mgl64.Vec3
	// Surface is the dynamic body under the probe, nil for static geometry.
	Surface physics.Body
	Point   mgl64.Vec3
	Normal  mgl64.Vec3
}

// Probe issues the downward sphere cast used for grounding and hover.
type Probe struct {
	world  physics.World
	radius float64
}

func NewProbe(world physics.World, radius float64) *Probe {
	return &Probe{world: world, radius: radius}
}

// Cast queries at most height below origin, skipping shapes owned by self.
// A miss is reported as HasHit=false with HitDistance=height.
func (p *Probe) Cast(origin mgl64.Vec3, height float64, self physics.Body) ProbeResult {
	miss := ProbeResult{HitDistance: height}
	if p == nil || p.world == nil {
		return miss
	}

	hit := p.world.CastDown(origin, p.radius, height, self)
	if !hit.Hit || hit.Distance > height {
		return miss
	}

	res := ProbeResult{
		HasHit:      true,
		HitDistance: hit.Distance,
		Surface:     hit.Body,
		Point:       hit.Point,
		Normal:      hit.Normal,
	}
	if hit.Body != nil {
		res.SurfaceVelocity = hit.Body.Velocity()
	}
	return res
}
