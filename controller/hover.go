package controller

import (
	"fmt"

	"github.com/milk9111/hoverkit/common"
	"github.com/milk9111/hoverkit/force"
	"github.com/milk9111/hoverkit/physics"
)

type HoverPhase int

const (
	HoverNotInRange HoverPhase = iota
	// HoverBelowThreshold is armed but still farther than the ride height.
	HoverBelowThreshold
	// HoverOverThreshold is armed and at or under the ride height; force applies.
	HoverOverThreshold
)

func (p HoverPhase) String() string {
	switch p {
	case HoverNotInRange:
		return "not_in_range"
	case HoverBelowThreshold:
		return "below_threshold"
	case HoverOverThreshold:
		return "over_threshold"
	default:
		return "unknown"
	}
}

// Hover keeps a body at ride height with the configured force law.
type Hover struct {
	cfg HoverConfig
	law force.Law

	inRange         bool
	over            bool
	gravityDisabled bool
}

// NewHover starts armed.
func NewHover(cfg HoverConfig) *Hover {
	return &Hover{
		cfg:     cfg,
		law:     force.New(cfg.Law, cfg.Spring, cfg.PID),
		inRange: true,
	}
}

func (h *Hover) Phase() HoverPhase {
	switch {
	case !h.inRange:
		return HoverNotInRange
	case h.over:
		return HoverOverThreshold
	default:
		return HoverBelowThreshold
	}
}

func (h *Hover) InRange() bool         { return h.inRange }
func (h *Hover) OverThreshold() bool   { return h.over }
func (h *Hover) GravityDisabled() bool { return h.gravityDisabled }
func (h *Hover) Law() force.Law        { return h.law }

// ResetRange arms hover eligibility. Re-arming from disarmed restarts the
// law's rate history so the first engaged tick cannot see a stale sample.
func (h *Hover) ResetRange() {
	if !h.inRange {
		h.law.ResetDerivative()
	}
	h.inRange = true
}

// DisableRange disarms hover and restores gravity at once, so a jump started
// in the same tick never fights the hover force.
func (h *Hover) DisableRange(body physics.Body) {
	h.inRange = false
	h.over = false
	h.syncGravity(body)
}

// ResetLaw clears the force law memory (PID integral and history).
func (h *Hover) ResetLaw() {
	h.law.Reset()
}

// Update evaluates the threshold and applies the hover force. It returns the
// signed force along down that was applied, zero when none was.
func (h *Hover) Update(body physics.Body, probe ProbeResult, dt float64) (float64, error) {
	defer h.syncGravity(body)

	if !probe.HasHit {
		h.over = false
		h.law.ResetDerivative()
		return 0, nil
	}

	sample := force.Sample{
		DeltaTime:       dt,
		Distance:        probe.HitDistance,
		RideHeight:      h.cfg.RideHeight,
		SelfVelocity:    body.Velocity(),
		SurfaceVelocity: probe.SurfaceVelocity,
		Down:            common.Down,
	}
	if !h.inRange {
		h.over = false
		h.law.Observe(sample)
		return 0, nil
	}

	h.over = probe.HitDistance-h.cfg.RideHeight <= 0
	if !h.over {
		h.law.Observe(sample)
		return 0, nil
	}

	f, err := h.law.Compute(sample)
	if err != nil {
		h.over = false
		h.law.ResetDerivative()
		return 0, fmt.Errorf("controller: hover law: %w", err)
	}

	body.AddForce(common.Down.Mul(f), physics.ForceModeForce)
	if h.cfg.PushSurface && probe.Surface != nil {
		probe.Surface.AddForceAtPoint(common.Down.Mul(-f), probe.Point)
	}
	return f, nil
}

// syncGravity is called on every exit path of Update and on DisableRange.
// SetGravityEnabled is idempotent, so repeating it each tick is safe.
func (h *Hover) syncGravity(body physics.Body) {
	if !h.cfg.DisableGravity || body == nil {
		return
	}
	disable := h.inRange && h.over
	body.SetGravityEnabled(!disable)
	h.gravityDisabled = disable
}

// restoreGravity re-enables gravity if this hover ever disabled it.
func (h *Hover) restoreGravity(body physics.Body) {
	if h.gravityDisabled && body != nil {
		body.SetGravityEnabled(true)
	}
	h.gravityDisabled = false
}
