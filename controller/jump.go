package controller

import (
	"fmt"

	"github.com/milk9111/hoverkit/common"
	"github.com/milk9111/hoverkit/physics"
)

// JumpArbiter owns the jump budget. The budget refills only on a grounded
// edge and drops only on a successful jump.
type JumpArbiter struct {
	max    int
	budget int
}

// NewJumpArbiter starts empty; the first grounded edge fills it.
func NewJumpArbiter(maxJumps int) *JumpArbiter {
	return &JumpArbiter{max: maxJumps}
}

func (a *JumpArbiter) CanJump() bool { return a.budget > 0 }
func (a *JumpArbiter) Budget() int   { return a.budget }
func (a *JumpArbiter) Max() int      { return a.max }

func (a *JumpArbiter) ResetOnGroundedEdge() {
	a.budget = a.max
}

// Consume spends one jump. Without budget it changes nothing and returns
// ErrPreconditionFailed.
func (a *JumpArbiter) Consume() error {
	if !a.CanJump() {
		precondition(false, "consume jump with budget %d", a.budget)
		return fmt.Errorf("controller: consume jump: %w", ErrPreconditionFailed)
	}
	a.budget--
	return nil
}

// setMax changes the ceiling, trimming the current budget to it.
func (a *JumpArbiter) setMax(maxJumps int) {
	a.max = maxJumps
	if a.budget > maxJumps {
		a.budget = maxJumps
	}
}

// ApplyJump replaces the vertical velocity with speed, so stacked jumps reach
// the same height whatever the body was doing.
func ApplyJump(body physics.Body, speed float64) {
	v := common.Planar(body.Velocity())
	body.SetVelocity(v.Add(common.Up.Mul(speed)))
}
