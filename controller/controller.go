// Package controller is the per-tick hover and locomotion pipeline for one
// rigid body: probe, grounded edges, hover force, jump arbitration and planar
// movement, in that order.
package controller

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hoverkit/common"
	"github.com/milk9111/hoverkit/force"
	"github.com/milk9111/hoverkit/input"
	"github.com/milk9111/hoverkit/physics"
	"github.com/sirupsen/logrus"
)

// moveDeadzone below which a move axis counts as released.
const moveDeadzone = 1e-6

// Events are invoked synchronously from Tick. Any field may be nil.
type Events struct {
	OnEnteredGrounded func()
	OnExitedGrounded  func()
	OnJumped          func(remaining int)
}

type Options struct {
	Name   string
	Logger *logrus.Logger
	Events Events
}

// State is a read-only snapshot of the controller after the last tick.
type State struct {
	Grounded           bool
	WasGrounded        bool
	InHoverRange       bool
	OverHoverThreshold bool
	Hover              HoverPhase
	JumpBudget         int
	Mode               Mode
	GravityDisabled    bool
	PID                force.PIDState
	Probe              ProbeResult
	HoverForce         float64
	Yaw                float64
	Pitch              float64
	Ticks              uint64
}

// Controller is owned by a single goroutine: Tick, Reset and Reconfigure must
// not run concurrently. Input may arrive from anywhere through the Source.
type Controller struct {
	cfg   Config
	body  physics.Body
	world physics.World
	input input.Source

	probe *Probe
	hover *Hover
	loco  *Locomotion
	jumps *JumpArbiter
	look  *Look

	grounded    bool
	wasGrounded bool
	lastProbe   ProbeResult
	lastForce   float64
	ticks       uint64

	events Events
	log    *logrus.Entry
}

func New(cfg Config, body physics.Body, world physics.World, src input.Source, opts Options) (*Controller, error) {
	if body == nil {
		return nil, fmt.Errorf("controller: nil body: %w", ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	c := &Controller{
		cfg:    cfg,
		body:   body,
		world:  world,
		input:  src,
		probe:  NewProbe(world, cfg.Hover.Radius),
		hover:  NewHover(cfg.Hover),
		loco:   NewLocomotion(cfg.Locomotion),
		jumps:  NewJumpArbiter(cfg.Jump.MaxJumps),
		look:   NewLook(cfg.Look),
		events: opts.Events,
		log: logger.WithFields(logrus.Fields{
			"component": "controller",
			"name":      opts.Name,
		}),
	}
	c.lastProbe = ProbeResult{HitDistance: cfg.Hover.DetectionHeight}
	body.SetDrag(cfg.Locomotion.Air.Drag)
	return c, nil
}

func (c *Controller) Config() Config     { return c.cfg }
func (c *Controller) Body() physics.Body { return c.body }

func (c *Controller) State() State {
	st := State{
		Grounded:           c.grounded,
		WasGrounded:        c.wasGrounded,
		InHoverRange:       c.hover.InRange(),
		OverHoverThreshold: c.hover.OverThreshold(),
		Hover:              c.hover.Phase(),
		JumpBudget:         c.jumps.Budget(),
		Mode:               c.loco.Mode(),
		GravityDisabled:    c.hover.GravityDisabled(),
		Probe:              c.lastProbe,
		HoverForce:         c.lastForce,
		Yaw:                c.look.Yaw(),
		Pitch:              c.look.Pitch(),
		Ticks:              c.ticks,
	}
	if pid := force.PIDOf(c.hover.Law()); pid != nil {
		st.PID = pid.State()
	}
	return st
}

// Tick runs one fixed-interval update. A non-positive dt is rejected before
// anything is read or mutated.
func (c *Controller) Tick(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("controller: tick delta time %v: %w", dt, ErrInvalidArgument)
	}
	c.ticks++

	var intent input.Intent
	if c.input != nil {
		intent = c.input.Poll()
	}
	c.look.Apply(intent.Look, dt)

	origin := c.body.Position().Add(common.Up.Mul(c.cfg.Hover.Radius))
	probe := c.probe.Cast(origin, c.cfg.Hover.DetectionHeight, c.body)
	c.lastProbe = probe

	c.updateGrounded(probe.HasHit)

	// A jump that will be honoured disarms hover before hover runs, so the
	// two never act on the body in the same tick.
	jumpNow := intent.Jump && c.jumps.CanJump()
	if jumpNow {
		c.hover.DisableRange(c.body)
	} else if !c.hover.InRange() && probe.HasHit && c.body.Velocity()[1] <= 0 {
		c.reacquireGround()
	}

	f, err := c.hover.Update(c.body, probe, dt)
	if err != nil {
		c.log.WithError(err).Warn("hover force skipped")
	}
	c.lastForce = f

	if jumpNow {
		c.jump()
	} else if intent.Jump {
		c.log.Debug("jump ignored, budget empty")
	}

	dir := c.moveDirection(intent)
	if dir.Len() > moveDeadzone {
		c.loco.ApplyMovement(c.body, dir, intent.Sprint, dt)
	} else {
		c.loco.Stop(c.body, dt)
	}
	return nil
}

func (c *Controller) updateGrounded(hit bool) {
	c.wasGrounded = c.grounded
	c.grounded = hit

	switch {
	case c.grounded && !c.wasGrounded:
		c.jumps.ResetOnGroundedEdge()
		c.loco.SetGroundMode(c.body)
		c.hover.ResetRange()
		c.log.WithField("jumps", c.jumps.Budget()).Debug("entered grounded")
		if c.events.OnEnteredGrounded != nil {
			c.events.OnEnteredGrounded()
		}
	case !c.grounded && c.wasGrounded:
		c.loco.SetAirMode(c.body)
		c.log.Debug("exited grounded")
		if c.events.OnExitedGrounded != nil {
			c.events.OnExitedGrounded()
		}
	}
}

// reacquireGround re-arms hover once the body falls back into probe range
// after a jump that did not leave it.
func (c *Controller) reacquireGround() {
	c.hover.ResetRange()
	if c.grounded && c.loco.Mode() != ModeGround {
		c.loco.SetGroundMode(c.body)
	}
	c.log.Debug("hover re-armed")
}

func (c *Controller) jump() {
	c.loco.SetAirMode(c.body)
	ApplyJump(c.body, c.cfg.Jump.Speed)
	if err := c.jumps.Consume(); err != nil {
		c.log.WithError(err).Error("jump consumed without budget")
		return
	}
	c.log.WithField("remaining", c.jumps.Budget()).Debug("jumped")
	if c.events.OnJumped != nil {
		c.events.OnJumped(c.jumps.Budget())
	}
}

func (c *Controller) moveDirection(intent input.Intent) mgl64.Vec3 {
	if common.NearZero(intent.Move, moveDeadzone) {
		return mgl64.Vec3{}
	}
	if c.cfg.Locomotion.CameraRelative {
		return c.look.Direction(intent.Move)
	}
	return mgl64.Vec3{intent.Move[0], 0, intent.Move[1]}
}

// Reset clears the force law memory and re-arms hover. The jump budget and
// grounded state are left alone.
func (c *Controller) Reset() {
	c.hover.ResetLaw()
	c.hover.ResetRange()
	c.hover.restoreGravity(c.body)
}

// Reconfigure swaps in a new config, keeping grounded state, jump budget
// (trimmed to the new maximum) and locomotion mode. Force law memory starts
// fresh.
func (c *Controller) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.hover.restoreGravity(c.body)

	inRange := c.hover.InRange()
	c.cfg = cfg
	c.probe = NewProbe(c.world, cfg.Hover.Radius)
	c.hover = NewHover(cfg.Hover)
	if !inRange {
		c.hover.DisableRange(c.body)
	}

	mode := c.loco.Mode()
	c.loco = NewLocomotion(cfg.Locomotion)
	if mode == ModeGround {
		c.loco.SetGroundMode(c.body)
	} else {
		c.loco.SetAirMode(c.body)
	}

	c.jumps.setMax(cfg.Jump.MaxJumps)

	yaw, pitch := c.look.yaw, c.look.pitch
	c.look = NewLook(cfg.Look)
	c.look.yaw = yaw
	c.look.pitch = common.Clamp(pitch, -cfg.Look.ClampAngle, cfg.Look.ClampAngle)

	c.log.WithField("law", cfg.Hover.Law).Info("reconfigured")
	return nil
}
