// Package sim assembles hover controllers, their input drivers and a Chipmunk
// space into a steppable sandbox.
package sim

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hoverkit/controller"
	"github.com/milk9111/hoverkit/input"
	"github.com/milk9111/hoverkit/input/keyboard"
	"github.com/milk9111/hoverkit/input/script"
	"github.com/milk9111/hoverkit/physics/cpworld"
	"github.com/milk9111/hoverkit/tuning"
	"github.com/sirupsen/logrus"
)

// Character is one controlled body and whatever drives it.
type Character struct {
	Name       string
	Tuning     string
	Body       *cpworld.Body
	Controller *controller.Controller
	Latch      *input.Latch
	Keyboard   *keyboard.Keyboard
	Script     *script.Script
	Spawn      mgl64.Vec3
	scriptName string

	// modification time of the on-disk tuning file last applied
	tuningMod time.Time

	Landings int
	Jumps    int
	Respawns int
}

type Options struct {
	Logger *logrus.Logger
	// Keyboard enables keyboard-driven characters. Headless runs leave them
	// idle.
	Keyboard bool
}

// Sandbox owns the space and every character in it. It is driven from one
// goroutine.
type Sandbox struct {
	scene      tuning.SceneSpec
	space      *cpworld.Space
	characters []*Character
	platforms  []*cpworld.Body
	scheduler  *Scheduler
	ticks      uint64
	log        *logrus.Logger
}

func NewSandbox(scene tuning.SceneSpec, opts Options) (*Sandbox, error) {
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	sb := &Sandbox{
		scene: scene,
		space: cpworld.NewSpace(scene.Gravity),
		log:   logger,
	}
	for _, g := range scene.Ground {
		sb.space.AddGround(tuning.Vec(g.From), tuning.Vec(g.To), g.Radius)
	}
	for _, p := range scene.Platforms {
		sb.platforms = append(sb.platforms, sb.space.AddPlatform(tuning.Vec(p.Center), p.Width, p.Height, p.Mass))
	}
	for _, spec := range scene.Characters {
		c, err := sb.addCharacter(spec, opts)
		if err != nil {
			return nil, err
		}
		sb.characters = append(sb.characters, c)
	}

	sb.scheduler = NewScheduler(
		SystemFunc(sb.updateScripts),
		SystemFunc(sb.updateControllers),
		SystemFunc(sb.updatePhysics),
		SystemFunc(sb.respawnFallen),
	)

	logger.WithFields(logrus.Fields{
		"scene":      scene.Name,
		"characters": len(sb.characters),
		"platforms":  len(sb.platforms),
		"systems":    len(sb.scheduler.Systems()),
	}).Info("sandbox ready")
	return sb, nil
}

func (sb *Sandbox) addCharacter(spec tuning.CharacterSpec, opts Options) (*Character, error) {
	name := spec.Name
	if name == "" {
		name = fmt.Sprintf("character-%d", len(sb.characters))
	}
	tuningName := spec.Tuning
	if tuningName == "" {
		tuningName = "default.yaml"
	}
	cfg, err := tuning.LoadController(tuningName)
	if err != nil {
		return nil, fmt.Errorf("sim: character %s: %w", name, err)
	}

	c := &Character{
		Name:   name,
		Tuning: tuningName,
		Body:   sb.space.AddCharacter(tuning.Vec(spec.Spawn), spec.Width, spec.Height, spec.Mass),
		Latch:  input.NewLatch(),
		Spawn:  tuning.Vec(spec.Spawn),
	}
	c.tuningMod, _ = tuning.ModTime(tuningName)

	switch spec.Input {
	case tuning.InputKeyboard:
		if opts.Keyboard {
			c.Keyboard = keyboard.New(c.Latch)
		}
	case tuning.InputScript:
		if err := c.loadScript(spec.Script); err != nil {
			return nil, fmt.Errorf("sim: character %s: %w", name, err)
		}
	}

	events := controller.Events{
		OnEnteredGrounded: func() { c.Landings++ },
		OnJumped:          func(int) { c.Jumps++ },
	}
	ctrl, err := controller.New(cfg, c.Body, sb.space, c.Latch, controller.Options{
		Name:   name,
		Logger: sb.log,
		Events: events,
	})
	if err != nil {
		return nil, fmt.Errorf("sim: character %s: %w", name, err)
	}
	c.Controller = ctrl
	return c, nil
}

func (c *Character) loadScript(name string) error {
	src, err := tuning.LoadScript(name)
	if err != nil {
		return fmt.Errorf("load script %s: %w", name, err)
	}
	s, err := script.Load(name, src, c.Latch)
	if err != nil {
		return err
	}
	c.Script = s
	c.scriptName = name
	return nil
}

func (sb *Sandbox) Space() *cpworld.Space      { return sb.space }
func (sb *Sandbox) Characters() []*Character   { return sb.characters }
func (sb *Sandbox) Platforms() []*cpworld.Body { return sb.platforms }
func (sb *Sandbox) Scene() tuning.SceneSpec    { return sb.scene }
func (sb *Sandbox) Ticks() uint64              { return sb.ticks }

func (sb *Sandbox) Character(name string) *Character {
	for _, c := range sb.characters {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// PollDevices reads keyboard state into the latches. Call it once per frame
// from the window loop, not per tick.
func (sb *Sandbox) PollDevices() {
	for _, c := range sb.characters {
		if c.Keyboard != nil {
			c.Keyboard.Update()
		}
	}
}

// Step runs one tick: scripts, controllers, the physics step, then respawns.
func (sb *Sandbox) Step(dt float64) error {
	if err := sb.scheduler.Update(dt); err != nil {
		return err
	}
	sb.ticks++
	return nil
}

func (sb *Sandbox) updateScripts(float64) error {
	var errs []error
	for _, c := range sb.characters {
		if c.Script == nil {
			continue
		}
		st := c.Controller.State()
		frame := script.Frame{Tick: sb.ticks, Grounded: st.Grounded, Height: st.Probe.HitDistance}
		if err := c.Script.Run(frame); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (sb *Sandbox) updateControllers(dt float64) error {
	var errs []error
	for _, c := range sb.characters {
		if err := c.Controller.Tick(dt); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (sb *Sandbox) updatePhysics(dt float64) error {
	sb.space.Step(dt)
	return nil
}

// respawnFallen puts characters that dropped below the fall limit back at
// their spawn point, at rest, with hover re-armed.
func (sb *Sandbox) respawnFallen(float64) error {
	for _, c := range sb.characters {
		if c.Body.Position()[1] >= sb.scene.FallLimit {
			continue
		}
		c.Body.SetPosition(c.Spawn)
		c.Body.SetVelocity(mgl64.Vec3{})
		c.Controller.Reset()
		c.Respawns++
		sb.log.WithFields(logrus.Fields{"character": c.Name, "respawns": c.Respawns}).Info("respawned")
	}
	return nil
}

// Reload re-reads a changed tuning or script file and applies it to every
// character that uses it. Tuning files whose modification time has not moved
// since the last apply are skipped. Controllers keep their state; force law
// memory restarts.
func (sb *Sandbox) Reload(path string) error {
	base := filepath.Base(path)
	var errs []error
	for _, c := range sb.characters {
		switch base {
		case filepath.Base(c.Tuning):
			mod, onDisk := tuning.ModTime(c.Tuning)
			if onDisk && mod.Equal(c.tuningMod) {
				continue
			}
			cfg, err := tuning.LoadController(c.Tuning)
			if err == nil {
				err = c.Controller.Reconfigure(cfg)
			}
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
				continue
			}
			c.tuningMod = mod
			sb.log.WithFields(logrus.Fields{"character": c.Name, "file": base}).Info("tuning reloaded")
		case filepath.Base(c.scriptName):
			if c.Script == nil {
				continue
			}
			if err := c.loadScript(c.scriptName); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
				continue
			}
			sb.log.WithFields(logrus.Fields{"character": c.Name, "file": base}).Info("script reloaded")
		}
	}
	return errors.Join(errs...)
}

// Fields is a telemetry snapshot for structured logs.
func (c *Character) Fields() logrus.Fields {
	st := c.Controller.State()
	pos, vel := c.Body.Position(), c.Body.Velocity()
	return logrus.Fields{
		"character": c.Name,
		"x":         pos[0],
		"y":         pos[1],
		"vx":        vel[0],
		"vy":        vel[1],
		"height":    st.Probe.HitDistance,
		"grounded":  st.Grounded,
		"hover":     st.Hover.String(),
		"mode":      st.Mode.String(),
		"jumps":     st.JumpBudget,
		"force":     st.HoverForce,
	}
}

// DrainReloads applies every pending watcher event without blocking.
func (sb *Sandbox) DrainReloads(w *tuning.Watcher) {
	if w == nil {
		return
	}
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			if err := sb.Reload(path); err != nil {
				sb.log.WithError(err).WithField("file", path).Warn("reload rejected")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			sb.log.WithError(err).Warn("tuning watcher")
		default:
			return
		}
	}
}
