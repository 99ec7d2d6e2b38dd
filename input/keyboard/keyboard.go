// Package keyboard polls ebiten keys and the first standard gamepad and turns
// state changes into input events.
package keyboard

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/hoverkit/input"
)

const stickDeadzone = 0.2

// Sample is the raw device state for one frame.
type Sample struct {
	Move   mgl64.Vec2
	Jump   bool
	Sprint bool
	Look   mgl64.Vec2
}

// Sink receives events; *input.Latch satisfies it.
type Sink interface {
	Push(ev input.Event)
}

// Keyboard forwards only changes: a held key produces one event, not one per
// frame.
type Keyboard struct {
	sink Sink

	move   mgl64.Vec2
	sprint bool

	cursorX, cursorY int
	cursorValid      bool
	// LookScale converts pixels of mouse travel into look delta.
	LookScale float64
}

func New(sink Sink) *Keyboard {
	return &Keyboard{sink: sink, LookScale: 0.1}
}

// Update reads the devices and forwards the changes. Call it once per ebiten
// Update.
func (k *Keyboard) Update() {
	k.Apply(k.read())
}

// Apply diffs s against the previous sample and pushes the resulting events.
func (k *Keyboard) Apply(s Sample) {
	if k == nil || k.sink == nil {
		return
	}

	if s.Move != k.move {
		if s.Move == (mgl64.Vec2{}) {
			k.sink.Push(input.Event{Kind: input.MoveCanceled})
		} else {
			k.sink.Push(input.Move(s.Move[0], s.Move[1]))
		}
		k.move = s.Move
	}

	if s.Sprint != k.sprint {
		if s.Sprint {
			k.sink.Push(input.Event{Kind: input.SprintPressed})
		} else {
			k.sink.Push(input.Event{Kind: input.SprintReleased})
		}
		k.sprint = s.Sprint
	}

	if s.Jump {
		k.sink.Push(input.Event{Kind: input.JumpPressed})
	}

	if s.Look != (mgl64.Vec2{}) {
		k.sink.Push(input.Look(s.Look[0], s.Look[1]))
	}
}

func (k *Keyboard) read() Sample {
	var s Sample

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		s.Move[0] -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		s.Move[0] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		s.Move[1] += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		s.Move[1] -= 1
	}
	s.Jump = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	s.Sprint = ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	x, y := ebiten.CursorPosition()
	if k.cursorValid && ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		s.Look = mgl64.Vec2{float64(x-k.cursorX) * k.LookScale, float64(k.cursorY-y) * k.LookScale}
	}
	k.cursorX, k.cursorY, k.cursorValid = x, y, true

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			s.Move = mgl64.Vec2{lx, -ly}
		}

		s.Jump = s.Jump || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		s.Sprint = s.Sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)

		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			s.Look = s.Look.Add(mgl64.Vec2{rx, -ry})
		}
	}
	return s
}
