// Package input turns discrete intent events into the snapshot a controller
// reads once per tick.
package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

type EventKind int

const (
	MoveChanged EventKind = iota + 1
	MoveCanceled
	JumpPressed
	SprintPressed
	SprintReleased
	LookChanged
)

func (k EventKind) String() string {
	switch k {
	case MoveChanged:
		return "move_changed"
	case MoveCanceled:
		return "move_canceled"
	case JumpPressed:
		return "jump_pressed"
	case SprintPressed:
		return "sprint_pressed"
	case SprintReleased:
		return "sprint_released"
	case LookChanged:
		return "look_changed"
	default:
		return "unknown"
	}
}

// Event is one discrete input. Axis carries the move axis for MoveChanged
// and the look delta for LookChanged.
type Event struct {
	Kind EventKind
	Axis mgl64.Vec2
}

func Move(x, y float64) Event  { return Event{Kind: MoveChanged, Axis: mgl64.Vec2{x, y}} }
func Look(dx, dy float64) Event { return Event{Kind: LookChanged, Axis: mgl64.Vec2{dx, dy}} }

// Intent is what a tick consumes.
type Intent struct {
	Move   mgl64.Vec2
	Sprint bool
	// Look is the look delta accumulated since the previous Poll.
	Look mgl64.Vec2
	// Jump is true when at least one JumpPressed arrived since the previous Poll.
	Jump bool
}

// Source is polled by the controller at the start of each tick.
type Source interface {
	Poll() Intent
}

// Latch is a Source fed by Push from any goroutine. The latest move and
// sprint values win, jump presses collapse into one, look deltas add up.
type Latch struct {
	mu     sync.Mutex
	move   mgl64.Vec2
	sprint bool
	look   mgl64.Vec2
	jump   bool
}

func NewLatch() *Latch {
	return &Latch{}
}

func (l *Latch) Push(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch ev.Kind {
	case MoveChanged:
		l.move = clampAxis(ev.Axis)
	case MoveCanceled:
		l.move = mgl64.Vec2{}
	case JumpPressed:
		l.jump = true
	case SprintPressed:
		l.sprint = true
	case SprintReleased:
		l.sprint = false
	case LookChanged:
		l.look = l.look.Add(ev.Axis)
	}
}

func (l *Latch) Poll() Intent {
	l.mu.Lock()
	defer l.mu.Unlock()

	in := Intent{
		Move:   l.move,
		Sprint: l.sprint,
		Look:   l.look,
		Jump:   l.jump,
	}
	l.jump = false
	l.look = mgl64.Vec2{}
	return in
}

// Reset drops all held intent, as when the owning controller is disabled.
func (l *Latch) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.move = mgl64.Vec2{}
	l.look = mgl64.Vec2{}
	l.sprint = false
	l.jump = false
}

func clampAxis(v mgl64.Vec2) mgl64.Vec2 {
	for i := range v {
		if v[i] > 1 {
			v[i] = 1
		} else if v[i] < -1 {
			v[i] = -1
		}
	}
	return v
}
