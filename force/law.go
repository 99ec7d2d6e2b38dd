// Package force implements the continuous controllers that turn ride-height
// error into a hover force: a damped spring and a PID loop.
package force

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidArgument = errors.New("force: invalid argument")

// Sample is everything a Law may read for one tick.
type Sample struct {
	DeltaTime       float64
	Distance        float64
	RideHeight      float64
	SelfVelocity    mgl64.Vec3
	SurfaceVelocity mgl64.Vec3
	Down            mgl64.Vec3
}

// Law maps a Sample to a signed force magnitude along Sample.Down: positive
// pulls the body toward the surface, negative pushes it away.
type Law interface {
	Compute(in Sample) (float64, error)
	// Observe records a sample on a tick where no force is applied, so
	// rate terms stay continuous across the gap.
	Observe(in Sample)
	// ResetDerivative drops the rate history. The next Compute has no
	// rate term.
	ResetDerivative()
	// Reset clears any memory the law carries between ticks.
	Reset()
}

// Kind names a Law variant in configuration.
type Kind int

const (
	KindSpring Kind = iota
	KindPID
)

func (k Kind) String() string {
	switch k {
	case KindSpring:
		return "spring"
	case KindPID:
		return "pid"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "spring", "":
		return KindSpring, true
	case "pid":
		return KindPID, true
	default:
		return 0, false
	}
}

// New builds the Law for kind. Each call returns a law with fresh memory.
func New(kind Kind, spring SpringConfig, pid PIDConfig) Law {
	if kind == KindPID {
		return &pidLaw{pid: NewPID(pid)}
	}
	return NewSpring(spring)
}

// pidLaw drives the PID with target = ride height and current = distance.
// The PID output is an upward demand, so it is negated onto down.
type pidLaw struct {
	pid *PID
}

func (l *pidLaw) Compute(in Sample) (float64, error) {
	out, err := l.pid.Output(in.DeltaTime, in.RideHeight, in.Distance)
	if err != nil {
		return 0, err
	}
	return -out, nil
}

func (l *pidLaw) Observe(in Sample) {
	l.pid.Observe(in.RideHeight, in.Distance)
}

func (l *pidLaw) ResetDerivative() {
	l.pid.ResetDerivative()
}

func (l *pidLaw) Reset() {
	l.pid.Reset()
}

// PIDOf returns the wrapped controller, or nil when law is not PID backed.
func PIDOf(law Law) *PID {
	if l, ok := law.(*pidLaw); ok {
		return l.pid
	}
	return nil
}
