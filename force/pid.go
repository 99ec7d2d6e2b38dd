package force

import (
	"fmt"

	"github.com/milk9111/hoverkit/common"
)

// DerivativeMode selects what the D term differentiates.
type DerivativeMode int

const (
	// DerivativeVelocity uses the negated rate of change of the measured
	// value. It does not kick when the target jumps.
	DerivativeVelocity DerivativeMode = iota
	// DerivativeErrorRate uses the rate of change of the error.
	DerivativeErrorRate
)

func (m DerivativeMode) String() string {
	if m == DerivativeErrorRate {
		return "error_rate"
	}
	return "velocity"
}

func ParseDerivativeMode(s string) (DerivativeMode, bool) {
	switch s {
	case "velocity", "":
		return DerivativeVelocity, true
	case "error_rate":
		return DerivativeErrorRate, true
	default:
		return 0, false
	}
}

type PIDConfig struct {
	Kp                 float64
	Ki                 float64
	Kd                 float64
	IntegralSaturation float64
	Derivative         DerivativeMode
	OutputMin          float64
	OutputMax          float64
	Power              float64
}

// DefaultPIDConfig matches the normalised [-1, 1] output range scaled by power.
func DefaultPIDConfig() PIDConfig {
	return PIDConfig{
		Kp:                 1,
		Ki:                 0,
		Kd:                 0.2,
		IntegralSaturation: 1,
		Derivative:         DerivativeVelocity,
		OutputMin:          -1,
		OutputMax:          1,
		Power:              1,
	}
}

// PIDState is the memory carried between updates.
type PIDState struct {
	Integral              float64
	PreviousError         float64
	PreviousValue         float64
	DerivativeInitialized bool
}

type PID struct {
	cfg   PIDConfig
	state PIDState
}

func NewPID(cfg PIDConfig) *PID {
	return &PID{cfg: cfg}
}

func (p *PID) Config() PIDConfig {
	return p.cfg
}

func (p *PID) State() PIDState {
	return p.state
}

// Reset clears integral, history and the derivative warm-up flag.
func (p *PID) Reset() {
	p.state = PIDState{}
}

// ResetDerivative forgets the previous sample but keeps the integral.
func (p *PID) ResetDerivative() {
	p.state.PreviousError = 0
	p.state.PreviousValue = 0
	p.state.DerivativeInitialized = false
}

// Observe records a sample without producing output or integrating, for ticks
// where the loop is not driving the plant.
func (p *PID) Observe(target, current float64) {
	p.state.PreviousError = target - current
	p.state.PreviousValue = current
	p.state.DerivativeInitialized = true
}

// Output advances the controller by dt and returns
// clamp(P+I+D, OutputMin, OutputMax) * Power.
//
// The derivative term is zero on the first update after construction or
// Reset, since there is no previous sample to differentiate against.
func (p *PID) Output(dt, target, current float64) (float64, error) {
	if dt <= 0 {
		return 0, fmt.Errorf("force: pid delta time %v: %w", dt, ErrInvalidArgument)
	}

	err := target - current
	proportional := p.cfg.Kp * err

	sat := p.cfg.IntegralSaturation
	p.state.Integral = common.Clamp(p.state.Integral+err*dt, -sat, sat)
	integral := p.cfg.Ki * p.state.Integral

	errorRate := (err - p.state.PreviousError) / dt
	valueRate := (current - p.state.PreviousValue) / dt
	p.state.PreviousError = err
	p.state.PreviousValue = current

	var measure float64
	if p.state.DerivativeInitialized {
		if p.cfg.Derivative == DerivativeVelocity {
			measure = -valueRate
		} else {
			measure = errorRate
		}
	} else {
		p.state.DerivativeInitialized = true
	}
	derivative := p.cfg.Kd * measure

	return common.Clamp(proportional+integral+derivative, p.cfg.OutputMin, p.cfg.OutputMax) * p.cfg.Power, nil
}
