package sim

import "fmt"

// DefaultMaxCatchUp bounds how many ticks one Advance may run after a stall.
const DefaultMaxCatchUp = 5

// Runner turns variable frame times into fixed ticks.
type Runner struct {
	step       float64
	maxCatchUp int
	acc        float64
	ticks      uint64
	dropped    uint64
}

func NewRunner(tickRate float64, maxCatchUp int) (*Runner, error) {
	if tickRate <= 0 {
		return nil, fmt.Errorf("sim: tick rate %v must be positive", tickRate)
	}
	if maxCatchUp <= 0 {
		maxCatchUp = DefaultMaxCatchUp
	}
	return &Runner{step: 1 / tickRate, maxCatchUp: maxCatchUp}, nil
}

// Step is the fixed tick length in seconds.
func (r *Runner) Step() float64 { return r.step }

func (r *Runner) Ticks() uint64 { return r.ticks }

// Dropped counts ticks discarded because a frame needed more than the
// catch-up limit.
func (r *Runner) Dropped() uint64 { return r.dropped }

// Alpha is the fraction of a tick left in the accumulator, for interpolated
// drawing.
func (r *Runner) Alpha() float64 { return r.acc / r.step }

// Advance adds frame seconds and runs tick for every whole step, at most
// maxCatchUp times. The leftover beyond the limit is dropped. It stops at the
// first tick error.
func (r *Runner) Advance(frame float64, tick func(dt float64) error) (int, error) {
	if frame > 0 {
		r.acc += frame
	}
	n := 0
	for r.acc >= r.step {
		if n == r.maxCatchUp {
			whole := uint64(r.acc / r.step)
			r.dropped += whole
			r.acc -= float64(whole) * r.step
			break
		}
		if err := tick(r.step); err != nil {
			return n, err
		}
		r.acc -= r.step
		r.ticks++
		n++
	}
	return n, nil
}
