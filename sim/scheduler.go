package sim

import (
	"errors"
	"fmt"
)

// System is one stage of a tick.
type System interface {
	Update(dt float64) error
}

// SystemFunc adapts a function to System.
type SystemFunc func(dt float64) error

func (f SystemFunc) Update(dt float64) error { return f(dt) }

// Scheduler runs systems in insertion order. A failing system does not stop
// the ones after it; all errors are returned together.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(dt float64) error {
	var errs []error
	for i, system := range s.systems {
		if err := system.Update(dt); err != nil {
			errs = append(errs, fmt.Errorf("system %d (%T): %w", i, system, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
