// Package script drives a controller from a tengo script. The script body runs
// once per tick and issues intent through the functions it is given; every
// call becomes an input event.
package script

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/hoverkit/input"
)

// Sink receives events; *input.Latch satisfies it.
type Sink interface {
	Push(ev input.Event)
}

// Frame is what the script can read about its controller for one run.
type Frame struct {
	Tick     uint64
	Grounded bool
	// Height is the probe distance to the surface, or the probe length on a
	// miss.
	Height float64
}

var ErrNoSink = errors.New("script: nil sink")

// Script is a compiled driver. It is not safe for concurrent Run calls.
type Script struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	sink     Sink
}

// Load compiles src. name only labels errors.
func Load(name string, src []byte, sink Sink) (*Script, error) {
	if sink == nil {
		return nil, ErrNoSink
	}
	s := &Script{
		name:  name,
		state: &tengo.Map{Value: map[string]tengo.Object{}},
		sink:  sink,
	}

	ts := tengo.NewScript(src)
	ts.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	globals := map[string]any{
		"tick":     0,
		"grounded": false,
		"height":   0.0,
		"state":    s.state,
	}
	for k, v := range globals {
		if err := ts.Add(k, v); err != nil {
			return nil, fmt.Errorf("script %s: add %s: %w", name, k, err)
		}
	}
	for k, fn := range s.functions() {
		if err := ts.Add(k, fn); err != nil {
			return nil, fmt.Errorf("script %s: add %s: %w", name, k, err)
		}
	}

	compiled, err := ts.Compile()
	if err != nil {
		return nil, fmt.Errorf("script %s: compile: %w", name, err)
	}
	s.compiled = compiled
	return s, nil
}

func (s *Script) Name() string { return s.name }

// Run executes the script body once against f.
func (s *Script) Run(f Frame) error {
	if s == nil || s.compiled == nil {
		return fmt.Errorf("script: nil runtime")
	}
	if err := s.compiled.Set("tick", int64(f.Tick)); err != nil {
		return err
	}
	if err := s.compiled.Set("grounded", f.Grounded); err != nil {
		return err
	}
	if err := s.compiled.Set("height", f.Height); err != nil {
		return err
	}
	if err := s.compiled.Set("state", s.state); err != nil {
		return err
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("script %s: tick %d: %w", s.name, f.Tick, err)
	}
	return nil
}

func (s *Script) functions() map[string]*tengo.UserFunction {
	return map[string]*tengo.UserFunction{
		"move": {Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 2 {
				return nil, tengo.ErrWrongNumArguments
			}
			x, ok := tengo.ToFloat64(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "float", Found: args[0].TypeName()}
			}
			y, ok := tengo.ToFloat64(args[1])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "float", Found: args[1].TypeName()}
			}
			s.sink.Push(input.Move(x, y))
			return tengo.TrueValue, nil
		}},
		"stop": {Name: "stop", Value: func(args ...tengo.Object) (tengo.Object, error) {
			s.sink.Push(input.Event{Kind: input.MoveCanceled})
			return tengo.TrueValue, nil
		}},
		"jump": {Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
			s.sink.Push(input.Event{Kind: input.JumpPressed})
			return tengo.TrueValue, nil
		}},
		"sprint": {Name: "sprint", Value: func(args ...tengo.Object) (tengo.Object, error) {
			on := true
			if len(args) > 0 {
				on = !args[0].IsFalsy()
			}
			if on {
				s.sink.Push(input.Event{Kind: input.SprintPressed})
			} else {
				s.sink.Push(input.Event{Kind: input.SprintReleased})
			}
			return tengo.TrueValue, nil
		}},
		"look": {Name: "look", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 2 {
				return nil, tengo.ErrWrongNumArguments
			}
			dx, ok := tengo.ToFloat64(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "dx", Expected: "float", Found: args[0].TypeName()}
			}
			dy, ok := tengo.ToFloat64(args[1])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "dy", Expected: "float", Found: args[1].TypeName()}
			}
			s.sink.Push(input.Look(dx, dy))
			return tengo.TrueValue, nil
		}},
	}
}
