package tuning

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// InputKind selects what drives a character.
type InputKind string

const (
	InputKeyboard InputKind = "keyboard"
	InputScript   InputKind = "script"
	InputNone     InputKind = "none"
)

type SegmentSpec struct {
	From   [2]float64 `yaml:"from"`
	To     [2]float64 `yaml:"to"`
	Radius float64    `yaml:"radius"`
}

type PlatformSpec struct {
	Center [2]float64 `yaml:"center"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Mass   float64    `yaml:"mass"`
}

type CharacterSpec struct {
	Name   string     `yaml:"name"`
	Tuning string     `yaml:"tuning"`
	Spawn  [2]float64 `yaml:"spawn"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Mass   float64    `yaml:"mass"`
	Input  InputKind  `yaml:"input"`
	Script string     `yaml:"script"`
}

// SceneSpec lays out a sandbox: static ground, see-saw platforms and the
// hovering characters.
type SceneSpec struct {
	Name       string          `yaml:"name"`
	Gravity    float64         `yaml:"gravity"`
	TickRate   float64         `yaml:"tick_rate"`
	// FallLimit is the height below which characters respawn.
	FallLimit  float64         `yaml:"fall_limit"`
	Ground     []SegmentSpec   `yaml:"ground"`
	Platforms  []PlatformSpec  `yaml:"platforms"`
	Characters []CharacterSpec `yaml:"characters"`
}

func DefaultSceneSpec() SceneSpec {
	return SceneSpec{Name: "scene", Gravity: 9.81, TickRate: 60, FallLimit: -20}
}

func LoadScene(name string) (SceneSpec, error) {
	spec, err := LoadSpec(name, DefaultSceneSpec())
	if err != nil {
		return spec, err
	}
	return spec, spec.Validate()
}

func (s SceneSpec) Validate() error {
	if s.TickRate <= 0 {
		return fmt.Errorf("tuning: scene %s: tick rate %v must be positive", s.Name, s.TickRate)
	}
	for i, p := range s.Platforms {
		if p.Width <= 0 || p.Height <= 0 || p.Mass <= 0 {
			return fmt.Errorf("tuning: scene %s: platform %d needs positive size and mass", s.Name, i)
		}
	}
	for i, c := range s.Characters {
		if c.Width <= 0 || c.Height <= 0 || c.Mass <= 0 {
			return fmt.Errorf("tuning: scene %s: character %d (%s) needs positive size and mass", s.Name, i, c.Name)
		}
		if c.Spawn[1] <= s.FallLimit {
			return fmt.Errorf("tuning: scene %s: character %s spawns below the fall limit %v", s.Name, c.Name, s.FallLimit)
		}
		switch c.Input {
		case InputKeyboard, InputNone, "":
		case InputScript:
			if c.Script == "" {
				return fmt.Errorf("tuning: scene %s: character %s uses script input without a script", s.Name, c.Name)
			}
		default:
			return fmt.Errorf("tuning: scene %s: character %s has unknown input %q", s.Name, c.Name, c.Input)
		}
	}
	return nil
}

// Vec lifts a side-view coordinate pair into world space.
func Vec(p [2]float64) mgl64.Vec3 {
	return mgl64.Vec3{p[0], p[1], 0}
}
