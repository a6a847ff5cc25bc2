package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/distill/chem"
	"github.com/sarchlab/distill/fluid"
	"github.com/sarchlab/distill/recipe"
	"github.com/sarchlab/distill/tower"
)

// A Scenario describes a starting world and how long to run it.
type Scenario struct {
	Name   string      `yaml:"name"`
	Ticks  int         `yaml:"ticks"`
	Blocks []BlockSpec `yaml:"blocks"`
	Fills  []FillSpec  `yaml:"fills,omitempty"`
}

// BlockSpec places one block, or a column of Count bubble caps.
type BlockSpec struct {
	Kind     string           `yaml:"kind"`
	Pos      tower.Pos        `yaml:"pos"`
	Count    int              `yaml:"count,omitempty"`
	Heat     recipe.HeatLevel `yaml:"heat,omitempty"`
	Material string           `yaml:"material,omitempty"`
}

// FillSpec pours fluid into the bubble cap at Pos.
type FillSpec struct {
	Pos     tower.Pos          `yaml:"pos"`
	Fluid   string             `yaml:"fluid"`
	Amount  int                `yaml:"amount"`
	Mixture map[string]float64 `yaml:"mixture,omitempty"`
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (Scenario, error) {
	var s Scenario

	b, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}

	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Validate checks the scenario without building it.
func (s Scenario) Validate() error {
	if s.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", s.Ticks)
	}

	for i, b := range s.Blocks {
		switch b.Kind {
		case KindBubbleCap, KindBurner, KindSolid:
		default:
			return fmt.Errorf("block %d: unknown kind %q", i, b.Kind)
		}

		if b.Count < 0 {
			return fmt.Errorf("block %d: count must not be negative", i)
		}
	}

	for i, f := range s.Fills {
		if f.Amount <= 0 || (f.Fluid == "" && f.Mixture == nil) {
			return fmt.Errorf("fill %d: needs a fluid and a positive amount", i)
		}

		if f.Mixture != nil && f.Fluid != "" && f.Fluid != fluid.MixtureFluid {
			return fmt.Errorf("fill %d: a mixture must be poured as %q, not %q",
				i, fluid.MixtureFluid, f.Fluid)
		}
	}

	return nil
}

// Apply places the scenario's blocks and fluids into the world.
func (w *World) Apply(s Scenario, reg chem.Registry) error {
	if err := s.Validate(); err != nil {
		return err
	}

	for _, b := range s.Blocks {
		if err := w.applyBlock(b); err != nil {
			return err
		}
	}

	for _, f := range s.Fills {
		stack := fluid.NewStack(f.Fluid, f.Amount)

		if f.Mixture != nil {
			mix, err := chem.MixtureFromConcentrations(reg, f.Mixture)
			if err != nil {
				return fmt.Errorf("fill at %s: %w", f.Pos, err)
			}

			stack = fluid.NewMixtureStack(mix, f.Amount)
		}

		if _, err := w.Fill(f.Pos, stack); err != nil {
			return err
		}
	}

	return nil
}

func (w *World) applyBlock(b BlockSpec) error {
	switch b.Kind {
	case KindBurner:
		return w.PlaceBurner(b.Pos, b.Heat)
	case KindSolid:
		return w.PlaceSolid(b.Pos, b.Material)
	case KindBubbleCap:
		for i := 0; i < max(b.Count, 1); i++ {
			if _, err := w.PlaceBubbleCap(b.Pos.Above(i)); err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("unknown block kind %q", b.Kind)
	}
}
