package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/distill/tower"
)

// Tuning holds the numbers that shape how towers run.
type Tuning struct {
	ProcessInterval int `yaml:"process_interval" mapstructure:"process_interval"`
	TankCapacity    int `yaml:"tank_capacity" mapstructure:"tank_capacity"`
	TransferRate    int `yaml:"transfer_rate" mapstructure:"transfer_rate"`
	TickLimit       int `yaml:"tick_limit" mapstructure:"tick_limit"`
}

// DefaultTuning returns the tuning used when no file overrides it.
func DefaultTuning() Tuning {
	return Tuning{
		ProcessInterval: tower.DefaultProcessInterval,
		TankCapacity:    tower.DefaultTankCapacity,
		TransferRate:    tower.DefaultTransferRate,
		TickLimit:       100000,
	}
}

// LoadTuning reads a tuning file on top of the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()

	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}

	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}

	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}

	return t, nil
}

// Validate checks that every value is usable.
func (t Tuning) Validate() error {
	switch {
	case t.ProcessInterval <= 0:
		return fmt.Errorf("process_interval must be positive, got %d",
			t.ProcessInterval)
	case t.TankCapacity <= 0:
		return fmt.Errorf("tank_capacity must be positive, got %d",
			t.TankCapacity)
	case t.TransferRate <= 0:
		return fmt.Errorf("transfer_rate must be positive, got %d",
			t.TransferRate)
	case t.TickLimit < 0:
		return fmt.Errorf("tick_limit must not be negative, got %d",
			t.TickLimit)
	}

	return nil
}
