package recipe

import (
	"fmt"
	"strings"
)

// HeatLevel is how hot the block under a tower burns. Levels are ordered.
type HeatLevel int

// Heat levels from coldest to hottest.
const (
	HeatNone HeatLevel = iota
	HeatSmouldering
	HeatFading
	HeatKindled
	HeatSeething
)

var heatLevelNames = []string{"none", "smouldering", "fading", "kindled", "seething"}

func (h HeatLevel) String() string {
	if h < HeatNone || h > HeatSeething {
		return fmt.Sprintf("HeatLevel(%d)", int(h))
	}

	return heatLevelNames[h]
}

// Satisfies tells if this level is at least the required level.
func (h HeatLevel) Satisfies(required HeatLevel) bool {
	return h >= required
}

// ParseHeatLevel reads a heat level by name, ignoring case.
func ParseHeatLevel(s string) (HeatLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range heatLevelNames {
		if n == name {
			return HeatLevel(i), nil
		}
	}

	return HeatNone, fmt.Errorf("unknown heat level %q", s)
}

// MarshalText writes the level name.
func (h HeatLevel) MarshalText() ([]byte, error) {
	if h < HeatNone || h > HeatSeething {
		return nil, fmt.Errorf("invalid heat level %d", int(h))
	}

	return []byte(h.String()), nil
}

// UnmarshalText reads the level name.
func (h *HeatLevel) UnmarshalText(text []byte) error {
	level, err := ParseHeatLevel(string(text))
	if err != nil {
		return err
	}

	*h = level

	return nil
}
