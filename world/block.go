package world

import (
	"errors"

	"github.com/sarchlab/distill/bubblecap"
	"github.com/sarchlab/distill/recipe"
)

var (
	// ErrOccupied is returned when placing a block where one already is.
	ErrOccupied = errors.New("position is occupied")

	// ErrNothingThere is returned when removing from an empty position.
	ErrNothingThere = errors.New("no block at position")
)

// Block kinds.
const (
	KindBubbleCap = "bubble_cap"
	KindBurner    = "burner"
	KindSolid     = "solid"
)

// A Block occupies one position of the world.
type Block interface {
	Kind() string
}

// A Burner heats the position above it.
type Burner struct {
	Level recipe.HeatLevel
}

// Kind returns KindBurner.
func (Burner) Kind() string {
	return KindBurner
}

// A Solid is an inert block.
type Solid struct {
	Material string
}

// Kind returns KindSolid.
func (Solid) Kind() string {
	return KindSolid
}

type capBlock struct {
	*bubblecap.BubbleCap
}

func (capBlock) Kind() string {
	return KindBubbleCap
}
