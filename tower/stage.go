package tower

import (
	"github.com/sarchlab/distill/fluid"
	"github.com/sarchlab/distill/recipe"
)

// A Tank is bounded fluid storage that can simulate an operation before
// doing it.
type Tank interface {
	Fill(stack fluid.Stack, simulate bool) int
	Drain(amount int, simulate bool) fluid.Stack
	Fluid() fluid.Stack
}

// A Stage is one unit of a tower. The tower tracks membership only; the stage
// owns its storage.
type Stage interface {
	// Tank is the visible tank. The controller's tank holds the input.
	Tank() Tank

	// InternalTank receives the fractions produced by the controller.
	InternalTank() Tank

	// SetTicksToFill delays moving fluid from the internal tank to the
	// visible tank.
	SetTicksToFill(ticks int)

	// JoinTower is called when the stage becomes a member of t.
	JoinTower(t *Tower)

	// NotifyChanged is called on the controller whenever membership changes.
	NotifyChanged()

	// NotifyDistilled is called on the controller after a committed transfer
	// with the input that was drained.
	NotifyDistilled(drained fluid.Stack)

	// Attached tells if the stage still lives in an environment.
	Attached() bool
}

// StageLookup finds the stage at a position, if the unit there is one.
type StageLookup func(pos Pos) (Stage, bool)

// HeatProbe returns the heat level at a position.
type HeatProbe func(pos Pos) recipe.HeatLevel
