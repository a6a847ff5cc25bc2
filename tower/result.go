package tower

import (
	"github.com/sarchlab/distill/fluid"
	"github.com/sarchlab/distill/recipe"
)

// Reason explains the outcome of a transfer attempt.
type Reason int

// Outcomes of a transfer attempt. Only Distilled means fluid moved.
const (
	Distilled Reason = iota
	NoRecipe
	TooShort
	Detached
	NotHot
	NotEnoughInput
	NoRoom
)

var reasonNames = map[Reason]string{
	Distilled:      "distilled",
	NoRecipe:       "no recipe",
	TooShort:       "too short",
	Detached:       "detached",
	NotHot:         "not hot enough",
	NotEnoughInput: "not enough input",
	NoRoom:         "no room",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}

	return "unknown"
}

// Result is the outcome of a transfer attempt. A failed attempt is not an
// error; the tower tries again after the next interval.
type Result struct {
	OK      bool
	Reason  Reason
	Recipe  *recipe.Distillation
	Drained fluid.Stack

	// Stage is the index of the stage that could not take its fraction when
	// Reason is NoRoom.
	Stage int
}

func rejected(reason Reason, r *recipe.Distillation) Result {
	return Result{Reason: reason, Recipe: r}
}
