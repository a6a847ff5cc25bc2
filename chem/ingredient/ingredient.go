// Package ingredient provides the fluid requirements recipes place on their
// input: a plain fluid, or a mixture that holds a charge balanced salt.
package ingredient

import (
	"errors"
	"fmt"

	"github.com/sarchlab/distill/fluid"
)

var (
	// ErrMissingIon is returned when an authored salt record lacks its
	// cation or its anion.
	ErrMissingIon = errors.New("salt ingredients must declare a cation and anion")

	// ErrCationCharge is returned when the declared cation is not positively
	// charged.
	ErrCationCharge = errors.New("cations must be positively charged")

	// ErrAnionCharge is returned when the declared anion is not negatively
	// charged.
	ErrAnionCharge = errors.New("anions must be negatively charged")

	// ErrUnknownMolecule is returned when an authored record names a molecule
	// the registry does not know.
	ErrUnknownMolecule = errors.New("unknown molecule")

	// ErrConcentration is returned for a non-positive required concentration.
	ErrConcentration = errors.New("concentration must be positive")

	// ErrMalformedRecord is returned when an authored record does not match
	// the expected shape.
	ErrMalformedRecord = errors.New("malformed ingredient record")
)

// UnknownMoleculeLabel is shown in place of a salt name when one of its ions
// cannot be resolved.
const UnknownMoleculeLabel = "Unknown Molecule"

// DefaultAmount is the input amount used when a record does not give one.
const DefaultAmount = 1000

// An Ingredient is a requirement on a fluid stack.
type Ingredient interface {
	// Test tells if the stack is the kind of fluid required. The amount is
	// checked separately against RequiredAmount.
	Test(stack fluid.Stack) bool

	// RequiredAmount returns the amount consumed per use.
	RequiredAmount() int

	// Describe returns a human readable summary of the requirement.
	Describe() string
}

// FluidIngredient requires a plain fluid by id.
type FluidIngredient struct {
	Fluid  string
	Amount int
}

// Test returns true if the stack is the required fluid.
func (i FluidIngredient) Test(stack fluid.Stack) bool {
	return !stack.IsEmpty() && stack.Fluid == i.Fluid
}

// RequiredAmount returns the amount consumed per use.
func (i FluidIngredient) RequiredAmount() int {
	return i.Amount
}

// Describe returns the fluid id and amount.
func (i FluidIngredient) Describe() string {
	return fmt.Sprintf("%d x %s", i.Amount, i.Fluid)
}
