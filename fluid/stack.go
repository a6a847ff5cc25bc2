// Package fluid provides fluid stacks and bounded tanks that can simulate a
// fill or a drain before doing it.
package fluid

import (
	"fmt"

	"github.com/sarchlab/distill/chem"
)

// MixtureFluid is the fluid id of stacks whose contents are described by a
// Mixture.
const MixtureFluid = "destroy:mixture"

// A Stack is an amount of one fluid. Mixture is only set for mixture fluids.
type Stack struct {
	Fluid   string
	Amount  int
	Mixture *chem.Mixture
}

// Empty returns the empty stack.
func Empty() Stack {
	return Stack{}
}

// NewStack creates a stack of a plain fluid.
func NewStack(fluid string, amount int) Stack {
	return Stack{Fluid: fluid, Amount: amount}
}

// NewMixtureStack creates a stack of mixture fluid.
func NewMixtureStack(mix *chem.Mixture, amount int) Stack {
	return Stack{Fluid: MixtureFluid, Amount: amount, Mixture: mix}
}

// IsEmpty tells if the stack holds nothing.
func (s Stack) IsEmpty() bool {
	return s.Fluid == "" || s.Amount <= 0
}

// SameFluid tells if two stacks could be merged: same fluid and, for
// mixtures, the same contents.
func (s Stack) SameFluid(other Stack) bool {
	if s.Fluid != other.Fluid {
		return false
	}

	if s.Mixture == nil && other.Mixture == nil {
		return true
	}

	return s.Mixture.Equal(other.Mixture)
}

// WithAmount returns a copy of the stack holding the given amount.
func (s Stack) WithAmount(amount int) Stack {
	c := s.Copy()
	c.Amount = amount

	if amount <= 0 {
		return Empty()
	}

	return c
}

// Copy returns a stack that shares nothing mutable with s.
func (s Stack) Copy() Stack {
	return Stack{
		Fluid:   s.Fluid,
		Amount:  s.Amount,
		Mixture: s.Mixture.Copy(),
	}
}

// Equal tells if two stacks are the same fluid in the same amount.
func (s Stack) Equal(other Stack) bool {
	if s.IsEmpty() && other.IsEmpty() {
		return true
	}

	return s.Amount == other.Amount && s.SameFluid(other)
}

func (s Stack) String() string {
	if s.IsEmpty() {
		return "empty"
	}

	if s.Mixture != nil {
		return fmt.Sprintf("%d x %s%s", s.Amount, s.Fluid, s.Mixture)
	}

	return fmt.Sprintf("%d x %s", s.Amount, s.Fluid)
}
