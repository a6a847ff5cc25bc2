package fluid

import (
	"log"

	"github.com/sarchlab/distill/sim"
)

// HookPosTankFill marks when fluid is committed into a tank.
var HookPosTankFill = &sim.HookPos{Name: "Tank Fill"}

// HookPosTankDrain marks when fluid is committed out of a tank.
var HookPosTankDrain = &sim.HookPos{Name: "Tank Drain"}

// A Tank holds up to a fixed amount of a single fluid.
type Tank struct {
	sim.HookableBase

	name     string
	capacity int
	fluid    Stack
}

// NewTank creates an empty tank.
func NewTank(name string, capacity int) *Tank {
	if capacity <= 0 {
		log.Panicf("tank %s must have a positive capacity", name)
	}

	return &Tank{
		name:     name,
		capacity: capacity,
	}
}

// Name returns the name of the tank.
func (t *Tank) Name() string {
	return t.name
}

// Capacity returns the most fluid the tank can hold.
func (t *Tank) Capacity() int {
	return t.capacity
}

// Fluid returns a copy of what the tank holds.
func (t *Tank) Fluid() Stack {
	return t.fluid.Copy()
}

// Amount returns how much fluid the tank holds.
func (t *Tank) Amount() int {
	if t.fluid.IsEmpty() {
		return 0
	}

	return t.fluid.Amount
}

// Space returns how much more fluid fits.
func (t *Tank) Space() int {
	return t.capacity - t.Amount()
}

// SetFluid replaces the contents. Amounts above capacity are a programming
// error.
func (t *Tank) SetFluid(stack Stack) {
	if stack.Amount > t.capacity {
		log.Panicf("tank %s overflow: %d > %d", t.name, stack.Amount, t.capacity)
	}

	if stack.IsEmpty() {
		t.fluid = Empty()
		return
	}

	t.fluid = stack.Copy()
}

// Fill puts as much of the stack as fits into the tank and returns the amount
// accepted. When simulate is set, the tank is left unchanged.
func (t *Tank) Fill(stack Stack, simulate bool) int {
	if stack.IsEmpty() {
		return 0
	}

	if !t.fluid.IsEmpty() && !t.fluid.SameFluid(stack) {
		return 0
	}

	filled := min(t.Space(), stack.Amount)
	if filled <= 0 || simulate {
		return filled
	}

	if t.fluid.IsEmpty() {
		t.fluid = stack.WithAmount(filled)
	} else {
		t.fluid.Amount += filled
	}

	if t.NumHooks() > 0 {
		t.InvokeHook(sim.HookCtx{
			Domain: t,
			Pos:    HookPosTankFill,
			Item:   stack.WithAmount(filled),
		})
	}

	return filled
}

// Drain takes up to amount out of the tank and returns what was taken. When
// simulate is set, the tank is left unchanged.
func (t *Tank) Drain(amount int, simulate bool) Stack {
	if amount <= 0 || t.fluid.IsEmpty() {
		return Empty()
	}

	drained := t.fluid.WithAmount(min(amount, t.fluid.Amount))
	if simulate {
		return drained
	}

	t.fluid.Amount -= drained.Amount
	if t.fluid.Amount <= 0 {
		t.fluid = Empty()
	}

	if t.NumHooks() > 0 {
		t.InvokeHook(sim.HookCtx{
			Domain: t,
			Pos:    HookPosTankDrain,
			Item:   drained,
		})
	}

	return drained
}
