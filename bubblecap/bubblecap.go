// Package bubblecap provides the stage used to build distillation towers.
package bubblecap

import (
	"github.com/sarchlab/distill/fluid"
	"github.com/sarchlab/distill/tower"
)

var _ tower.Stage = (*BubbleCap)(nil)

// A BubbleCap is one stage of a distillation tower. Fractions arrive in the
// internal tank and move to the visible tank once the fill delay runs out.
type BubbleCap struct {
	name string
	pos  tower.Pos

	tank         *fluid.Tank
	internal     *fluid.Tank
	transferRate int
	ticksToFill  int

	tower    *tower.Tower
	attached bool

	drained       fluid.Stack
	distillations int
	changes       int
}

// State is what a bubble cap keeps across a save.
type State struct {
	Tank        fluid.Stack
	Internal    fluid.Stack
	TicksToFill int
}

// Name returns the name of the bubble cap.
func (c *BubbleCap) Name() string {
	return c.name
}

// Pos returns where the bubble cap stands.
func (c *BubbleCap) Pos() tower.Pos {
	return c.pos
}

// Tank returns the visible tank.
func (c *BubbleCap) Tank() tower.Tank {
	return c.tank
}

// InternalTank returns the tank fractions are distilled into.
func (c *BubbleCap) InternalTank() tower.Tank {
	return c.internal
}

// VisibleTank returns the visible tank with its full API.
func (c *BubbleCap) VisibleTank() *fluid.Tank {
	return c.tank
}

// HiddenTank returns the internal tank with its full API.
func (c *BubbleCap) HiddenTank() *fluid.Tank {
	return c.internal
}

// SetTicksToFill delays the transfer from the internal tank.
func (c *BubbleCap) SetTicksToFill(ticks int) {
	c.ticksToFill = max(ticks, 0)
}

// TicksToFill returns the remaining fill delay.
func (c *BubbleCap) TicksToFill() int {
	return c.ticksToFill
}

// JoinTower records the tower the bubble cap belongs to.
func (c *BubbleCap) JoinTower(t *tower.Tower) {
	c.tower = t
}

// LeaveTower forgets the tower, if it is t.
func (c *BubbleCap) LeaveTower(t *tower.Tower) {
	if c.tower == t {
		c.tower = nil
	}
}

// Tower returns the tower the bubble cap belongs to, nil if none.
func (c *BubbleCap) Tower() *tower.Tower {
	return c.tower
}

// IsController tells if the bubble cap is the bottom of its tower.
func (c *BubbleCap) IsController() bool {
	return c.tower != nil && c.tower.Controller() == tower.Stage(c)
}

// NotifyChanged counts membership changes seen by the controller.
func (c *BubbleCap) NotifyChanged() {
	c.changes++
}

// Changes returns how many membership changes were notified.
func (c *BubbleCap) Changes() int {
	return c.changes
}

// NotifyDistilled remembers the drained input.
func (c *BubbleCap) NotifyDistilled(drained fluid.Stack) {
	c.drained = drained.Copy()
	c.distillations++
}

// DrainedRemembrance returns the input drained by the latest distillation.
func (c *BubbleCap) DrainedRemembrance() fluid.Stack {
	return c.drained.Copy()
}

// Distillations returns how many distillations this controller ran.
func (c *BubbleCap) Distillations() int {
	return c.distillations
}

// Attached tells if the bubble cap is still placed.
func (c *BubbleCap) Attached() bool {
	return c.attached
}

// Detach marks the bubble cap as removed and drops its tower.
func (c *BubbleCap) Detach() {
	c.attached = false
	c.tower = nil
}

// Tick counts down the fill delay, then moves up to the transfer rate from
// the internal tank to the visible tank. It returns true while there is work
// left.
func (c *BubbleCap) Tick() bool {
	if c.internal.Amount() == 0 {
		return false
	}

	if c.ticksToFill > 0 {
		c.ticksToFill--
		return true
	}

	offer := c.internal.Drain(c.transferRate, true)

	accepted := c.tank.Fill(offer, true)
	if accepted == 0 {
		return false
	}

	c.tank.Fill(c.internal.Drain(accepted, false), false)

	return c.internal.Amount() > 0
}

// State returns a copy of what the bubble cap holds.
func (c *BubbleCap) State() State {
	return State{
		Tank:        c.tank.Fluid(),
		Internal:    c.internal.Fluid(),
		TicksToFill: c.ticksToFill,
	}
}

// SetState replaces what the bubble cap holds.
func (c *BubbleCap) SetState(s State) {
	c.tank.SetFluid(s.Tank)
	c.internal.SetFluid(s.Internal)
	c.SetTicksToFill(s.TicksToFill)
}
