// Package tower implements distillation towers: a contiguous stack of stages
// rooted at a controller that periodically moves the controller's input into
// the stages above as fractions.
package tower

import (
	"log"
	"slices"

	"github.com/sarchlab/distill/recipe"
	"github.com/sarchlab/distill/sim"
)

// HookPosStageAdded marks when a stage joins a tower.
var HookPosStageAdded = &sim.HookPos{Name: "Stage Added"}

// HookPosStageRemoved marks when stages are evicted from a tower.
var HookPosStageRemoved = &sim.HookPos{Name: "Stage Removed"}

// HookPosDistilled marks a committed transfer.
var HookPosDistilled = &sim.HookPos{Name: "Distilled"}

// HookPosProcessRejected marks a transfer attempt that moved nothing.
var HookPosProcessRejected = &sim.HookPos{Name: "Process Rejected"}

// A Tower is an ordered stack of stages. Index 0 is the controller and index
// i is the i-th stage above it.
type Tower struct {
	sim.HookableBase

	controllerPos Pos
	stages        []Stage
	matcher       *recipe.Matcher
	heat          HeatProbe

	interval int
	tick     int
	capacity int
	rate     int

	lastResult Result
}

// ControllerPos returns the position of the bottom stage.
func (t *Tower) ControllerPos() Pos {
	return t.controllerPos
}

// Height returns the number of stages, the controller included.
func (t *Tower) Height() int {
	return len(t.stages)
}

// Controller returns the bottom stage, or nil for an emptied tower.
func (t *Tower) Controller() Stage {
	if len(t.stages) == 0 {
		return nil
	}

	return t.stages[0]
}

// Stages returns the members from the bottom up.
func (t *Tower) Stages() []Stage {
	return slices.Clone(t.stages)
}

// Contains tells if the stage is a member.
func (t *Tower) Contains(stage Stage) bool {
	return t.indexOf(stage) >= 0
}

func (t *Tower) indexOf(stage Stage) int {
	for i, s := range t.stages {
		if s == stage {
			return i
		}
	}

	return -1
}

// AddStage puts a stage on top of the tower. Adding a member again does
// nothing.
func (t *Tower) AddStage(stage Stage) {
	if t.Contains(stage) {
		return
	}

	stage.JoinTower(t)
	t.stages = append(t.stages, stage)
	t.Controller().NotifyChanged()

	if t.NumHooks() > 0 {
		t.InvokeHook(sim.HookCtx{
			Domain: t,
			Pos:    HookPosStageAdded,
			Item:   stage,
			Detail: len(t.stages) - 1,
		})
	}
}

// RemoveStage evicts the stage and every stage above it, returning the
// evicted stages. Removing the controller empties the tower.
func (t *Tower) RemoveStage(stage Stage) []Stage {
	i := t.indexOf(stage)
	if i < 0 {
		return nil
	}

	evicted := slices.Clone(t.stages[i:])
	t.stages = slices.Clip(t.stages[:i])

	if c := t.Controller(); c != nil {
		c.NotifyChanged()
	}

	if t.NumHooks() > 0 {
		t.InvokeHook(sim.HookCtx{
			Domain: t,
			Pos:    HookPosStageRemoved,
			Item:   evicted,
			Detail: i,
		})
	}

	return evicted
}

// Tick counts down to the next transfer attempt. When the countdown runs out,
// the recipe is refreshed before the attempt and the countdown restarts. It
// returns true if fluid moved.
func (t *Tower) Tick() bool {
	t.tick--
	if t.tick > 0 {
		return false
	}

	t.FindRecipe()
	t.lastResult = t.Process()
	t.tick = t.interval

	return t.lastResult.OK
}

// RemainingTicks returns the ticks left before the next attempt.
func (t *Tower) RemainingTicks() int {
	return t.tick
}

// FindRecipe refreshes the remembered recipe against the controller's tank.
func (t *Tower) FindRecipe() *recipe.Distillation {
	c := t.Controller()
	if c == nil {
		return t.matcher.Last()
	}

	return t.matcher.Refresh(c.Tank().Fluid())
}

// LastRecipe returns the remembered recipe, nil if none.
func (t *Tower) LastRecipe() *recipe.Distillation {
	return t.matcher.Last()
}

// LastResult returns the outcome of the latest attempt made by Tick.
func (t *Tower) LastResult() Result {
	return t.lastResult
}

// Record returns the persisted state of the tower.
func (t *Tower) Record() Record {
	return Record{Height: t.Height(), Tick: t.tick}
}

// Process attempts one transfer with the remembered recipe. Every check runs
// as a simulation first; stages are only changed once all of them pass.
func (t *Tower) Process() Result {
	r := t.matcher.Last()

	res := t.check(r)
	if !res.OK {
		t.reject(res)
		return res
	}

	res = t.commit(r)

	if t.NumHooks() > 0 {
		t.InvokeHook(sim.HookCtx{
			Domain: t,
			Pos:    HookPosDistilled,
			Item:   r,
			Detail: res,
		})
	}

	return res
}

func (t *Tower) check(r *recipe.Distillation) Result {
	if r == nil {
		return rejected(NoRecipe, nil)
	}

	if r.Fractions() > t.Height()-1 {
		return rejected(TooShort, r)
	}

	c := t.Controller()
	if c == nil || !c.Attached() {
		return rejected(Detached, r)
	}

	if !t.heat(t.controllerPos.Below()).Satisfies(r.RequiredHeat) {
		return rejected(NotHot, r)
	}

	required := r.Input.RequiredAmount()
	if c.Tank().Drain(required, true).Amount < required {
		return rejected(NotEnoughInput, r)
	}

	for i, fraction := range r.Results {
		if t.stages[i+1].InternalTank().Fill(fraction, true) < fraction.Amount {
			res := rejected(NoRoom, r)
			res.Stage = i + 1

			return res
		}
	}

	return Result{OK: true, Reason: Distilled, Recipe: r}
}

func (t *Tower) commit(r *recipe.Distillation) Result {
	c := t.Controller()
	drained := c.Tank().Drain(r.Input.RequiredAmount(), false)

	for i, fraction := range r.Results {
		stage := t.stages[i+1]

		filled := stage.InternalTank().Fill(fraction, false)
		if filled < fraction.Amount {
			log.Panicf("stage %d of tower at %s accepted %d of %d after "+
				"a successful simulation", i+1, t.controllerPos, filled,
				fraction.Amount)
		}

		stage.SetTicksToFill(i * t.capacity / t.rate)
	}

	c.NotifyDistilled(drained.Copy())

	return Result{
		OK:      true,
		Reason:  Distilled,
		Recipe:  r,
		Drained: drained,
	}
}

func (t *Tower) reject(res Result) {
	if t.NumHooks() == 0 {
		return
	}

	t.InvokeHook(sim.HookCtx{
		Domain: t,
		Pos:    HookPosProcessRejected,
		Item:   res.Recipe,
		Detail: res,
	})
}
