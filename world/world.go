// Package world hosts distillation towers: it keeps the blocks, applies the
// structural rules that grow and shrink towers, and steps them every tick.
package world

import (
	"cmp"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/sarchlab/distill/bubblecap"
	"github.com/sarchlab/distill/fluid"
	"github.com/sarchlab/distill/recipe"
	"github.com/sarchlab/distill/sim"
	"github.com/sarchlab/distill/tower"
)

// HookPosTowerFormed marks when a tower is created.
var HookPosTowerFormed = &sim.HookPos{Name: "Tower Formed"}

// HookPosTowerDestroyed marks when a tower loses its controller or is
// re-rooted.
var HookPosTowerDestroyed = &sim.HookPos{Name: "Tower Destroyed"}

// A World is a grid of blocks that hosts distillation towers.
type World struct {
	*sim.TickingComponent

	lock   sync.RWMutex
	blocks map[tower.Pos]Block
	towers map[tower.Pos]*tower.Tower
	ticks  uint64

	capBuilder   bubblecap.Builder
	towerBuilder tower.Builder
	towerHooks   []sim.Hook
}

func comparePos(a, b tower.Pos) int {
	return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Z, b.Z), cmp.Compare(a.Y, b.Y))
}

// AcceptTowerHook registers a hook on every current and future tower.
func (w *World) AcceptTowerHook(hook sim.Hook) {
	w.lock.Lock()
	defer w.lock.Unlock()

	w.towerHooks = append(w.towerHooks, hook)
	for _, t := range w.towers {
		t.AcceptHook(hook)
	}
}

// PlaceBubbleCap puts a bubble cap at pos. It joins the tower below it, or
// becomes the controller of a new tower.
func (w *World) PlaceBubbleCap(pos tower.Pos) (*bubblecap.BubbleCap, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	if _, found := w.blocks[pos]; found {
		return nil, fmt.Errorf("%w: %s", ErrOccupied, pos)
	}

	c := w.capBuilder.Build(w.capName(pos), pos)
	w.blocks[pos] = capBlock{c}

	if below, ok := w.capAt(pos.Below()); ok && below.Tower() != nil {
		t := below.Tower()
		t.AddStage(c)
		w.absorbAbove(t)

		return c, nil
	}

	if above, ok := w.capAt(pos.Above(1)); ok && above.IsController() {
		w.destroyTower(above.Tower())
	}

	w.formTower(pos)

	return c, nil
}

// PlaceBurner puts a heat source at pos.
func (w *World) PlaceBurner(pos tower.Pos, level recipe.HeatLevel) error {
	return w.placeInert(pos, Burner{Level: level})
}

// PlaceSolid puts an inert block at pos.
func (w *World) PlaceSolid(pos tower.Pos, material string) error {
	return w.placeInert(pos, Solid{Material: material})
}

func (w *World) placeInert(pos tower.Pos, b Block) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if _, found := w.blocks[pos]; found {
		return fmt.Errorf("%w: %s", ErrOccupied, pos)
	}

	w.blocks[pos] = b

	return nil
}

// Remove takes the block at pos out of the world. Removing a bubble cap
// truncates its tower there; the caps above the gap form a new tower.
func (w *World) Remove(pos tower.Pos) (Block, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	b, found := w.blocks[pos]
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNothingThere, pos)
	}

	delete(w.blocks, pos)

	cb, isCap := b.(capBlock)
	if !isCap {
		return b, nil
	}

	c := cb.BubbleCap
	if t := c.Tower(); t != nil {
		for _, s := range t.RemoveStage(c) {
			s.(*bubblecap.BubbleCap).LeaveTower(t)
		}

		if t.Height() == 0 {
			w.destroyTower(t)
		}
	}

	c.Detach()

	if _, ok := w.capAt(pos.Above(1)); ok {
		w.formTower(pos.Above(1))
	}

	return b, nil
}

func (w *World) capName(pos tower.Pos) string {
	return fmt.Sprintf("%s.BubbleCap[%d,%d,%d]", w.Name(), pos.X, pos.Y, pos.Z)
}

func (w *World) capAt(pos tower.Pos) (*bubblecap.BubbleCap, bool) {
	cb, ok := w.blocks[pos].(capBlock)
	if !ok {
		return nil, false
	}

	return cb.BubbleCap, true
}

func (w *World) stageAt(pos tower.Pos) (tower.Stage, bool) {
	c, ok := w.capAt(pos)
	if !ok {
		return nil, false
	}

	return c, true
}

func (w *World) heatLevelAt(pos tower.Pos) recipe.HeatLevel {
	if b, ok := w.blocks[pos].(Burner); ok {
		return b.Level
	}

	return recipe.HeatNone
}

func (w *World) formTower(pos tower.Pos) *tower.Tower {
	t, err := w.towerBuilder.Build(pos)
	if err != nil {
		log.Panic(err)
	}

	w.register(t)

	return t
}

func (w *World) register(t *tower.Tower) {
	for _, h := range w.towerHooks {
		t.AcceptHook(h)
	}

	w.towers[t.ControllerPos()] = t

	if w.NumHooks() > 0 {
		w.InvokeHook(sim.HookCtx{
			Domain: w,
			Pos:    HookPosTowerFormed,
			Item:   t,
		})
	}
}

// absorbAbove merges a tower whose controller sits right above the top of t.
func (w *World) absorbAbove(t *tower.Tower) {
	top := t.ControllerPos().Above(t.Height())

	above, ok := w.capAt(top)
	if !ok || !above.IsController() {
		return
	}

	upper := above.Tower()
	stages := upper.Stages()
	w.destroyTower(upper)

	for _, s := range stages {
		t.AddStage(s)
	}
}

func (w *World) destroyTower(t *tower.Tower) {
	for _, s := range t.Stages() {
		s.(*bubblecap.BubbleCap).LeaveTower(t)
	}

	delete(w.towers, t.ControllerPos())

	if w.NumHooks() > 0 {
		w.InvokeHook(sim.HookCtx{
			Domain: w,
			Pos:    HookPosTowerDestroyed,
			Item:   t,
		})
	}
}

// Block returns the block at pos.
func (w *World) Block(pos tower.Pos) (Block, bool) {
	w.lock.RLock()
	defer w.lock.RUnlock()

	b, ok := w.blocks[pos]

	return b, ok
}

// BubbleCapAt returns the bubble cap at pos.
func (w *World) BubbleCapAt(pos tower.Pos) (*bubblecap.BubbleCap, bool) {
	w.lock.RLock()
	defer w.lock.RUnlock()

	return w.capAt(pos)
}

// StageAt returns the stage at pos, if there is one.
func (w *World) StageAt(pos tower.Pos) (tower.Stage, bool) {
	w.lock.RLock()
	defer w.lock.RUnlock()

	return w.stageAt(pos)
}

// HeatLevelAt returns the heat given off by the block at pos.
func (w *World) HeatLevelAt(pos tower.Pos) recipe.HeatLevel {
	w.lock.RLock()
	defer w.lock.RUnlock()

	return w.heatLevelAt(pos)
}

// Towers returns every tower ordered by controller position.
func (w *World) Towers() []*tower.Tower {
	w.lock.RLock()
	defer w.lock.RUnlock()

	return w.sortedTowers()
}

func (w *World) sortedTowers() []*tower.Tower {
	out := make([]*tower.Tower, 0, len(w.towers))
	for _, t := range w.towers {
		out = append(out, t)
	}

	slices.SortFunc(out, func(a, b *tower.Tower) int {
		return comparePos(a.ControllerPos(), b.ControllerPos())
	})

	return out
}

func (w *World) sortedCaps() []*bubblecap.BubbleCap {
	out := make([]*bubblecap.BubbleCap, 0, len(w.blocks))
	for _, b := range w.blocks {
		if cb, ok := b.(capBlock); ok {
			out = append(out, cb.BubbleCap)
		}
	}

	slices.SortFunc(out, func(a, b *bubblecap.BubbleCap) int {
		return comparePos(a.Pos(), b.Pos())
	})

	return out
}

// TowerAt returns the tower that the bubble cap at pos belongs to.
func (w *World) TowerAt(pos tower.Pos) (*tower.Tower, bool) {
	w.lock.RLock()
	defer w.lock.RUnlock()

	return w.towerAt(pos)
}

func (w *World) towerAt(pos tower.Pos) (*tower.Tower, bool) {
	c, ok := w.capAt(pos)
	if !ok || c.Tower() == nil {
		return nil, false
	}

	return c.Tower(), true
}

// A Viewer reads towers while the world is locked. It is only valid inside
// the function passed to View.
type Viewer struct {
	w *World
}

// Towers returns every tower ordered by controller position.
func (v Viewer) Towers() []*tower.Tower {
	return v.w.sortedTowers()
}

// TowerAt returns the tower that the bubble cap at pos belongs to.
func (v Viewer) TowerAt(pos tower.Pos) (*tower.Tower, bool) {
	return v.w.towerAt(pos)
}

// View runs fn while holding the world's read lock, so that towers do not
// tick while fn reads them. fn must not call other World methods.
func (w *World) View(fn func(v Viewer)) {
	w.lock.RLock()
	defer w.lock.RUnlock()

	fn(Viewer{w: w})
}

// Fill pours fluid into the visible tank of the bubble cap at pos and returns
// the amount accepted.
func (w *World) Fill(pos tower.Pos, stack fluid.Stack) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	c, ok := w.capAt(pos)
	if !ok {
		return 0, fmt.Errorf("no bubble cap at %s", pos)
	}

	return c.VisibleTank().Fill(stack, false), nil
}

// Drain takes fluid out of the visible tank of the bubble cap at pos.
func (w *World) Drain(pos tower.Pos, amount int) (fluid.Stack, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	c, ok := w.capAt(pos)
	if !ok {
		return fluid.Empty(), fmt.Errorf("no bubble cap at %s", pos)
	}

	return c.VisibleTank().Drain(amount, false), nil
}

// Ticks returns how many ticks the world has run.
func (w *World) Ticks() uint64 {
	w.lock.RLock()
	defer w.lock.RUnlock()

	return w.ticks
}

// Tick moves distilled fluid inside every bubble cap, then steps every tower
// once.
func (w *World) Tick() bool {
	w.lock.Lock()
	defer w.lock.Unlock()

	for _, c := range w.sortedCaps() {
		c.Tick()
	}

	for _, t := range w.sortedTowers() {
		t.Tick()
	}

	w.ticks++

	return true
}

// Run advances the world by the given number of ticks.
func (w *World) Run(ticks int) error {
	if ticks <= 0 {
		return nil
	}

	now := w.CurrentTime()
	w.TickLater()

	return w.Engine.RunUntil(now + sim.VTick(ticks))
}
