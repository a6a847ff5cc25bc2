package datarecording

import (
	"github.com/sarchlab/distill/sim"
	"github.com/sarchlab/distill/tower"
	"github.com/sarchlab/distill/world"
)

// Table names written by TowerRecorder.
const (
	DistillationTable = "distillation"
	MembershipTable   = "membership"
)

// DistillationEntry is one transfer attempt.
type DistillationEntry struct {
	Tick    uint64
	Tower   string
	Recipe  string
	OK      bool
	Reason  string
	Drained int
	Height  int
}

// MembershipEntry is one structural change.
type MembershipEntry struct {
	Tick   uint64
	Tower  string
	Event  string
	Stage  int
	Height int
}

// TowerRecorder is a hook that records tower activity. Attach it to towers
// for transfer attempts and stage changes, and to a world for towers forming
// and breaking up.
type TowerRecorder struct {
	timeTeller sim.TimeTeller
	recorder   DataRecorder
}

// NewTowerRecorder creates the tables and returns the hook.
func NewTowerRecorder(
	timeTeller sim.TimeTeller,
	recorder DataRecorder,
) *TowerRecorder {
	recorder.CreateTable(DistillationTable, DistillationEntry{})
	recorder.CreateTable(MembershipTable, MembershipEntry{})

	return &TowerRecorder{
		timeTeller: timeTeller,
		recorder:   recorder,
	}
}

// Func records the hooked event.
func (r *TowerRecorder) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case tower.HookPosDistilled, tower.HookPosProcessRejected:
		r.recordAttempt(ctx)
	case tower.HookPosStageAdded:
		r.recordMembership(ctx.Domain.(*tower.Tower), "stage_added",
			ctx.Detail.(int))
	case tower.HookPosStageRemoved:
		r.recordMembership(ctx.Domain.(*tower.Tower), "stage_removed",
			ctx.Detail.(int))
	case world.HookPosTowerFormed:
		r.recordMembership(ctx.Item.(*tower.Tower), "formed", 0)
	case world.HookPosTowerDestroyed:
		r.recordMembership(ctx.Item.(*tower.Tower), "destroyed", 0)
	}
}

func (r *TowerRecorder) now() uint64 {
	return uint64(r.timeTeller.CurrentTime())
}

func (r *TowerRecorder) recordAttempt(ctx sim.HookCtx) {
	t := ctx.Domain.(*tower.Tower)
	res := ctx.Detail.(tower.Result)

	entry := DistillationEntry{
		Tick:   r.now(),
		Tower:  t.ControllerPos().String(),
		OK:     res.OK,
		Reason: res.Reason.String(),
		Height: t.Height(),
	}

	if res.Recipe != nil {
		entry.Recipe = res.Recipe.ID
	}

	if !res.Drained.IsEmpty() {
		entry.Drained = res.Drained.Amount
	}

	r.recorder.InsertData(DistillationTable, entry)
}

func (r *TowerRecorder) recordMembership(t *tower.Tower, event string, stage int) {
	r.recorder.InsertData(MembershipTable, MembershipEntry{
		Tick:   r.now(),
		Tower:  t.ControllerPos().String(),
		Event:  event,
		Stage:  stage,
		Height: t.Height(),
	})
}
