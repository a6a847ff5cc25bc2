package tower

import (
	"errors"
	"fmt"
	"log"

	"github.com/sarchlab/distill/recipe"
)

// ErrEmptyTower is returned when no stage is found at the controller
// position.
var ErrEmptyTower = errors.New("distillation tower has no stages")

// Default tunables.
const (
	DefaultProcessInterval = 100
	DefaultTankCapacity    = 1000
	DefaultTransferRate    = 50
	DefaultMaxHeight       = 256
)

// Builder creates towers, either by scanning upward from a controller or by
// restoring a persisted record.
type Builder struct {
	lookup    StageLookup
	heat      HeatProbe
	finder    recipe.Finder
	interval  int
	capacity  int
	rate      int
	maxHeight int
}

// MakeBuilder returns a builder with default tunables.
func MakeBuilder() Builder {
	return Builder{
		interval:  DefaultProcessInterval,
		capacity:  DefaultTankCapacity,
		rate:      DefaultTransferRate,
		maxHeight: DefaultMaxHeight,
	}
}

// WithStageLookup sets how the builder finds stages.
func (b Builder) WithStageLookup(lookup StageLookup) Builder {
	b.lookup = lookup
	return b
}

// WithHeatProbe sets how towers read the heat under their controller.
func (b Builder) WithHeatProbe(heat HeatProbe) Builder {
	b.heat = heat
	return b
}

// WithFinder sets where towers look for recipes.
func (b Builder) WithFinder(finder recipe.Finder) Builder {
	b.finder = finder
	return b
}

// WithProcessInterval sets how many ticks pass between transfer attempts.
func (b Builder) WithProcessInterval(ticks int) Builder {
	b.interval = ticks
	return b
}

// WithFillDelay sets the stage tank capacity and transfer rate used to
// stagger fill timers.
func (b Builder) WithFillDelay(capacity, rate int) Builder {
	b.capacity = capacity
	b.rate = rate
	return b
}

// WithMaxHeight bounds the upward scan of Build.
func (b Builder) WithMaxHeight(height int) Builder {
	b.maxHeight = height
	return b
}

// Build scans upward from pos and creates a tower from the stages found.
func (b Builder) Build(pos Pos) (*Tower, error) {
	b.mustBeComplete()

	t := b.newTower(pos, b.interval)

	b.scan(t, b.maxHeight)

	if t.Height() == 0 {
		return nil, fmt.Errorf("%w at %s", ErrEmptyTower, pos)
	}

	return t, nil
}

// Restore recreates a tower from its record. A missing stage shortens the
// tower instead of failing the load.
func (b Builder) Restore(pos Pos, rec Record) (*Tower, error) {
	b.mustBeComplete()

	t := b.newTower(pos, rec.Tick)

	found := b.scan(t, rec.Height)
	if found < rec.Height {
		log.Printf("could not load distillation tower at %s fully, "+
			"new height is %d instead of %d", pos, found, rec.Height)
	}

	if t.Height() == 0 {
		return nil, fmt.Errorf("%w at %s", ErrEmptyTower, pos)
	}

	return t, nil
}

func (b Builder) newTower(pos Pos, tick int) *Tower {
	return &Tower{
		controllerPos: pos,
		matcher:       recipe.NewMatcher(b.finder),
		heat:          b.heat,
		interval:      b.interval,
		tick:          tick,
		capacity:      b.capacity,
		rate:          b.rate,
	}
}

func (b Builder) scan(t *Tower, limit int) int {
	for i := 0; i < limit; i++ {
		stage, ok := b.lookup(t.controllerPos.Above(i))
		if !ok || stage == nil {
			return i
		}

		t.AddStage(stage)
	}

	return limit
}

func (b Builder) mustBeComplete() {
	if b.lookup == nil {
		log.Panic("tower builder needs a stage lookup")
	}

	if b.heat == nil {
		log.Panic("tower builder needs a heat probe")
	}

	if b.finder == nil {
		log.Panic("tower builder needs a recipe finder")
	}

	if b.interval <= 0 {
		log.Panicf("process interval must be positive, got %d", b.interval)
	}

	if b.rate <= 0 {
		log.Panicf("transfer rate must be positive, got %d", b.rate)
	}
}
