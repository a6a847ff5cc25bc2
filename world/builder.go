package world

import (
	"log"

	"github.com/sarchlab/distill/bubblecap"
	"github.com/sarchlab/distill/recipe"
	"github.com/sarchlab/distill/sim"
	"github.com/sarchlab/distill/tower"
)

// Builder creates worlds.
type Builder struct {
	engine   sim.Engine
	finder   recipe.Finder
	interval int
	capacity int
	rate     int
}

// MakeBuilder returns a builder with default tunables.
func MakeBuilder() Builder {
	return Builder{
		interval: tower.DefaultProcessInterval,
		capacity: tower.DefaultTankCapacity,
		rate:     tower.DefaultTransferRate,
	}
}

// WithEngine sets the engine that drives the world.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
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

// WithTankCapacity sets the capacity of bubble cap tanks.
func (b Builder) WithTankCapacity(capacity int) Builder {
	b.capacity = capacity
	return b
}

// WithTransferRate sets how fast bubble caps move fluid to their visible
// tank.
func (b Builder) WithTransferRate(rate int) Builder {
	b.rate = rate
	return b
}

// Build creates an empty world.
func (b Builder) Build(name string) *World {
	if b.engine == nil {
		log.Panic("world needs an engine")
	}

	if b.finder == nil {
		log.Panic("world needs a recipe finder")
	}

	w := &World{
		blocks: make(map[tower.Pos]Block),
		towers: make(map[tower.Pos]*tower.Tower),
	}
	w.TickingComponent = sim.NewTickingComponent(name, b.engine, w)

	w.capBuilder = bubblecap.MakeBuilder().
		WithCapacity(b.capacity).
		WithTransferRate(b.rate)
	w.towerBuilder = tower.MakeBuilder().
		WithStageLookup(w.stageAt).
		WithHeatProbe(w.heatLevelAt).
		WithFinder(b.finder).
		WithProcessInterval(b.interval).
		WithFillDelay(b.capacity, b.rate)

	return w
}
