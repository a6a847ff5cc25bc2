package bubblecap

import (
	"log"

	"github.com/sarchlab/distill/fluid"
	"github.com/sarchlab/distill/sim"
	"github.com/sarchlab/distill/tower"
)

// Builder creates bubble caps.
type Builder struct {
	capacity     int
	transferRate int
}

// MakeBuilder returns a builder with default tank capacity and transfer rate.
func MakeBuilder() Builder {
	return Builder{
		capacity:     tower.DefaultTankCapacity,
		transferRate: tower.DefaultTransferRate,
	}
}

// WithCapacity sets the capacity of both tanks.
func (b Builder) WithCapacity(capacity int) Builder {
	b.capacity = capacity
	return b
}

// WithTransferRate sets how much fluid moves from the internal tank to the
// visible tank per tick.
func (b Builder) WithTransferRate(rate int) Builder {
	b.transferRate = rate
	return b
}

// Build creates a bubble cap at pos.
func (b Builder) Build(name string, pos tower.Pos) *BubbleCap {
	sim.NameMustBeValid(name)

	if b.transferRate <= 0 {
		log.Panicf("bubble cap %s needs a positive transfer rate", name)
	}

	return &BubbleCap{
		name:         name,
		pos:          pos,
		tank:         fluid.NewTank(name+".Tank", b.capacity),
		internal:     fluid.NewTank(name+".InternalTank", b.capacity),
		transferRate: b.transferRate,
		attached:     true,
	}
}
