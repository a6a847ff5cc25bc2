package sim

import (
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
)

type nopTicker struct{}

func (nopTicker) Tick() bool {
	return false
}

var _ = Describe("TickScheduler", func() {
	var (
		engine *SerialEngine
		comp   *TickingComponent
	)

	BeforeEach(func() {
		engine = NewSerialEngine()
		comp = NewTickingComponent("Comp", engine, nopTicker{})
	})

	It("should schedule one tick event per tick", func() {
		comp.TickLater()
		comp.TickLater()
		comp.TickNow()

		Expect(engine.queue.Len()).To(Equal(1))
		Expect(engine.queue.Peek().Time()).To(Equal(VTick(1)))
	})

	It("should schedule again once the tick has passed", func() {
		comp.TickLater()
		Expect(engine.RunUntil(3)).To(Succeed())

		comp.TickLater()

		Expect(engine.queue.Len()).To(Equal(1))
		Expect(engine.queue.Peek().Time()).To(Equal(VTick(4)))
	})

	It("should log events handled by named components", func() {
		buf := gbytes.NewBuffer()
		engine.AcceptHook(NewEventLogger(log.New(buf, "", 0)))

		comp.TickLater()
		Expect(engine.Run()).To(Succeed())

		Eventually(buf).Should(gbytes.Say(`1, sim.TickEvent -> Comp`))
	})
})
