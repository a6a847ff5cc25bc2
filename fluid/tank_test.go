package fluid

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/distill/chem"
	"github.com/sarchlab/distill/sim"
)

var _ = Describe("Tank", func() {
	var (
		tank  *Tank
		brine *chem.Mixture
	)

	BeforeEach(func() {
		tank = NewTank("Tank", 1000)
		brine = chem.NewMixture().
			Add(&chem.Molecule{ID: "destroy:sodium_ion", Charge: 1}, 1)
	})

	It("should fill an empty tank", func() {
		filled := tank.Fill(NewStack("water", 300), false)

		Expect(filled).To(Equal(300))
		Expect(tank.Amount()).To(Equal(300))
		Expect(tank.Space()).To(Equal(700))
	})

	It("should not change on a simulated fill", func() {
		filled := tank.Fill(NewStack("water", 300), true)

		Expect(filled).To(Equal(300))
		Expect(tank.Amount()).To(Equal(0))
	})

	It("should accept only what fits", func() {
		tank.SetFluid(NewStack("water", 900))

		Expect(tank.Fill(NewStack("water", 300), true)).To(Equal(100))
		Expect(tank.Fill(NewStack("water", 300), false)).To(Equal(100))
		Expect(tank.Amount()).To(Equal(1000))
	})

	It("should refuse a different fluid", func() {
		tank.SetFluid(NewStack("water", 100))

		Expect(tank.Fill(NewStack("lava", 100), false)).To(Equal(0))
		Expect(tank.Fill(NewMixtureStack(brine, 100), false)).To(Equal(0))
	})

	It("should merge mixtures with the same contents", func() {
		tank.SetFluid(NewMixtureStack(brine, 100))

		Expect(tank.Fill(NewMixtureStack(brine.Copy(), 100), false)).
			To(Equal(100))
		Expect(tank.Amount()).To(Equal(200))
	})

	It("should drain at most what it holds", func() {
		tank.SetFluid(NewStack("water", 80))

		drained := tank.Drain(100, false)

		Expect(drained.Amount).To(Equal(80))
		Expect(drained.Fluid).To(Equal("water"))
		Expect(tank.Fluid().IsEmpty()).To(BeTrue())
	})

	It("should not change on a simulated drain", func() {
		tank.SetFluid(NewMixtureStack(brine, 500))

		drained := tank.Drain(100, true)

		Expect(drained.Amount).To(Equal(100))
		Expect(drained.Mixture.Equal(brine)).To(BeTrue())
		Expect(tank.Amount()).To(Equal(500))
	})

	It("should hand out copies of its contents", func() {
		tank.SetFluid(NewMixtureStack(brine, 500))

		f := tank.Fluid()
		f.Amount = 1
		f.Mixture.Add(&chem.Molecule{ID: "destroy:water"}, 1)

		Expect(tank.Amount()).To(Equal(500))
		Expect(tank.Fluid().Mixture.Equal(brine)).To(BeTrue())
	})

	It("should panic on overflow", func() {
		Expect(func() { tank.SetFluid(NewStack("water", 1001)) }).To(Panic())
	})

	It("should invoke hooks on committed changes only", func() {
		var positions []*sim.HookPos
		tank.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
			positions = append(positions, ctx.Pos)
		}))

		tank.Fill(NewStack("water", 10), true)
		tank.Fill(NewStack("water", 10), false)
		tank.Drain(5, true)
		tank.Drain(5, false)

		Expect(positions).To(Equal([]*sim.HookPos{
			HookPosTankFill, HookPosTankDrain,
		}))
	})
})
