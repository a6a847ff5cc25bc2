package bubblecap

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/distill/chem/ingredient"
	"github.com/sarchlab/distill/fluid"
	"github.com/sarchlab/distill/recipe"
	"github.com/sarchlab/distill/tower"
)

var _ = Describe("BubbleCap", func() {
	var c *BubbleCap

	BeforeEach(func() {
		c = MakeBuilder().
			WithCapacity(200).
			WithTransferRate(30).
			Build("Cap", tower.Pos{})
	})

	It("should wait for the fill delay", func() {
		c.HiddenTank().SetFluid(fluid.NewStack("naphtha", 50))
		c.SetTicksToFill(2)

		Expect(c.Tick()).To(BeTrue())
		Expect(c.Tick()).To(BeTrue())
		Expect(c.VisibleTank().Amount()).To(Equal(0))
		Expect(c.TicksToFill()).To(Equal(0))
	})

	It("should move fluid at the transfer rate", func() {
		c.HiddenTank().SetFluid(fluid.NewStack("naphtha", 50))

		Expect(c.Tick()).To(BeTrue())
		Expect(c.VisibleTank().Amount()).To(Equal(30))
		Expect(c.Tick()).To(BeFalse())
		Expect(c.VisibleTank().Fluid()).To(Equal(fluid.NewStack("naphtha", 50)))
		Expect(c.HiddenTank().Amount()).To(Equal(0))
	})

	It("should stop when the visible tank holds another fluid", func() {
		c.VisibleTank().SetFluid(fluid.NewStack("water", 10))
		c.HiddenTank().SetFluid(fluid.NewStack("naphtha", 50))

		Expect(c.Tick()).To(BeFalse())
		Expect(c.HiddenTank().Amount()).To(Equal(50))
	})

	It("should only fill the visible tank up to its capacity", func() {
		c.VisibleTank().SetFluid(fluid.NewStack("naphtha", 190))
		c.HiddenTank().SetFluid(fluid.NewStack("naphtha", 50))

		Expect(c.Tick()).To(BeTrue())
		Expect(c.VisibleTank().Amount()).To(Equal(200))
		Expect(c.HiddenTank().Amount()).To(Equal(40))
		Expect(c.Tick()).To(BeFalse())
	})

	It("should ignore negative fill delays", func() {
		c.SetTicksToFill(-5)

		Expect(c.TicksToFill()).To(Equal(0))
	})

	It("should save and restore its state", func() {
		s := State{
			Tank:        fluid.NewStack("a", 5),
			Internal:    fluid.NewStack("b", 7),
			TicksToFill: 3,
		}

		c.SetState(s)

		Expect(c.State()).To(Equal(s))
	})

	It("should panic with a zero transfer rate", func() {
		Expect(func() {
			MakeBuilder().WithTransferRate(0).Build("Cap", tower.Pos{})
		}).To(Panic())
	})

	It("should reject invalid names", func() {
		Expect(func() {
			MakeBuilder().Build("1cap", tower.Pos{})
		}).To(Panic())
	})
})

var _ = Describe("BubbleCap in a tower", func() {
	var (
		caps    map[tower.Pos]*BubbleCap
		catalog *recipe.Catalog
		builder tower.Builder
	)

	BeforeEach(func() {
		caps = make(map[tower.Pos]*BubbleCap)
		for i := 0; i < 3; i++ {
			p := tower.Pos{Y: i}
			caps[p] = MakeBuilder().Build("Cap", p)
		}

		catalog = recipe.NewCatalog()
		Expect(catalog.Add(&recipe.Distillation{
			ID:           "crude_oil",
			Input:        ingredient.FluidIngredient{Fluid: "crude", Amount: 100},
			RequiredHeat: recipe.HeatKindled,
			Results: []fluid.Stack{
				fluid.NewStack("naphtha", 50),
				fluid.NewStack("kerosene", 50),
			},
		})).To(Succeed())

		builder = tower.MakeBuilder().
			WithStageLookup(func(p tower.Pos) (tower.Stage, bool) {
				c, ok := caps[p]
				return c, ok
			}).
			WithHeatProbe(func(tower.Pos) recipe.HeatLevel {
				return recipe.HeatKindled
			}).
			WithFinder(catalog)
	})

	It("should know its tower and role", func() {
		t, err := builder.Build(tower.Pos{})
		Expect(err).NotTo(HaveOccurred())

		controller := caps[tower.Pos{}]
		Expect(controller.Tower()).To(BeIdenticalTo(t))
		Expect(controller.IsController()).To(BeTrue())
		Expect(caps[tower.Pos{Y: 1}].IsController()).To(BeFalse())
		Expect(controller.Changes()).To(Equal(3))
	})

	It("should remember what was drained", func() {
		controller := caps[tower.Pos{}]
		controller.VisibleTank().SetFluid(fluid.NewStack("crude", 300))

		t, err := builder.Build(tower.Pos{})
		Expect(err).NotTo(HaveOccurred())
		t.FindRecipe()

		Expect(t.Process().OK).To(BeTrue())
		Expect(controller.Distillations()).To(Equal(1))
		Expect(controller.DrainedRemembrance()).
			To(Equal(fluid.NewStack("crude", 100)))
		Expect(caps[tower.Pos{Y: 2}].TicksToFill()).To(Equal(20))
	})

	It("should stop processing once detached", func() {
		controller := caps[tower.Pos{}]
		controller.VisibleTank().SetFluid(fluid.NewStack("crude", 300))

		t, err := builder.Build(tower.Pos{})
		Expect(err).NotTo(HaveOccurred())
		t.FindRecipe()
		controller.Detach()

		Expect(t.Process().Reason).To(Equal(tower.Detached))
		Expect(controller.VisibleTank().Amount()).To(Equal(300))
	})
})
