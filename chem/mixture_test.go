package chem

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Mixture", func() {
	var (
		sodium, chloride, water *Molecule
		mix                     *Mixture
	)

	BeforeEach(func() {
		sodium = &Molecule{ID: "destroy:sodium_ion", Charge: 1}
		chloride = &Molecule{ID: "destroy:chloride", Charge: -1}
		water = &Molecule{ID: "destroy:water"}
		mix = NewMixture()
	})

	It("should merge repeated additions of a molecule", func() {
		mix.Add(sodium, 0.5).Add(sodium, 0.25)

		Expect(mix.Len()).To(Equal(1))
		Expect(mix.ConcentrationOf(sodium)).To(BeNumerically("~", 0.75))
	})

	It("should ignore non-positive concentrations", func() {
		mix.Add(sodium, 0).Add(chloride, -1)

		Expect(mix.Len()).To(Equal(0))
	})

	It("should list molecules sorted by id", func() {
		mix.Add(water, 55).Add(sodium, 1).Add(chloride, 1)

		Expect(mix.Molecules()).To(Equal([]*Molecule{chloride, sodium, water}))
	})

	Context("when checking usable molecules", func() {
		isChloride := func(m *Molecule) bool { return m == chloride }

		It("should accept enough molecule with its counterpart", func() {
			mix.Add(sodium, 1).Add(chloride, 1)

			Expect(mix.HasUsableMolecule(sodium, 1, isChloride)).To(BeTrue())
		})

		It("should reject too little molecule", func() {
			mix.Add(sodium, 0.5).Add(chloride, 1)

			Expect(mix.HasUsableMolecule(sodium, 1, isChloride)).To(BeFalse())
		})

		It("should reject a molecule without its counterpart", func() {
			mix.Add(sodium, 2).Add(water, 55)

			Expect(mix.HasUsableMolecule(sodium, 1, isChloride)).To(BeFalse())
		})

		It("should not count the molecule as its own counterpart", func() {
			mix.Add(sodium, 2)

			Expect(mix.HasUsableMolecule(sodium, 1,
				func(*Molecule) bool { return true })).To(BeFalse())
		})

		It("should reject an absent molecule", func() {
			mix.Add(chloride, 1)

			Expect(mix.HasUsableMolecule(sodium, 0, isChloride)).To(BeFalse())
		})
	})

	It("should compare contents", func() {
		mix.Add(sodium, 1).Add(chloride, 1)
		other := mix.Copy()

		Expect(mix.Equal(other)).To(BeTrue())

		other.Add(water, 1)
		Expect(mix.Equal(other)).To(BeFalse())
		Expect(NewMixture().Equal(nil)).To(BeTrue())
	})

	It("should build from id keyed concentrations", func() {
		reg := NewMoleculeRegistry()
		reg.MustRegister(sodium)
		reg.MustRegister(chloride)

		built, err := MixtureFromConcentrations(reg, map[string]float64{
			"destroy:sodium_ion": 1,
			"destroy:chloride":   1,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(built.Concentrations()).To(Equal(map[string]float64{
			"destroy:sodium_ion": 1,
			"destroy:chloride":   1,
		}))

		_, err = MixtureFromConcentrations(reg, map[string]float64{"nope": 1})
		Expect(err).To(HaveOccurred())
	})
})
