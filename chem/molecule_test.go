package chem

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MoleculeRegistry", func() {
	var reg *MoleculeRegistry

	BeforeEach(func() {
		reg = NewMoleculeRegistry()
	})

	It("should resolve registered molecules by id", func() {
		sodium := reg.MustRegister(&Molecule{ID: "destroy:sodium_ion", Charge: 1})

		m, found := reg.Resolve("destroy:sodium_ion")

		Expect(found).To(BeTrue())
		Expect(m).To(BeIdenticalTo(sodium))
	})

	It("should not resolve unknown ids", func() {
		_, found := reg.Resolve("destroy:unobtainium")

		Expect(found).To(BeFalse())
	})

	It("should reject duplicate ids", func() {
		reg.MustRegister(&Molecule{ID: "destroy:water"})

		err := reg.Register(&Molecule{ID: "destroy:water"})

		Expect(err).To(MatchError(ErrDuplicateMolecule))
	})

	It("should keep registration order", func() {
		reg.MustRegister(&Molecule{ID: "b"})
		reg.MustRegister(&Molecule{ID: "a"})

		Expect(reg.IDs()).To(Equal([]string{"b", "a"}))
		Expect(reg.Len()).To(Equal(2))
	})

	It("should prefer the IUPAC name when asked", func() {
		m := &Molecule{ID: "x", Name: "Brine", IUPACName: "Sodium Chloride"}

		Expect(m.DisplayName(true)).To(Equal("Sodium Chloride"))
		Expect(m.DisplayName(false)).To(Equal("Brine"))
		Expect((&Molecule{ID: "y"}).DisplayName(false)).To(Equal("y"))
	})
})
