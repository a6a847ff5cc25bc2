package ingredient

import (
	"bytes"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/distill/chem"
	"github.com/sarchlab/distill/fluid"
)

var _ = Describe("IonPair", func() {
	var (
		reg                       *chem.MoleculeRegistry
		calcium, chloride, sodium *chem.Molecule
		water                     *chem.Molecule
		calciumChloride           *IonPair
	)

	BeforeEach(func() {
		reg = chem.NewMoleculeRegistry()
		calcium = reg.MustRegister(&chem.Molecule{
			ID: "destroy:calcium_ion", Charge: 2, Name: "Calcium"})
		chloride = reg.MustRegister(&chem.Molecule{
			ID: "destroy:chloride", Charge: -1, Name: "Chloride"})
		sodium = reg.MustRegister(&chem.Molecule{
			ID: "destroy:sodium_ion", Charge: 1, Name: "Sodium"})
		water = reg.MustRegister(&chem.Molecule{ID: "destroy:water"})

		var err error
		calciumChloride, err = NewIonPair(calcium, chloride, 0.5, 100)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("construction", func() {
		It("should reject a cation that is not positive", func() {
			_, err := NewIonPair(water, chloride, 1, 100)
			Expect(err).To(MatchError(ErrCationCharge))

			_, err = NewIonPair(chloride, chloride, 1, 100)
			Expect(err).To(MatchError(ErrCationCharge))
		})

		It("should reject an anion that is not negative", func() {
			_, err := NewIonPair(sodium, water, 1, 100)
			Expect(err).To(MatchError(ErrAnionCharge))

			_, err = NewIonPair(sodium, calcium, 1, 100)
			Expect(err).To(MatchError(ErrAnionCharge))
		})

		It("should reject missing ions", func() {
			_, err := NewIonPair(nil, chloride, 1, 100)
			Expect(err).To(MatchError(ErrMissingIon))
		})

		It("should reject a non-positive concentration", func() {
			_, err := NewIonPair(sodium, chloride, 0, 100)
			Expect(err).To(MatchError(ErrConcentration))
		})
	})

	Context("matching", func() {
		It("should scale each ion by its charge", func() {
			mix := chem.NewMixture().Add(calcium, 1.0).Add(chloride, 0.5)

			Expect(calciumChloride.Satisfies(mix)).To(BeTrue())
		})

		It("should reject too little cation", func() {
			mix := chem.NewMixture().Add(calcium, 0.99).Add(chloride, 0.5)

			Expect(calciumChloride.Satisfies(mix)).To(BeFalse())
		})

		It("should reject too little anion", func() {
			mix := chem.NewMixture().Add(calcium, 1.0).Add(chloride, 0.49)

			Expect(calciumChloride.Satisfies(mix)).To(BeFalse())
		})

		It("should reject ions that are not together", func() {
			onlyCation := chem.NewMixture().Add(calcium, 5).Add(water, 55)
			onlyAnion := chem.NewMixture().Add(chloride, 5).Add(water, 55)

			Expect(calciumChloride.Satisfies(onlyCation)).To(BeFalse())
			Expect(calciumChloride.Satisfies(onlyAnion)).To(BeFalse())
		})

		It("should accept extra molecules", func() {
			mix := chem.NewMixture().
				Add(calcium, 1).Add(chloride, 2).Add(sodium, 3).Add(water, 55)

			Expect(calciumChloride.Satisfies(mix)).To(BeTrue())
		})

		It("should test only mixture stacks", func() {
			mix := chem.NewMixture().Add(calcium, 1).Add(chloride, 2)

			Expect(calciumChloride.Test(fluid.NewMixtureStack(mix, 10))).
				To(BeTrue())
			Expect(calciumChloride.Test(fluid.NewStack("water", 10))).
				To(BeFalse())
			Expect(calciumChloride.Test(fluid.Empty())).To(BeFalse())
		})
	})

	Context("description", func() {
		It("should name the salt", func() {
			Expect(calciumChloride.Describe()).
				To(Equal("Mixture with Calcium Chloride at 0.50 mol/B"))
			Expect(calciumChloride.ContainedMolecules()).
				To(Equal([]*chem.Molecule{calcium, chloride}))
		})

		It("should label unknown ions instead of failing", func() {
			tag := Tag{
				RequiredCation:        "destroy:unobtainium_ion",
				RequiredAnion:         "destroy:chloride",
				RequiredConcentration: 1,
			}

			Expect(DescribeTag(tag, reg, false)).
				To(ContainSubstring(UnknownMoleculeLabel))
			Expect(ContainedMoleculesOf(tag, reg)).
				To(Equal([]*chem.Molecule{chloride}))

			p := FromTag(tag, reg)
			Expect(p.Satisfies(chem.NewMixture().Add(chloride, 9))).To(BeFalse())
			Expect(p.SaltName(false)).To(Equal(UnknownMoleculeLabel))
		})

		It("should round trip through the keyed record", func() {
			p := FromTag(calciumChloride.Tag(), reg)

			Expect(p.Cation()).To(BeIdenticalTo(calcium))
			Expect(p.Anion()).To(BeIdenticalTo(chloride))
			Expect(p.Concentration()).To(Equal(float32(0.5)))
		})
	})

	Context("structured record", func() {
		It("should round trip every field", func() {
			buf := new(bytes.Buffer)
			Expect(calciumChloride.WriteBinary(buf)).To(Succeed())

			p, err := ReadBinary(buf, reg)

			Expect(err).NotTo(HaveOccurred())
			Expect(p.CationID()).To(Equal("destroy:calcium_ion"))
			Expect(p.AnionID()).To(Equal("destroy:chloride"))
			Expect(p.Concentration()).To(Equal(float32(0.5)))
			Expect(buf.Len()).To(Equal(0))
		})

		It("should keep unknown ids", func() {
			tag := Tag{
				RequiredCation:        "mod:mystery",
				RequiredAnion:         "mod:enigma",
				RequiredConcentration: 0.1,
			}
			buf := new(bytes.Buffer)
			Expect(FromTag(tag, reg).WriteBinary(buf)).To(Succeed())

			p, err := ReadBinary(buf, reg)

			Expect(err).NotTo(HaveOccurred())
			Expect(p.Tag()).To(Equal(tag))
			Expect(p.Cation()).To(BeNil())
		})

		It("should write fields in a fixed order", func() {
			buf := new(bytes.Buffer)
			p := FromTag(Tag{RequiredCation: "a", RequiredAnion: "bc",
				RequiredConcentration: 1}, reg)
			Expect(p.WriteBinary(buf)).To(Succeed())

			Expect(buf.Bytes()).To(Equal([]byte{
				1, 'a', 2, 'b', 'c', 0x3f, 0x80, 0x00, 0x00}))
		})

		It("should fail on truncated input", func() {
			buf := new(bytes.Buffer)
			Expect(calciumChloride.WriteBinary(buf)).To(Succeed())
			truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-2])

			_, err := ReadBinary(truncated, reg)

			Expect(err).To(HaveOccurred())
		})
	})

	Context("authored record", func() {
		It("should default the concentration to 1", func() {
			p, err := DecodeJSON([]byte(
				`{"cation":"destroy:sodium_ion","anion":"destroy:chloride"}`), reg)

			Expect(err).NotTo(HaveOccurred())
			Expect(p.Concentration()).To(Equal(float32(1)))
			Expect(p.RequiredAmount()).To(Equal(DefaultAmount))
		})

		It("should round trip through MarshalJSON", func() {
			data, err := json.Marshal(calciumChloride)
			Expect(err).NotTo(HaveOccurred())

			p, err := DecodeJSON(data, reg)

			Expect(err).NotTo(HaveOccurred())
			Expect(p.Tag()).To(Equal(calciumChloride.Tag()))
			Expect(p.RequiredAmount()).To(Equal(100))
		})

		It("should require both ions", func() {
			_, err := DecodeJSON([]byte(`{"cation":"destroy:sodium_ion"}`), reg)
			Expect(err).To(MatchError(ErrMissingIon))

			_, err = DecodeJSON([]byte(`{"anion":"destroy:chloride"}`), reg)
			Expect(err).To(MatchError(ErrMissingIon))
		})

		It("should reject wrongly charged ions", func() {
			_, err := DecodeJSON([]byte(
				`{"cation":"destroy:chloride","anion":"destroy:chloride"}`), reg)
			Expect(err).To(MatchError(ErrCationCharge))

			_, err = DecodeJSON([]byte(
				`{"cation":"destroy:sodium_ion","anion":"destroy:water"}`), reg)
			Expect(err).To(MatchError(ErrAnionCharge))
		})

		It("should reject unknown ions", func() {
			_, err := DecodeJSON([]byte(
				`{"cation":"destroy:nope","anion":"destroy:chloride"}`), reg)

			Expect(err).To(MatchError(ErrUnknownMolecule))
		})

		It("should reject malformed records", func() {
			_, err := DecodeJSON([]byte(
				`{"cation":1,"anion":"destroy:chloride"}`), reg)
			Expect(err).To(MatchError(ErrMalformedRecord))

			_, err = DecodeJSON([]byte(`[1,2]`), reg)
			Expect(err).To(MatchError(ErrMalformedRecord))

			_, err = DecodeJSON([]byte(`{"cation":"destroy:sodium_ion",`+
				`"anion":"destroy:chloride","concentration":-1}`), reg)
			Expect(err).To(MatchError(ErrMalformedRecord))
		})
	})
})
