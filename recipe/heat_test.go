package recipe

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"
)

var _ = Describe("HeatLevel", func() {
	It("should be ordered", func() {
		Expect(HeatKindled.Satisfies(HeatFading)).To(BeTrue())
		Expect(HeatKindled.Satisfies(HeatKindled)).To(BeTrue())
		Expect(HeatSmouldering.Satisfies(HeatKindled)).To(BeFalse())
		Expect(HeatNone.Satisfies(HeatNone)).To(BeTrue())
	})

	It("should parse names", func() {
		level, err := ParseHeatLevel(" Seething ")

		Expect(err).NotTo(HaveOccurred())
		Expect(level).To(Equal(HeatSeething))

		_, err = ParseHeatLevel("lukewarm")
		Expect(err).To(HaveOccurred())
	})

	It("should read and write yaml", func() {
		var doc struct {
			Heat HeatLevel `yaml:"heat"`
		}

		Expect(yaml.Unmarshal([]byte("heat: kindled\n"), &doc)).To(Succeed())
		Expect(doc.Heat).To(Equal(HeatKindled))

		out, err := yaml.Marshal(doc)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal("heat: kindled\n"))
	})

	It("should print unknown levels", func() {
		Expect(HeatLevel(9).String()).To(Equal("HeatLevel(9)"))
	})
})
