package world

import (
	"bytes"
	"encoding/json"

	"github.com/klauspost/compress/zstd"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/distill/chem"
	"github.com/sarchlab/distill/fluid"
	"github.com/sarchlab/distill/recipe"
	"github.com/sarchlab/distill/sim"
	"github.com/sarchlab/distill/tower"
)

func encodeSnapshot(snap snapshot) *bytes.Buffer {
	var buf bytes.Buffer

	enc, err := zstd.NewWriter(&buf)
	Expect(err).NotTo(HaveOccurred())

	header, err := json.Marshal(snapshotHeader{Version: SnapshotVersion})
	Expect(err).NotTo(HaveOccurred())
	_, err = enc.Write(append(header, '\n'))
	Expect(err).NotTo(HaveOccurred())
	Expect(json.NewEncoder(enc).Encode(snap)).To(Succeed())
	Expect(enc.Close()).To(Succeed())

	return &buf
}

var _ = Describe("Snapshot", func() {
	var (
		reg     *chem.MoleculeRegistry
		catalog *recipe.Catalog
		w       *World
	)

	newWorld := func() *World {
		return MakeBuilder().
			WithEngine(sim.NewSerialEngine()).
			WithFinder(catalog).
			WithProcessInterval(5).
			Build("World")
	}

	BeforeEach(func() {
		reg = chem.NewMoleculeRegistry()
		catalog = crudeCatalog()
		w = newWorld()
	})

	It("should restore blocks, tanks and towers", func() {
		sodium := reg.MustRegister(&chem.Molecule{ID: "sodium_ion", Charge: 1})
		chloride := reg.MustRegister(&chem.Molecule{ID: "chloride", Charge: -1})

		Expect(w.PlaceBurner(at(0), recipe.HeatKindled)).To(Succeed())
		for y := 1; y <= 3; y++ {
			_, err := w.PlaceBubbleCap(at(y))
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(w.PlaceSolid(at(4), "glass")).To(Succeed())
		_, err := w.Fill(at(1), fluid.NewStack("crude", 250))
		Expect(err).NotTo(HaveOccurred())
		brine := fluid.NewMixtureStack(
			chem.NewMixture().Add(sodium, 0.25).Add(chloride, 0.25), 40)
		_, err = w.Fill(at(3), brine)
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Run(7)).To(Succeed())

		var buf bytes.Buffer
		Expect(w.SaveSnapshot(&buf)).To(Succeed())

		loaded := newWorld()
		Expect(loaded.LoadSnapshot(&buf, reg)).To(Succeed())

		Expect(loaded.Ticks()).To(Equal(uint64(7)))
		towers := loaded.Towers()
		Expect(towers).To(HaveLen(1))
		Expect(towers[0].Record()).To(Equal(w.Towers()[0].Record()))
		Expect(loaded.HeatLevelAt(at(0))).To(Equal(recipe.HeatKindled))

		solid, ok := loaded.Block(at(4))
		Expect(ok).To(BeTrue())
		Expect(solid).To(Equal(Solid{Material: "glass"}))

		for y := 1; y <= 3; y++ {
			before, _ := w.BubbleCapAt(at(y))
			after, _ := loaded.BubbleCapAt(at(y))
			Expect(after.State().Tank.Equal(before.State().Tank)).To(BeTrue())
			Expect(after.State().Internal.Equal(before.State().Internal)).
				To(BeTrue())
			Expect(after.TicksToFill()).To(Equal(before.TicksToFill()))
			Expect(after.Tower()).To(BeIdenticalTo(towers[0]))
		}
	})

	It("should refuse to load into a world with blocks", func() {
		var buf bytes.Buffer
		Expect(w.SaveSnapshot(&buf)).To(Succeed())

		other := newWorld()
		Expect(other.PlaceSolid(tower.Pos{}, "stone")).To(Succeed())

		Expect(other.LoadSnapshot(&buf, reg)).To(MatchError(ErrNotEmpty))
	})

	It("should leave the world empty when a block fails to load", func() {
		bad := encodeSnapshot(snapshot{Blocks: []blockRecord{
			{Pos: at(0), Kind: KindSolid, Material: "stone"},
			{Pos: at(1), Kind: "lava"},
		}})

		Expect(w.LoadSnapshot(bad, reg)).To(MatchError(
			ContainSubstring("unknown block kind")))

		_, found := w.Block(at(0))
		Expect(found).To(BeFalse())

		good := encodeSnapshot(snapshot{Blocks: []blockRecord{
			{Pos: at(0), Kind: KindSolid, Material: "stone"},
		}})
		Expect(w.LoadSnapshot(good, reg)).To(Succeed())

		_, found = w.Block(at(0))
		Expect(found).To(BeTrue())
	})

	It("should leave the world empty when a tower fails to load", func() {
		bad := encodeSnapshot(snapshot{
			Blocks: []blockRecord{
				{Pos: at(0), Kind: KindSolid, Material: "stone"},
				{Pos: at(1), Kind: KindBubbleCap},
			},
			Towers: []towerRecord{
				{Controller: at(1), Record: tower.Record{Height: 1}},
				{Controller: at(0), Record: tower.Record{Height: 1}},
			},
		})

		Expect(w.LoadSnapshot(bad, reg)).To(MatchError(
			ContainSubstring("is not a bubble cap")))
		Expect(w.Towers()).To(BeEmpty())

		_, found := w.Block(at(1))
		Expect(found).To(BeFalse())
	})

	It("should reject data that is not a snapshot", func() {
		err := w.LoadSnapshot(bytes.NewBufferString("not zstd"), reg)

		Expect(err).To(HaveOccurred())
	})
})
