package world

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/klauspost/compress/zstd"

	"github.com/sarchlab/distill/bubblecap"
	"github.com/sarchlab/distill/chem"
	"github.com/sarchlab/distill/fluid"
	"github.com/sarchlab/distill/recipe"
	"github.com/sarchlab/distill/tower"
)

// SnapshotVersion is the version written into snapshot headers.
const SnapshotVersion = 1

// ErrNotEmpty is returned when loading a snapshot into a world with blocks.
var ErrNotEmpty = errors.New("world is not empty")

type snapshotHeader struct {
	Version int    `json:"version"`
	World   string `json:"world"`
	Ticks   uint64 `json:"ticks"`
}

type stackRecord struct {
	Fluid   string             `json:"fluid,omitempty"`
	Amount  int                `json:"amount,omitempty"`
	Mixture map[string]float64 `json:"mixture,omitempty"`
}

type blockRecord struct {
	Pos         tower.Pos        `json:"pos"`
	Kind        string           `json:"kind"`
	Heat        recipe.HeatLevel `json:"heat,omitempty"`
	Material    string           `json:"material,omitempty"`
	Tank        stackRecord      `json:"tank,omitzero"`
	Internal    stackRecord      `json:"internal,omitzero"`
	TicksToFill int              `json:"ticks_to_fill,omitempty"`
}

type towerRecord struct {
	Controller tower.Pos    `json:"controller"`
	Record     tower.Record `json:"record"`
}

type snapshot struct {
	Blocks []blockRecord `json:"blocks"`
	Towers []towerRecord `json:"towers"`
}

func toStackRecord(s fluid.Stack) stackRecord {
	if s.IsEmpty() {
		return stackRecord{}
	}

	r := stackRecord{Fluid: s.Fluid, Amount: s.Amount}
	if s.Mixture != nil {
		r.Mixture = s.Mixture.Concentrations()
	}

	return r
}

func (r stackRecord) toStack(reg chem.Registry) (fluid.Stack, error) {
	if r.Fluid == "" || r.Amount <= 0 {
		return fluid.Empty(), nil
	}

	s := fluid.NewStack(r.Fluid, r.Amount)
	if r.Mixture == nil {
		return s, nil
	}

	mix, err := chem.MixtureFromConcentrations(reg, r.Mixture)
	if err != nil {
		return fluid.Empty(), err
	}

	s.Mixture = mix

	return s, nil
}

// SaveSnapshot writes the world as a zstd compressed header line followed by
// a JSON body.
func (w *World) SaveSnapshot(out io.Writer) error {
	w.lock.RLock()
	defer w.lock.RUnlock()

	enc, err := zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(enc)

	hb, _ := json.Marshal(snapshotHeader{
		Version: SnapshotVersion,
		World:   w.Name(),
		Ticks:   w.ticks,
	})
	if _, err := bw.Write(hb); err != nil {
		return err
	}

	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := json.NewEncoder(bw).Encode(w.snapshot()); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return err
	}

	return enc.Close()
}

func (w *World) snapshot() snapshot {
	var snap snapshot

	for pos, b := range w.blocks {
		rec := blockRecord{Pos: pos, Kind: b.Kind()}

		switch b := b.(type) {
		case Burner:
			rec.Heat = b.Level
		case Solid:
			rec.Material = b.Material
		case capBlock:
			state := b.State()
			rec.Tank = toStackRecord(state.Tank)
			rec.Internal = toStackRecord(state.Internal)
			rec.TicksToFill = state.TicksToFill
		}

		snap.Blocks = append(snap.Blocks, rec)
	}

	slices.SortFunc(snap.Blocks, func(a, b blockRecord) int {
		return comparePos(a.Pos, b.Pos)
	})

	for _, t := range w.sortedTowers() {
		snap.Towers = append(snap.Towers, towerRecord{
			Controller: t.ControllerPos(),
			Record:     t.Record(),
		})
	}

	return snap
}

// LoadSnapshot fills an empty world from a snapshot. Towers are restored from
// their records; bubble caps left without a tower form new ones.
func (w *World) LoadSnapshot(in io.Reader, reg chem.Registry) error {
	dec, err := zstd.NewReader(in)
	if err != nil {
		return err
	}
	defer dec.Close()

	br := bufio.NewReader(dec)

	line, err := br.ReadBytes('\n')
	if err != nil {
		return fmt.Errorf("read snapshot header: %w", err)
	}

	var header snapshotHeader
	if err := json.Unmarshal(line, &header); err != nil {
		return fmt.Errorf("decode snapshot header: %w", err)
	}

	if header.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", header.Version)
	}

	var snap snapshot
	if err := json.NewDecoder(br).Decode(&snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	w.lock.Lock()
	defer w.lock.Unlock()

	if len(w.blocks) > 0 {
		return ErrNotEmpty
	}

	blocks, err := w.restoreBlocks(snap.Blocks, reg)
	if err != nil {
		return err
	}

	w.blocks = blocks

	towers, err := w.restoreTowers(snap.Towers)
	if err != nil {
		w.blocks = make(map[tower.Pos]Block)
		return err
	}

	for _, t := range towers {
		w.register(t)
	}

	for _, c := range w.sortedCaps() {
		if c.Tower() == nil {
			w.formTower(c.Pos())
		}
	}

	w.ticks = header.Ticks

	return nil
}

// restoreBlocks builds the block grid of a snapshot without touching the
// world.
func (w *World) restoreBlocks(
	records []blockRecord,
	reg chem.Registry,
) (map[tower.Pos]Block, error) {
	blocks := make(map[tower.Pos]Block, len(records))

	for _, rec := range records {
		if _, found := blocks[rec.Pos]; found {
			return nil, fmt.Errorf("%w: %s", ErrOccupied, rec.Pos)
		}

		switch rec.Kind {
		case KindBurner:
			blocks[rec.Pos] = Burner{Level: rec.Heat}
		case KindSolid:
			blocks[rec.Pos] = Solid{Material: rec.Material}
		case KindBubbleCap:
			c, err := w.restoreCap(rec, reg)
			if err != nil {
				return nil, err
			}

			blocks[rec.Pos] = capBlock{c}
		default:
			return nil, fmt.Errorf("unknown block kind %q at %s",
				rec.Kind, rec.Pos)
		}
	}

	return blocks, nil
}

// restoreTowers rebuilds towers over the restored blocks. Nothing is
// registered until every record has loaded.
func (w *World) restoreTowers(records []towerRecord) ([]*tower.Tower, error) {
	towers := make([]*tower.Tower, 0, len(records))

	for _, rec := range records {
		if _, ok := w.capAt(rec.Controller); !ok {
			return nil, fmt.Errorf("tower controller %s is not a bubble cap",
				rec.Controller)
		}

		t, err := w.towerBuilder.Restore(rec.Controller, rec.Record)
		if err != nil {
			return nil, err
		}

		towers = append(towers, t)
	}

	return towers, nil
}

func (w *World) restoreCap(
	rec blockRecord,
	reg chem.Registry,
) (*bubblecap.BubbleCap, error) {
	tank, err := rec.Tank.toStack(reg)
	if err != nil {
		return nil, fmt.Errorf("bubble cap at %s: %w", rec.Pos, err)
	}

	internal, err := rec.Internal.toStack(reg)
	if err != nil {
		return nil, fmt.Errorf("bubble cap at %s: %w", rec.Pos, err)
	}

	c := w.capBuilder.Build(w.capName(rec.Pos), rec.Pos)
	c.SetState(bubblecap.State{
		Tank:        tank,
		Internal:    internal,
		TicksToFill: rec.TicksToFill,
	})

	return c, nil
}
