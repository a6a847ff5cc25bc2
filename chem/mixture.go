package chem

import (
	"fmt"
	"sort"
	"strings"
)

// A Mixture maps molecules to concentrations. A molecule appears at most once.
type Mixture struct {
	contents map[*Molecule]float64
}

// NewMixture creates an empty mixture.
func NewMixture() *Mixture {
	return &Mixture{contents: make(map[*Molecule]float64)}
}

// Add adds concentration of a molecule, merging with what is already there.
// Non-positive amounts are ignored.
func (m *Mixture) Add(molecule *Molecule, concentration float64) *Mixture {
	if molecule == nil || concentration <= 0 {
		return m
	}

	m.contents[molecule] += concentration

	return m
}

// ConcentrationOf returns the concentration of the molecule, 0 if absent.
func (m *Mixture) ConcentrationOf(molecule *Molecule) float64 {
	if m == nil {
		return 0
	}

	return m.contents[molecule]
}

// Contains returns true if the molecule is present at any concentration.
func (m *Mixture) Contains(molecule *Molecule) bool {
	if m == nil {
		return false
	}

	_, found := m.contents[molecule]

	return found
}

// Molecules lists the molecules in the mixture sorted by id.
func (m *Mixture) Molecules() []*Molecule {
	if m == nil {
		return nil
	}

	molecules := make([]*Molecule, 0, len(m.contents))
	for molecule := range m.contents {
		molecules = append(molecules, molecule)
	}

	sort.Slice(molecules, func(i, j int) bool {
		return molecules[i].ID < molecules[j].ID
	})

	return molecules
}

// Len returns the number of distinct molecules.
func (m *Mixture) Len() int {
	if m == nil {
		return 0
	}

	return len(m.contents)
}

// HasUsableMolecule tells if the mixture holds the molecule at no less than
// minConcentration while at least one other molecule accepted by counterpart
// is also present.
func (m *Mixture) HasUsableMolecule(
	molecule *Molecule,
	minConcentration float64,
	counterpart func(*Molecule) bool,
) bool {
	if m == nil || molecule == nil {
		return false
	}

	concentration, found := m.contents[molecule]
	if !found || concentration < minConcentration {
		return false
	}

	for other := range m.contents {
		if other != molecule && counterpart(other) {
			return true
		}
	}

	return false
}

// Copy returns an independent mixture with the same contents.
func (m *Mixture) Copy() *Mixture {
	if m == nil {
		return nil
	}

	c := NewMixture()
	for molecule, concentration := range m.contents {
		c.contents[molecule] = concentration
	}

	return c
}

// Equal tells if two mixtures hold the same molecules at the same
// concentrations.
func (m *Mixture) Equal(other *Mixture) bool {
	if m.Len() != other.Len() {
		return false
	}

	if m == nil || other == nil {
		return m.Len() == 0 && other.Len() == 0
	}

	for molecule, concentration := range m.contents {
		if c, found := other.contents[molecule]; !found || c != concentration {
			return false
		}
	}

	return true
}

// Concentrations returns the contents keyed by molecule id.
func (m *Mixture) Concentrations() map[string]float64 {
	out := make(map[string]float64, m.Len())
	for _, molecule := range m.Molecules() {
		out[molecule.ID] = m.contents[molecule]
	}

	return out
}

// MixtureFromConcentrations builds a mixture from id keyed concentrations.
func MixtureFromConcentrations(
	reg Registry,
	concentrations map[string]float64,
) (*Mixture, error) {
	mix := NewMixture()
	for id, c := range concentrations {
		molecule, found := reg.Resolve(id)
		if !found {
			return nil, fmt.Errorf("unknown molecule %q", id)
		}

		mix.Add(molecule, c)
	}

	return mix, nil
}

func (m *Mixture) String() string {
	parts := make([]string, 0, m.Len())
	for _, molecule := range m.Molecules() {
		parts = append(parts,
			fmt.Sprintf("%s=%.3g", molecule.ID, m.contents[molecule]))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
