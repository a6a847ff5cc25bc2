package ingredient

import (
	"fmt"

	"github.com/sarchlab/distill/chem"
	"github.com/sarchlab/distill/fluid"
)

// IonPair requires a mixture in which a cation and an anion are present
// together, each at the required concentration scaled by its charge.
//
// Ion pairs decoded from the structured record may reference ids the
// registry does not know; such a requirement is never satisfied.
type IonPair struct {
	cationID      string
	anionID       string
	cation        *chem.Molecule
	anion         *chem.Molecule
	concentration float32
	amount        int
}

// NewIonPair validates the ions and creates the requirement.
func NewIonPair(
	cation, anion *chem.Molecule,
	concentration float32,
	amount int,
) (*IonPair, error) {
	if cation == nil || anion == nil {
		return nil, ErrMissingIon
	}

	if cation.Charge <= 0 {
		return nil, fmt.Errorf("%s: %w", cation.ID, ErrCationCharge)
	}

	if anion.Charge >= 0 {
		return nil, fmt.Errorf("%s: %w", anion.ID, ErrAnionCharge)
	}

	if concentration <= 0 {
		return nil, fmt.Errorf("%g: %w", concentration, ErrConcentration)
	}

	return &IonPair{
		cationID:      cation.FullID(),
		anionID:       anion.FullID(),
		cation:        cation,
		anion:         anion,
		concentration: concentration,
		amount:        amount,
	}, nil
}

func resolveIonPair(
	reg chem.Registry,
	cationID, anionID string,
	concentration float32,
) *IonPair {
	p := &IonPair{
		cationID:      cationID,
		anionID:       anionID,
		concentration: concentration,
	}

	p.cation, _ = reg.Resolve(cationID)
	p.anion, _ = reg.Resolve(anionID)

	return p
}

// CationID returns the id of the required cation.
func (p *IonPair) CationID() string {
	return p.cationID
}

// AnionID returns the id of the required anion.
func (p *IonPair) AnionID() string {
	return p.anionID
}

// Cation returns the resolved cation, nil if it is unknown.
func (p *IonPair) Cation() *chem.Molecule {
	return p.cation
}

// Anion returns the resolved anion, nil if it is unknown.
func (p *IonPair) Anion() *chem.Molecule {
	return p.anion
}

// Concentration returns the required salt concentration.
func (p *IonPair) Concentration() float32 {
	return p.concentration
}

// RequiredAmount returns the amount consumed per use.
func (p *IonPair) RequiredAmount() int {
	return p.amount
}

// WithAmount returns a copy requiring the given amount.
func (p *IonPair) WithAmount(amount int) *IonPair {
	c := *p
	c.amount = amount

	return &c
}

// Satisfies tells if the mixture holds the salt. The cation must reach
// concentration*charge while the anion is present, and the anion must reach
// concentration*-charge while the cation is present.
func (p *IonPair) Satisfies(mix *chem.Mixture) bool {
	if p.cation == nil || p.anion == nil || mix == nil {
		return false
	}

	required := float64(p.concentration)
	isAnion := func(m *chem.Molecule) bool { return m == p.anion }
	isCation := func(m *chem.Molecule) bool { return m == p.cation }

	return mix.HasUsableMolecule(
		p.cation, required*float64(p.cation.Charge), isAnion) &&
		mix.HasUsableMolecule(
			p.anion, required*float64(-p.anion.Charge), isCation)
}

// Test returns true if the stack is a mixture that holds the salt.
func (p *IonPair) Test(stack fluid.Stack) bool {
	if stack.IsEmpty() || stack.Fluid != fluid.MixtureFluid {
		return false
	}

	return p.Satisfies(stack.Mixture)
}

// SaltName names the salt from its ions, or returns the unknown molecule
// label.
func (p *IonPair) SaltName(iupac bool) string {
	return saltName(p.cation, p.anion, iupac)
}

// Describe summarizes the requirement.
func (p *IonPair) Describe() string {
	return describe(p.SaltName(false), p.concentration)
}

// ContainedMolecules lists the ions the requirement refers to that are known.
func (p *IonPair) ContainedMolecules() []*chem.Molecule {
	return containedMolecules(p.cation, p.anion)
}

func saltName(cation, anion *chem.Molecule, iupac bool) string {
	if cation == nil || anion == nil {
		return UnknownMoleculeLabel
	}

	return cation.DisplayName(iupac) + " " + anion.DisplayName(iupac)
}

func describe(name string, concentration float32) string {
	return fmt.Sprintf("Mixture with %s at %.2f mol/B", name, concentration)
}

func containedMolecules(cation, anion *chem.Molecule) []*chem.Molecule {
	molecules := make([]*chem.Molecule, 0, 2)
	if cation != nil {
		molecules = append(molecules, cation)
	}

	if anion != nil {
		molecules = append(molecules, anion)
	}

	return molecules
}
