package ingredient

import "github.com/sarchlab/distill/chem"

// A Tag is the keyed record stored alongside a fluid stack to describe a
// salt requirement without resolving it.
type Tag struct {
	RequiredCation        string  `json:"RequiredCation"`
	RequiredAnion         string  `json:"RequiredAnion"`
	RequiredConcentration float32 `json:"RequiredConcentration"`
}

// Tag returns the keyed record of the requirement.
func (p *IonPair) Tag() Tag {
	return Tag{
		RequiredCation:        p.cationID,
		RequiredAnion:         p.anionID,
		RequiredConcentration: p.concentration,
	}
}

// FromTag rebuilds a requirement from its keyed record. Unknown ids are kept
// and leave the requirement unsatisfiable.
func FromTag(tag Tag, reg chem.Registry) *IonPair {
	return resolveIonPair(
		reg, tag.RequiredCation, tag.RequiredAnion, tag.RequiredConcentration)
}

// DescribeTag summarizes a keyed record, naming the salt only if both ions
// resolve.
func DescribeTag(tag Tag, reg chem.Registry, iupac bool) string {
	cation, _ := reg.Resolve(tag.RequiredCation)
	anion, _ := reg.Resolve(tag.RequiredAnion)

	return describe(saltName(cation, anion, iupac), tag.RequiredConcentration)
}

// ContainedMoleculesOf lists the known ions a keyed record refers to.
func ContainedMoleculesOf(tag Tag, reg chem.Registry) []*chem.Molecule {
	cation, _ := reg.Resolve(tag.RequiredCation)
	anion, _ := reg.Resolve(tag.RequiredAnion)

	return containedMolecules(cation, anion)
}
