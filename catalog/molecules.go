package catalog

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/distill/chem"
)

type moleculeFile struct {
	Molecules []moleculeSpec `yaml:"molecules"`
}

type moleculeSpec struct {
	ID        string `yaml:"id"`
	Charge    int    `yaml:"charge"`
	Name      string `yaml:"name"`
	IUPACName string `yaml:"iupac_name"`
}

// LoadMolecules reads a molecule file into a new registry.
func LoadMolecules(path string) (*chem.MoleculeRegistry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	reg, err := ParseMolecules(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return reg, nil
}

// ParseMolecules reads molecules from YAML. Every bad entry is reported.
func ParseMolecules(data []byte) (*chem.MoleculeRegistry, error) {
	var f moleculeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	reg := chem.NewMoleculeRegistry()

	var errs error
	for i, spec := range f.Molecules {
		if spec.ID == "" {
			errs = multierr.Append(errs,
				fmt.Errorf("molecule %d: missing id", i))
			continue
		}

		err := reg.Register(&chem.Molecule{
			ID:        spec.ID,
			Charge:    spec.Charge,
			Name:      spec.Name,
			IUPACName: spec.IUPACName,
		})
		errs = multierr.Append(errs, err)
	}

	if errs != nil {
		return nil, errs
	}

	return reg, nil
}
