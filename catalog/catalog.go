// Package catalog loads the data a simulation runs on: molecules, recipes
// and tuning, from YAML files in one directory.
package catalog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sarchlab/distill/chem"
	"github.com/sarchlab/distill/recipe"
)

// File names inside a catalog directory.
const (
	MoleculesFile = "molecules.yaml"
	RecipesFile   = "recipes.yaml"
	TuningFile    = "tuning.yaml"
)

// Catalog is everything loaded from a catalog directory.
type Catalog struct {
	Dir       string
	Molecules *chem.MoleculeRegistry
	Recipes   *recipe.Catalog
	Tuning    Tuning
}

// Load reads a catalog directory. The tuning file is optional.
func Load(dir string) (*Catalog, error) {
	reg, err := LoadMolecules(filepath.Join(dir, MoleculesFile))
	if err != nil {
		return nil, err
	}

	recipes, err := LoadRecipes(filepath.Join(dir, RecipesFile), reg)
	if err != nil {
		return nil, err
	}

	tuning, err := LoadTuning(filepath.Join(dir, TuningFile))
	if errors.Is(err, fs.ErrNotExist) {
		tuning, err = DefaultTuning(), nil
	}

	if err != nil {
		return nil, err
	}

	return &Catalog{
		Dir:       dir,
		Molecules: reg,
		Recipes:   recipes,
		Tuning:    tuning,
	}, nil
}

// Exists tells if dir looks like a catalog directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, RecipesFile))
	return err == nil
}
