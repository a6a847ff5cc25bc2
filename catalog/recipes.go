package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/distill/chem"
	"github.com/sarchlab/distill/chem/ingredient"
	"github.com/sarchlab/distill/fluid"
	"github.com/sarchlab/distill/recipe"
)

// Input types of authored recipes.
const (
	InputFluid   = "fluid"
	InputIonPair = ingredient.TypeIonPair
)

// ErrSchema is returned when a recipe file does not match the recipe schema.
var ErrSchema = errors.New("recipe file does not match schema")

//go:embed recipes.schema.json
var recipesSchemaSource string

var recipesSchema = jsonschema.MustCompileString(
	"recipes.schema.json", recipesSchemaSource)

type recipeFile struct {
	Recipes []recipeSpec `yaml:"recipes"`
}

type recipeSpec struct {
	ID      string           `yaml:"id"`
	Heat    recipe.HeatLevel `yaml:"heat"`
	Input   map[string]any   `yaml:"input"`
	Results []resultSpec     `yaml:"results"`
}

type resultSpec struct {
	Fluid  string `yaml:"fluid"`
	Amount int    `yaml:"amount"`
}

type fluidInput struct {
	Fluid  string `json:"fluid"`
	Amount int    `json:"amount"`
}

// LoadRecipes reads a recipe file. Salt inputs are resolved against reg.
func LoadRecipes(path string, reg chem.Registry) (*recipe.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := ParseRecipes(raw, reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// ParseRecipes validates YAML recipes against the recipe schema and builds a
// catalog in file order. Every bad recipe is reported.
func ParseRecipes(data []byte, reg chem.Registry) (*recipe.Catalog, error) {
	if err := validateRecipes(data); err != nil {
		return nil, err
	}

	var f recipeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	c := recipe.NewCatalog()

	var errs error
	for _, spec := range f.Recipes {
		r, err := buildRecipe(spec, reg)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("recipe %s: %w", spec.ID, err))
			continue
		}

		errs = multierr.Append(errs, c.Add(r))
	}

	if errs != nil {
		return nil, errs
	}

	return c, nil
}

func validateRecipes(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}

	if err := recipesSchema.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}

	return nil
}

func buildRecipe(spec recipeSpec, reg chem.Registry) (*recipe.Distillation, error) {
	input, err := decodeInput(spec.Input, reg)
	if err != nil {
		return nil, err
	}

	r := &recipe.Distillation{
		ID:           spec.ID,
		Input:        input,
		RequiredHeat: spec.Heat,
	}

	for _, res := range spec.Results {
		r.Results = append(r.Results, fluid.NewStack(res.Fluid, res.Amount))
	}

	return r, nil
}

func decodeInput(input map[string]any, reg chem.Registry) (ingredient.Ingredient, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	switch input["type"] {
	case InputIonPair:
		return ingredient.DecodeJSON(raw, reg)
	case InputFluid:
		var in fluidInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, err
		}

		if in.Fluid == "" {
			return nil, errors.New("fluid input needs a fluid")
		}

		if in.Amount == 0 {
			in.Amount = ingredient.DefaultAmount
		}

		return ingredient.FluidIngredient{Fluid: in.Fluid, Amount: in.Amount}, nil
	default:
		return nil, fmt.Errorf("unknown input type %v", input["type"])
	}
}
