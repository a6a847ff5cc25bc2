// Package recipe defines distillation recipes, the registry that finds them,
// and the matcher that remembers which recipe fits a tower's input.
package recipe

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sarchlab/distill/chem/ingredient"
	"github.com/sarchlab/distill/fluid"
)

var (
	// ErrDuplicateRecipe is returned when a recipe id is added twice.
	ErrDuplicateRecipe = errors.New("recipe already registered")

	// ErrTooFewFractions is returned for a recipe without results.
	ErrTooFewFractions = errors.New("recipe must produce at least one fraction")

	// ErrInvalidRecipe is returned when a recipe is missing its input or has
	// non-positive amounts.
	ErrInvalidRecipe = errors.New("invalid recipe")
)

// Kind groups recipes by the machine that runs them.
type Kind string

// KindDistillation is the kind of recipes run by distillation towers.
const KindDistillation Kind = "distillation"

// A Distillation consumes Input from the bottom of a tower and produces one
// fraction per stage above it.
type Distillation struct {
	ID           string
	Input        ingredient.Ingredient
	RequiredHeat HeatLevel
	Results      []fluid.Stack
}

// Kind returns KindDistillation.
func (r *Distillation) Kind() Kind {
	return KindDistillation
}

// Fractions returns how many stages above the controller the recipe needs.
func (r *Distillation) Fractions() int {
	return len(r.Results)
}

// Validate checks that the recipe can run at all.
func (r *Distillation) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRecipe)
	}

	if r.Input == nil {
		return fmt.Errorf("%s: %w: no input", r.ID, ErrInvalidRecipe)
	}

	if r.Input.RequiredAmount() <= 0 {
		return fmt.Errorf("%s: %w: input amount must be positive",
			r.ID, ErrInvalidRecipe)
	}

	if len(r.Results) == 0 {
		return fmt.Errorf("%s: %w", r.ID, ErrTooFewFractions)
	}

	for i, result := range r.Results {
		if result.IsEmpty() {
			return fmt.Errorf("%s: %w: fraction %d is empty",
				r.ID, ErrInvalidRecipe, i)
		}
	}

	return nil
}

// A Finder returns the candidate recipes of a kind.
type Finder interface {
	FindCandidates(kind Kind) []*Distillation
}

// Catalog is a Finder that returns candidates in registration order.
type Catalog struct {
	lock   sync.RWMutex
	byKind map[Kind][]*Distillation
	byID   map[string]*Distillation
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byKind: make(map[Kind][]*Distillation),
		byID:   make(map[string]*Distillation),
	}
}

// Add validates and registers a recipe.
func (c *Catalog) Add(r *Distillation) error {
	if err := r.Validate(); err != nil {
		return err
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	if _, found := c.byID[r.ID]; found {
		return fmt.Errorf("%s: %w", r.ID, ErrDuplicateRecipe)
	}

	c.byID[r.ID] = r
	c.byKind[r.Kind()] = append(c.byKind[r.Kind()], r)

	return nil
}

// FindCandidates returns the recipes of a kind in the order they were added.
func (c *Catalog) FindCandidates(kind Kind) []*Distillation {
	c.lock.RLock()
	defer c.lock.RUnlock()

	candidates := c.byKind[kind]
	out := make([]*Distillation, len(candidates))
	copy(out, candidates)

	return out
}

// Get finds a recipe by id.
func (c *Catalog) Get(id string) (*Distillation, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	r, found := c.byID[id]

	return r, found
}

// Len returns the number of recipes.
func (c *Catalog) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return len(c.byID)
}

// All returns every recipe in registration order.
func (c *Catalog) All() []*Distillation {
	return c.FindCandidates(KindDistillation)
}
