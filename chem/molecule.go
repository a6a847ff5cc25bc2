// Package chem defines molecules, the registry that resolves them by id, and
// mixtures of molecules at given concentrations.
package chem

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateMolecule is returned when a molecule id is registered twice.
var ErrDuplicateMolecule = errors.New("molecule already registered")

// A Molecule is an immutable species record. Molecules are registered once
// and shared by pointer, so pointer equality is molecule identity.
type Molecule struct {
	ID        string
	Charge    int
	Name      string
	IUPACName string
}

// FullID returns the namespaced identifier of the molecule.
func (m *Molecule) FullID() string {
	return m.ID
}

// DisplayName returns the IUPAC name when asked for and available, and the
// common name otherwise.
func (m *Molecule) DisplayName(iupac bool) string {
	if iupac && m.IUPACName != "" {
		return m.IUPACName
	}

	if m.Name == "" {
		return m.ID
	}

	return m.Name
}

// IsCation returns true if the molecule carries a positive charge.
func (m *Molecule) IsCation() bool {
	return m.Charge > 0
}

// IsAnion returns true if the molecule carries a negative charge.
func (m *Molecule) IsAnion() bool {
	return m.Charge < 0
}

// A Registry resolves molecule ids.
type Registry interface {
	Resolve(id string) (*Molecule, bool)
}

// MoleculeRegistry is an in-memory Registry that remembers registration
// order.
type MoleculeRegistry struct {
	lock      sync.RWMutex
	molecules map[string]*Molecule
	order     []string
}

// NewMoleculeRegistry creates an empty registry.
func NewMoleculeRegistry() *MoleculeRegistry {
	return &MoleculeRegistry{
		molecules: make(map[string]*Molecule),
	}
}

// Register adds a molecule. The registry keeps the pointer it is given.
func (r *MoleculeRegistry) Register(m *Molecule) error {
	if m == nil || m.ID == "" {
		return errors.New("molecule must have an id")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, found := r.molecules[m.ID]; found {
		return fmt.Errorf("%s: %w", m.ID, ErrDuplicateMolecule)
	}

	r.molecules[m.ID] = m
	r.order = append(r.order, m.ID)

	return nil
}

// MustRegister registers a molecule and panics on failure. It returns the
// molecule for convenience.
func (r *MoleculeRegistry) MustRegister(m *Molecule) *Molecule {
	if err := r.Register(m); err != nil {
		panic(err)
	}

	return m
}

// Resolve finds a molecule by id.
func (r *MoleculeRegistry) Resolve(id string) (*Molecule, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	m, found := r.molecules[id]

	return m, found
}

// IDs lists the registered ids in registration order.
func (r *MoleculeRegistry) IDs() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	ids := make([]string, len(r.order))
	copy(ids, r.order)

	return ids
}

// Len returns the number of registered molecules.
func (r *MoleculeRegistry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.order)
}
