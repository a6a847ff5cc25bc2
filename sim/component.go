package sim

import (
	"log"
	"regexp"
)

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Component is a element that is being simulated.
type Component interface {
	Named
	Handler
	Hookable
}

// ComponentBase provides some functions that other component can use.
type ComponentBase struct {
	HookableBase

	name string
}

// NewComponentBase creates a new ComponentBase
func NewComponentBase(name string) *ComponentBase {
	NameMustBeValid(name)

	c := new(ComponentBase)
	c.name = name

	return c
}

// Name returns the name of the BasicComponent
func (c *ComponentBase) Name() string {
	return c.name
}

var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(\.[A-Za-z0-9_\[\]@,:-]+)*$`)

// NameMustBeValid panics if the name is not a dot separated list of tokens
// starting with a letter.
func NameMustBeValid(name string) {
	if !namePattern.MatchString(name) {
		log.Panicf("invalid name %q", name)
	}
}
