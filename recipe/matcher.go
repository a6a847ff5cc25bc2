package recipe

import "github.com/sarchlab/distill/fluid"

// A Matcher remembers the last recipe that matched an input. The candidate
// list is only scanned again when the remembered recipe stops matching.
type Matcher struct {
	finder Finder
	last   *Distillation
	scans  int
}

// NewMatcher creates a matcher that queries the finder on a cache miss.
func NewMatcher(finder Finder) *Matcher {
	return &Matcher{finder: finder}
}

// Last returns the remembered recipe, nil if there is none.
func (m *Matcher) Last() *Distillation {
	return m.last
}

// StillValid tells if the remembered recipe accepts the input.
func (m *Matcher) StillValid(input fluid.Stack) bool {
	return m.last != nil && m.last.Input.Test(input)
}

// Refresh returns the recipe for the input. The first matching candidate in
// the finder's order wins; no match clears the remembered recipe.
func (m *Matcher) Refresh(input fluid.Stack) *Distillation {
	if m.StillValid(input) {
		return m.last
	}

	m.last = nil
	m.scans++

	for _, candidate := range m.finder.FindCandidates(KindDistillation) {
		if candidate.Input.Test(input) {
			m.last = candidate
			break
		}
	}

	return m.last
}

// Scans returns how many times the candidate list was queried.
func (m *Matcher) Scans() int {
	return m.scans
}

// Forget drops the remembered recipe.
func (m *Matcher) Forget() {
	m.last = nil
}
