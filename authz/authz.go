// Package authz implements the ordered mapping registry behind URL
// authorization: an ordered sequence of (matcher, access rule) pairs
// with first-match-wins evaluation, and the permit-all injection that
// places synthetic allow rules ahead of all previously registered ones.
//
// The package carries access rule attributes opaquely and never
// interprets them, except for the permit-all attribute understood by the
// default decider. The expression language giving attributes their
// meaning belongs to the application.
package authz

import (
	"errors"
	"net/http"

	"github.com/zalando/webfence/matcher"
)

// Attribute is a single opaque access configuration attribute, e.g. a
// role requirement expression.
type Attribute string

// PermitAll is the attribute granting access to every request.
const PermitAll Attribute = "permitAll"

// Rule is the ordered list of attributes attached to a mapping.
type Rule []Attribute

// Mapping associates a request matcher with the access rule applying to
// the requests it matches.
type Mapping struct {
	Matcher matcher.Matcher
	Rule    Rule
}

// ErrIndexOutOfRange is returned by Registry.Insert for a negative index
// or an index beyond the current length.
var ErrIndexOutOfRange = errors.New("mapping index out of range")

// Registry is an ordered, mutable sequence of mappings. Mutation happens
// during the single threaded configuration phase; once the final chain
// is built, the registry must be treated as read-only. Duplicate
// matchers are legal, the registry never merges or deduplicates entries.
type Registry struct {
	mappings []Mapping
}

// Insert adds a mapping at position i, shifting subsequent entries right
// and preserving the relative order of all other entries.
func (g *Registry) Insert(i int, m Mapping) error {
	if i < 0 || i > len(g.mappings) {
		return ErrIndexOutOfRange
	}

	g.mappings = append(g.mappings, Mapping{})
	copy(g.mappings[i+1:], g.mappings[i:])
	g.mappings[i] = m
	return nil
}

// Append adds a mapping after all existing entries.
func (g *Registry) Append(m Mapping) {
	g.mappings = append(g.mappings, m)
}

// Len returns the number of registered mappings.
func (g *Registry) Len() int { return len(g.mappings) }

// Mappings returns a copy of the ordered mapping sequence, first to
// last.
func (g *Registry) Mappings() []Mapping {
	mappings := make([]Mapping, len(g.mappings))
	copy(mappings, g.mappings)
	return mappings
}

// Match evaluates the mappings in order and returns the first one whose
// matcher matches the request; later mappings are not consulted.
// Evaluation is pure, repeated evaluation of the same request selects
// the same mapping.
func (g *Registry) Match(r *http.Request) (Mapping, bool) {
	for _, m := range g.mappings {
		if m.Matcher.Match(r) {
			return m, true
		}
	}

	return Mapping{}, false
}
