// Package dispatch implements the security filter chain composition and
// the per request chain selection. A built Structure is an ordered,
// immutable sequence of ignored request matchers and security filter
// chains, evaluated top to bottom with the first matching entry winning.
package dispatch

import (
	"net/http"

	"github.com/zalando/webfence/matcher"
)

// Filter is a single processing stage of a security filter chain. Filter
// instances are chain specific and not request specific, so any state
// stored with a filter is shared between all requests (as in don't do
// that).
type Filter interface {

	// The name of a filter, used mainly for logging purpose.
	Name() string

	// Wrap returns the handler applying the filter in front of next.
	Wrap(next http.Handler) http.Handler
}

type filterFunc struct {
	name string
	wrap func(http.Handler) http.Handler
}

func (f *filterFunc) Name() string                        { return f.name }
func (f *filterFunc) Wrap(next http.Handler) http.Handler { return f.wrap(next) }

// FilterFunc allows using ordinary middleware functions as named filters.
func FilterFunc(name string, wrap func(http.Handler) http.Handler) Filter {
	return &filterFunc{name: name, wrap: wrap}
}

// Chain pairs a request matcher with the ordered sequence of filters to
// apply when it matches. Chains are built once and immutable afterwards.
type Chain struct {
	name    string
	matcher matcher.Matcher
	filters []Filter
}

// NewChain creates a chain applying filters, in the given order, to the
// requests matched by m. A nil matcher matches everything.
func NewChain(name string, m matcher.Matcher, filters ...Filter) *Chain {
	if m == nil {
		m = matcher.Any()
	}

	return &Chain{name: name, matcher: m, filters: filters}
}

func (c *Chain) Name() string { return c.name }

// Matches reports whether the chain applies to the request.
func (c *Chain) Matches(r *http.Request) bool { return c.matcher.Match(r) }

// Filters returns the ordered filters of the chain.
func (c *Chain) Filters() []Filter {
	filters := make([]Filter, len(c.filters))
	copy(filters, c.filters)
	return filters
}

// Handler composes the filters of the chain in front of next, with the
// first filter outermost.
func (c *Chain) Handler(next http.Handler) http.Handler {
	h := next
	for i := len(c.filters) - 1; i >= 0; i-- {
		h = c.filters[i].Wrap(h)
	}

	return h
}

// ChainBuilder materializes a security filter chain. Builders are
// registered during the configuration phase and invoked exactly once
// when the dispatch structure is assembled; a builder error fails the
// whole build.
type ChainBuilder interface {
	Build() (*Chain, error)
}

// ChainBuilderFunc allows using ordinary functions as chain builders.
type ChainBuilderFunc func() (*Chain, error)

func (f ChainBuilderFunc) Build() (*Chain, error) { return f() }
