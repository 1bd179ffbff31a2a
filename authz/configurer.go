package authz

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/zalando/webfence/dispatch"
	"github.com/zalando/webfence/matcher"
)

// ErrAccessDenied is the decision of a decider rejecting a request.
var ErrAccessDenied = errors.New("access denied")

// Decider decides whether a request may proceed under the attributes of
// the matched rule. It is the extension point for plugging in an access
// expression evaluator; the error returned, if any, denies the request.
type Decider func(Rule, *http.Request) error

// defaultDecider only understands the permit-all attribute and denies
// everything else.
func defaultDecider(rule Rule, _ *http.Request) error {
	for _, a := range rule {
		if a == PermitAll {
			return nil
		}
	}

	return ErrAccessDenied
}

// Configurer configures URL authorization: it owns the mapping registry
// populated during the configuration phase and builds the filter chain
// enforcing it. It implements dispatch.ChainBuilder.
type Configurer struct {
	registry Registry
	chainFor matcher.Matcher
	decide   Decider
}

// NewConfigurer creates an authorization configurer with an empty
// registry, a chain matching every request and the default decider.
func NewConfigurer() *Configurer {
	return &Configurer{chainFor: matcher.Any(), decide: defaultDecider}
}

// Registry exposes the mapping registry for configuration time mutation.
func (c *Configurer) Registry() *Registry { return &c.registry }

// Require appends a mapping binding the requests matched by m to the
// given attributes.
func (c *Configurer) Require(m matcher.Matcher, attributes ...Attribute) *Configurer {
	c.registry.Append(Mapping{Matcher: m, Rule: Rule(attributes)})
	return c
}

// Decide replaces the default decider.
func (c *Configurer) Decide(d Decider) *Configurer {
	c.decide = d
	return c
}

// ChainMatcher replaces the matcher of the built chain, restricting the
// requests the authorization filter applies to at all. The default
// matches everything.
func (c *Configurer) ChainMatcher(m matcher.Matcher) *Configurer {
	c.chainFor = m
	return c
}

// Build materializes the authorization filter chain. Requests without a
// matching mapping carry no constraint and pass through.
func (c *Configurer) Build() (*dispatch.Chain, error) {
	return dispatch.NewChain("authorize", c.chainFor, &interceptor{c: c}), nil
}

type interceptor struct {
	c *Configurer
}

func (f *interceptor) Name() string { return "authorize" }

func (f *interceptor) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, ok := f.c.registry.Match(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		if err := f.c.decide(m.Rule, r); err != nil {
			log.Debugf("denied %s: %v", r.URL.Path, err)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
