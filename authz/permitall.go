package authz

import (
	"errors"

	"github.com/zalando/webfence/matcher"
)

// ErrNoAuthorizeConfigurer is returned by PermitAllURLs when the builder
// has no authorization configurer registered yet.
var ErrNoAuthorizeConfigurer = errors.New(
	"permit-all requires an authorization configurer already present")

// Builder is the registry lookup PermitAllURLs needs from the owning
// security builder.
type Builder interface {

	// AuthorizeConfigurer returns the previously registered
	// authorization configurer, or nil when absent.
	AuthorizeConfigurer() *Configurer
}

// PermitAllURLs grants unconditional access to the given exact URLs by
// inserting a permit-all mapping for each at position 0 of the
// registry, ahead of every previously registered mapping. Empty strings
// are skipped silently.
//
// Each URL is inserted at position 0 in turn, so the URLs end up in
// reverse of the given order, followed by the prior mappings in their
// original relative order. The order among the injected URLs carries no
// meaning, every injected mapping holds the same rule.
//
// Calling it on a builder without an authorization configurer is a
// fatal configuration error and mutates nothing.
func PermitAllURLs(b Builder, urls ...string) error {
	c := b.AuthorizeConfigurer()
	if c == nil {
		return ErrNoAuthorizeConfigurer
	}

	for _, u := range urls {
		if u == "" {
			continue
		}

		if err := c.registry.Insert(0, Mapping{
			Matcher: matcher.Exact(u),
			Rule:    Rule{PermitAll},
		}); err != nil {
			return err
		}
	}

	return nil
}
