// Package matcher provides the request matching contract used throughout
// webfence and a small set of matcher implementations. The rest of the
// module is generic over any type satisfying the one-method Matcher
// contract, so applications can plug in their own matching logic.
package matcher

import (
	"context"
	"net/http"
)

// Matcher decides whether a matching rule applies to a request. Matcher
// implementations must be safe for concurrent use and must not mutate the
// request: a built dispatch structure is shared by all request handling
// goroutines without locking.
type Matcher interface {
	Match(*http.Request) bool
}

// The Func type allows using ordinary functions as matchers.
type Func func(*http.Request) bool

func (f Func) Match(r *http.Request) bool { return f(r) }

type anyMatcher struct{}

func (anyMatcher) Match(*http.Request) bool { return true }

// Any returns the match-everything sentinel, typically used as the matcher
// of the last, catch-all filter chain.
func Any() Matcher { return anyMatcher{} }

type contextRootKey struct{}

// WithContextRoot returns a copy of the request carrying the context root
// prefix under which the application is mounted. Matchers consult it when
// comparing configured paths against the request path.
func WithContextRoot(r *http.Request, root string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), contextRootKey{}, root))
}

// ContextRoot returns the mount prefix set with WithContextRoot, or the
// empty string when the application is mounted at the server root.
func ContextRoot(r *http.Request) string {
	root, _ := r.Context().Value(contextRootKey{}).(string)
	return root
}
