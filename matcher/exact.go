package matcher

import "net/http"

type exactMatcher struct {
	path string
}

// Exact returns a matcher that compares the request path, extended with
// "?" and the raw query when one is present, for byte equality against
// path. When the request carries a context root, the comparison target is
// the context root concatenated with path.
//
// There is no partial or case insensitive matching, and the query string
// is never parsed: a configured path containing a literal '?' is compared
// verbatim against the whole path?query string.
func Exact(path string) Matcher {
	return &exactMatcher{path: path}
}

func (m *exactMatcher) Match(r *http.Request) bool {
	uri := r.URL.Path
	if q := r.URL.RawQuery; q != "" {
		uri += "?" + q
	}

	root := ContextRoot(r)
	if root == "" {
		return uri == m.path
	}

	return uri == root+m.path
}
