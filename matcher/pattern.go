package matcher

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dimfeld/httppath"
)

// ErrInvalidPattern is returned for patterns where the free wildcard is
// not the last segment.
var ErrInvalidPattern = errors.New("free wildcard must be the last segment")

type patternMatcher struct {
	segments []string
	freeTail bool
}

// Pattern returns a matcher for path patterns with segment wildcards:
// '*' matches exactly one path segment, a trailing '**' matches any
// number of remaining segments, including none. Both the pattern and the
// request path are cleaned before comparison, and a context root set on
// the request is stripped before matching.
//
// Examples: /static/** matches /static and /static/css/site.css;
// /users/*/roles matches /users/jdoe/roles but not /users/roles.
func Pattern(pattern string) (Matcher, error) {
	segments := splitPath(httppath.Clean(pattern))

	freeTail := false
	for i, s := range segments {
		if s != "**" {
			continue
		}

		if i != len(segments)-1 {
			return nil, ErrInvalidPattern
		}

		freeTail = true
		segments = segments[:i]
	}

	return &patternMatcher{segments: segments, freeTail: freeTail}, nil
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}

	return strings.Split(p, "/")
}

func (m *patternMatcher) Match(r *http.Request) bool {
	path := httppath.Clean(r.URL.Path)
	if root := ContextRoot(r); root != "" {
		var ok bool
		if path, ok = strings.CutPrefix(path, root); !ok {
			return false
		}
	}

	segments := splitPath(path)
	if m.freeTail {
		if len(segments) < len(m.segments) {
			return false
		}

		segments = segments[:len(m.segments)]
	} else if len(segments) != len(m.segments) {
		return false
	}

	for i, s := range m.segments {
		if s != "*" && s != segments[i] {
			return false
		}
	}

	return true
}
