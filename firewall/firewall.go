// Package firewall provides the request normalization hook invoked before
// any matching happens. A firewall either returns a canonicalized request
// or rejects a malformed one, so that matchers only ever see paths in
// their canonical form.
package firewall

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dimfeld/httppath"
)

// ErrRejected is wrapped by all rejection errors returned by firewalls.
var ErrRejected = errors.New("request rejected by firewall")

// Firewall normalizes a request before it is matched. Implementations
// return the request to continue with, which may be the input request
// unchanged, a normalized shallow copy, or an error for requests that
// must not reach any matcher. Implementations must be safe for
// concurrent use.
type Firewall interface {
	Normalize(*http.Request) (*http.Request, error)
}

type defaultFirewall struct{}

// Default returns the default firewall. It rejects requests whose path
// contains backslashes, control characters, traversal segments or an
// encoded path separator, and cleans the path of the remaining requests.
func Default() Firewall { return defaultFirewall{} }

// encoded separators and dots that would change the path when decoded
// after matching
var forbiddenEncoded = []string{"%2f", "%5c", "%2e"}

func (defaultFirewall) Normalize(r *http.Request) (*http.Request, error) {
	path := r.URL.Path

	for i := 0; i < len(path); i++ {
		if path[i] < 0x20 || path[i] == 0x7f {
			return nil, fmt.Errorf("%w: control character in path", ErrRejected)
		}
	}

	if strings.Contains(path, `\`) {
		return nil, fmt.Errorf("%w: backslash in path", ErrRejected)
	}

	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return nil, fmt.Errorf("%w: path traversal", ErrRejected)
		}
	}

	raw := strings.ToLower(r.URL.RawPath)
	for _, seq := range forbiddenEncoded {
		if strings.Contains(raw, seq) {
			return nil, fmt.Errorf("%w: encoded path separator or dot", ErrRejected)
		}
	}

	clean := httppath.Clean(path)
	if clean == path {
		return r, nil
	}

	rc := r.Clone(r.Context())
	rc.URL.Path = clean
	rc.URL.RawPath = ""
	return rc, nil
}
