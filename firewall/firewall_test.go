package firewall

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
)

func request(t *testing.T, path, rawPath string) *http.Request {
	t.Helper()
	return &http.Request{URL: &url.URL{Path: path, RawPath: rawPath}}
}

func TestDefaultPassThrough(t *testing.T) {
	r := request(t, "/a/b", "")
	rn, err := Default().Normalize(r)
	if err != nil {
		t.Fatal(err)
	}

	if rn != r {
		t.Error("expected the clean request to be returned unchanged")
	}
}

func TestDefaultCleansPath(t *testing.T) {
	rn, err := Default().Normalize(request(t, "/a//b/./c", ""))
	if err != nil {
		t.Fatal(err)
	}

	if rn.URL.Path != "/a/b/c" {
		t.Errorf("expected cleaned path, got %s", rn.URL.Path)
	}
}

func TestDefaultRejects(t *testing.T) {
	for _, tt := range []struct {
		name    string
		path    string
		rawPath string
	}{
		{"traversal", "/a/../../etc/passwd", ""},
		{"backslash", `/a\b`, ""},
		{"control character", "/a\x00b", ""},
		{"encoded separator", "/a/b", "/a%2Fb"},
		{"encoded dot", "/a/b", "/a/%2E%2E/b"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Default().Normalize(request(t, tt.path, tt.rawPath)); !errors.Is(err, ErrRejected) {
				t.Errorf("expected ErrRejected, got %v", err)
			}
		})
	}
}
