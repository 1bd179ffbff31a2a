package dispatch

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zalando/webfence/firewall"
	"github.com/zalando/webfence/matcher"
	"github.com/zalando/webfence/metrics"
)

func headerFilter(name, value string) Filter {
	return FilterFunc(name, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Filter", value)
			next.ServeHTTP(w, r)
		})
	})
}

func TestHandlerAppliesMatchedChain(t *testing.T) {
	s := NewStructure(
		[]matcher.Matcher{matcher.Exact("/static/x")},
		[]*Chain{
			NewChain("secured", matcher.Exact("/a"), headerFilter("outer", "one"), headerFilter("inner", "two")),
		},
	)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	h := NewHandler(s, next, HandlerOptions{Firewall: firewall.Default(), Metrics: metrics.New()})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/a", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"one", "two"}, w.Result().Header["X-Filter"])

	// ignored requests reach the application without filters
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/static/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Result().Header["X-Filter"])

	// unmatched requests pass through untouched
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/b", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Result().Header["X-Filter"])
}

func TestHandlerFirewallRejects(t *testing.T) {
	s := NewStructure(nil, []*Chain{NewChain("all", matcher.Any())})
	h := NewHandler(s, http.NotFoundHandler(), HandlerOptions{Firewall: firewall.Default()})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/a", nil)
	r.URL.Path = "/a/../../etc/passwd"
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerFirewallNormalizesBeforeMatching(t *testing.T) {
	s := NewStructure(nil, []*Chain{
		NewChain("exact", matcher.Exact("/a"), headerFilter("mark", "matched")),
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	h := NewHandler(s, next, HandlerOptions{Firewall: firewall.Default()})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/a", nil)
	r.URL.Path = "//a/."
	h.ServeHTTP(w, r)
	assert.Equal(t, []string{"matched"}, w.Result().Header["X-Filter"])
}
