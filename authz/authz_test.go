package authz

import (
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zalando/webfence/matcher"
)

func mapping(path string, attributes ...Attribute) Mapping {
	return Mapping{Matcher: matcher.Exact(path), Rule: Rule(attributes)}
}

func rules(mappings []Mapping) []Rule {
	var rs []Rule
	for _, m := range mappings {
		rs = append(rs, m.Rule)
	}

	return rs
}

func TestRegistryAppendOrder(t *testing.T) {
	var g Registry
	g.Append(mapping("/a", "first"))
	g.Append(mapping("/b", "second"))
	g.Append(mapping("/c", "third"))

	expected := []Rule{{"first"}, {"second"}, {"third"}}
	if !cmp.Equal(expected, rules(g.Mappings())) {
		t.Error("unexpected order", rules(g.Mappings()))
	}
}

func TestRegistryInsertShiftsRight(t *testing.T) {
	var g Registry
	g.Append(mapping("/a", "a"))
	g.Append(mapping("/b", "b"))

	if err := g.Insert(1, mapping("/x", "x")); err != nil {
		t.Fatal(err)
	}

	expected := []Rule{{"a"}, {"x"}, {"b"}}
	if !cmp.Equal(expected, rules(g.Mappings())) {
		t.Error("unexpected order", rules(g.Mappings()))
	}
}

func TestRegistryInsertBadIndex(t *testing.T) {
	var g Registry
	g.Append(mapping("/a", "a"))

	if err := g.Insert(-1, mapping("/x", "x")); err != ErrIndexOutOfRange {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}

	if err := g.Insert(2, mapping("/x", "x")); err != ErrIndexOutOfRange {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}

	if g.Len() != 1 {
		t.Error("failed insert mutated the registry")
	}
}

func TestRegistryInsertAtZeroOnEmpty(t *testing.T) {
	var g Registry
	if err := g.Insert(0, mapping("/a", "a")); err != nil {
		t.Fatal(err)
	}
}

func TestRegistryFirstMatchWins(t *testing.T) {
	var g Registry
	g.Append(mapping("/a", "first"))
	g.Append(mapping("/a", "duplicate"))
	g.Append(mapping("/b", "b"))

	r := httptest.NewRequest("GET", "/a", nil)
	for i := 0; i < 3; i++ {
		m, ok := g.Match(r)
		if !ok {
			t.Fatal("expected a match")
		}

		if !cmp.Equal(Rule{"first"}, m.Rule) {
			t.Error("expected the earlier duplicate to win", m.Rule)
		}
	}
}

func TestRegistryNoMatch(t *testing.T) {
	var g Registry
	g.Append(mapping("/a", "a"))

	if _, ok := g.Match(httptest.NewRequest("GET", "/nope", nil)); ok {
		t.Error("unexpected match")
	}
}
