package dispatch

import (
	"net/http"

	"github.com/zalando/webfence/matcher"
)

// Outcome of dispatching one request against a structure.
type Outcome int

const (

	// Unmatched means no entry of the structure matched the request.
	// The dispatcher does not synthesize a catch-all chain; a well
	// formed structure registers one as its last chain.
	Unmatched Outcome = iota

	// Ignored means the request matched an ignored request matcher
	// and bypasses security processing entirely.
	Ignored

	// Matched means a security filter chain was selected.
	Matched
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Matched:
		return "matched"
	default:
		return "unmatched"
	}
}

// Decision is the result of evaluating one request. Chain is set only
// for the Matched outcome.
type Decision struct {
	Outcome Outcome
	Chain   *Chain
}

// Dispatcher selects the security filter chain applying to a request.
// Dispatchers are immutable once created and safe for unbounded
// concurrent use.
type Dispatcher interface {
	Dispatch(*http.Request) Decision
}

type entry struct {
	ignored bool
	chain   *Chain
}

// Structure is the composite dispatch structure: the ignored request
// matchers mapped to empty chains, followed by the security filter
// chains, in registration order.
type Structure struct {
	entries []entry
}

// NewStructure composes the ignored request matchers and the built
// chains into a dispatch structure. The ignored entries are evaluated
// first, in their registration order, then the chains in theirs.
func NewStructure(ignored []matcher.Matcher, chains []*Chain) *Structure {
	entries := make([]entry, 0, len(ignored)+len(chains))
	for _, m := range ignored {
		entries = append(entries, entry{ignored: true, chain: NewChain("", m)})
	}

	for _, c := range chains {
		entries = append(entries, entry{chain: c})
	}

	return &Structure{entries: entries}
}

// Dispatch walks the structure top to bottom and returns the decision
// for the first entry whose matcher matches. Evaluation happens exactly
// once per call and is free of side effects.
func (s *Structure) Dispatch(r *http.Request) Decision {
	for _, e := range s.entries {
		if !e.chain.Matches(r) {
			continue
		}

		if e.ignored {
			return Decision{Outcome: Ignored}
		}

		return Decision{Outcome: Matched, Chain: e.chain}
	}

	return Decision{Outcome: Unmatched}
}
