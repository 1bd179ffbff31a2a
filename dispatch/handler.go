package dispatch

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/zalando/webfence/firewall"
	"github.com/zalando/webfence/metrics"
)

// HandlerOptions configure the HTTP adapter of a dispatcher.
type HandlerOptions struct {

	// Firewall normalizes requests before matching. When nil, requests
	// are matched as received.
	Firewall firewall.Firewall

	// Metrics receives the dispatch decision counters. Optional.
	Metrics *metrics.Metrics
}

// Handler serves HTTP requests through a dispatcher: the request is
// normalized by the firewall, matched against the dispatch structure,
// and served by the selected chain's filters wrapped around the next
// handler. Ignored and unmatched requests reach next untouched.
type Handler struct {
	dispatcher Dispatcher
	next       http.Handler
	firewall   firewall.Firewall
	metrics    *metrics.Metrics
}

// NewHandler creates the HTTP adapter for a dispatcher. Requests the
// firewall rejects are answered with 400 and never reach a matcher or
// the next handler.
func NewHandler(d Dispatcher, next http.Handler, o HandlerOptions) *Handler {
	return &Handler{
		dispatcher: d,
		next:       next,
		firewall:   o.Firewall,
		metrics:    o.Metrics,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.firewall != nil {
		rn, err := h.firewall.Normalize(r)
		if err != nil {
			log.Debugf("firewall rejected %s: %v", r.URL.Path, err)
			h.metrics.IncRejected()
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		r = rn
	}

	d := h.dispatcher.Dispatch(r)

	var chainName string
	if d.Chain != nil {
		chainName = d.Chain.Name()
	}

	h.metrics.IncDecision(d.Outcome.String(), chainName)

	if d.Outcome != Matched {
		h.next.ServeHTTP(w, r)
		return
	}

	d.Chain.Handler(h.next).ServeHTTP(w, r)
}
