package webfence

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/zalando/webfence/authz"
	"github.com/zalando/webfence/dispatch"
	"github.com/zalando/webfence/firewall"
	"github.com/zalando/webfence/matcher"
	"github.com/zalando/webfence/metrics"
)

// ErrNoChainBuilders is returned by Build when no filter chain builder
// was registered.
var ErrNoChainBuilders = errors.New("at least one filter chain builder must be registered")

// capability tags identifying registered configurers. Configurers are
// looked up through typed accessors per tag.
type capability int

const capabilityAuthorize capability = iota

// Web is the security builder. It is populated during the application's
// single threaded startup phase and is not designed for concurrent
// mutation; the structure returned by Build is immutable and safe for
// concurrent use.
type Web struct {
	ignoredRequests []matcher.Matcher
	chainBuilders   []dispatch.ChainBuilder
	configurers     map[capability]any
	firewall        firewall.Firewall
	metrics         *metrics.Metrics
	debug           bool
}

// New creates an empty security builder.
func New() *Web {
	return &Web{configurers: make(map[capability]any)}
}

// IgnoredRequests registers matchers for requests webfence should
// ignore. It holds an explicit handle to the owning builder.
type IgnoredRequests struct {
	web *Web
}

// Ignoring returns the registry for requests that bypass security
// processing entirely. Matching requests never reach a security filter
// chain, not even a permit-all one. Typically only static resources
// should be ignored; for dynamic requests, permitting all users is the
// safer choice. Multiple calls are additive.
func (w *Web) Ignoring() *IgnoredRequests {
	return &IgnoredRequests{web: w}
}

// Matchers adds matchers for requests to ignore.
func (i *IgnoredRequests) Matchers(ms ...matcher.Matcher) *IgnoredRequests {
	i.web.ignoredRequests = append(i.web.ignoredRequests, ms...)
	return i
}

// Exact adds exact path matchers for requests to ignore.
func (i *IgnoredRequests) Exact(paths ...string) *IgnoredRequests {
	for _, p := range paths {
		i.Matchers(matcher.Exact(p))
	}

	return i
}

// Pattern adds path pattern matchers for requests to ignore.
func (i *IgnoredRequests) Pattern(patterns ...string) (*IgnoredRequests, error) {
	for _, p := range patterns {
		m, err := matcher.Pattern(p)
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %s: %w", p, err)
		}

		i.Matchers(m)
	}

	return i, nil
}

// And returns the owning builder for further customization.
func (i *IgnoredRequests) And() *Web { return i.web }

// Firewall replaces the default firewall.
func (w *Web) Firewall(f firewall.Firewall) *Web {
	w.firewall = f
	return w
}

// Debug controls debugging support. When enabled, the built dispatcher
// is wrapped with the debug decorator.
func (w *Web) Debug(enabled bool) *Web {
	w.debug = enabled
	return w
}

// Metrics sets the metrics backend receiving dispatch counters.
func (w *Web) Metrics(m *metrics.Metrics) *Web {
	w.metrics = m
	return w
}

// AddChainBuilder registers a builder of a security filter chain. The
// chains are evaluated after the ignored requests, in registration
// order.
func (w *Web) AddChainBuilder(b dispatch.ChainBuilder) *Web {
	w.chainBuilders = append(w.chainBuilders, b)
	return w
}

// AuthorizeRequests returns the authorization configurer, registering it
// under its capability tag and as a chain builder on first use.
func (w *Web) AuthorizeRequests() *authz.Configurer {
	if c := w.AuthorizeConfigurer(); c != nil {
		return c
	}

	c := authz.NewConfigurer()
	w.configurers[capabilityAuthorize] = c
	w.AddChainBuilder(c)
	return c
}

// AuthorizeConfigurer is the typed accessor for the authorization
// configurer. It returns nil when none was registered.
func (w *Web) AuthorizeConfigurer() *authz.Configurer {
	c, _ := w.configurers[capabilityAuthorize].(*authz.Configurer)
	return c
}

// PermitAll grants unconditional access to the given exact URLs, ahead
// of all previously registered authorization mappings. It requires the
// authorization configurer to be present already, see
// authz.PermitAllURLs.
func (w *Web) PermitAll(urls ...string) error {
	return authz.PermitAllURLs(w, urls...)
}

// BuildDispatcher assembles the configured matchers and chains into the
// dispatch structure. Chain builders are invoked in registration order;
// any builder error fails the whole build, there is no partial
// structure. At least one chain builder must be registered, the ignored
// request list may be empty.
func (w *Web) BuildDispatcher() (dispatch.Dispatcher, error) {
	if len(w.chainBuilders) == 0 {
		return nil, ErrNoChainBuilders
	}

	chains := make([]*dispatch.Chain, 0, len(w.chainBuilders))
	for _, b := range w.chainBuilders {
		c, err := b.Build()
		if err != nil {
			return nil, fmt.Errorf("building security filter chain: %w", err)
		}

		chains = append(chains, c)
	}

	var d dispatch.Dispatcher = dispatch.NewStructure(w.ignoredRequests, chains)
	if w.debug {
		d = dispatch.Debug(d)
	}

	return d, nil
}

// Build assembles the dispatch structure and returns the HTTP handler
// serving requests through it, with next as the protected application
// handler.
func (w *Web) Build(next http.Handler) (http.Handler, error) {
	d, err := w.BuildDispatcher()
	if err != nil {
		return nil, err
	}

	fw := w.firewall
	if fw == nil {
		fw = firewall.Default()
	}

	return dispatch.NewHandler(d, next, dispatch.HandlerOptions{
		Firewall: fw,
		Metrics:  w.metrics,
	}), nil
}
