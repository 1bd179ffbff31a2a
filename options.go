package webfence

import (
	"fmt"
	"io"
	"net/http"

	"github.com/zalando/webfence/authz"
	"github.com/zalando/webfence/config"
	"github.com/zalando/webfence/firewall"
	"github.com/zalando/webfence/logging"
	"github.com/zalando/webfence/matcher"
	"github.com/zalando/webfence/metrics"
)

// Options to start a security handler around an application handler.
type Options struct {

	// ConfigFile, when set, is the declarative YAML security
	// definition applied to the builder before Configure runs.
	ConfigFile string

	// Configure, when set, customizes the builder programmatically
	// after the declarative definition was applied. Chains with real
	// filters can only be registered here.
	Configure func(*Web) error

	// DebugMode enables the debug decorator around the dispatcher.
	DebugMode bool

	// Firewall replaces the default firewall.
	Firewall firewall.Firewall

	// Metrics receives the dispatch counters. Optional.
	Metrics *metrics.Metrics

	// ApplicationLogPrefix is prepended to every application log
	// entry.
	ApplicationLogPrefix string

	// ApplicationLogOutput redirects the application log. When nil,
	// the logrus default is kept.
	ApplicationLogOutput io.Writer

	// ApplicationLogJSONEnabled switches the application log to JSON.
	ApplicationLogJSONEnabled bool

	// ApplicationLogLevel sets the application log level, when
	// non-empty.
	ApplicationLogLevel string
}

// NewHandler initializes logging, applies the declarative definition and
// the programmatic configuration, and builds the security handler
// protecting next. All configuration errors surface here, before any
// request is served.
func NewHandler(o Options, next http.Handler) (http.Handler, error) {
	if err := logging.Init(logging.Options{
		ApplicationLogPrefix:      o.ApplicationLogPrefix,
		ApplicationLogOutput:      o.ApplicationLogOutput,
		ApplicationLogJSONEnabled: o.ApplicationLogJSONEnabled,
		ApplicationLogLevel:       o.ApplicationLogLevel,
	}); err != nil {
		return nil, err
	}

	w := New().Debug(o.DebugMode).Metrics(o.Metrics)
	if o.Firewall != nil {
		w.Firewall(o.Firewall)
	}

	if o.ConfigFile != "" {
		c, err := config.ParseFile(o.ConfigFile)
		if err != nil {
			return nil, err
		}

		if err := applyConfig(w, c); err != nil {
			return nil, err
		}
	}

	if o.Configure != nil {
		if err := o.Configure(w); err != nil {
			return nil, err
		}
	}

	return w.Build(next)
}

// applyConfig populates the builder from the declarative definition:
// ignore patterns, authorization rules in declaration order, then the
// permit-all URLs, one injection per URL.
func applyConfig(w *Web, c *config.Config) error {
	if _, err := w.Ignoring().Pattern(c.Ignore...); err != nil {
		return err
	}

	if len(c.Rules) == 0 && len(c.PermitAll) == 0 {
		return nil
	}

	configurer := w.AuthorizeRequests()
	for _, r := range c.Rules {
		m, err := ruleMatcher(r)
		if err != nil {
			return err
		}

		attributes := make([]authz.Attribute, len(r.Attributes))
		for i, a := range r.Attributes {
			attributes[i] = authz.Attribute(a)
		}

		configurer.Require(m, attributes...)
	}

	for _, u := range c.PermitAll {
		if err := w.PermitAll(u); err != nil {
			return err
		}
	}

	return nil
}

func ruleMatcher(r config.Rule) (matcher.Matcher, error) {
	if r.Exact {
		return matcher.Exact(r.Path), nil
	}

	m, err := matcher.Pattern(r.Path)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", r.Path, err)
	}

	return m, nil
}
