/*
Package webfence builds web request security filter chains: an ordered
set of request matchers and filters deciding, per incoming HTTP request,
whether the request is ignored by security entirely, permitted
unconditionally, or subjected to further authorization checks.

The Web builder collects the configuration during the single threaded
startup phase: matchers for requests to ignore, builders of security
filter chains, an optional firewall and debug mode. Build composes them
into an immutable dispatch structure that is evaluated once per request,
top to bottom, first match wins, and is safe for unbounded concurrent
use.

	web := webfence.New()
	web.Ignoring().Pattern("/static/**")
	web.AuthorizeRequests().
		Require(admin, "hasRole('ADMIN')").
		Require(matcher.Any(), "authenticated")
	web.PermitAll("/health", "/login")

	handler, err := web.Build(app)

Configuration errors, like injecting permit-all before an authorization
configurer exists or building without any chain builder, fail the build
synchronously. This fail fast at boot property is deliberate: a
misconfigured chain must never turn into a request time security gap.
*/
package webfence
