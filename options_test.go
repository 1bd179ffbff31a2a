package webfence

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zalando/webfence/dispatch"
	"github.com/zalando/webfence/matcher"
	"github.com/zalando/webfence/metrics"
)

func writeDefinition(t *testing.T, doc string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "security.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestNewHandlerFromConfigFile(t *testing.T) {
	path := writeDefinition(t, `
ignore:
  - /static/**
permit-all:
  - /health
rules:
  - path: /**
    attributes: ["authenticated"]
`)

	h, err := NewHandler(Options{
		ConfigFile:           path,
		ApplicationLogOutput: io.Discard,
	}, app)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, get(h, "/static/logo.png").Code)
	assert.Equal(t, http.StatusNoContent, get(h, "/health").Code)
	assert.Equal(t, http.StatusForbidden, get(h, "/app").Code)
}

func TestNewHandlerConfigureRuns(t *testing.T) {
	h, err := NewHandler(Options{
		ApplicationLogOutput: io.Discard,
		Configure: func(w *Web) error {
			w.AddChainBuilder(dispatch.ChainBuilderFunc(func() (*dispatch.Chain, error) {
				return dispatch.NewChain("all", matcher.Any()), nil
			}))
			return nil
		},
	}, app)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, get(h, "/a").Code)
}

func TestNewHandlerInvalidDefinition(t *testing.T) {
	path := writeDefinition(t, "rules:\n  - path: /a")
	_, err := NewHandler(Options{
		ConfigFile:           path,
		ApplicationLogOutput: io.Discard,
	}, app)
	assert.Error(t, err)
}

func TestNewHandlerNoChains(t *testing.T) {
	_, err := NewHandler(Options{ApplicationLogOutput: io.Discard}, app)
	assert.ErrorIs(t, err, ErrNoChainBuilders)
}

func TestNewHandlerMetrics(t *testing.T) {
	m := metrics.New()
	path := writeDefinition(t, `
permit-all:
  - /health
rules:
  - path: /**
    attributes: ["authenticated"]
`)

	h, err := NewHandler(Options{
		ConfigFile:           path,
		Metrics:              m,
		ApplicationLogOutput: io.Discard,
	}, app)
	require.NoError(t, err)

	get(h, "/health")
	get(h, "/denied")

	w := get(m.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "webfence_dispatch_decisions_total")
}
