package dispatch

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

const debugBanner = "\n\n" +
	"********************************************************************\n" +
	"**********        Security debugging is enabled.       *************\n" +
	"**********    This may include sensitive information.  *************\n" +
	"**********      Do not use in a production system!     *************\n" +
	"********************************************************************\n\n"

type debugDispatcher struct {
	d Dispatcher
}

// Debug wraps a dispatcher for debugging support. It logs a warning
// banner once, at wrapping time, and delegates every request unchanged.
func Debug(d Dispatcher) Dispatcher {
	log.Warn(debugBanner)
	return &debugDispatcher{d: d}
}

func (dd *debugDispatcher) Dispatch(r *http.Request) Decision {
	return dd.d.Dispatch(r)
}
