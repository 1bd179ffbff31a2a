// Package logging initializes the application log of webfence.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

type prefixFormatter struct {
	prefix    string
	formatter logrus.Formatter
}

// Init options for logging.
type Options struct {

	// Prefix for application log entries. Primarily used to be able
	// to select the security log entries when the application shares
	// the process wide logger.
	ApplicationLogPrefix string

	// Output for the application log entries, when nil, the logrus
	// default is kept.
	ApplicationLogOutput io.Writer

	// ApplicationLogJSONEnabled, when set, sets the log format to
	// JSON.
	ApplicationLogJSONEnabled bool

	// ApplicationLogLevel sets the log level, when non-empty. Valid
	// values are the logrus level names.
	ApplicationLogLevel string
}

func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b, err := f.formatter.Format(e)
	if err != nil {
		return nil, err
	}

	return append([]byte(f.prefix), b...), nil
}

// Init initializes the application log based on the options.
func Init(o Options) error {
	if o.ApplicationLogJSONEnabled {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if o.ApplicationLogPrefix != "" {
		logrus.SetFormatter(&prefixFormatter{
			o.ApplicationLogPrefix, logrus.StandardLogger().Formatter})
	}

	if o.ApplicationLogOutput != nil {
		logrus.SetOutput(o.ApplicationLogOutput)
	}

	if o.ApplicationLogLevel != "" {
		l, err := logrus.ParseLevel(o.ApplicationLogLevel)
		if err != nil {
			return err
		}

		logrus.SetLevel(l)
	}

	return nil
}
