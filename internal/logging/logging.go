// Package logging holds the process-wide logrus logger shared by every
// package, so the CLI can raise verbosity in one place.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetLevel(logrus.WarnLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// Logger returns the shared logger
func Logger() *logrus.Logger {
	return log
}

// For returns an entry tagged with the component name
func For(component string) *logrus.Entry {
	return log.WithField("component", component)
}

// SetVerbose switches between debug and warning output
func SetVerbose(verbose bool) {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
		return
	}
	log.SetLevel(logrus.WarnLevel)
}

// SetOutput redirects log output, e.g. to silence tests
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
