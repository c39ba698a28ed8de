// Package log is the process-wide diagnostic logger. Library code logs
// through the package functions; the CLI installs a console logger with Set.
// Until then everything is discarded.
package log

import (
	"github.com/anchore/go-logger"
	"github.com/anchore/go-logger/adapter/discard"
	"github.com/anchore/go-logger/adapter/logrus"
)

var log = discard.New()

// Set replaces the active logger.
func Set(l logger.Logger) {
	log = l
}

// Get returns the active logger.
func Get() logger.Logger {
	return log
}

// Setup installs a console logger on stderr. Verbose enables debug output;
// otherwise only warnings and errors are shown.
func Setup(verbose bool) error {
	level := logger.WarnLevel
	if verbose {
		level = logger.DebugLevel
	}
	l, err := logrus.New(logrus.Config{
		EnableConsole: true,
		Level:         level,
	})
	if err != nil {
		return err
	}
	Set(l)
	return nil
}

func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}
