// Package logging holds the process-wide logrus logger used for diagnostics.
// User-facing messages go through internal/cli/output instead.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// DefaultLogger writes to stderr and only shows warnings until verbose
// output is requested.
var DefaultLogger = InitializeDefaultLogger()

func InitializeDefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return logger
}

// SetVerbose switches DefaultLogger between debug and warning level.
func SetVerbose(verbose bool) {
	if verbose {
		DefaultLogger.SetLevel(logrus.DebugLevel)
		return
	}
	DefaultLogger.SetLevel(logrus.WarnLevel)
}
