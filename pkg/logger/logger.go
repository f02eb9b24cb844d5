package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// InitLogger configures the shared logger and the logrus standard logger the
// same way. An unknown level falls back to info.
func InitLogger(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	for _, l := range []*logrus.Logger{Log, logrus.StandardLogger()} {
		// Output to stdout instead of the default stderr
		l.SetOutput(os.Stdout)

		// Set JSON formatter for structured logging
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetLevel(lvl)
	}
}
