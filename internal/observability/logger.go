package observability

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the service logger. Release mode logs JSON, other modes log text.
func NewLogger(level, ginMode string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stdout
	}

	logger := logrus.New()
	logger.SetOutput(out)

	if ginMode == "release" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}
