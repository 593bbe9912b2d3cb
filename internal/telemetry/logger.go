package telemetry

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the broker's structured JSON logger. Level is driven
// by LOG_LEVEL; unrecognized values fall back to info rather than
// failing startup.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}
