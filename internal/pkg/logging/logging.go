// internal/pkg/logging/logging.go
package logging

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/config"
)

// New creates a configured logrus logger from application config
func New(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

// Component returns a logger entry scoped to a named component.
// Services receive these instead of writing to a process-wide logger.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	return logger.WithField("component", name)
}
