package logger

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/planhub-dev/planhub/internal/config"
)

// New builds the process-wide logger from config. Unknown levels fall back
// to info rather than failing startup.
func New(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}
