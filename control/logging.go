// control/logging.go
// Author: momentics <momentics@gmail.com>
//
// Logger construction from LogConfig.

package control

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a logrus logger writing to w (stderr when nil).
// An unparsable level falls back to info and is reported once.
func NewLogger(cfg LogConfig, w io.Writer) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := logrus.New()
	logger.SetOutput(w)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
		logger.WithError(err).Warn("Invalid log level, using info")
		return logger
	}
	logger.SetLevel(level)
	return logger
}
