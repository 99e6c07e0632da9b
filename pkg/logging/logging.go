// Package logging configures the shared logrus logger.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu   sync.RWMutex
	base = newLogger(os.Stderr, logrus.InfoLevel)
)

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "message",
		},
	})
	return log
}

// ParseLevel maps a config value to a logrus level, defaulting to info.
func ParseLevel(raw string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "quiet", "off":
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

// Configure replaces the shared logger. A nil writer keeps stderr.
func Configure(out io.Writer, level string) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}
	log := newLogger(out, ParseLevel(level))
	mu.Lock()
	base = log
	mu.Unlock()
	return log
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	mu.RLock()
	defer mu.RUnlock()
	return base.WithField("component", component)
}
