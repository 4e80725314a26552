package utils

import (
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// logger is the process-wide JSON logger; every entry carries the service name
var logger = log.New()

var base = logger.WithField("service", "harvest-market")

func init() {
	logger.SetFormatter(&log.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: log.FieldMap{
			log.FieldKeyMsg: "message",
		},
	})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(log.InfoLevel)
}

// SetLevel changes the minimum level; unknown names fall back to info
func SetLevel(level string) {
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
}

// SetOutput redirects log output, e.g. io.Discard in benchmarks
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Debug logs a message at debug level with optional fields
func Debug(message string, fields map[string]any) {
	base.WithFields(fields).Debug(message)
}

// Info logs a message at info level with optional fields
func Info(message string, fields map[string]any) {
	base.WithFields(fields).Info(message)
}

// Warn logs a message at warning level with optional fields
func Warn(message string, fields map[string]any) {
	base.WithFields(fields).Warn(message)
}

// Error logs a message at error level with optional fields
func Error(message string, fields map[string]any) {
	base.WithFields(fields).Error(message)
}
