// Package logger provides the process-wide structured logger.
//
// Logging is off by default. Setting MODCFG_LOG_LEVEL (debug, info, warn,
// error) or calling SetLevel enables it on stderr.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// EnvLogLevel names the environment variable that enables logging.
const EnvLogLevel = "MODCFG_LOG_LEVEL"

// Fields is an alias so callers don't import logrus directly.
type Fields = logrus.Fields

var (
	log  *Logger
	once sync.Once
)

// Logger wraps a logrus.Logger.
type Logger struct {
	*logrus.Logger
}

func initialize() {
	once.Do(func() {
		log = &Logger{Logger: logrus.New()}
		log.SetOutput(io.Discard)
		log.SetLevel(logrus.PanicLevel)
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		if level := os.Getenv(EnvLogLevel); level != "" {
			setLevel(level)
		}
	})
}

// Get returns the process logger, initializing it on first use.
func Get() *Logger {
	initialize()
	return log
}

// SetLevel enables logging to stderr at the named level. An empty or "off"
// level disables output again. Unknown names fall back to debug.
func SetLevel(level string) {
	initialize()
	setLevel(level)
}

func setLevel(level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "off", "none":
		log.SetOutput(io.Discard)
		log.SetLevel(logrus.PanicLevel)
		return
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	case "warn", "warning":
		log.SetLevel(logrus.WarnLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.DebugLevel)
	}
	log.SetOutput(os.Stderr)
	log.WithField("level", log.GetLevel()).Debug("logging enabled")
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	initialize()
	log.SetOutput(w)
}
