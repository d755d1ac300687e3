package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LevelEnv names the environment variable that overrides the log level.
const LevelEnv = "PNGMSG_LOG_LEVEL"

// Logger is the logging interface used across pngmsg.
type Logger interface {
	// WithField creates a new logger with an additional field
	WithField(key string, value interface{}) Logger
	// WithFields creates a new logger with additional fields
	WithFields(fields map[string]interface{}) Logger
	// WithError creates a new logger with an error field
	WithError(err error) Logger

	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})

	Debug(args ...interface{})
	Info(args ...interface{})
}

// Options controls how New configures the logger.
type Options struct {
	// Verbose enables debug output.
	Verbose bool
	// JSON switches to the JSON formatter.
	JSON bool
	// Output defaults to os.Stderr.
	Output io.Writer
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// New builds a logrus backed Logger. The level taken from LevelEnv, when it
// parses, wins over Verbose.
func New(opts Options) Logger {
	logger := logrus.New()
	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	} else {
		logger.SetOutput(os.Stderr)
	}

	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if level := getenv(LevelEnv); level != "" {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(lvl)
		}
	}

	return NewLogrusAdapter(logger)
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewLogrusAdapter(logger)
}
