// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger is the shared logger. It writes to stderr at info level until
// Configure is called.
var Logger = newLogger(os.Stderr, log.InfoLevel)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.New(w)
	l.SetTimeFormat("")
	l.SetLevel(level)
	return l
}

// logFile is the file Logger writes to, nil for stderr.
var logFile *os.File

// Configure sets level and destination. An empty level falls back to
// ARMKIN_LOG_LEVEL, then info. An empty file keeps stderr. A file opened by
// an earlier call is closed.
func Configure(level, file string) error {
	if level == "" {
		level = os.Getenv("ARMKIN_LOG_LEVEL")
	}

	var (
		out io.Writer = os.Stderr
		f   *os.File
	)
	if file != "" {
		var err error
		f, err = os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		out = f
	}

	Logger = newLogger(out, ParseLevel(level))
	err := closeFile()
	logFile = f
	return err
}

// Close closes the log file, if any, and sends further output to stderr.
func Close() error {
	Logger = newLogger(os.Stderr, Logger.GetLevel())
	return closeFile()
}

func closeFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// ParseLevel maps a level name to a log level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New returns a child logger tagged with a component prefix.
func New(prefix string) *log.Logger {
	return Logger.WithPrefix(prefix)
}
