// Package obslog centralizes the logrus logger used across the simulator so
// every package logs through the same configured instance.
package obslog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the package-wide logger. Callers use it directly (obslog.Log.Warnf, …)
// rather than threading a logger through every constructor.
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetLevel(logrus.InfoLevel)
}

// SetLevel parses and applies a log level string, returning an error for an
// unrecognized level instead of exiting — the CLI boundary decides whether to
// treat that as fatal.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Log.SetLevel(lvl)
	return nil
}

// EnableTraceFile attaches a rotating trace-event log file alongside stderr.
// Intended for long parameter sweeps where per-event trace output would
// otherwise grow one file unbounded.
func EnableTraceFile(path string, maxSizeMB, maxBackups, maxAgeDays int) {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	Log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}
