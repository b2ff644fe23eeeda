// Package logging writes the diagnostic log.
//
// Lines go to <dir>/<prefix>-<YYYYMMDD>, one file per day. Writes are queued
// and drained in the background; when the queue is full or the file cannot
// be written the line is dropped. Logging never blocks or fails the caller.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Defaults for Options.
const (
	DefaultDir    = "/tmp"
	DefaultPrefix = "hn-cli"
)

// TimeFormat is the timestamp written at the start of each line.
const TimeFormat = "2006-01-02 15:04:05"

var (
	// Logger is the global logger instance
	Logger *log.Logger

	out    *asyncWriter
	recent *Ring
)

// Options configures Init.
type Options struct {
	Dir    string
	Prefix string
	Level  string // debug, info, warn, error
}

// Init initializes the logging system
func Init(opts Options) error {
	if opts.Dir == "" {
		opts.Dir = DefaultDir
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	level := log.DebugLevel
	if opts.Level != "" {
		lvl, err := log.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return fmt.Errorf("parse log level: %w", err)
		}
		level = lvl
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	out = newAsyncWriter(newDailyFile(opts.Dir, opts.Prefix))
	recent = NewRing(DefaultRingSize)
	initWith(io.MultiWriter(out, recent), level)

	Logger.Info("hn started")
	return nil
}

// initWith points the global logger at w.
func initWith(w io.Writer, level log.Level) {
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
		Level:           level,
	})
}

// Close flushes queued lines and closes the current log file
func Close() {
	if Logger != nil {
		Logger.Info("hn shutting down")
	}
	if out != nil {
		out.Close()
	}
}

// Dropped returns how many lines were lost to a full queue or write errors.
func Dropped() uint64 {
	if out == nil {
		return 0
	}
	return out.Dropped()
}

// Recent returns up to n of the most recent log lines, oldest first.
func Recent(n int) []string {
	if recent == nil {
		return nil
	}
	return recent.Last(n)
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
