// Package logging writes leveled diagnostics for the render commands to stderr.
//
// Only warnings and errors are shown by default; --log-level debug adds decode timings and
// input sizes. Chart data and computed statistics never go through this package.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// LogLevel orders messages by severity; a message is written when its level is at or above the
// configured one.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = [...]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

var threshold atomic.Int32

var baseLogger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds|log.Lmsgprefix)

func init() { threshold.Store(int32(LevelWarn)) }

// ParseLevel maps a --log-level value to a level. "warning" is accepted for warn.
func ParseLevel(name string) (LogLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return 0, false
}

// SetLogLevel applies name and reports whether it was recognised. An unknown name keeps the
// current level.
func SetLogLevel(name string) bool {
	l, ok := ParseLevel(name)
	if ok {
		threshold.Store(int32(l))
	}
	return ok
}

// GetLogLevel returns the active level.
func GetLogLevel() LogLevel { return LogLevel(threshold.Load()) }

// SetTool tags every following line with the command name, e.g. "render-timings: ".
func SetTool(name string) {
	if name == "" {
		baseLogger.SetPrefix("")
		return
	}
	baseLogger.SetPrefix(name + ": ")
}

// SetOutput redirects diagnostics.
func SetOutput(w io.Writer) { baseLogger.SetOutput(w) }

func (l LogLevel) String() string {
	if l >= LevelDebug && int(l) < len(levelTags) {
		return levelTags[l]
	}
	return fmt.Sprintf("LEVEL(%d)", int32(l))
}

func emit(l LogLevel, format string, args []interface{}) {
	if l < GetLogLevel() {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	// paths may contain '%', so a message without args is written verbatim
	baseLogger.Printf("[%s] %s", l, msg)
}

func Debugf(format string, args ...interface{}) { emit(LevelDebug, format, args) }
func Infof(format string, args ...interface{})  { emit(LevelInfo, format, args) }
func Warnf(format string, args ...interface{})  { emit(LevelWarn, format, args) }
func Errorf(format string, args ...interface{}) { emit(LevelError, format, args) }

// Phase logs at debug level how long the step named label took since start.
func Phase(start time.Time, label string) {
	Debugf("%s: %s", label, time.Since(start).Round(time.Microsecond))
}
