// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

var (
	traceEnabled bool

	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// InitLogger sets up Apex with a custom handler and a log level from the
// TREEDIFF_LOG env variable. Warnings are shown by default so that skipped
// listing lines are always reported.
func InitLogger() {
	envLevel := strings.ToLower(os.Getenv("TREEDIFF_LOG"))
	if envLevel == "" {
		envLevel = "warn"
	}
	traceEnabled = envLevel == "trace"
	log.SetHandler(&CustomHandler{})
	log.SetLevel(ParseLevel(envLevel))
}

// ParseLevel maps a TREEDIFF_LOG value to an Apex level. Unknown values fall
// back to warn.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "trace", "debug":
		// Trace is emulated on top of debug.
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// SetOutput redirects log output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// CustomHandler formats log messages and writes them to the log output
// (stderr unless redirected).
type CustomHandler struct{}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[7:]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	mu.Lock()
	defer mu.Unlock()
	_, err := fmt.Fprintf(out, "%s %s %s\n", timestamp, level, message)
	return err
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Debug logs at Debug level.
func Debug(msg string) {
	log.Debug(msg)
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
