// Package logger prints leveled messages to stderr
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	verbose bool
	mu      sync.Mutex
	out     io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose logging is enabled
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput redirects all messages to w and returns the previous writer
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func write(prefix, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, prefix+format+"\n", args...)
}

// Debug prints debug messages only when verbose mode is enabled
func Debug(format string, args ...interface{}) {
	if IsVerbose() {
		write("[DEBUG] ", format, args...)
	}
}

// Info prints informational messages
func Info(format string, args ...interface{}) {
	write("", format, args...)
}

// Success prints success messages with checkmark
func Success(format string, args ...interface{}) {
	write("✓ ", format, args...)
}

// Error prints error messages
func Error(format string, args ...interface{}) {
	write("✗ ", format, args...)
}

// Warn prints warning messages
func Warn(format string, args ...interface{}) {
	write("⚠ ", format, args...)
}
