// Package izlog provides the small leveled logger used throughout the
// module. Containers log at error level before returning a null result,
// per the error-handling policy: callers see a nil value, not a panic.
package izlog

import (
	"log"
	"os"
)

// Logger is a package-scoped leveled wrapper around the standard library
// log.Logger. Zero value is not usable; use New.
type Logger struct {
	prefix string
	std    *log.Logger
}

// New creates a Logger that writes to stderr, tagged with prefix (typically
// the owning package name, e.g. "bitset", "vxkernel").
func New(prefix string) *Logger {
	return &Logger{
		prefix: prefix,
		std:    log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds),
	}
}

func (l *Logger) Errorf(format string, args ...any) {
	l.std.Printf("ERROR ["+l.prefix+"] "+format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.std.Printf("WARN  ["+l.prefix+"] "+format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.std.Printf("INFO  ["+l.prefix+"] "+format, args...)
}
