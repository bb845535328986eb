// Package logging provides a minimal printf-style logging contract so
// components can log without caring where output goes. The default logger
// writes to stderr with a component prefix; tests and library consumers
// usually pass Nop().
package logging

import (
	"fmt"
	"log"
	"os"
)

// Logger is the logging contract components depend on.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

type componentLogger struct {
	component string
	debug     bool
	l         *log.Logger
}

// NewComponentLogger returns a stderr logger scoped to a component. Debug
// output is gated on the GENSTUDIO_DEBUG environment variable.
func NewComponentLogger(component string) Logger {
	return &componentLogger{
		component: component,
		debug:     os.Getenv("GENSTUDIO_DEBUG") != "",
		l:         log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (c *componentLogger) logf(level, format string, args ...any) {
	c.l.Printf("[%s] %s: %s", level, c.component, fmt.Sprintf(format, args...))
}

func (c *componentLogger) Debug(format string, args ...any) {
	if c.debug {
		c.logf("DEBUG", format, args...)
	}
}

func (c *componentLogger) Info(format string, args ...any)  { c.logf("INFO", format, args...) }
func (c *componentLogger) Warn(format string, args ...any)  { c.logf("WARN", format, args...) }
func (c *componentLogger) Error(format string, args ...any) { c.logf("ERROR", format, args...) }
