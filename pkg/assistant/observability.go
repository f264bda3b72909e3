package assistant

import (
	"fmt"
	"log"
	"strings"
)

// Logger interface for custom logging
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// NopLogger returns a logger that discards everything
func NopLogger() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// NewStdLogger adapts a standard library logger. Fields are rendered as
// key=value pairs after the message.
func NewStdLogger(l *log.Logger) Logger {
	return &stdLogger{l: l}
}

type stdLogger struct {
	l *log.Logger
}

func (s *stdLogger) Debug(msg string, fields ...interface{}) { s.print("DEBUG", msg, fields) }
func (s *stdLogger) Info(msg string, fields ...interface{})  { s.print("INFO", msg, fields) }
func (s *stdLogger) Warn(msg string, fields ...interface{})  { s.print("WARN", msg, fields) }
func (s *stdLogger) Error(msg string, fields ...interface{}) { s.print("ERROR", msg, fields) }

func (s *stdLogger) print(level, msg string, fields []interface{}) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	s.l.Print(b.String())
}
