package logx

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level controls which messages reach the output.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu       sync.RWMutex
	minLevel = LevelInfo
	std      = log.New(os.Stderr, "", log.LstdFlags)
)

// SetLevel sets the global minimum level.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

func enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= minLevel
}

func output(l Level, tag, msg string) {
	if !enabled(l) {
		return
	}
	std.Println("[" + tag + "] " + msg)
}

func Debug(msg string) { output(LevelDebug, "DEBUG", msg) }

func Debugf(format string, args ...any) {
	output(LevelDebug, "DEBUG", fmt.Sprintf(format, args...))
}

func Info(msg string) { output(LevelInfo, "INFO", msg) }

func Infof(format string, args ...any) {
	output(LevelInfo, "INFO", fmt.Sprintf(format, args...))
}

func Warn(msg string) { output(LevelWarn, "WARN", msg) }

func Warnf(format string, args ...any) {
	output(LevelWarn, "WARN", fmt.Sprintf(format, args...))
}

func Error(msg string) { output(LevelError, "ERROR", msg) }

func Errorf(format string, args ...any) {
	output(LevelError, "ERROR", fmt.Sprintf(format, args...))
}

// Fatalf logs at error level and terminates the process.
func Fatalf(format string, args ...any) {
	output(LevelError, "FATAL", fmt.Sprintf(format, args...))
	os.Exit(1)
}

// Fields attaches structured context to a log entry.
type Fields map[string]any

// Entry is a single log statement carrying fields.
type Entry struct {
	fields Fields
}

// WithFields returns an entry that prefixes its message with key=value pairs.
func WithFields(fields Fields) *Entry {
	return &Entry{fields: fields}
}

func (e *Entry) format(msg string) string {
	if len(e.fields) == 0 {
		return msg
	}
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(msg)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(fmt.Sprint(e.fields[k]))
	}
	return b.String()
}

func (e *Entry) Debugf(format string, args ...any) {
	output(LevelDebug, "DEBUG", e.format(fmt.Sprintf(format, args...)))
}

func (e *Entry) Infof(format string, args ...any) {
	output(LevelInfo, "INFO", e.format(fmt.Sprintf(format, args...)))
}

func (e *Entry) Warnf(format string, args ...any) {
	output(LevelWarn, "WARN", e.format(fmt.Sprintf(format, args...)))
}

func (e *Entry) Errorf(format string, args ...any) {
	output(LevelError, "ERROR", e.format(fmt.Sprintf(format, args...)))
}
