package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/lookbook.txt"

// Logger is the viewer console: it keeps every line in memory, appends it to a file on
// disk and optionally mirrors it to a writer (stderr in the CLI). Safe for concurrent use.
type Logger struct {
	mu     sync.Mutex
	path   string
	mirror io.Writer
	lines  []string
	now    func() time.Time
}

// New returns a Logger appending to path (no file when path is empty) and mirroring to
// mirror (may be nil). The log directory is created if needed.
func New(path string, mirror io.Writer) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, mirror: mirror, lines: make([]string, 0), now: time.Now}
}

// Discard returns a Logger that only keeps lines in memory. Used by tests.
func Discard() *Logger {
	return New("", nil)
}

// Log appends a line prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stamped := "[" + l.now().Format("2006-01-02 15:04:05") + "] " + line
	l.lines = append(l.lines, stamped)

	if l.mirror != nil {
		_, _ = io.WriteString(l.mirror, stamped+"\n")
	}
	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats according to format and logs the result.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns the last n lines (all when fewer), cutting lines longer than width runes
// with "...". width <= 0 keeps full lines.
func (l *Logger) Tail(n, width int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	start := 0
	if n >= 0 && len(l.lines) > n {
		start = len(l.lines) - n
	}
	out := make([]string, 0, len(l.lines)-start)
	for _, line := range l.lines[start:] {
		if width > 3 && utf8.RuneCountInString(line) > width {
			line = string([]rune(line)[:width-3]) + "..."
		}
		out = append(out, line)
	}
	return out
}
