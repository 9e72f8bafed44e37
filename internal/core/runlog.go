package core

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// RunLog is the append-only analysis log. The orchestrator owns one central
// log; workers write to private logs that are merged after join, so the
// mutex only guards against accidental sharing.
type RunLog struct {
	mu    sync.Mutex
	lines []string
}

// NewRunLog creates a log with an opening marker line.
func NewRunLog(header string) *RunLog {
	l := &RunLog{}
	if header != "" {
		l.Append(header)
	}
	return l
}

// Append adds a single line.
func (l *RunLog) Append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

// Appendf adds a formatted line.
func (l *RunLog) Appendf(format string, args ...interface{}) {
	l.Append(fmt.Sprintf(format, args...))
}

// Extend merges another log's lines, used after worker join.
func (l *RunLog) Extend(other *RunLog) {
	if other == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, other.Lines()...)
}

// Lines returns a copy of the accumulated lines.
func (l *RunLog) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// WriteFile flushes the log to a file, one line per entry. Called after a
// completed run and after a failed analysis or artifact write, so those
// failed runs still leave a transcript behind.
func (l *RunLog) WriteFile(path string) error {
	var b strings.Builder
	for _, line := range l.Lines() {
		b.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			b.WriteString("\n")
		}
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
