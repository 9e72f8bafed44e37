package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/driftool/driftool/internal/core"
)

// NewProgressTracker picks the right tracker for the environment: a live
// bubbletea bar on a terminal, plain text otherwise.
func NewProgressTracker(total int, label string) core.ProgressTracker {
	if isTerminal() {
		return newTeaProgressTracker(total, label)
	}
	return NewTextProgressTracker(total, label)
}

// ========================================
// Bubbletea Progress Model
// ========================================

// progressModel renders the merge-measurement progress bar.
type progressModel struct {
	current int
	total   int
	label   string
	message string
	done    bool
	failed  bool
	err     error
	width   int
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case progressIncrementMsg:
		m.current++
		m.message = msg.message
	case progressSetTotalMsg:
		m.total = msg.total
	case progressCompleteMsg:
		m.done = true
		return m, tea.Quit
	case progressFailMsg:
		m.failed = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return styleSuccess.Render(fmt.Sprintf("✓ %s (completed: %d/%d)", m.label, m.current, m.total))
	}
	if m.failed {
		return styleErr.Render(fmt.Sprintf("✗ %s (failed: %v)", m.label, m.err))
	}

	total := m.total
	if total < 1 {
		total = 1
	}
	percent := float64(m.current) / float64(total)
	barWidth := 40
	if m.width > 0 && m.width < 80 {
		barWidth = 20
	}
	filled := int(percent * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	status := fmt.Sprintf("[%s] %d/%d", bar, m.current, m.total)
	if m.message != "" {
		status += " - " + m.message
	}
	return fmt.Sprintf("%s\n%s", styleTitle.Render(m.label), status)
}

type progressIncrementMsg struct{ message string }
type progressSetTotalMsg struct{ total int }
type progressCompleteMsg struct{}
type progressFailMsg struct{ err error }

// teaProgressTracker drives the bubbletea model from engine callbacks.
type teaProgressTracker struct {
	program *tea.Program
}

func newTeaProgressTracker(total int, label string) *teaProgressTracker {
	p := tea.NewProgram(progressModel{total: total, label: label, width: 80})
	go func() {
		_, _ = p.Run()
	}()
	return &teaProgressTracker{program: p}
}

// Increment updates progress with a message.
func (t *teaProgressTracker) Increment(message string) {
	t.program.Send(progressIncrementMsg{message: message})
}

// SetTotal sets the total count for the progress tracker.
func (t *teaProgressTracker) SetTotal(total int) {
	t.program.Send(progressSetTotalMsg{total: total})
}

// Complete marks the operation as complete.
func (t *teaProgressTracker) Complete() {
	t.program.Send(progressCompleteMsg{})
	time.Sleep(100 * time.Millisecond) // Allow final render
}

// Fail marks the operation as failed with an error.
func (t *teaProgressTracker) Fail(err error) {
	t.program.Send(progressFailMsg{err: err})
	time.Sleep(100 * time.Millisecond) // Allow final render
}

// ========================================
// Text Progress (Non-TTY)
// ========================================

// TextProgressTracker provides simple line-based progress for logs and
// non-interactive shells.
type TextProgressTracker struct {
	current int
	total   int
	label   string
}

// NewTextProgressTracker creates a new text progress tracker
func NewTextProgressTracker(total int, label string) *TextProgressTracker {
	fmt.Printf("Starting: %s (0/%d)\n", label, total)
	return &TextProgressTracker{total: total, label: label}
}

// Increment updates progress with a message.
func (t *TextProgressTracker) Increment(message string) {
	t.current++
	msg := fmt.Sprintf("  [%d/%d]", t.current, t.total)
	if message != "" {
		msg += " " + message
	}
	fmt.Println(msg)
}

// SetTotal sets the total count for the progress tracker.
func (t *TextProgressTracker) SetTotal(total int) {
	t.total = total
}

// Complete marks the operation as complete.
func (t *TextProgressTracker) Complete() {
	fmt.Printf("✓ %s: Completed (%d/%d)\n", t.label, t.current, t.total)
}

// Fail marks the operation as failed with an error.
func (t *TextProgressTracker) Fail(err error) {
	fmt.Printf("✗ %s: Failed - %v\n", t.label, err)
}
