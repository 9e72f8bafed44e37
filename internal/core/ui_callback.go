package core

// ProgressTracker reports long-running progress to the user. The sequential
// merge phase increments once per measured pair; the worker pool increments
// once per finished partition.
type ProgressTracker interface {
	Increment(message string)
	SetTotal(total int)
	Complete()
	Fail(err error)
}

// UICallback abstracts all user interaction so the engine stays independent
// of the terminal layer. Implementations live in internal/tui; tests and
// workers use SilentUICallback.
type UICallback interface {
	ShowError(title, message string)
	ShowSuccess(message string)
	ShowWarning(title, message string)
	AskConfirmation(title, message string) bool
	StyleTitle(title string) string
	GetOutputMode() OutputMode
	FormatJSON(output JSONOutput) error
	NewProgress(total int, label string) ProgressTracker
}

// SilentUICallback discards all output and denies confirmations. Used in
// tests and wherever the engine must run without a terminal.
type SilentUICallback struct{}

// ShowError discards the message.
func (s *SilentUICallback) ShowError(_, _ string) {}

// ShowSuccess discards the message.
func (s *SilentUICallback) ShowSuccess(_ string) {}

// ShowWarning discards the message.
func (s *SilentUICallback) ShowWarning(_, _ string) {}

// AskConfirmation denies without prompting.
func (s *SilentUICallback) AskConfirmation(_, _ string) bool { return false }

// StyleTitle returns the title unchanged.
func (s *SilentUICallback) StyleTitle(title string) string { return title }

// GetOutputMode reports quiet mode.
func (s *SilentUICallback) GetOutputMode() OutputMode { return OutputQuiet }

// FormatJSON discards the output.
func (s *SilentUICallback) FormatJSON(_ JSONOutput) error { return nil }

// NewProgress returns a tracker that does nothing.
func (s *SilentUICallback) NewProgress(_ int, _ string) ProgressTracker {
	return noopTracker{}
}

type noopTracker struct{}

func (noopTracker) Increment(_ string) {}
func (noopTracker) SetTotal(_ int)     {}
func (noopTracker) Complete()          {}
func (noopTracker) Fail(_ error)       {}
