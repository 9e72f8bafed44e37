// Package tui provides terminal user interface components and callbacks
// for driftool.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	styleDim     = lipgloss.NewStyle().Faint(true)
)

// isTerminal reports whether stdout is an interactive terminal; styling and
// the live progress bar are disabled otherwise.
func isTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// PrintError prints a styled error title followed by the message.
func PrintError(title, msg string) {
	fmt.Println(styleErr.Render("✖ " + title))
	fmt.Println(msg)
}

// PrintSuccess prints a styled success message.
func PrintSuccess(msg string) { fmt.Println(styleSuccess.Render("✔ " + msg)) }

// PrintWarning prints a styled warning title followed by the message.
func PrintWarning(title, msg string) {
	fmt.Println(styleWarn.Render("! " + title))
	fmt.Println(msg)
}

// PrintInfo prints a dimmed informational message.
func PrintInfo(msg string) {
	fmt.Println(styleDim.Render(msg))
}

// StyleTitle returns a styled title string for terminal output.
func StyleTitle(text string) string { return styleTitle.Render(text) }

// RunSummary carries the values shown after a completed analysis.
type RunSummary struct {
	SD         float64
	Branches   int
	Pairs      int
	OutputDir  string
	Identifier string
	Degraded   bool
	Duration   string
}

// PrintRunSummary renders the end-of-run summary block.
func PrintRunSummary(s RunSummary) {
	fmt.Println()
	fmt.Println(StyleTitle("Drift analysis complete"))
	if s.Degraded {
		fmt.Println(styleErr.Render("  run degraded: sd = -1 (see log.txt)"))
	} else {
		fmt.Printf("  statement drift (sd) = %v\n", s.SD)
	}
	fmt.Printf("  branches analyzed:     %d\n", s.Branches)
	if s.Pairs > 0 {
		fmt.Printf("  merge pairs measured:  %d\n", s.Pairs)
	}
	if s.OutputDir != "" {
		fmt.Printf("  artifacts:             %s/%s.{json,csv}\n", s.OutputDir, s.Identifier)
	}
	if s.Duration != "" {
		fmt.Printf("  duration:              %s\n", s.Duration)
	}
}

// PrintHelp renders the CLI usage text.
func PrintHelp() {
	fmt.Println(StyleTitle("driftool - merge drift analysis for git repositories"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  driftool <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run <config.yaml>    Run a full drift analysis of a repository")
	fmt.Println("  csv <matrix.csv>     Recompute the drift metric from an exported matrix")
	fmt.Println("  init [path]          Create a starter configuration interactively")
	fmt.Println("  version              Show version information")
	fmt.Println("  help                 Show this help message")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --sysconf <path>     System configuration (default: driftool.sysconf.yaml)")
	fmt.Println("  --threads <n>        Override number_threads from the system configuration")
	fmt.Println("  --yes, -y            Auto-approve confirmation prompts")
	fmt.Println("  --quiet, -q          Suppress non-essential output")
	fmt.Println("  --json               Structured JSON output")
	fmt.Println("  --verbose, -v        Trace git subprocess invocations")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  driftool run analysis.yaml             # Analyze the configured repository")
	fmt.Println("  driftool run analysis.yaml --threads 4 # Fan merges out over 4 workers")
	fmt.Println("  driftool csv results/report.csv        # Offline re-analysis of a matrix")
}
