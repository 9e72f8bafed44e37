package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/driftool/driftool/internal/types"
)

// RunInitWizard interactively collects a starter run configuration.
// Returns nil when the user aborts the form.
func RunInitWizard() *types.AnalysisConfig {
	var (
		inputRepository string
		outputDirectory string
		branchIgnore    string
		timeout         string
		fetchUpdates    bool
		simpleExport    bool
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Input repository").
				Description("Path to the git repository to analyze (never modified)").
				Validate(validateRequired("input repository")).
				Value(&inputRepository),
			huh.NewInput().
				Title("Output directory").
				Description("Where result artifacts are written").
				Value(&outputDirectory),
			huh.NewInput().
				Title("Branch ignore patterns").
				Description("Comma-separated regexes; matching branches are excluded").
				Value(&branchIgnore),
			huh.NewInput().
				Title("Branch timeout (days)").
				Description("Exclude branches without commits in this many days (empty = off)").
				Validate(validateOptionalInt).
				Value(&timeout),
			huh.NewConfirm().
				Title("Fetch updates?").
				Description("git pull origin <branch> while materializing branches").
				Value(&fetchUpdates),
			huh.NewConfirm().
				Title("Simple export?").
				Description("Additionally write the bare sd value to a text file").
				Value(&simpleExport),
		),
	)

	if err := form.Run(); err != nil {
		return nil
	}

	cfg := &types.AnalysisConfig{
		InputRepository: strings.TrimSpace(inputRepository),
		OutputDirectory: strings.TrimSpace(outputDirectory),
		FetchUpdates:    fetchUpdates,
		SimpleExport:    simpleExport,
	}
	for _, pattern := range strings.Split(branchIgnore, ",") {
		if p := strings.TrimSpace(pattern); p != "" {
			cfg.BranchIgnore = append(cfg.BranchIgnore, p)
		}
	}
	if t := strings.TrimSpace(timeout); t != "" {
		cfg.Timeout, _ = strconv.Atoi(t)
	}
	return cfg
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func validateOptionalInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("must be a non-negative integer")
	}
	return nil
}
