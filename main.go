// Package main implements the driftool CLI for measuring merge drift
// across the branches of a git repository.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/driftool/driftool/internal/core"
	"github.com/driftool/driftool/internal/tui"
	"github.com/driftool/driftool/internal/types"
	"github.com/driftool/driftool/internal/version"
)

// Exit codes: 0 on success (including degraded runs, which still produce
// artifacts), 2 on configuration or fatal analysis failure.
const exitFailure = 2

// runFlags carries the options shared by the run and csv commands.
type runFlags struct {
	common  core.NonInteractiveFlags
	sysconf string
	threads int
	verbose bool
	output  string
}

// parseRunFlags extracts flags from args and returns the positional rest.
func parseRunFlags(args []string) (runFlags, []string, error) {
	flags := runFlags{sysconf: core.DefaultSysConfPath}
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--yes", "-y":
			flags.common.Yes = true
		case "--quiet", "-q":
			flags.common.Mode = core.OutputQuiet
		case "--json":
			flags.common.Mode = core.OutputJSON
		case "--verbose", "-v":
			flags.verbose = true
		case "--sysconf":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("--sysconf requires a path")
			}
			i++
			flags.sysconf = args[i]
		case "--threads":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("--threads requires a number")
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil || n < 1 {
				return flags, nil, fmt.Errorf("--threads requires a positive integer")
			}
			flags.threads = n
		case "--out":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("--out requires a directory")
			}
			i++
			flags.output = args[i]
		default:
			positional = append(positional, arg)
		}
	}
	return flags, positional, nil
}

// pickUICallback selects the interactive or non-interactive callback.
func pickUICallback(flags runFlags) core.UICallback {
	if flags.common.Mode == core.OutputNormal && !flags.common.Yes {
		return tui.NewTUICallback()
	}
	return tui.NewNonInteractiveTUICallback(flags.common)
}

func main() {
	if len(os.Args) < 2 {
		tui.PrintHelp()
		os.Exit(0)
	}

	command := os.Args[1]

	switch command {
	case "--help", "-h", "help":
		tui.PrintHelp()

	case "--version", "version":
		fmt.Printf("driftool %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)

	case "run":
		runAnalysis(os.Args[2:], false)

	case "csv":
		runAnalysis(os.Args[2:], true)

	case "init":
		runInit(os.Args[2:])

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		tui.PrintHelp()
		os.Exit(exitFailure)
	}
}

// runAnalysis drives both the full analysis (run) and the CSV bypass (csv).
func runAnalysis(args []string, csvMode bool) {
	flags, positional, err := parseRunFlags(args)
	if err != nil {
		tui.PrintError("Invalid Arguments", err.Error())
		os.Exit(exitFailure)
	}
	if len(positional) != 1 {
		if csvMode {
			tui.PrintError("Invalid Arguments", "usage: driftool csv <matrix.csv> [--out dir]")
		} else {
			tui.PrintError("Invalid Arguments", "usage: driftool run <config.yaml>")
		}
		os.Exit(exitFailure)
	}

	var config types.AnalysisConfig
	if csvMode {
		config = types.AnalysisConfig{
			CSVFile:         positional[0],
			OutputDirectory: flags.output,
		}
	} else {
		config, err = core.LoadAnalysisConfig(positional[0])
		if err != nil {
			tui.PrintError("Configuration Failed", err.Error())
			os.Exit(exitFailure)
		}
		if flags.output != "" {
			config.OutputDirectory = flags.output
		}
	}

	sysconf, err := core.LoadSysConf(flags.sysconf)
	if err != nil {
		tui.PrintError("Configuration Failed", err.Error())
		os.Exit(exitFailure)
	}
	if flags.threads > 0 {
		sysconf.NumberThreads = flags.threads
	}

	if !csvMode && !core.IsGitInstalled() {
		tui.PrintError("Error", "git not found.")
		os.Exit(exitFailure)
	}

	ui := pickUICallback(flags)
	manager := core.NewManager(config, sysconf)
	manager.SetUICallback(ui)
	manager.SetVerbose(flags.verbose)

	if !confirmArtifactOverwrite(config, ui) {
		os.Exit(exitFailure)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	start := time.Now()
	env, err := manager.Analyze(ctx)
	if err != nil {
		manager.WriteLogOnFailure(err)
		ui.ShowError("Analysis Failed", err.Error())
		os.Exit(exitFailure)
	}

	if err := manager.WriteArtifacts(env); err != nil {
		manager.WriteLogOnFailure(err)
		ui.ShowError("Artifact Write Failed", err.Error())
		os.Exit(exitFailure)
	}

	duration := time.Since(start).Round(time.Millisecond)
	reportResult(flags, config, env, duration)
}

// confirmArtifactOverwrite asks before replacing an existing fixed-name
// artifact; timestamped identifiers never collide.
func confirmArtifactOverwrite(config types.AnalysisConfig, ui core.UICallback) bool {
	if !config.Anonymous || config.OutputDirectory == "" {
		return true
	}
	path := filepath.Join(config.OutputDirectory, "report.json")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return true
	}
	return ui.AskConfirmation("Overwrite Report?",
		fmt.Sprintf("%s already exists and will be replaced", path))
}

// reportResult renders the end-of-run output for the selected mode.
func reportResult(flags runFlags, config types.AnalysisConfig, env types.MeasuredEnvironment, duration time.Duration) {
	switch flags.common.Mode {
	case core.OutputJSON:
		callback := tui.NewNonInteractiveTUICallback(flags.common)
		_ = callback.FormatJSON(core.JSONOutput{
			Status: "success",
			Data: map[string]interface{}{
				"sd":       env.SD,
				"branches": len(env.Branches),
				"degraded": env.Degraded(),
				"duration": duration.String(),
			},
		})
	case core.OutputQuiet:
		// No output
	default:
		n := len(env.Branches)
		tui.PrintRunSummary(tui.RunSummary{
			SD:         env.SD,
			Branches:   n,
			Pairs:      n * (n - 1) / 2,
			OutputDir:  config.OutputDirectory,
			Identifier: resultBasename(config),
			Degraded:   env.Degraded(),
			Duration:   duration.String(),
		})
	}
}

// resultBasename mirrors the identifier the report service used. The
// timestamped variant is approximated for display only.
func resultBasename(config types.AnalysisConfig) string {
	if config.Anonymous {
		return "report"
	}
	return "driftool_results_*"
}

// runInit drives the interactive configuration wizard.
func runInit(args []string) {
	path := "driftool.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil {
		callback := tui.NewTUICallback()
		if !callback.AskConfirmation("Overwrite Configuration?",
			fmt.Sprintf("%s already exists and will be replaced", path)) {
			return
		}
	}

	config := tui.RunInitWizard()
	if config == nil {
		return
	}

	if err := core.SaveAnalysisConfig(path, *config); err != nil {
		tui.PrintError("Failed", err.Error())
		os.Exit(exitFailure)
	}
	tui.PrintSuccess("Wrote " + path)

	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  driftool run %s           # Run the analysis\n", path)
	fmt.Printf("  driftool run %s --threads 4  # Fan out over 4 workers\n", path)
}
