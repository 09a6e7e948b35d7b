// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// atom-tracker is a terminal UI for tracking the development status of
// design-system atoms. It edits a list held by the atom service
// (atom-store, or anything speaking the same HTTP API): new atoms are
// entered in the draft row, existing ones are edited in place and
// committed when focus leaves the cell.
//
// Background logging is routed through a TUILogHandler that shows
// warnings and errors in the status bar instead of writing to stderr,
// which would corrupt the alt-screen display. --log-output adds a JSON
// file logger that captures every record, including one debug record
// per HTTP request.
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/atomtracker/lib/atomapi"
	"github.com/bureau-foundation/atomtracker/lib/cli"
	"github.com/bureau-foundation/atomtracker/lib/config"
	"github.com/bureau-foundation/atomtracker/lib/tracker"
	"github.com/bureau-foundation/atomtracker/lib/trackerui"
	"github.com/bureau-foundation/atomtracker/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

func run() error {
	var configPath, apiURL, logOutput string
	var noColor bool

	flagSet := pflag.NewFlagSet("atom-tracker", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (default: $"+config.EnvVar+")")
	flagSet.StringVar(&apiURL, "api-url", "", "base URL of the atom service (overrides api.base_url)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to TUI display)")
	flagSet.BoolVar(&noColor, "no-color", false, "render without colors")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("atom-tracker")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return cli.Validation("%w", err)
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	if args := flagSet.Args(); len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}

	cfg, err := config.Resolve(configPath)
	if err != nil {
		return cli.FileError("loading config", err)
	}
	if flagSet.Changed("api-url") {
		cfg.API.BaseURL = apiURL
	}
	if err := cfg.Validate(); err != nil {
		return cli.Validation("invalid config: %w", err)
	}

	if noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// The status bar shows warnings and above, or whatever log.level
	// asks for if that is stricter.
	tuiLevel, _ := cfg.Log.SlogLevel()
	tuiLevel = max(tuiLevel, slog.LevelWarn)
	tuiHandler := trackerui.NewTUILogHandler(tuiLevel)

	var logger *slog.Logger
	if logOutput != "" {
		fileHandler, fileCloser, fileErr := cli.OpenFileLogHandler(logOutput)
		if fileErr != nil {
			return cli.Validation("cannot open log file %s: %w", logOutput, fileErr)
		}
		defer fileCloser()
		logger = slog.New(cli.FanoutHandler{tuiHandler, fileHandler})
	} else {
		logger = slog.New(tuiHandler)
	}

	timeout, _ := cfg.API.TimeoutDuration()
	client, err := atomapi.NewClient(atomapi.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: timeout,
		Logger:  logger.With("component", "atomapi"),
	})
	if err != nil {
		return cli.Validation("%w", err)
	}

	controller := tracker.New(client, logger.With("component", "tracker"))
	model := trackerui.NewModel(controller)
	program := tea.NewProgram(model, tea.WithAltScreen())

	tuiHandler.SetProgram(program)
	logger.Debug("atom-tracker starting", "api", cfg.API.BaseURL, "version", version.Info())

	_, err = program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `atom-tracker — terminal UI for design-system atom status.

Loads the atom list from the atom service and keeps it sorted
Developed, In Development, Not Started. Type in the top row and press
Enter (or select [Add Atom]) to create an atom. Edit any cell in the
table; the change is saved when focus leaves the cell.

Keys:
  Tab / Shift+Tab   next / previous field
  Up / Down         move between rows
  Enter / Space     open the status selector, add the draft
  Ctrl+F            filter rows by name or developer
  Esc / Ctrl+C      quit

Usage:
  atom-tracker [flags]

Examples:
  # Use a local atom-store on the default address
  atom-tracker

  # Point at another service and keep a debug log
  atom-tracker --api-url http://atoms.internal:9000 --log-output tracker.log

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
