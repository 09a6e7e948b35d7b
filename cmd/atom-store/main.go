// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// atom-store is a small reference implementation of the atom service
// that atom-tracker talks to. It serves GET /atoms, POST /atoms and
// PUT /atoms/{id} over an in-memory collection, optionally persisted
// to a JSON data file and seeded from a JSONC file on first start.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/atomtracker/lib/atomstore"
	"github.com/bureau-foundation/atomtracker/lib/cli"
	"github.com/bureau-foundation/atomtracker/lib/config"
	"github.com/bureau-foundation/atomtracker/lib/version"
)

// shutdownTimeout bounds how long in-flight requests may run after
// SIGINT or SIGTERM.
const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

func run() error {
	var configPath, listen, dataFile, seedFile, logLevel string

	flagSet := pflag.NewFlagSet("atom-store", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (default: $"+config.EnvVar+")")
	flagSet.StringVar(&listen, "listen", "", "address to listen on (overrides store.listen)")
	flagSet.StringVar(&dataFile, "data-file", "", "JSON file persisting the collection (overrides store.data_file)")
	flagSet.StringVar(&seedFile, "seed-file", "", "JSONC file of initial atoms (overrides store.seed_file)")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("atom-store")
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
	if flagSet.Changed("listen") {
		cfg.Store.Listen = listen
	}
	if flagSet.Changed("data-file") {
		cfg.Store.DataFile = dataFile
	}
	if flagSet.Changed("seed-file") {
		cfg.Store.SeedFile = seedFile
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cli.Validation("invalid config: %w", err)
	}

	level, _ := cfg.Log.SlogLevel()
	logger := cli.NewCommandLogger(level)

	store, err := atomstore.Open(atomstore.Options{
		DataFile: cfg.Store.DataFile,
		SeedFile: cfg.Store.SeedFile,
		Logger:   logger,
	})
	if errors.Is(err, fs.ErrNotExist) {
		return cli.NotFound("opening store: %w", err).
			WithHint("Check the --seed-file path.")
	}
	if err != nil {
		return cli.Internal("opening store: %w", err)
	}

	listener, err := net.Listen("tcp", cfg.Store.Listen)
	if err != nil {
		return cli.Transient("listening on %s: %w", cfg.Store.Listen, err).
			WithHint("Pick a free address with --listen.")
	}

	server := &http.Server{
		Handler:           atomstore.NewHandler(store, logger, atomstore.WithMetrics(atomstore.NewMetrics(store))).Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErrors := make(chan error, 1)
	go func() {
		serveErrors <- server.Serve(listener)
	}()

	logger.Info("atom-store listening",
		"listen", listener.Addr().String(),
		"data_file", cfg.Store.DataFile,
		"atoms", store.Len(),
		"version", version.Info(),
	)

	select {
	case err := <-serveErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return cli.Internal("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownContext, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownContext); err != nil {
		return cli.Internal("shutting down: %w", err)
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `atom-store — reference atom service for atom-tracker.

Serves the atom collection over HTTP:

  GET  /atoms        list all atoms
  POST /atoms        create an atom (returns it with its new _id)
  PUT  /atoms/{id}   replace an atom
  GET  /metrics      Prometheus metrics

Without --data-file the collection lives in memory and is lost on exit.

Usage:
  atom-store [flags]

Examples:
  # In-memory store on the default address
  atom-store

  # Persist to a file, seeding it from a JSONC fixture on first start
  atom-store --data-file atoms.json --seed-file seed.jsonc

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
