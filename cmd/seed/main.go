// Package main provides the seed command which migrates the configured rental store
// and fills it with the demo data set.
//
// Usage:
//
//	seed [-verbose] [-events-dir DIR]
//
// With -events-dir the demo return events are written to DIR as event_0N.json files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/rental-return-events/bootstrap"
	"github.com/AntonStoeckl/rental-return-events/rentalstore/sqlengine"
	"github.com/AntonStoeckl/rental-return-events/shell/config"
)

const (
	exitOK      = 0
	exitFailure = 1

	eventFileMode = 0o644
	eventDirMode  = 0o755
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("seed", flag.ContinueOnError)
	flags.SetOutput(stderr)
	verbose := flags.Bool("verbose", false, "log debug output including executed SQL to stderr")
	eventsDir := flags.String("events-dir", "", "directory to write the example return events to")

	if err := flags.Parse(args); err != nil {
		return exitFailure
	}

	logger := config.NewLogger(stderr, *verbose)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err.Error())
		return exitFailure
	}

	handle, err := config.OpenStore(ctx, cfg, false, sqlengine.WithLogger(logger))
	if err != nil {
		logger.Error("cannot open rental store", "error", err.Error())
		return exitFailure
	}
	defer handle.Close()

	if err = handle.Migrate(ctx); err != nil {
		logger.Error("cannot migrate rental store", "error", err.Error())
		return exitFailure
	}

	dataset, err := bootstrap.Seed(ctx, handle.Store)
	if err != nil {
		logger.Error("cannot seed rental store", "error", err.Error())
		return exitFailure
	}

	_, _ = fmt.Fprintf(stdout, "seeded %d users, %d assets and %d rentals\n",
		len(dataset.Users), len(dataset.Assets), len(dataset.Rentals))

	if *eventsDir == "" {
		return exitOK
	}

	if err = writeExampleEvents(*eventsDir, stdout); err != nil {
		logger.Error("cannot write example events", "dir", *eventsDir, "error", err.Error())
		return exitFailure
	}

	return exitOK
}

func writeExampleEvents(dir string, stdout io.Writer) error {
	if err := os.MkdirAll(dir, eventDirMode); err != nil {
		return err
	}

	for _, event := range bootstrap.ExampleEvents() {
		content, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(event.Payload, "", "    ")
		if err != nil {
			return err
		}

		path := filepath.Join(dir, event.FileName)
		if err = os.WriteFile(path, content, eventFileMode); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(stdout, "%s: %s\n", path, event.Description)
	}

	return nil
}
