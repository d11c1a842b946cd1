// Package main provides the rentalreturn command which resolves one return event against the rental store
// and prints the outcome as JSON.
//
// Usage:
//
//	rentalreturn [-verbose] <event_file.json>
//
// The store is selected with RENTAL_* environment variables, see shell/config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/rental-return-events/features/returnrental"
	"github.com/AntonStoeckl/rental-return-events/shell/config"
)

const (
	exitOK      = 0
	exitFailure = 1
)

var errEventNotAnObject = errors.New("return event must be a JSON object")

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("rentalreturn", flag.ContinueOnError)
	flags.SetOutput(stderr)
	verbose := flags.Bool("verbose", false, "log debug output including executed SQL to stderr")
	flags.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "Usage: rentalreturn [-verbose] <event_file.json>")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return exitFailure
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return exitFailure
	}

	logger := config.NewLogger(stderr, *verbose)

	raw, err := readEvent(flags.Arg(0))
	if err != nil {
		logger.Error("cannot read return event", "file", flags.Arg(0), "error", err.Error())
		return exitFailure
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err.Error())
		return exitFailure
	}

	instrumentation, err := newInstrumentation(ctx, cfg, logger)
	if err != nil {
		logger.Error("cannot set up telemetry", "error", err.Error())
		return exitFailure
	}
	defer instrumentation.shutdown(logger)

	handle, err := config.OpenStore(ctx, cfg, true, instrumentation.storeOptions()...)
	if err != nil {
		logger.Error("cannot open rental store", "error", err.Error())
		return exitFailure
	}
	defer handle.Close()

	if err = handle.Store.VerifySchema(ctx); err != nil {
		logger.Error("rental store is not usable", "error", err.Error())
		return exitFailure
	}

	handler, err := returnrental.NewCommandHandler(handle.Store, instrumentation.handlerOptions(cfg.ResolveAttempts)...)
	if err != nil {
		logger.Error("cannot create command handler", "error", err.Error())
		return exitFailure
	}

	response, handleErr := handler.Handle(ctx, raw)

	if err = printResponse(stdout, response); err != nil {
		logger.Error("cannot render response", "error", err.Error())
		return exitFailure
	}

	if handleErr != nil {
		return exitFailure
	}

	return exitOK
}

func readEvent(path string) (returnrental.RawEvent, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(content, &decoded); err != nil {
		return nil, err
	}

	raw, ok := decoded.(map[string]any)
	if !ok {
		return nil, errEventNotAnObject
	}

	return raw, nil
}

func printResponse(w io.Writer, response returnrental.Response) error {
	output, err := response.JSON()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(output))

	return err
}

// logShutdownError is used for errors which can no longer change the exit code.
func logShutdownError(logger *slog.Logger, msg string, err error) {
	if err != nil {
		logger.Warn(msg, "error", err.Error())
	}
}
