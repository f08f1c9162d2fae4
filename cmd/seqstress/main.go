package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/a-peyrard/syncseq/config"
	"github.com/rs/zerolog"
)

const envPrefix = "SEQSTRESS"

func newLogger(out io.Writer, levelName string) (*zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", levelName, err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
	return &logger, nil
}

func run(ctx context.Context, out io.Writer) error {
	conf, err := config.Load[Config](config.WithEnvPrefix(envPrefix))
	if err != nil {
		return err
	}

	logger, err := newLogger(out, conf.LogLevel)
	if err != nil {
		return err
	}

	logger.Info().
		Int("writers", conf.Writers).
		Int("readers", conf.Readers).
		Int("readsPerReader", conf.ReadsPerReader).
		Int("seed", conf.Seed).
		Msg("starting stress run")

	start := time.Now()
	report, err := (&stress{conf: conf, logger: logger}).Run(ctx)
	if err != nil {
		return err
	}

	event := logger.Info()
	if !report.Ok() {
		event = logger.Error()
	}
	event.
		Int("finalLength", report.FinalLength).
		Int("expectedLength", report.ExpectedLength).
		Int64("reads", report.Reads).
		Int64("inconsistent", report.Inconsistent).
		Ints("duplicates", report.Duplicates).
		Int("missing", report.Missing).
		Dur("elapsed", time.Since(start)).
		Msg("stress run finished")

	if !report.Ok() {
		return fmt.Errorf("sequence invariants violated")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stderr)
	stop()

	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "seqstress: %v\n", err)
		os.Exit(1)
	}
}
