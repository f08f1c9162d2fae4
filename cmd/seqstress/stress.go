package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/a-peyrard/syncseq/concurrent"
	"github.com/a-peyrard/syncseq/runner"
	"github.com/a-peyrard/syncseq/set"
	"github.com/rs/zerolog"
)

// Report summarizes a stress run.
type Report struct {
	FinalLength    int
	ExpectedLength int
	Reads          int64
	Inconsistent   int64
	Duplicates     []int
	Missing        int
}

// Ok tells if the run observed no violation.
func (r *Report) Ok() bool {
	return r.FinalLength == r.ExpectedLength &&
		r.Inconsistent == 0 &&
		len(r.Duplicates) == 0 &&
		r.Missing == 0
}

type stress struct {
	conf   *Config
	logger *zerolog.Logger
}

// Run seeds a sequence with negative values, lets writers append 0..Writers-1 while
// readers sample it, then checks nothing was lost nor duplicated.
func (s *stress) Run(ctx context.Context) (*Report, error) {
	seed := make([]int, s.conf.Seed)
	for i := range seed {
		seed[i] = -(i + 1)
	}
	seq := concurrent.NewFrom(seed, concurrent.WithLogger(s.logger))

	var reads, inconsistent atomic.Int64
	upperBound := s.conf.Seed + s.conf.Writers

	runnables := make([]runner.Runnable, 0, s.conf.Writers+s.conf.Readers)
	for i := 0; i < s.conf.Writers; i++ {
		runnables = append(runnables, runner.RunnableFunc(func(context.Context) error {
			seq.Append(i)
			return nil
		}))
	}
	for r := 0; r < s.conf.Readers; r++ {
		runnables = append(runnables, runner.RunnableFunc(func(ctx context.Context) error {
			previous := 0
			for j := 0; j < s.conf.ReadsPerReader; j++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				snapshot := seq.Snapshot()
				length := len(snapshot)
				// appends only, so a reader never sees the sequence shrink
				if length < previous || length < s.conf.Seed || length > upperBound {
					inconsistent.Add(1)
					s.logger.Warn().
						Int("reader", r).
						Int("length", length).
						Int("previous", previous).
						Msg("inconsistent length observed")
				}
				if _, found := seq.Last(); !found && s.conf.Seed > 0 {
					inconsistent.Add(1)
				}
				previous = length
				reads.Add(1)
			}
			return nil
		}))
	}

	run := runner.RunAll
	if s.conf.MaxParallel > 0 {
		run = func(ctx context.Context, runnables ...runner.Runnable) error {
			return runner.RunLimited(ctx, s.conf.MaxParallel, runnables...)
		}
	}
	if err := run(ctx, runnables...); err != nil {
		return nil, fmt.Errorf("stress run failed: %w", err)
	}
	if err := seq.SettleContext(ctx); err != nil {
		return nil, err
	}

	final := seq.Snapshot()
	actual, duplicates := set.NewFromSlice(final)
	expected, _ := set.NewFromSlice(append(seed, writtenValues(s.conf.Writers)...))

	return &Report{
		FinalLength:    len(final),
		ExpectedLength: upperBound,
		Reads:          reads.Load(),
		Inconsistent:   inconsistent.Load(),
		Duplicates:     duplicates,
		Missing:        expected.Difference(actual).Size(),
	}, nil
}

func writtenValues(writers int) []int {
	values := make([]int, writers)
	for i := range values {
		values[i] = i
	}
	return values
}
