package concurrent

import (
	"github.com/a-peyrard/syncseq/option"
	"github.com/rs/zerolog"
)

type (
	// Options configures a Sequence.
	Options struct {
		logger            *zerolog.Logger
		staleIndexHandler func(err *IndexError)
	}
)

// WithLogger sets the logger used to report stale indices and recovered panics.
func WithLogger(logger *zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// WithStaleIndexHandler registers a handler called, on the writer goroutine, each time
// an index based mutation is skipped because its index is out of range when it executes.
//
// The handler must not call Settle on the sequence.
func WithStaleIndexHandler(handler func(err *IndexError)) option.Option[Options] {
	return func(opts *Options) {
		opts.staleIndexHandler = handler
	}
}

func buildOptions(opts ...option.Option[Options]) *Options {
	nop := zerolog.Nop()
	options := option.Build(&Options{logger: &nop}, opts...)
	if options.logger == nil {
		options.logger = &nop
	}
	if options.staleIndexHandler == nil {
		logger := options.logger
		options.staleIndexHandler = func(err *IndexError) {
			logger.Warn().
				Str("op", err.Op).
				Int("index", err.Index).
				Int("length", err.Length).
				Msg("skipping mutation with stale index")
		}
	}
	return options
}
