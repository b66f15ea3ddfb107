package bulk

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Options tune a Creator or a Deleter.
type Options struct {
	Logger *log.Logger
	// Now stamps server assigned creation timestamps.
	Now func() time.Time
	// Concurrency caps parallel existence checks. Zero means unbounded.
	Concurrency int
}

type Option func(*Options)

func WithLogger(logger *log.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Now = now
	}
}

func WithConcurrency(n int) Option {
	return func(o *Options) {
		o.Concurrency = n
	}
}

func buildOptions(opts []Option) Options {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
