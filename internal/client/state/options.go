package state

import (
	"context"
	"time"

	"github.com/dmitrijs2005/crossclip/internal/logging"
)

const defaultQueueSize = 64

type options struct {
	logger    logging.Logger
	now       func() time.Time
	queueSize int
	onClosed  func(ctx context.Context)
}

type Option func(*options)

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock replaces time.Now for item timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithQueueSize bounds the number of events waiting behind the one being
// processed. OnEvent blocks while the queue is full.
func WithQueueSize(n int) Option {
	return func(o *options) { o.queueSize = n }
}

// WithOnClosed registers the hook a Composer calls after it closes.
func WithOnClosed(fn func(ctx context.Context)) Option {
	return func(o *options) { o.onClosed = fn }
}

func buildOptions(opts []Option) options {
	o := options{
		logger:    logging.Nop(),
		now:       time.Now,
		queueSize: defaultQueueSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.queueSize < 1 {
		o.queueSize = 1
	}
	return o
}
