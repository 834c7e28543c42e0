package esync

import (
	"log/slog"
	"time"

	"github.com/arloliu/esync/internal/options"
	"github.com/arloliu/esync/trace"
)

// Option configures a Processor.
type Option = options.Option[*Processor]

// WithLogger sets the logger for progress and skip messages.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	})
}

// WithDecoder replaces the record container decoder.
func WithDecoder(decoder Decoder) Option {
	return options.NoError(func(p *Processor) {
		p.decoder = decoder
	})
}

// WithCollection sets the collection that is trimmed, listed and compared.
// It defaults to an empty trace.List.
func WithCollection(list *trace.List) Option {
	return options.NoError(func(p *Processor) {
		p.list = list
	})
}

// WithMerger replaces the default merge step, which adds records to the
// collection with trace.List.Add. A custom Merger must fold records into the
// collection set with WithCollection; NewProcessor rejects it otherwise.
func WithMerger(merger Merger) Option {
	return options.NoError(func(p *Processor) {
		p.merger = merger
	})
}

// WithNow sets the clock used for the listing date.
func WithNow(now func() time.Time) Option {
	return options.NoError(func(p *Processor) {
		p.now = now
	})
}
