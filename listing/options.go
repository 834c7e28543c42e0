package listing

import (
	"log/slog"
	"time"

	"github.com/arloliu/esync/internal/options"
)

// DefaultLabel is the header label used when none is configured.
const DefaultLabel = "DCC"

type config struct {
	label  string
	now    func() time.Time
	logger *slog.Logger
}

func defaultConfig() *config {
	return &config{
		label:  DefaultLabel,
		now:    time.Now,
		logger: slog.Default(),
	}
}

// Option configures Write.
type Option = options.Option[*config]

// WithLabel sets the data center label of the header line. An empty label
// keeps DefaultLabel.
func WithLabel(label string) Option {
	return options.NoError(func(c *config) {
		if label != "" {
			c.label = label
		}
	})
}

// WithNow sets the clock used for the listing date. The date is rendered in
// the location of the returned time.
func WithNow(now func() time.Time) Option {
	return options.NoError(func(c *config) {
		if now != nil {
			c.now = now
		}
	})
}

// WithLogger sets the logger for identifiers that cannot be decomposed.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}
