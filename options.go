package dompa

import (
	"io"
	"log/slog"
)

// Option configures Parse.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

func defaultOptions() options {
	return options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithLogger makes the parser log each recovered warning at debug level,
// plus a summary once the tree is built.  A nil logger discards.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
