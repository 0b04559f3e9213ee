package graph

import "log/slog"

const (
	// DefaultBunchThreshold is the bunch size above which a list-backed
	// bunch is upgraded to a hash-backed one. Below it a linear scan
	// beats hashing overhead on real, skewed RDF data, where most
	// indexing values gather only a handful of triples. Tune per
	// workload via WithBunchThreshold.
	DefaultBunchThreshold = 9

	defaultInitialCapacity = 16
)

type options struct {
	bunchThreshold  int
	initialCapacity int
	logger          *slog.Logger
}

// Option configures store construction.
type Option func(*options)

func defaultOptions() options {
	return options{
		bunchThreshold:  DefaultBunchThreshold,
		initialCapacity: defaultInitialCapacity,
		logger:          slog.New(slog.DiscardHandler),
	}
}

// WithBunchThreshold sets the list-to-hash transition threshold for
// per-value triple bunches. Values < 1 are ignored.
func WithBunchThreshold(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.bunchThreshold = n
		}
	}
}

// WithInitialCapacity pre-sizes the indexes for an expected number of
// distinct terms per position.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.initialCapacity = n
		}
	}
}

// WithLogger enables debug logging of internal events (bunch
// transitions). If nil, logging stays disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
