package rpa

import "log/slog"

// DefaultMaxEntries is the default limit used when no WithMaxEntries option is set.
const DefaultMaxEntries = 1_000_000

// Option configures an Archive.
type Option func(*Archive)

// WithLogger sets the logger for pack and open operations.
// A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archive) {
		a.logger = logger
	}
}

// WithMaxEntries limits the number of entries an archive may hold, both when
// packing and when opening. Zero uses DefaultMaxEntries. Negative means no
// limit beyond the format's own.
func WithMaxEntries(n int) Option {
	return func(a *Archive) {
		a.maxEntries = n
	}
}
