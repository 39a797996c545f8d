package rpa

import "github.com/meigma/rpa/internal/rpatype"

// Sentinel errors re-exported from internal/rpatype.
var (
	// ErrNotFound is returned when an entry name is not present in the archive.
	ErrNotFound = rpatype.ErrNotFound

	// ErrMalformedArchive is returned when the header, index, or body layout
	// is structurally invalid.
	ErrMalformedArchive = rpatype.ErrMalformedArchive

	// ErrKeyMismatch is returned when a keyed archive is opened without a key
	// or with a key that yields an impossible layout.
	ErrKeyMismatch = rpatype.ErrKeyMismatch

	// ErrInvalidName is returned when an entry name is empty, duplicated, or
	// longer than MaxNameLength.
	ErrInvalidName = rpatype.ErrInvalidName

	// ErrTooManyEntries is returned when the entry count exceeds the configured limit.
	ErrTooManyEntries = rpatype.ErrTooManyEntries

	// ErrSizeOverflow is returned when byte counts exceed supported limits.
	ErrSizeOverflow = rpatype.ErrSizeOverflow
)
