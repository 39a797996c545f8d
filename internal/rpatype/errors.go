package rpatype

import "errors"

// Sentinel errors for archive operations.
var (
	// ErrNotFound is returned when an entry name is not present in the index.
	ErrNotFound = errors.New("rpa: entry not found")

	// ErrMalformedArchive is returned when the header, index, or body layout
	// of an archive is structurally invalid.
	ErrMalformedArchive = errors.New("rpa: malformed archive")

	// ErrKeyMismatch is returned when an archive was packed with a key and
	// the supplied key is missing or detectably wrong.
	ErrKeyMismatch = errors.New("rpa: key mismatch")

	// ErrInvalidName is returned when an entry name cannot be stored.
	ErrInvalidName = errors.New("rpa: invalid entry name")

	// ErrTooManyEntries is returned when the entry count exceeds the configured limit.
	ErrTooManyEntries = errors.New("rpa: too many entries")

	// ErrSizeOverflow is returned when byte counts exceed supported limits.
	ErrSizeOverflow = errors.New("rpa: size overflow")
)
