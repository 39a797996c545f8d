package rpa

import (
	"github.com/meigma/rpa/internal/obfs"
	"github.com/meigma/rpa/internal/rpatype"
)

// Re-export types from internal packages for the public API.
type (
	// Key is an optional obfuscation seed. The zero value means "no key".
	Key = obfs.Key

	// EntryInfo locates a named payload within an archive body.
	EntryInfo = rpatype.Entry

	// ProgressEvent represents a progress update during operations.
	ProgressEvent = rpatype.ProgressEvent

	// ProgressStage identifies the current phase of an operation.
	ProgressStage = rpatype.ProgressStage

	// ProgressFunc receives progress updates during operations.
	ProgressFunc = rpatype.ProgressFunc
)

// NewKey returns a present key with the given seed.
var NewKey = obfs.NewKey

// NoKey is the absent key.
var NoKey = Key{}

// MaxNameLength is the longest entry name an archive can store, in bytes.
const MaxNameLength = rpatype.MaxNameLength

// Re-export progress stage constants.
const (
	StageEnumerating = rpatype.StageEnumerating
	StageReading     = rpatype.StageReading
	StageExtracting  = rpatype.StageExtracting
)
