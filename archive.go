package rpa

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/meigma/rpa/internal/format"
	"github.com/meigma/rpa/internal/index"
	"github.com/meigma/rpa/internal/obfs"
	"github.com/meigma/rpa/internal/sizing"
)

// Codec packs entries into a single byte sequence and reverses the process.
//
// Implementations must satisfy Unpack(Pack(entries, key), key) == entries for
// every entry set and key.
type Codec interface {
	Pack(entries *Entries, key Key) ([]byte, error)
	Unpack(data []byte, key Key) (*Entries, error)
}

// Interface compliance.
var _ Codec = (*Archive)(nil)

// Archive is the RPAK codec.
//
// An Archive holds configuration only; every call owns its buffers, so one
// Archive may be used from multiple goroutines.
type Archive struct {
	logger     *slog.Logger
	maxEntries int
}

// New returns an Archive configured by opts.
func New(opts ...Option) *Archive {
	a := &Archive{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var defaultArchive = New()

// Pack packs entries with the default Archive.
func Pack(entries *Entries, key Key) ([]byte, error) {
	return defaultArchive.Pack(entries, key)
}

// Unpack unpacks data with the default Archive.
func Unpack(data []byte, key Key) (*Entries, error) {
	return defaultArchive.Unpack(data, key)
}

// Open opens data for random access with the default Archive.
func Open(data []byte, key Key) (*Reader, error) {
	return defaultArchive.Open(data, key)
}

// IsRecognized reports whether data starts with the archive marker.
func IsRecognized(data []byte) bool {
	return format.IsRecognized(data)
}

// log returns the logger, falling back to a discard logger if nil.
func (a *Archive) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.logger
}

// limit returns the effective entry limit.
func (a *Archive) limit() uint64 {
	switch {
	case a.maxEntries == 0:
		return DefaultMaxEntries
	case a.maxEntries < 0 || uint64(a.maxEntries) > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint64(a.maxEntries)
	}
}

// Pack serializes entries into a single archive.
//
// Payloads are concatenated in iteration order. When key is present, every
// offset and length in the index is obfuscated with it. Output is
// deterministic: packing the same entries with the same key twice yields
// identical bytes. A nil entries packs an empty archive.
func (a *Archive) Pack(entries *Entries, key Key) ([]byte, error) {
	n := entries.Len()
	if uint64(n) > a.limit() { //nolint:gosec // Len is non-negative
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyEntries, n, a.limit())
	}

	items := make([]index.Item, 0, n)
	for name, data := range entries.All() {
		if name == "" {
			return nil, fmt.Errorf("%w: empty name", ErrInvalidName)
		}
		if len(name) > MaxNameLength {
			return nil, fmt.Errorf("%w: name of %d bytes exceeds %d", ErrInvalidName, len(name), MaxNameLength)
		}
		items = append(items, index.Item{Name: name, Length: uint64(len(data))})
	}

	idx, err := index.Build(items)
	if err != nil {
		return nil, err
	}

	hdr := format.Header{
		Version: format.Version,
		Count:   uint32(n), //nolint:gosec // bounded by limit
		Keyed:   key.IsSet(),
	}

	size, ok := sizing.AddUint64(uint64(format.HeaderSize+idx.EncodedSize()), idx.BodySize())
	if !ok {
		return nil, ErrSizeOverflow
	}
	capacity, err := sizing.ToInt(size, ErrSizeOverflow)
	if err != nil {
		return nil, fmt.Errorf("%w: archive of %d bytes", err, size)
	}

	buf := make([]byte, 0, capacity)
	buf = hdr.AppendBinary(buf)
	buf, err = idx.AppendBinary(buf, obfs.New(key))
	if err != nil {
		return nil, err
	}
	for _, data := range entries.All() {
		buf = append(buf, data...)
	}

	a.log().Debug("packed archive",
		"entries", n,
		"keyed", hdr.Keyed,
		"index_size", idx.EncodedSize(),
		"body_size", idx.BodySize())
	return buf, nil
}

// Unpack parses data and returns a copy of every entry in index order.
//
// Unpack fails with ErrMalformedArchive when data is not a well-formed
// archive and with ErrKeyMismatch when the archive was packed with a key and
// key is absent or detectably wrong. A key supplied for an unkeyed archive is
// ignored.
func (a *Archive) Unpack(data []byte, key Key) (*Entries, error) {
	r, err := a.Open(data, key)
	if err != nil {
		return nil, err
	}
	return r.Extract(), nil
}
