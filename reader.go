package rpa

import (
	"fmt"
	"iter"
	"slices"

	"github.com/meigma/rpa/internal/format"
	"github.com/meigma/rpa/internal/index"
	"github.com/meigma/rpa/internal/obfs"
	"github.com/meigma/rpa/internal/rpatype"
)

// Reader provides random access to the entries of a parsed archive.
//
// A Reader is immutable and safe for concurrent use. It retains the data
// passed to Open; callers must not modify it while the Reader is in use.
type Reader struct {
	idx   *index.Index
	body  []byte
	keyed bool
}

// Open parses the header and index of data and validates the body layout.
//
// Open fails with ErrMalformedArchive when data is not a well-formed archive
// and with ErrKeyMismatch when the archive was packed with a key and key is
// absent or yields an impossible layout. A key supplied for an unkeyed
// archive is ignored.
func (a *Archive) Open(data []byte, key Key) (*Reader, error) {
	hdr, err := format.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	var ob obfs.Obfuscator
	switch {
	case hdr.Keyed && !key.IsSet():
		return nil, fmt.Errorf("%w: archive requires a key", ErrKeyMismatch)
	case hdr.Keyed:
		ob = obfs.New(key)
	case key.IsSet():
		a.log().Debug("ignoring key for unkeyed archive")
	}

	rest := data[format.HeaderSize:]
	idx, n, err := index.Parse(rest, hdr.Count, ob)
	if err != nil {
		return nil, err
	}
	if uint64(idx.Len()) > a.limit() {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyEntries, idx.Len(), a.limit())
	}
	body := rest[n:]
	if err := idx.Validate(uint64(len(body))); err != nil {
		if hdr.Keyed {
			return nil, fmt.Errorf("%w: %w", ErrKeyMismatch, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedArchive, err)
	}

	a.log().Debug("opened archive",
		"entries", idx.Len(),
		"keyed", hdr.Keyed,
		"index_size", n,
		"body_size", len(body))
	return &Reader{idx: idx, body: body, keyed: hdr.Keyed}, nil
}

// Len returns the number of entries.
func (r *Reader) Len() int {
	return r.idx.Len()
}

// Keyed reports whether the archive was packed with a key.
func (r *Reader) Keyed() bool {
	return r.keyed
}

// BodySize returns the size of the body in bytes.
func (r *Reader) BodySize() uint64 {
	return r.idx.BodySize()
}

// Lookup returns the placement of the named entry.
// It fails with ErrNotFound when the name is absent.
func (r *Reader) Lookup(name string) (EntryInfo, error) {
	return r.idx.Lookup(name)
}

// ReadFile returns a copy of the named entry's payload.
// It fails with ErrNotFound when the name is absent.
func (r *Reader) ReadFile(name string) ([]byte, error) {
	e, err := r.idx.Lookup(name)
	if err != nil {
		return nil, err
	}
	return slices.Clone(r.slice(e)), nil
}

// Entries returns an iterator over all entries in packing order.
func (r *Reader) Entries() iter.Seq[EntryInfo] {
	return r.idx.Entries()
}

// EntriesWithPrefix returns an iterator over entries whose name starts with
// prefix, in name order.
func (r *Reader) EntriesWithPrefix(prefix string) iter.Seq[EntryInfo] {
	return r.idx.EntriesWithPrefix(prefix)
}

// Extract returns a copy of every entry in packing order.
func (r *Reader) Extract() *Entries {
	out := NewEntries()
	for e := range r.idx.Entries() {
		out.Set(e.Name, slices.Clone(r.slice(e)))
	}
	return out
}

// slice returns the body bytes of e. Open has validated every range.
func (r *Reader) slice(e rpatype.Entry) []byte {
	return r.body[e.Offset:e.End():e.End()]
}
