package index

import (
	"encoding/binary"
	"fmt"
	"iter"
	"strings"

	"github.com/tidwall/btree"

	"github.com/meigma/rpa/internal/obfs"
	"github.com/meigma/rpa/internal/rpatype"
	"github.com/meigma/rpa/internal/sizing"
)

// recordOverhead is the encoded size of a record excluding its name bytes.
const recordOverhead = 2 + 8 + 8

// Item is a (name, length) pair placed by Build.
type Item struct {
	Name   string
	Length uint64
}

// Index provides access to archive entries.
//
// Entries keep their packing order; lookups go through a name-sorted B-tree.
// An Index is immutable once built and safe for concurrent readers.
type Index struct {
	entries  []rpatype.Entry
	byName   *btree.Map[string, int]
	bodySize uint64
}

// Build assigns each item a contiguous byte range in the order given,
// starting at offset 0.
func Build(items []Item) (*Index, error) {
	idx := newIndex(len(items))
	var offset uint64
	for _, it := range items {
		e := rpatype.Entry{Name: it.Name, Offset: offset, Length: it.Length}
		if err := idx.add(e); err != nil {
			return nil, err
		}
		next, ok := sizing.AddUint64(offset, it.Length)
		if !ok {
			return nil, fmt.Errorf("%w: body exceeds 2^64 bytes at %q", rpatype.ErrSizeOverflow, it.Name)
		}
		offset = next
	}
	idx.bodySize = offset
	return idx, nil
}

func newIndex(n int) *Index {
	return &Index{
		entries: make([]rpatype.Entry, 0, n),
		byName:  btree.NewMap[string, int](0),
	}
}

func (idx *Index) add(e rpatype.Entry) error {
	if _, dup := idx.byName.Get(e.Name); dup {
		return fmt.Errorf("%w: duplicate name %q", rpatype.ErrInvalidName, e.Name)
	}
	idx.byName.Set(e.Name, len(idx.entries))
	idx.entries = append(idx.entries, e)
	return nil
}

// Lookup returns the entry with the given name.
// Names are compared byte-exact.
func (idx *Index) Lookup(name string) (rpatype.Entry, error) {
	i, ok := idx.byName.Get(name)
	if !ok {
		return rpatype.Entry{}, fmt.Errorf("%w: %q", rpatype.ErrNotFound, name)
	}
	return idx.entries[i], nil
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// At returns the i-th entry in packing order.
func (idx *Index) At(i int) rpatype.Entry {
	return idx.entries[i]
}

// BodySize returns the sum of all entry lengths.
func (idx *Index) BodySize() uint64 {
	return idx.bodySize
}

// EncodedSize returns the number of bytes AppendBinary will append.
func (idx *Index) EncodedSize() int {
	n := 0
	for _, e := range idx.entries {
		n += recordOverhead + len(e.Name)
	}
	return n
}

// Entries returns an iterator over all entries in packing order.
func (idx *Index) Entries() iter.Seq[rpatype.Entry] {
	return func(yield func(rpatype.Entry) bool) {
		for _, e := range idx.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// EntriesWithPrefix returns an iterator over entries whose name starts with
// prefix, in name order.
func (idx *Index) EntriesWithPrefix(prefix string) iter.Seq[rpatype.Entry] {
	return func(yield func(rpatype.Entry) bool) {
		idx.byName.Ascend(prefix, func(name string, i int) bool {
			if !strings.HasPrefix(name, prefix) {
				return false
			}
			return yield(idx.entries[i])
		})
	}
}

// AppendBinary appends the serialized index to dst, passing every offset and
// length through ob.
func (idx *Index) AppendBinary(dst []byte, ob obfs.Obfuscator) ([]byte, error) {
	for i, e := range idx.entries {
		if len(e.Name) > rpatype.MaxNameLength {
			return nil, fmt.Errorf("%w: name of %d bytes exceeds %d", rpatype.ErrInvalidName, len(e.Name), rpatype.MaxNameLength)
		}
		dst = binary.LittleEndian.AppendUint16(dst, uint16(len(e.Name))) //nolint:gosec // checked above
		dst = append(dst, e.Name...)
		dst = binary.LittleEndian.AppendUint64(dst, ob.Obfuscate(i, obfs.FieldOffset, e.Offset))
		dst = binary.LittleEndian.AppendUint64(dst, ob.Obfuscate(i, obfs.FieldLength, e.Length))
	}
	return dst, nil
}

// Parse decodes count records from the start of data, reversing ob on every
// offset and length. It returns the index and the number of bytes consumed.
//
// Parse checks structure only; call Validate once the body size is known.
// All failures wrap rpatype.ErrMalformedArchive.
func Parse(data []byte, count uint32, ob obfs.Obfuscator) (*Index, int, error) {
	if uint64(count) > uint64(len(data)/recordOverhead) {
		return nil, 0, fmt.Errorf("%w: declared %d entries but index holds at most %d",
			rpatype.ErrMalformedArchive, count, len(data)/recordOverhead)
	}

	idx := newIndex(int(count))
	p := 0
	for i := range int(count) {
		if len(data)-p < 2 {
			return nil, 0, truncated(i, count)
		}
		nameLen := int(binary.LittleEndian.Uint16(data[p:]))
		p += 2
		if len(data)-p < nameLen+16 {
			return nil, 0, truncated(i, count)
		}
		name := string(data[p : p+nameLen])
		p += nameLen
		offset := binary.LittleEndian.Uint64(data[p:])
		length := binary.LittleEndian.Uint64(data[p+8:])
		p += 16

		e := rpatype.Entry{
			Name:   name,
			Offset: ob.Deobfuscate(i, obfs.FieldOffset, offset),
			Length: ob.Deobfuscate(i, obfs.FieldLength, length),
		}
		if err := idx.add(e); err != nil {
			return nil, 0, fmt.Errorf("%w: %w", rpatype.ErrMalformedArchive, err)
		}
	}
	return idx, p, nil
}

func truncated(i int, count uint32) error {
	return fmt.Errorf("%w: index truncated at entry %d of %d", rpatype.ErrMalformedArchive, i, count)
}

// Validate checks that the entries tile a body of bodySize bytes: every
// range in bounds, each starting where the previous one ended, and the last
// ending at bodySize. On success BodySize reports bodySize.
func (idx *Index) Validate(bodySize uint64) error {
	var next uint64
	for _, e := range idx.entries {
		end, ok := sizing.AddUint64(e.Offset, e.Length)
		if !ok || end > bodySize {
			return fmt.Errorf("entry %q range [%d, +%d) exceeds body size %d", e.Name, e.Offset, e.Length, bodySize)
		}
		if e.Offset != next {
			return fmt.Errorf("entry %q starts at %d, expected %d", e.Name, e.Offset, next)
		}
		next = end
	}
	if next != bodySize {
		return fmt.Errorf("entries cover %d of %d body bytes", next, bodySize)
	}
	idx.bodySize = bodySize
	return nil
}
