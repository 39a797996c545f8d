package rpa

import (
	"fmt"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/rpa/internal/format"
	"github.com/meigma/rpa/internal/index"
	"github.com/meigma/rpa/internal/obfs"
)

// Info describes an archive without unpacking it.
type Info struct {
	// Digest is the sha256 content digest of the whole archive.
	Digest digest.Digest

	// Version is the format version recorded in the header.
	Version byte

	// Keyed reports whether the index offsets and lengths are obfuscated.
	Keyed bool

	// Names lists the entry names in packing order.
	Names []string

	// Size is the total archive size in bytes.
	Size int

	// IndexSize is the encoded size of the index in bytes.
	IndexSize int

	// BodySize is the size of the concatenated payloads in bytes.
	BodySize int
}

// Inspect reads the header and entry names of data.
//
// Names are stored in the clear, so Inspect needs no key. Offsets and
// lengths are not validated; use Open for that.
func Inspect(data []byte) (Info, error) {
	hdr, err := format.ParseHeader(data)
	if err != nil {
		return Info{}, err
	}

	// The identity transform is enough to recover names and record sizes.
	rest := data[format.HeaderSize:]
	idx, n, err := index.Parse(rest, hdr.Count, obfs.Obfuscator{})
	if err != nil {
		return Info{}, fmt.Errorf("inspect index: %w", err)
	}

	names := make([]string, 0, idx.Len())
	for e := range idx.Entries() {
		names = append(names, e.Name)
	}

	return Info{
		Digest:    digest.FromBytes(data),
		Version:   hdr.Version,
		Keyed:     hdr.Keyed,
		Names:     names,
		Size:      len(data),
		IndexSize: n,
		BodySize:  len(rest) - n,
	}, nil
}
