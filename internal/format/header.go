// Package format reads and writes the fixed-size archive header.
package format

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/meigma/rpa/internal/rpatype"
)

// Magic is the marker which appears at the beginning of every archive.
const Magic = "RPAK"

// Version is the newest archive format version this package understands.
const Version byte = 1

// HeaderSize is the encoded size of Header in bytes.
const HeaderSize = len(Magic) + 1 + 4 + 1

// Header describes an archive before its index.
type Header struct {
	Version byte
	Count   uint32
	Keyed   bool
}

// AppendBinary appends the encoded header to dst.
func (h Header) AppendBinary(dst []byte) []byte {
	dst = append(dst, Magic...)
	dst = append(dst, h.Version)
	dst = binary.LittleEndian.AppendUint32(dst, h.Count)
	if h.Keyed {
		return append(dst, 1)
	}
	return append(dst, 0)
}

// IsRecognized reports whether data starts with the archive magic.
func IsRecognized(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Magic))
}

// ParseHeader decodes the header at the start of data.
// All failures wrap rpatype.ErrMalformedArchive.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		if !IsRecognized(data) {
			return Header{}, fmt.Errorf("%w: missing magic", rpatype.ErrMalformedArchive)
		}
		return Header{}, fmt.Errorf("%w: truncated header (%d bytes)", rpatype.ErrMalformedArchive, len(data))
	}
	if !IsRecognized(data) {
		return Header{}, fmt.Errorf("%w: bad magic %q", rpatype.ErrMalformedArchive, data[:len(Magic)])
	}

	p := len(Magic)
	h := Header{Version: data[p]}
	if h.Version == 0 || h.Version > Version {
		return Header{}, fmt.Errorf("%w: unsupported version %d", rpatype.ErrMalformedArchive, h.Version)
	}
	p++
	h.Count = binary.LittleEndian.Uint32(data[p:])
	p += 4
	switch data[p] {
	case 0:
	case 1:
		h.Keyed = true
	default:
		return Header{}, fmt.Errorf("%w: bad key flag %#x", rpatype.ErrMalformedArchive, data[p])
	}
	return h, nil
}
