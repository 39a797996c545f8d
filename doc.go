// Package rpa implements a single-file archive format with an optionally
// keyed index.
//
// An archive packs an ordered set of named byte payloads into one byte
// sequence:
//   - Header: the "RPAK" marker, a format version, the entry count, and a
//     flag recording whether a key was used
//   - Index: one record per entry (length-prefixed name, offset, length)
//   - Body: the payloads concatenated in index order
//
// When a [Key] is supplied to [Pack], every stored offset and length is
// XORed with a per-entry mask derived from the key. Payload bytes and names
// are stored in the clear; only the index metadata is obscured, so the key
// is an obfuscation measure rather than encryption.
//
// # Quick Start
//
// Pack and unpack in memory:
//
//	entries := rpa.NewEntries()
//	entries.Set("script.rpy", []byte{0x01, 0x02, 0x03})
//	entries.Set("image.png", []byte{0xFF, 0x00})
//
//	data, err := rpa.Pack(entries, rpa.NewKey(0x1234567))
//	if err != nil {
//	    return err
//	}
//	got, err := rpa.Unpack(data, rpa.NewKey(0x1234567))
//
// Random access without copying every payload:
//
//	r, err := rpa.Open(data, rpa.NewKey(0x1234567))
//	if err != nil {
//	    return err
//	}
//	script, err := r.ReadFile("script.rpy")
//
// # Directories
//
// [CollectDir] gathers the regular files below a directory into [Entries],
// and [Reader.ExtractTo] writes an archive's entries back to disk.
//
// # Errors
//
// Unpack and Open fail with [ErrMalformedArchive] for structurally invalid
// input and with [ErrKeyMismatch] when a keyed archive is opened without its
// key or with a key that produces an impossible layout. A wrong key that
// still yields a valid layout cannot be detected.
package rpa
