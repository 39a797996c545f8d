// Package index builds, serializes, and parses the archive entry index.
//
// The index is an ordered table of (name, offset, length) triples. Order is
// the packing order and defines the body layout; a B-tree keyed by name
// provides O(log n) lookups and prefix scans.
package index
