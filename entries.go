package rpa

import (
	"bytes"
	"iter"
	"slices"
)

// Entries is an ordered mapping from entry name to payload.
//
// Iteration follows insertion order, which is also the order Pack lays
// payloads out in the body. The zero value is an empty mapping ready to use.
// Entries is not safe for concurrent mutation.
type Entries struct {
	names []string
	data  map[string][]byte
}

// NewEntries returns an empty mapping.
func NewEntries() *Entries {
	return &Entries{}
}

// Set stores data under name. Replacing an existing name keeps its position.
// The slice is retained, not copied.
func (e *Entries) Set(name string, data []byte) {
	if e.data == nil {
		e.data = make(map[string][]byte)
	}
	if _, ok := e.data[name]; !ok {
		e.names = append(e.names, name)
	}
	e.data[name] = data
}

// Get returns the payload stored under name.
func (e *Entries) Get(name string) ([]byte, bool) {
	if e == nil {
		return nil, false
	}
	data, ok := e.data[name]
	return data, ok
}

// Len returns the number of entries. A nil *Entries is empty.
func (e *Entries) Len() int {
	if e == nil {
		return 0
	}
	return len(e.names)
}

// Names returns the entry names in order.
func (e *Entries) Names() []string {
	if e == nil {
		return nil
	}
	return slices.Clone(e.names)
}

// All returns an iterator over (name, payload) pairs in order.
func (e *Entries) All() iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		if e == nil {
			return
		}
		for _, name := range e.names {
			if !yield(name, e.data[name]) {
				return
			}
		}
	}
}

// Equal reports whether both mappings hold the same names, in the same
// order, with byte-identical payloads. A nil payload equals an empty one.
func (e *Entries) Equal(other *Entries) bool {
	if e.Len() != other.Len() {
		return false
	}
	for i, name := range e.Names() {
		if other.names[i] != name {
			return false
		}
		if !bytes.Equal(e.data[name], other.data[name]) {
			return false
		}
	}
	return true
}
