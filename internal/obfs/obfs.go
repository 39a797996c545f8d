// Package obfs derives the per-entry masks that obscure index offsets and
// lengths when an archive is packed with a key.
//
// The transform is v XOR mask, where mask is the xxhash64 of the key, the
// entry ordinal, and a field tag. XOR with a fixed mask is its own inverse,
// so Deobfuscate(Obfuscate(v)) == v for every uint64. Payload bytes are
// never touched.
package obfs

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Key is an optional unsigned seed. The zero value means "no key".
type Key struct {
	value uint64
	set   bool
}

// NewKey returns a present key with the given seed.
func NewKey(v uint64) Key {
	return Key{value: v, set: true}
}

// Value returns the seed and whether the key is present.
func (k Key) Value() (uint64, bool) {
	return k.value, k.set
}

// IsSet reports whether the key is present.
func (k Key) IsSet() bool {
	return k.set
}

// String returns the seed in hex, or "none" for an absent key.
func (k Key) String() string {
	if !k.set {
		return "none"
	}
	return fmt.Sprintf("%#x", k.value)
}

// Field identifies which index field a mask applies to.
type Field byte

const (
	FieldOffset Field = 'o'
	FieldLength Field = 'l'
)

// Obfuscator applies the keyed transform. The zero value is the identity.
type Obfuscator struct {
	key Key
}

// New returns an Obfuscator for key. An absent key yields the identity.
func New(key Key) Obfuscator {
	return Obfuscator{key: key}
}

// Identity reports whether the transform leaves values unchanged.
func (o Obfuscator) Identity() bool {
	return !o.key.set
}

// Obfuscate scrambles v, the given field of the entry at ordinal.
func (o Obfuscator) Obfuscate(ordinal int, field Field, v uint64) uint64 {
	if !o.key.set {
		return v
	}
	return v ^ o.mask(ordinal, field)
}

// Deobfuscate reverses Obfuscate for the same ordinal and field.
func (o Obfuscator) Deobfuscate(ordinal int, field Field, v uint64) uint64 {
	if !o.key.set {
		return v
	}
	return v ^ o.mask(ordinal, field)
}

func (o Obfuscator) mask(ordinal int, field Field) uint64 {
	var buf [17]byte
	binary.LittleEndian.PutUint64(buf[0:8], o.key.value)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(ordinal)) //nolint:gosec // ordinals are non-negative
	buf[16] = byte(field)
	return xxhash.Sum64(buf[:])
}
