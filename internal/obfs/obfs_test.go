package obfs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	t.Parallel()

	var none Key
	assert.False(t, none.IsSet())
	assert.Equal(t, "none", none.String())

	k := NewKey(0x1234567)
	v, ok := k.Value()
	require.True(t, ok)
	assert.Equal(t, uint64(0x1234567), v)
	assert.Equal(t, "0x1234567", k.String())

	zero := NewKey(0)
	assert.True(t, zero.IsSet(), "a zero seed is still a present key")
}

func TestIdentityWithoutKey(t *testing.T) {
	t.Parallel()

	o := New(Key{})
	assert.True(t, o.Identity())
	for _, v := range []uint64{0, 1, 42, math.MaxUint64} {
		assert.Equal(t, v, o.Obfuscate(3, FieldOffset, v))
		assert.Equal(t, v, o.Deobfuscate(3, FieldLength, v))
	}
}

func TestObfuscateRoundTrip(t *testing.T) {
	t.Parallel()

	keys := []Key{NewKey(0), NewKey(1), NewKey(0x1234567), NewKey(math.MaxUint64)}
	values := []uint64{0, 1, 2, 255, 1 << 32, math.MaxUint64 - 1, math.MaxUint64}

	for _, k := range keys {
		o := New(k)
		require.False(t, o.Identity())
		for ordinal := range 8 {
			for _, field := range []Field{FieldOffset, FieldLength} {
				for _, v := range values {
					got := o.Deobfuscate(ordinal, field, o.Obfuscate(ordinal, field, v))
					assert.Equal(t, v, got, "key=%s ordinal=%d field=%c", k, ordinal, field)
				}
			}
		}
	}
}

func TestObfuscateIsDeterministic(t *testing.T) {
	t.Parallel()

	a := New(NewKey(0x1234567))
	b := New(NewKey(0x1234567))
	for ordinal := range 16 {
		assert.Equal(t,
			a.Obfuscate(ordinal, FieldOffset, 100),
			b.Obfuscate(ordinal, FieldOffset, 100))
	}
}

func TestMasksVary(t *testing.T) {
	t.Parallel()

	o := New(NewKey(0x1234567))
	other := New(NewKey(0x7654321))

	assert.NotEqual(t, uint64(7), o.Obfuscate(0, FieldOffset, 7), "keyed transform should not be identity")
	assert.NotEqual(t, o.Obfuscate(0, FieldOffset, 7), other.Obfuscate(0, FieldOffset, 7), "distinct keys")
	assert.NotEqual(t, o.Obfuscate(0, FieldOffset, 7), o.Obfuscate(1, FieldOffset, 7), "distinct ordinals")
	assert.NotEqual(t, o.Obfuscate(0, FieldOffset, 7), o.Obfuscate(0, FieldLength, 7), "distinct fields")
}
