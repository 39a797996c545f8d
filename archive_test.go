package rpa_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/rpa"
	"github.com/meigma/rpa/rpatest"
)

const testKey = 0x1234567

func TestPackAndUnpackUnencrypted(t *testing.T) {
	t.Parallel()
	rpatest.RoundTrip(t, rpa.New(), rpa.NoKey)
}

func TestPackAndUnpackEncrypted(t *testing.T) {
	t.Parallel()
	rpatest.RoundTrip(t, rpa.New(), rpa.NewKey(testKey))
}

func TestRoundTripKeys(t *testing.T) {
	t.Parallel()

	keys := []rpa.Key{rpa.NoKey, rpa.NewKey(0), rpa.NewKey(1), rpa.NewKey(^uint64(0))}
	for _, key := range keys {
		t.Run(key.String(), func(t *testing.T) {
			t.Parallel()
			rpatest.RoundTripEntries(t, rpa.New(), rpatest.RandomEntries(42, 200), key)
		})
	}
}

func TestConcreteScenario(t *testing.T) {
	t.Parallel()

	entries := rpa.NewEntries()
	entries.Set("script.rpy", []byte{0x01, 0x02, 0x03})
	entries.Set("image.png", []byte{0xFF, 0x00})

	data, err := rpa.Pack(entries, rpa.NewKey(testKey))
	require.NoError(t, err)

	got, err := rpa.Unpack(data, rpa.NewKey(testKey))
	require.NoError(t, err)
	assert.Equal(t, []string{"script.rpy", "image.png"}, got.Names())
	script, _ := got.Get("script.rpy")
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, script)
	image, _ := got.Get("image.png")
	assert.Equal(t, []byte{0xFF, 0x00}, image)

	_, err = rpa.Unpack(data, rpa.NoKey)
	require.ErrorIs(t, err, rpa.ErrKeyMismatch)
}

func TestUnpackWrongKey(t *testing.T) {
	t.Parallel()

	data, err := rpa.Pack(rpatest.SampleEntries(), rpa.NewKey(testKey))
	require.NoError(t, err)

	for _, wrong := range []uint64{0, 1, testKey + 1, 0x7654321} {
		_, err := rpa.Unpack(data, rpa.NewKey(wrong))
		require.ErrorIs(t, err, rpa.ErrKeyMismatch, "key %#x", wrong)
	}
}

func TestUnpackIgnoresKeyForPlainArchive(t *testing.T) {
	t.Parallel()

	entries := rpatest.SampleEntries()
	data, err := rpa.Pack(entries, rpa.NoKey)
	require.NoError(t, err)

	got, err := rpa.Unpack(data, rpa.NewKey(testKey))
	require.NoError(t, err)
	assert.True(t, entries.Equal(got))
}

func TestEmptyArchive(t *testing.T) {
	t.Parallel()

	for _, key := range []rpa.Key{rpa.NoKey, rpa.NewKey(testKey)} {
		data, err := rpa.Pack(rpa.NewEntries(), key)
		require.NoError(t, err)
		assert.True(t, rpa.IsRecognized(data))

		got, err := rpa.Unpack(data, key)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Len())
	}

	nilData, err := rpa.Pack(nil, rpa.NoKey)
	require.NoError(t, err)
	emptyData, err := rpa.Pack(rpa.NewEntries(), rpa.NoKey)
	require.NoError(t, err)
	assert.Equal(t, emptyData, nilData)
}

func TestPackLayout(t *testing.T) {
	t.Parallel()

	entries := rpa.NewEntries()
	entries.Set("a", []byte("xy"))
	entries.Set("bc", []byte("z"))

	data, err := rpa.Pack(entries, rpa.NoKey)
	require.NoError(t, err)

	var want bytes.Buffer
	// Header: magic, version, count, key flag.
	want.WriteString("RPAK")
	want.WriteByte(1)
	want.Write([]byte{2, 0, 0, 0})
	want.WriteByte(0)
	// Index: name length, name, offset, length.
	want.Write([]byte{1, 0})
	want.WriteString("a")
	want.Write([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	want.Write([]byte{2, 0, 0, 0, 0, 0, 0, 0})
	want.Write([]byte{2, 0})
	want.WriteString("bc")
	want.Write([]byte{2, 0, 0, 0, 0, 0, 0, 0})
	want.Write([]byte{1, 0, 0, 0, 0, 0, 0, 0})
	// Body.
	want.WriteString("xyz")
	assert.Equal(t, want.Bytes(), data)

	keyed, err := rpa.Pack(entries, rpa.NewKey(testKey))
	require.NoError(t, err)
	require.Len(t, keyed, len(data))
	assert.Equal(t, byte(1), keyed[9], "key flag")
	assert.Equal(t, data[10:13], keyed[10:13], "names are stored in the clear")
	assert.NotEqual(t, data[13:29], keyed[13:29], "offset and length are obfuscated")
	assert.Equal(t, []byte("xyz"), keyed[len(keyed)-3:], "body is not obfuscated")
}

func TestPackErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		e := rpa.NewEntries()
		e.Set("", []byte("x"))
		_, err := rpa.Pack(e, rpa.NoKey)
		require.ErrorIs(t, err, rpa.ErrInvalidName)
	})

	t.Run("name too long", func(t *testing.T) {
		t.Parallel()
		e := rpa.NewEntries()
		e.Set(strings.Repeat("n", rpa.MaxNameLength+1), nil)
		_, err := rpa.Pack(e, rpa.NoKey)
		require.ErrorIs(t, err, rpa.ErrInvalidName)
	})

	t.Run("longest name", func(t *testing.T) {
		t.Parallel()
		e := rpa.NewEntries()
		e.Set(strings.Repeat("n", rpa.MaxNameLength), []byte("ok"))
		rpatest.RoundTripEntries(t, rpa.New(), e, rpa.NewKey(testKey))
	})

	t.Run("too many entries", func(t *testing.T) {
		t.Parallel()
		_, err := rpa.New(rpa.WithMaxEntries(2)).Pack(rpatest.SampleEntries(), rpa.NoKey)
		require.ErrorIs(t, err, rpa.ErrTooManyEntries)
	})
}

func TestUnpackMalformed(t *testing.T) {
	t.Parallel()

	entries := rpa.NewEntries()
	entries.Set("script.rpy", []byte{0x01, 0x02, 0x03})
	entries.Set("image.png", []byte{0xFF, 0x00})
	data, err := rpa.Pack(entries, rpa.NoKey)
	require.NoError(t, err)

	mutate := func(fn func([]byte) []byte) []byte {
		return fn(bytes.Clone(data))
	}

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "bad magic", data: mutate(func(b []byte) []byte { b[0] = 'X'; return b })},
		{name: "truncated header", data: data[:7]},
		{name: "newer version", data: mutate(func(b []byte) []byte { b[4] = 2; return b })},
		{name: "bad key flag", data: mutate(func(b []byte) []byte { b[9] = 2; return b })},
		{name: "count too large", data: mutate(func(b []byte) []byte { b[5] = 3; return b })},
		{name: "count too small", data: mutate(func(b []byte) []byte { b[5] = 1; return b })},
		{name: "count huge", data: mutate(func(b []byte) []byte { b[8] = 0x7F; return b })},
		{name: "truncated index", data: data[:20]},
		{name: "truncated body", data: data[:len(data)-1]},
		{name: "trailing bytes", data: append(bytes.Clone(data), 0x00)},
		{name: "length corrupted", data: mutate(func(b []byte) []byte { b[10+2+10+8] = 9; return b })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := rpa.Unpack(tt.data, rpa.NoKey)
			require.ErrorIs(t, err, rpa.ErrMalformedArchive)
			assert.Nil(t, got)
		})
	}
}

func TestOpenLimit(t *testing.T) {
	t.Parallel()

	data, err := rpa.Pack(rpatest.SampleEntries(), rpa.NoKey)
	require.NoError(t, err)

	_, err = rpa.New(rpa.WithMaxEntries(1)).Open(data, rpa.NoKey)
	require.ErrorIs(t, err, rpa.ErrTooManyEntries)

	r, err := rpa.New(rpa.WithMaxEntries(-1)).Open(data, rpa.NoKey)
	require.NoError(t, err)
	assert.Equal(t, rpatest.SampleEntries().Len(), r.Len())
}

func TestPackDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	payload := []byte("mutable")
	entries := rpa.NewEntries()
	entries.Set("m", payload)

	data, err := rpa.Pack(entries, rpa.NoKey)
	require.NoError(t, err)
	payload[0] = 'X'

	got, err := rpa.Unpack(data, rpa.NoKey)
	require.NoError(t, err)
	m, _ := got.Get("m")
	assert.Equal(t, []byte("mutable"), m)
}
