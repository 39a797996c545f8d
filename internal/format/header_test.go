package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/rpa/internal/rpatype"
)

func TestHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		h    Header
		want []byte
	}{
		{
			name: "plain",
			h:    Header{Version: Version, Count: 2},
			want: []byte{'R', 'P', 'A', 'K', 1, 2, 0, 0, 0, 0},
		},
		{
			name: "keyed",
			h:    Header{Version: Version, Count: 0x01020304, Keyed: true},
			want: []byte{'R', 'P', 'A', 'K', 1, 4, 3, 2, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := tt.h.AppendBinary(nil)
			require.Len(t, buf, HeaderSize)
			assert.Equal(t, tt.want, buf)

			got, err := ParseHeader(buf)
			require.NoError(t, err)
			assert.Equal(t, tt.h, got)
		})
	}
}

func TestParseHeaderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantMsg string
	}{
		{name: "empty", data: nil, wantMsg: "missing magic"},
		{name: "short magic", data: []byte("RP"), wantMsg: "missing magic"},
		{name: "truncated", data: []byte{'R', 'P', 'A', 'K', 1, 0}, wantMsg: "truncated header"},
		{name: "bad magic", data: []byte{'P', 'K', 3, 4, 1, 0, 0, 0, 0, 0}, wantMsg: "bad magic"},
		{name: "version zero", data: []byte{'R', 'P', 'A', 'K', 0, 0, 0, 0, 0, 0}, wantMsg: "unsupported version 0"},
		{name: "newer version", data: []byte{'R', 'P', 'A', 'K', 9, 0, 0, 0, 0, 0}, wantMsg: "unsupported version 9"},
		{name: "bad flag", data: []byte{'R', 'P', 'A', 'K', 1, 0, 0, 0, 0, 7}, wantMsg: "bad key flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseHeader(tt.data)
			require.ErrorIs(t, err, rpatype.ErrMalformedArchive)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestIsRecognized(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRecognized([]byte("RPAK\x01")))
	assert.False(t, IsRecognized([]byte("RPA-3.0 ")))
	assert.False(t, IsRecognized(nil))
}
