package rpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/", want: ""},
		{in: "images/bg.png", want: "images/bg.png"},
		{in: "/images/bg.png", want: "images/bg.png"},
		{in: "images//bg.png", want: "images/bg.png"},
		{in: `images\bg.png`, want: "images/bg.png"},
		{in: "images/", want: "images/"},
		{in: "//images//", want: "images/"},
		{in: "a/../b", want: "a/../b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}
