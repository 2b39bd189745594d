package reddit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"12,345", 12345},
		{"56 points", 56},
		{"0", 0},
		{"-3", -3},
		{"+7", 7},
		{"", 0},
		{"no number here", 0},
		{" 1,024 readers ", 1024},
	}
	for _, c := range cases {
		require.Equal(t, c.want, parseCount(c.in), "parseCount(%q)", c.in)
	}
}
