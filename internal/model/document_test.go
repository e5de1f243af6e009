package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextVersion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "initial bump", in: "1.0", want: "1.1"},
		{name: "single digit rollover", in: "1.9", want: "1.10"},
		{name: "deeper version", in: "2.0.3", want: "2.0.4"},
		{name: "empty treated as initial", in: "", want: "1.1"},
		{name: "non-numeric trailing segment", in: "1.x", want: "1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextVersion(tt.in))
		})
	}
}

func TestNextVersionStrictlyIncreases(t *testing.T) {
	v := InitialVersion
	seen := map[string]bool{v: true}
	for i := 0; i < 25; i++ {
		v = NextVersion(v)
		assert.False(t, seen[v], "version %q repeated", v)
		seen[v] = true
	}
	assert.Equal(t, "1.25", v)
}
