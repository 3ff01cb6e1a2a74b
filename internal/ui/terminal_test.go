package ui

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminal_Streams(t *testing.T) {
	var out, errOut bytes.Buffer
	u := NewWriters(&out, &errOut, false)
	ctx := context.Background()

	u.PrintInfo(ctx, "3 fichiers")
	u.PrintError(ctx, "échec : a.cha")
	u.Progress(ctx, 2, 12, "b.cha")

	assert.Equal(t, "3 fichiers\n[ 2/12] b.cha\n", out.String())
	assert.Equal(t, "échec : a.cha\n", errOut.String())
}

func TestTerminal_Quiet(t *testing.T) {
	var out bytes.Buffer
	u := NewWriters(&out, &out, true)
	u.Progress(context.Background(), 1, 1, "a.cha")
	assert.Empty(t, out.String())
}

func TestDigits(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{999, 3},
		{1000, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, digits(tt.n), "n=%d", tt.n)
	}
}
