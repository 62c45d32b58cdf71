package game

import (
	"strings"
	"testing"

	"github.com/automoto/stompgrid/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	src, err := ParseScript(strings.NewReader(`
# warm up
2 R
1 rj   # jump while running

1 -
1 LR
`))
	require.NoError(t, err)
	assert.Equal(t, 5, src.Len())

	want := []physics.Input{
		{Right: true},
		{Right: true},
		{Right: true, Jump: true},
		{},
		{Left: true, Right: true},
	}
	for i, w := range want {
		in, ok := src.Next()
		require.True(t, ok, "tick %d", i)
		assert.Equal(t, w, in, "tick %d", i)
	}
	_, ok := src.Next()
	assert.False(t, ok)
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		line   string
	}{
		{"missing keys", "3", "line 1"},
		{"bad count", "1 R\nx R", "line 2"},
		{"zero count", "0 R", "line 1"},
		{"unknown key", "1 R\n\n2 Q", "line 3"},
		{"extra field", "1 R J", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript(strings.NewReader(tt.script))
			assert.ErrorIs(t, err, ErrInvalidScript)
			assert.ErrorContains(t, err, tt.line)
		})
	}
}

func TestEmptyScript(t *testing.T) {
	src, err := ParseScript(strings.NewReader("# nothing\n"))
	require.NoError(t, err)
	_, ok := src.Next()
	assert.False(t, ok)
}

func TestIdleInput(t *testing.T) {
	in, ok := IdleInput{}.Next()
	assert.True(t, ok)
	assert.Equal(t, physics.Input{}, in)
}
