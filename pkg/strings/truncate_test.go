package strings

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateCell(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "short string unchanged", input: "hello", maxLen: 10, expected: "hello"},
		{name: "exact length unchanged", input: "hello", maxLen: 5, expected: "hello"},
		{name: "long string truncated", input: "hello world this is a long string", maxLen: 15, expected: "hello world ..."},
		{name: "newlines collapsed", input: "not ready:\n  flux-system\n  apps", maxLen: 40, expected: "not ready: flux-system apps"},
		{name: "unicode safe", input: "héllo wörld", maxLen: 8, expected: "héllo..."},
		{name: "tiny max clamped", input: "abcdefgh", maxLen: 1, expected: "a..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateCell(tt.input, tt.maxLen))
		})
	}
}

func TestTruncateOutput(t *testing.T) {
	assert.Equal(t, "short", TruncateOutput("short", 10))
	assert.Equal(t, "abc", TruncateOutput("abc", 0))

	long := strings.Repeat("x", 25)
	assert.Equal(t, strings.Repeat("x", 20)+"\n...[truncated 5 chars]", TruncateOutput(long, 20))
}

func TestTruncateOutput_RuneBoundary(t *testing.T) {
	// "é" spans bytes 3 and 4, so a limit of 4 splits it.
	out := TruncateOutput("abcé€def", 4)
	assert.Equal(t, "abc\n...[truncated 8 chars]", out)
	assert.True(t, utf8.ValidString(out))

	out = TruncateOutput(strings.Repeat("€", 10), 8)
	assert.Equal(t, strings.Repeat("€", 2)+"\n...[truncated 24 chars]", out)
	assert.True(t, utf8.ValidString(out))
}
