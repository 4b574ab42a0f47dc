package strings

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultCellMaxLen is the default width used for free-text table cells.
const DefaultCellMaxLen = 60

// DefaultOutputMaxLen bounds log and trace payloads returned to agents.
const DefaultOutputMaxLen = 12000

// MinTruncateLen is the minimum maxLen value for TruncateCell.
const MinTruncateLen = 4

// TruncateCell collapses whitespace to single spaces and shortens s to maxLen
// runes, ending in "..." when anything was cut.
func TruncateCell(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// TruncateOutput keeps at most maxLen bytes of s, cut on a rune boundary, and
// appends a marker stating how many bytes were dropped. Line structure is
// preserved.
func TruncateOutput(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return fmt.Sprintf("%s\n...[truncated %d chars]", s[:cut], len(s)-cut)
}
