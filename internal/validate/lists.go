package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var listSeparators = regexp.MustCompile(`[\n,]+`)

// List turns human-entered multi-value input (topics, database names) into an
// ordered list: split on commas and newlines, trim, drop blanks and repeats.
func List(value string) []string {
	var out []string
	seen := map[string]bool{}
	for _, part := range listSeparators.Split(value, -1) {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}

// Items applies List semantics to values that already arrived as a slice.
func Items(values []string) []string {
	return List(strings.Join(values, "\n"))
}

// KeyValues parses "key=value" entries. Keys must be non-empty; values may be.
func KeyValues(entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, invalid("config", fmt.Sprintf("invalid config entry %q (expected key=value)", entry))
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// Clamp bounds value to [min, max], substituting def when value is zero or negative.
func Clamp(value, def, min, max int) int {
	if value <= 0 {
		value = def
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
