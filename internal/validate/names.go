package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxNameLength is the DNS-1123 label limit.
const MaxNameLength = 63

var dns1123Label = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// Name checks value as a DNS-1123 label. label names the field in messages,
// e.g. "name" or "namespace".
func Name(value, label string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(label, fmt.Sprintf("%s is required", label))
	}
	if len(value) > MaxNameLength {
		return invalid(label, fmt.Sprintf("%s must be %d characters or fewer", label, MaxNameLength))
	}
	if !dns1123Label.MatchString(value) {
		return invalid(label, fmt.Sprintf("%s must be a DNS-1123 label (lowercase alphanumeric and '-')", label))
	}
	return nil
}

// Required rejects empty or whitespace-only values.
func Required(value, label string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(label, fmt.Sprintf("%s is required", label))
	}
	return nil
}

// OneOf checks value against a closed set. Matching is case-insensitive and
// the canonical lowercase value is returned.
func OneOf(value, label string, allowed ...string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", invalid(label, fmt.Sprintf("unsupported %s %q (expected one of %s)", label, value, strings.Join(allowed, ", ")))
}
