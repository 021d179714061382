// Package strings holds small string-slice helpers shared across the service.
package strings

import (
	"strings"
)

// DedupeAndTrim trims whitespace from every element and drops empties and
// duplicates, preserving first-seen order. Used for comma separated lists
// from the environment, such as Kafka broker addresses.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
