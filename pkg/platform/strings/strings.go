// Package strings provides string slice helpers shared by the data layer.
package strings

import (
	"strings"
)

// Compact drops empty strings from values, preserving order. The result is
// never nil, so it always encodes as a JSON array.
//
// Example:
//
//	Compact([]string{"news", "", "sport"})
//	// Returns: []string{"news", "sport"}
func Compact(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}

// DedupeAndTrim removes duplicates and blank strings from a slice,
// trimming whitespace from each element. Order is preserved and the result
// is never nil.
//
// Example:
//
//	DedupeAndTrim([]string{" customer ", "subscriber", "customer", ""})
//	// Returns: []string{"customer", "subscriber"}
func DedupeAndTrim(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// CollapseSpaces trims s and replaces runs of whitespace with a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
