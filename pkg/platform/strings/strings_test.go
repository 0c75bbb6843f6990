package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompact(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice becomes empty",
			input:    nil,
			expected: []string{},
		},
		{
			name:     "drops empty strings only",
			input:    []string{"news", "", " ", "sport"},
			expected: []string{"news", " ", "sport"},
		},
		{
			name:     "keeps duplicates and order",
			input:    []string{"b", "a", "b"},
			expected: []string{"b", "a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compact(tt.input))
		})
	}
}

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice becomes empty",
			input:    nil,
			expected: []string{},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  customer  ", "editor  "},
			expected: []string{"customer", "editor"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"customer", "editor", "customer"},
			expected: []string{"customer", "editor"},
		},
		{
			name:     "removes blank strings",
			input:    []string{"customer", "", "  "},
			expected: []string{"customer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "a b c", CollapseSpaces("  a \t b\n\nc "))
	assert.Equal(t, "", CollapseSpaces(" \t "))
}
