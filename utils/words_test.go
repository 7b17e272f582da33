package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"Empty string", "", 0},
		{"Whitespace only", "   \t\n  ", 0},
		{"Single word", "tap", 1},
		{"Multiple words", "the tap is leaking badly", 5},
		{"Collapsed whitespace", "a  b\t\tc\nd", 4},
		{"Fifty words", strings.Repeat("word ", 50), 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountWords(tt.input))
		})
	}
}
