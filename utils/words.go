package utils

import "strings"

// CountWords counts whitespace-delimited words in s
func CountWords(s string) int {
	return len(strings.Fields(s))
}
