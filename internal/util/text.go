package util

import (
	"fmt"
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// NormalizeWhitespace collapses every run of whitespace (spaces, tabs,
// newlines) into a single space and trims both ends. Idempotent.
func NormalizeWhitespace(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// NormalizeCode canonicalizes a product code for exact lookup:
// uppercase, surrounding whitespace removed.
func NormalizeCode(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

func FormatCurrency(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func StringPtr(v string) *string { return &v }

func IntPtr(v int) *int { return &v }
