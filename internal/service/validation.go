package service

import (
	"strings"
	"unicode/utf8"
)

// MaxSearchLength bounds free-text search input, counted in runes.
const MaxSearchLength = 100

// NormalizeSearch trims and collapses inner whitespace.
func NormalizeSearch(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsValidSearch reports whether a normalized search string is acceptable.
func IsValidSearch(s string) bool {
	return utf8.ValidString(s) && utf8.RuneCountInString(s) <= MaxSearchLength
}

func validateSearch(s string, ferrs []FieldError) []FieldError {
	if !IsValidSearch(s) {
		ferrs = append(ferrs, FieldError{Field: "q", Message: "must be valid text of at most 100 characters"})
	}
	return ferrs
}
