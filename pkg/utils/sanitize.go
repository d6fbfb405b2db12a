package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all markup from user supplied free text and trims it.
// The result is HTML-escaped text.
func SanitizeText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// SanitizeList applies SanitizeText to every element and drops empty results.
func SanitizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if clean := SanitizeText(item); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
