package utils

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile("[^a-z0-9]+")

// Slugify turns an organization name into the identifier used to scope records.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
