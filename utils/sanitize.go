package utils

import "github.com/microcosm-cc/bluemonday"

// Mood notes and symptoms are plain text, so everything HTML-like is stripped.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips markup from user supplied free text.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
