package core

import (
	"strings"
	"unicode/utf8"
)

// TitleLimit is the maximum number of characters kept in derived titles.
const TitleLimit = 100

// Ellipsis marks a truncated title or preview.
const Ellipsis = "..."

// Truncate returns at most limit characters (runes) of s.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// TitleFrom truncates text to TitleLimit characters and appends Ellipsis
// when source is longer than the limit. source and text differ when the
// caller trims before truncating but measures the raw text.
func TitleFrom(text, source string) string {
	title := Truncate(text, TitleLimit)
	if utf8.RuneCountInString(source) > TitleLimit {
		title += Ellipsis
	}
	return title
}

// FirstSentence returns the text before the first period, or all of text.
func FirstSentence(text string) string {
	if i := strings.IndexByte(text, '.'); i >= 0 {
		return text[:i]
	}
	return text
}
