package ui

import (
	"fmt"
	"strings"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

type likeNouns struct{ one, many string }

var likeWords = map[string]likeNouns{
	"en": {"like", "likes"},
	"pt": {"curtida", "curtidas"},
}

// LikesLabel formats a like count for display, e.g. "1 like" or
// "0 curtidas". Only a count of exactly one is singular. Unknown locales
// fall back to English.
func LikesLabel(likes int, locale string) string {
	words, ok := likeWords[strings.ToLower(strings.TrimSpace(locale))]
	if !ok {
		words = likeWords["en"]
	}
	if likes == 1 {
		return fmt.Sprintf("%d %s", likes, words.one)
	}
	return fmt.Sprintf("%d %s", likes, words.many)
}
