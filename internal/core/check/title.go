package check

import (
	"strings"
	"unicode/utf8"
)

var DefaultErrorPatterns = []string{"404", "Error", "Not Found"}

// TitleMatcher flags page titles that look like an error page.
// Matching is a plain substring test, case-sensitive.
type TitleMatcher struct {
	Patterns []string
}

func NewTitleMatcher(patterns []string) TitleMatcher {
	if len(patterns) == 0 {
		patterns = DefaultErrorPatterns
	}
	return TitleMatcher{Patterns: patterns}
}

func (m TitleMatcher) IsError(title string) bool {
	for _, p := range m.Patterns {
		if p == "" {
			continue
		}
		if strings.Contains(title, p) {
			return true
		}
	}
	return false
}

// Truncate shortens s to at most max runes, marking the cut with "...".
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
