package candidate

import (
	"regexp"
	"strings"
)

const (
	scanLines      = 10
	fallbackLength = 50
)

var namePattern = regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+`)

// GuessName returns the first of the top lines that contains two consecutive
// capitalized words, or the first line cut to 50 characters. Empty text has
// no name; callers render a placeholder instead.
func GuessName(normalized string) string {
	if strings.TrimSpace(normalized) == "" {
		return ""
	}

	lines := strings.Split(normalized, "\n")
	for i, line := range lines {
		if i == scanLines {
			break
		}
		if namePattern.MatchString(line) {
			return strings.TrimSpace(line)
		}
	}

	first := []rune(lines[0])
	if len(first) > fallbackLength {
		first = first[:fallbackLength]
	}
	return string(first)
}
