package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// WrapString breaks s into lines of at most width characters, preferring to
// split at the last space. Splits always fall on rune boundaries.
func WrapString(s string, width int) string {
	if width <= 0 {
		return s
	}

	var lines []string
	for utf8.RuneCountInString(s) > width {
		cut := runeOffset(s, width)
		splitAt := cut
		// Try to split at the last space before the specified width
		for i := cut; i > 0; i-- {
			if s[i] == ' ' {
				splitAt = i
				break
			}
		}
		lines = append(lines, s[:splitAt])
		s = s[splitAt:]
		// Remove leading space
		s = strings.TrimLeft(s, " ")
	}
	if len(s) > 0 {
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n")
}

// runeOffset returns the byte offset of the n-th rune of s
func runeOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}

// WrapText wraps every line of s on its own, keeping existing line breaks
func WrapText(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = WrapString(line, width)
	}
	return strings.Join(lines, "\n")
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest,
// so "openai" becomes "Openai" and "github" becomes "Github".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	startOfWord := true
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		if !unicode.IsLetter(r) {
			startOfWord = true
			b.WriteRune(r)
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		startOfWord = false
	}
	return b.String()
}
