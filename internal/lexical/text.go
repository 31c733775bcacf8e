package lexical

import (
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Line is one '\n'-separated line together with the offset of its first byte
type Line struct {
	Text  string
	Start int
}

// End returns the offset just past the line's last byte (excluding the newline)
func (l Line) End() int {
	return l.Start + len(l.Text)
}

// Lines splits text on '\n'. A trailing newline yields a final empty line.
func Lines(text string) []Line {
	lines := make([]Line, 0, strings.Count(text, "\n")+1)
	start := 0
	for {
		idx := strings.IndexByte(text[start:], '\n')
		if idx < 0 {
			lines = append(lines, Line{Text: text[start:], Start: start})
			return lines
		}
		lines = append(lines, Line{Text: text[start : start+idx], Start: start})
		start += idx + 1
	}
}

// LineStart returns the offset of the first byte of the line containing offset
func LineStart(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	if offset <= 0 {
		return 0
	}
	return strings.LastIndexByte(text[:offset], '\n') + 1
}

// LineEnd returns the offset of the '\n' ending the line containing offset, or len(text)
func LineEnd(text string, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(text) {
		return len(text)
	}
	if idx := strings.IndexByte(text[offset:], '\n'); idx >= 0 {
		return offset + idx
	}
	return len(text)
}

// IsTriviaOnly reports whether text consists only of blank lines and "//" comment lines
func IsTriviaOnly(text string) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}
	for _, line := range Lines(text) {
		trimmed := strings.TrimSpace(line.Text)
		if trimmed != "" && !strings.HasPrefix(trimmed, "//") {
			return false
		}
	}
	return true
}

// IsIdentifier reports whether s is a plain ASCII identifier
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// IsIdentByte reports whether b can appear inside an identifier
func IsIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// Ident is an identifier found in a text buffer
type Ident struct {
	Text string
	Span Span
}

// IdentifierAt returns the identifier under offset. An offset immediately after the
// identifier's last byte also resolves to it.
func IdentifierAt(text string, offset int) (Ident, bool) {
	if offset < 0 || offset > len(text) {
		return Ident{}, false
	}

	var index int
	switch {
	case offset < len(text) && IsIdentByte(text[offset]):
		index = offset
	case offset > 0 && IsIdentByte(text[offset-1]):
		index = offset - 1
	default:
		return Ident{}, false
	}

	start, end := index, index+1
	for start > 0 && IsIdentByte(text[start-1]) {
		start--
	}
	for end < len(text) && IsIdentByte(text[end]) {
		end++
	}
	word := text[start:end]
	if !IsIdentifier(word) {
		return Ident{}, false
	}
	return Ident{Text: word, Span: Span{Start: start, End: end}}, true
}
