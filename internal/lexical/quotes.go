package lexical

import "strings"

// quoteState tracks single/double quoted runs while scanning left to right.
// A backslash escapes the next byte only inside quotes.
type quoteState struct {
	inSingle bool
	inDouble bool
	escaped  bool
}

// advance consumes ch and reports whether it sits at top level, i.e. outside any
// quoted run and is not itself a quote or escape byte.
func (q *quoteState) advance(ch byte) bool {
	if q.escaped {
		q.escaped = false
		return false
	}
	if ch == '\\' && (q.inSingle || q.inDouble) {
		q.escaped = true
		return false
	}
	switch ch {
	case '\'':
		if !q.inDouble {
			q.inSingle = !q.inSingle
		}
		return false
	case '"':
		if !q.inSingle {
			q.inDouble = !q.inDouble
		}
		return false
	}
	return !q.inSingle && !q.inDouble
}

// Segment is a [Start, End) piece of a split text
type Segment struct {
	Start int
	End   int
}

// Text returns the segment's slice of text
func (s Segment) Text(text string) string {
	return text[s.Start:s.End]
}

// FindMatchingClose returns the index of the delimiter that brings the nesting depth
// back to zero, scanning forward from openIndex, which must point at open.
func FindMatchingClose(text string, openIndex int, open, close byte) (int, bool) {
	if openIndex < 0 || openIndex >= len(text) || text[openIndex] != open {
		return -1, false
	}
	depth := 0
	for i := openIndex; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}

// SplitTopLevel partitions text on sep, never inside single- or double-quoted runs.
// It always yields at least one segment, including the one after the last separator.
func SplitTopLevel(text string, sep byte) []Segment {
	var segments []Segment
	var state quoteState
	start := 0
	for i := 0; i < len(text); i++ {
		if state.advance(text[i]) && text[i] == sep {
			segments = append(segments, Segment{Start: start, End: i})
			start = i + 1
		}
	}
	return append(segments, Segment{Start: start, End: len(text)})
}

// SplitTopLevelStrings is SplitTopLevel returning the segment texts
func SplitTopLevelStrings(text string, sep byte) []string {
	segments := SplitTopLevel(text, sep)
	parts := make([]string, len(segments))
	for i, seg := range segments {
		parts[i] = seg.Text(text)
	}
	return parts
}

// FindTopLevelEquals locates the first '=' outside quoted runs
func FindTopLevelEquals(text string) (int, bool) {
	var state quoteState
	for i := 0; i < len(text); i++ {
		if state.advance(text[i]) && text[i] == '=' {
			return i, true
		}
	}
	return -1, false
}

// StripHashComment removes everything from the first unquoted '#' to the end of line
func StripHashComment(line string) string {
	var state quoteState
	for i := 0; i < len(line); i++ {
		if state.advance(line[i]) && line[i] == '#' {
			return line[:i]
		}
	}
	return line
}

// StripLineComment removes a trailing "//" comment from a line of Go code
func StripLineComment(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		return line[:idx]
	}
	return line
}

// UnquoteBounds narrows [start, end) by one byte on each side when the range is
// wrapped in matching single or double quotes.
func UnquoteBounds(text string, start, end int) (int, int) {
	if end-start < 2 || start < 0 || end > len(text) {
		return start, end
	}
	first, last := text[start], text[end-1]
	if (first == '"' || first == '\'') && first == last {
		return start + 1, end - 1
	}
	return start, end
}

// TrimQuotes trims surrounding whitespace, then every leading and trailing quote byte
func TrimQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}
