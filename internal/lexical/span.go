package lexical

import "fmt"

// Span is a half-open byte range [Start, End) into the text it was computed from.
// A Span is only meaningful for the exact buffer that produced it.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the span
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether offset lies inside [Start, End)
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Touches reports whether offset lies inside the span or sits exactly at its end,
// so a caret placed right after an identifier still resolves to it.
func (s Span) Touches(offset int) bool {
	return s.Contains(offset) || offset == s.End
}

// Shift returns the span moved by delta bytes
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}

// Slice returns the text covered by the span, or "" if the span does not fit the text
func (s Span) Slice(text string) string {
	if s.Start < 0 || s.End > len(text) || s.End < s.Start {
		return ""
	}
	return text[s.Start:s.End]
}

// String returns a compact representation used in diagnostics
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}
