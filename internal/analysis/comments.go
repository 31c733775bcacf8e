package analysis

import (
	"strings"

	"github.com/gogenie/annotate/internal/lexical"
)

// Comment is one "//" comment of a Go file, from the slashes to the end of the line
type Comment struct {
	Span lexical.Span
	Text string
}

// Comments returns the line comments of text in order. Slashes inside string,
// raw string and rune literals do not start a comment.
func Comments(text string) []Comment {
	var comments []Comment
	var quote byte // '"', '\'', '`' or 0

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote == '`':
			if c == '`' {
				quote = 0
			}
		case quote != 0:
			switch c {
			case '\\':
				i++
			case quote, '\n':
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return comments
			}
			i += end + 3
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			end := lexical.LineEnd(text, i)
			stop := end
			if text[stop-1] == '\r' {
				stop--
			}
			comments = append(comments, Comment{Span: lexical.Span{Start: i, End: stop}, Text: text[i:stop]})
			i = end
		}
	}
	return comments
}

// CommentAt returns the comment containing offset, or ending exactly at it
func CommentAt(text string, offset int) (Comment, bool) {
	for _, comment := range Comments(text) {
		if comment.Span.Touches(offset) {
			return comment, true
		}
		if comment.Span.Start > offset {
			break
		}
	}
	return Comment{}, false
}
