package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComments(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "line comments", text: "// a\nx := 1 // b\n", want: []string{"// a", "// b"}},
		{name: "string with slashes", text: `s := "http://x" // real`, want: []string{"// real"}},
		{name: "escaped quote", text: `s := "a\"//b" // c`, want: []string{"// c"}},
		{name: "rune literal", text: `r := '/' // c`, want: []string{"// c"}},
		{name: "raw string", text: "s := `\n// not\n` // yes", want: []string{"// yes"}},
		{name: "block comment skipped", text: "/* // @enum(x) */ // after", want: []string{"// after"}},
		{name: "unterminated block", text: "// before\n/* // lost", want: []string{"// before"}},
		{name: "crlf", text: "// a\r\n// b", want: []string{"// a", "// b"}},
		{name: "none", text: "package x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range Comments(tt.text) {
				assert.Equal(t, c.Text, c.Span.Slice(tt.text))
				got = append(got, c.Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommentAt(t *testing.T) {
	text := "package x\n\n// @enum(A)\nconst A = 1\n// tail"

	comment, ok := CommentAt(text, strings.Index(text, "enum"))
	require.True(t, ok)
	assert.Equal(t, "// @enum(A)", comment.Text)

	comment, ok = CommentAt(text, strings.Index(text, "\nconst"))
	require.True(t, ok, "the end of a comment still belongs to it")
	assert.Equal(t, "// @enum(A)", comment.Text)

	_, ok = CommentAt(text, strings.Index(text, "const")+1)
	assert.False(t, ok)

	comment, ok = CommentAt(text, len(text))
	require.True(t, ok)
	assert.Equal(t, "// tail", comment.Text)

	_, ok = CommentAt(text, 0)
	assert.False(t, ok)
}
