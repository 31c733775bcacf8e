package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMatchingClose(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		open      int
		openChar  byte
		closeChar byte
		want      int
		wantOK    bool
	}{
		{name: "simple parens", text: "(a)", open: 0, openChar: '(', closeChar: ')', want: 2, wantOK: true},
		{name: "nested parens", text: "x(a(b)c)d", open: 1, openChar: '(', closeChar: ')', want: 7, wantOK: true},
		{name: "braces", text: "type X interface {\n\tA() {}\n}", open: 17, openChar: '{', closeChar: '}', want: 27, wantOK: true},
		{name: "unmatched", text: "(a(b)", open: 0, openChar: '(', closeChar: ')', want: -1, wantOK: false},
		{name: "open index not at delimiter", text: "a(b)", open: 0, openChar: '(', closeChar: ')', want: -1, wantOK: false},
		{name: "open index out of range", text: "()", open: 5, openChar: '(', closeChar: ')', want: -1, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindMatchingClose(tt.text, tt.open, tt.openChar, tt.closeChar)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty text yields one segment", text: "", want: []string{""}},
		{name: "no separator", text: "abc", want: []string{"abc"}},
		{name: "plain split", text: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "trailing separator", text: "a,", want: []string{"a", ""}},
		{name: "comma in double quotes", text: `route="a,b",method=get`, want: []string{`route="a,b"`, "method=get"}},
		{name: "comma in single quotes", text: `'x,y',z`, want: []string{`'x,y'`, "z"}},
		{name: "escaped quote stays inside", text: `"a\",b",c`, want: []string{`"a\",b"`, "c"}},
		{name: "backslash outside quotes is literal", text: `a\,b`, want: []string{`a\`, "b"}},
		{name: "unterminated quote swallows rest", text: `"a,b`, want: []string{`"a,b`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTopLevelStrings(tt.text, ','))
		})
	}
}

func TestFindTopLevelEquals(t *testing.T) {
	idx, ok := FindTopLevelEquals(`route="a=b"`)
	require.True(t, ok)
	assert.Equal(t, 5, idx)

	_, ok = FindTopLevelEquals(`"a=b"`)
	assert.False(t, ok)

	idx, ok = FindTopLevelEquals(`'k=v' = x`)
	require.True(t, ok)
	assert.Equal(t, 6, idx)
}

func TestStripComments(t *testing.T) {
	assert.Equal(t, "name: api ", StripHashComment("name: api # comment"))
	assert.Equal(t, `name: "a#b" `, StripHashComment(`name: "a#b" # real`))
	assert.Equal(t, "plain", StripHashComment("plain"))

	assert.Equal(t, "\tA = 1 ", StripLineComment("\tA = 1 // first"))
	assert.Equal(t, "", StripLineComment("// only"))
}

func TestUnquoteAndTrim(t *testing.T) {
	start, end := UnquoteBounds(`"list"`, 0, 6)
	assert.Equal(t, 1, start)
	assert.Equal(t, 5, end)

	start, end = UnquoteBounds(`"list'`, 0, 6)
	assert.Equal(t, 0, start)
	assert.Equal(t, 6, end)

	assert.Equal(t, "user", TrimQuotes(` "user" `))
	assert.Equal(t, "user", TrimQuotes(`'"user"'`))
}

func TestParseArguments(t *testing.T) {
	raw := `user, route="user" ,group = 'acct', =bare, empty=`
	args := ParseArguments(raw, 10)
	require.Len(t, args, 4)

	assert.Equal(t, "", args[0].Key)
	assert.Equal(t, "user", args[0].Value)
	assert.Equal(t, Span{Start: 10, End: 14}, args[0].Span)

	assert.Equal(t, "route", args[1].Key)
	assert.Equal(t, "user", args[1].Value)
	assert.Equal(t, "user", args[1].Span.Shift(-10).Slice(raw))

	assert.Equal(t, "group", args[2].Key)
	assert.Equal(t, "acct", args[2].Value)

	assert.True(t, args[3].IsPositional())
	assert.Equal(t, "bare", args[3].Value)

	pos, ok := args.FirstPositional()
	require.True(t, ok)
	assert.Equal(t, "user", pos.Value)

	route, ok := args.ByKey("ROUTE")
	require.True(t, ok)
	assert.Equal(t, "user", route.Value)

	assert.Equal(t, map[string]string{"route": "user", "group": "acct"}, args.Options())
}

func TestParseArgumentsSkipsEmptyQuotedValue(t *testing.T) {
	args := ParseArguments(`route=""`, 0)
	assert.Empty(t, args)
}

func TestIsTriviaOnly(t *testing.T) {
	assert.True(t, IsTriviaOnly(""))
	assert.True(t, IsTriviaOnly("\n\n  \n"))
	assert.True(t, IsTriviaOnly("\n// doc\n   // more\n"))
	assert.False(t, IsTriviaOnly("\nvar x = 1\n"))
	assert.False(t, IsTriviaOnly(" trailing words\n"))
}

func TestIdentifierAt(t *testing.T) {
	text := "x := CtxKeyIsAdmin + 1"
	start := 5

	ident, ok := IdentifierAt(text, start+3)
	require.True(t, ok)
	assert.Equal(t, "CtxKeyIsAdmin", ident.Text)
	assert.Equal(t, Span{Start: start, End: start + len("CtxKeyIsAdmin")}, ident.Span)

	ident, ok = IdentifierAt(text, start+len("CtxKeyIsAdmin"))
	require.True(t, ok, "offset touching the end resolves")
	assert.Equal(t, "CtxKeyIsAdmin", ident.Text)

	_, ok = IdentifierAt(text, 2)
	assert.False(t, ok)

	_, ok = IdentifierAt("a + 12", 5)
	assert.False(t, ok, "numbers are not identifiers")

	_, ok = IdentifierAt(text, len(text)+1)
	assert.False(t, ok)
}

func TestLines(t *testing.T) {
	lines := Lines("a\nbc\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Line{Text: "a", Start: 0}, lines[0])
	assert.Equal(t, Line{Text: "bc", Start: 2}, lines[1])
	assert.Equal(t, Line{Text: "", Start: 5}, lines[2])
	assert.Equal(t, 4, lines[1].End())

	assert.Equal(t, 2, LineStart("a\nbc", 3))
	assert.Equal(t, 0, LineStart("abc", 2))

	assert.Equal(t, 4, LineEnd("a\nbc\nd", 3))
	assert.Equal(t, 3, LineEnd("abc", 1))
	assert.Equal(t, 3, LineEnd("abc", 9))
}

func TestScanAnnotations(t *testing.T) {
	text := "// @service(user,route=\"user\") mail me at user@example.com\n// @autowire @http.get(\"/x\")"
	occurrences := ScanAnnotations(text)
	require.Len(t, occurrences, 3)

	assert.Equal(t, "service", occurrences[0].Name)
	assert.Equal(t, "service", occurrences[0].NameSpan.Slice(text))
	assert.True(t, occurrences[0].HasArgs)
	assert.Equal(t, `user,route="user"`, occurrences[0].Args)
	assert.Equal(t, occurrences[0].Args, text[occurrences[0].ArgsStart:occurrences[0].ArgsStart+len(occurrences[0].Args)])

	assert.Equal(t, "autowire", occurrences[1].Name)
	assert.False(t, occurrences[1].HasArgs)
	assert.Equal(t, -1, occurrences[1].ArgsStart)
	assert.Nil(t, occurrences[1].Arguments())

	assert.Equal(t, "http.get", occurrences[2].Name)
	args := occurrences[2].Arguments()
	require.Len(t, args, 1)
	assert.Equal(t, "/x", args[0].Span.Slice(text))
}

func TestIsLikelyEmail(t *testing.T) {
	text := "user@example.com"
	assert.True(t, IsLikelyEmail(text, 4))
	assert.False(t, IsLikelyEmail("// @http", 3))
	assert.False(t, IsLikelyEmail("@http", 0))
	assert.False(t, IsLikelyEmail("a@", 1))
	assert.False(t, IsLikelyEmail("a@(", 1))
	assert.True(t, IsLikelyEmail("first.last+tag@host", 14))
}

func TestSpan(t *testing.T) {
	s := Span{Start: 2, End: 5}
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(5))
	assert.True(t, s.Touches(5))
	assert.False(t, s.Touches(6))
	assert.Equal(t, "llo", s.Slice("hello"))
	assert.Equal(t, "", Span{Start: 4, End: 9}.Slice("hello"))
	assert.Equal(t, "[2,5)", s.String())
}
