package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCompletionContext(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		caret   int
		want    CompletionContext
	}{
		{
			name:    "typing a name",
			comment: "// @htt",
			caret:   7,
			want:    CompletionContext{Kind: ContextAnnotationName, Prefix: "htt"},
		},
		{
			name:    "typing an option",
			comment: "// @http(me",
			caret:   11,
			want:    CompletionContext{Kind: ContextAnnotationOption, AnnotationName: "http", Prefix: "me"},
		},
		{
			name:    "bare at sign",
			comment: "// @",
			caret:   4,
			want:    CompletionContext{Kind: ContextAnnotationName, Prefix: ""},
		},
		{
			name:    "option after comma",
			comment: `// @http(method=get, ro`,
			caret:   23,
			want:    CompletionContext{Kind: ContextAnnotationOption, AnnotationName: "http", Prefix: "ro"},
		},
		{
			name:    "typing a value is not an option context",
			comment: `// @http(method=ge`,
			caret:   18,
			want:    CompletionContext{Kind: ContextNone},
		},
		{
			name:    "comma inside a quoted value",
			comment: `// @http(route="a,b`,
			caret:   19,
			want:    CompletionContext{Kind: ContextNone},
		},
		{
			name:    "option after a quoted comma",
			comment: `// @http(route="a,b", me`,
			caret:   24,
			want:    CompletionContext{Kind: ContextAnnotationOption, AnnotationName: "http", Prefix: "me"},
		},
		{
			name:    "closed annotation",
			comment: "// @http(method=get) x",
			caret:   22,
			want:    CompletionContext{Kind: ContextNone},
		},
		{
			name:    "email is ignored",
			comment: "// mail user@exa",
			caret:   16,
			want:    CompletionContext{Kind: ContextNone},
		},
		{
			name:    "only the caret line is considered",
			comment: "// @http(\n// plain",
			caret:   18,
			want:    CompletionContext{Kind: ContextNone},
		},
		{
			name:    "second line",
			comment: "// text\n// @ser",
			caret:   15,
			want:    CompletionContext{Kind: ContextAnnotationName, Prefix: "ser"},
		},
		{
			name:    "caret mid text",
			comment: "// @service(user) more",
			caret:   7,
			want:    CompletionContext{Kind: ContextAnnotationName, Prefix: "ser"},
		},
		{name: "caret at zero", comment: "// @http", caret: 0, want: CompletionContext{Kind: ContextNone}},
		{name: "caret past end", comment: "// @http", caret: 9, want: CompletionContext{Kind: ContextNone}},
		{name: "negative caret", comment: "// @http", caret: -1, want: CompletionContext{Kind: ContextNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCompletionContext(tt.comment, tt.caret)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, ResolveCompletionContext(tt.comment, tt.caret))
		})
	}
}

func TestCompletionItemsForNames(t *testing.T) {
	items := CompletionItems(CompletionContext{Kind: ContextAnnotationName, Prefix: "HTTP."}, Default())
	require.Len(t, items, 3)
	assert.Equal(t, "@http.delete", items[0].Label)
	assert.Equal(t, "http.delete", items[0].InsertText)
	assert.Equal(t, "@http.get", items[1].Label)
	assert.Equal(t, "@http.post", items[2].Label)
	assert.Equal(t, FamilyHTTP, items[2].CommandFamily)
}

func TestCompletionItemsForOptions(t *testing.T) {
	profile := Default()

	items := CompletionItems(CompletionContext{Kind: ContextAnnotationOption, AnnotationName: "http", Prefix: ""}, profile)
	var labels []string
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"method=", "ns=", "route="}, labels)

	items = CompletionItems(CompletionContext{Kind: ContextAnnotationOption, AnnotationName: "mount", Prefix: "F"}, profile)
	require.Len(t, items, 1)
	assert.Equal(t, "field=", items[0].InsertText)

	aliased := profile.WithAugmentedAliases([]string{"cache"})
	items = CompletionItems(CompletionContext{Kind: ContextAnnotationOption, AnnotationName: "cache"}, aliased)
	require.Len(t, items, 1)
	assert.Equal(t, "field=", items[0].Label)

	assert.Nil(t, CompletionItems(CompletionContext{Kind: ContextAnnotationOption, AnnotationName: "nope"}, profile))
	assert.Nil(t, CompletionItems(CompletionContext{Kind: ContextNone}, profile))
}

func TestContextKindText(t *testing.T) {
	text, err := ContextAnnotationOption.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "annotation_option", string(text))
	assert.Equal(t, "none", ContextNone.String())
}
