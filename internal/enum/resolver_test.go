package enum

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogenie/annotate/internal/annotations"
	"github.com/gogenie/annotate/internal/config"
)

const multiBlockSource = `// ctxKey context keys
// @enum(ctxKey)
const (
	CtxKeyUserGroupIDs = 1 // user group ids
	CtxKeyIsAdmin = 2 // admin flag
)

// statusCommon user status
// @enum(statusCommon)
const (
	StatusCommonEnable = 1 // enabled
	StatusCommonDisabled = 2 // disabled
)

// typePermissionUserPermit permit types
// @enum("typePermissionUserPermit", "ignored")
const (
	TypePermissionUserPermitUser  typePermissionUserPermit = "users"
	TypePermissionUserPermitGroup typePermissionUserPermit = "group"
	TypePermissionUserPermitNone = "" // none
)
`

func TestResolveEnumNameFromComment(t *testing.T) {
	profile := annotations.Default()

	name, ok := ResolveEnumNameFromComment("// @enum(ctxKey)", profile)
	require.True(t, ok)
	assert.Equal(t, "ctxKey", name)

	_, ok = ResolveEnumNameFromComment("// @http(ctxKey)", profile)
	assert.False(t, ok)

	_, ok = ResolveEnumNameFromComment("// @enum", profile)
	assert.False(t, ok)
}

func TestCollectCommentEnumAnchors(t *testing.T) {
	profile := annotations.Default()

	tests := []struct {
		name    string
		comment string
		want    []string
	}{
		{name: "plain", comment: "// @enum(ctxKey)", want: []string{"ctxKey"}},
		{name: "padded", comment: "// @enum(  ctxKey , x)", want: []string{"ctxKey"}},
		{name: "double quoted", comment: `// @enum("ctxKey")`, want: []string{"ctxKey"}},
		{name: "single quoted", comment: `// @enum('ctxKey')`, want: []string{"ctxKey"}},
		{name: "quoted comma", comment: `// @enum("a,b", c)`, want: []string{"a,b"}},
		{name: "empty quotes", comment: `// @enum("")`, want: nil},
		{name: "blank", comment: "// @enum(   )", want: nil},
		{name: "leading comma", comment: "// @enum(, x)", want: nil},
		{name: "two annotations", comment: "// @enum(A) @ENUM(B)", want: []string{"A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchors := CollectCommentEnumAnchors(tt.comment, profile)
			var names []string
			for _, anchor := range anchors {
				names = append(names, anchor.EnumName)
				assert.Equal(t, anchor.EnumName, anchor.Span.Slice(tt.comment))
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestCollectSemanticRangesRoundTrip(t *testing.T) {
	source := "// @enum(ctxKey)\nconst (\n    A = 1\n)"
	ranges := CollectSemanticRanges(source, annotations.Default())
	require.Len(t, ranges, 2)

	assert.Equal(t, KindEnumArgument, ranges[0].Kind)
	assert.Equal(t, "ctxKey", ranges[0].Span.Slice(source))
	assert.Empty(t, ranges[0].ConstName)

	assert.Equal(t, KindConstName, ranges[1].Kind)
	assert.Equal(t, "A", ranges[1].Span.Slice(source))
	assert.Equal(t, "ctxKey", ranges[1].EnumName)
	assert.Equal(t, "A", ranges[1].ConstName)
	assert.Equal(t, "enum", ranges[1].AnnotationName)

	assert.Equal(t, ranges, CollectSemanticRanges(source, annotations.Default()))
}

func TestCollectSemanticRangesMultiBlock(t *testing.T) {
	ranges := CollectSemanticRanges(multiBlockSource, annotations.Default())

	byConst := make(map[string]string)
	arguments := 0
	for _, r := range ranges {
		if r.Kind == KindEnumArgument {
			arguments++
			continue
		}
		assert.Equal(t, r.ConstName, r.Span.Slice(multiBlockSource))
		byConst[r.ConstName] = r.EnumName
	}
	assert.Equal(t, 3, arguments)
	assert.Equal(t, map[string]string{
		"CtxKeyUserGroupIDs":            "ctxKey",
		"CtxKeyIsAdmin":                 "ctxKey",
		"StatusCommonEnable":            "statusCommon",
		"StatusCommonDisabled":          "statusCommon",
		"TypePermissionUserPermitUser":  "typePermissionUserPermit",
		"TypePermissionUserPermitGroup": "typePermissionUserPermit",
		"TypePermissionUserPermitNone":  "typePermissionUserPermit",
	}, byConst)
	assert.Equal(t, ranges, CollectSemanticRanges(multiBlockSource, annotations.Default()))
}

func TestSemanticRangeAtOffset(t *testing.T) {
	profile := annotations.Default()

	offset := strings.Index(multiBlockSource, "StatusCommonEnable") + 2
	r, ok := SemanticRangeAtOffset(multiBlockSource, offset, profile)
	require.True(t, ok)
	assert.Equal(t, KindConstName, r.Kind)
	assert.Equal(t, "statusCommon", r.EnumName)
	assert.Equal(t, "StatusCommonEnable", r.ConstName)

	end := strings.Index(multiBlockSource, "TypePermissionUserPermitGroup") + len("TypePermissionUserPermitGroup")
	r, ok = SemanticRangeAtOffset(multiBlockSource, end, profile)
	require.True(t, ok, "offset touching the end resolves")
	assert.Equal(t, "typePermissionUserPermit", r.EnumName)
	assert.Equal(t, "TypePermissionUserPermitGroup", r.ConstName)

	_, ok = SemanticRangeAtOffset(multiBlockSource, 0, profile)
	assert.False(t, ok)
	_, ok = SemanticRangeAtOffset(multiBlockSource, len(multiBlockSource)+1, profile)
	assert.False(t, ok)
}

func TestResolveAtOffset(t *testing.T) {
	profile := annotations.Default()
	source := "// @enum(ctxKey)\nconst (\n\tCtxKeyUserGroupIDs = 1\n\tCtxKeyIsAdmin = 2\n)\n\nvar x = CtxKeyIsAdmin\n"

	target, ok := ResolveAtOffset(source, strings.Index(source, "ctxKey")+2, profile)
	require.True(t, ok)
	assert.Equal(t, Target{EnumName: "ctxKey"}, target)

	target, ok = ResolveAtOffset(source, strings.Index(source, "CtxKeyIsAdmin")+3, profile)
	require.True(t, ok)
	assert.Equal(t, Target{EnumName: "ctxKey", ConstName: "CtxKeyIsAdmin"}, target)

	_, ok = ResolveAtOffset(source, strings.LastIndex(source, "CtxKeyIsAdmin")+3, profile)
	assert.False(t, ok, "uses outside the block do not resolve")

	_, ok = ResolveAtOffset(source, -1, profile)
	assert.False(t, ok)
}

func TestResolveAtOffsetDuplicateConstUsesDeclaringBlock(t *testing.T) {
	source := "// @enum(first)\nconst (\n\tShared = 1\n)\n// @enum(second)\nconst (\n\tShared = 2\n)\n"
	profile := annotations.Default()

	target, ok := ResolveAtOffset(source, strings.LastIndex(source, "Shared")+1, profile)
	require.True(t, ok)
	assert.Equal(t, "second", target.EnumName, "the offset pins the declaring block")

	target, ok = ResolveAtOffset(source, strings.Index(source, "Shared")+1, profile)
	require.True(t, ok)
	assert.Equal(t, "first", target.EnumName)
}

func TestConstBlockAssociation(t *testing.T) {
	profile := annotations.Default()

	tests := []struct {
		name   string
		source string
		consts []string
	}{
		{
			name:   "comments and blank lines between",
			source: "// @enum(K)\n\n// doc\nconst (\n\tA = 1\n)",
			consts: []string{"A"},
		},
		{
			name:   "code between",
			source: "// @enum(K)\nvar z = 1\nconst (\n\tA = 1\n)",
		},
		{
			name:   "unterminated block",
			source: "// @enum(K)\nconst (\n\tA = 1\n",
		},
		{
			name:   "empty block",
			source: "// @enum(K)\nconst (\n)",
		},
		{
			name:   "typed and commented constants",
			source: "// @enum(K)\nconst (\n\tA K = iota // first\n\t// B = 2\n\tC\n\tD string = \"d\"\n)",
			consts: []string{"A", "D"},
		},
		{
			name:   "other enum indent is ignored",
			source: "// @state(K)\nconst (\n\tA = 1\n)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var consts []string
			for _, r := range CollectSemanticRanges(tt.source, profile) {
				if r.Kind == KindConstName {
					consts = append(consts, r.ConstName)
				}
			}
			assert.Equal(t, tt.consts, consts)
		})
	}
}

func TestConfiguredEnumIndent(t *testing.T) {
	cfg := config.Defaults("")
	cfg.EnumIndent = "state"
	profile := annotations.Build(cfg)

	ranges := CollectSemanticRanges("// @state(K)\nconst (\n\tA = 1\n)", profile)
	require.Len(t, ranges, 2)
	assert.Equal(t, "state", ranges[1].AnnotationName)
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"ctxKey":                   "ctx_key",
		"HTTPStatusCode":           "http_status_code",
		"statusCommon":             "status_common",
		"typePermissionUserPermit": "type_permission_user_permit",
		"user-kind name":           "user_kind_name",
		"v2Kind":                   "v2_kind",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, SnakeCase(in))
		})
	}
	assert.Equal(t, "ctx_key.go", FileName("ctxKey"))
}

func TestGeneratedFilePatterns(t *testing.T) {
	generated := "package enum\n\ntype CtxKey int\n\nconst (\n\tCtxKeyIsAdmin CtxKey = 2\n)\n\nvar Other = CtxKeyIsAdmin\n"

	m := TypePattern("CtxKey").FindStringSubmatchIndex(generated)
	require.NotNil(t, m)
	assert.Equal(t, "CtxKey", generated[m[2]:m[3]])

	patterns := ConstPatterns("CtxKey", "CtxKeyIsAdmin")
	m = patterns[0].FindStringSubmatchIndex(generated)
	require.NotNil(t, m)
	assert.Equal(t, strings.Index(generated, "CtxKeyIsAdmin"), m[2])

	assert.Nil(t, patterns[0].FindStringSubmatchIndex("const (\n\tCtxKeyIsAdmin = 2\n)"))
	assert.NotNil(t, patterns[1].FindStringSubmatchIndex("const (\n\tCtxKeyIsAdmin = 2\n)"))
}

func TestConstBlockAfterDescribedAnnotation(t *testing.T) {
	source := "// @enum(K) context keys\nconst (\n\tA = 1\n)"
	ranges := CollectSemanticRanges(source, annotations.Default())
	require.Len(t, ranges, 2)
	assert.Equal(t, "A", ranges[1].ConstName)
}
