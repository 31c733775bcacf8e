package annotations

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/gogenie/annotate/internal/lexical"
)

// Severity of a lint diagnostic
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the severity name
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// MarshalText implements encoding.TextMarshaler
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Lint diagnostic codes
const (
	CodeSyntax            = "syntax"
	CodeUnterminatedQuote = "unterminated-quote"
	CodeEmptyKey          = "empty-key"
	CodeInvalidKey        = "invalid-key"
	CodeEmptyValue        = "empty-value"
	CodeUnquotedEquals    = "unquoted-equals"
	CodeDuplicateKey      = "duplicate-key"
	CodeUnknownOption     = "unknown-option"
)

// Diagnostic is a problem found in an annotation's argument list
type Diagnostic struct {
	Severity   Severity     `json:"severity"`
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Annotation string       `json:"annotation"`
	Span       lexical.Span `json:"span"`
}

// argumentList is the strict grammar of "(...)" contents: comma separated entries,
// each a run of strings, words and '=' tokens.
type argumentList struct {
	Entries []*argumentEntry `parser:"@@? ( Comma @@? )*"`
}

type argumentEntry struct {
	Pos    lexer.Position
	Tokens []*argumentToken `parser:"@@+"`
}

type argumentToken struct {
	Pos    lexer.Position
	String string `parser:"  @String"`
	Equals bool   `parser:"| @Equals"`
	Word   string `parser:"| @(Ident | Bare)"`
}

func (t *argumentToken) text() string {
	switch {
	case t.Equals:
		return "="
	case t.String != "":
		return t.String
	default:
		return t.Word
	}
}

func (t *argumentToken) span(base int) lexical.Span {
	start := base + t.Pos.Offset
	return lexical.Span{Start: start, End: start + len(t.text())}
}

// Linter checks annotation argument lists against a strict grammar and the profile's
// declared options.
type Linter struct {
	parser *participle.Parser[argumentList]
}

// NewLinter builds the argument grammar
func NewLinter() *Linter {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `"(\\.|[^"\\])*"|'(\\.|[^'\\])*'`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Quote", Pattern: `["']`},
		{Name: "Bare", Pattern: `[^\s,="']+`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[argumentList](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &Linter{parser: parser}
}

var (
	defaultLinter     *Linter
	defaultLinterOnce sync.Once
)

// Lint runs the shared default linter
func Lint(comment string, profile *Profile) []Diagnostic {
	defaultLinterOnce.Do(func() {
		defaultLinter = NewLinter()
	})
	return defaultLinter.Lint(comment, profile)
}

// Lint reports problems in the argument lists of every recognized annotation in comment.
// Spans are offsets into comment.
func (l *Linter) Lint(comment string, profile *Profile) []Diagnostic {
	var diagnostics []Diagnostic
	for _, occ := range lexical.ScanAnnotations(comment) {
		if !occ.HasArgs || strings.TrimSpace(occ.Args) == "" {
			continue
		}
		spec, ok := profile.FindSpec(occ.Name)
		if !ok {
			continue
		}
		diagnostics = append(diagnostics, l.lintArguments(occ, spec)...)
	}
	return diagnostics
}

func (l *Linter) lintArguments(occ lexical.Occurrence, spec Spec) []Diagnostic {
	report := func(severity Severity, code string, span lexical.Span, format string, args ...interface{}) Diagnostic {
		return Diagnostic{
			Severity:   severity,
			Code:       code,
			Message:    fmt.Sprintf(format, args...),
			Annotation: occ.Name,
			Span:       span,
		}
	}

	list, err := l.parser.ParseString("", occ.Args)
	if err != nil {
		return []Diagnostic{syntaxDiagnostic(occ, err, report)}
	}

	var diagnostics []Diagnostic
	seen := make(map[string]bool)
	for _, entry := range list.Entries {
		eq := -1
		for i, tok := range entry.Tokens {
			if tok.Equals {
				eq = i
				break
			}
		}
		if eq < 0 {
			continue
		}

		eqSpan := entry.Tokens[eq].span(occ.ArgsStart)
		if eq == 0 {
			diagnostics = append(diagnostics, report(SeverityError, CodeEmptyKey, eqSpan, "option value has no key"))
			continue
		}

		keyTokens := entry.Tokens[:eq]
		keySpan := lexical.Span{Start: keyTokens[0].span(occ.ArgsStart).Start, End: keyTokens[len(keyTokens)-1].span(occ.ArgsStart).End}
		key := keyTokens[0].Word
		if len(keyTokens) > 1 || !lexical.IsIdentifier(key) {
			diagnostics = append(diagnostics, report(SeverityError, CodeInvalidKey, keySpan,
				"option key %q is not an identifier", keySpan.Shift(-occ.ArgsStart).Slice(occ.Args)))
			continue
		}

		valueTokens := entry.Tokens[eq+1:]
		if len(valueTokens) == 0 {
			diagnostics = append(diagnostics, report(SeverityWarning, CodeEmptyValue, keySpan, "option %q has no value", key))
		}
		for _, tok := range valueTokens {
			if tok.Equals {
				diagnostics = append(diagnostics, report(SeverityWarning, CodeUnquotedEquals, tok.span(occ.ArgsStart),
					"value of option %q contains an unquoted '='", key))
				break
			}
		}

		lower := strings.ToLower(key)
		if seen[lower] {
			diagnostics = append(diagnostics, report(SeverityWarning, CodeDuplicateKey, keySpan, "option %q is set more than once", key))
		}
		seen[lower] = true

		if !spec.AcceptsOption(key) {
			diagnostics = append(diagnostics, report(SeverityWarning, CodeUnknownOption, keySpan,
				"@%s does not declare option %q (known: %s)", occ.Name, key, declaredKeys(spec)))
		}
	}
	return diagnostics
}

func syntaxDiagnostic(occ lexical.Occurrence, err error, report func(Severity, string, lexical.Span, string, ...interface{}) Diagnostic) Diagnostic {
	offset := 0
	var perr participle.Error
	if stderrors.As(err, &perr) {
		offset = perr.Position().Offset
	}
	if offset < 0 || offset > len(occ.Args) {
		offset = 0
	}

	if offset < len(occ.Args) && (occ.Args[offset] == '"' || occ.Args[offset] == '\'') {
		span := lexical.Span{Start: occ.ArgsStart + offset, End: occ.ArgsStart + len(occ.Args)}
		return report(SeverityError, CodeUnterminatedQuote, span, "unterminated %c quote", occ.Args[offset])
	}

	message := err.Error()
	if perr != nil {
		message = perr.Message()
	}
	span := lexical.Span{Start: occ.ArgsStart + offset, End: occ.ArgsStart + len(occ.Args)}
	return report(SeverityError, CodeSyntax, span, "malformed arguments: %s", message)
}

func declaredKeys(spec Spec) string {
	keys := make([]string, 0, len(spec.Options))
	for _, option := range spec.Options {
		keys = append(keys, option.Key)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
