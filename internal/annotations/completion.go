package annotations

import (
	"regexp"
	"sort"
	"strings"

	"github.com/gogenie/annotate/internal/lexical"
)

var (
	optionContextPattern = regexp.MustCompile(`@([A-Za-z][A-Za-z0-9_.-]*(?::[A-Za-z0-9_.-]+)?)\(([^)]*)$`)
	nameContextPattern   = regexp.MustCompile(`@([A-Za-z0-9_.:-]*)$`)
)

// ContextKind tells what the user is typing at the caret
type ContextKind int

const (
	ContextNone ContextKind = iota
	ContextAnnotationName
	ContextAnnotationOption
)

// String returns the kind name used in JSON output
func (k ContextKind) String() string {
	switch k {
	case ContextAnnotationName:
		return "annotation_name"
	case ContextAnnotationOption:
		return "annotation_option"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k ContextKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode as ContextNone.
func (k *ContextKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "annotation_name":
		*k = ContextAnnotationName
	case "annotation_option":
		*k = ContextAnnotationOption
	default:
		*k = ContextNone
	}
	return nil
}

// CompletionContext describes the caret position inside a comment
type CompletionContext struct {
	Kind           ContextKind `json:"kind"`
	AnnotationName string      `json:"annotationName,omitempty"` // set for ContextAnnotationOption
	Prefix         string      `json:"prefix"`
}

// ResolveCompletionContext inspects the current line of comment up to caret and
// reports whether an annotation name or an option key is being typed.
func ResolveCompletionContext(comment string, caret int) CompletionContext {
	if caret <= 0 || caret > len(comment) {
		return CompletionContext{Kind: ContextNone}
	}
	beforeCaret := comment[lexical.LineStart(comment, caret):caret]

	if all := optionContextPattern.FindAllStringSubmatchIndex(beforeCaret, -1); len(all) > 0 {
		m := all[len(all)-1]
		if !lexical.IsLikelyEmail(beforeCaret, m[0]) {
			rawArgs := beforeCaret[m[4]:m[5]]
			segments := lexical.SplitTopLevel(rawArgs, ',')
			lastSegment := segments[len(segments)-1].Text(rawArgs)
			lastSegment = strings.TrimLeft(lastSegment, " \t\r\f\v")
			if !strings.Contains(lastSegment, "=") {
				return CompletionContext{
					Kind:           ContextAnnotationOption,
					AnnotationName: beforeCaret[m[2]:m[3]],
					Prefix:         lastSegment,
				}
			}
		}
	}

	if m := nameContextPattern.FindStringSubmatchIndex(beforeCaret); m != nil {
		if !lexical.IsLikelyEmail(beforeCaret, m[0]) {
			return CompletionContext{Kind: ContextAnnotationName, Prefix: beforeCaret[m[2]:m[3]]}
		}
	}

	return CompletionContext{Kind: ContextNone}
}

// CompletionItem is one candidate offered for a completion context
type CompletionItem struct {
	Label         string `json:"label"`
	InsertText    string `json:"insertText"`
	CommandFamily string `json:"commandFamily"`
	Snippet       string `json:"snippet,omitempty"`
}

// CompletionItems lists the candidates for ctx, filtered by its prefix case-insensitively.
// Names come in SortedNames order; option keys are sorted, and annotations accepting
// any option also offer "field".
func CompletionItems(ctx CompletionContext, profile *Profile) []CompletionItem {
	prefix := strings.ToLower(ctx.Prefix)
	var items []CompletionItem

	switch ctx.Kind {
	case ContextAnnotationName:
		for _, spec := range profile.SortedNames() {
			if !strings.HasPrefix(strings.ToLower(spec.Name), prefix) {
				continue
			}
			items = append(items, CompletionItem{
				Label:         "@" + spec.Name,
				InsertText:    spec.Name,
				CommandFamily: spec.CommandFamily,
				Snippet:       spec.Snippet,
			})
		}

	case ContextAnnotationOption:
		spec, ok := profile.FindSpec(ctx.AnnotationName)
		if !ok {
			return nil
		}
		keys := make(map[string]bool)
		for _, option := range spec.Options {
			keys[option.Key] = true
		}
		if spec.AllowAnyOption {
			keys["field"] = true
		}
		sorted := make([]string, 0, len(keys))
		for key := range keys {
			sorted = append(sorted, key)
		}
		sort.Strings(sorted)

		for _, key := range sorted {
			if !strings.HasPrefix(strings.ToLower(key), prefix) {
				continue
			}
			items = append(items, CompletionItem{
				Label:         key + "=",
				InsertText:    key + "=",
				CommandFamily: spec.CommandFamily,
			})
		}
	}
	return items
}
