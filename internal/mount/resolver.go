// Package mount discovers the aliases introduced by mount annotations and binds them
// to the struct each annotation decorates.
//
//	// @mount(config)
//	type AppConfig struct {
//		RedisConfig string
//	}
//
// After the declaration above, "@config(config=RedisConfig)" is a recognized
// annotation whose value refers to AppConfig.RedisConfig.
package mount

import (
	"regexp"
	"sort"
	"strings"

	"github.com/gogenie/annotate/internal/annotations"
	"github.com/gogenie/annotate/internal/lexical"
)

var (
	structHeadPattern = regexp.MustCompile(`(?m)^[ \t]*type\s+([A-Za-z_][A-Za-z0-9_]*)\s+struct\s*\{`)
	fieldPattern      = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\b`)
)

// keywords that can start a struct body line without naming a field
var fieldKeywords = map[string]bool{
	"type": true, "func": true, "var": true, "const": true, "map": true, "chan": true,
	"interface": true, "struct": true, "return": true, "if": true, "for": true,
	"switch": true, "case": true, "default": true,
}

// Roots is the set of lower-cased mount annotation names
type Roots map[string]bool

// Signature returns the sorted, comma-joined root names
func (r Roots) Signature() string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// Field is a top-level field of a mounted struct
type Field struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
}

// Binding ties an alias to the struct its mount annotation decorates
type Binding struct {
	Alias            string  `json:"alias"`
	StructName       string  `json:"structName"`
	StructNameOffset int     `json:"structNameOffset"`
	Fields           []Field `json:"fields"`
}

// LookupField finds a field by exact name, then case-insensitively
func (b Binding) LookupField(name string) (Field, bool) {
	for _, f := range b.Fields {
		if f.Name == name {
			return f, true
		}
	}
	for _, f := range b.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}

// ValueAnchor is an identifier value written in a mount alias annotation
type ValueAnchor struct {
	AnnotationName string       `json:"annotationName"`
	Alias          string       `json:"alias"`
	ValueName      string       `json:"valueName"`
	Span           lexical.Span `json:"span"`
}

// MountRootNames returns the names of every spec in the mount family
func MountRootNames(profile *annotations.Profile) Roots {
	roots := make(Roots)
	for _, spec := range profile.Specs() {
		if strings.EqualFold(spec.CommandFamily, annotations.FamilyMount) {
			roots[strings.ToLower(spec.Name)] = true
		}
	}
	return roots
}

// CollectAliasesFromText returns the aliases declared by mount annotations in fileText,
// in order of first appearance.
func CollectAliasesFromText(fileText string, roots Roots) []string {
	if len(roots) == 0 {
		return nil
	}
	var aliases []string
	seen := make(map[string]bool)
	for _, occ := range lexical.ScanAnnotations(fileText) {
		if !occ.HasArgs || !roots[occ.LowerName()] {
			continue
		}
		for _, alias := range parseAliases(occ.Args) {
			if !seen[alias] {
				seen[alias] = true
				aliases = append(aliases, alias)
			}
		}
	}
	return aliases
}

// AugmentProfile extends profile with the aliases declared in fileText
func AugmentProfile(profile *annotations.Profile, fileText string) *annotations.Profile {
	roots := MountRootNames(profile)
	if len(roots) == 0 {
		return profile
	}
	return profile.WithAugmentedAliases(CollectAliasesFromText(fileText, roots))
}

// CollectMountBindingsFromFile returns one binding per alias of every mount annotation
// that decorates a struct, allowing only comments and blank lines in between.
func CollectMountBindingsFromFile(fileText string, roots Roots) []Binding {
	if len(roots) == 0 {
		return nil
	}
	heads := structHeadPattern.FindAllStringSubmatchIndex(fileText, -1)
	if len(heads) == 0 {
		return nil
	}

	var bindings []Binding
	for _, occ := range lexical.ScanAnnotations(fileText) {
		if !occ.HasArgs || !roots[occ.LowerName()] {
			continue
		}
		aliases := parseAliases(occ.Args)
		if len(aliases) == 0 {
			continue
		}

		from := lexical.LineEnd(fileText, occ.End)
		head := nextHead(heads, from)
		if head == nil || !lexical.IsTriviaOnly(fileText[from:head[0]]) {
			continue
		}
		openBrace := head[1] - 1
		closeBrace, ok := lexical.FindMatchingClose(fileText, openBrace, '{', '}')
		if !ok {
			continue
		}

		fields := structFields(fileText, openBrace+1, closeBrace)
		for _, alias := range aliases {
			bindings = append(bindings, Binding{
				Alias:            alias,
				StructName:       fileText[head[2]:head[3]],
				StructNameOffset: head[2],
				Fields:           fields,
			})
		}
	}
	return bindings
}

// CollectCommentValueAnchors returns the identifier values of mount alias annotations in
// comment. Arguments keyed by the alias itself take precedence over the rest.
func CollectCommentValueAnchors(comment string, profile *annotations.Profile) []ValueAnchor {
	var anchors []ValueAnchor
	for _, occ := range lexical.ScanAnnotations(comment) {
		spec, ok := profile.FindSpec(occ.Name)
		if !ok {
			continue
		}
		alias, ok := spec.MountAlias()
		if !ok || !occ.HasArgs {
			continue
		}
		alias = strings.ToLower(alias)

		args := occ.Arguments()
		var candidates lexical.Arguments
		for _, arg := range args {
			if strings.ToLower(arg.Key) == alias {
				candidates = append(candidates, arg)
			}
		}
		if len(candidates) == 0 {
			candidates = args
		}

		for _, arg := range candidates {
			value := lexical.TrimQuotes(arg.Value)
			if !lexical.IsIdentifier(value) {
				continue
			}
			anchors = append(anchors, ValueAnchor{
				AnnotationName: occ.Name,
				Alias:          alias,
				ValueName:      value,
				Span:           arg.Span,
			})
		}
	}
	return anchors
}

// parseAliases reads the aliases of one mount argument list. A bare segment names an
// alias; a keyed segment names its key when the value is an identifier as well.
func parseAliases(raw string) []string {
	var aliases []string
	seen := make(map[string]bool)
	for _, segment := range lexical.SplitTopLevelStrings(raw, ',') {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		candidate := lexical.TrimQuotes(segment)
		if eq, ok := lexical.FindTopLevelEquals(segment); ok {
			if !lexical.IsIdentifier(lexical.TrimQuotes(segment[eq+1:])) {
				continue
			}
			candidate = strings.TrimSpace(segment[:eq])
		}
		if !lexical.IsIdentifier(candidate) || seen[candidate] {
			continue
		}
		seen[candidate] = true
		aliases = append(aliases, candidate)
	}
	return aliases
}

func nextHead(heads [][]int, from int) []int {
	for _, head := range heads {
		if head[0] >= from {
			return head
		}
	}
	return nil
}

// structFields records the first offset of every field named at the top level of
// fileText[bodyStart:bodyEnd]. Lines inside nested braces are skipped.
func structFields(fileText string, bodyStart, bodyEnd int) []Field {
	var fields []Field
	seen := make(map[string]bool)
	depth := 0
	for _, line := range lexical.Lines(fileText[bodyStart:bodyEnd]) {
		code := lexical.StripLineComment(line.Text)
		top := depth == 0
		depth += strings.Count(code, "{") - strings.Count(code, "}")
		if depth < 0 {
			depth = 0
		}
		if !top || strings.TrimSpace(code) == "" {
			continue
		}

		m := fieldPattern.FindStringSubmatchIndex(code)
		if m == nil {
			continue
		}
		name := code[m[2]:m[3]]
		if fieldKeywords[name] || seen[name] {
			continue
		}
		seen[name] = true
		fields = append(fields, Field{Name: name, Offset: bodyStart + line.Start + m[2]})
	}
	return fields
}
