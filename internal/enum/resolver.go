// Package enum links enum annotations to the const blocks they decorate.
//
//	// @enum(ctxKey)
//	const (
//		CtxKeyUserGroupIDs = 1
//	)
//
// The annotation argument names the generated enum type; every constant of the
// following block becomes one of its values.
package enum

import (
	"regexp"
	"strings"

	"github.com/gogenie/annotate/internal/annotations"
	"github.com/gogenie/annotate/internal/lexical"
)

var (
	constHeadPattern = regexp.MustCompile(`(?m)^\s*const\s*\(`)
	constNamePattern = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\b(?:\s+[A-Za-z_][A-Za-z0-9_]*)?\s*=`)
)

// RangeKind classifies a semantic range
type RangeKind string

const (
	KindEnumArgument RangeKind = "ENUM_ARGUMENT"
	KindConstName    RangeKind = "CONST_NAME"
)

// Anchor is an enum name written as an annotation argument
type Anchor struct {
	AnnotationName string       `json:"annotationName"`
	EnumName       string       `json:"enumName"`
	Span           lexical.Span `json:"span"`
}

// SemanticRange ties a span of source text to an enum or one of its constants
type SemanticRange struct {
	AnnotationName string       `json:"annotationName"`
	EnumName       string       `json:"enumName"`
	ConstName      string       `json:"constName,omitempty"` // set for KindConstName
	Span           lexical.Span `json:"span"`
	Kind           RangeKind    `json:"kind"`
}

// Target is what an offset resolves to: an enum, or one constant of it
type Target struct {
	EnumName  string `json:"enumName"`
	ConstName string `json:"constName,omitempty"`
}

// constItem is one constant name declared in a decorated block
type constItem struct {
	name string
	span lexical.Span
}

type constBlock struct {
	anchor Anchor
	items  []constItem
}

// ResolveEnumNameFromComment returns the enum named by the first enum annotation in comment
func ResolveEnumNameFromComment(comment string, profile *annotations.Profile) (string, bool) {
	anchors := CollectCommentEnumAnchors(comment, profile)
	if len(anchors) == 0 {
		return "", false
	}
	return anchors[0].EnumName, true
}

// CollectCommentEnumAnchors returns every enum argument in text, spans relative to text
func CollectCommentEnumAnchors(text string, profile *annotations.Profile) []Anchor {
	var anchors []Anchor
	for _, occ := range lexical.ScanAnnotations(text) {
		if anchor, ok := enumAnchor(occ, profile); ok {
			anchors = append(anchors, anchor)
		}
	}
	return anchors
}

// CollectSemanticRanges returns the enum argument ranges of the file followed by the
// constant name ranges of every decorated const block.
func CollectSemanticRanges(fileText string, profile *annotations.Profile) []SemanticRange {
	var ranges []SemanticRange
	for _, anchor := range CollectCommentEnumAnchors(fileText, profile) {
		ranges = append(ranges, SemanticRange{
			AnnotationName: anchor.AnnotationName,
			EnumName:       anchor.EnumName,
			Span:           anchor.Span,
			Kind:           KindEnumArgument,
		})
	}
	for _, block := range collectConstBlocks(fileText, profile) {
		for _, item := range block.items {
			ranges = append(ranges, SemanticRange{
				AnnotationName: block.anchor.AnnotationName,
				EnumName:       block.anchor.EnumName,
				ConstName:      item.name,
				Span:           item.span,
				Kind:           KindConstName,
			})
		}
	}
	return ranges
}

// SemanticRangeAtOffset returns the first range containing offset or ending exactly at it
func SemanticRangeAtOffset(fileText string, offset int, profile *annotations.Profile) (SemanticRange, bool) {
	if offset < 0 || offset > len(fileText) {
		return SemanticRange{}, false
	}
	for _, r := range CollectSemanticRanges(fileText, profile) {
		if r.Span.Touches(offset) {
			return r, true
		}
	}
	return SemanticRange{}, false
}

// ResolveAtOffset resolves an enum argument under offset, falling back to the constant
// name declared at offset inside a decorated block.
func ResolveAtOffset(fileText string, offset int, profile *annotations.Profile) (Target, bool) {
	if offset < 0 || offset > len(fileText) {
		return Target{}, false
	}

	for _, anchor := range CollectCommentEnumAnchors(fileText, profile) {
		if anchor.Span.Touches(offset) {
			return Target{EnumName: anchor.EnumName}, true
		}
	}

	ident, ok := lexical.IdentifierAt(fileText, offset)
	if !ok {
		return Target{}, false
	}
	for _, block := range collectConstBlocks(fileText, profile) {
		for _, item := range block.items {
			if item.name == ident.Text && item.span.Contains(ident.Span.Start) {
				return Target{EnumName: block.anchor.EnumName, ConstName: item.name}, true
			}
		}
	}
	return Target{}, false
}

// enumAnchor parses the enum name out of an enum-family annotation occurrence
func enumAnchor(occ lexical.Occurrence, profile *annotations.Profile) (Anchor, bool) {
	if !occ.HasArgs {
		return Anchor{}, false
	}
	spec, ok := profile.FindSpec(occ.Name)
	if !ok || !spec.InFamily(annotations.FamilyEnum) {
		return Anchor{}, false
	}

	first := lexical.SplitTopLevel(occ.Args, ',')[0]
	segment := first.Text(occ.Args)
	start := len(segment) - len(strings.TrimLeftFunc(segment, isSpace))
	end := len(strings.TrimRightFunc(segment, isSpace))
	if end <= start {
		return Anchor{}, false
	}

	if q := segment[start]; (q == '"' || q == '\'') && segment[end-1] == q {
		if end-start <= 2 {
			return Anchor{}, false
		}
		start++
		end--
	}
	// whitespace inside the quotes is not part of the name
	inner := segment[start:end]
	start += len(inner) - len(strings.TrimLeftFunc(inner, isSpace))
	end -= len(inner) - len(strings.TrimRightFunc(inner, isSpace))
	if end <= start {
		return Anchor{}, false
	}

	base := occ.ArgsStart + first.Start
	return Anchor{
		AnnotationName: occ.Name,
		EnumName:       segment[start:end],
		Span:           lexical.Span{Start: base + start, End: base + end},
	}, true
}

// collectConstBlocks pairs each enum annotation with the const block following it
// across trivia only. Blocks without any constant are dropped.
func collectConstBlocks(fileText string, profile *annotations.Profile) []constBlock {
	heads := constHeadPattern.FindAllStringIndex(fileText, -1)
	if len(heads) == 0 {
		return nil
	}

	var blocks []constBlock
	for _, occ := range lexical.ScanAnnotations(fileText) {
		anchor, ok := enumAnchor(occ, profile)
		if !ok {
			continue
		}

		// text trailing the annotation on its own line belongs to the comment
		from := lexical.LineEnd(fileText, occ.End)
		head := nextHead(heads, from)
		if head == nil || !lexical.IsTriviaOnly(fileText[from:head[0]]) {
			continue
		}

		openParen := head[1] - 1
		closeParen, ok := lexical.FindMatchingClose(fileText, openParen, '(', ')')
		if !ok {
			continue
		}

		items := constItems(fileText, openParen+1, closeParen)
		if len(items) == 0 {
			continue
		}
		blocks = append(blocks, constBlock{anchor: anchor, items: items})
	}
	return blocks
}

func nextHead(heads [][]int, from int) []int {
	for _, head := range heads {
		if head[0] >= from {
			return head
		}
	}
	return nil
}

// constItems extracts the constant names declared in fileText[bodyStart:bodyEnd]
func constItems(fileText string, bodyStart, bodyEnd int) []constItem {
	var items []constItem
	for _, line := range lexical.Lines(fileText[bodyStart:bodyEnd]) {
		m := constNamePattern.FindStringSubmatchIndex(lexical.StripLineComment(line.Text))
		if m == nil {
			continue
		}
		start := bodyStart + line.Start + m[2]
		items = append(items, constItem{
			name: line.Text[m[2]:m[3]],
			span: lexical.Span{Start: start, End: bodyStart + line.Start + m[3]},
		})
	}
	return items
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}
